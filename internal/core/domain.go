package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food          Category = "Food"
	Entertainment Category = "Entertainment"
	Travel        Category = "Travel"
	Other         Category = "Other"
)

const (
	KindIncome  TransactionKind = "income"
	KindExpense TransactionKind = "expense"
)

// MaxTitleLen mirrors the input limit enforced by the expense form.
const MaxTitleLen = 50

type (
	Category        string
	TransactionKind string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Expense is a single recorded outflow.
	Expense struct {
		ID       string
		Title    string
		Amount   Money
		Category Category
		Date     Date
	}

	// Transaction is a recent-activity log entry derived from wallet
	// mutations. It is not separately authoritative.
	Transaction struct {
		ID       string
		Kind     TransactionKind
		Title    string
		Amount   Money
		Category Category
		Date     Date
	}
)

var (
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrEmptyTitle          = errors.New("empty title")
	ErrTitleTooLong        = errors.New("title too long (max 50 characters)")
	ErrInvalidCategory     = errors.New("invalid category")
	ErrInvalidDate         = errors.New("invalid date")
	ErrInsufficientBalance = errors.New("amount exceeds available balance")
	ErrExpenseNotFound     = errors.New("expense not found")
)

// IsValidation reports whether err belongs to the validation class:
// malformed or out-of-range input the caller can correct and resubmit.
func IsValidation(err error) bool {
	for _, target := range []error{
		ErrInvalidAmount,
		ErrEmptyTitle,
		ErrTitleTooLong,
		ErrInvalidCategory,
		ErrInvalidDate,
		ErrInsufficientBalance,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// IsNotFound reports whether err means the referenced expense does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrExpenseNotFound)
}

// Categories returns the closed category enumeration in display order.
func Categories() []Category {
	return []Category{Food, Entertainment, Travel, Other}
}

func (c Category) Validate() error {
	switch c {
	case Food, Entertainment, Travel, Other:
		return nil
	default:
		return ErrInvalidCategory
	}
}

// ParseCategory maps raw form input onto the closed enumeration.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.TrimSpace(s))
	if err := c.Validate(); err != nil {
		return "", err
	}
	return c, nil
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// NewDate creates a new Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date with the time component dropped.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (e Expense) Validate() error {
	title := strings.TrimSpace(e.Title)
	if title == "" {
		return ErrEmptyTitle
	}
	if len(title) > MaxTitleLen {
		return ErrTitleTooLong
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if err := e.Category.Validate(); err != nil {
		return err
	}
	return e.Date.Validate()
}
