package core

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{NewDate(2025, 1, 1), true},
		{NewDate(2025, 12, 31), true},
		{Date{Time: time.Time{}}, false}, // zero time
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestParseCategory(t *testing.T) {
	cases := []struct {
		in  string
		out Category
		ok  bool
	}{
		{"Food", Food, true},
		{" Travel ", Travel, true},
		{"Entertainment", Entertainment, true},
		{"Other", Other, true},
		{"food", "", false}, // case sensitive
		{"Groceries", "", false},
		{"", "", false},
	}
	for i, tc := range cases {
		got, err := ParseCategory(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("case %d expected %q, got %q (err=%v)", i, tc.out, got, err)
			}
		} else if err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{
		Title:    "coffee",
		Amount:   Money{Cents: 100},
		Category: Food,
		Date:     NewDate(2025, 1, 1),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		e    Expense
		want error
	}{
		{Expense{Title: "", Amount: Money{Cents: 1}, Category: Food, Date: NewDate(2025, 1, 1)}, ErrEmptyTitle},
		{Expense{Title: "   ", Amount: Money{Cents: 1}, Category: Food, Date: NewDate(2025, 1, 1)}, ErrEmptyTitle},
		{Expense{Title: strings.Repeat("x", MaxTitleLen+1), Amount: Money{Cents: 1}, Category: Food, Date: NewDate(2025, 1, 1)}, ErrTitleTooLong},
		{Expense{Title: "a", Amount: Money{Cents: 0}, Category: Food, Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{Expense{Title: "a", Amount: Money{Cents: -1}, Category: Food, Date: NewDate(2025, 1, 1)}, ErrInvalidAmount},
		{Expense{Title: "a", Amount: Money{Cents: 1}, Category: "Bogus", Date: NewDate(2025, 1, 1)}, ErrInvalidCategory},
		{Expense{Title: "a", Amount: Money{Cents: 1}, Category: Food, Date: Date{}}, ErrInvalidDate},
	}
	for i, tc := range cases {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestErrorClassification(t *testing.T) {
	validation := []error{
		ErrInvalidAmount, ErrEmptyTitle, ErrTitleTooLong,
		ErrInvalidCategory, ErrInvalidDate, ErrInsufficientBalance,
	}
	for i, err := range validation {
		if !IsValidation(err) {
			t.Fatalf("case %d expected validation class for %v", i, err)
		}
		if IsNotFound(err) {
			t.Fatalf("case %d misclassified %v as not-found", i, err)
		}
	}
	if IsValidation(ErrExpenseNotFound) {
		t.Fatalf("not-found error classified as validation")
	}
	if !IsNotFound(ErrExpenseNotFound) {
		t.Fatalf("expected not-found class")
	}
}

func TestCategoriesOrder(t *testing.T) {
	want := []Category{Food, Entertainment, Travel, Other}
	got := Categories()
	if len(got) != len(want) {
		t.Fatalf("expected %d categories, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d expected %s, got %s", i, want[i], got[i])
		}
	}
}
