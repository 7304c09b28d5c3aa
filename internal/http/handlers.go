package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/deepmavani/XpenseTracer/internal/ledger"
	"github.com/deepmavani/XpenseTracer/internal/services"
)

const maxBodyBytes = 1 << 16

type incomeRequest struct {
	Amount string `json:"amount"`
	Title  string `json:"title"`
}

type expenseRequest struct {
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := io.LimitReader(r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		respondBadRequest(w, "invalid request body")
		return false
	}
	return true
}

// handleWallet returns the aggregate wallet summary.
func (s *Server) handleWallet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	l := s.wallet.Ledger()
	respondJSON(w, http.StatusOK, walletView{
		BalanceCents:       l.Balance().Cents,
		Balance:            l.Balance().Units(),
		TotalIncomeCents:   l.TotalIncome().Cents,
		TotalIncome:        l.TotalIncome().Units(),
		TotalExpensesCents: l.TotalExpenses().Cents,
		TotalExpenses:      l.TotalExpenses().Units(),
		ExpenseCount:       len(l.Expenses()),
	})
}

// handleIncome credits the wallet balance.
func (s *Server) handleIncome(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, "POST")
		return
	}

	var req incomeRequest
	if !decodeBody(w, r, &req) {
		return
	}

	tx, err := s.wallet.AddIncome(r.Context(), req.Amount, req.Title)
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.invalidateAnalytics()
	respondJSON(w, http.StatusCreated, newTransactionView(tx))
}

// handleExpenses lists expenses (GET, paginated) or records one (POST).
func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listExpenses(w, r)
	case http.MethodPost:
		s.createExpense(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) listExpenses(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", s.pageSize)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = s.pageSize
	}

	p := s.wallet.Ledger().Paginate(page, pageSize)
	views := make([]expenseView, 0, len(p.Expenses))
	for _, e := range p.Expenses {
		views = append(views, newExpenseView(e))
	}

	respondJSON(w, http.StatusOK, pageView{
		Expenses:   views,
		Page:       p.PageNumber,
		PageSize:   p.PageSize,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	})
}

func (s *Server) createExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.wallet.AddExpense(r.Context(), services.ExpenseInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.invalidateAnalytics()
	respondJSON(w, http.StatusCreated, newExpenseView(created))
}

// handleExpenseByID updates (PUT) or removes (DELETE) a single expense.
func (s *Server) handleExpenseByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/expenses/")
	if id == "" || strings.Contains(id, "/") {
		respondBadRequest(w, "invalid expense id")
		return
	}

	switch r.Method {
	case http.MethodPut:
		s.updateExpense(w, r, id)
	case http.MethodDelete:
		s.deleteExpense(w, r, id)
	default:
		methodNotAllowed(w, "PUT, DELETE")
	}
}

func (s *Server) updateExpense(w http.ResponseWriter, r *http.Request, id string) {
	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.wallet.UpdateExpense(r.Context(), id, services.ExpensePatchInput{
		Title:    req.Title,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.invalidateAnalytics()
	respondJSON(w, http.StatusOK, newExpenseView(updated))
}

func (s *Server) deleteExpense(w http.ResponseWriter, r *http.Request, id string) {
	removed, err := s.wallet.DeleteExpense(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}

	s.invalidateAnalytics()
	respondJSON(w, http.StatusOK, newExpenseView(removed))
}

// handleTransactions lists the unified income and expense history.
func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "page_size", s.pageSize)
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = s.pageSize
	}

	txs, totalPages := s.wallet.Ledger().PaginateTransactions(page, pageSize)
	views := make([]transactionView, 0, len(txs))
	for _, t := range txs {
		views = append(views, newTransactionView(t))
	}

	respondJSON(w, http.StatusOK, struct {
		Transactions []transactionView `json:"transactions"`
		Page         int               `json:"page"`
		PageSize     int               `json:"page_size"`
		TotalPages   int               `json:"total_pages"`
	}{Transactions: views, Page: page, PageSize: pageSize, TotalPages: totalPages})
}

// handleCategoryTotals returns spend per category, zeros included.
func (s *Server) handleCategoryTotals(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	totals, found := s.categoryCache.Get("totals")
	if !found {
		totals = s.wallet.Ledger().CategoryTotals()
		s.categoryCache.Set("totals", totals)
	}

	views := make([]categoryTotalView, 0, len(totals))
	for _, ct := range totals {
		views = append(views, categoryTotalView{
			Category:   string(ct.Category),
			TotalCents: ct.Amount.Cents,
			Total:      ct.Amount.Units(),
		})
	}
	respondJSON(w, http.StatusOK, views)
}

// handleTopExpenses returns the n largest expenses, defaulting to 5.
func (s *Server) handleTopExpenses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, "GET")
		return
	}

	n := queryInt(r, "n", ledger.DefaultTopN)
	if n < 1 {
		n = ledger.DefaultTopN
	}

	key := "top-" + strconv.Itoa(n)
	top, found := s.topCache.Get(key)
	if !found {
		top = s.wallet.Ledger().TopExpenses(n)
		s.topCache.Set(key, top)
	}

	views := make([]expenseView, 0, len(top))
	for _, e := range top {
		views = append(views, newExpenseView(e))
	}
	respondJSON(w, http.StatusOK, views)
}

func queryInt(r *http.Request, key string, fallback int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
