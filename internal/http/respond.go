package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/deepmavani/XpenseTracer/internal/core"
)

type errorResponse struct {
	Error string `json:"error"`
}

type expenseView struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	AmountCents int64   `json:"amount_cents"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"`
}

type transactionView struct {
	ID          string  `json:"id"`
	Kind        string  `json:"kind"`
	Title       string  `json:"title"`
	AmountCents int64   `json:"amount_cents"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category,omitempty"`
	Date        string  `json:"date"`
}

type walletView struct {
	BalanceCents       int64   `json:"balance_cents"`
	Balance            float64 `json:"balance"`
	TotalIncomeCents   int64   `json:"total_income_cents"`
	TotalIncome        float64 `json:"total_income"`
	TotalExpensesCents int64   `json:"total_expenses_cents"`
	TotalExpenses      float64 `json:"total_expenses"`
	ExpenseCount       int     `json:"expense_count"`
}

type categoryTotalView struct {
	Category    string  `json:"category"`
	TotalCents  int64   `json:"total_cents"`
	Total       float64 `json:"total"`
}

type pageView struct {
	Expenses   []expenseView `json:"expenses"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalItems int           `json:"total_items"`
	TotalPages int           `json:"total_pages"`
}

func newExpenseView(e core.Expense) expenseView {
	return expenseView{
		ID:          e.ID,
		Title:       e.Title,
		AmountCents: e.Amount.Cents,
		Amount:      e.Amount.Units(),
		Category:    string(e.Category),
		Date:        core.EncodeDate(e.Date),
	}
}

func newTransactionView(t core.Transaction) transactionView {
	return transactionView{
		ID:          t.ID,
		Kind:        string(t.Kind),
		Title:       t.Title,
		AmountCents: t.Amount.Cents,
		Amount:      t.Amount.Units(),
		Category:    string(t.Category),
		Date:        core.EncodeDate(t.Date),
	}
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// respondError maps domain errors onto HTTP statuses. Validation failures
// are 422 so clients can tell bad values from malformed requests.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case core.IsValidation(err):
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
	case core.IsNotFound(err):
		respondJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		slog.ErrorContext(r.Context(), "Unhandled request error",
			"error", err, "method", r.Method, "url", r.URL.Path)
		respondJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func respondBadRequest(w http.ResponseWriter, message string) {
	respondJSON(w, http.StatusBadRequest, errorResponse{Error: message})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	respondJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
}
