package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"orcamento/internal/core"
	applog "orcamento/internal/log"
	"orcamento/internal/services"
)

type errorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        string `json:"date"`
}

type goalResponse struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Category string `json:"category,omitempty"`
	Amount   string `json:"amount"`
	Period   string `json:"period"`
}

type categoryAmountResponse struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

type summaryResponse struct {
	TotalIncome        string                   `json:"total_income"`
	TotalExpenses      string                   `json:"total_expenses"`
	Balance            string                   `json:"balance"`
	SavingsTarget      string                   `json:"savings_target"`
	ExpensesByCategory []categoryAmountResponse `json:"expenses_by_category"`
}

type progressResponse struct {
	GoalID     string `json:"goal_id"`
	Kind       string `json:"kind"`
	Category   string `json:"category,omitempty"`
	Current    string `json:"current"`
	Target     string `json:"target"`
	Percentage string `json:"percentage"`
	Status     string `json:"status"`
	Overage    string `json:"overage"`
}

type dashboardResponse struct {
	Summary  summaryResponse       `json:"summary"`
	Progress []progressResponse    `json:"progress"`
	Recent   []transactionResponse `json:"recent"`
}

type categoriesResponse struct {
	Income  []string `json:"income"`
	Expense []string `json:"expense"`
}

func newTransactionResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:          tx.ID,
		Kind:        tx.Kind.String(),
		Amount:      tx.Amount.String(),
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date.String(),
	}
}

func newTransactionsResponse(txs []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, newTransactionResponse(tx))
	}
	return out
}

func newGoalResponse(g core.Goal) goalResponse {
	return goalResponse{
		ID:       g.ID,
		Kind:     g.Kind.String(),
		Category: g.Category,
		Amount:   g.Amount.String(),
		Period:   string(g.Period),
	}
}

func newGoalsResponse(goals []core.Goal) []goalResponse {
	out := make([]goalResponse, 0, len(goals))
	for _, g := range goals {
		out = append(out, newGoalResponse(g))
	}
	return out
}

func newSummaryResponse(s core.Summary, breakdown []core.CategoryAmount) summaryResponse {
	cats := make([]categoryAmountResponse, 0, len(breakdown))
	for _, c := range breakdown {
		cats = append(cats, categoryAmountResponse{Category: c.Name, Amount: c.Amount.String()})
	}
	return summaryResponse{
		TotalIncome:        s.TotalIncome.String(),
		TotalExpenses:      s.TotalExpenses.String(),
		Balance:            s.Balance.String(),
		SavingsTarget:      s.SavingsTarget.StringFixed(2),
		ExpensesByCategory: cats,
	}
}

func newProgressResponse(records []core.ProgressRecord) []progressResponse {
	out := make([]progressResponse, 0, len(records))
	for _, p := range records {
		out = append(out, progressResponse{
			GoalID:     p.GoalID,
			Kind:       p.Kind.String(),
			Category:   p.Category,
			Current:    p.Current.String(),
			Target:     p.Target.String(),
			Percentage: p.Percentage.StringFixed(2),
			Status:     string(p.Status),
			Overage:    p.Overage.String(),
		})
	}
	return out
}

func newDashboardResponse(d services.Dashboard) dashboardResponse {
	return dashboardResponse{
		Summary:  newSummaryResponse(d.Summary, d.Breakdown),
		Progress: newProgressResponse(d.Progress),
		Recent:   newTransactionsResponse(d.Recent),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string, details []string) {
	writeJSON(w, status, errorResponse{Error: message, Details: details})
}

// writeServiceError maps domain errors to status codes:
// malformed input 400, validation 422, duplicate goal 409, unknown id 404.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	var maxBytes *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytes):
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large", nil)
	case errors.Is(err, errBadRequest):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.As(err, &verrs):
		details := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldMessage(fe))
		}
		writeError(w, http.StatusUnprocessableEntity, "validation failed", details)
	case errors.Is(err, core.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error(), nil)
	case errors.Is(err, core.ErrDuplicateGoal):
		writeError(w, http.StatusConflict, err.Error(), nil)
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error(), nil)
	default:
		applog.FromContext(r.Context()).ErrorContext(r.Context(), "Unhandled error",
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeInternal)
		writeError(w, http.StatusInternalServerError, "internal error", nil)
	}
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "max":
		return fe.Field() + " is too long"
	case "datetime":
		return fe.Field() + " must be YYYY-MM-DD"
	default:
		return fe.Field() + " is invalid"
	}
}
