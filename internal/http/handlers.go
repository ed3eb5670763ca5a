package http

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"orcamento/internal/budget"
	"orcamento/internal/core"
	"orcamento/internal/services"
)

// BudgetAPI is the service surface the HTTP layer calls into.
type BudgetAPI interface {
	AddTransaction(ctx context.Context, in core.NewTransaction) (core.Transaction, error)
	RemoveTransaction(ctx context.Context, id string) error
	ListTransactions(ctx context.Context) []core.Transaction
	RecentTransactions(ctx context.Context, n int) []core.Transaction
	AddGoal(ctx context.Context, in core.NewGoal) (core.Goal, error)
	RemoveGoal(ctx context.Context, id string) error
	ListGoals(ctx context.Context) []core.Goal
	ComputeSummary(ctx context.Context) core.Summary
	ComputeProgress(ctx context.Context) []core.ProgressRecord
	Dashboard(ctx context.Context) services.Dashboard
	Categories() core.Catalog
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	c := s.api.Categories()
	writeJSON(w, http.StatusOK, categoriesResponse{
		Income:  c.Categories(core.Income),
		Expense: c.Categories(core.Expense),
	})
}

// handleListTransactions returns the full ledger in insertion order, or the
// newest N first when ?limit=N is given.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	n, limited, err := parseLimit(r)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	var txs []core.Transaction
	if limited {
		txs = s.api.RecentTransactions(r.Context(), n)
	} else {
		txs = s.api.ListTransactions(r.Context())
	}
	writeJSON(w, http.StatusOK, newTransactionsResponse(txs))
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req createTransactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	in, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	tx, err := s.api.AddTransaction(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newTransactionResponse(tx))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.api.RemoveTransaction(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newGoalsResponse(s.api.ListGoals(r.Context())))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req createGoalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}
	in, err := req.toDomain()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	g, err := s.api.AddGoal(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newGoalResponse(g))
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.api.RemoveGoal(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary := s.api.ComputeSummary(r.Context())
	writeJSON(w, http.StatusOK, newSummaryResponse(summary, budget.CategoryBreakdown(summary, s.api.Categories())))
}

func (s *Server) handleProgress(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newProgressResponse(s.api.ComputeProgress(r.Context())))
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, newDashboardResponse(s.api.Dashboard(r.Context())))
}
