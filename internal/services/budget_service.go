package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"orcamento/internal/budget"
	"orcamento/internal/core"
	"orcamento/internal/ledger"
	applog "orcamento/internal/log"
)

const DefaultRecentLimit = 10

// EventPublisher delivers mutation events to other collaborators.
type EventPublisher interface {
	Publish(ctx context.Context, evt core.LedgerEvent) error
	Close() error
}

// Options configures a BudgetService. Zero values fall back to defaults.
type Options struct {
	Catalog     core.Catalog
	Clock       ledger.Clock
	Aggregator  *budget.Aggregator
	Evaluator   *budget.Evaluator
	Publisher   EventPublisher
	Logger      *applog.Logger
	RecentLimit int
}

// Dashboard is everything a view needs to render the current month.
type Dashboard struct {
	Summary   core.Summary
	Breakdown []core.CategoryAmount
	Progress  []core.ProgressRecord
	Recent    []core.Transaction
}

// BudgetService owns the ledger and goal set and runs the aggregation and
// progress evaluation on demand.
type BudgetService struct {
	ledger      *ledger.Ledger
	goals       *ledger.GoalSet
	aggregator  *budget.Aggregator
	evaluator   *budget.Evaluator
	publisher   EventPublisher
	logger      *applog.Logger
	now         ledger.Clock
	recentLimit int
}

func NewBudgetService(opts Options) *BudgetService {
	catalog := opts.Catalog
	if len(catalog.Income) == 0 && len(catalog.Expense) == 0 {
		catalog = core.DefaultCatalog()
	}
	now := opts.Clock
	if now == nil {
		now = time.Now
	}
	agg := opts.Aggregator
	if agg == nil {
		agg = budget.NewAggregator(budget.DefaultSavingsRate)
	}
	eval := opts.Evaluator
	if eval == nil {
		eval = budget.NewEvaluator(budget.DefaultThresholds())
	}
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}
	recent := opts.RecentLimit
	if recent <= 0 {
		recent = DefaultRecentLimit
	}

	return &BudgetService{
		ledger:      ledger.New(catalog, now),
		goals:       ledger.NewGoalSet(catalog),
		aggregator:  agg,
		evaluator:   eval,
		publisher:   opts.Publisher,
		logger:      logger,
		now:         now,
		recentLimit: recent,
	}
}

// AddTransaction records a transaction and publishes transaction.added.
func (s *BudgetService) AddTransaction(ctx context.Context, in core.NewTransaction) (core.Transaction, error) {
	log := s.logger.WithComponent(applog.ComponentLedger)

	tx, err := s.ledger.AddTransaction(in)
	if err != nil {
		log.Log(ctx, levelFor(err), "Transaction rejected", applog.NewFields().
			WithOperation(applog.OpCreate).
			WithError(err).
			WithErrorType(errorType(err)))
		return core.Transaction{}, err
	}

	log.Log(ctx, slog.LevelInfo, "Transaction added", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithEntry(tx.ID, tx.Kind.String(), tx.Category, tx.Amount.Cents))

	s.publish(ctx, core.TransactionEvent(core.EventTransactionAdded, tx, s.now()))
	return tx, nil
}

func (s *BudgetService) RemoveTransaction(ctx context.Context, id string) error {
	log := s.logger.WithComponent(applog.ComponentLedger)

	tx, err := s.ledger.RemoveTransaction(id)
	if err != nil {
		log.Log(ctx, levelFor(err), "Transaction removal failed", applog.NewFields().
			WithOperation(applog.OpDelete).
			WithError(err).
			WithErrorType(errorType(err)))
		return err
	}

	log.Log(ctx, slog.LevelInfo, "Transaction removed", applog.NewFields().
		WithOperation(applog.OpDelete).
		WithEntry(tx.ID, tx.Kind.String(), tx.Category, tx.Amount.Cents))

	s.publish(ctx, core.TransactionEvent(core.EventTransactionRemoved, tx, s.now()))
	return nil
}

// ListTransactions returns every transaction in insertion order.
func (s *BudgetService) ListTransactions(ctx context.Context) []core.Transaction {
	return s.ledger.ListTransactions()
}

// RecentTransactions returns the newest n transactions, newest first.
// n <= 0 uses the configured recent limit.
func (s *BudgetService) RecentTransactions(ctx context.Context, n int) []core.Transaction {
	if n <= 0 {
		n = s.recentLimit
	}
	return s.ledger.Recent(n)
}

// AddGoal stores a monthly goal and publishes goal.added.
func (s *BudgetService) AddGoal(ctx context.Context, in core.NewGoal) (core.Goal, error) {
	log := s.logger.WithComponent(applog.ComponentGoals)

	g, err := s.goals.AddGoal(in)
	if err != nil {
		log.Log(ctx, levelFor(err), "Goal rejected", applog.NewFields().
			WithOperation(applog.OpCreate).
			WithError(err).
			WithErrorType(errorType(err)))
		return core.Goal{}, err
	}

	log.Log(ctx, slog.LevelInfo, "Goal added", applog.NewFields().
		WithOperation(applog.OpCreate).
		WithEntry(g.ID, g.Kind.String(), g.Category, g.Amount.Cents))

	s.publish(ctx, core.GoalEvent(core.EventGoalAdded, g, s.now()))
	return g, nil
}

func (s *BudgetService) RemoveGoal(ctx context.Context, id string) error {
	log := s.logger.WithComponent(applog.ComponentGoals)

	g, err := s.goals.RemoveGoal(id)
	if err != nil {
		log.Log(ctx, levelFor(err), "Goal removal failed", applog.NewFields().
			WithOperation(applog.OpDelete).
			WithError(err).
			WithErrorType(errorType(err)))
		return err
	}

	log.Log(ctx, slog.LevelInfo, "Goal removed", applog.NewFields().
		WithOperation(applog.OpDelete).
		WithEntry(g.ID, g.Kind.String(), g.Category, g.Amount.Cents))

	s.publish(ctx, core.GoalEvent(core.EventGoalRemoved, g, s.now()))
	return nil
}

func (s *BudgetService) ListGoals(ctx context.Context) []core.Goal {
	return s.goals.ListGoals()
}

// ComputeSummary aggregates the current ledger.
func (s *BudgetService) ComputeSummary(ctx context.Context) core.Summary {
	return s.aggregator.Summarize(s.ledger.ListTransactions())
}

// ComputeProgress evaluates every goal against the current ledger.
func (s *BudgetService) ComputeProgress(ctx context.Context) []core.ProgressRecord {
	return s.evaluator.Evaluate(s.goals.ListGoals(), s.ComputeSummary(ctx))
}

// Dashboard computes summary, progress and recent transactions from one
// snapshot of the ledger.
func (s *BudgetService) Dashboard(ctx context.Context) Dashboard {
	txs := s.ledger.ListTransactions()
	summary := s.aggregator.Summarize(txs)

	return Dashboard{
		Summary:   summary,
		Breakdown: budget.CategoryBreakdown(summary, s.ledger.Catalog()),
		Progress:  s.evaluator.Evaluate(s.goals.ListGoals(), summary),
		Recent:    ledger.Newest(txs, s.recentLimit),
	}
}

// Categories returns the catalog the service validates against.
func (s *BudgetService) Categories() core.Catalog {
	return s.ledger.Catalog()
}

func (s *BudgetService) publish(ctx context.Context, evt core.LedgerEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, evt); err != nil {
		// the mutation already happened
		s.logger.WithComponent(applog.ComponentAMQP).Log(ctx, slog.LevelWarn, "Failed to publish ledger event",
			applog.NewFields().
				WithOperation(applog.OpPublish).
				WithEntry(evt.ID, evt.Kind.String(), evt.Category, evt.AmountCents).
				WithError(err).
				WithErrorType(applog.ErrorTypeNetwork))
	}
}

// Close releases the publisher.
func (s *BudgetService) Close() error {
	if s.publisher == nil {
		return nil
	}
	if err := s.publisher.Close(); err != nil {
		return fmt.Errorf("close publisher: %w", err)
	}
	return nil
}

func errorType(err error) string {
	switch {
	case errors.Is(err, core.ErrValidation):
		return applog.ErrorTypeValidation
	case errors.Is(err, core.ErrDuplicateGoal):
		return applog.ErrorTypeConflict
	case errors.Is(err, core.ErrNotFound):
		return applog.ErrorTypeNotFound
	default:
		return applog.ErrorTypeInternal
	}
}

// levelFor logs rejected input at warn and anything unexpected at error.
func levelFor(err error) slog.Level {
	if errorType(err) == applog.ErrorTypeInternal {
		return slog.LevelError
	}
	return slog.LevelWarn
}
