package budget

import (
	"github.com/shopspring/decimal"

	"orcamento/internal/core"
)

var hundred = decimal.NewFromInt(100)

// Thresholds holds the warning cutoffs, in percent. Expense and income
// goals use different values and opposite directions: a high percentage is
// bad for a spending limit and good for an income target.
type Thresholds struct {
	ExpenseWarning decimal.Decimal
	IncomeWarning  decimal.Decimal
}

func DefaultThresholds() Thresholds {
	return Thresholds{
		ExpenseWarning: decimal.NewFromInt(80),
		IncomeWarning:  decimal.NewFromInt(70),
	}
}

// Evaluator turns a Summary and a goal list into progress records.
type Evaluator struct {
	thresholds Thresholds
}

func NewEvaluator(t Thresholds) *Evaluator {
	return &Evaluator{thresholds: t}
}

// Evaluate returns one record per goal, in goal order. No goals yields an
// empty, non-nil slice.
func (e *Evaluator) Evaluate(goals []core.Goal, s core.Summary) []core.ProgressRecord {
	out := make([]core.ProgressRecord, 0, len(goals))
	for _, g := range goals {
		out = append(out, e.evaluate(g, s))
	}
	return out
}

func (e *Evaluator) evaluate(g core.Goal, s core.Summary) core.ProgressRecord {
	var current core.Money
	switch g.Kind {
	case core.Income:
		current = s.TotalIncome
	case core.Expense:
		current = s.ExpensesByCategory[g.Category]
	}

	pct := Percentage(current, g.Amount)
	rec := core.ProgressRecord{
		GoalID:     g.ID,
		Kind:       g.Kind,
		Category:   g.Category,
		Current:    current,
		Target:     g.Amount,
		Percentage: pct.Round(2),
	}
	if g.Kind == core.Income {
		rec.Status = e.incomeStatus(pct)
		return rec
	}
	rec.Status = e.expenseStatus(pct)
	if current.Cents > g.Amount.Cents {
		rec.Overage = current.Sub(g.Amount)
	}
	return rec
}

// Percentage is current/target×100 capped at 100. A non-positive target
// counts as fully reached.
func Percentage(current, target core.Money) decimal.Decimal {
	if target.Cents <= 0 {
		return hundred
	}
	if current.Cents <= 0 {
		return decimal.Zero
	}
	return decimal.Min(current.Decimal().Mul(hundred).Div(target.Decimal()), hundred)
}

func (e *Evaluator) expenseStatus(pct decimal.Decimal) core.Status {
	switch {
	case pct.GreaterThanOrEqual(hundred):
		return core.StatusOver
	case pct.GreaterThanOrEqual(e.thresholds.ExpenseWarning):
		return core.StatusWarning
	default:
		return core.StatusOK
	}
}

func (e *Evaluator) incomeStatus(pct decimal.Decimal) core.Status {
	switch {
	case pct.GreaterThanOrEqual(hundred):
		return core.StatusMet
	case pct.GreaterThanOrEqual(e.thresholds.IncomeWarning):
		return core.StatusWarning
	default:
		return core.StatusBehind
	}
}
