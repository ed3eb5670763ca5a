package budget

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcamento/internal/core"
)

func newEvaluator() *Evaluator {
	return NewEvaluator(DefaultThresholds())
}

func summaryOf(txs ...core.Transaction) core.Summary {
	return NewAggregator(DefaultSavingsRate).Summarize(txs)
}

func TestEvaluateExpenseGoalOverLimit(t *testing.T) {
	goals := []core.Goal{{ID: "g1", Kind: core.Expense, Category: "Moradia", Amount: core.Money{Cents: 100000}, Period: core.Monthly}}

	recs := newEvaluator().Evaluate(goals, summaryOf(salaryAndRent()...))
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, "g1", r.GoalID)
	assert.Equal(t, "Moradia", r.Category)
	assert.Equal(t, core.Money{Cents: 120000}, r.Current)
	assert.Equal(t, core.Money{Cents: 100000}, r.Target)
	assert.Equal(t, "100.00", r.Percentage.StringFixed(2))
	assert.Equal(t, core.StatusOver, r.Status)
	assert.Equal(t, core.Money{Cents: 20000}, r.Overage)
}

func TestEvaluateIncomeGoalWarning(t *testing.T) {
	goals := []core.Goal{{ID: "g2", Kind: core.Income, Amount: core.Money{Cents: 600000}}}

	recs := newEvaluator().Evaluate(goals, summaryOf(salaryAndRent()...))
	require.Len(t, recs, 1)
	r := recs[0]
	assert.Equal(t, core.Money{Cents: 500000}, r.Current)
	assert.True(t, r.Percentage.Equal(decimal.RequireFromString("83.33")), "got %s", r.Percentage)
	assert.Equal(t, core.StatusWarning, r.Status)
	assert.True(t, r.Overage.IsZero())
}

func TestEvaluateEmpty(t *testing.T) {
	recs := newEvaluator().Evaluate(nil, summaryOf())
	assert.NotNil(t, recs)
	assert.Empty(t, recs)
}

func TestEvaluateExpenseGoalWithoutSpending(t *testing.T) {
	goals := []core.Goal{{ID: "g", Kind: core.Expense, Category: "Educação", Amount: core.Money{Cents: 50000}}}
	r := newEvaluator().Evaluate(goals, summaryOf(salaryAndRent()...))[0]
	assert.True(t, r.Current.IsZero())
	assert.True(t, r.Percentage.IsZero())
	assert.Equal(t, core.StatusOK, r.Status)
}

func TestExpenseStatusThresholds(t *testing.T) {
	tests := []struct {
		spent int64
		want  core.Status
	}{
		{0, core.StatusOK},
		{7999, core.StatusOK},
		{8000, core.StatusWarning},
		{9999, core.StatusWarning},
		{10000, core.StatusOver},
		{50000, core.StatusOver},
	}
	goal := core.Goal{Kind: core.Expense, Category: "Lazer", Amount: core.Money{Cents: 10000}}
	for _, tt := range tests {
		s := core.Summary{ExpensesByCategory: map[string]core.Money{"Lazer": {Cents: tt.spent}}}
		r := newEvaluator().Evaluate([]core.Goal{goal}, s)[0]
		assert.Equal(t, tt.want, r.Status, "spent %d", tt.spent)
	}
}

func TestIncomeStatusThresholds(t *testing.T) {
	tests := []struct {
		earned int64
		want   core.Status
	}{
		{0, core.StatusBehind},
		{6999, core.StatusBehind},
		{7000, core.StatusWarning},
		{7999, core.StatusWarning},
		{8000, core.StatusWarning},
		{9999, core.StatusWarning},
		{10000, core.StatusMet},
		{25000, core.StatusMet},
	}
	goal := core.Goal{Kind: core.Income, Amount: core.Money{Cents: 10000}}
	for _, tt := range tests {
		s := core.Summary{TotalIncome: core.Money{Cents: tt.earned}}
		r := newEvaluator().Evaluate([]core.Goal{goal}, s)[0]
		assert.Equal(t, tt.want, r.Status, "earned %d", tt.earned)
	}
}

func TestClassificationUsesUnroundedPercentage(t *testing.T) {
	// 79.999% rounds to 80.00 for display but is still below the cutoff.
	goal := core.Goal{Kind: core.Expense, Category: "Lazer", Amount: core.Money{Cents: 100000}}
	s := core.Summary{ExpensesByCategory: map[string]core.Money{"Lazer": {Cents: 79999}}}
	r := newEvaluator().Evaluate([]core.Goal{goal}, s)[0]
	assert.Equal(t, "80.00", r.Percentage.StringFixed(2))
	assert.Equal(t, core.StatusOK, r.Status)
}

func TestPercentageIsAlwaysWithinBounds(t *testing.T) {
	target := core.Money{Cents: 333}
	for _, current := range []int64{0, 1, 100, 332, 333, 334, 1_000_000, 1 << 40} {
		p := Percentage(core.Money{Cents: current}, target)
		assert.True(t, p.GreaterThanOrEqual(decimal.Zero), "current %d", current)
		assert.True(t, p.LessThanOrEqual(decimal.NewFromInt(100)), "current %d", current)
	}
	assert.True(t, Percentage(core.Money{Cents: 5}, core.Money{}).Equal(decimal.NewFromInt(100)))
}

func TestOverageIsUncapped(t *testing.T) {
	goal := core.Goal{Kind: core.Expense, Category: "Lazer", Amount: core.Money{Cents: 10000}}
	s := core.Summary{ExpensesByCategory: map[string]core.Money{"Lazer": {Cents: 1_000_000}}}
	r := newEvaluator().Evaluate([]core.Goal{goal}, s)[0]
	assert.Equal(t, "100.00", r.Percentage.StringFixed(2))
	assert.Equal(t, core.Money{Cents: 990000}, r.Overage)

	// exactly at the limit is "over" but has no overage
	s.ExpensesByCategory["Lazer"] = core.Money{Cents: 10000}
	r = newEvaluator().Evaluate([]core.Goal{goal}, s)[0]
	assert.Equal(t, core.StatusOver, r.Status)
	assert.True(t, r.Overage.IsZero())
}

func TestEvaluateKeepsGoalOrder(t *testing.T) {
	goals := []core.Goal{
		{ID: "a", Kind: core.Expense, Category: "Lazer", Amount: core.Money{Cents: 1}},
		{ID: "b", Kind: core.Income, Amount: core.Money{Cents: 1}},
		{ID: "c", Kind: core.Expense, Category: "Moradia", Amount: core.Money{Cents: 1}},
	}
	recs := newEvaluator().Evaluate(goals, summaryOf())
	require.Len(t, recs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{recs[0].GoalID, recs[1].GoalID, recs[2].GoalID})
}

func TestThresholdsAreInjectable(t *testing.T) {
	e := NewEvaluator(Thresholds{ExpenseWarning: decimal.NewFromInt(50), IncomeWarning: decimal.NewFromInt(90)})
	exp := core.Goal{Kind: core.Expense, Category: "Lazer", Amount: core.Money{Cents: 100}}
	inc := core.Goal{Kind: core.Income, Amount: core.Money{Cents: 100}}
	s := core.Summary{TotalIncome: core.Money{Cents: 80}, ExpensesByCategory: map[string]core.Money{"Lazer": {Cents: 60}}}

	recs := e.Evaluate([]core.Goal{exp, inc}, s)
	assert.Equal(t, core.StatusWarning, recs[0].Status)
	assert.Equal(t, core.StatusBehind, recs[1].Status)
}
