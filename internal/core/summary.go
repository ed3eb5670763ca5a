package core

import "github.com/shopspring/decimal"

// Status classifies a goal's standing. Expense goals use ok/warning/over,
// income goals use behind/warning/met.
type Status string

const (
	StatusOK      Status = "ok"
	StatusWarning Status = "warning"
	StatusOver    Status = "over"
	StatusBehind  Status = "behind"
	StatusMet     Status = "met"
)

// Summary holds the totals derived from a ledger snapshot.
type Summary struct {
	TotalIncome        Money
	TotalExpenses      Money
	Balance            Money
	ExpensesByCategory map[string]Money
	SavingsTarget      decimal.Decimal
}

// ProgressRecord describes one goal's current-vs-target standing.
type ProgressRecord struct {
	GoalID     string
	Kind       Kind
	Category   string
	Current    Money
	Target     Money
	Percentage decimal.Decimal // capped at 100, two fractional digits
	Status     Status
	Overage    Money // expense goals only, zero unless Current > Target
}

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}
