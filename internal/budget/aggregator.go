// Package budget derives totals and goal progress from a ledger snapshot.
//
// Everything here is a pure recomputation over its inputs: there is no cache
// and no incremental state, so callers recompute on every read.
package budget

import (
	"sort"

	"github.com/shopspring/decimal"

	"orcamento/internal/core"
)

// DefaultSavingsRate is the share of total income suggested as the savings
// target. It is a fixed business rule, not a user setting.
var DefaultSavingsRate = decimal.RequireFromString("0.20")

// TotalIncome sums the amounts of income transactions.
func TotalIncome(txs []core.Transaction) core.Money {
	return sumKind(txs, core.Income)
}

// TotalExpenses sums the amounts of expense transactions.
func TotalExpenses(txs []core.Transaction) core.Money {
	return sumKind(txs, core.Expense)
}

// Balance is income minus expenses and may be negative.
func Balance(txs []core.Transaction) core.Money {
	return TotalIncome(txs).Sub(TotalExpenses(txs))
}

// ExpensesByCategory sums expenses per category. Categories without
// expenses are absent from the map.
func ExpensesByCategory(txs []core.Transaction) map[string]core.Money {
	out := make(map[string]core.Money)
	for _, tx := range txs {
		if tx.Kind != core.Expense {
			continue
		}
		out[tx.Category] = out[tx.Category].Add(tx.Amount)
	}
	return out
}

func sumKind(txs []core.Transaction, k core.Kind) core.Money {
	var total core.Money
	for _, tx := range txs {
		if tx.Kind == k {
			total = total.Add(tx.Amount)
		}
	}
	return total
}

// Aggregator turns a ledger snapshot into a Summary.
type Aggregator struct {
	savingsRate decimal.Decimal
}

func NewAggregator(savingsRate decimal.Decimal) *Aggregator {
	return &Aggregator{savingsRate: savingsRate}
}

// SavingsTarget is totalIncome × savings rate, unrounded.
func (a *Aggregator) SavingsTarget(txs []core.Transaction) decimal.Decimal {
	return TotalIncome(txs).Decimal().Mul(a.savingsRate)
}

func (a *Aggregator) Summarize(txs []core.Transaction) core.Summary {
	income := TotalIncome(txs)
	expenses := TotalExpenses(txs)
	return core.Summary{
		TotalIncome:        income,
		TotalExpenses:      expenses,
		Balance:            income.Sub(expenses),
		ExpensesByCategory: ExpensesByCategory(txs),
		SavingsTarget:      income.Decimal().Mul(a.savingsRate),
	}
}

// CategoryBreakdown orders the per-category expenses by catalog position.
// Names missing from the catalog go last, alphabetically.
func CategoryBreakdown(s core.Summary, c core.Catalog) []core.CategoryAmount {
	out := make([]core.CategoryAmount, 0, len(s.ExpensesByCategory))
	seen := make(map[string]bool, len(s.ExpensesByCategory))
	for _, name := range c.Categories(core.Expense) {
		if amt, ok := s.ExpensesByCategory[name]; ok {
			out = append(out, core.CategoryAmount{Name: name, Amount: amt})
			seen[name] = true
		}
	}
	var rest []string
	for name := range s.ExpensesByCategory {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		out = append(out, core.CategoryAmount{Name: name, Amount: s.ExpensesByCategory[name]})
	}
	return out
}
