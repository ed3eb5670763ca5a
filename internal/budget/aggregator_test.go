package budget

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orcamento/internal/core"
)

func tx(kind core.Kind, cents int64, category string) core.Transaction {
	return core.Transaction{Kind: kind, Amount: core.Money{Cents: cents}, Category: category, Description: "t"}
}

func salaryAndRent() []core.Transaction {
	return []core.Transaction{
		tx(core.Income, 500000, "Salário"),
		tx(core.Expense, 120000, "Moradia"),
	}
}

func TestSummarizeIncomeAndHousingExpense(t *testing.T) {
	s := NewAggregator(DefaultSavingsRate).Summarize(salaryAndRent())

	assert.Equal(t, core.Money{Cents: 500000}, s.TotalIncome)
	assert.Equal(t, core.Money{Cents: 120000}, s.TotalExpenses)
	assert.Equal(t, core.Money{Cents: 380000}, s.Balance)
	assert.True(t, s.SavingsTarget.Equal(decimal.NewFromInt(1000)), "savings target %s", s.SavingsTarget)
	assert.Equal(t, map[string]core.Money{"Moradia": {Cents: 120000}}, s.ExpensesByCategory)
}

func TestSummarizeLargestAmountsDoNotWrap(t *testing.T) {
	_, err := core.ParseMoney("92233720368547757.99")
	require.ErrorIs(t, err, core.ErrInvalidAmount)

	largest, err := core.ParseMoney("100000000000")
	require.NoError(t, err)
	txs := []core.Transaction{
		tx(core.Income, largest.Cents, "Salário"),
		tx(core.Income, largest.Cents, "Salário"),
		tx(core.Expense, largest.Cents, "Moradia"),
	}
	s := NewAggregator(DefaultSavingsRate).Summarize(txs)

	assert.Equal(t, core.Money{Cents: 2 * core.MaxAmountCents}, s.TotalIncome)
	assert.Equal(t, core.Money{Cents: core.MaxAmountCents}, s.Balance)
	assert.True(t, s.SavingsTarget.Equal(decimal.NewFromInt(40_000_000_000)), "savings target %s", s.SavingsTarget)
}

func TestSummarizeEmptyLedger(t *testing.T) {
	s := NewAggregator(DefaultSavingsRate).Summarize(nil)

	assert.Zero(t, s.TotalIncome.Cents)
	assert.Zero(t, s.TotalExpenses.Cents)
	assert.Zero(t, s.Balance.Cents)
	assert.True(t, s.SavingsTarget.IsZero())
	assert.Empty(t, s.ExpensesByCategory)
	assert.NotNil(t, s.ExpensesByCategory)
}

func TestBalanceMayBeNegative(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Income, 10000, "Freelance"),
		tx(core.Expense, 25050, "Lazer"),
	}
	assert.Equal(t, core.Money{Cents: -15050}, Balance(txs))
}

func TestExpensesByCategoryOmitsEmptyAndIgnoresIncome(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Income, 10000, "Outros"),
		tx(core.Expense, 1000, "Outros"),
		tx(core.Expense, 2500, "Alimentação"),
		tx(core.Expense, 499, "Alimentação"),
	}
	got := ExpensesByCategory(txs)
	assert.Equal(t, map[string]core.Money{
		"Outros":      {Cents: 1000},
		"Alimentação": {Cents: 2999},
	}, got)
	_, ok := got["Moradia"]
	assert.False(t, ok)
}

func TestSavingsTargetIsNotPreRounded(t *testing.T) {
	txs := []core.Transaction{tx(core.Income, 1, "Outros")}
	got := NewAggregator(DefaultSavingsRate).SavingsTarget(txs)
	assert.True(t, got.Equal(decimal.RequireFromString("0.002")), "got %s", got)
}

func TestSavingsRateIsInjectable(t *testing.T) {
	agg := NewAggregator(decimal.RequireFromString("0.5"))
	got := agg.Summarize(salaryAndRent()).SavingsTarget
	assert.True(t, got.Equal(decimal.NewFromInt(2500)), "got %s", got)
}

func TestSummaryInvariantsOnRandomLedgers(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	catalog := core.DefaultCatalog()
	agg := NewAggregator(DefaultSavingsRate)

	for round := 0; round < 200; round++ {
		var txs []core.Transaction
		for i := rng.Intn(40); i > 0; i-- {
			kind := core.Income
			if rng.Intn(2) == 0 {
				kind = core.Expense
			}
			cats := catalog.Categories(kind)
			txs = append(txs, tx(kind, 1+rng.Int63n(10_000_000), cats[rng.Intn(len(cats))]))
		}

		s := agg.Summarize(txs)
		require.Equal(t, s.TotalIncome.Sub(s.TotalExpenses), s.Balance)

		var sum core.Money
		for _, amt := range s.ExpensesByCategory {
			sum = sum.Add(amt)
		}
		require.Equal(t, s.TotalExpenses, sum)
		require.True(t, s.SavingsTarget.Equal(s.TotalIncome.Decimal().Mul(decimal.RequireFromString("0.2"))))
	}
}

func TestCategoryBreakdownFollowsCatalogOrder(t *testing.T) {
	s := core.Summary{ExpensesByCategory: map[string]core.Money{
		"Lazer":       {Cents: 300},
		"Alimentação": {Cents: 100},
		"Zzz":         {Cents: 5},
		"Moradia":     {Cents: 200},
	}}
	got := CategoryBreakdown(s, core.DefaultCatalog())
	require.Len(t, got, 4)
	assert.Equal(t, "Alimentação", got[0].Name)
	assert.Equal(t, "Moradia", got[1].Name)
	assert.Equal(t, "Lazer", got[2].Name)
	assert.Equal(t, "Zzz", got[3].Name)
}
