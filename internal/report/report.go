// Package report derives reporting values from the entity store: period
// totals, category breakdowns, daily spending series and point-in-time
// wealth figures. Everything here is a pure function of its inputs.
package report

import (
	"math"
	"sort"
	"time"

	"github.com/moneta-app/moneta/internal/model"
)

// Totals holds the period's expense and income sums. Transfers and
// adjustments count toward neither.
type Totals struct {
	Expenses model.Money
	Incomes  model.Money
}

// Filter returns the transactions whose date satisfies the period predicate,
// preserving newest-first order. A nil predicate keeps everything.
func Filter(txs []model.Transaction, within func(time.Time) bool) []model.Transaction {
	if within == nil {
		return append([]model.Transaction(nil), txs...)
	}
	out := make([]model.Transaction, 0, len(txs))
	for _, t := range txs {
		if within(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// ComputeTotals sums expenses and incomes over the filtered transactions.
func ComputeTotals(txs []model.Transaction) Totals {
	var totals Totals
	for _, t := range txs {
		switch t.Type {
		case model.TypeExpense:
			totals.Expenses = totals.Expenses.Add(t.Amount)
		case model.TypeIncome:
			totals.Incomes = totals.Incomes.Add(t.Amount)
		}
	}
	return totals
}

// SavingsIndicator is the share of income not spent, as a whole percentage
// clamped at zero. Zero income yields zero: no division, no negative rates.
func SavingsIndicator(totals Totals) int {
	if totals.Incomes.Cents == 0 {
		return 0
	}
	ratio := 1 - float64(totals.Expenses.Cents)/float64(totals.Incomes.Cents)
	pct := int(math.Round(ratio * 100))
	if pct < 0 {
		return 0
	}
	return pct
}

// DayPoint is one day of the daily spending series.
type DayPoint struct {
	Day    int
	Amount model.Money
}

// DailySeries buckets expense transactions by day over the anchor's month.
// Every calendar day of the month gets a point, zero-filled when nothing was
// spent.
func DailySeries(txs []model.Transaction, anchor time.Time) []DayPoint {
	daysInMonth := time.Date(anchor.Year(), anchor.Month()+1, 0, 0, 0, 0, 0, anchor.Location()).Day()

	series := make([]DayPoint, daysInMonth)
	for i := range series {
		series[i].Day = i + 1
	}
	for _, t := range txs {
		if t.Type != model.TypeExpense {
			continue
		}
		if t.Date.Year() != anchor.Year() || t.Date.Month() != anchor.Month() {
			continue
		}
		d := t.Date.Day()
		series[d-1].Amount = series[d-1].Amount.Add(t.Amount)
	}
	return series
}

// CategoryShare is one slice of the expense breakdown.
type CategoryShare struct {
	Category model.Category
	Amount   model.Money
	// Percentage is this category's rounded share of the expense total,
	// zero when there were no expenses at all.
	Percentage int
}

// CategoryBreakdown sums expenses per expense category over the filtered
// transactions. Categories with nothing spent are dropped and the rest
// sorted by amount descending.
func CategoryBreakdown(txs []model.Transaction, categories []model.Category) []CategoryShare {
	sums := make(map[string]model.Money)
	var total model.Money
	for _, t := range txs {
		if t.Type != model.TypeExpense {
			continue
		}
		sums[t.CategoryID] = sums[t.CategoryID].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	shares := make([]CategoryShare, 0, len(categories))
	for _, c := range categories {
		if c.Kind != model.CategoryKindExpense {
			continue
		}
		amount := sums[c.ID]
		if !amount.IsPositive() {
			continue
		}
		pct := 0
		if total.Cents > 0 {
			pct = int(math.Round(float64(amount.Cents) / float64(total.Cents) * 100))
		}
		shares = append(shares, CategoryShare{Category: c, Amount: amount, Percentage: pct})
	}

	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount.Cents > shares[j].Amount.Cents
	})
	return shares
}

// CategoryTotal sums all filtered transactions referencing one category.
func CategoryTotal(txs []model.Transaction, categoryID string) model.Money {
	var total model.Money
	for _, t := range txs {
		if t.CategoryID == categoryID {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// Wealth holds the point-in-time balance figures. These read current account
// balances and ignore the reporting period entirely.
type Wealth struct {
	Assets model.Money // regular plus savings balances
	Debts  model.Money // magnitude of debt balances
	Net    model.Money // assets minus debts
}

// ComputeWealth sums account balances by kind.
func ComputeWealth(accounts []model.Account) Wealth {
	var regular, savings, debt model.Money
	for _, a := range accounts {
		switch a.Kind {
		case model.AccountKindSavings:
			savings = savings.Add(a.Balance)
		case model.AccountKindDebt:
			debt = debt.Add(a.Balance)
		default:
			regular = regular.Add(a.Balance)
		}
	}
	assets := regular.Add(savings)
	debts := debt.Abs()
	return Wealth{
		Assets: assets,
		Debts:  debts,
		Net:    assets.Sub(debts),
	}
}

// Stats holds the dashboard's small numbers: what was spent today and the
// average spend per calendar day of the anchor month.
type Stats struct {
	TodayTotal model.Money
	AvgPerDay  model.Money
}

// ComputeStats derives Stats from the filtered transactions. today is
// compared by calendar date.
func ComputeStats(txs []model.Transaction, totals Totals, anchor, today time.Time) Stats {
	var todayTotal model.Money
	for _, t := range txs {
		if t.Type != model.TypeExpense {
			continue
		}
		y1, m1, d1 := t.Date.Date()
		y2, m2, d2 := today.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			todayTotal = todayTotal.Add(t.Amount)
		}
	}

	daysInMonth := time.Date(anchor.Year(), anchor.Month()+1, 0, 0, 0, 0, 0, anchor.Location()).Day()
	avg := model.Money{Cents: totals.Expenses.Cents / int64(daysInMonth)}

	return Stats{TodayTotal: todayTotal, AvgPerDay: avg}
}
