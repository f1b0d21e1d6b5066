/*
aggregate.go - Totals, averages, and profit/loss over loaded entries

Pure functions: they never touch storage, they only fold over lists the
repository already loaded. Arithmetic stays full-precision decimal;
two-place rounding is for display only.
*/
package ledger

import "github.com/shopspring/decimal"

// Sum totals the Amount fields. Empty input sums to zero.
func Sum(entries []Entry) Money {
	total := Money{}
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// Average returns Sum/len. Zero entries average to zero rather than
// failing on division.
func Average(entries []Entry) Money {
	if len(entries) == 0 {
		return Money{}
	}
	return Sum(entries).Div(decimal.NewFromInt(int64(len(entries))))
}

// NetProfit is earnings minus expenses. The sign classifies profit vs
// loss for display; there is no other numeric side effect.
func NetProfit(earningsTotal, expensesTotal Money) Money {
	return earningsTotal.Sub(expensesTotal)
}

// =============================================================================
// SUMMARY
// =============================================================================

// Summary is the statistics-screen rollup of both books.
type Summary struct {
	TotalEarnings   Money
	TotalExpenses   Money
	AverageEarnings Money
	AverageExpenses Money
	Net             Money
	Profitable      bool
}

// Summarize computes the full rollup from loaded earnings and expenses.
func Summarize(earnings, expenses []Entry) Summary {
	te := Sum(earnings)
	tx := Sum(expenses)
	net := NetProfit(te, tx)
	return Summary{
		TotalEarnings:   te,
		TotalExpenses:   tx,
		AverageEarnings: Average(earnings),
		AverageExpenses: Average(expenses),
		Net:             net,
		Profitable:      !net.IsNegative(),
	}
}
