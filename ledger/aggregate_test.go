package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/anjanadri/bakebook/ledger"
)

func TestSum_EmptyInput_IsZero(t *testing.T) {
	assert.True(t, ledger.Sum(nil).IsZero())
	assert.True(t, ledger.Sum([]ledger.Entry{}).IsZero())
}

func TestSum_ExactDecimalArithmetic(t *testing.T) {
	// Ten entries of 0.10 must total exactly 1.00 - the classic case
	// binary floats get wrong.
	var entries []ledger.Entry
	for i := 0; i < 10; i++ {
		entries = append(entries, entry(int64(i), "0.10"))
	}

	assert.True(t, ledger.MustMoney("1").Equal(ledger.Sum(entries)),
		"got %s", ledger.Sum(entries))
}

func TestAverage_ZeroRecords_IsZero(t *testing.T) {
	// GIVEN: No records
	// WHEN: Averaging
	// THEN: Zero, not a division error

	assert.True(t, ledger.Average(nil).IsZero())
}

func TestAverage_Computes(t *testing.T) {
	entries := []ledger.Entry{entry(1, "10"), entry(2, "20"), entry(3, "30")}
	assert.True(t, ledger.MustMoney("20").Equal(ledger.Average(entries)))
}

func TestNetProfit_SignClassifies(t *testing.T) {
	profit := ledger.NetProfit(ledger.MustMoney("100"), ledger.MustMoney("40"))
	assert.True(t, ledger.MustMoney("60").Equal(profit))
	assert.False(t, profit.IsNegative())

	loss := ledger.NetProfit(ledger.MustMoney("40"), ledger.MustMoney("100"))
	assert.True(t, loss.IsNegative())
}

func TestSummarize(t *testing.T) {
	earnings := []ledger.Entry{entry(1, "100"), entry(2, "200")}
	expenses := []ledger.Entry{entry(3, "50")}

	s := ledger.Summarize(earnings, expenses)

	assert.True(t, ledger.MustMoney("300").Equal(s.TotalEarnings))
	assert.True(t, ledger.MustMoney("50").Equal(s.TotalExpenses))
	assert.True(t, ledger.MustMoney("150").Equal(s.AverageEarnings))
	assert.True(t, ledger.MustMoney("50").Equal(s.AverageExpenses))
	assert.True(t, ledger.MustMoney("250").Equal(s.Net))
	assert.True(t, s.Profitable)
}

func TestSummarize_Loss(t *testing.T) {
	s := ledger.Summarize(
		[]ledger.Entry{entry(1, "10")},
		[]ledger.Entry{entry(2, "25")},
	)
	assert.True(t, ledger.MustMoney("-15").Equal(s.Net))
	assert.False(t, s.Profitable)
}
