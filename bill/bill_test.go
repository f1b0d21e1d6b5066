package bill_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjanadri/bakebook/bill"
	"github.com/anjanadri/bakebook/ledger"
)

func sampleOrder() ledger.Order {
	return ledger.Order{
		ID:   1,
		Shop: "Corner Store",
		Items: []ledger.OrderItem{
			{Name: "Bread", Quantity: 2, Cost: ledger.MustMoney("20")},
			{Name: "Bun", Quantity: 3, Cost: ledger.MustMoney("15.75")},
		},
	}
}

func TestFromOrder_BuildsDisplayForms(t *testing.T) {
	at := time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC)

	b := bill.FromOrder(sampleOrder(), "Test Bakery", at)

	assert.Equal(t, "Test Bakery", b.Business)
	assert.Equal(t, "10 Jun 2024 14:30", b.Date)
	assert.Equal(t, "Corner Store", b.Shop)
	require.Len(t, b.Lines, 2)
	assert.Equal(t, "20.00", b.Lines[0].Cost)
	assert.Equal(t, "15.75", b.Lines[1].Cost)
	assert.Equal(t, "35.75", b.Total)
}

func TestFromOrder_DefaultBusiness(t *testing.T) {
	b := bill.FromOrder(sampleOrder(), "", time.Now())
	assert.Equal(t, bill.DefaultBusiness, b.Business)
}

func TestHTML_RendersAllLines(t *testing.T) {
	at := time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC)

	html, err := bill.FromOrder(sampleOrder(), "Test Bakery", at).HTML()
	require.NoError(t, err)

	assert.Contains(t, html, "Test Bakery")
	assert.Contains(t, html, "Corner Store")
	assert.Contains(t, html, "Bread")
	assert.Contains(t, html, "Bun")
	assert.Contains(t, html, "20.00")
	assert.Contains(t, html, "15.75")
	assert.Contains(t, html, "Total: &#8377;35.75")
	assert.Contains(t, html, "Thank you!")
}

func TestFromLines_CostsFromUnitPrice(t *testing.T) {
	at := time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC)
	items := []bill.CounterItem{
		{Name: "Bread", Price: ledger.MustMoney("10"), Quantity: 2},
		{Name: "Cake", Price: ledger.MustMoney("25.50"), Quantity: 1.5},
	}

	b := bill.FromLines(items, "Test Bakery", at)

	assert.Empty(t, b.Shop, "counter bills have no shop")
	require.Len(t, b.Lines, 2)
	assert.Equal(t, "20.00", b.Lines[0].Cost)
	assert.Equal(t, "38.25", b.Lines[1].Cost)
	assert.Equal(t, "58.25", b.Total)
}

func TestRenderCounter_RendersWithoutShopLine(t *testing.T) {
	at := time.Date(2024, time.June, 10, 14, 30, 0, 0, time.UTC)
	items := []bill.CounterItem{
		{Name: "Bun", Price: ledger.MustMoney("5"), Quantity: 2},
	}

	html, err := bill.RenderCounter(items, "", at)
	require.NoError(t, err)

	assert.Contains(t, html, bill.DefaultBusiness)
	assert.Contains(t, html, "Bun")
	assert.Contains(t, html, "Total: &#8377;10.00")
	assert.NotContains(t, html, "Shop:")
}

func TestRenderCounter_EmptyItems_ZeroTotal(t *testing.T) {
	html, err := bill.RenderCounter(nil, "Test Bakery", time.Now())
	require.NoError(t, err)
	assert.Contains(t, html, "Total: &#8377;0.00")
}

func TestHTML_EscapesShopName(t *testing.T) {
	o := sampleOrder()
	o.Shop = `<script>alert("x")</script>`

	html, err := bill.FromOrder(o, "", time.Now()).HTML()
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>")
}
