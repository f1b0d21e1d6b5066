/*
Package bill renders an HTML bill for a shop order.

The layout mirrors the printed bill: business header, date line, shop
name, one row per order line (name / quantity / cost), and a two-decimal
total. Amounts are rounded to two places here and nowhere earlier.
*/
package bill

import (
	"html/template"
	"strings"
	"time"

	"github.com/anjanadri/bakebook/ledger"
)

// DefaultBusiness is the header used when no business name is configured.
const DefaultBusiness = "Anjanadri Condiments"

// Line is one rendered bill row.
type Line struct {
	Name     string
	Quantity float64
	Cost     string // two-decimal display form
}

// Bill is the renderable view of an order.
type Bill struct {
	Business string
	Date     string
	Shop     string
	Lines    []Line
	Total    string // two-decimal display form
}

// FromOrder builds a Bill from an open order. The date line is the
// moment of billing, not the order's creation.
func FromOrder(o ledger.Order, business string, at time.Time) Bill {
	if business == "" {
		business = DefaultBusiness
	}
	lines := make([]Line, len(o.Items))
	for i, it := range o.Items {
		lines[i] = Line{
			Name:     it.Name,
			Quantity: it.Quantity,
			Cost:     it.Cost.StringFixed2(),
		}
	}
	return Bill{
		Business: business,
		Date:     at.Format("02 Jan 2006 15:04"),
		Shop:     o.Shop,
		Lines:    lines,
		Total:    ledger.BillTotal(o).StringFixed2(),
	}
}

// CounterItem is one ad-hoc line rung up at the counter: an item name,
// its unit price, and a quantity. No shop order is involved.
type CounterItem struct {
	Name     string
	Price    ledger.Money
	Quantity float64
}

// FromLines builds a Bill from ad-hoc counter lines. Each line's cost is
// quantity x unit price; the bill carries no shop name.
func FromLines(items []CounterItem, business string, at time.Time) Bill {
	if business == "" {
		business = DefaultBusiness
	}
	lines := make([]Line, len(items))
	total := ledger.ZeroMoney()
	for i, it := range items {
		cost := it.Price.MulQuantity(it.Quantity)
		total = total.Add(cost)
		lines[i] = Line{
			Name:     it.Name,
			Quantity: it.Quantity,
			Cost:     cost.StringFixed2(),
		}
	}
	return Bill{
		Business: business,
		Date:     at.Format("02 Jan 2006 15:04"),
		Lines:    lines,
		Total:    total.StringFixed2(),
	}
}

// RenderCounter renders the ad-hoc counter bill for priced line items.
func RenderCounter(items []CounterItem, business string, at time.Time) (string, error) {
	return FromLines(items, business, at).HTML()
}

// HTML renders the bill document.
func (b Bill) HTML() (string, error) {
	var sb strings.Builder
	if err := billTemplate.Execute(&sb, b); err != nil {
		return "", err
	}
	return sb.String(), nil
}

var billTemplate = template.Must(template.New("bill").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; background-color: #ece1e1; padding: 20px; color: #333; }
  .bill-container { background-color: #fff; padding: 20px; border-radius: 10px; width: 80%; margin: auto; }
  .bill-title { text-align: center; font-size: 30px; font-weight: bold; margin-bottom: 25px; color: #2196f3; }
  .bill-meta { font-size: 16px; color: #777; margin-bottom: 15px; }
  .bill-row { display: flex; justify-content: space-between; padding: 10px 0; border-bottom: 1px solid #ddd; }
  .bill-cell { flex: 1; font-size: 20px; color: #555; }
  .bill-total { text-align: right; font-size: 24px; font-weight: bold; margin-top: 20px; }
</style>
</head>
<body>
<div class="bill-container">
  <div class="bill-title">{{.Business}}</div>
  <div class="bill-meta">Date: {{.Date}}</div>
{{- if .Shop}}
  <div class="bill-meta">Shop: {{.Shop}}</div>
{{- end}}
{{- range .Lines}}
  <div class="bill-row">
    <div class="bill-cell">{{.Name}}</div>
    <div class="bill-cell" style="text-align: center;">{{.Quantity}}</div>
    <div class="bill-cell" style="text-align: right;">&#8377;{{.Cost}}</div>
  </div>
{{- end}}
  <div class="bill-total">Total: &#8377;{{.Total}}</div>
  <div class="bill-meta" style="text-align: center; margin-top: 25px;">Thank you!</div>
</div>
</body>
</html>
`))
