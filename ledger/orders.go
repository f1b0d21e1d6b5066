/*
orders.go - Shop order ledger

PURPOSE:
  Accumulates ordered items per shop, one order per shop at a time. The
  order is the open bill; clearing it marks the bill paid.

NOTE ON MERGING:
  Unlike the customer ledger, repeat orders of the same item for the same
  shop are NOT merged - each RecordOrder appends a separate line. The
  bill lists one line per delivery, so two deliveries of "Bun" stay two
  lines.

SEE ALSO:
  - customer.go: The merging ledger
  - bill: HTML rendering of an order
*/
package ledger

import (
	"context"
	"strings"
)

// =============================================================================
// ORDER LEDGER
// =============================================================================

// OrderLedger maintains the orders collection.
type OrderLedger struct {
	repo *Repository
}

func NewOrderLedger(repo *Repository) *OrderLedger {
	return &OrderLedger{repo: repo}
}

// Orders returns all open orders.
func (l *OrderLedger) Orders(ctx context.Context) ([]Order, error) {
	return Load[Order](ctx, l.repo, KeyOrders)
}

// Order returns one open order by id.
func (l *OrderLedger) Order(ctx context.Context, id int64) (Order, bool, error) {
	return FindByID[Order](ctx, l.repo, KeyOrders, id)
}

// RecordOrder appends quantity x unitPrice of an item to the shop's open
// order, creating the order if the shop has none. Always a new line,
// never a merge. Returns the order as persisted.
func (l *OrderLedger) RecordOrder(ctx context.Context, shopName, itemName string, quantity float64, unitPrice Money) (Order, error) {
	if strings.TrimSpace(shopName) == "" {
		return Order{}, &ValidationError{Field: "shop", Message: "name is required"}
	}
	if strings.TrimSpace(itemName) == "" {
		return Order{}, &ValidationError{Field: "item", Message: "name is required"}
	}
	if quantity <= 0 {
		return Order{}, &ValidationError{Field: "quantity", Message: "must be greater than zero"}
	}
	if unitPrice.IsNegative() {
		return Order{}, &ValidationError{Field: "price", Message: "must not be negative"}
	}

	line := OrderItem{
		Name:     itemName,
		Quantity: quantity,
		Cost:     unitPrice.MulQuantity(quantity),
	}

	var result Order
	err := Mutate(ctx, l.repo, KeyOrders, func(orders []Order) ([]Order, error) {
		for i, o := range orders {
			if o.Shop == shopName {
				o.Items = append(o.Items, line)
				orders[i] = o
				result = o
				return orders, nil
			}
		}

		o := Order{
			ID:    NewID(),
			Shop:  shopName,
			Items: []OrderItem{line},
		}
		result = o
		return append(orders, o), nil
	})
	if err != nil {
		return Order{}, err
	}
	return result, nil
}

// ClearOrder removes the order entirely - bill paid, not a per-item
// clear. Absent id is a no-op.
func (l *OrderLedger) ClearOrder(ctx context.Context, id int64) error {
	return DeleteByID[Order](ctx, l.repo, KeyOrders, id)
}

// BillTotal sums all line costs of an order.
func BillTotal(o Order) Money {
	total := Money{}
	for _, it := range o.Items {
		total = total.Add(it.Cost)
	}
	return total
}
