/*
customer.go - Customer purchase ledger

PURPOSE:
  Accumulates purchases per customer with a running total. Repeat
  purchases of the same item MERGE: quantity and cost are added onto the
  existing line rather than appended as a new one.

CRITICAL INVARIANT:
  After every RecordPurchase, customer.Total equals the sum of all
  purchase costs. The total is fully recomputed on each mutation, never
  incremented, so an externally edited purchase list cannot drift it.

MATCHING:
  Customers match by exact, case-sensitive name; the first match wins.
  Purchases match by exact item name. The stored item name is a snapshot;
  renaming a catalog item does not rewrite past purchases.

SEE ALSO:
  - orders.go: The shop-order ledger, which deliberately does NOT merge
  - repository.go: Mutate, the locked load-modify-save primitive
*/
package ledger

import (
	"context"
	"strings"
)

// =============================================================================
// CUSTOMER LEDGER
// =============================================================================

// CustomerLedger maintains the customers collection.
type CustomerLedger struct {
	repo *Repository
}

func NewCustomerLedger(repo *Repository) *CustomerLedger {
	return &CustomerLedger{repo: repo}
}

// Customers returns all customers.
func (l *CustomerLedger) Customers(ctx context.Context) ([]Customer, error) {
	return Load[Customer](ctx, l.repo, KeyCustomers)
}

// RecordPurchase adds quantity x unitPrice of an item to a customer's
// ledger, creating the customer if absent and merging onto an existing
// line for the same item. Returns the customer as persisted.
func (l *CustomerLedger) RecordPurchase(ctx context.Context, customerName, itemName string, quantity float64, unitPrice Money) (Customer, error) {
	if strings.TrimSpace(customerName) == "" {
		return Customer{}, &ValidationError{Field: "customer", Message: "name is required"}
	}
	if strings.TrimSpace(itemName) == "" {
		return Customer{}, &ValidationError{Field: "item", Message: "name is required"}
	}
	if quantity <= 0 {
		return Customer{}, &ValidationError{Field: "quantity", Message: "must be greater than zero"}
	}
	if unitPrice.IsNegative() {
		return Customer{}, &ValidationError{Field: "price", Message: "must not be negative"}
	}

	cost := unitPrice.MulQuantity(quantity)

	var result Customer
	err := Mutate(ctx, l.repo, KeyCustomers, func(customers []Customer) ([]Customer, error) {
		for i, c := range customers {
			if c.Name != customerName {
				continue
			}

			merged := false
			for j, p := range c.Purchases {
				if p.Item == itemName {
					c.Purchases[j].Quantity += quantity
					c.Purchases[j].Cost = p.Cost.Add(cost)
					merged = true
					break
				}
			}
			if !merged {
				c.Purchases = append(c.Purchases, Purchase{Item: itemName, Quantity: quantity, Cost: cost})
			}

			// Full recompute, not an incremental add.
			c.Total = purchaseTotal(c.Purchases)
			customers[i] = c
			result = c
			return customers, nil
		}

		// New customer.
		c := Customer{
			ID:        NewID(),
			Name:      customerName,
			Purchases: []Purchase{{Item: itemName, Quantity: quantity, Cost: cost}},
			Total:     cost,
		}
		result = c
		return append(customers, c), nil
	})
	if err != nil {
		return Customer{}, err
	}
	return result, nil
}

// DeleteCustomer removes a customer entirely. Absent id is a no-op.
func (l *CustomerLedger) DeleteCustomer(ctx context.Context, id int64) error {
	return DeleteByID[Customer](ctx, l.repo, KeyCustomers, id)
}

func purchaseTotal(purchases []Purchase) Money {
	total := Money{}
	for _, p := range purchases {
		total = total.Add(p.Cost)
	}
	return total
}
