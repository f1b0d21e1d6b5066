/*
dto.go - Data Transfer Objects for API requests and responses

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

Amounts cross the wire as JSON numbers (ledger.Money marshals bare);
*Display fields carry the two-decimal form the screens show. Validation
is done in handlers, DTOs are pure data carriers.
*/
package api

import "github.com/anjanadri/bakebook/ledger"

// =============================================================================
// EARNINGS / EXPENSES
// =============================================================================

// EntryDTO represents one earning or expense in API responses.
type EntryDTO struct {
	ID            int64        `json:"id"`
	Date          string       `json:"date"`
	Amount        ledger.Money `json:"amount"`
	AmountDisplay string       `json:"amount_display"`
}

// AddEntryRequest records a new earning or expense. Date is optional
// ("2006-01-02" or RFC3339); it defaults to now.
type AddEntryRequest struct {
	Date   string       `json:"date"`
	Amount ledger.Money `json:"amount"`
}

// =============================================================================
// CATALOG
// =============================================================================

type ItemDTO struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Price        ledger.Money `json:"price"`
	PriceDisplay string       `json:"price_display"`
}

type AddItemRequest struct {
	Name  string       `json:"name"`
	Price ledger.Money `json:"price"`
}

// UpdateItemRequest modifies an item in place. Nil/empty fields are left
// unchanged; the id never changes.
type UpdateItemRequest struct {
	Name  string        `json:"name"`
	Price *ledger.Money `json:"price"`
}

type ShopDTO struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type AddShopRequest struct {
	Name string `json:"name"`
}

// =============================================================================
// CUSTOMERS
// =============================================================================

type PurchaseDTO struct {
	Item        string       `json:"item"`
	Quantity    float64      `json:"quantity"`
	Cost        ledger.Money `json:"cost"`
	CostDisplay string       `json:"cost_display"`
}

type CustomerDTO struct {
	ID           int64         `json:"id"`
	Name         string        `json:"name"`
	Purchases    []PurchaseDTO `json:"purchases"`
	Total        ledger.Money  `json:"total"`
	TotalDisplay string        `json:"total_display"`
}

// RecordPurchaseRequest adds a purchase to a customer's ledger. The unit
// price is resolved from the item catalog by name.
type RecordPurchaseRequest struct {
	Customer string  `json:"customer"`
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
}

// =============================================================================
// ORDERS
// =============================================================================

type OrderItemDTO struct {
	Name        string       `json:"name"`
	Quantity    float64      `json:"quantity"`
	Cost        ledger.Money `json:"cost"`
	CostDisplay string       `json:"cost_display"`
}

type OrderDTO struct {
	ID           int64          `json:"id"`
	Shop         string         `json:"shop"`
	Items        []OrderItemDTO `json:"items"`
	Total        ledger.Money   `json:"total"`
	TotalDisplay string         `json:"total_display"`
}

// RecordOrderRequest appends an item to a shop's open order. The unit
// price is resolved from the item catalog by name.
type RecordOrderRequest struct {
	Shop     string  `json:"shop"`
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
}

// =============================================================================
// ARCHIVE & STATS
// =============================================================================

type ArchiveMonthDTO struct {
	Month        string       `json:"month"`
	Entries      []EntryDTO   `json:"entries"`
	Total        ledger.Money `json:"total"`
	TotalDisplay string       `json:"total_display"`
}

type SummaryDTO struct {
	TotalEarnings   ledger.Money `json:"total_earnings"`
	TotalExpenses   ledger.Money `json:"total_expenses"`
	AverageEarnings ledger.Money `json:"average_earnings"`
	AverageExpenses ledger.Money `json:"average_expenses"`
	Net             ledger.Money `json:"net"`
	NetDisplay      string       `json:"net_display"`
	Profitable      bool         `json:"profitable"`
}

// ErrorResponse is the JSON body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
