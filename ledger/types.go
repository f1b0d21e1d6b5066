/*
Package ledger provides the bookkeeping core: entities, a JSON-document
repository over a key-value store, aggregation, archival, and the customer
and shop-order ledgers.

KEY CONCEPTS IN THIS FILE (types.go):
  - Money: A monetary amount backed by decimal.Decimal (no float drift)
  - Entry: A dated earning or expense record
  - Item/Shop: Catalog entities
  - Customer/Purchase: A customer's accumulating purchase ledger
  - Order/OrderItem: A shop's accumulating order lines
  - NewID: Millisecond-timestamp identifiers, made collision-free

DESIGN PRINCIPLES:
  1. Precision: decimal.Decimal for every amount, never binary floats
  2. Value references: Purchase.Item and Order.Shop hold the NAME at the
     time of writing, so renaming a catalog entry never rewrites history
  3. Compatibility: JSON shapes and field names match the documents the
     storage layer already holds

SEE ALSO:
  - repository.go: Persistence of these entities as JSON collections
  - customer.go / orders.go: The two ledger views
*/
package ledger

import (
	"bytes"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// MONEY - Decimal-backed monetary amount
// =============================================================================

// Money is a monetary amount. All arithmetic is exact decimal arithmetic;
// rounding to two places happens only at display time.
type Money struct {
	d decimal.Decimal
}

func NewMoney(value float64) Money        { return Money{d: decimal.NewFromFloat(value)} }
func NewMoneyFromInt(value int64) Money   { return Money{d: decimal.NewFromInt(value)} }
func ZeroMoney() Money                    { return Money{} }

// MustMoney parses a decimal string and panics on malformed input. For
// trusted literals only; data read from storage goes through UnmarshalJSON.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic("ledger: bad money literal " + s + ": " + err.Error())
	}
	return Money{d: d}
}

func (m Money) Add(o Money) Money          { return Money{d: m.d.Add(o.d)} }
func (m Money) Sub(o Money) Money          { return Money{d: m.d.Sub(o.d)} }
func (m Money) Neg() Money                 { return Money{d: m.d.Neg()} }
func (m Money) Mul(s decimal.Decimal) Money { return Money{d: m.d.Mul(s)} }
func (m Money) Div(s decimal.Decimal) Money { return Money{d: m.d.Div(s)} }
func (m Money) IsZero() bool               { return m.d.IsZero() }
func (m Money) IsNegative() bool           { return m.d.IsNegative() }
func (m Money) IsPositive() bool           { return m.d.IsPositive() }
func (m Money) Equal(o Money) bool         { return m.d.Equal(o.d) }
func (m Money) Cmp(o Money) int            { return m.d.Cmp(o.d) }
func (m Money) Decimal() decimal.Decimal   { return m.d }

// MulQuantity scales the amount by a unit count (quantity x unit price).
func (m Money) MulQuantity(q float64) Money {
	return Money{d: m.d.Mul(decimal.NewFromFloat(q))}
}

// String returns the exact value, e.g. "12.5".
func (m Money) String() string { return m.d.String() }

// StringFixed2 returns the display form with two decimal places, e.g. "12.50".
func (m Money) StringFixed2() string { return m.d.StringFixed(2) }

// MarshalJSON emits a bare JSON number so stored documents keep the shape
// {"amount": 12.5} rather than a quoted string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.String()), nil
}

// UnmarshalJSON accepts both numbers and quoted numbers. Older order
// documents stored costs as strings ("12.50"); both forms must read back.
func (m *Money) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		m.d = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return err
	}
	m.d = d
	return nil
}

// =============================================================================
// ENTITIES
// =============================================================================

// Entry is a single dated earning or expense. Immutable once created,
// removed only by deletion.
type Entry struct {
	ID     int64     `json:"id"`
	Date   time.Time `json:"date"`
	Amount Money     `json:"amount"`
}

func (e Entry) RecordID() int64 { return e.ID }

// Item is a catalog entry. Name and price may be modified in place; the
// id is stable across modification.
type Item struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Price Money  `json:"price"`
}

func (i Item) RecordID() int64 { return i.ID }

// Shop is a buyer the bakery delivers to.
type Shop struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func (s Shop) RecordID() int64 { return s.ID }

// Purchase is one accumulated line in a customer's ledger. Item holds the
// item NAME at purchase time, not the catalog id.
type Purchase struct {
	Item     string  `json:"item"`
	Quantity float64 `json:"quantity"`
	Cost     Money   `json:"cost"`
}

// Customer accumulates purchases under an exact-match name key.
//
// INVARIANT: Total equals the sum of Purchases[].Cost after every mutation.
type Customer struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Purchases []Purchase `json:"purchases"`
	Total     Money      `json:"total"`
}

func (c Customer) RecordID() int64 { return c.ID }

// OrderItem is one delivery line in a shop order. Repeat orders of the
// same item are separate lines, they are never merged.
type OrderItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Cost     Money   `json:"cost"`
}

// Order accumulates order lines under an exact-match shop name.
type Order struct {
	ID    int64       `json:"id"`
	Shop  string      `json:"shop"`
	Items []OrderItem `json:"items"`
}

func (o Order) RecordID() int64 { return o.ID }

// ArchiveMap files earnings snapshots under a calendar month label
// ("January", "February", ...).
type ArchiveMap = map[string][]Entry

// =============================================================================
// IDENTIFIERS
// =============================================================================

// Identifiable is implemented by every record stored in a collection.
type Identifiable interface {
	RecordID() int64
}

var (
	idMu   sync.Mutex
	lastID int64
)

// NewID returns a unique identifier derived from the current time in
// milliseconds. Two calls within the same millisecond still produce
// distinct, increasing ids.
func NewID() int64 {
	idMu.Lock()
	defer idMu.Unlock()
	id := time.Now().UnixMilli()
	if id <= lastID {
		id = lastID + 1
	}
	lastID = id
	return id
}

// MonthLabel returns the calendar month name used as an archive key.
func MonthLabel(t time.Time) string { return t.Month().String() }
