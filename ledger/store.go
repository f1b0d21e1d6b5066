/*
store.go - Persistence interface for JSON document collections

PURPOSE:
  Defines the interface between the bookkeeping logic and storage. The
  store holds opaque string documents under string keys; everything above
  it deals in typed collections (repository.go).

KEY SHAPES:
  earnings           list of Entry
  expenses           list of Entry
  items              list of Item
  shops              list of Shop
  customers          list of Customer
  orders             list of Order
  archivedEarnings   map of month label -> list of Entry

IMPLEMENTATIONS:
  - store/sqlite: Production SQLite-backed store
  - ledger/store: In-memory store for tests and dev

SEE ALSO:
  - repository.go: Typed collection operations over this interface
*/
package ledger

import "context"

// =============================================================================
// KEY-VALUE STORE - Interface for document persistence
// =============================================================================

// KeyValueStore is asynchronous string-keyed document storage. Get reports
// presence separately from failure: a missing key is (value="", ok=false,
// err=nil), never an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
}

// =============================================================================
// COLLECTION KEYS
// =============================================================================

// Storage keys, preserved byte-for-byte from the documents the app
// already persists.
const (
	KeyEarnings         = "earnings"
	KeyExpenses         = "expenses"
	KeyItems            = "items"
	KeyShops            = "shops"
	KeyCustomers        = "customers"
	KeyOrders           = "orders"
	KeyArchivedEarnings = "archivedEarnings"
)
