package ledger_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anjanadri/bakebook/ledger"
	"github.com/anjanadri/bakebook/ledger/store"
)

// =============================================================================
// TEST SETUP
// =============================================================================

func newTestRepo(t *testing.T) (*ledger.Repository, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	return ledger.NewRepository(mem), mem
}

func entry(id int64, amount string) ledger.Entry {
	return ledger.Entry{
		ID:     id,
		Date:   time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC),
		Amount: ledger.MustMoney(amount),
	}
}

// failStore fails every operation, for exercising StorageError paths.
type failStore struct{}

var errBoom = errors.New("boom")

func (failStore) Get(context.Context, string) (string, bool, error) { return "", false, errBoom }
func (failStore) Set(context.Context, string, string) error         { return errBoom }
func (failStore) Remove(context.Context, string) error              { return errBoom }
func (failStore) Keys(context.Context) ([]string, error)            { return nil, errBoom }

// =============================================================================
// LOAD SEMANTICS
// =============================================================================

func TestLoad_NeverWritten_ReturnsEmpty(t *testing.T) {
	// GIVEN: A key that has never been written
	// WHEN: Loading it
	// THEN: An empty list comes back, never an error

	repo, _ := newTestRepo(t)

	entries, err := ledger.Load[ledger.Entry](context.Background(), repo, ledger.KeyEarnings)
	require.NoError(t, err)
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestLoad_CorruptDocument_FailsOpen(t *testing.T) {
	// GIVEN: A document that is not valid JSON
	// WHEN: Loading the collection
	// THEN: It reads as empty rather than failing

	repo, mem := newTestRepo(t)
	require.NoError(t, mem.Set(context.Background(), ledger.KeyEarnings, "{not json"))

	entries, err := ledger.Load[ledger.Entry](context.Background(), repo, ledger.KeyEarnings)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoad_StoreFailure_IsStorageError(t *testing.T) {
	repo := ledger.NewRepository(failStore{})

	_, err := ledger.Load[ledger.Entry](context.Background(), repo, ledger.KeyEarnings)
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrStorage)
	assert.ErrorIs(t, err, errBoom)
}

func TestSave_StoreFailure_IsStorageError(t *testing.T) {
	repo := ledger.NewRepository(failStore{})

	err := ledger.Save(context.Background(), repo, ledger.KeyEarnings, []ledger.Entry{entry(1, "10")})
	require.Error(t, err)
	assert.ErrorIs(t, err, ledger.ErrStorage)
}

// =============================================================================
// ROUND-TRIP
// =============================================================================

func TestAppend_RoundTrip_PreservesFields(t *testing.T) {
	// GIVEN: A valid record appended to a collection
	// WHEN: Loading the collection back
	// THEN: The record is present with all fields intact

	repo, _ := newTestRepo(t)
	ctx := context.Background()

	e := entry(1718020800000, "123.45")
	require.NoError(t, ledger.Append(ctx, repo, ledger.KeyEarnings, e))

	entries, err := ledger.Load[ledger.Entry](ctx, repo, ledger.KeyEarnings)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)
	assert.True(t, e.Date.Equal(entries[0].Date))
	assert.True(t, e.Amount.Equal(entries[0].Amount), "amount should survive the JSON round-trip exactly")
}

// =============================================================================
// DELETE / UPDATE
// =============================================================================

func TestDeleteByID_MissingID_IsNoOp(t *testing.T) {
	// GIVEN: A collection without id 99999
	// WHEN: Deleting id 99999
	// THEN: The collection is unchanged and no error is returned

	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, ledger.Append(ctx, repo, ledger.KeyShops, ledger.Shop{ID: 1, Name: "Corner Store"}))

	require.NoError(t, ledger.DeleteByID[ledger.Shop](ctx, repo, ledger.KeyShops, 99999))

	shops, err := ledger.Load[ledger.Shop](ctx, repo, ledger.KeyShops)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, "Corner Store", shops[0].Name)
}

func TestDeleteByID_RemovesOnlyMatching(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, ledger.Append(ctx, repo, ledger.KeyShops, ledger.Shop{ID: 1, Name: "A"}))
	require.NoError(t, ledger.Append(ctx, repo, ledger.KeyShops, ledger.Shop{ID: 2, Name: "B"}))

	require.NoError(t, ledger.DeleteByID[ledger.Shop](ctx, repo, ledger.KeyShops, 1))

	shops, err := ledger.Load[ledger.Shop](ctx, repo, ledger.KeyShops)
	require.NoError(t, err)
	require.Len(t, shops, 1)
	assert.Equal(t, int64(2), shops[0].ID)
}

func TestUpdateByID_ModifiesInPlace_KeepsID(t *testing.T) {
	// GIVEN: A catalog item
	// WHEN: Updating its name and price by id
	// THEN: The item changes in place and the id is stable

	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, ledger.Append(ctx, repo, ledger.KeyItems, ledger.Item{ID: 7, Name: "Bun", Price: ledger.MustMoney("5")}))

	err := ledger.UpdateByID(ctx, repo, ledger.KeyItems, 7, func(it ledger.Item) ledger.Item {
		it.Name = "Sweet Bun"
		it.Price = ledger.MustMoney("6.5")
		return it
	})
	require.NoError(t, err)

	items, err := ledger.Load[ledger.Item](ctx, repo, ledger.KeyItems)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(7), items[0].ID)
	assert.Equal(t, "Sweet Bun", items[0].Name)
	assert.True(t, ledger.MustMoney("6.5").Equal(items[0].Price))
}

func TestUpdateByID_MissingID_IsNoOp(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, ledger.Append(ctx, repo, ledger.KeyItems, ledger.Item{ID: 7, Name: "Bun", Price: ledger.MustMoney("5")}))

	err := ledger.UpdateByID(ctx, repo, ledger.KeyItems, 8, func(it ledger.Item) ledger.Item {
		it.Name = "changed"
		return it
	})
	require.NoError(t, err)

	items, err := ledger.Load[ledger.Item](ctx, repo, ledger.KeyItems)
	require.NoError(t, err)
	assert.Equal(t, "Bun", items[0].Name)
}

// =============================================================================
// MUTUAL EXCLUSION
// =============================================================================

func TestAppend_ConcurrentSameKey_NoLostUpdates(t *testing.T) {
	// GIVEN: Many concurrent appends against the same collection
	// WHEN: All of them finish
	// THEN: Every record is present (no load-modify-save interleaving)

	repo, _ := newTestRepo(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		go func(i int) {
			defer wg.Done()
			_ = ledger.Append(ctx, repo, ledger.KeyEarnings, entry(int64(i), "1"))
		}(i)
	}
	wg.Wait()

	entries, err := ledger.Load[ledger.Entry](ctx, repo, ledger.KeyEarnings)
	require.NoError(t, err)
	assert.Len(t, entries, n)
}

// =============================================================================
// MONTHLY BUCKETS
// =============================================================================

func TestMonthlyKey_Format(t *testing.T) {
	june := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "orders_2024_6", ledger.MonthlyKey("orders", june))

	december := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "earnings_2025_12", ledger.MonthlyKey("earnings", december))
}

func TestAppendMonthly_LoadMonthly_RoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	june := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	require.NoError(t, ledger.AppendMonthly(ctx, repo, "orders", june, entry(1, "10")))
	require.NoError(t, ledger.AppendMonthly(ctx, repo, "orders", june, entry(2, "20")))

	got, err := ledger.LoadMonthly[ledger.Entry](ctx, repo, "orders", 2024, 6)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	other, err := ledger.LoadMonthly[ledger.Entry](ctx, repo, "orders", 2024, 7)
	require.NoError(t, err)
	assert.Empty(t, other, "a different month's bucket stays empty")
}
