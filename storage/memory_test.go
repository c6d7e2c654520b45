// storage/memory_test.go
package storage

import (
	"sync"
	"testing"
	"time"

	"account-ledger/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccount(id, taxID, name string) *model.Account {
	return &model.Account{ID: id, TaxID: taxID, Name: name, Statement: []model.Entry{}}
}

func TestInsertAndFind(t *testing.T) {
	store := NewMemoryStore()

	t.Run("successfully insert and retrieve an account", func(t *testing.T) {
		// Arrange
		acc := newAccount("id-1", "111", "Alice")

		// Act
		err := store.Insert(acc)
		require.NoError(t, err)

		// Assert
		got, err := store.FindByTaxID("111")
		require.NoError(t, err)
		assert.Equal(t, "id-1", got.ID)
		assert.Equal(t, "Alice", got.Name)
		assert.True(t, store.Exists("111"))
		assert.Equal(t, 1, store.Len())
	})

	t.Run("duplicate tax id is rejected", func(t *testing.T) {
		err := store.Insert(newAccount("id-2", "111", "Mallory"))

		assert.ErrorIs(t, err, ErrDuplicateAccount)
		assert.Equal(t, 1, store.Len(), "failed insert must not change the store size")
		got, _ := store.FindByTaxID("111")
		assert.Equal(t, "id-1", got.ID)
	})

	t.Run("unknown tax id", func(t *testing.T) {
		_, err := store.FindByTaxID("999")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, store.Exists("999"))
	})
}

func TestSnapshotsAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	acc := newAccount("id-1", "111", "Alice")
	require.NoError(t, store.Insert(acc))

	// Mutating the inserted value or a returned snapshot must not leak into the store.
	acc.Name = "changed"
	snap, err := store.FindByTaxID("111")
	require.NoError(t, err)
	snap.Statement = append(snap.Statement, model.Entry{Type: model.Credit, Amount: decimal.NewFromInt(5)})

	again, err := store.FindByTaxID("111")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
	assert.Empty(t, again.Statement)
}

func TestUpdate(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Insert(newAccount("id-1", "111", "Alice")))

	t.Run("applies the mutation", func(t *testing.T) {
		err := store.Update("111", func(acc *model.Account) error {
			acc.Name = "Alicia"
			return nil
		})
		require.NoError(t, err)

		got, _ := store.FindByTaxID("111")
		assert.Equal(t, "Alicia", got.Name)
	})

	t.Run("returns the callback error", func(t *testing.T) {
		sentinel := assert.AnError
		err := store.Update("111", func(acc *model.Account) error { return sentinel })
		assert.ErrorIs(t, err, sentinel)
	})

	t.Run("unknown tax id never calls the callback", func(t *testing.T) {
		called := false
		err := store.Update("999", func(acc *model.Account) error {
			called = true
			return nil
		})
		assert.ErrorIs(t, err, ErrNotFound)
		assert.False(t, called)
	})
}

func TestRemove(t *testing.T) {
	t.Run("removes by identity", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Insert(newAccount("id-1", "111", "Alice")))
		require.NoError(t, store.Insert(newAccount("id-2", "222", "Bob")))

		err := store.Remove(&model.Account{ID: "id-1", TaxID: "111"})
		require.NoError(t, err)

		assert.False(t, store.Exists("111"))
		assert.True(t, store.Exists("222"), "other accounts are untouched")
		assert.Equal(t, 1, store.Len())
	})

	t.Run("mismatched id is not found", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Insert(newAccount("id-1", "111", "Alice")))

		err := store.Remove(&model.Account{ID: "other", TaxID: "111"})

		assert.ErrorIs(t, err, ErrNotFound)
		assert.True(t, store.Exists("111"))
	})

	t.Run("absent account", func(t *testing.T) {
		store := NewMemoryStore()
		err := store.Remove(&model.Account{ID: "id-1", TaxID: "111"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("tax id can be reused after removal", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Insert(newAccount("id-1", "111", "Alice")))
		require.NoError(t, store.Remove(&model.Account{ID: "id-1", TaxID: "111"}))

		require.NoError(t, store.Insert(newAccount("id-3", "111", "Carol")))

		got, err := store.FindByTaxID("111")
		require.NoError(t, err)
		assert.Equal(t, "id-3", got.ID)
	})
}

func TestUpdate_ConcurrentAppends(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Insert(newAccount("id-1", "111", "Alice")))

	const n = 200
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update("111", func(acc *model.Account) error {
				acc.Statement = append(acc.Statement, model.Entry{
					Type: model.Credit, Amount: decimal.NewFromInt(1), CreatedAt: time.Now(),
				})
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := store.FindByTaxID("111")
	require.NoError(t, err)
	assert.Len(t, got.Statement, n)
}

func TestRemove_WaitingUpdateSeesNotFound(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Insert(newAccount("id-1", "111", "Alice")))
	require.NoError(t, store.Insert(newAccount("id-2", "222", "Bob")))

	// Hold account 111 while a removal queues up behind it.
	holding := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = store.Update("111", func(acc *model.Account) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding

	removed := make(chan error, 1)
	go func() { removed <- store.Remove(&model.Account{ID: "id-1", TaxID: "111"}) }()

	// Other accounts stay reachable while the removal waits.
	_, err := store.FindByTaxID("222")
	require.NoError(t, err)

	close(release)
	require.NoError(t, <-removed)

	err = store.Update("111", func(acc *model.Account) error {
		t.Error("callback must not run on a removed account")
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_DifferentAccountsDoNotBlock(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Insert(newAccount("id-1", "111", "Alice")))
	require.NoError(t, store.Insert(newAccount("id-2", "222", "Bob")))

	holding := make(chan struct{})
	release := make(chan struct{})
	go func() {
		_ = store.Update("111", func(acc *model.Account) error {
			close(holding)
			<-release
			return nil
		})
	}()
	<-holding
	defer close(release)

	done := make(chan error, 1)
	go func() {
		done <- store.Update("222", func(acc *model.Account) error {
			acc.Name = "Robert"
			return nil
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("update of account 222 blocked behind account 111")
	}
}
