// storage/memory.go

package storage

import (
	"errors"
	"sync"

	"account-ledger/model"
)

// Custom errors for the storage layer.
var (
	ErrNotFound         = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists")
)

// Store defines the operations on the account collection.
type Store interface {
	Insert(acc *model.Account) error
	Exists(taxID string) bool
	FindByTaxID(taxID string) (*model.Account, error)
	Update(taxID string, fn func(acc *model.Account) error) error
	Remove(acc *model.Account) error
	Len() int
}

// slot owns one account. Its mutex serialises every read and write of that
// account so a check-then-append never interleaves with another mutation.
type slot struct {
	mu      sync.Mutex
	account *model.Account
	removed bool
}

// MemoryStore implements Store with a map keyed by tax id.
// The map lock is held only to look up, insert or remove a slot; work on the
// account itself happens under the slot lock, so different accounts never
// wait on each other.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]*slot
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string]*slot)}
}

func (s *MemoryStore) lookup(taxID string) (*slot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sl, ok := s.slots[taxID]
	return sl, ok
}

// Insert adds a new account. It fails with ErrDuplicateAccount if the tax id
// is already taken. The store keeps its own copy of acc.
func (s *MemoryStore) Insert(acc *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.slots[acc.TaxID]; ok {
		return ErrDuplicateAccount
	}
	s.slots[acc.TaxID] = &slot{account: acc.Clone()}
	return nil
}

// Exists reports whether a live account uses the tax id.
func (s *MemoryStore) Exists(taxID string) bool {
	_, ok := s.lookup(taxID)
	return ok
}

// FindByTaxID returns a snapshot of the account.
func (s *MemoryStore) FindByTaxID(taxID string) (*model.Account, error) {
	var out *model.Account
	err := s.Update(taxID, func(acc *model.Account) error {
		out = acc.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update runs fn against the stored account while holding that account's
// lock. Whatever fn returns is returned unchanged; fn must leave the account
// untouched when it fails.
func (s *MemoryStore) Update(taxID string, fn func(acc *model.Account) error) error {
	sl, ok := s.lookup(taxID)
	if !ok {
		return ErrNotFound
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	// The account may have been removed while we waited for its lock.
	if sl.removed {
		return ErrNotFound
	}
	return fn(sl.account)
}

// Remove deletes the account whose id matches acc.ID. A tax id that now
// resolves to a different account is treated as not found.
// Lock order is slot then map, so a busy account never holds up lookups of others.
func (s *MemoryStore) Remove(acc *model.Account) error {
	sl, ok := s.lookup(acc.TaxID)
	if !ok {
		return ErrNotFound
	}

	sl.mu.Lock()
	defer sl.mu.Unlock()

	if sl.removed || sl.account.ID != acc.ID {
		return ErrNotFound
	}
	sl.removed = true

	s.mu.Lock()
	if s.slots[acc.TaxID] == sl {
		delete(s.slots, acc.TaxID)
	}
	s.mu.Unlock()
	return nil
}

// Len returns the number of live accounts.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.slots)
}
