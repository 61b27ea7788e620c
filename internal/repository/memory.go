package repository

import (
	"context"
	"sync"

	"tagarena/internal/model"
)

// MemoryLedgerRepo is an in-process LedgerRepo used by tests and by runs
// without a Mongo backend.
type MemoryLedgerRepo struct {
	mu       sync.Mutex
	accounts map[string]model.Account
}

func NewMemoryLedgerRepo() *MemoryLedgerRepo {
	return &MemoryLedgerRepo{
		accounts: make(map[string]model.Account),
	}
}

func (r *MemoryLedgerRepo) Get(ctx context.Context, name string) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	acct, ok := r.accounts[name]
	if !ok {
		return nil, nil
	}
	cp := acct
	cp.Purchased = append([]string(nil), acct.Purchased...)
	return &cp, nil
}

func (r *MemoryLedgerRepo) Upsert(ctx context.Context, acct *model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *acct
	cp.Purchased = append([]string(nil), acct.Purchased...)
	r.accounts[acct.Name] = cp
	return nil
}
