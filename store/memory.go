package store

import (
	"context"
	"sync"
)

// Memory is an in-process implementation of both MasterStore and
// AccountStore. It backs tests and examples; production vaults use a
// durable backend such as boltstore.
type Memory struct {
	mu       sync.RWMutex
	master   *CipherPayload
	accounts map[string]Account
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{accounts: make(map[string]Account)}
}

// GetMaster implements MasterStore.
func (m *Memory) GetMaster(ctx context.Context) (*CipherPayload, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.master == nil {
		return nil, ErrNotFound
	}
	payload := *m.master
	return &payload, nil
}

// PutMaster implements MasterStore.
func (m *Memory) PutMaster(ctx context.Context, payload CipherPayload) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.master = &payload
	return nil
}

// Get implements AccountStore.
func (m *Memory) Get(ctx context.Context, publicIdentifier string) (*Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	account, ok := m.accounts[publicIdentifier]
	if !ok {
		return nil, ErrNotFound
	}
	return &account, nil
}

// Append implements AccountStore.
func (m *Memory) Append(ctx context.Context, account Account) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.accounts[account.PublicIdentifier]; ok {
		return existing.Index, nil
	}
	account.Index = uint32(len(m.accounts))
	m.accounts[account.PublicIdentifier] = account
	return account.Index, nil
}

// All implements AccountStore. Map iteration makes the delivery order
// deliberately unordered, matching the contract.
func (m *Memory) All(ctx context.Context) ([]Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		out = append(out, account)
	}
	return out, nil
}

// Clear implements AccountStore.
func (m *Memory) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts = make(map[string]Account)
	return nil
}

// ClearMaster drops the master secret record. Not part of the
// MasterStore contract; the vault discovers it by type assertion when
// wiping.
func (m *Memory) ClearMaster(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.master = nil
	return nil
}
