package identity

import (
	"context"
	"strings"
	"sync"
)

// MemoryAccountsRepo is an in-memory AccountsRepo for dev runs without a
// database and for tests.
type MemoryAccountsRepo struct {
	mu       sync.RWMutex
	accounts map[string]Account // by id
	byEmail  map[string]string  // email -> id
}

// NewMemoryAccountsRepo constructs a MemoryAccountsRepo.
func NewMemoryAccountsRepo() *MemoryAccountsRepo {
	return &MemoryAccountsRepo{
		accounts: make(map[string]Account),
		byEmail:  make(map[string]string),
	}
}

var _ AccountsRepo = (*MemoryAccountsRepo)(nil)

func (r *MemoryAccountsRepo) Create(ctx context.Context, account Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	email := strings.ToLower(account.Email)
	if _, exists := r.byEmail[email]; exists {
		return ErrUserExists
	}
	r.accounts[account.ID] = account
	r.byEmail[email] = account.ID
	return nil
}

func (r *MemoryAccountsRepo) GetByEmail(ctx context.Context, email string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return Account{}, ErrUserNotFound
	}
	return r.accounts[id], nil
}

func (r *MemoryAccountsRepo) GetByID(ctx context.Context, id string) (Account, error) {
	if err := ctx.Err(); err != nil {
		return Account{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return Account{}, ErrUserNotFound
	}
	return account, nil
}

func (r *MemoryAccountsRepo) SetRole(ctx context.Context, id, role string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	account, ok := r.accounts[id]
	if !ok {
		return ErrUserNotFound
	}
	account.Role = role
	r.accounts[id] = account
	return nil
}
