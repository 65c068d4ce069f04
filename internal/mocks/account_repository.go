// Package mocks provides in-memory test doubles for repository
// interfaces.
package mocks

import (
	"context"
	"sort"
	"strings"

	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/repository"
)

// AccountRepo is an in-memory repository.AccountRepository with the
// same contract as the Postgres implementation: email uniqueness,
// monotonically assigned ids, case-insensitive name search.
type AccountRepo struct {
	nextID   int64
	accounts map[int64]domain.Account
}

// NewAccountRepo returns an empty in-memory repository.
func NewAccountRepo() *AccountRepo {
	return &AccountRepo{accounts: make(map[int64]domain.Account)}
}

func (f *AccountRepo) Create(_ context.Context, account *domain.Account) error {
	for _, existing := range f.accounts {
		if existing.Email == account.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	account.ID = f.nextID
	f.accounts[account.ID] = *account
	return nil
}

func (f *AccountRepo) GetByID(_ context.Context, id int64) (*domain.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &account, nil
}

func (f *AccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, account := range f.accounts {
		if account.Email == email {
			found := account
			return &found, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *AccountRepo) List(_ context.Context, limit, offset int) ([]domain.Account, error) {
	if limit < 0 || offset < 0 {
		return nil, repository.ErrInvalidArgument
	}
	all := f.sorted()
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, nil
}

func (f *AccountRepo) Update(_ context.Context, id int64, name, email string) error {
	account, ok := f.accounts[id]
	if !ok {
		return repository.ErrNotFound
	}
	for otherID, other := range f.accounts {
		if otherID != id && other.Email == email {
			return repository.ErrDuplicateEmail
		}
	}
	account.Name = name
	account.Email = email
	f.accounts[id] = account
	return nil
}

func (f *AccountRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.accounts[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.accounts, id)
	return nil
}

func (f *AccountRepo) SearchByName(_ context.Context, fragment string) ([]domain.Account, error) {
	var result []domain.Account
	for _, account := range f.sorted() {
		if strings.Contains(strings.ToLower(account.Name), strings.ToLower(fragment)) {
			result = append(result, account)
		}
	}
	return result, nil
}

// Len reports the number of stored accounts.
func (f *AccountRepo) Len() int {
	return len(f.accounts)
}

func (f *AccountRepo) sorted() []domain.Account {
	all := make([]domain.Account, 0, len(f.accounts))
	for _, account := range f.accounts {
		all = append(all, account)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return all
}
