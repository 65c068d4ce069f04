package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/account-service/internal/auth"
	"github.com/spec-kit/account-service/internal/config"
	"github.com/spec-kit/account-service/internal/domain"
	"github.com/spec-kit/account-service/internal/events"
	"github.com/spec-kit/account-service/internal/persistence"
	"github.com/spec-kit/account-service/internal/repository"
	"github.com/spec-kit/account-service/pkg/util"
)

// Default pagination window applied when the caller omits parameters.
const (
	DefaultListLimit  = 10
	DefaultListOffset = 0
)

// AccountService coordinates the account use cases: registration,
// authentication, lookup, listing, update, deletion and search.
type AccountService struct {
	accounts   repository.AccountRepository
	cache      *persistence.AccountCache
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// AccountDependencies encapsulates collaborator requirements.
type AccountDependencies struct {
	Repo       repository.AccountRepository
	Cache      *persistence.AccountCache
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAccountService builds the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	return &AccountService{
		accounts:   deps.Repo,
		cache:      deps.Cache,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Register creates a new account after the password clears the strength
// policy. Duplicate emails are detected by the store's unique
// constraint on insert, never by a prior lookup.
func (s *AccountService) Register(ctx context.Context, name, email, password string) (int64, error) {
	if name == "" || email == "" || password == "" {
		return 0, util.NewValidationError("name, email and password are required", nil)
	}

	if ok, reason := auth.ValidatePassword(password); !ok {
		return 0, util.NewWeakPassword(reason)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return 0, util.NewInternalError(err)
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return 0, util.NewEmailExists("user with this email already exists, try login")
		}
		return 0, util.NewInternalError(err)
	}

	s.publish(ctx, events.EventAccountRegistered, account.ID, events.AccountRegisteredPayload{
		Name:  account.Name,
		Email: account.Email,
	})
	s.logger.Info("account registered", zap.Int64("account_id", account.ID))
	return account.ID, nil
}

// Authenticate verifies the email/password pair and returns the account
// id. Unknown email and wrong password collapse into the same outcome
// so callers cannot enumerate registered addresses.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (int64, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, util.NewInvalidCredentials()
		}
		return 0, util.NewInternalError(err)
	}

	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return 0, util.NewInvalidCredentials()
	}
	return account.ID, nil
}

// Get fetches an account by id, consulting the cache first. The
// credential digest is blanked before return.
func (s *AccountService) Get(ctx context.Context, id int64) (*domain.Account, error) {
	if cached := s.cache.Get(ctx, id); cached != nil {
		return cached, nil
	}

	account, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, util.NewNotFound("user")
		}
		return nil, util.NewInternalError(err)
	}

	account.PasswordHash = ""
	s.cache.Set(ctx, account)
	return account, nil
}

// List returns a page of accounts. An empty page is a valid outcome.
func (s *AccountService) List(ctx context.Context, limit, offset int) ([]domain.Account, error) {
	if limit < 0 || offset < 0 {
		return nil, util.NewValidationError("limit and offset must be non-negative integers", nil)
	}

	accounts, err := s.accounts.List(ctx, limit, offset)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidArgument) {
			return nil, util.NewValidationError(err.Error(), nil)
		}
		return nil, util.NewInternalError(err)
	}
	return accounts, nil
}

// Update changes name and email for an account. Both fields are
// mandatory; partial updates are not supported.
func (s *AccountService) Update(ctx context.Context, id int64, name, email string) error {
	if name == "" || email == "" {
		return util.NewValidationError("name and email are required", nil)
	}

	if err := s.accounts.Update(ctx, id, name, email); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return util.NewNotFound("user")
		case errors.Is(err, repository.ErrDuplicateEmail):
			return util.NewEmailExists("user with this email already exists")
		default:
			return util.NewInternalError(err)
		}
	}

	s.cache.Invalidate(ctx, id)
	s.publish(ctx, events.EventAccountUpdated, id, events.AccountUpdatedPayload{Name: name, Email: email})
	return nil
}

// Delete permanently removes an account by id.
func (s *AccountService) Delete(ctx context.Context, id int64) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return util.NewNotFound("user")
		}
		return util.NewInternalError(err)
	}

	s.cache.Invalidate(ctx, id)
	s.publish(ctx, events.EventAccountDeleted, id, nil)
	return nil
}

// Search returns accounts whose name contains the fragment,
// case-insensitively. An empty result set is success with zero items.
func (s *AccountService) Search(ctx context.Context, fragment string) ([]domain.Account, error) {
	if strings.TrimSpace(fragment) == "" {
		return nil, util.NewValidationError("please provide a name to search", nil)
	}

	accounts, err := s.accounts.SearchByName(ctx, fragment)
	if err != nil {
		return nil, util.NewInternalError(err)
	}
	return accounts, nil
}

func (s *AccountService) publish(ctx context.Context, eventType events.EventType, accountID int64, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		AccountID: accountID,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
