package service

import (
	"context"
	"errors"
	"sync"

	"github.com/aussiebroadwan/copilot/internal/copilot/domain"
	"github.com/aussiebroadwan/copilot/internal/copilot/metrics"
	"github.com/aussiebroadwan/copilot/internal/copilot/store"
	"github.com/aussiebroadwan/copilot/pkg/idx"
	"github.com/aussiebroadwan/copilot/pkg/slogx"
)

var (
	ErrDuplicateAccount   = errors.New("account already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// AccountService registers accounts and checks credentials against the
// users collection. It never mints tokens; see TokenService.
type AccountService struct {
	Store store.Store
	IDs   *idx.Sequence

	mu sync.Mutex
}

// Signup appends a new account unless one with the same email exists.
// Fields are stored as given; an empty email is still an email.
func (s *AccountService) Signup(ctx context.Context, email, password, name string) (domain.PublicAccount, error) {
	l := slogx.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	accounts, err := store.Load[domain.Account](ctx, s.Store, store.Users)
	if err != nil {
		return domain.PublicAccount{}, err
	}

	for _, a := range accounts {
		if a.Email == email {
			l.Info("signup rejected, email taken")
			return domain.PublicAccount{}, ErrDuplicateAccount
		}
	}

	account := domain.Account{
		ID:       s.IDs.Next(),
		Email:    email,
		Password: password,
		Name:     name,
	}
	accounts = append(accounts, account)

	if err := store.Save(ctx, s.Store, store.Users, accounts); err != nil {
		l.Error("failed to save account", "error", err)
		return domain.PublicAccount{}, err
	}

	metrics.RecordCreated("account")
	l.Info("account created", "account_id", account.ID)
	return account.Public(), nil
}

// Login returns the public view of the account matching both email and
// password exactly.
func (s *AccountService) Login(ctx context.Context, email, password string) (domain.PublicAccount, error) {
	accounts, err := store.Load[domain.Account](ctx, s.Store, store.Users)
	if err != nil {
		return domain.PublicAccount{}, err
	}

	for _, a := range accounts {
		if a.Email == email && a.Password == password {
			return a.Public(), nil
		}
	}

	slogx.FromContext(ctx).Info("login rejected")
	return domain.PublicAccount{}, ErrInvalidCredentials
}
