package service

import (
	"context" // Request-scoped cancellation
	"strings" // Email normalization

	"stock_management/internal/domain"     // Domain models and errors
	"stock_management/internal/pagination" // Paged listings
	"stock_management/internal/repository" // Storage interfaces

	"github.com/sirupsen/logrus" // Structured logging
)

// AccountInput carries the account fields of a request. Nil means "not supplied".
type AccountInput struct {
	FullName *string
	Email    *string
	Password *string
}

// AccountService implements the credential workflow and account CRUD
type AccountService struct {
	accounts repository.AccountRepository // Account storage
	cost     int                          // bcrypt work factor
}

// NewAccountService creates the service; cost is the bcrypt work factor
func NewAccountService(accounts repository.AccountRepository, cost int) *AccountService {
	return &AccountService{accounts: accounts, cost: cost}
}

func normalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// SignUp creates an account unless the email is already registered
func (s *AccountService) SignUp(ctx context.Context, in AccountInput) (*domain.Account, error) {
	if in.Email == nil {
		return nil, domain.Invalid("email", "email is required")
	}
	if in.Password == nil {
		return nil, domain.Invalid("password", "password is required")
	}
	email := normalizeEmail(*in.Email) // Stored and matched lowercase

	_, err := s.accounts.GetByEmail(ctx, email)
	taken, err := exists(domain.EntityAccount, err)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Conflict(domain.EntityAccount, "email")
	}

	a := &domain.Account{ID: newID(), Email: email, Role: domain.RoleUser}
	if in.FullName != nil {
		a.FullName = *in.FullName
	}
	if err := a.SetPassword(*in.Password, s.cost); err != nil {
		return nil, domain.Internal("Failed to hash password", err)
	}
	// A concurrent sign-up with the same email loses on the unique index
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, storeError(domain.EntityAccount, "email", err)
	}

	logrus.WithFields(logrus.Fields{"account_id": a.ID, "email": a.Email}).Info("Account created")
	return a, nil
}

// Create registers an account on behalf of an operator; same rules as SignUp
func (s *AccountService) Create(ctx context.Context, in AccountInput) (*domain.Account, error) {
	return s.SignUp(ctx, in)
}

// SignIn verifies a credential and returns the minimal identity projection
func (s *AccountService) SignIn(ctx context.Context, email, password string) (*domain.Identity, error) {
	a, err := s.accounts.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, storeError(domain.EntityAccount, "email", err)
	}
	if !a.CheckPassword(password) { // Compare against the bcrypt hash
		logrus.WithField("account_id", a.ID).Warn("Sign-in with invalid password")
		return nil, domain.Unauthorized("Invalid password")
	}
	id := a.Identity() // No hash, no timestamps
	return &id, nil
}

// Update merges the supplied fields; a new password is re-hashed
func (s *AccountService) Update(ctx context.Context, id string, in AccountInput) (*domain.Account, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(domain.EntityAccount, "email", err)
	}

	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		if email != a.Email { // Uniqueness only matters when it changes
			other, err := s.accounts.GetByEmail(ctx, email)
			found, err := exists(domain.EntityAccount, err)
			if err != nil {
				return nil, err
			}
			if found && other.ID != a.ID {
				return nil, domain.Conflict(domain.EntityAccount, "email")
			}
			a.Email = email
		}
	}
	if in.FullName != nil {
		a.FullName = *in.FullName
	}
	if in.Password != nil {
		if err := a.SetPassword(*in.Password, s.cost); err != nil { // Re-hash the new secret
			return nil, domain.Internal("Failed to hash password", err)
		}
	}

	if err := s.accounts.Update(ctx, a); err != nil {
		return nil, storeError(domain.EntityAccount, "email", err)
	}
	return a, nil
}

func (s *AccountService) FindAll(ctx context.Context, page, pageSize string) (*pagination.Page[domain.Account], error) {
	p, err := pagination.Paginate[domain.Account](ctx, s.accounts, page, pageSize)
	if err != nil {
		return nil, domain.Internal("Failed to list accounts", err)
	}
	return p, nil
}

func (s *AccountService) FindOne(ctx context.Context, id string) (*domain.Account, error) {
	a, err := s.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(domain.EntityAccount, "email", err)
	}
	return a, nil
}

// Delete removes the account. Orders that reference it are kept.
func (s *AccountService) Delete(ctx context.Context, id string) error {
	if err := s.accounts.Delete(ctx, id); err != nil {
		return storeError(domain.EntityAccount, "email", err)
	}
	logrus.WithField("account_id", id).Info("Account deleted")
	return nil
}
