package orchestrators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"trust/internal/domain/account"
)

// AccountStoreForCreate defines the store interface needed by CreateAccount.
type AccountStoreForCreate interface {
	GetByEmail(ctx context.Context, email string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Count(ctx context.Context) (int, error)
}

// CreateAccountInput carries a new staff login from the accounts form.
type CreateAccountInput struct {
	Email    string
	Password string
	Role     string
}

// CreateAccountDeps holds dependencies for CreateAccount.
type CreateAccountDeps struct {
	AccountStore AccountStoreForCreate
	GenerateID   func() string
	Now          func() time.Time
}

var (
	ErrEmailAlreadyExists = errors.New("an account with this email already exists")
	ErrSeedPasswordUnset  = errors.New("no accounts exist and no admin password is configured")
)

// ExecuteCreateAccount adds a staff account and returns its id.
// Emails are stored lower-cased and must be unique without regard to case.
// POST: on nil error the account is saved with a bcrypt hash; input errors are
// account.ErrX or ErrEmailAlreadyExists
func ExecuteCreateAccount(ctx context.Context, input CreateAccountInput, deps CreateAccountDeps) (string, error) {
	acct := account.Account{
		Email: strings.ToLower(strings.TrimSpace(input.Email)),
		Role:  strings.TrimSpace(input.Role),
	}
	if err := acct.Validate(); err != nil {
		return "", err
	}

	_, err := deps.AccountStore.GetByEmail(ctx, acct.Email)
	switch {
	case err == nil:
		return "", ErrEmailAlreadyExists
	case !errors.Is(err, sql.ErrNoRows):
		return "", fmt.Errorf("look up account: %w", err)
	}

	if err := acct.SetPassword(input.Password); err != nil {
		return "", err
	}
	acct.ID = deps.GenerateID()
	acct.CreatedAt = deps.Now()
	if err := deps.AccountStore.Save(ctx, acct); err != nil {
		return "", fmt.Errorf("save account: %w", err)
	}

	slog.Info("auth_event", "event", "account_created", "account_id", acct.ID, "role", acct.Role)
	return acct.ID, nil
}

// ExecuteSeedAdmin creates the first admin when the account table is empty.
// It is a no-op once any account exists, so the configured password only
// matters on first start.
func ExecuteSeedAdmin(ctx context.Context, deps CreateAccountDeps, email, password string) error {
	count, err := deps.AccountStore.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if password == "" {
		return ErrSeedPasswordUnset
	}

	id, err := ExecuteCreateAccount(ctx, CreateAccountInput{
		Email:    email,
		Password: password,
		Role:     account.RoleAdmin,
	}, deps)
	if err != nil {
		return fmt.Errorf("seed admin %s: %w", email, err)
	}

	slog.Info("auth_event", "event", "admin_seeded", "account_id", id)
	return nil
}
