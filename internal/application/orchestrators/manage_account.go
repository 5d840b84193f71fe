package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"trust/internal/domain/account"
)

// AccountStoreForManage defines the store interface needed to delete or unlock accounts.
type AccountStoreForManage interface {
	GetByID(ctx context.Context, id string) (account.Account, error)
	Save(ctx context.Context, a account.Account) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int, error)
}

var (
	ErrCannotDeleteSelf = errors.New("you cannot delete your own account")
	ErrLastAdmin        = errors.New("the last admin account cannot be deleted")
)

// ExecuteDeleteAccount removes a staff account.
// INVARIANT: at least one admin remains, and nobody deletes the account they are signed in with
func ExecuteDeleteAccount(ctx context.Context, actorID, targetID string, store AccountStoreForManage) error {
	if actorID == targetID {
		return ErrCannotDeleteSelf
	}
	target, err := store.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	if target.IsAdmin() {
		admins, err := store.CountByRole(ctx, account.RoleAdmin)
		if err != nil {
			return fmt.Errorf("count admins: %w", err)
		}
		if admins <= 1 {
			return ErrLastAdmin
		}
	}
	if err := store.Delete(ctx, targetID); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "account_deleted", "account_id", targetID, "by", actorID)
	return nil
}

// ExecuteUnlockAccount clears the failed-login counter and any lockout.
func ExecuteUnlockAccount(ctx context.Context, targetID string, store AccountStoreForManage) error {
	acct, err := store.GetByID(ctx, targetID)
	if err != nil {
		return err
	}
	acct.ResetFailedLogins()
	if err := store.Save(ctx, acct); err != nil {
		return err
	}
	slog.Info("auth_event", "event", "account_unlocked", "account_id", targetID)
	return nil
}
