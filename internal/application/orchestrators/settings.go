package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"trust/internal/domain/settings"
)

// SettingsStoreForOrchestrator defines the store interface needed by settings orchestrators.
type SettingsStoreForOrchestrator interface {
	Upsert(ctx context.Context, s settings.Setting) error
}

// SaveSettingsDeps holds dependencies for the settings orchestrators.
type SaveSettingsDeps struct {
	SettingsStore SettingsStoreForOrchestrator
	Now           func() time.Time
}

// ExecuteSaveBankDetails stores the bank details shown on the donate page.
// Saving the same details twice leaves one row with the same content.
// PRE: IFSC, UPI and QR URL well formed when present
// POST: row for bank_details holds the normalized payload
func ExecuteSaveBankDetails(ctx context.Context, input settings.BankDetails, deps SaveSettingsDeps) (settings.BankDetails, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return settings.BankDetails{}, err
	}
	if err := saveSetting(ctx, settings.KeyBankDetails, input, deps); err != nil {
		return settings.BankDetails{}, err
	}
	return input, nil
}

// ExecuteSaveContactDetails stores the trust's contact details and notification address.
// PRE: emails well formed when present
// POST: row for contact_details holds the normalized payload
func ExecuteSaveContactDetails(ctx context.Context, input settings.ContactDetails, deps SaveSettingsDeps) (settings.ContactDetails, error) {
	input.Normalize()
	if err := input.Validate(); err != nil {
		return settings.ContactDetails{}, err
	}
	if err := saveSetting(ctx, settings.KeyContactDetails, input, deps); err != nil {
		return settings.ContactDetails{}, err
	}
	return input, nil
}

func saveSetting(ctx context.Context, key string, payload any, deps SaveSettingsDeps) error {
	raw, err := settings.Encode(payload)
	if err != nil {
		return err
	}
	if err := deps.SettingsStore.Upsert(ctx, settings.Setting{Key: key, Value: raw, UpdatedAt: deps.Now()}); err != nil {
		return err
	}
	slog.Info("settings_event", "event", "settings_saved", "key", key)
	return nil
}
