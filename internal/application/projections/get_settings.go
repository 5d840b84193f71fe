package projections

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"trust/internal/domain/settings"
)

// SettingsResult carries every site setting with defaults applied.
type SettingsResult struct {
	Bank    settings.BankDetails
	Contact settings.ContactDetails
}

// QueryGetBankDetails returns the stored bank details, or the defaults when
// the row is missing, unreadable or malformed. It never fails.
func QueryGetBankDetails(ctx context.Context, store SettingsStore) settings.BankDetails {
	raw, ok := loadSetting(ctx, store, settings.KeyBankDetails)
	if !ok {
		return settings.DefaultBankDetails()
	}
	b, err := settings.DecodeBankDetails(raw)
	if err != nil {
		slog.Warn("settings_decode_failed", "key", settings.KeyBankDetails, "error", err)
	}
	return b
}

// QueryGetContactDetails returns the stored contact details, or the defaults
// when the row is missing, unreadable or malformed. It never fails.
func QueryGetContactDetails(ctx context.Context, store SettingsStore) settings.ContactDetails {
	raw, ok := loadSetting(ctx, store, settings.KeyContactDetails)
	if !ok {
		return settings.DefaultContactDetails()
	}
	c, err := settings.DecodeContactDetails(raw)
	if err != nil {
		slog.Warn("settings_decode_failed", "key", settings.KeyContactDetails, "error", err)
	}
	return c
}

// QueryGetSettings returns all settings with fallbacks applied.
func QueryGetSettings(ctx context.Context, store SettingsStore) SettingsResult {
	return SettingsResult{
		Bank:    QueryGetBankDetails(ctx, store),
		Contact: QueryGetContactDetails(ctx, store),
	}
}

func loadSetting(ctx context.Context, store SettingsStore, key string) ([]byte, bool) {
	if store == nil {
		return nil, false
	}
	s, err := store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			slog.Warn("settings_read_failed", "key", key, "error", err)
		}
		return nil, false
	}
	return s.Value, true
}
