package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"trust/internal/domain/donation"
)

// DonationStoreForOrchestrator defines the store interface needed by donation orchestrators.
type DonationStoreForOrchestrator interface {
	Save(ctx context.Context, d donation.Donation) error
}

// RecordDonationInput carries a pledge from the public donate form.
type RecordDonationInput struct {
	DonorName  string
	DonorEmail string
	DonorPhone string
	Amount     string // rupees as typed, e.g. "1,000"
	Type       string
	Message    string
}

// RecordDonationDeps holds dependencies for RecordDonation.
type RecordDonationDeps struct {
	DonationStore DonationStoreForOrchestrator
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteRecordDonation stores a donation pledge. No payment is taken.
// PRE: donor name and email present; amount positive; type known or empty
// POST: Donation persisted; empty type recorded as general
func ExecuteRecordDonation(ctx context.Context, input RecordDonationInput, deps RecordDonationDeps) (donation.Donation, error) {
	d := donation.Donation{
		ID:         deps.GenerateID(),
		DonorName:  input.DonorName,
		DonorEmail: input.DonorEmail,
		DonorPhone: input.DonorPhone,
		Type:       input.Type,
		Message:    input.Message,
		CreatedAt:  deps.Now(),
	}
	d.Normalize()
	paise, err := donation.ParseAmount(input.Amount)
	if err != nil {
		// Missing donor details are reported ahead of a bad amount.
		d.AmountPaise = 1
		if verr := d.Validate(); verr != nil {
			return donation.Donation{}, verr
		}
		return donation.Donation{}, err
	}
	d.AmountPaise = paise
	if err := d.Validate(); err != nil {
		return donation.Donation{}, err
	}
	if err := deps.DonationStore.Save(ctx, d); err != nil {
		return donation.Donation{}, err
	}

	slog.Info("donation_event", "event", "pledge_recorded", "donation_id", d.ID, "type", d.Type, "amount_paise", d.AmountPaise)
	return d, nil
}
