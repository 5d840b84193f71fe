package orchestrators

import (
	"context"
	"errors"
	"testing"

	"trust/internal/domain/donation"
)

// TestExecuteRecordDonation tests pledge validation and persistence.
func TestExecuteRecordDonation(t *testing.T) {
	tests := []struct {
		name      string
		input     RecordDonationInput
		wantErr   error
		wantPaise int64
		wantType  string
	}{
		{
			name:      "preset amount general fund",
			input:     RecordDonationInput{DonorName: "Arun", DonorEmail: "arun@example.com", Amount: "2,500"},
			wantPaise: 250000,
			wantType:  donation.TypeGeneral,
		},
		{
			name:      "custom amount with paise",
			input:     RecordDonationInput{DonorName: "Arun", DonorEmail: "arun@example.com", Amount: "₹1000.50", Type: donation.TypeElderCare},
			wantPaise: 100050,
			wantType:  donation.TypeElderCare,
		},
		{name: "zero", input: RecordDonationInput{DonorName: "Arun", DonorEmail: "arun@example.com", Amount: "0"}, wantErr: donation.ErrInvalidAmount},
		{name: "missing donor wins over amount", input: RecordDonationInput{DonorEmail: "arun@example.com", Amount: "abc"}, wantErr: donation.ErrMissingDonor},
		{name: "bad email", input: RecordDonationInput{DonorName: "Arun", DonorEmail: "arun", Amount: "500"}, wantErr: donation.ErrInvalidEmail},
		{name: "unknown purpose", input: RecordDonationInput{DonorName: "Arun", DonorEmail: "arun@example.com", Amount: "500", Type: "temple"}, wantErr: donation.ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockDonationStore{}
			d, err := ExecuteRecordDonation(context.Background(), tt.input, RecordDonationDeps{DonationStore: store, GenerateID: sequentialIDs(), Now: testNow})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr != nil {
				if len(store.saved) != 0 {
					t.Error("invalid pledge was stored")
				}
				return
			}
			if d.AmountPaise != tt.wantPaise || d.Type != tt.wantType {
				t.Errorf("got %d paise / %q, want %d / %q", d.AmountPaise, d.Type, tt.wantPaise, tt.wantType)
			}
			if len(store.saved) != 1 {
				t.Errorf("stored %d pledges, want 1", len(store.saved))
			}
		})
	}
}
