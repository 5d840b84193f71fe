package settings_test

import (
	"errors"
	"testing"

	"trust/internal/domain/settings"
)

// TestDecodeContactDetails tests decoding over defaults and version handling.
func TestDecodeContactDetails(t *testing.T) {
	def := settings.DefaultContactDetails()

	tests := []struct {
		name    string
		raw     string
		want    settings.ContactDetails
		wantErr error
	}{
		{
			name: "full payload",
			raw:  `{"v":1,"address":"Madurai","phone":"123","email":"a@b.org","notification_email":"alerts@b.org"}`,
			want: settings.ContactDetails{Version: 1, Address: "Madurai", Phone: "123", Email: "a@b.org", NotificationEmail: "alerts@b.org"},
		},
		{
			name: "legacy payload without version keeps missing defaults",
			raw:  `{"notification_email":"alerts@b.org"}`,
			want: settings.ContactDetails{Version: 1, Address: def.Address, Phone: def.Phone, Email: def.Email, NotificationEmail: "alerts@b.org"},
		},
		{
			name:    "future version falls back",
			raw:     `{"v":2,"address":"Elsewhere"}`,
			want:    def,
			wantErr: settings.ErrUnsupportedVersion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := settings.DecodeContactDetails([]byte(tt.raw))
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

// TestDecodeBankDetails_Malformed tests that malformed JSON yields defaults and an error.
func TestDecodeBankDetails_Malformed(t *testing.T) {
	got, err := settings.DecodeBankDetails([]byte(`{not json`))
	if err == nil {
		t.Fatal("expected error for malformed payload")
	}
	if got != settings.DefaultBankDetails() {
		t.Errorf("got %+v, want defaults", got)
	}
}

// TestBankDetails_Validate tests validation of BankDetails.
func TestBankDetails_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bank    settings.BankDetails
		wantErr error
	}{
		{name: "empty is valid", bank: settings.BankDetails{}},
		{name: "full", bank: settings.BankDetails{AccountName: "Vasantham Trust", AccountNumber: "1234567890", IFSCCode: "SBIN0001234", UPIID: "trust@sbi", QRCodeURL: "https://cdn.example.com/qr.png"}},
		{name: "short ifsc", bank: settings.BankDetails{IFSCCode: "SBIN01"}, wantErr: settings.ErrInvalidIFSC},
		{name: "bad upi", bank: settings.BankDetails{UPIID: "trust"}, wantErr: settings.ErrInvalidUPI},
		{name: "bad qr url", bank: settings.BankDetails{QRCodeURL: "data:image/png;base64,xx"}, wantErr: settings.ErrInvalidQRCodeURL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.bank.Validate(); err != tt.wantErr {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// TestContactDetails_Validate tests validation of ContactDetails.
func TestContactDetails_Validate(t *testing.T) {
	c := settings.DefaultContactDetails()
	if err := c.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
	c.NotificationEmail = "not-an-email"
	if err := c.Validate(); err != settings.ErrInvalidEmail {
		t.Errorf("Validate() = %v, want %v", err, settings.ErrInvalidEmail)
	}
}
