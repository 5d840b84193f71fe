package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"trust/internal/domain/validation"
)

// Setting keys
const (
	KeyBankDetails    = "bank_details"
	KeyContactDetails = "contact_details"
)

// SchemaVersion is the current version of every settings payload.
// Payloads without a version are treated as version 1.
const SchemaVersion = 1

// Domain errors
var (
	ErrUnknownKey         = errors.New("unknown settings key")
	ErrUnsupportedVersion = errors.New("settings payload version is newer than this build supports")
	ErrInvalidEmail       = errors.New("Please enter a valid email address")
	ErrInvalidIFSC        = errors.New("IFSC code must be 11 letters and digits")
	ErrInvalidUPI         = errors.New("UPI ID must look like name@bank")
	ErrInvalidQRCodeURL   = errors.New("QR code must be an http(s) URL")
	ErrFieldTooLong       = errors.New("One of the fields is too long")
)

// Setting is a raw keyed JSON document as stored.
type Setting struct {
	Key       string
	Value     json.RawMessage
	UpdatedAt time.Time
}

// BankDetails is the payload stored under KeyBankDetails.
type BankDetails struct {
	Version       int    `json:"v"`
	AccountName   string `json:"account_name" validate:"max=200"`
	AccountNumber string `json:"account_number" validate:"max=40"`
	BankName      string `json:"bank_name" validate:"max=200"`
	Branch        string `json:"branch" validate:"max=200"`
	IFSCCode      string `json:"ifsc_code" validate:"omitempty,len=11,alphanum"`
	UPIID         string `json:"upi_id" validate:"omitempty,contains=@,max=100"`
	QRCodeURL     string `json:"qr_code_url" validate:"omitempty,httpurl"`
}

// ContactDetails is the payload stored under KeyContactDetails.
// NotificationEmail receives contact-form alerts; empty disables them.
type ContactDetails struct {
	Version           int    `json:"v"`
	Address           string `json:"address" validate:"max=500"`
	Phone             string `json:"phone" validate:"max=40"`
	Email             string `json:"email" validate:"omitempty,emailshape"`
	NotificationEmail string `json:"notification_email" validate:"omitempty,emailshape"`
}

// DefaultBankDetails returns the bank details shown before an admin saves any.
func DefaultBankDetails() BankDetails {
	return BankDetails{Version: SchemaVersion}
}

// DefaultContactDetails returns the trust's published contact information.
func DefaultContactDetails() ContactDetails {
	return ContactDetails{
		Version: SchemaVersion,
		Address: "3-55, Samathuvapuram, ward no 3, Kothapulli, Reddiyarchathiram (po), Dindigul District, Tamil Nadu - 624 622",
		Phone:   "+91 73737 07162",
		Email:   "vasanthamcharitabletrust82@gmail.com",
	}
}

// Normalize trims fields and stamps the current schema version.
func (b *BankDetails) Normalize() {
	b.Version = SchemaVersion
	b.AccountName = strings.TrimSpace(b.AccountName)
	b.AccountNumber = strings.TrimSpace(b.AccountNumber)
	b.BankName = strings.TrimSpace(b.BankName)
	b.Branch = strings.TrimSpace(b.Branch)
	b.IFSCCode = strings.ToUpper(strings.TrimSpace(b.IFSCCode))
	b.UPIID = strings.TrimSpace(b.UPIID)
	b.QRCodeURL = strings.TrimSpace(b.QRCodeURL)
}

// Validate checks if the BankDetails have valid data.
// Every field is optional.
// PRE: BankDetails struct is populated
// POST: Returns nil if valid, a domain error otherwise
func (b *BankDetails) Validate() error {
	failures := validation.Failures(validation.Validate.Struct(b))
	switch {
	case failures == nil:
		return nil
	case validation.FieldFailed(failures, "ifsc_code", "len"), validation.FieldFailed(failures, "ifsc_code", "alphanum"):
		return ErrInvalidIFSC
	case validation.FieldFailed(failures, "upi_id", "contains"):
		return ErrInvalidUPI
	case validation.FieldFailed(failures, "qr_code_url", validation.HTTPURLTag):
		return ErrInvalidQRCodeURL
	default:
		return ErrFieldTooLong
	}
}

// HasAccount reports whether enough is filled in to show bank transfer details.
func (b BankDetails) HasAccount() bool {
	return b.AccountNumber != "" && b.IFSCCode != ""
}

// Normalize trims fields and stamps the current schema version.
func (c *ContactDetails) Normalize() {
	c.Version = SchemaVersion
	c.Address = strings.TrimSpace(c.Address)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Email = strings.TrimSpace(c.Email)
	c.NotificationEmail = strings.TrimSpace(c.NotificationEmail)
}

// Validate checks if the ContactDetails have valid data.
// PRE: ContactDetails struct is populated
// POST: Returns nil if valid, a domain error otherwise
func (c *ContactDetails) Validate() error {
	failures := validation.Failures(validation.Validate.Struct(c))
	switch {
	case failures == nil:
		return nil
	case validation.HasTag(failures, validation.EmailShapeTag):
		return ErrInvalidEmail
	default:
		return ErrFieldTooLong
	}
}

// DecodeBankDetails parses a stored payload over the defaults.
func DecodeBankDetails(raw []byte) (BankDetails, error) {
	b := DefaultBankDetails()
	if err := decodeVersioned(raw, &b, &b.Version); err != nil {
		return DefaultBankDetails(), err
	}
	return b, nil
}

// DecodeContactDetails parses a stored payload over the defaults.
// Fields absent from the payload keep their default values.
func DecodeContactDetails(raw []byte) (ContactDetails, error) {
	c := DefaultContactDetails()
	if err := decodeVersioned(raw, &c, &c.Version); err != nil {
		return DefaultContactDetails(), err
	}
	return c, nil
}

func decodeVersioned(raw []byte, dst any, version *int) error {
	*version = 0
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	if *version == 0 {
		*version = SchemaVersion
	}
	if *version > SchemaVersion {
		return fmt.Errorf("%w: got v%d", ErrUnsupportedVersion, *version)
	}
	return nil
}

// Encode marshals a settings payload for storage.
func Encode(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode settings: %w", err)
	}
	return b, nil
}

// IsKnownKey reports whether key names a settings document.
func IsKnownKey(key string) bool {
	return key == KeyBankDetails || key == KeyContactDetails
}
