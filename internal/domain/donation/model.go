package donation

import (
	"errors"
	"strings"
	"time"

	"trust/internal/domain/validation"
)

// Donation purposes, as used in donate-page links (?type=...).
const (
	TypeElderCare        = "elder-care"
	TypeFoodDistribution = "food-distribution"
	TypeEducation        = "education"
	TypeMedicalCamps     = "medical-camps"
	TypeGeneral          = "general"
)

// ValidTypes lists donation purposes in display order.
var ValidTypes = []string{TypeElderCare, TypeFoodDistribution, TypeEducation, TypeMedicalCamps, TypeGeneral}

var typeLabels = map[string]string{
	TypeElderCare:        "Elder Care",
	TypeFoodDistribution: "Food Distribution",
	TypeEducation:        "Education Support",
	TypeMedicalCamps:     "Medical Camps",
	TypeGeneral:          "General Fund",
}

// PresetAmountsRupees are the quick-pick amounts on the donate page.
var PresetAmountsRupees = []int64{500, 1000, 2500, 5000, 10000}

// Domain errors. Messages are shown to donors verbatim.
var (
	ErrMissingDonor  = errors.New("Name and email are required")
	ErrInvalidEmail  = errors.New("Please enter a valid email address")
	ErrInvalidAmount = errors.New("Please enter a valid donation amount")
	ErrInvalidType   = errors.New("Please choose a valid donation purpose")
	ErrFieldTooLong  = errors.New("One of the fields is too long")
)

// Donation is a recorded pledge. No payment is taken by the site.
// Amounts are whole paise to avoid floating point.
type Donation struct {
	ID          string    `json:"id"`
	DonorName   string    `json:"donor_name" validate:"notblank,max=200"`
	DonorEmail  string    `json:"donor_email" validate:"notblank,emailshape,max=254"`
	DonorPhone  string    `json:"donor_phone,omitempty" validate:"omitempty,max=40"`
	AmountPaise int64     `json:"amount_paise" validate:"gt=0,lte=10000000000"`
	Type        string    `json:"donation_type" validate:"oneof=elder-care food-distribution education medical-camps general"`
	Message     string    `json:"message,omitempty" validate:"omitempty,max=2000"`
	CreatedAt   time.Time `json:"created_at"`
}

// Normalize trims donor input and applies the default purpose.
func (d *Donation) Normalize() {
	d.DonorName = strings.TrimSpace(d.DonorName)
	d.DonorEmail = strings.TrimSpace(d.DonorEmail)
	d.DonorPhone = strings.TrimSpace(d.DonorPhone)
	d.Message = strings.TrimSpace(d.Message)
	if d.Type == "" {
		d.Type = TypeGeneral
	}
}

// Validate checks if the Donation has valid data.
// PRE: Donation struct is populated
// POST: Returns nil if valid, a domain error otherwise
func (d *Donation) Validate() error {
	err := validation.Validate.Struct(d)
	if err == nil {
		return nil
	}
	failures := validation.Failures(err)
	switch {
	case failures == nil:
		return err
	case validation.HasTag(failures, validation.NotBlankTag):
		return ErrMissingDonor
	case validation.FieldFailed(failures, "donor_email", validation.EmailShapeTag):
		return ErrInvalidEmail
	case validation.HasTag(failures, "gt", "lte"):
		return ErrInvalidAmount
	case validation.HasTag(failures, "oneof"):
		return ErrInvalidType
	default:
		return ErrFieldTooLong
	}
}

// Amount returns the pledge formatted in rupees.
func (d Donation) Amount() string {
	return FormatRupees(d.AmountPaise)
}

// TypeLabel returns the display name of the donation purpose.
func (d Donation) TypeLabel() string {
	return TypeLabel(d.Type)
}

// IsValidType reports whether t is a known donation purpose.
func IsValidType(t string) bool {
	_, ok := typeLabels[t]
	return ok
}

// TypeLabel returns the display name for a donation purpose.
func TypeLabel(t string) string {
	if label, ok := typeLabels[t]; ok {
		return label
	}
	return t
}
