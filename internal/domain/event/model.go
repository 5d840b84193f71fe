package event

import (
	"errors"
	"path/filepath"
	"strings"
	"time"

	"trust/internal/domain/validation"
)

// Activity types
const (
	ActivityElderCare        = "elder_care"
	ActivityFoodDistribution = "food_distribution"
	ActivityEducation        = "education"
	ActivityMedicalCamp      = "medical_camp"
)

// ValidActivityTypes lists activity types in display order.
var ValidActivityTypes = []string{ActivityElderCare, ActivityFoodDistribution, ActivityEducation, ActivityMedicalCamp}

// activityLabels maps activity types to display names.
var activityLabels = map[string]string{
	ActivityElderCare:        "Elder Care",
	ActivityFoodDistribution: "Food Distribution",
	ActivityEducation:        "Education Support",
	ActivityMedicalCamp:      "Medical Camps",
}

// activitySlugs maps activity types to their public URL segment.
var activitySlugs = map[string]string{
	ActivityElderCare:        "elder-care",
	ActivityFoodDistribution: "food-distribution",
	ActivityEducation:        "education",
	ActivityMedicalCamp:      "medical-camps",
}

// DateLayout is the storage and form layout for event dates.
const DateLayout = "2006-01-02"

// PreviewLimit is the number of photos shown per event on listing pages.
const PreviewLimit = 6

// Max length constants for admin-editable fields.
const (
	MaxTitleLength       = 200
	MaxLocationLength    = 200
	MaxDescriptionLength = 5000
	MaxCaptionLength     = 300
)

// Domain errors
var (
	ErrEmptyTitle          = errors.New("event title cannot be empty")
	ErrEmptyDescription    = errors.New("event description cannot be empty")
	ErrEmptyLocation       = errors.New("event location cannot be empty")
	ErrInvalidActivityType = errors.New("activity type must be one of: elder_care, food_distribution, education, medical_camp")
	ErrInvalidDate         = errors.New("event date must be a valid date (YYYY-MM-DD)")
	ErrFieldTooLong        = errors.New("field exceeds maximum length")
	ErrEmptyEventID        = errors.New("photo must belong to an event")
	ErrInvalidImageURL     = errors.New("image URL must be an http(s) URL")
)

// Event is a dated activity run by the trust.
type Event struct {
	ID           string
	Title        string
	Description  string
	ActivityType string
	Location     string
	EventDate    time.Time // date only, UTC midnight
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Photo is an image attached to an event.
// PublicID is the media host identifier; empty for pasted URLs.
type Photo struct {
	ID        string
	EventID   string
	ImageURL  string
	PublicID  string
	Caption   string
	CreatedAt time.Time
}

// Validate checks if the Event has valid data.
// PRE: Event struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(e.Location) == "" {
		return ErrEmptyLocation
	}
	if len(e.Title) > MaxTitleLength || len(e.Location) > MaxLocationLength || len(e.Description) > MaxDescriptionLength {
		return ErrFieldTooLong
	}
	if !IsValidActivityType(e.ActivityType) {
		return ErrInvalidActivityType
	}
	if e.EventDate.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// DateString returns the event date in storage layout.
func (e Event) DateString() string {
	if e.EventDate.IsZero() {
		return ""
	}
	return e.EventDate.Format(DateLayout)
}

// ActivityLabel returns the display name of the event's activity type.
func (e Event) ActivityLabel() string {
	return ActivityLabel(e.ActivityType)
}

// Validate checks if the Photo has valid data.
// PRE: Photo struct is populated
// POST: Returns nil if valid, error otherwise
func (p *Photo) Validate() error {
	if p.EventID == "" {
		return ErrEmptyEventID
	}
	if !validation.IsHTTPURL(p.ImageURL) {
		return ErrInvalidImageURL
	}
	if len(p.Caption) > MaxCaptionLength {
		return ErrFieldTooLong
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD form value.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// IsValidActivityType reports whether t is a known activity type.
func IsValidActivityType(t string) bool {
	_, ok := activityLabels[t]
	return ok
}

// ActivityLabel returns the display name for an activity type.
func ActivityLabel(t string) string {
	if label, ok := activityLabels[t]; ok {
		return label
	}
	return t
}

// ActivitySlug returns the public URL segment for an activity type.
func ActivitySlug(t string) string {
	return activitySlugs[t]
}

// ParseActivitySlug maps a public URL segment back to its activity type.
func ParseActivitySlug(slug string) (string, bool) {
	for t, s := range activitySlugs {
		if s == slug {
			return t, true
		}
	}
	return "", false
}

// CaptionFromFilename derives a photo caption from an uploaded file name.
func CaptionFromFilename(name string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
