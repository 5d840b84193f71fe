package gallery

import (
	"errors"
	"strings"
	"time"

	"trust/internal/domain/validation"
)

// Categories. The first four mirror event activity types.
const (
	CategoryElderCare        = "elder_care"
	CategoryFoodDistribution = "food_distribution"
	CategoryEducation        = "education"
	CategoryMedicalCamp      = "medical_camp"
	CategoryConstruction     = "construction"
	CategoryCommunity        = "community"
)

// ValidCategories lists categories in filter order.
var ValidCategories = []string{
	CategoryElderCare, CategoryFoodDistribution, CategoryEducation,
	CategoryMedicalCamp, CategoryConstruction, CategoryCommunity,
}

var categoryLabels = map[string]string{
	CategoryElderCare:        "Elder Care",
	CategoryFoodDistribution: "Food Distribution",
	CategoryEducation:        "Education",
	CategoryMedicalCamp:      "Medical Camps",
	CategoryConstruction:     "Construction",
	CategoryCommunity:        "Community",
}

const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 2000
)

// Domain errors
var (
	ErrEmptyTitle      = errors.New("image title cannot be empty")
	ErrInvalidImageURL = errors.New("image URL must be an http(s) URL")
	ErrInvalidCategory = errors.New("category must be one of: elder_care, food_distribution, education, medical_camp, construction, community")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
)

// Image is a standalone gallery entry.
type Image struct {
	ID          string
	ImageURL    string
	PublicID    string // media host identifier, empty for pasted URLs
	Title       string
	Description string
	Category    string // optional
	CreatedAt   time.Time
}

// Validate checks if the Image has valid data.
// PRE: Image struct is populated
// POST: Returns nil if valid, error otherwise
func (i *Image) Validate() error {
	if !validation.IsHTTPURL(i.ImageURL) {
		return ErrInvalidImageURL
	}
	if strings.TrimSpace(i.Title) == "" {
		return ErrEmptyTitle
	}
	if len(i.Title) > MaxTitleLength || len(i.Description) > MaxDescriptionLength {
		return ErrFieldTooLong
	}
	if i.Category != "" && !IsValidCategory(i.Category) {
		return ErrInvalidCategory
	}
	return nil
}

// CategoryLabel returns the display name of the image category.
func (i Image) CategoryLabel() string {
	return CategoryLabel(i.Category)
}

// IsValidCategory reports whether c is a known category.
func IsValidCategory(c string) bool {
	_, ok := categoryLabels[c]
	return ok
}

// CategoryLabel returns the display name for a category.
func CategoryLabel(c string) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return c
}
