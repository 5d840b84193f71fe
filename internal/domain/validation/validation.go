package validation

import (
	"errors"
	"net/url"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Custom tags registered on the shared validator.
const (
	EmailShapeTag = "emailshape"
	HTTPURLTag    = "httpurl"
	NotBlankTag   = "notblank"
)

var emailShapeRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Validate is the shared validator instance used by domain packages.
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report JSON field names so messages match the wire format.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation(EmailShapeTag, func(fl validator.FieldLevel) bool {
		return IsEmailShape(fl.Field().String())
	})
	_ = v.RegisterValidation(HTTPURLTag, func(fl validator.FieldLevel) bool {
		return IsHTTPURL(fl.Field().String())
	})
	_ = v.RegisterValidation(NotBlankTag, func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	return v
}

// IsEmailShape reports whether s looks like local@domain.tld.
func IsEmailShape(s string) bool {
	return emailShapeRegex.MatchString(s)
}

// IsHTTPURL reports whether s is an absolute http or https URL with a host.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Failures flattens a validator error into its field errors.
// Returns nil when err is not a validation failure.
func Failures(err error) []validator.FieldError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil
	}
	return ve
}

// HasTag reports whether any failure carries one of the given tags.
func HasTag(failures []validator.FieldError, tags ...string) bool {
	for _, f := range failures {
		for _, tag := range tags {
			if f.Tag() == tag {
				return true
			}
		}
	}
	return false
}

// FieldFailed reports whether the named field (JSON name) failed the given tag.
func FieldFailed(failures []validator.FieldError, field, tag string) bool {
	for _, f := range failures {
		if f.Field() == field && f.Tag() == tag {
			return true
		}
	}
	return false
}
