package validation

import (
	"errors"
	"regexp"
	"unicode"

	"careerai-backend/internal/domain"

	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

// DefaultRegion is used to parse phone numbers written without a country code.
const DefaultRegion = "US"

// Regex patterns
var (
	// Allow letters, spaces, and common name punctuation: . ' -
	nameRegex = regexp.MustCompile(`^[\p{L} .'-]+$`)
)

// ErrInvalidPhone is returned by NormalizePhone for unparseable or impossible numbers.
var ErrInvalidPhone = errors.New("invalid phone number")

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
	_ = v.RegisterValidation("app_status", ValidApplicationStatus)
	_ = v.RegisterValidation("user_status", ValidUserStatus)
	_ = v.RegisterValidation("user_role", ValidSignupRole)
	_ = v.RegisterValidation("job_type", ValidJobType)
}

// New returns a validator with the custom tags registered, using the
// `binding` struct tag like gin does.
func New() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	RegisterValidators(v)
	return v
}

// ValidName validates that a string contains only valid name characters
// Rejects digits and most special symbols
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone accepts numbers phonenumbers considers valid.
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := NormalizePhone(val)
	return err == nil
}

// NormalizePhone parses a phone number and formats it as E.164.
func NormalizePhone(raw string) (string, error) {
	num, err := phonenumbers.Parse(raw, DefaultRegion)
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		// Supplementary planes are mostly emoji and pictographs
		if r > 0x1F000 {
			return false
		}
		if unicode.In(r, unicode.So, unicode.Sk) {
			return false
		}
	}
	return true
}

// ValidApplicationStatus accepts any casing of a known application status.
func ValidApplicationStatus(fl validator.FieldLevel) bool {
	_, err := domain.ParseApplicationStatus(fl.Field().String())
	return err == nil
}

// ValidUserStatus accepts any casing of a known account status.
func ValidUserStatus(fl validator.FieldLevel) bool {
	_, err := domain.ParseUserStatus(fl.Field().String())
	return err == nil
}

// ValidSignupRole accepts the self-registrable roles. Admins are seeded, never signed up.
func ValidSignupRole(fl validator.FieldLevel) bool {
	role, err := domain.ParseRole(fl.Field().String())
	return err == nil && role != domain.RoleAdmin
}

// ValidJobType accepts any casing of a known job type.
func ValidJobType(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, err := domain.ParseJobType(val)
	return err == nil
}
