package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	// Auth fields
	"Email":     "Email",
	"Password":  "Password",
	"FirstName": "First name",
	"LastName":  "Last name",
	"Role":      "Role",
	"Phone":     "Phone number",

	// Profile fields
	"AvatarURL":      "Avatar URL",
	"GraduationYear": "Graduation year",
	"GPA":            "GPA",
	"LinkedinURL":    "LinkedIn URL",
	"GithubURL":      "GitHub URL",
	"PortfolioURL":   "Portfolio URL",

	// Job fields
	"CompanyName":        "Company name",
	"CompanyDescription": "Company description",
	"JobType":            "Job type",
	"SalaryRange":        "Salary range",
	"LogoURL":            "Logo URL",
	"CoverURL":           "Cover URL",

	// Application and interview fields
	"JobID":                "Job",
	"ApplicationID":        "Application",
	"CoverLetter":          "Cover letter",
	"TechnicalScore":       "Technical score",
	"CommunicationScore":   "Communication score",
	"OverallScore":         "Overall score",
	"ConfidenceLevel":      "Confidence level",
	"ReadinessLevel":       "Readiness level",
	"HiringRecommendation": "Hiring recommendation",
}

// FormatValidationErrors converts validator.ValidationErrors to user-friendly messages
func FormatValidationErrors(err error) []string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatSingleError(e))
	}
	return messages
}

// formatSingleError formats a single validation error to a user-friendly message
func formatSingleError(e validator.FieldError) string {
	label := getFieldLabel(e.Field())
	param := e.Param()

	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", label)
	case "min":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", label, param)
		}
		return fmt.Sprintf("%s must have at least %s items", label, param)
	case "max":
		if e.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at most %s characters", label, param)
		}
		return fmt.Sprintf("%s must have at most %s items", label, param)
	case "gte":
		return fmt.Sprintf("%s must be at least %s", label, param)
	case "lte":
		return fmt.Sprintf("%s must be at most %s", label, param)
	case "email":
		return fmt.Sprintf("%s is not a valid email address", label)
	case "url":
		return fmt.Sprintf("%s is not a valid URL", label)
	case "valid_name":
		return fmt.Sprintf("%s may only contain letters, spaces and . ' -", label)
	case "valid_phone":
		return fmt.Sprintf("%s is not a valid phone number", label)
	case "no_emoji":
		return fmt.Sprintf("%s must not contain emoji or symbols", label)
	case "app_status":
		return fmt.Sprintf("%s must be one of: pending, applied, reviewing, interview, offer, accepted, rejected", label)
	case "user_status":
		return fmt.Sprintf("%s must be one of: Active, Inactive, Pending, Suspended", label)
	case "user_role":
		return fmt.Sprintf("%s must be STUDENT or EMPLOYER", label)
	case "job_type":
		return fmt.Sprintf("%s must be one of: Full-time, Part-time, Contract, Remote, Internship", label)
	default:
		return fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// getFieldLabel returns the user-friendly label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
