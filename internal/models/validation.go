package models

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// Email validation regex pattern
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// FieldViolation describes a single violated field constraint
type FieldViolation struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ViolationError aggregates field violations into an error
type ViolationError struct {
	Violations []FieldViolation `json:"violations"`
}

// Error implements the error interface
func (e *ViolationError) Error() string {
	reasons := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		reasons = append(reasons, fmt.Sprintf("%s: %s", v.Field, v.Reason))
	}
	return "validation failed: " + strings.Join(reasons, "; ")
}

// IsValidEmail reports whether the string is a syntactically valid email address
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateUserID validates the identity key length constraints
func ValidateUserID(userID string) *FieldViolation {
	// Length constraints are in characters, not bytes
	if n := utf8.RuneCountInString(userID); n < UserIDMinLength || n > UserIDMaxLength {
		return &FieldViolation{
			Field:  "userId",
			Reason: fmt.Sprintf("must be between %d and %d characters", UserIDMinLength, UserIDMaxLength),
		}
	}
	return nil
}

// ValidateEmail validates email address syntax
func ValidateEmail(email string) *FieldViolation {
	if !IsValidEmail(email) {
		return &FieldViolation{
			Field:  "email",
			Reason: "must be a valid email address",
		}
	}
	return nil
}

// ValidateName validates a name field against the length constraints
func ValidateName(value, field string) *FieldViolation {
	if n := utf8.RuneCountInString(value); n < NameMinLength || n > NameMaxLength {
		return &FieldViolation{
			Field:  field,
			Reason: fmt.Sprintf("must be between %d and %d characters", NameMinLength, NameMaxLength),
		}
	}
	return nil
}

// ValidateAge validates the optional age range
func ValidateAge(age *int) *FieldViolation {
	if age == nil {
		return nil
	}
	if *age < AgeMin || *age > AgeMax {
		return &FieldViolation{
			Field:  "age",
			Reason: fmt.Sprintf("must be between %d and %d", AgeMin, AgeMax),
		}
	}
	return nil
}

// ValidateProfileFields validates a complete profile, returning every
// violated constraint. All fields are required except age.
func ValidateProfileFields(u *UserProfile) []FieldViolation {
	var violations []FieldViolation

	appendIf := func(v *FieldViolation) {
		if v != nil {
			violations = append(violations, *v)
		}
	}

	appendIf(ValidateUserID(u.UserID))
	appendIf(ValidateEmail(u.Email))
	appendIf(ValidateName(u.FirstName, "firstName"))
	appendIf(ValidateName(u.LastName, "lastName"))
	appendIf(ValidateAge(u.Age))

	return violations
}

// ValidateUpdateFields validates a partial update. Only supplied fields
// are checked, each against the same per-field constraints as create.
func ValidateUpdateFields(u *UserUpdate) []FieldViolation {
	var violations []FieldViolation

	appendIf := func(v *FieldViolation) {
		if v != nil {
			violations = append(violations, *v)
		}
	}

	if u.Email != nil {
		appendIf(ValidateEmail(*u.Email))
	}
	if u.FirstName != nil {
		appendIf(ValidateName(*u.FirstName, "firstName"))
	}
	if u.LastName != nil {
		appendIf(ValidateName(*u.LastName, "lastName"))
	}
	appendIf(ValidateAge(u.Age))

	return violations
}
