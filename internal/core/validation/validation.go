// Package validation is the single authoritative rule set for
// registration fields. The server enforces it on every write; clients
// may mirror it for inline feedback, but this copy always wins.
package validation

import (
	"regexp"
	"strconv"
	"strings"

	"staffdesk/internal/core/model"
)

const (
	FieldName     = "name"
	FieldEmail    = "email"
	FieldDOB      = "dob"
	FieldRole     = "role"
	FieldGender   = "gender"
	FieldAge      = "age"
	FieldMobile   = "mobile"
	FieldPassword = "password"
)

// Fields lists every registration field, in form order.
var Fields = []string{
	FieldName, FieldEmail, FieldDOB, FieldRole,
	FieldGender, FieldAge, FieldMobile, FieldPassword,
}

var (
	emailRe   = regexp.MustCompile(`^[\w.%+-]+@[\w.-]+\.[A-Za-z]{2,}$`)
	digitsRe  = regexp.MustCompile(`^\d+$`)
	mobileRe  = regexp.MustCompile(`^\d{10}$`)
	specialRe = regexp.MustCompile(`[!@#$%^&*]`)
)

type Result struct {
	Valid   bool
	Message string
}

func valid() Result             { return Result{Valid: true} }
func invalid(msg string) Result { return Result{Message: msg} }

// Validate checks a single raw field value. It is pure: no I/O, no
// state, callable from anywhere including tests and client bridges.
func Validate(field, value string) Result {
	switch field {
	case FieldName:
		if strings.TrimSpace(value) == "" {
			return invalid("Name is required")
		}
	case FieldEmail:
		if !emailRe.MatchString(value) {
			return invalid("Invalid email")
		}
	case FieldDOB:
		if value == "" {
			return invalid("Date of birth is required")
		}
	case FieldRole:
		if !model.Role(value).Valid() {
			return invalid("Please select a role")
		}
	case FieldGender:
		if !model.Gender(value).Valid() {
			return invalid("Please select gender")
		}
	case FieldAge:
		if !digitsRe.MatchString(value) {
			return invalid("Enter a valid age")
		}
		if n, err := strconv.Atoi(value); err != nil || n <= 0 {
			return invalid("Enter a valid age")
		}
	case FieldMobile:
		if !mobileRe.MatchString(value) {
			return invalid("Enter 10-digit number")
		}
	case FieldPassword:
		if len(value) < 6 {
			return invalid("Min 6 characters")
		}
		if !specialRe.MatchString(value) {
			return invalid("Add a special character")
		}
	}
	return valid()
}

// ValidateAll returns the failing fields only; an empty map means the
// input passed every rule.
func ValidateAll(fields map[string]string) map[string]string {
	failed := make(map[string]string)
	for field, value := range fields {
		if res := Validate(field, value); !res.Valid {
			failed[field] = res.Message
		}
	}
	return failed
}

// FormValid is the submission gate: every known field present and
// non-empty, and every value passing its rule.
func FormValid(fields map[string]string) bool {
	for _, field := range Fields {
		value, ok := fields[field]
		if !ok || value == "" {
			return false
		}
		if res := Validate(field, value); !res.Valid {
			return false
		}
	}
	return true
}
