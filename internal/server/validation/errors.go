package validation

import (
	"strings"

	"github.com/dmitrijs2005/courseauth/internal/common"
)

// FieldViolation is one broken rule on one field.
type FieldViolation struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError lists every rule the payload broke, in field order.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.Field+": "+v.Message)
	}
	return common.ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error {
	return common.ErrValidation
}

// Has reports whether field broke rule.
func (e *ValidationError) Has(field, rule string) bool {
	for _, v := range e.Violations {
		if v.Field == field && v.Rule == rule {
			return true
		}
	}
	return false
}

var messages = map[string]string{
	"firstName/required": "Firstname is required",
	"firstName/max":      "Firstname is too long",
	"lastName/required":  "Lastname is required",
	"lastName/max":       "Lastname is too long",
	"email/email":        "Invalid email address",
	"password/min":       "Password must be at least 8 characters long",
	"password/uppercase": "Password must contain at least one uppercase letter",
	"password/digit":     "Password must contain at least one number",
	"password/special":   "Password must contain at least one special character",
}

func message(field, rule string) string {
	if m, ok := messages[field+"/"+rule]; ok {
		return m
	}
	return field + " is invalid"
}
