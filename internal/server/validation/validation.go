// Package validation checks and normalizes sign-up and sign-in payloads.
//
// All string fields are trimmed before any rule runs, and the trimmed values
// are what callers get back. A failed check yields *ValidationError listing
// every violated rule, not only the first one.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	// Counted in runes.
	minPasswordLen = 8
	upperChars     = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars     = "0123456789"
	specialChars   = "@$!%*?&#"
)

type RegisterRequest struct {
	FirstName string `json:"firstName" validate:"required,max=50"`
	LastName  string `json:"lastName" validate:"required,max=50"`
	Email     string `json:"email" validate:"email"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"email"`
	Password string `json:"password"`
}

type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	v.RegisterStructValidation(func(sl validator.StructLevel) {
		checkPassword(sl, sl.Current().Interface().(RegisterRequest).Password)
	}, RegisterRequest{})
	v.RegisterStructValidation(func(sl validator.StructLevel) {
		checkPassword(sl, sl.Current().Interface().(LoginRequest).Password)
	}, LoginRequest{})

	return &Validator{v: v}
}

// Register returns the trimmed request or a *ValidationError.
func (v *Validator) Register(req RegisterRequest) (RegisterRequest, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)

	if err := v.check(req); err != nil {
		return RegisterRequest{}, err
	}
	return req, nil
}

// Login returns the trimmed request or a *ValidationError.
func (v *Validator) Login(req LoginRequest) (LoginRequest, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)

	if err := v.check(req); err != nil {
		return LoginRequest{}, err
	}
	return req, nil
}

func (v *Validator) check(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	verr := &ValidationError{Violations: make([]FieldViolation, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		verr.Violations = append(verr.Violations, FieldViolation{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe.Field(), fe.Tag()),
		})
	}
	return verr
}

func checkPassword(sl validator.StructLevel, password string) {
	report := func(tag, param string) {
		sl.ReportError(password, "password", "Password", tag, param)
	}

	if utf8.RuneCountInString(password) < minPasswordLen {
		report("min", "8")
	}
	if !strings.ContainsAny(password, upperChars) {
		report("uppercase", "")
	}
	if !strings.ContainsAny(password, digitChars) {
		report("digit", "")
	}
	if !strings.ContainsAny(password, specialChars) {
		report("special", specialChars)
	}
}
