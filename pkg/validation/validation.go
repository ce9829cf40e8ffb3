// Package validation collects field errors for request DTOs.
//
// Each DTO owns a Validate method that walks its fields through a Checker and
// returns the Checker's result. Format rules (uuid, email) are delegated to
// go-playground/validator so they match what gin's binding layer accepts.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/mohammedmirzada/order-tracking/pkg/apperr"
)

var validate = validator.New()

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Checker struct {
	errs []FieldError
}

func New() *Checker { return &Checker{} }

func (c *Checker) Add(field, format string, args ...any) {
	c.errs = append(c.errs, FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
}

// Required fails on empty or whitespace-only strings.
func (c *Checker) Required(field, value string) bool {
	if strings.TrimSpace(value) == "" {
		c.Add(field, "%s should not be empty", field)
		return false
	}
	return true
}

func (c *Checker) MinLength(field, value string, n int) {
	if len([]rune(value)) < n {
		c.Add(field, "%s must be longer than or equal to %d characters", field, n)
	}
}

func (c *Checker) UUID(field, value string) {
	if validate.Var(value, "required,uuid") != nil {
		c.Add(field, "%s must be a UUID", field)
	}
}

func (c *Checker) Email(field, value string) {
	if validate.Var(value, "required,email") != nil {
		c.Add(field, "%s must be an email", field)
	}
}

// Date accepts a calendar date (2006-01-02) or an RFC 3339 timestamp.
func (c *Checker) Date(field, value string) {
	if _, err := ParseDate(value); err != nil {
		c.Add(field, "%s must be a valid ISO 8601 date string", field)
	}
}

func (c *Checker) MinInt(field string, value, min int) {
	if value < min {
		c.Add(field, "%s must not be less than %d", field, min)
	}
}

// NonNegative fails on a missing or negative amount.
func (c *Checker) NonNegative(field string, value *decimal.Decimal) {
	if value == nil {
		c.Add(field, "%s should not be empty", field)
		return
	}
	if value.IsNegative() {
		c.Add(field, "%s must not be less than 0", field)
	}
}

func (c *Checker) OneOf(field, value string, allowed []string) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	c.Add(field, "%s must be one of the following values: %s", field, strings.Join(allowed, ", "))
}

func (c *Checker) Errors() []FieldError { return c.errs }

// Err returns nil when every check passed, otherwise a validation *apperr.Error
// whose details hold the field errors.
func (c *Checker) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	msgs := make([]string, 0, len(c.errs))
	for _, e := range c.errs {
		msgs = append(msgs, e.Message)
	}
	return apperr.Validation(strings.Join(msgs, "; "), c.errs)
}

var dateLayouts = []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func ParseDate(value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", value)
}

// ParseOptionalDate converts an already validated optional date string.
func ParseOptionalDate(value *string) *time.Time {
	if value == nil {
		return nil
	}
	t, err := ParseDate(*value)
	if err != nil {
		return nil
	}
	return &t
}
