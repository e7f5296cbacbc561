package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FieldError describes one rejected field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError collects every problem found with an account.
type ValidationError struct {
	Fields []FieldError `json:"fields"`
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s %s", f.Field, f.Message))
	}
	return "account: invalid: " + strings.Join(msgs, "; ")
}

// Validate checks the fields a save depends on: credentials are present, the
// SteamID64 is numeric and the cooldown fields agree with the status.
func (a *Account) Validate() error {
	ve := &ValidationError{}

	if err := validate.Struct(a); err != nil {
		var errs validator.ValidationErrors
		if !errors.As(err, &errs) {
			return err
		}
		for _, fe := range errs {
			ve.Fields = append(ve.Fields, FieldError{Field: fe.Field(), Message: tagMessage(fe.Tag())})
		}
	}
	if strings.TrimSpace(a.Username) == "" && a.Username != "" {
		ve.Fields = append(ve.Fields, FieldError{Field: "Username", Message: "is blank"})
	}
	if strings.TrimSpace(a.Password) == "" && a.Password != "" {
		ve.Fields = append(ve.Fields, FieldError{Field: "Password", Message: "is blank"})
	}
	if a.Status == Cooldown && a.CooldownExpiry == nil {
		ve.Fields = append(ve.Fields, FieldError{Field: "CooldownExpiry", Message: "is required for cooldown"})
	}
	if a.Status != Cooldown && a.CooldownExpiry != nil {
		ve.Fields = append(ve.Fields, FieldError{Field: "CooldownExpiry", Message: "is only allowed for cooldown"})
	}

	if len(ve.Fields) == 0 {
		return nil
	}
	return ve
}

func tagMessage(tag string) string {
	switch tag {
	case "required":
		return "is required"
	case "number":
		return "must contain only digits"
	case "url":
		return "must be a URL"
	default:
		return "failed " + tag
	}
}
