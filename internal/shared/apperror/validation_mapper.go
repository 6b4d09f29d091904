package apperror

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError is one entry of the "errors" array of a validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldErrors carries every failing field of a payload.
type FieldErrors []FieldError

func (fe FieldErrors) Error() string {
	parts := make([]string, 0, len(fe))
	for _, e := range fe {
		parts = append(parts, e.Field+": "+e.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field failed with exactly message.
func (fe FieldErrors) Has(field, message string) bool {
	for _, e := range fe {
		if e.Field == field && e.Message == message {
			return true
		}
	}
	return false
}

// first_name -> First Name
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// FieldMessage looks up "<field>.<tag>" in messages, falling back to a
// generic text built from the field name.
func FieldMessage(field, tag string, messages map[string]string) string {
	if msg, ok := messages[field+"."+tag]; ok {
		return msg
	}
	if tag == "required" {
		return formatFieldName(field) + " is required"
	}
	return formatFieldName(field) + " is invalid"
}

// HasField reports whether field already failed.
func (fe FieldErrors) HasField(field string) bool {
	for _, e := range fe {
		if e.Field == field {
			return true
		}
	}
	return false
}

// MapValidationError turns validator output into FieldErrors. messages is keyed
// by "<json field>.<tag>"; tags without an entry fall back to a generic text.
// Only the first failure per field is kept.
func MapValidationError(err error, messages map[string]string) FieldErrors {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{{Field: "body", Message: err.Error()}}
	}

	out := make(FieldErrors, 0, len(verrs))
	seen := make(map[string]bool, len(verrs))
	for _, e := range verrs {
		field := e.Field()
		if seen[field] {
			continue
		}
		seen[field] = true

		out = append(out, FieldError{Field: field, Message: FieldMessage(field, e.Tag(), messages)})
	}
	return out
}
