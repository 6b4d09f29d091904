// Package validation wraps go-playground/validator with the custom rules used
// by request payloads. Fields are reported by their json names.
package validation

import (
	"encoding/json"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"time"

	"employee-management/internal/shared/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const (
	dateLayout = "2006-01-02"

	// TypeTag keys the message of a field whose JSON value has the wrong type.
	TypeTag = "type"

	MsgInvalidJSON = "Request body must be a valid JSON object"
)

var (
	alphaSpaceRegex = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phoneRegex      = regexp.MustCompile(`^[+]?[1-9]\d{0,15}$`)
)

// Clock returns the current time; notfuture compares against it.
type Clock func() time.Time

type Validator struct {
	validate *validator.Validate
	now      Clock
}

func New(now Clock) *Validator {
	if now == nil {
		now = time.Now
	}
	v := &Validator{validate: validator.New(), now: now}

	v.validate.RegisterTagNameFunc(jsonName)

	// decimal.Decimal is validated as a float64 so gte/lte work on it.
	v.validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.validate.RegisterValidation("alphaspace", func(fl validator.FieldLevel) bool {
		return alphaSpaceRegex.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRegex.MatchString(fl.Field().String())
	})
	_ = v.validate.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})
	_ = v.validate.RegisterValidation("notfuture", func(fl validator.FieldLevel) bool {
		d, err := ParseDate(fl.Field().String())
		if err != nil {
			// reported by isodate
			return true
		}
		return !d.After(truncateDay(v.now()))
	})

	return v
}

// Struct validates s. The returned error is nil or apperror.FieldErrors.
func (v *Validator) Struct(s any, messages map[string]string) error {
	if err := v.validate.Struct(s); err != nil {
		return apperror.MapValidationError(err, messages)
	}
	return nil
}

// Normalizer is implemented by payloads that trim or canonicalize themselves
// before the rules run.
type Normalizer interface {
	Normalize()
}

// Bind decodes the JSON object in body into the struct dst points to,
// normalizes it and validates it. Fields are decoded one at a time, so a value
// of the wrong JSON type fails only its own field (reported under
// "<field>.type") and every other field is still checked. The error is nil or
// apperror.FieldErrors.
func (v *Validator) Bind(body []byte, dst any, messages map[string]string) error {
	errs, err := decodeFields(body, dst, messages)
	if err != nil {
		return apperror.FieldErrors{{Field: "body", Message: MsgInvalidJSON}}
	}

	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}

	if err := v.validate.Struct(dst); err != nil {
		for _, fe := range apperror.MapValidationError(err, messages) {
			if !errs.HasField(fe.Field) {
				errs = append(errs, fe)
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}

	order := fieldOrder(reflect.TypeOf(dst).Elem())
	sort.SliceStable(errs, func(i, j int) bool {
		return order[errs[i].Field] < order[errs[j].Field]
	})
	return errs
}

func decodeFields(body []byte, dst any, messages map[string]string) (apperror.FieldErrors, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	rv := reflect.ValueOf(dst).Elem()
	rt := rv.Type()
	var errs apperror.FieldErrors
	for i := 0; i < rt.NumField(); i++ {
		name := jsonName(rt.Field(i))
		val, ok := raw[name]
		if name == "" || !ok || !rt.Field(i).IsExported() {
			continue
		}
		if err := json.Unmarshal(val, rv.Field(i).Addr().Interface()); err != nil {
			errs = append(errs, apperror.FieldError{
				Field:   name,
				Message: apperror.FieldMessage(name, TypeTag, messages),
			})
		}
	}
	return errs, nil
}

func fieldOrder(rt reflect.Type) map[string]int {
	order := make(map[string]int, rt.NumField())
	for i := 0; i < rt.NumField(); i++ {
		if name := jsonName(rt.Field(i)); name != "" {
			order[name] = i
		}
	}
	return order
}

func jsonName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	return name
}

// ParseDate accepts YYYY-MM-DD or an RFC 3339 timestamp and returns the
// calendar date in UTC.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return truncateDay(t), nil
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
