package validation_test

import (
	"strings"
	"testing"
	"time"

	"employee-management/internal/shared/apperror"
	"employee-management/internal/shared/validation"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name   string           `json:"name" validate:"required,min=2"`
	Amount *decimal.Decimal `json:"amount,omitempty" validate:"omitempty,gte=0,lte=100"`
	Day    string           `json:"day" validate:"required,isodate,notfuture"`
}

func (p *payload) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
}

var messages = map[string]string{
	"amount.type": "Amount must be a number",
	"amount.gte":  "Amount must be a number",
}

func fixedClock() time.Time {
	return time.Date(2024, 6, 15, 23, 0, 0, 0, time.UTC)
}

func TestValidator_Bind(t *testing.T) {
	v := validation.New(fixedClock)

	t.Run("valid body is decoded and normalized", func(t *testing.T) {
		var p payload
		err := v.Bind([]byte(`{"name":"  Ada ","amount":"12.5","day":"2024-06-15"}`), &p, messages)

		require.NoError(t, err)
		assert.Equal(t, "Ada", p.Name)
		require.NotNil(t, p.Amount)
		assert.Equal(t, "12.5", p.Amount.String())
	})

	t.Run("type errors and rule errors are collected in field order", func(t *testing.T) {
		var p payload
		err := v.Bind([]byte(`{"day":"2024-06-16","amount":"abc","name":"A"}`), &p, messages)

		var fieldErrs apperror.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, apperror.FieldErrors{
			{Field: "name", Message: "Name is invalid"},
			{Field: "amount", Message: "Amount must be a number"},
			{Field: "day", Message: "Day is invalid"},
		}, fieldErrs)
	})

	t.Run("wrong type replaces the required error", func(t *testing.T) {
		var p payload
		err := v.Bind([]byte(`{"name":7,"day":"2024-01-01"}`), &p, messages)

		var fieldErrs apperror.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, apperror.FieldErrors{{Field: "name", Message: "Name is invalid"}}, fieldErrs)
	})

	t.Run("null body reports required fields", func(t *testing.T) {
		var p payload
		err := v.Bind([]byte(`null`), &p, messages)

		var fieldErrs apperror.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.True(t, fieldErrs.Has("name", "Name is required"))
		assert.True(t, fieldErrs.Has("day", "Day is required"))
	})

	for _, body := range []string{``, `{"name":`, `[1]`, `"text"`} {
		t.Run("not an object: "+body, func(t *testing.T) {
			var p payload
			err := v.Bind([]byte(body), &p, messages)

			var fieldErrs apperror.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Equal(t, apperror.FieldErrors{{Field: "body", Message: validation.MsgInvalidJSON}}, fieldErrs)
		})
	}

	t.Run("decimal bounds", func(t *testing.T) {
		var p payload
		err := v.Bind([]byte(`{"name":"Ada","amount":100.01,"day":"2024-01-01"}`), &p, messages)

		var fieldErrs apperror.FieldErrors
		require.ErrorAs(t, err, &fieldErrs)
		assert.Equal(t, apperror.FieldErrors{{Field: "amount", Message: "Amount is invalid"}}, fieldErrs)
	})
}

func TestParseDate(t *testing.T) {
	d, err := validation.ParseDate("2024-03-01T23:30:00-05:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), d)

	_, err = validation.ParseDate("03/01/2024")
	assert.Error(t, err)
}
