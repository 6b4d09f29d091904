package employee

import (
	"bytes"
	"errors"
	"net/http"
	"strconv"
	"strings"

	employeeerrors "employee-management/internal/employee/errors"
	"employee-management/internal/shared/apperror"
	"employee-management/internal/shared/response"
	"employee-management/internal/shared/validation"

	"github.com/gin-gonic/gin"
)

const (
	ctxEmployeeID      = "employee_id"
	ctxEmployeePayload = "employee_payload"
	ctxSearchPayload   = "employee_search_payload"
)

// Departments offered as suggestions by clients. Not enforced.
var Departments = []string{
	"Engineering",
	"Marketing",
	"Sales",
	"Human Resources",
	"Finance",
	"Operations",
	"Customer Support",
	"Design",
	"Product",
	"Other",
}

var employeeMessages = map[string]string{
	"first_name.required":   "First name is required",
	"first_name.min":        "First name must be between 2 and 50 characters",
	"first_name.max":        "First name must be between 2 and 50 characters",
	"first_name.alphaspace": "First name can only contain letters and spaces",
	"first_name.type":       "First name can only contain letters and spaces",
	"last_name.required":    "Last name is required",
	"last_name.min":         "Last name must be between 2 and 50 characters",
	"last_name.max":         "Last name must be between 2 and 50 characters",
	"last_name.alphaspace":  "Last name can only contain letters and spaces",
	"last_name.type":        "Last name can only contain letters and spaces",
	"email.required":        "Email is required",
	"email.email":           "Please provide a valid email address",
	"email.type":            "Please provide a valid email address",
	"phone.phone":           "Please provide a valid phone number",
	"phone.type":            "Please provide a valid phone number",
	"position.required":     "Position is required",
	"position.min":          "Position must be between 2 and 100 characters",
	"position.max":          "Position must be between 2 and 100 characters",
	"department.required":   "Department is required",
	"department.min":        "Department must be between 2 and 100 characters",
	"department.max":        "Department must be between 2 and 100 characters",
	"salary.type":           "Salary must be a positive number",
	"salary.gte":            "Salary must be a positive number",
	"salary.lte":            "Salary must not exceed 9999999999.99",
	"hire_date.required":    "Hire date is required",
	"hire_date.isodate":     "Please provide a valid date (YYYY-MM-DD)",
	"hire_date.notfuture":   "Hire date cannot be in the future",
	"hire_date.type":        "Please provide a valid date (YYYY-MM-DD)",
	"address.max":           "Address must not exceed 500 characters",
}

var searchMessages = map[string]string{
	"searchTerm.min":  "Search term must be between 1 and 100 characters",
	"searchTerm.max":  "Search term must be between 1 and 100 characters",
	"searchTerm.type": "Search term must be between 1 and 100 characters",
}

// NormalizeEmail lower-cases the address. Gmail addresses additionally lose
// dots and any +tag in the local part, and googlemail.com becomes gmail.com.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return email
	}

	local, domain := email[:at], email[at+1:]
	if domain == "gmail.com" || domain == "googlemail.com" {
		if plus := strings.Index(local, "+"); plus >= 0 {
			local = local[:plus]
		}
		local = strings.ReplaceAll(local, ".", "")
		domain = "gmail.com"
	}
	return local + "@" + domain
}

// ValidateEmployeeRequest normalizes req in place and checks every field.
// The error is nil or apperror.FieldErrors.
func ValidateEmployeeRequest(v *validation.Validator, req *EmployeeRequest) error {
	req.Normalize()
	return v.Struct(req, employeeMessages)
}

// ValidateEmployeePayload decodes, normalizes and validates the JSON body of
// create/update requests. Handlers read the result with payloadFrom.
func ValidateEmployeePayload(v *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			response.ValidationFailed(c, http.StatusBadRequest, bodyError())
			return
		}

		var req EmployeeRequest
		if err := v.Bind(body, &req, employeeMessages); err != nil {
			response.ValidationFailed(c, http.StatusBadRequest, fieldErrors(err))
			return
		}

		c.Set(ctxEmployeePayload, req)
		c.Next()
	}
}

// ValidateSearchPayload accepts an empty body as "no term".
func ValidateSearchPayload(v *validation.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := c.GetRawData()
		if err != nil {
			response.ValidationFailed(c, http.StatusBadRequest, bodyError())
			return
		}

		var req SearchRequest
		if len(bytes.TrimSpace(body)) > 0 {
			if err := v.Bind(body, &req, searchMessages); err != nil {
				response.ValidationFailed(c, http.StatusBadRequest, fieldErrors(err))
				return
			}
		}

		c.Set(ctxSearchPayload, req)
		c.Next()
	}
}

// ValidateID rejects any :id that is not a positive integer before a lookup
// happens.
func ValidateID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := ParseID(c.Param("id"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, response.ApiEnvelope{
				Success: false,
				Message: employeeerrors.ErrInvalidEmployeeID.Message,
			})
			return
		}
		c.Set(ctxEmployeeID, id)
		c.Next()
	}
}

func ParseID(raw string) (uint64, error) {
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil || id == 0 {
		return 0, employeeerrors.ErrInvalidEmployeeID
	}
	return id, nil
}

func bodyError() apperror.FieldErrors {
	return apperror.FieldErrors{{Field: "body", Message: validation.MsgInvalidJSON}}
}

func fieldErrors(err error) apperror.FieldErrors {
	var fieldErrs apperror.FieldErrors
	if errors.As(err, &fieldErrs) {
		return fieldErrs
	}
	return apperror.FieldErrors{{Field: "body", Message: err.Error()}}
}
