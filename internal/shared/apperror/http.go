package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the transport view of an error, consumed by response.Error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Detail  string
	Fields  []FieldError
}

// ToHTTP resolves err into a status and message. Unknown errors become a 500
// carrying fallback as message and the raw error text as detail.
func ToHTTP(err error, fallback string) HTTPError {
	var fieldErrs FieldErrors
	if errors.As(err, &fieldErrs) {
		return HTTPError{
			Status:  http.StatusBadRequest,
			Code:    CodeInvalidInput,
			Message: ErrInvalidInput.Message,
			Fields:  fieldErrs,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		httpErr := HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
		if appErr.HTTPStatus >= http.StatusInternalServerError {
			if appErr.Err != nil {
				httpErr.Detail = appErr.Err.Error()
			}
		} else if appErr.Code == CodeConflict {
			httpErr.Detail = appErr.Message
		}
		return httpErr
	}

	if fallback == "" {
		fallback = ErrInternal.Message
	}
	httpErr := HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: fallback,
	}
	if err != nil {
		httpErr.Detail = err.Error()
	}
	return httpErr
}
