package response

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Response struct {
	ResponseError `json:"error,omitzero"`
}

type ResponseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

//Error Codes
type ErrCode string

var (
	FAILED_REQUEST      ErrCode = "REQUEST_FAILED"
	BAD_REQUEST         ErrCode = "FAILED_TO_DECODE"
	NOT_FOUND           ErrCode = "NOT_FOUND"
	LOCKED              ErrCode = "LOCKED"
	CONFLICT            ErrCode = "CONFLICT"
	VALIDATION_ERROR    ErrCode = "VALIDATION_ERROR"
	STORAGE_UNAVAILABLE ErrCode = "STORAGE_UNAVAILABLE"
	PAST_DATE           ErrCode = "PAST_DATE"
	BEYOND_HORIZON      ErrCode = "BEYOND_HORIZON"
	INVALID_TRANSITION  ErrCode = "INVALID_TRANSITION"
	SLOT_NOT_AVAILABLE  ErrCode = "SLOT_NOT_AVAILABLE"
)

var (
	ErrBadRequest         = errors.New("bad request")
	ErrNotFound           = errors.New("resource not found")
	ErrLocked             = errors.New("resource is locked")
	ErrConflict           = errors.New("conflict")
	ErrValidation         = errors.New("validation failed")
	ErrStorageUnavailable = errors.New("storage unavailable")
	ErrPastDate           = errors.New("date is in the past")
	ErrBeyondHorizon      = errors.New("date is beyond the booking horizon")
	ErrInvalidTransition  = errors.New("transition is not allowed from the current step")
	ErrStaffNotEligible   = errors.New("staff member does not perform this service")
	ErrSlotNotAvailable   = errors.New("slot is not available")
	ErrCreateInFlight     = errors.New("booking create already in flight")
)

func Error(code, msg string) Response {
	return Response{
		ResponseError: ResponseError{
			Code:    code,
			Message: msg,
		},
	}
}

func ValidationError(errs validator.ValidationErrors) Response {
	var errMsg []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' is required", err.Field()))
		case "min":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at least %s characters long", err.Field(), err.Param()))
		case "max":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be at most %s characters long", err.Field(), err.Param()))
		case "email":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be a valid email address", err.Field()))
		case "oneof":
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' must be one of: %s", err.Field(), err.Param()))
		default:
			errMsg = append(errMsg, fmt.Sprintf("Field '%s' is invalid", err.Field()))
		}
	}

	return Error(string(VALIDATION_ERROR), strings.Join(errMsg, ", "))
}
