package model

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"gpevim-backend/internal/shared/store"
)

var (
	ErrInvalidID = errors.New("invalid member id")
	ErrNotFound  = errors.New("member not found")
)

func ToHTTPStatus(err error) int {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs), errors.Is(err, ErrInvalidID):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func ToErrorCode(err error) string {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		return "VALIDATION_ERROR"
	case errors.Is(err, ErrInvalidID):
		return "INVALID_ID"
	case errors.Is(err, ErrNotFound), errors.Is(err, store.ErrNotFound):
		return "MEMBER_NOT_FOUND"
	case errors.Is(err, store.ErrUnavailable):
		return "STORAGE_UNAVAILABLE"
	default:
		return "INTERNAL_ERROR"
	}
}
