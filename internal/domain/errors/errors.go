package errors

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthorized      = errors.New("not authorized")
	ErrShopNotFound       = errors.New("shop not found")
	ErrShopNotApproved    = errors.New("shop not approved")
	ErrValidationFailed   = errors.New("validation failed")
	ErrStorage            = errors.New("storage failure")
	ErrExportFailed       = errors.New("export failed")

	// ErrProofRequired is reported when the target status demands a proof of
	// payment that was not supplied. It matches both ErrValidationFailed and
	// ErrNotAuthorized.
	ErrProofRequired = fmt.Errorf("proof of payment required: %w: %w", ErrValidationFailed, ErrNotAuthorized)
)

// Code returns stable machine readable code for the error kind.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrProofRequired):
		return "ERROR.PROOF_OF_PAYMENT_REQUIRED"
	case errors.Is(err, ErrValidationFailed):
		return "ERROR.VALIDATION_FAILED"
	case errors.Is(err, ErrShopNotApproved):
		return "ERROR.SHOP_NOT_APPROVED"
	case errors.Is(err, ErrShopNotFound):
		return "ERROR.SHOP_NOT_FOUND"
	case errors.Is(err, ErrNotFound):
		return "ERROR.NOT_FOUND"
	case errors.Is(err, ErrNotAuthorized):
		return "ERROR.NOT_AUTHORIZED"
	case errors.Is(err, ErrInvalidCredentials):
		return "ERROR.INVALID_CREDENTIALS"
	case errors.Is(err, ErrAlreadyExists):
		return "ERROR.ALREADY_EXISTS"
	case errors.Is(err, ErrStorage):
		return "ERROR.STORAGE"
	case errors.Is(err, ErrExportFailed):
		return "ERROR.EXPORT_FAILED"
	default:
		return "ERROR.SOMETHING_WENT_WRONG"
	}
}

// FieldErrors lists invalid request fields with their messages.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+e[field])
	}
	return ErrValidationFailed.Error() + ": " + strings.Join(parts, "; ")
}

func (e FieldErrors) Unwrap() error {
	return ErrValidationFailed
}
