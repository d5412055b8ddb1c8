package httperr

import "errors"

// Kind classifies a business rule failure so the HTTP layer can pick a
// status code without inspecting individual error codes.
type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindForbidden  Kind = "forbidden"
	KindConflict   Kind = "conflict"
)

type BusinessError struct {
	Kind    Kind
	Code    string
	Details map[string]any
}

func (e BusinessError) Error() string {
	return e.Code
}

func Validation(code string) error {
	return BusinessError{Kind: KindValidation, Code: code}
}

func NotFound(code string) error {
	return BusinessError{Kind: KindNotFound, Code: code}
}

func Forbidden(code string) error {
	return BusinessError{Kind: KindForbidden, Code: code}
}

func Conflict(code string) error {
	return BusinessError{Kind: KindConflict, Code: code}
}

// ConflictDetails carries extra context back to the caller, e.g. the
// minutes remaining until an appointment when the lead-time rule fires.
func ConflictDetails(code string, details map[string]any) error {
	return BusinessError{Kind: KindConflict, Code: code, Details: details}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func KindOf(err error) (Kind, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Kind, true
	}
	return "", false
}
