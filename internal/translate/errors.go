package translate

import (
	"errors"
	"fmt"
)

// ValidationError marks bad input at the API boundary: malformed subtitle
// content or an unsupported language code. It aborts the whole call.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// Validationf builds a ValidationError.
func Validationf(format string, args ...interface{}) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ProviderError marks a transport/quota/auth failure from the translation
// provider. It is recovered locally: the affected unit falls back to its
// untranslated text and the overall call still succeeds.
type ProviderError struct {
	Op  string
	Err error
}

func (e *ProviderError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *ProviderError) Unwrap() error { return e.Err }

func providerErr(op string, err error) error {
	return &ProviderError{Op: op, Err: err}
}

// errEmptyResult marks a provider response with no usable text.
var errEmptyResult = errors.New("provider returned empty result")
