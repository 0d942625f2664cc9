package engine

import "errors"

var (
	ErrCharacterDead    = errors.New("character is dead")
	ErrUnknownProfile   = errors.New("unknown behavior profile code")
	ErrModifierNotFound = errors.New("modifier not found")
)

// ValidationError is returned for malformed caller input. It is surfaced
// to diagnostic callers as a structured {code, message} payload.
type ValidationError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string { return e.Code + ": " + e.Message }

func errValidation(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
