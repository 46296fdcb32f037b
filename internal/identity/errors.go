package identity

import (
	"errors"
	"strings"
)

// ErrInvalidCredentials covers every login failure: unknown email, wrong
// password and post-login lookup anomalies. A single generic error keeps
// responses from revealing whether an account exists.
var ErrInvalidCredentials = errors.New("Sorry, that user or/and the password isn't right")

// RegistrationError is returned when the credential store rejects a new
// account. Details carries one message per underlying reason.
type RegistrationError struct {
	Message string
	Details []string
}

func (e *RegistrationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Details, "; ")
}
