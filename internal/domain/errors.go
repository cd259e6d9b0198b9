package domain

import "errors"

// Error is a domain error carrying a stable code. Adapters use the code to pick
// a status and a translated message; the text is only meant for logs.
type Error struct {
	code string
	msg  string
}

func newError(code, msg string) *Error {
	return &Error{code: code, msg: msg}
}

func (e *Error) Error() string { return e.msg }

// Code returns the stable identifier of the error (e.g. "event_not_found").
func (e *Error) Code() string { return e.code }

// Domain errors.
var (
	ErrEventNotFound        = newError("event_not_found", "event not found")
	ErrDateTimeInPast       = newError("datetime_in_past", "date and time must be in the future")
	ErrInvalidEvent         = newError("invalid_event", "event is missing required fields")
	ErrMissingFrequency     = newError("missing_frequency", "recurrent events need a recurrence frequency")
	ErrCreatorParticipation = newError("creator_participation", "the organizer cannot join or leave their own event")
	ErrNoPendingLeave       = newError("no_pending_leave", "no leave request is waiting for confirmation")

	ErrPasswordMismatch   = newError("password_mismatch", "passwords do not match")
	ErrAccountCreation    = newError("account_creation", "failed to create an account")
	ErrLoginFailed        = newError("login_failed", "failed to log in")
	ErrLogoutFailed       = newError("logout_failed", "failed to log out")
	ErrInvalidCredentials = newError("invalid_credentials", "invalid email or password")
	ErrWeakPassword       = newError("weak_password", "password must be at least 6 characters")
	ErrEmailExists        = newError("email_exists", "email already registered")
	ErrUserNotFound       = newError("user_not_found", "user not found")
	ErrInvalidProfile     = newError("invalid_profile", "display name is required")
	ErrUnauthenticated    = newError("unauthenticated", "authentication required")
	ErrSessionNotFound    = newError("session_not_found", "session not found")
	ErrSessionExpired     = newError("session_expired", "session expired or revoked")
	ErrLinkCodeInvalid    = newError("link_code_invalid", "link code is invalid or expired")
	ErrAccountNotLinked   = newError("account_not_linked", "no club account is linked to this user")
)

// Code extracts the domain error code from err, or "" when err is not a domain error.
func Code(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.code
	}
	return ""
}
