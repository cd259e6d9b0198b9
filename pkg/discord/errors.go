package discord

import (
	"errors"

	"runclub/internal/domain"
)

// ErrorKey maps an error to the translation key of its user-facing message.
func ErrorKey(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidDate):
		return "errors.invalid_date"
	case errors.Is(err, ErrInvalidTime):
		return "errors.invalid_time"
	case errors.Is(err, ErrInvalidDistance):
		return "errors.invalid_distance"
	}
	if code := domain.Code(err); code != "" {
		return "errors." + code
	}
	return "errors.internal"
}
