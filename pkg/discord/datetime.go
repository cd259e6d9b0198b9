package discord

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"runclub/internal/domain"
)

var (
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidDistance = errors.New("invalid distance")
)

// ParseEventDateTime parses date (DD/MM/YYYY) and time (HH:MM) in loc.
// Returns an error if format is invalid or if the date/time is not after now.
func ParseEventDateTime(dateStr, timeStr string, loc *time.Location, now time.Time) (time.Time, error) {
	tDate, err := time.Parse("02/01/2006", strings.TrimSpace(dateStr))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	tTime, err := time.Parse("15:04", strings.TrimSpace(timeStr))
	if err != nil {
		return time.Time{}, ErrInvalidTime
	}
	dt := time.Date(tDate.Year(), tDate.Month(), tDate.Day(),
		tTime.Hour(), tTime.Minute(), 0, 0, loc)
	if !dt.After(now) {
		return time.Time{}, domain.ErrDateTimeInPast
	}
	return dt, nil
}

// ParseDistance parses a distance in kilometres; "," is accepted as the
// decimal separator and an empty value means 0.
func ParseDistance(s string) (float64, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.TrimSpace(strings.TrimSuffix(s, "km"))
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" {
		return 0, nil
	}
	km, err := strconv.ParseFloat(s, 64)
	if err != nil || km < 0 {
		return 0, ErrInvalidDistance
	}
	return km, nil
}

func FormatEventDateTime(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format("02/01/2006 15:04")
}

func FormatDistance(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
