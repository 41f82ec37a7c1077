package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	apperrors "mizdooni/pkg/errors"
)

const (
	DateLayout     = "2006-01-02"
	DateTimeLayout = "2006-01-02 15:04"

	UserIDHeader = "X-User-ID"
)

func ParseInt64Param(name, raw string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, apperrors.InvalidInput("invalid " + name + " parameter: " + raw)
	}
	return v, nil
}

func ParseIntParam(name, raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, apperrors.InvalidInput("invalid " + name + " parameter: " + raw)
	}
	return v, nil
}

// ParseDate reads a calendar date in loc. The result is midnight of that date.
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid date format, must be " + DateLayout)
	}
	return d, nil
}

func ParseDateTime(raw string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateTimeLayout, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, apperrors.InvalidInput("invalid datetime format, must be " + DateTimeLayout)
	}
	return t, nil
}

func ExtractUserID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(UserIDHeader))
}
