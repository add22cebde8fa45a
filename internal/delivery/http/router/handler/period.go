package handler

import (
	"time"

	domainerrors "marketplace/internal/domain/errors"
)

const dateLayout = "2006-01-02"

// parsePeriod parses the from/to query parameters of a reporting period.
// Values may be RFC 3339 timestamps or plain dates; a plain "to" date is
// extended to the end of that day so the whole day is included.
func parsePeriod(fromStr, toStr string) (time.Time, time.Time, error) {
	if fromStr == "" || toStr == "" {
		return time.Time{}, time.Time{}, domainerrors.ErrValidationFailed.WithDetails("from and to are required")
	}

	from, err := parseDateOrTime(fromStr, false)
	if err != nil {
		return time.Time{}, time.Time{}, domainerrors.ErrValidationFailed.WithDetails("invalid from date")
	}

	to, err := parseDateOrTime(toStr, true)
	if err != nil {
		return time.Time{}, time.Time{}, domainerrors.ErrValidationFailed.WithDetails("invalid to date")
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, domainerrors.ErrValidationFailed.WithDetails("to must not precede from")
	}

	return from, to, nil
}

func parseDateOrTime(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}

	return t, nil
}
