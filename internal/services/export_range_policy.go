package services

import (
	"errors"
	"time"

	"github.com/terraincognita07/nibble/internal/dates"
)

var (
	ErrExportFromDateInvalid = errors.New("export invalid from date")
	ErrExportToDateInvalid   = errors.New("export invalid to date")
	ErrExportRangeInvalid    = errors.New("export invalid range")
)

// ParseExportRange parses optional ISO bounds. A missing bound is open: from falls back to
// the year 1 and to falls back to 9999-12-31.
func ParseExportRange(rawFrom string, rawTo string, location *time.Location) (time.Time, time.Time, error) {
	if location == nil {
		location = time.Local
	}

	from := time.Date(1, time.January, 1, 0, 0, 0, 0, location)
	if rawFrom != "" {
		parsed, err := dates.ParseISO(rawFrom, location)
		if err != nil {
			return time.Time{}, time.Time{}, ErrExportFromDateInvalid
		}
		from = parsed
	}

	to := time.Date(9999, time.December, 31, 0, 0, 0, 0, location)
	if rawTo != "" {
		parsed, err := dates.ParseISO(rawTo, location)
		if err != nil {
			return time.Time{}, time.Time{}, ErrExportToDateInvalid
		}
		to = parsed
	}

	if to.Before(from) {
		return time.Time{}, time.Time{}, ErrExportRangeInvalid
	}
	return from, to, nil
}
