package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/aalvaropc/rashi/internal/domain"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// ParseInstant reads a civil date and minute-resolution time in loc.
// Empty parts default to the current date or time in loc. Impossible dates
// such as 2023-02-30 are rejected.
func ParseInstant(date, clock string, loc *time.Location, now func() time.Time) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}

	date, clock = strings.TrimSpace(date), strings.TrimSpace(clock)
	cur := now().In(loc)
	if date == "" {
		date = cur.Format(DateLayout)
	}
	if clock == "" {
		clock = cur.Format(TimeLayout)
	}

	t, err := time.ParseInLocation(DateLayout+" "+TimeLayout, date+" "+clock, loc)
	if err != nil {
		return time.Time{}, &domain.OpError{
			Op:   "input.parse_instant",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("invalid date/time %q %q: expected YYYY-MM-DD and HH:MM", date, clock),
		}
	}
	return t, nil
}
