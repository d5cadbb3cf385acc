package timex

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/dailyjournal/internal/common"
)

// DefaultZoneName is the local zone used when none is configured.
const DefaultZoneName = "UTC+8"

const (
	// DateLayout is the calendar day format used for query parameters and
	// grouping keys.
	DateLayout = "2006-01-02"

	// TimestampLayout renders local timestamps with microsecond precision and
	// an explicit offset, e.g. 2024-01-01T23:30:00+08:00.
	TimestampLayout = "2006-01-02T15:04:05.999999-07:00"
)

var zonedLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02T15:04Z07:00",
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// Zone converts journal timestamps between UTC (storage) and the configured
// local zone (presentation and day grouping).
type Zone struct {
	loc *time.Location
}

// NewZone wraps an already resolved location.
func NewZone(loc *time.Location) *Zone {
	if loc == nil {
		loc = time.UTC
	}
	return &Zone{loc: loc}
}

// LoadZone resolves name as a fixed offset ("+08:00", "UTC+8", "GMT-05:30")
// or as an IANA location ("Asia/Shanghai"). An empty name selects
// DefaultZoneName.
func LoadZone(name string) (*Zone, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = DefaultZoneName
	}

	if label, offset, ok := parseOffset(name); ok {
		return NewZone(time.FixedZone(label, offset)), nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time zone %q: %w", name, err)
	}
	return NewZone(loc), nil
}

func parseOffset(s string) (string, int, bool) {
	switch {
	case strings.HasPrefix(s, "UTC"):
		s = s[3:]
	case strings.HasPrefix(s, "GMT"):
		s = s[3:]
	}
	if s == "" || (s[0] != '+' && s[0] != '-') {
		return "", 0, false
	}

	sign := s[0]
	s = s[1:]

	var hh, mm string
	switch {
	case strings.Contains(s, ":"):
		hh, mm, _ = strings.Cut(s, ":")
	case len(s) == 4:
		hh, mm = s[:2], s[2:]
	default:
		hh = s
	}

	if len(hh) == 0 || len(hh) > 2 {
		return "", 0, false
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h > 14 {
		return "", 0, false
	}

	m := 0
	if mm != "" {
		if len(mm) != 2 {
			return "", 0, false
		}
		m, err = strconv.Atoi(mm)
		if err != nil || m > 59 {
			return "", 0, false
		}
	}

	offset := h*3600 + m*60
	if sign == '-' {
		offset = -offset
	}
	return fmt.Sprintf("UTC%c%02d:%02d", sign, h, m), offset, true
}

// Location returns the local zone.
func (z *Zone) Location() *time.Location {
	return z.loc
}

// ToLocal projects t onto the local zone. The instant is unchanged.
func (z *Zone) ToLocal(t time.Time) time.Time {
	return t.In(z.loc)
}

// ToUTC projects t onto UTC. The instant is unchanged.
func (z *Zone) ToUTC(t time.Time) time.Time {
	return t.UTC()
}

// FromNaiveUTC reads the wall clock of t as a UTC wall clock, discarding
// whatever location t carried.
func (z *Zone) FromNaiveUTC(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// FromNaiveLocal reads the wall clock of t as a local wall clock.
func (z *Zone) FromNaiveLocal(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), z.loc)
}

// ParseTimestamp accepts an ISO-8601 timestamp. Values carrying an offset are
// taken as is; values without one are local wall clock time. The result is
// always in UTC.
func (z *Zone) ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return z.ToUTC(t), nil
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, z.loc); err == nil {
			return z.ToUTC(t), nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: invalid timestamp %q", common.ErrorValidation, s)
}

// ParseDate parses a YYYY-MM-DD calendar day and returns local midnight of
// that day.
func (z *Zone) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), z.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q, expected YYYY-MM-DD", common.ErrorValidation, s)
	}
	return t, nil
}

// EndOfDay returns 23:59:59.999999 local time on the local day of t.
func (z *Zone) EndOfDay(t time.Time) time.Time {
	l := t.In(z.loc)
	return time.Date(l.Year(), l.Month(), l.Day(), 23, 59, 59, 999999000, z.loc)
}

// DateKey returns the local calendar day of t as YYYY-MM-DD.
func (z *Zone) DateKey(t time.Time) string {
	return t.In(z.loc).Format(DateLayout)
}

// Format renders t in local time using TimestampLayout.
func (z *Zone) Format(t time.Time) string {
	return t.In(z.loc).Format(TimestampLayout)
}
