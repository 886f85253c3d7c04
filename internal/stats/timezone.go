package stats

import (
	"fmt"
	"strings"
	"time"
)

// Zone resolves UTC instants to calendar dates in a configured timezone.
// The zone's transition rules are applied at lookup time for every instant,
// so DST changes land each commit in the correct local date.
type Zone struct {
	name string
	loc  *time.Location
}

// ParseZone accepts "local", "utc", or an IANA zone name like Asia/Tokyo.
func ParseZone(s string) (Zone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "local":
		return Zone{name: "local", loc: time.Local}, nil
	case "utc":
		return Zone{name: "utc", loc: time.UTC}, nil
	}
	loc, err := time.LoadLocation(strings.TrimSpace(s))
	if err != nil {
		return Zone{}, fmt.Errorf("invalid timezone: %q (use local, utc, or an IANA name like Asia/Tokyo)", s)
	}
	return Zone{name: s, loc: loc}, nil
}

// UTCZone is the fixed UTC resolver, useful as a test default.
func UTCZone() Zone {
	return Zone{name: "utc", loc: time.UTC}
}

// Date maps an instant to its calendar date in the zone, returned as UTC
// midnight so dates from any zone compare and hash uniformly.
func (z Zone) Date(t time.Time) time.Time {
	y, m, d := t.In(z.loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Clock returns the local weekday and hour of an instant in the zone.
func (z Zone) Clock(t time.Time) (weekday time.Weekday, hour int) {
	lt := t.In(z.loc)
	return lt.Weekday(), lt.Hour()
}

func (z Zone) Today() time.Time {
	return z.Date(time.Now())
}

// DayBounds returns the instants at which the given calendar date starts
// and ends in the zone. The end bound is exclusive (start of the next day).
// Around DST transitions a day may be 23 or 25 hours long; time.Date
// resolves skipped or repeated wall-clock midnights per the zone's rules.
func (z Zone) DayBounds(date time.Time) (start, end time.Time) {
	y, m, d := date.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, z.loc)
	end = time.Date(y, m, d+1, 0, 0, 0, 0, z.loc)
	return start, end
}

func (z Zone) Location() *time.Location {
	return z.loc
}

func (z Zone) String() string {
	return z.name
}
