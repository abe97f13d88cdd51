package scale

import (
	"cmp"
	"math"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Time is a point on the horizontal scale. It holds either a UTC timestamp
// in seconds or a business day written as YYYY-MM-DD. Both forms are
// normalized to epoch seconds once, when the value is built, so every
// comparison and mapping sees the same number.
type Time struct {
	seconds float64
	date    string
}

// Timestamp returns a Time for the given number of seconds since the Unix
// epoch.
func Timestamp(sec float64) Time {
	return Time{seconds: sec}
}

// Date returns a Time for a business day. Days are interpreted at UTC
// midnight. A string that is not a valid date normalizes to NaN.
func Date(day string) Time {
	t, err := time.Parse(dateLayout, day)
	if err != nil {
		return Time{seconds: math.NaN(), date: day}
	}
	return Time{seconds: float64(t.Unix()), date: day}
}

// FromTime converts a time.Time, keeping sub-second precision.
func FromTime(t time.Time) Time {
	return Timestamp(float64(t.UnixNano()) / 1e9)
}

// ParseTime accepts the textual forms found in market data files: epoch
// seconds (integer or fractional), YYYY-MM-DD business days and RFC 3339
// timestamps.
func ParseTime(s string) Time {
	s = strings.TrimSpace(s)
	if sec, err := strconv.ParseFloat(s, 64); err == nil {
		return Timestamp(sec)
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return FromTime(t)
	}
	return Date(s)
}

// Seconds returns the normalized epoch seconds of t.
func (t Time) Seconds() float64 {
	return t.seconds
}

// IsDate reports whether t was built from a business day string.
func (t Time) IsDate() bool {
	return t.date != ""
}

// Valid reports whether t normalizes to a finite number.
func (t Time) Valid() bool {
	return !math.IsNaN(t.seconds) && !math.IsInf(t.seconds, 0)
}

// Time converts t to a UTC time.Time. Invalid values return the zero time.
func (t Time) Time() time.Time {
	if !t.Valid() {
		return time.Time{}
	}
	whole, frac := math.Modf(t.seconds)
	return time.Unix(int64(whole), int64(frac*1e9)).UTC()
}

func (t Time) String() string {
	if t.date != "" {
		return t.date
	}
	return strconv.FormatFloat(t.seconds, 'f', -1, 64)
}

// Compare orders two times by their normalized seconds. NaN sorts first.
func Compare(a, b Time) int {
	return cmp.Compare(a.seconds, b.seconds)
}

// Equal reports whether a and b normalize to the same instant.
func Equal(a, b Time) bool {
	return a.seconds == b.seconds
}
