package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// TimestampLayout is the canonical textual form of an interval endpoint.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrInvalidInterval is returned when an interval does not stop after it starts.
var ErrInvalidInterval = errors.New("stopping time should happen after starting time")

// TimeInterval is the half-open span [Start, Stop).
type TimeInterval struct {
	Start time.Time
	Stop  time.Time
}

// NewTimeInterval validates and returns the interval [start, stop).
func NewTimeInterval(start, stop time.Time) (TimeInterval, error) {
	if !stop.After(start) {
		return TimeInterval{}, fmt.Errorf("%w: start %s, stop %s", ErrInvalidInterval, FormatTimestamp(start), FormatTimestamp(stop))
	}
	return TimeInterval{Start: start, Stop: stop}, nil
}

// Duration returns the length of the interval.
func (ti TimeInterval) Duration() time.Duration {
	return ti.Stop.Sub(ti.Start)
}

// Valid reports whether the interval stops strictly after it starts.
func (ti TimeInterval) Valid() bool {
	return ti.Stop.After(ti.Start)
}

// Contains reports whether other lies entirely within ti.
func (ti TimeInterval) Contains(other TimeInterval) bool {
	return !other.Start.Before(ti.Start) && !other.Stop.After(ti.Stop)
}

// Overlaps reports whether ti and other share a non-empty span.
// Intervals that merely touch at an edge do not overlap.
func (ti TimeInterval) Overlaps(other TimeInterval) bool {
	return ti.Start.Before(other.Stop) && other.Start.Before(ti.Stop)
}

// Intersect returns the clipped intersection of ti and other.
// The boolean is false when the intersection is empty.
func (ti TimeInterval) Intersect(other TimeInterval) (TimeInterval, bool) {
	low := ti.Start
	if other.Start.After(low) {
		low = other.Start
	}
	high := ti.Stop
	if other.Stop.Before(high) {
		high = other.Stop
	}
	if !low.Before(high) {
		return TimeInterval{}, false
	}
	return TimeInterval{Start: low, Stop: high}, true
}

// Equal reports whether both endpoints denote the same instants.
func (ti TimeInterval) Equal(other TimeInterval) bool {
	return ti.Start.Equal(other.Start) && ti.Stop.Equal(other.Stop)
}

func (ti TimeInterval) String() string {
	return fmt.Sprintf("(%s, %s)", FormatTimestamp(ti.Start), FormatTimestamp(ti.Stop))
}

// intervalJSON is the wire form of a TimeInterval.
type intervalJSON struct {
	Start string `json:"start"`
	Stop  string `json:"stop"`
}

// MarshalJSON encodes the interval with both endpoints in TimestampLayout.
func (ti TimeInterval) MarshalJSON() ([]byte, error) {
	return json.Marshal(intervalJSON{Start: FormatTimestamp(ti.Start), Stop: FormatTimestamp(ti.Stop)})
}

// UnmarshalJSON decodes and validates an interval.
func (ti *TimeInterval) UnmarshalJSON(data []byte) error {
	var raw intervalJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	start, err := ParseTimestamp(raw.Start)
	if err != nil {
		return err
	}
	stop, err := ParseTimestamp(raw.Stop)
	if err != nil {
		return err
	}
	parsed, err := NewTimeInterval(start, stop)
	if err != nil {
		return err
	}
	*ti = parsed
	return nil
}

// ParseTimestamp parses s as TimestampLayout or RFC3339 and returns it in UTC.
func ParseTimestamp(s string) (time.Time, error) {
	if t, err := time.Parse(TimestampLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: expected %q or RFC3339", s, TimestampLayout)
	}
	return t.UTC(), nil
}

// FormatTimestamp renders t in UTC using TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
