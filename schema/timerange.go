package schema

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidRange is returned when a range cannot be split as requested
// or when a supplied range is not ordered and disjoint.
var ErrInvalidRange = errors.New("invalid time range")

// TimeRange is an ordered sequence of non-overlapping intervals.
type TimeRange []TimeInterval

// NewTimeRange splits [start, stop) into count equal sub-intervals separated by gap.
// A count of zero yields the whole span as a single interval.
func NewTimeRange(start, stop time.Time, count int, gap time.Duration) (TimeRange, error) {
	if _, err := NewTimeInterval(start, stop); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: count must be non-negative, got %d", ErrInvalidRange, count)
	}
	if gap < 0 {
		return nil, fmt.Errorf("%w: gap must be non-negative, got %s", ErrInvalidRange, gap)
	}
	if count == 0 {
		count = 1
	}

	span := stop.Sub(start)
	// Keeps (count-1)*gap and every start offset within span.
	if count > 1 && gap > span/time.Duration(count-1) {
		return nil, fmt.Errorf("%w: %d intervals with gap %s do not fit in %s", ErrInvalidRange, count, gap, span)
	}
	d :=(span - time.Duration(count-1)*gap) / time.Duration(count)
	if d <= 0 {
		return nil, fmt.Errorf("%w: %d intervals with gap %s do not fit in %s", ErrInvalidRange, count, gap, span)
	}

	tr := make(TimeRange, count)
	for i := range count {
		s := start.Add(time.Duration(i) * (d + gap))
		tr[i] = TimeInterval{Start: s, Stop: s.Add(d)}
	}
	tr[count-1].Stop = stop
	return tr, nil
}

// Validate checks that every interval is well formed and that intervals are
// strictly increasing and pairwise disjoint.
func (tr TimeRange) Validate() error {
	for i, ti := range tr {
		if !ti.Valid() {
			return fmt.Errorf("interval %d %s: %w", i, ti, ErrInvalidInterval)
		}
		if i > 0 && tr[i-1].Stop.After(ti.Start) {
			return fmt.Errorf("%w: interval %d %s overlaps or precedes interval %d %s", ErrInvalidRange, i, ti, i-1, tr[i-1])
		}
	}
	return nil
}

// Span returns the interval from the first start to the last stop.
// The boolean is false for an empty range.
func (tr TimeRange) Span() (TimeInterval, bool) {
	if len(tr) == 0 {
		return TimeInterval{}, false
	}
	return TimeInterval{Start: tr[0].Start, Stop: tr[len(tr)-1].Stop}, true
}

// TotalDuration sums the durations of all intervals.
func (tr TimeRange) TotalDuration() time.Duration {
	var total time.Duration
	for _, ti := range tr {
		total += ti.Duration()
	}
	return total
}

// Equal reports whether both ranges hold the same intervals in the same order.
func (tr TimeRange) Equal(other TimeRange) bool {
	if len(tr) != len(other) {
		return false
	}
	for i := range tr {
		if !tr[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (tr TimeRange) String() string {
	parts := make([]string, len(tr))
	for i, ti := range tr {
		parts[i] = ti.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// RangeSpec describes a range before it is materialized.
type RangeSpec struct {
	Start time.Time     `json:"start"`
	Stop  time.Time     `json:"stop"`
	Count int           `json:"count"`
	Gap   time.Duration `json:"gap"`
}

// Build materializes the spec with NewTimeRange.
func (rs RangeSpec) Build() (TimeRange, error) {
	return NewTimeRange(rs.Start, rs.Stop, rs.Count, rs.Gap)
}

// IsZero reports whether the spec was never set.
func (rs RangeSpec) IsZero() bool {
	return rs.Start.IsZero() && rs.Stop.IsZero()
}

func (rs RangeSpec) String() string {
	return fmt.Sprintf("%s,%s,%d,%s", FormatTimestamp(rs.Start), FormatTimestamp(rs.Stop), rs.Count, rs.Gap)
}
