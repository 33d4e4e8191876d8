package contract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/spans/schema"
)

// Define the regular expression to capture "N [units] ago" or "in N [units]".
// e.g., "2 days ago", "in 1 week".
var relativeTimeRe = regexp.MustCompile(`^(?:(\d{1,4})\s+(week|day|hour|minute|second)s?\s+ago|in\s+(\d{1,4})\s+(week|day|hour|minute|second)s?)$`)

// ParseRelativeTime converts strings like "now", "2 days ago" or "in 1 week"
// into a time.Time relative to now.
func ParseRelativeTime(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "now" {
		return now, nil
	}

	matches := relativeTimeRe.FindStringSubmatch(s)
	if len(matches) == 0 {
		return time.Time{}, fmt.Errorf("invalid relative time format: %s", s)
	}

	// 1,2: past value and unit; 3,4: future value and unit
	if matches[1] != "" {
		value, _ := strconv.Atoi(matches[1])
		return now.Add(-time.Duration(value) * schema.UnitDurations[matches[2]]), nil
	}
	value, _ := strconv.Atoi(matches[3])
	return now.Add(time.Duration(value) * schema.UnitDurations[matches[4]]), nil
}

// ParseTimeValue accepts an absolute timestamp or a relative expression.
func ParseTimeValue(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	t, err := schema.ParseTimestamp(s)
	if err == nil {
		return t, nil
	}
	t, relErr := ParseRelativeTime(s, now)
	if relErr != nil {
		return time.Time{}, fmt.Errorf("invalid time %q. Expected %q, RFC3339, 'now' or 'N [units] ago'", s, schema.TimestampLayout)
	}
	return t.UTC().Truncate(time.Second), nil
}

// ParseRangeSpec parses "START,STOP[,COUNT[,GAP]]".
func ParseRangeSpec(s string, now time.Time) (schema.RangeSpec, error) {
	parts := strings.Split(s, ",")
	return ParseRangeArgs(parts, now)
}

// ParseRangeArgs parses the split form [START, STOP, COUNT?, GAP?].
func ParseRangeArgs(args []string, now time.Time) (schema.RangeSpec, error) {
	var rs schema.RangeSpec
	if len(args) < 2 || len(args) > 4 {
		return rs, fmt.Errorf("expected START,STOP[,COUNT[,GAP]] but got %d fields", len(args))
	}

	var err error
	if rs.Start, err = ParseTimeValue(args[0], now); err != nil {
		return rs, err
	}
	if rs.Stop, err = ParseTimeValue(args[1], now); err != nil {
		return rs, err
	}
	if len(args) > 2 {
		countStr := strings.TrimSpace(args[2])
		if rs.Count, err = strconv.Atoi(countStr); err != nil {
			return rs, fmt.Errorf("invalid count %q: %w", countStr, err)
		}
		if rs.Count < 0 {
			return rs, fmt.Errorf("count must not be negative (received %d)", rs.Count)
		}
	}
	if len(args) > 3 {
		if rs.Gap, err = schema.ParseGap(args[3]); err != nil {
			return rs, err
		}
	}
	if !rs.Stop.After(rs.Start) {
		return rs, fmt.Errorf("%w: start %s, stop %s", schema.ErrInvalidInterval,
			schema.FormatTimestamp(rs.Start), schema.FormatTimestamp(rs.Stop))
	}
	return rs, nil
}
