package schema

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Define the regular expression to capture "N [units]".
var gapDurationRe = regexp.MustCompile(`^(\d{1,4})\s+(week|day|hour|minute|second)s?$`)

// maxGapSeconds keeps a gap within the range of time.Duration.
const maxGapSeconds = float64(math.MaxInt64 / int64(time.Second))

// UnitDurations maps the unit words accepted in human durations.
var UnitDurations = map[string]time.Duration{
	"week":   7 * 24 * time.Hour,
	"day":    24 * time.Hour,
	"hour":   time.Hour,
	"minute": time.Minute,
	"second": time.Second,
}

// ParseGap converts strings like "600", "10m" or "10 minutes" into a
// non-negative time.Duration. Plain numbers are seconds and empty means zero.
func ParseGap(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		if math.IsNaN(secs) || secs < 0 || secs > maxGapSeconds {
			return 0, fmt.Errorf("gap must be between 0 and %g seconds (received %s)", maxGapSeconds, s)
		}
		return time.Duration(secs * float64(time.Second)), nil
	}

	// Try Go's built-in duration parsing next (e.g., "10m", "1h30m")
	if d, err := time.ParseDuration(s); err == nil {
		if d < 0 {
			return 0, errors.New("gap must not be negative")
		}
		return d, nil
	}

	// Fall back to custom parsing for human-readable formats (e.g., "10 minutes")
	matches := gapDurationRe.FindStringSubmatch(strings.ToLower(s))
	if len(matches) == 0 {
		return 0, fmt.Errorf("invalid gap duration format: %s", s)
	}
	value, _ := strconv.Atoi(matches[1])
	return time.Duration(value) * UnitDurations[matches[2]], nil
}
