package schema

import (
	"math"
	"time"
)

const maxRiseSeconds = 1 << 53

// Pass is one visibility window reported by the pass provider.
// Providers may send fractional values; both fields are truncated to whole seconds.
type Pass struct {
	RiseTime float64 `json:"risetime"` // unix seconds
	Duration float64 `json:"duration"` // seconds
}

// Interval converts the pass into [risetime, risetime+duration) in UTC.
// A NaN or out-of-range rise time, or a duration that does not fit a
// time.Duration, yields an empty interval, which fails validation.
func (p Pass) Interval() TimeInterval {
	if math.IsNaN(p.RiseTime) || math.Abs(p.RiseTime) > maxRiseSeconds {
		return TimeInterval{}
	}
	start := time.Unix(int64(p.RiseTime), 0).UTC()
	if math.IsNaN(p.Duration) || p.Duration < 0 || p.Duration > maxGapSeconds {
		return TimeInterval{Start: start, Stop: start}
	}
	return TimeInterval{Start: start, Stop: start.Add(time.Duration(int64(p.Duration)) * time.Second)}
}

// PassRequest echoes the parameters of a pass lookup.
type PassRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
	Passes    int     `json:"passes"`
	DateTime  float64 `json:"datetime"`
}

// PassResponse is the full body returned by the pass provider.
type PassResponse struct {
	Message  string      `json:"message"`
	Request  PassRequest `json:"request"`
	Response []Pass      `json:"response"`
}

// PassQuery identifies a pass lookup.
type PassQuery struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Count     int     `json:"n"`
}
