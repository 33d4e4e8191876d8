package schema

import "time"

// EnrichedInterval adds presentation data to a TimeInterval.
type EnrichedInterval struct {
	Index    int    `json:"index"`
	Start    string `json:"start"`
	Stop     string `json:"stop"`
	Seconds  int64  `json:"seconds"`
	Duration string `json:"duration"`
}

// EnrichIntervals numbers each interval from 1 and renders its endpoints.
func EnrichIntervals(tr TimeRange) []EnrichedInterval {
	output := make([]EnrichedInterval, len(tr))
	for i, ti := range tr {
		d := ti.Duration()
		output[i] = EnrichedInterval{
			Index:    i + 1,
			Start:    FormatTimestamp(ti.Start),
			Stop:     FormatTimestamp(ti.Stop),
			Seconds:  int64(d / time.Second),
			Duration: d.String(),
		}
	}
	return output
}
