package cmd

import (
	"github.com/huangsam/spans/core"
	"github.com/huangsam/spans/internal/contract"
	"github.com/spf13/cobra"
)

// rangeCmd splits a span into evenly gapped intervals.
var rangeCmd = &cobra.Command{
	Use:   "range START STOP [COUNT [GAP]]",
	Short: "Split a time span into equal intervals separated by a gap",
	Long: `Build a time range: COUNT intervals of equal length between START and STOP,
each separated by GAP. The last interval always ends exactly at STOP.

START and STOP accept "2006-01-02 15:04:05", RFC3339, "now" or "N [units] ago".
COUNT defaults to 1. GAP accepts seconds (600), Go durations (10m) or
human durations (10 minutes) and defaults to 0.

Examples:
  # Two intervals with a one minute gap
  spans range "2010-01-12 10:30:00" "2010-01-12 10:45:00" 2 60

  # Hourly slots over the last day, as JSON
  spans range "1 day ago" now 24 --output json`,
	Args:    cobra.RangeArgs(2, 4),
	PreRunE: setupWith(func(args []string) { input.RangeArgs = args }),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRange(rootCtx, cfg, cacheManager, writer); err != nil {
			contract.LogFatal("Failed to build range", err)
		}
	},
}

// overlapCmd intersects two ranges.
var overlapCmd = &cobra.Command{
	Use:   "overlap",
	Short: "Find where a short range overlaps a large range",
	Long: `Return the parts of the short range that overlap the large range.

Each piece is clipped to the intersection and pieces follow the order of the
short range. Intervals that only touch at an edge do not overlap.

Both ranges use the form START,STOP[,COUNT[,GAP]].

Examples:
  # Two 7 minute slots inside a two hour window
  spans overlap --large "2010-01-12 10:00:00,2010-01-12 12:00:00" \
    --short "2010-01-12 10:30:00,2010-01-12 10:45:00,2,60"

  # Class periods against lunch breaks
  spans overlap --large "2019-10-31 10:00:00,2019-10-31 13:00:00,3,600" \
    --short "2019-10-31 10:05:00,2019-10-31 12:55:00,3,10m" --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: setupWith(nil),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteOverlap(rootCtx, cfg, cacheManager, writer); err != nil {
			contract.LogFatal("Failed to compute overlap", err)
		}
	},
}

// passesCmd looks up satellite passes over a location.
var passesCmd = &cobra.Command{
	Use:   "passes",
	Short: "Look up ISS passes over a location",
	Long: `Fetch the next satellite passes over a ground location from the pass provider.

Each pass becomes the interval [risetime, risetime+duration). Lookups are cached
for the current hour. With --within, only the parts of passes inside the given
range are printed.

Examples:
  # Next five passes over Portland
  spans passes --lat 45.5 --lon -122.6

  # Passes between yesterday and next week
  spans passes --lat 45.5 --lon -122.6 -n 10 --within "1 day ago,in 1 week"`,
	Args:    cobra.NoArgs,
	PreRunE: setupWith(nil),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecutePasses(rootCtx, cfg, cacheManager, newPassProvider(), writer); err != nil {
			contract.LogFatal("Failed to look up passes", err)
		}
	},
}
