package algo

import (
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/huangsam/spans/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustRange builds a range from TimestampLayout strings or fails the test.
func mustRange(t testing.TB, start, stop string, count int, gap time.Duration) schema.TimeRange {
	t.Helper()
	s, err := schema.ParseTimestamp(start)
	require.NoError(t, err)
	e, err := schema.ParseTimestamp(stop)
	require.NoError(t, err)
	tr, err := schema.NewTimeRange(s, e, count, gap)
	require.NoError(t, err)
	return tr
}

func TestOverlapCases(t *testing.T) {
	data, err := os.ReadFile("testdata/overlap_cases.yaml")
	require.NoError(t, err)

	cases, err := schema.ParseCheckCases(data)
	require.NoError(t, err)
	require.NotEmpty(t, cases)

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			large, err := tc.Large.Build()
			require.NoError(t, err)
			short, err := tc.Short.Build()
			require.NoError(t, err)

			want := tc.Expected
			switch tc.ExpectedRef {
			case schema.LargeInputName:
				want = large
			case schema.ShortInputName:
				want = short
			}

			got := Overlap(large, short)
			assert.True(t, want.Equal(got), "got %v, want %v", got, want)
		})
	}
}

func TestOverlapTwentyMinutes(t *testing.T) {
	large := mustRange(t, "2019-01-01 00:00:00", "2019-01-01 23:50:00", 24, 10*time.Minute)
	short := mustRange(t, "2019-01-01 00:30:00", "2019-01-01 23:55:00", 24, 35*time.Minute)

	result := Overlap(large, short)

	require.Len(t, result, 24)
	for _, ti := range result {
		assert.Equal(t, 20*time.Minute, ti.Duration(), "interval %s", ti)
	}
}

func TestOverlapEmpty(t *testing.T) {
	large := mustRange(t, "2019-01-01 00:00:00", "2019-01-01 01:00:00", 1, 0)

	tests := []struct {
		name  string
		large schema.TimeRange
		short schema.TimeRange
	}{
		{"Both Empty", schema.TimeRange{}, schema.TimeRange{}},
		{"Nil Inputs", nil, nil},
		{"Empty Short", large, schema.TimeRange{}},
		{"Empty Large", schema.TimeRange{}, large},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Overlap(tt.large, tt.short)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}
}

func TestOverlapKeepsShortOrderAndSplits(t *testing.T) {
	large := mustRange(t, "2019-10-31 00:00:00", "2019-10-31 00:50:00", 3, 10*time.Minute)
	short := mustRange(t, "2019-10-31 00:05:00", "2019-10-31 00:55:00", 2, 10*time.Minute)
	// short is 00:05-00:25 and 00:35-00:55

	got := Overlap(large, short)

	want := mustRangeOf(t,
		"2019-10-31 00:05:00", "2019-10-31 00:10:00",
		"2019-10-31 00:20:00", "2019-10-31 00:25:00",
		"2019-10-31 00:40:00", "2019-10-31 00:50:00",
	)
	assert.True(t, want.Equal(got), "got %v, want %v", got, want)
}

func TestOverlapPassesInsideWideWindow(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Second)
	passes := schema.TimeRange{}
	for _, p := range []struct{ offset, duration int64 }{
		{88433, 446}, {94095, 628}, {99871, 656}, {105676, 655}, {111480, 632},
	} {
		passes = append(passes, schema.Pass{RiseTime: float64(now.Unix() + p.offset), Duration: float64(p.duration)}.Interval())
	}
	require.NoError(t, passes.Validate())

	window, err := schema.NewTimeRange(now.Add(-24*time.Hour), now.Add(7*24*time.Hour), 0, 0)
	require.NoError(t, err)

	assert.True(t, passes.Equal(Overlap(window, passes)))
}

// mustRangeOf builds a range from consecutive start/stop pairs.
func mustRangeOf(t testing.TB, endpoints ...string) schema.TimeRange {
	t.Helper()
	require.Zero(t, len(endpoints)%2)
	tr := schema.TimeRange{}
	for i := 0; i < len(endpoints); i += 2 {
		s, err := schema.ParseTimestamp(endpoints[i])
		require.NoError(t, err)
		e, err := schema.ParseTimestamp(endpoints[i+1])
		require.NoError(t, err)
		ti, err := schema.NewTimeInterval(s, e)
		require.NoError(t, err)
		tr = append(tr, ti)
	}
	return tr
}

// FuzzOverlap checks the containment and non-touching properties on generated ranges.
func FuzzOverlap(f *testing.F) {
	f.Add(int64(0), int64(3000), 3, int64(600), int64(600), int64(3000), 3, int64(600))
	f.Add(int64(0), int64(85800), 24, int64(600), int64(1800), int64(86100), 24, int64(2100))
	f.Add(int64(0), int64(7200), 1, int64(0), int64(1800), int64(2700), 2, int64(60))

	base := time.Date(2019, time.January, 1, 0, 0, 0, 0, time.UTC)

	f.Fuzz(func(t *testing.T, ls, le int64, lc int, lg int64, ss, se int64, sc int, sg int64) {
		build := func(s, e int64, c int, g int64) (schema.TimeRange, bool) {
			if c < 0 || c > 50 || g < 0 || g > 1_000_000 || s < 0 || e > 1_000_000 {
				return nil, false
			}
			tr, err := schema.NewTimeRange(base.Add(time.Duration(s)*time.Second), base.Add(time.Duration(e)*time.Second), c, time.Duration(g)*time.Second)
			return tr, err == nil
		}
		large, ok := build(ls, le, lc, lg)
		if !ok {
			return
		}
		short, ok := build(ss, se, sc, sg)
		if !ok {
			return
		}

		for _, piece := range Overlap(large, short) {
			if !piece.Valid() {
				t.Fatalf("empty piece %s", piece)
			}
			inShort, inLarge := false, false
			for _, s := range short {
				inShort = inShort || s.Contains(piece)
			}
			for _, l := range large {
				inLarge = inLarge || l.Overlaps(piece)
			}
			if !inShort || !inLarge {
				t.Fatalf("piece %s escapes its inputs", piece)
			}
		}
	})
}

func BenchmarkOverlap(b *testing.B) {
	sizes := []int{24, 240, 2400}
	for _, n := range sizes {
		large := mustRange(b, "2019-01-01 00:00:00", "2019-01-31 00:00:00", n, time.Minute)
		short := mustRange(b, "2019-01-01 00:30:00", "2019-01-30 23:30:00", n, 2*time.Minute)
		b.Run(strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for b.Loop() {
				_ = Overlap(large, short)
			}
		})
	}
}
