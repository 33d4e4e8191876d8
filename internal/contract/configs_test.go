package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/spans/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns raw input matching the CLI defaults.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Precision:      DefaultPrecision,
		Output:         "text",
		Color:          "yes",
		CacheBackend:   string(schema.SQLiteBackend),
		HistoryBackend: string(schema.SQLiteBackend),
		Passes:         DefaultPassCount,
		PassesURL:      DefaultPassesURL,
		PassesRate:     DefaultPassesRate,
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{
			name:   "valid minimal config",
			mutate: func(*ConfigRawInput) {},
		},
		{
			name: "valid overlap config",
			mutate: func(in *ConfigRawInput) {
				in.Large = "2010-01-12 10:00:00,2010-01-12 12:00:00"
				in.Short = "2010-01-12 10:30:00,2010-01-12 10:45:00,2,60"
			},
		},
		{
			name: "valid passes config",
			mutate: func(in *ConfigRawInput) {
				in.Lat = 51.5074
				in.Lon = -0.1278
				in.Within = "1 day ago,in 7 days"
			},
		},
		{
			name:        "invalid output",
			mutate:      func(in *ConfigRawInput) { in.Output = "xml" },
			expectError: true,
		},
		{
			name:        "parquet without file",
			mutate:      func(in *ConfigRawInput) { in.Output = "parquet" },
			expectError: true,
		},
		{
			name: "parquet with file",
			mutate: func(in *ConfigRawInput) {
				in.Output = "parquet"
				in.OutputFile = "out.parquet"
			},
		},
		{
			name:        "precision too high",
			mutate:      func(in *ConfigRawInput) { in.Precision = 11 },
			expectError: true,
		},
		{
			name:        "precision too low",
			mutate:      func(in *ConfigRawInput) { in.Precision = -2 },
			expectError: true,
		},
		{
			name:        "invalid color",
			mutate:      func(in *ConfigRawInput) { in.Color = "maybe" },
			expectError: true,
		},
		{
			name:        "backwards short range",
			mutate:      func(in *ConfigRawInput) { in.Short = "2010-01-12 12:00:00,2010-01-12 10:00:00" },
			expectError: true,
		},
		{
			name:        "latitude out of bounds",
			mutate:      func(in *ConfigRawInput) { in.Lat = 91 },
			expectError: true,
		},
		{
			name:        "longitude out of bounds",
			mutate:      func(in *ConfigRawInput) { in.Lon = -181 },
			expectError: true,
		},
		{
			name:        "zero passes",
			mutate:      func(in *ConfigRawInput) { in.Passes = 0 },
			expectError: true,
		},
		{
			name:        "bad passes rate",
			mutate:      func(in *ConfigRawInput) { in.PassesRate = "-1s" },
			expectError: true,
		},
		{
			name:        "invalid cache backend",
			mutate:      func(in *ConfigRawInput) { in.CacheBackend = "redis" },
			expectError: true,
		},
		{
			name:        "mysql without connection string",
			mutate:      func(in *ConfigRawInput) { in.HistoryBackend = "mysql" },
			expectError: true,
		},
		{
			name: "same sqlite file",
			mutate: func(in *ConfigRawInput) {
				in.CacheDBConnect = filepath.Join(t.TempDir(), "shared.db")
				in.HistoryDBConnect = in.CacheDBConnect
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}

			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, schema.OutputMode(input.Output), cfg.Output)
		})
	}
}

func TestProcessAndValidatePopulatesConfig(t *testing.T) {
	input := validInput()
	input.RangeArgs = []string{"2010-01-12 10:30:00", "2010-01-12 10:45:00", "2", "1m"}
	input.Large = "2010-01-12 10:00:00,2010-01-12 12:00:00"
	input.Lat = 10
	input.Lon = 20
	input.Passes = 3
	input.PassesURL = ""
	input.Weights = "weights.txt"
	input.Root = true
	input.Precision = 2

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, 2, cfg.Range.Count)
	assert.Equal(t, time.Minute, cfg.Range.Gap)
	assert.False(t, cfg.Large.IsZero())
	assert.True(t, cfg.Short.IsZero())
	assert.Equal(t, 10.0, cfg.Latitude)
	assert.Equal(t, 20.0, cfg.Longitude)
	assert.Equal(t, 3, cfg.PassCount)
	assert.Equal(t, DefaultPassesURL, cfg.PassesURL)
	assert.Equal(t, time.Second, cfg.PassesRate)
	assert.Equal(t, "weights.txt", cfg.WeightsFile)
	assert.True(t, cfg.Root)
	assert.Equal(t, 2, cfg.Precision)
	assert.True(t, cfg.UseColors)
}

func TestValidateDatabaseConnectionString(t *testing.T) {
	tests := []struct {
		name      string
		backend   schema.DatabaseBackend
		connStr   string
		expectErr bool
	}{
		{"sqlite empty", schema.SQLiteBackend, "", false},
		{"none empty", schema.NoneBackend, "", false},
		{"mysql valid", schema.MySQLBackend, "user:pass@tcp(localhost:3306)/spans", false},
		{"mysql missing tcp", schema.MySQLBackend, "user:pass@localhost/spans", true},
		{"mysql empty", schema.MySQLBackend, "", true},
		{"postgres valid", schema.PostgreSQLBackend, "host=localhost user=u password=p dbname=spans", false},
		{"postgres missing dbname", schema.PostgreSQLBackend, "host=localhost user=u", true},
		{"postgres empty", schema.PostgreSQLBackend, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatabaseConnectionString(tt.backend, tt.connStr)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGetCacheWindow(t *testing.T) {
	cfg := &Config{}
	now := time.Date(2025, time.November, 3, 10, 42, 7, 0, time.UTC)
	assert.Equal(t, time.Date(2025, time.November, 3, 10, 0, 0, 0, time.UTC), cfg.GetCacheWindow(now))
}

func TestProcessProfilingConfig(t *testing.T) {
	profile := &ProfileConfig{}
	require.NoError(t, ProcessProfilingConfig(profile, ""))
	assert.False(t, profile.Enabled)

	require.NoError(t, ProcessProfilingConfig(profile, "spans"))
	assert.True(t, profile.Enabled)
	assert.Equal(t, "spans", profile.Prefix)
}

func TestRevalidatePassLookup(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		passes  int
		wantErr string
	}{
		{"valid", 45.5, -122.6, 5, ""},
		{"edges", -90, 180, MaxPassCount, ""},
		{"lat too high", 90.5, 0, 5, "lat must be between"},
		{"lon too low", 0, -181, 5, "lon must be between"},
		{"zero passes", 0, 0, 0, "passes must be between"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := RevalidatePassLookup(cfg, tt.lat, tt.lon, tt.passes)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				assert.Zero(t, cfg.PassCount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.lat, cfg.Latitude)
			assert.Equal(t, tt.lon, cfg.Longitude)
			assert.Equal(t, tt.passes, cfg.PassCount)
		})
	}
}
