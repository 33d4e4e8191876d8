package contract

import (
	"fmt"
	"strings"
	"time"

	"github.com/huangsam/spans/schema"
)

// Default values for configuration.
const (
	DefaultPrecision  = -1
	MaxPrecision      = 10
	DefaultPassCount  = 5
	MaxPassCount      = 100
	DefaultPassesURL  = "http://api.open-notify.org/iss-pass.json"
	DefaultPassesRate = "1s"
)

// CacheGranularity defines the time granularity for caching pass lookups.
// Lookups within the same window share a cache key.
const CacheGranularity = time.Hour

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	Precision  int
	Output     schema.OutputMode
	OutputFile string
	UseColors  bool // Enable colored labels in table output

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	// Range is built from positional arguments of the range command.
	Range schema.RangeSpec

	Large schema.RangeSpec
	Short schema.RangeSpec

	Latitude   float64
	Longitude  float64
	PassCount  int
	PassesURL  string
	PassesRate time.Duration
	Within     schema.RangeSpec

	NumbersFile string
	WeightsFile string
	Root        bool

	CasesFile string

	TargetVersion int
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	RangeArgs   []string
	NumbersFile string
	CasesFile   string

	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`

	// --- Fields from overlapCmd.Flags() ---
	Large string `mapstructure:"large"`
	Short string `mapstructure:"short"`

	// --- Fields from passesCmd.Flags() ---
	Lat        float64 `mapstructure:"lat"`
	Lon        float64 `mapstructure:"lon"`
	Passes     int     `mapstructure:"passes"`
	PassesURL  string  `mapstructure:"passes-url"`
	PassesRate string  `mapstructure:"passes-rate"`
	Within     string  `mapstructure:"within"`

	// --- Fields from squaresCmd.Flags() ---
	Weights string `mapstructure:"weights"`
	Root    bool   `mapstructure:"root"`

	// --- Fields from historyMigrateCmd.Flags() ---
	TargetVersion int `mapstructure:"target-version"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// GetCacheWindow returns now truncated to the caching granularity.
func (c *Config) GetCacheWindow(now time.Time) time.Time {
	return now.UTC().Truncate(CacheGranularity)
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processRangeSpecs(cfg, input, time.Now().UTC()); err != nil {
		return err
	}
	if err := processPassLookup(cfg, input); err != nil {
		return err
	}
	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history-db-connect: %w", err)
	}

	// For SQLite, resolve to actual file paths to catch default path conflicts
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}

	return nil
}

// validateSimpleInputs processes and validates output and storage fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.NumbersFile = input.NumbersFile
	cfg.WeightsFile = input.Weights
	cfg.Root = input.Root
	cfg.CasesFile = input.CasesFile
	cfg.TargetVersion = input.TargetVersion

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Precision < -1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between -1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return validateBackendConfigs(cfg, input)
}

// processRangeSpecs parses every range given on the command line or in config.
func processRangeSpecs(cfg *Config, input *ConfigRawInput, now time.Time) error {
	var err error
	if len(input.RangeArgs) > 0 {
		if cfg.Range, err = ParseRangeArgs(input.RangeArgs, now); err != nil {
			return fmt.Errorf("invalid range: %w", err)
		}
	}
	if input.Large != "" {
		if cfg.Large, err = ParseRangeSpec(input.Large, now); err != nil {
			return fmt.Errorf("invalid --large: %w", err)
		}
	}
	if input.Short != "" {
		if cfg.Short, err = ParseRangeSpec(input.Short, now); err != nil {
			return fmt.Errorf("invalid --short: %w", err)
		}
	}
	if input.Within != "" {
		if cfg.Within, err = ParseRangeSpec(input.Within, now); err != nil {
			return fmt.Errorf("invalid --within: %w", err)
		}
	}
	return nil
}

// processPassLookup validates the pass provider parameters.
func processPassLookup(cfg *Config, input *ConfigRawInput) error {
	if err := RevalidatePassLookup(cfg, input.Lat, input.Lon, input.Passes); err != nil {
		return err
	}

	cfg.PassesURL = strings.TrimSpace(input.PassesURL)
	if cfg.PassesURL == "" {
		cfg.PassesURL = DefaultPassesURL
	}

	rate := input.PassesRate
	if rate == "" {
		rate = DefaultPassesRate
	}
	d, err := time.ParseDuration(rate)
	if err != nil || d <= 0 {
		return fmt.Errorf("passes-rate must be a positive duration (received %q)", rate)
	}
	cfg.PassesRate = d
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RevalidatePassLookup applies pass lookup parameters that arrive outside the
// command line, such as from an MCP tool call.
func RevalidatePassLookup(cfg *Config, lat, lon float64, passes int) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("lat must be between -90 and 90 (received %g)", lat)
	}
	if lon < -180 || lon > 180 {
		return fmt.Errorf("lon must be between -180 and 180 (received %g)", lon)
	}
	if passes < 1 || passes > MaxPassCount {
		return fmt.Errorf("passes must be between 1 and %d (received %d)", MaxPassCount, passes)
	}
	cfg.Latitude = lat
	cfg.Longitude = lon
	cfg.PassCount = passes
	return nil
}
