package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/internal/iocache"
	"github.com/huangsam/spans/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadHistoryBackend reads and validates the history backend settings.
func loadHistoryBackend() (schema.DatabaseBackend, string, error) {
	if err := readConfigFile(); err != nil {
		return "", "", err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
func historySetup() error {
	backend, connStr, err := loadHistoryBackend()
	if err != nil {
		return err
	}

	// No pass caching for history commands
	if err := iocache.InitStores("", "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads the history backend without opening the store,
// so migrations can run against a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := loadHistoryBackend()
	if err != nil {
		return err
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.TargetVersion = viper.GetInt("target-version")
	return nil
}

// historyCmd focused on run history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage the history of computed ranges",
	Long: `Manage the record of every range, overlap, passes, squares and check run.

Each successful run stores:
- Run metadata (command, parameters, timestamps, duration)
- Every interval the run produced, in order

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show history statistics
  export  - Export runs and intervals to Parquet
  clear   - Remove all recorded runs
  migrate - Run database schema migrations

Examples:
  spans history status
  spans history export --output-file spans-history`,
}

// historyClearCmd clears the run history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded runs and intervals",
	Long: `Delete every recorded run and the intervals it produced.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  spans history export --output-file backup
  spans history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseStores()
		if err := iocache.ClearHistory(cfg.HistoryBackend, sqlitePath(cfg.HistoryDBConnect, contract.GetHistoryDBFilePath()), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display history statistics and connection details",
	Long: `Show detailed information about the run history.

Displays:
- Backend type and connection status
- Total number of runs and intervals recorded
- Last and oldest run timestamps
- Database table sizes

Examples:
  spans history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := cacheManager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iocache.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports the run history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export runs and intervals to Parquet",
	Long: `Export the run history to two Parquet files:

  <output-file>.runs.parquet      - one row per run
  <output-file>.intervals.parquet - one row per produced interval

Requires: --output-file parameter

Examples:
  spans history export --output-file spans-history
  duckdb -c "SELECT * FROM read_parquet('spans-history.runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteHistoryExport(os.Stdout, cacheManager.GetHistoryStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  spans history migrate

  # Migrate to specific version
  spans history migrate --target-version 1

  # Rollback all migrations
  spans history migrate --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, cfg.TargetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
