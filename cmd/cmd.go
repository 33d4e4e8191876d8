// Package cmd defines the command-line interface for spans.
package cmd

import (
	"github.com/huangsam/spans/internal/contract"
	"github.com/huangsam/spans/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(rangeCmd)
	rootCmd.AddCommand(overlapCmd)
	rootCmd.AddCommand(passesCmd)
	rootCmd.AddCommand(squaresCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)

	// Add the cache subcommands to the parent cache command
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatusCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().StringP("output-file", "o", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric results (-1 = shortest)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("cache-backend", string(schema.SQLiteBackend), "Pass cache backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("cache-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for run history (must differ from cache-db-connect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of overlapCmd to Viper
	overlapCmd.Flags().String("large", "", "Large range as START,STOP[,COUNT[,GAP]]")
	overlapCmd.Flags().String("short", "", "Short range as START,STOP[,COUNT[,GAP]]")
	if err := viper.BindPFlags(overlapCmd.Flags()); err != nil {
		contract.LogFatal("Error binding overlap flags", err)
	}

	// Bind all flags of passesCmd to Viper
	passesCmd.Flags().Float64("lat", 0, "Latitude of the ground location in degrees")
	passesCmd.Flags().Float64("lon", 0, "Longitude of the ground location in degrees")
	passesCmd.Flags().IntP("passes", "n", contract.DefaultPassCount, "Number of passes to look up")
	passesCmd.Flags().String("passes-url", contract.DefaultPassesURL, "Pass provider endpoint")
	passesCmd.Flags().String("passes-rate", contract.DefaultPassesRate, "Minimum delay between provider requests")
	passesCmd.Flags().String("within", "", "Only keep the parts of passes inside this range (START,STOP[,COUNT[,GAP]])")
	if err := viper.BindPFlags(passesCmd.Flags()); err != nil {
		contract.LogFatal("Error binding passes flags", err)
	}

	// Bind all flags of squaresCmd to Viper
	squaresCmd.Flags().StringP("weights", "w", "", "File of weights, one per number")
	squaresCmd.Flags().Bool("root", false, "Print the square root of the average")
	if err := viper.BindPFlags(squaresCmd.Flags()); err != nil {
		contract.LogFatal("Error binding squares flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
