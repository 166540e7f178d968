package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ppiankov/chronomap/internal/model"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "chronomap",
	Short: "ChronoMap - historical map dating engine and guessing game",
	Long: `ChronoMap estimates when a historical map was made from the evidence
the map itself carries: political entities that existed only in certain
periods, years printed on the sheet, and visual production features.

Every estimate is explained signal by signal. ChronoMap reports what the
evidence supports, with confidence, not a certified publication date.

It also plays: guess a map's date, get graded against the engine's
estimate, and learn which clues you missed.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Display the version number and build information for ChronoMap.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("chronomap v0.1.0")
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $HOME/.chronomap/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))

	// Add subcommands
	rootCmd.AddCommand(versionCmd)
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error finding home directory: %v\n", err)
			return
		}

		// Search for config in home directory
		viper.AddConfigPath(filepath.Join(home, ".chronomap"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	// Read in environment variables that match CHRONOMAP_*
	viper.SetEnvPrefix("CHRONOMAP")
	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", viper.ConfigFileUsed())
	}
}

// loadConfig builds the effective configuration: defaults overlaid with
// whatever the config file and environment provide.
func loadConfig() *model.Config {
	cfg := model.DefaultConfig()
	if err := viper.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: bad config values ignored: %v\n", err)
	}

	// Data directories default under ~/.chronomap.
	if home, err := os.UserHomeDir(); err == nil {
		base := filepath.Join(home, ".chronomap")
		if cfg.Cache.Dir == "" {
			cfg.Cache.Dir = filepath.Join(base, "cache")
		}
		if cfg.Game.StatsDir == "" {
			cfg.Game.StatsDir = filepath.Join(base, "stats")
		}
		if cfg.Game.MapsDir == "" {
			cfg.Game.MapsDir = filepath.Join(base, "maps")
		}
	}

	cfg.Output.Verbose = verbose
	return cfg
}
