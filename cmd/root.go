package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mukunda-/mdb-tools/internal/engine"
)

var (
	cfgFile string
	verbose bool

	// Log is shared by all subcommands; built in PersistentPreRun.
	Log *zap.SugaredLogger
)

var RootCmd = &cobra.Command{
	Use:   "mdb-tools",
	Short: "Compare and search tabular data sources",
	Long: `mdb-tools inspects two tabular data sources and reports structural and
content differences, and searches table names, field names, and cell values
against a pattern.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		Log = buildLogger(verbose)
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mdb-tools.yaml)")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	RootCmd.PersistentFlags().Bool("case-sensitive-names", false, "compare table and field names case-sensitively")
	RootCmd.PersistentFlags().String("reserved-prefix", engine.DefaultReservedPrefix, "table name prefix excluded from all passes")

	viper.BindPFlag("compare.case_sensitive_names", RootCmd.PersistentFlags().Lookup("case-sensitive-names"))
	viper.BindPFlag("compare.reserved_prefix", RootCmd.PersistentFlags().Lookup("reserved-prefix"))

	viper.SetDefault("compare.stop_threshold", engine.DefaultStopThreshold)
	viper.SetDefault("compare.reserved_prefix", engine.DefaultReservedPrefix)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Executable directory first, then the current directory.
		if ex, err := os.Executable(); err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("mdb-tools")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func buildLogger(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// engineOptions assembles engine.Options with flag > config > default
// precedence via viper.
func engineOptions() engine.Options {
	return engine.Options{
		CaseSensitiveNames: viper.GetBool("compare.case_sensitive_names"),
		CompareAllowEmpty:  viper.GetBool("compare.compare_allow_empty"),
		StopThreshold:      viper.GetInt("compare.stop_threshold"),
		ReservedPrefix:     viper.GetString("compare.reserved_prefix"),
	}
}
