package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mukunda-/mdb-tools/internal/engine"
	"github.com/mukunda-/mdb-tools/internal/report"
	"github.com/mukunda-/mdb-tools/internal/source"
)

var (
	schemaOnly    bool
	stopThreshold int
	allowEmpty    bool
	driverA       string
	driverB       string
	tableFilter   []string
	noProgress    bool
)

var compareCmd = &cobra.Command{
	Use:   "compare [dsnA dsnB]",
	Short: "Compare two data sources",
	Long: `Compare runs a schema pass (additional tables and fields, field attribute
differences) followed by a data pass (row-by-row value comparison over the
tables present in both sources). DSNs come from the arguments or from the
active pair in the config file.`,
	Args: cobra.RangeArgs(0, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dsnA, dsnB := "", ""
		if len(args) == 2 {
			dsnA, dsnB = args[0], args[1]
		} else {
			pair, err := GetActivePair()
			if err != nil {
				return fmt.Errorf("two DSN arguments required, or a configured pair: %w", err)
			}
			driverA, dsnA = pair.DriverA, pair.DSNA
			driverB, dsnB = pair.DriverB, pair.DSNB
		}

		srcA, err := source.Open(driverA, dsnA)
		if err != nil {
			return fmt.Errorf("source A: %w", err)
		}
		defer srcA.Close()

		srcB, err := source.Open(driverB, dsnB)
		if err != nil {
			return fmt.Errorf("source B: %w", err)
		}
		defer srcB.Close()

		opts := engineOptions()
		comparer := engine.NewComparer(srcA, srcB, opts, Log)

		Log.Debugw("starting schema pass", "driverA", srcA.Driver(), "driverB", srcB.Driver())
		start := time.Now()

		diff, common, err := comparer.CompareSchemas()
		if err != nil {
			return err
		}
		report.SchemaDiff(os.Stdout, diff)

		if schemaOnly {
			return nil
		}

		common = filterTables(common, tableFilter)
		if len(common) == 0 {
			fmt.Println("No common tables to scan.")
			return nil
		}

		onTable := func(string) {}
		if !noProgress {
			uiprogress.Start()
			bar := uiprogress.AddBar(len(common)).AppendCompleted().PrependElapsed()
			bar.PrependFunc(func(b *uiprogress.Bar) string {
				return "Scanning: "
			})
			onTable = func(string) { bar.Incr() }
		}

		data, err := comparer.CompareData(common, onTable)
		if !noProgress {
			uiprogress.Stop()
		}
		if err != nil {
			return err
		}

		report.DataDiff(os.Stdout, data)
		Log.Debugw("comparison done", "tables", len(common), "elapsed", time.Since(start))
		return nil
	},
}

// filterTables restricts the scan to the requested tables. Flag > all, with
// case-insensitive matching like the rest of the name handling.
func filterTables(common, requested []string) []string {
	if len(requested) == 0 {
		return common
	}
	want := make(map[string]bool, len(requested))
	for _, t := range requested {
		want[strings.ToLower(t)] = true
	}
	var out []string
	for _, t := range common {
		if want[strings.ToLower(t)] {
			out = append(out, t)
		}
	}
	return out
}

func init() {
	RootCmd.AddCommand(compareCmd)

	compareCmd.Flags().BoolVar(&schemaOnly, "schema-only", false, "skip the data pass")
	compareCmd.Flags().IntVar(&stopThreshold, "stop-threshold", 0, "max divergent row pairs collected per table (overrides config)")
	compareCmd.Flags().BoolVar(&allowEmpty, "compare-allow-empty", false, "include the allow-empty flag in field attribute comparison")
	compareCmd.Flags().StringVar(&driverA, "driver-a", "", "driver for source A (default: detect from DSN)")
	compareCmd.Flags().StringVar(&driverB, "driver-b", "", "driver for source B (default: detect from DSN)")
	compareCmd.Flags().StringSliceVarP(&tableFilter, "tables", "t", []string{}, "restrict the data pass to specific tables (comma-separated)")
	compareCmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the progress bar")

	viper.BindPFlag("compare.stop_threshold", compareCmd.Flags().Lookup("stop-threshold"))
	viper.BindPFlag("compare.compare_allow_empty", compareCmd.Flags().Lookup("compare-allow-empty"))
}
