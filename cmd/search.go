package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mukunda-/mdb-tools/internal/engine"
	"github.com/mukunda-/mdb-tools/internal/report"
	"github.com/mukunda-/mdb-tools/internal/source"
)

var (
	searchDriver string
	searchTables bool
	searchFields bool
	searchValues bool
	searchLimit  int
)

var searchCmd = &cobra.Command{
	Use:   "search <dsn> <pattern>",
	Short: "Search a data source against a regular expression",
	Long: `Search scans table names, field names, and cell values against a Go
regular expression and streams matches as they are found. Scope flags narrow
the scan; by default all three namespaces are searched.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dsn, pattern := args[0], args[1]

		src, err := source.Open(searchDriver, dsn)
		if err != nil {
			return fmt.Errorf("source: %w", err)
		}
		defer src.Close()

		scope := engine.SearchScope{
			TableNames: searchTables,
			FieldNames: searchFields,
			Values:     searchValues,
		}

		searcher := engine.NewSearcher(src, scope, engineOptions(), Log)
		printer := report.NewMatchPrinter(os.Stdout)

		failures, err := searcher.Search(pattern, func(m engine.Match) bool {
			printer.Print(m)
			return searchLimit <= 0 || printer.Count() < searchLimit
		})
		if err != nil {
			return err
		}

		for _, f := range failures {
			Log.Warnw("table scan failed", "table", f.Table, "error", f.Err)
		}
		fmt.Printf("%d match(es).\n", printer.Count())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVar(&searchDriver, "driver", "", "driver for the source (default: detect from DSN)")
	searchCmd.Flags().BoolVar(&searchTables, "tables", true, "search table names")
	searchCmd.Flags().BoolVar(&searchFields, "fields", true, "search field names")
	searchCmd.Flags().BoolVar(&searchValues, "values", true, "search cell values")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "stop after this many matches (0 = unlimited)")
}
