package cmd

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mukunda-/mdb-tools/internal/seed"
)

var (
	seedRows    int
	seedVariant bool
	seedValue   int64
)

var seedCmd = &cobra.Command{
	Use:   "seed <path.db>",
	Short: "Create a sqlite fixture database",
	Long: `Seed creates a small sqlite database with sample data. Running it twice
with the same --seed, once with --variant, produces a pair of databases whose
differences the compare command will find.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("refusing to seed into existing file %s", path)
		}

		db, err := sql.Open("sqlite3", path)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", path, err)
		}
		defer db.Close()

		opts := seed.Options{Rows: seedRows, Variant: seedVariant, Seed: seedValue}
		if err := seed.Run(db, opts); err != nil {
			return err
		}
		fmt.Printf("Seeded %s with %d rows per table.\n", path, seedRows)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)

	seedCmd.Flags().IntVar(&seedRows, "rows", 25, "rows per table")
	seedCmd.Flags().BoolVar(&seedVariant, "variant", false, "produce the divergent half of a fixture pair")
	seedCmd.Flags().Int64Var(&seedValue, "seed", 1, "random seed for generated data")
}
