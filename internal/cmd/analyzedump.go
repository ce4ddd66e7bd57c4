package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgEdge/dqcheck/internal/parser"
	"github.com/pgEdge/dqcheck/internal/suggest"
)

var analyzeDumpFile string

var analyzeDumpCmd = &cobra.Command{
	Use:   "analyze-dump",
	Short: "Suggest foreign keys, temporal ordering, and cross-table sums from a pg_dump SQL file",
	RunE:  runAnalyzeDump,
}

func init() {
	analyzeDumpCmd.Flags().StringVar(&analyzeDumpFile, "file", "", "Path to a pg_dump SQL file")
	analyzeDumpCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(analyzeDumpCmd)
}

func runAnalyzeDump(cmd *cobra.Command, args []string) error {
	schema, err := parser.ParseDump(analyzeDumpFile)
	if err != nil {
		return fmt.Errorf("parsing dump: %w", err)
	}

	tables := schema.TableSchemas()
	fks := suggest.AnalyzeForeignKeys(tables)

	out := struct {
		ForeignKeys     []suggest.ForeignKeySuggestion        `json:"foreign_keys"`
		TemporalOrder   []suggest.TemporalOrderingSuggestion   `json:"temporal_ordering"`
		CrossTableSums  []suggest.CrossTableSumSuggestion      `json:"cross_table_sums"`
	}{
		ForeignKeys:    fks,
		TemporalOrder:  suggest.AnalyzeTemporalOrdering(tables),
		CrossTableSums: suggest.AnalyzeCrossTableSums(tables, fks),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
