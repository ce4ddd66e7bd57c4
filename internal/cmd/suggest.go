package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgEdge/dqcheck/internal/pgxsession"
	"github.com/pgEdge/dqcheck/internal/profiler"
	"github.com/pgEdge/dqcheck/internal/suggest"
)

var suggestConn connFlags
var suggestCfg configFlags
var suggestTable string
var suggestColumns []string

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest constraints for one or more columns from observed data",
	RunE:  runSuggest,
}

func init() {
	addConnFlags(suggestCmd, &suggestConn)
	addConfigFlag(suggestCmd, &suggestCfg)
	suggestCmd.Flags().StringVar(&suggestTable, "table", "", "Table to profile (required)")
	suggestCmd.Flags().StringSliceVar(&suggestColumns, "columns", nil, "Columns to profile (required)")
	suggestCmd.MarkFlagRequired("table")
	suggestCmd.MarkFlagRequired("columns")
}

func runSuggest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	file, err := loadConfigFile(suggestCfg.Path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := pgxsession.Connect(ctx, mergeConnConfig(cmd, suggestConn, file.Connection))
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer pool.Close()

	sess := pgxsession.New(pool)
	profCfg := file.Profiler.ToProfilerConfig()
	cfg := file.Suggest.ToSuggestConfig()

	result := make(map[string][]suggest.SuggestedConstraint, len(suggestColumns))
	for _, col := range suggestColumns {
		p, err := profiler.Profile(ctx, sess, profCfg, suggestTable, col)
		if err != nil {
			return err
		}
		result[col] = suggest.Suggest(p, cfg, nil)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
