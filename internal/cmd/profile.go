package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pgEdge/dqcheck/internal/pgxsession"
	"github.com/pgEdge/dqcheck/internal/profiler"
)

var profileConn connFlags
var profileCfg configFlags
var profileTable string
var profileColumns []string
var profileMaxConcurrent int

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Profile one or more columns of a table",
	RunE:  runProfile,
}

func init() {
	addConnFlags(profileCmd, &profileConn)
	addConfigFlag(profileCmd, &profileCfg)
	profileCmd.Flags().StringVar(&profileTable, "table", "", "Table to profile (required)")
	profileCmd.Flags().StringSliceVar(&profileColumns, "columns", nil, "Columns to profile (required)")
	profileCmd.Flags().IntVar(&profileMaxConcurrent, "max-concurrent", 1, "Max columns to profile concurrently")
	profileCmd.MarkFlagRequired("table")
	profileCmd.MarkFlagRequired("columns")
}

func runProfile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	file, err := loadConfigFile(profileCfg.Path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := pgxsession.Connect(ctx, mergeConnConfig(cmd, profileConn, file.Connection))
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer pool.Close()

	sess := pgxsession.New(pool)
	profiles, err := profiler.ProfileColumns(ctx, sess, file.Profiler.ToProfilerConfig(), profileTable, profileColumns, profileMaxConcurrent)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(profiles)
}
