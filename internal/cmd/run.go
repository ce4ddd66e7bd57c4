package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/dqcheck/internal/pgxsession"
	"github.com/pgEdge/dqcheck/internal/report"
	"github.com/pgEdge/dqcheck/internal/suitefile"
)

var runConn connFlags
var runOut outputFlags
var runCfg configFlags
var runSuiteFile string
var runCategories []string

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a suite file's checks against a table",
	RunE:  runRun,
}

func init() {
	addConnFlags(runCmd, &runConn)
	addOutputFlags(runCmd, &runOut)
	addConfigFlag(runCmd, &runCfg)
	runCmd.Flags().StringVar(&runSuiteFile, "suite", "", "Path to a YAML suite definition (required)")
	runCmd.Flags().StringSliceVar(&runCategories, "categories", nil, "Only run checks whose constraints match these categories")
	runCmd.MarkFlagRequired("suite")
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	s, err := suitefile.Load(runSuiteFile)
	if err != nil {
		return fmt.Errorf("load suite: %w", err)
	}
	if len(runCategories) > 0 {
		s = s.FilterChecks(runCategories)
	}

	file, err := loadConfigFile(runCfg.Path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := pgxsession.Connect(ctx, mergeConnConfig(cmd, runConn, file.Connection))
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer pool.Close()

	sess := pgxsession.New(pool)
	result := s.Run(ctx, sess)

	output, err := report.Render(result, runOut.Format)
	if err != nil {
		return err
	}
	return writeOutput(output, runOut, runConn.DBName)
}
