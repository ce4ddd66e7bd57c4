package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/dqcheck/internal/suitefile"
)

var describeSuiteFile string

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "List a suite's checks and constraints without running them",
	RunE:  runDescribe,
}

func init() {
	describeCmd.Flags().StringVar(&describeSuiteFile, "suite", "", "Path to a YAML suite definition (required)")
	describeCmd.MarkFlagRequired("suite")
}

func runDescribe(cmd *cobra.Command, args []string) error {
	s, err := suitefile.Load(describeSuiteFile)
	if err != nil {
		return fmt.Errorf("load suite: %w", err)
	}
	for _, c := range s.Checks() {
		fmt.Printf("%s [%s]\n", c.Name(), c.Level())
		if c.Description() != "" {
			fmt.Printf("  %s\n", c.Description())
		}
		for _, con := range c.Constraints() {
			fmt.Printf("  - %s\n", con.Name())
		}
	}
	return nil
}
