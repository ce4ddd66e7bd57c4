package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/pgEdge/dqcheck/internal/config"
)

func TestMergeConnConfigPrefersExplicitFlags(t *testing.T) {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	var f connFlags
	addConnFlags(cmd, &f)
	if err := cmd.Flags().Set("host", "cli-host"); err != nil {
		t.Fatal(err)
	}

	got := mergeConnConfig(cmd, f, config.ConnectionConfig{Host: "file-host", Port: 5433, DBName: "filedb"})

	if got.Host != "cli-host" {
		t.Errorf("Host = %q, want cli-host (explicit flag should win)", got.Host)
	}
	if got.Port != 5433 {
		t.Errorf("Port = %d, want 5433 (config file fills unset flag)", got.Port)
	}
	if got.DBName != "filedb" {
		t.Errorf("DBName = %q, want filedb (config file fills unset flag)", got.DBName)
	}
}

func TestMergeConnConfigNoFileFallsBackToFlagDefaults(t *testing.T) {
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	var f connFlags
	addConnFlags(cmd, &f)

	got := mergeConnConfig(cmd, f, config.ConnectionConfig{})

	if got.Port != 5432 {
		t.Errorf("Port = %d, want 5432 (flag default)", got.Port)
	}
	if got.Host != "" {
		t.Errorf("Host = %q, want empty", got.Host)
	}
}

func TestLoadConfigFileEmptyPathIsNoOp(t *testing.T) {
	f, err := loadConfigFile("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Connection.Host != "" {
		t.Errorf("expected zero-value File, got %+v", f)
	}
}
