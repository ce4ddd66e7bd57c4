// Package cmd implements the dqcheck CLI for running, profiling, and
// suggesting data-quality constraints against a Postgres table.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pgEdge/dqcheck/internal/config"
	"github.com/pgEdge/dqcheck/internal/pgxsession"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:     "dqcheck",
	Short:   "Declarative data-quality validation against a Postgres table",
	Long:    "dqcheck runs a named suite of data-quality constraints against a table, profiles columns, and suggests new constraints from observed data.",
	Version: version,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(describeCmd)
}

// Execute runs the root command; main wires its error to a process exit.
func Execute() error {
	return rootCmd.Execute()
}

// connFlags are the connection flags shared by the subcommands that
// connect to a database (run, profile, suggest).
type connFlags struct {
	DSN      string
	Host     string
	Port     int
	DBName   string
	User     string
	Password string
}

func addConnFlags(cmd *cobra.Command, f *connFlags) {
	cmd.Flags().StringVar(&f.DSN, "dsn", "", "PostgreSQL connection URI (postgres://...)")
	cmd.Flags().StringVarP(&f.Host, "host", "H", "", "Database host")
	cmd.Flags().IntVarP(&f.Port, "port", "p", 5432, "Database port")
	cmd.Flags().StringVarP(&f.DBName, "dbname", "d", "", "Database name")
	cmd.Flags().StringVarP(&f.User, "user", "U", "", "Database user")
	cmd.Flags().StringVarP(&f.Password, "password", "W", "", "Database password")
}

// outputFlags are the report-format flags shared by commands that emit a
// rendered report.
type outputFlags struct {
	Format string
	Output string
}

func addOutputFlags(cmd *cobra.Command, f *outputFlags) {
	cmd.Flags().StringVarP(&f.Format, "format", "f", "json", "Report format (json, markdown, html)")
	cmd.Flags().StringVarP(&f.Output, "output", "o", "", "Output file path (default: ./reports/<dbname>_<timestamp>.<ext>)")
}

// configFlags carries an optional path to a YAML config file (internal/config)
// supplying connection and budget defaults below whatever flags the caller
// set explicitly.
type configFlags struct {
	Path string
}

func addConfigFlag(cmd *cobra.Command, f *configFlags) {
	cmd.Flags().StringVarP(&f.Path, "config", "c", "", "Path to a YAML config file for connection and budget defaults")
}

// loadConfigFile reads path if non-empty, returning a zero-value File
// (whose fields are all ignored by the merge helpers below) when no
// config file was requested.
func loadConfigFile(path string) (config.File, error) {
	if path == "" {
		return config.File{}, nil
	}
	return config.Load(path)
}

// mergeConnConfig builds a pgxsession.Config from the explicit flags,
// falling back to the config file's connection section for any flag the
// caller did not set on the command line.
func mergeConnConfig(cmd *cobra.Command, f connFlags, fc config.ConnectionConfig) pgxsession.Config {
	cfg := pgxsession.Config{
		DSN: f.DSN, Host: f.Host, Port: f.Port,
		DBName: f.DBName, User: f.User, Password: f.Password,
	}
	changed := cmd.Flags().Changed
	if !changed("dsn") && fc.DSN != "" {
		cfg.DSN = fc.DSN
	}
	if !changed("host") && fc.Host != "" {
		cfg.Host = fc.Host
	}
	if !changed("port") && fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if !changed("dbname") && fc.DBName != "" {
		cfg.DBName = fc.DBName
	}
	if !changed("user") && fc.User != "" {
		cfg.User = fc.User
	}
	if !changed("password") && fc.Password != "" {
		cfg.Password = fc.Password
	}
	if fc.MaxConns > 0 {
		cfg.MaxConns = fc.MaxConns
	}
	return cfg
}
