// Package cmd wires the essready command tree.
package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/esstools/essready/internal/log"
)

var rootCmd = &cobra.Command{
	Use:   "essready",
	Short: "ESS pre-upgrade readiness checker",
	Long: `essready inspects a host running the employee self-service application
and reports whether it is ready for a product upgrade.

It discovers the deployed ESS/WFE instances, runs an ordered battery of
readiness checks (system, IIS, database, network, security, encryption,
version, SSL) and finishes by probing every instance's health-check API.
Failures never abort the sweep; each one becomes a FAIL record in the
final report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagConfig    string
	flagFormat    string
	flagVerbose   bool
	flagLogFormat string
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command under the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&flagFormat, "format", "", "output format (text, json, yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "log format (text, json)")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		cfg := log.DefaultConfig()
		if flagVerbose {
			cfg = log.VerboseConfig()
		}
		cfg.Format = log.ParseFormat(flagLogFormat)
		log.SetDefaultLogger(log.New(cfg))
	}
}
