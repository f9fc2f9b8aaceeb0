package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/esstools/essready/internal/config"
	"github.com/esstools/essready/internal/discovery"
	"github.com/esstools/essready/internal/errors"
	"github.com/esstools/essready/internal/healthcheck"
	"github.com/esstools/essready/internal/log"
	"github.com/esstools/essready/internal/report"
	"github.com/esstools/essready/internal/validation"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the full readiness sweep",
	Long: `Run every readiness check against all discovered instances and render
the report.

Instances come from a YAML inventory file (--inventory or the config
file). The sweep never stops on a failing check; the exit code reflects
the final report instead.

Examples:
  # Sweep the instances listed in an inventory file
  essready check --inventory instances.yaml

  # Machine-readable report for CI
  essready check --inventory instances.yaml --format json

  # Probe over HTTPS on a non-standard port
  essready check --inventory instances.yaml --protocol https --port 8443
`,
	RunE: runCheck,
}

var (
	checkInventory  string
	checkTimeout    int
	checkMaxRetries int
	checkRetryDelay int
	checkProtocol   string
	checkPort       int
	checkMinVersion string
	checkNoColor    bool
)

func init() {
	checkCmd.Flags().StringVarP(&checkInventory, "inventory", "i", "", "YAML inventory file listing the deployed instances")
	checkCmd.Flags().IntVar(&checkTimeout, "timeout", 0, "probe timeout in seconds")
	checkCmd.Flags().IntVar(&checkMaxRetries, "max-retries", -1, "probe retry budget")
	checkCmd.Flags().IntVar(&checkRetryDelay, "retry-delay", 0, "delay between probe retries in seconds")
	checkCmd.Flags().StringVar(&checkProtocol, "protocol", "", "probe protocol (http or https)")
	checkCmd.Flags().IntVar(&checkPort, "port", 0, "probe port (omitted when it is the protocol default)")
	checkCmd.Flags().StringVar(&checkMinVersion, "minimum-version", "", "lowest product version the upgrade supports")
	checkCmd.Flags().BoolVar(&checkNoColor, "no-color", false, "disable styled output")

	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	applyCheckFlags(cmd, cfg)

	if cfg.Inventory == "" {
		return errors.New(errors.ErrCodeDiscoveryUnavailable,
			"discovery unavailable: no inventory file given (use --inventory or the config file)").
			WithSuggestion("List the deployed instances in a YAML inventory file")
	}

	format := cfg.Format
	if flagFormat != "" {
		format = flagFormat
	}
	formatter, err := report.NewFormatter(format, &report.Options{
		Writer:  cmd.OutOrStdout(),
		NoColor: checkNoColor,
	})
	if err != nil {
		return err
	}

	opts := validation.DefaultOptions()
	opts.Probe = cfg.ProbeSettings(healthcheck.DefaultBatchConfig())
	applyProbeFlags(cmd, &opts.Probe)
	if cfg.MinimumVersion != "" {
		opts.MinimumVersion = cfg.MinimumVersion
	}

	provider := discovery.NewInventoryProvider(cfg.Inventory)
	runner := validation.NewRunner(provider, opts, log.DefaultLogger())

	outcome, err := runner.Run(cmd.Context())
	if err != nil {
		return err
	}

	if err := formatter.Format(outcome); err != nil {
		return fmt.Errorf("render report: %w", err)
	}

	if outcome.Summary.Fail > 0 {
		return fmt.Errorf("validation failed: %d check(s) failed", outcome.Summary.Fail)
	}
	return nil
}

// applyCheckFlags lays explicitly set flags over the file configuration.
func applyCheckFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("inventory") {
		cfg.Inventory = checkInventory
	}
	if cmd.Flags().Changed("minimum-version") {
		cfg.MinimumVersion = checkMinVersion
	}
}

// applyProbeFlags overrides resolved probe settings with explicitly set
// flags. This runs after the config merge so a flag set to zero still wins.
func applyProbeFlags(cmd *cobra.Command, probe *healthcheck.Config) {
	if cmd.Flags().Changed("timeout") {
		probe.TimeoutSeconds = checkTimeout
	}
	if cmd.Flags().Changed("max-retries") {
		probe.MaxRetries = checkMaxRetries
	}
	if cmd.Flags().Changed("retry-delay") {
		probe.RetryDelaySeconds = checkRetryDelay
	}
	if cmd.Flags().Changed("protocol") {
		probe.Protocol = checkProtocol
	}
	if cmd.Flags().Changed("port") {
		probe.Port = checkPort
	}
}
