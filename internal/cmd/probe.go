package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/esstools/essready/internal/config"
	"github.com/esstools/essready/internal/discovery"
	"github.com/esstools/essready/internal/healthcheck"
	"github.com/esstools/essready/internal/log"
)

var probeCmd = &cobra.Command{
	Use:   "probe <application-path>",
	Short: "Probe one instance's health-check endpoint",
	Long: `Probe the health-check API of a single instance and print the
normalized result.

The application path is the IIS application path of the instance, for
example /ESS. The probe targets localhost; the endpoint URI is derived
from the protocol, port and application path.

Examples:
  essready probe /ESS
  essready probe /ESS --protocol https --port 8443 --format json
`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

var (
	probeTimeout    int
	probeMaxRetries int
	probeRetryDelay int
	probeProtocol   string
	probePort       int
)

func init() {
	probeCmd.Flags().IntVar(&probeTimeout, "timeout", 0, "probe timeout in seconds")
	probeCmd.Flags().IntVar(&probeMaxRetries, "max-retries", -1, "probe retry budget")
	probeCmd.Flags().IntVar(&probeRetryDelay, "retry-delay", 0, "delay between retries in seconds")
	probeCmd.Flags().StringVar(&probeProtocol, "protocol", "", "probe protocol (http or https)")
	probeCmd.Flags().IntVar(&probePort, "port", 0, "probe port")

	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	probe := resolveProbeSettings(cmd, cfg)

	client := healthcheck.NewClient(probe, log.DefaultLogger())
	result := client.Probe(cmd.Context(), discovery.Instance{ApplicationPath: args[0]})

	out := cmd.OutOrStdout()
	switch flagFormat {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(result)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(result)
	case "text", "":
		printProbeResult(cmd, result)
		return nil
	default:
		return fmt.Errorf("unknown format: %s (supported: text, json, yaml)", flagFormat)
	}
}

// resolveProbeSettings resolves settings for a single probe: the 60-second
// single-probe defaults, then file values, then explicitly set flags.
func resolveProbeSettings(cmd *cobra.Command, cfg *config.Config) healthcheck.Config {
	probe := cfg.ProbeSettings(healthcheck.DefaultConfig())
	if cmd.Flags().Changed("timeout") {
		probe.TimeoutSeconds = probeTimeout
	}
	if cmd.Flags().Changed("max-retries") {
		probe.MaxRetries = probeMaxRetries
	}
	if cmd.Flags().Changed("retry-delay") {
		probe.RetryDelaySeconds = probeRetryDelay
	}
	if cmd.Flags().Changed("protocol") {
		probe.Protocol = probeProtocol
	}
	if cmd.Flags().Changed("port") {
		probe.Port = probePort
	}
	return probe
}

func printProbeResult(cmd *cobra.Command, result *healthcheck.Result) {
	cmd.Printf("URI:            %s\n", result.Uri)
	if result.StatusCode != 0 {
		cmd.Printf("HTTP status:    %d\n", result.StatusCode)
	}
	cmd.Printf("Overall status: %s\n", result.OverallStatus)
	if result.RetryAttempts > 0 {
		cmd.Printf("Retries:        %d\n", result.RetryAttempts)
	}
	if result.Error != "" {
		cmd.Printf("Error:          %s\n", result.Error)
	}

	if len(result.Components) == 0 {
		return
	}
	cmd.Printf("Components (%d healthy, %d unhealthy):\n",
		result.Summary.HealthyComponents, result.Summary.UnhealthyComponents)
	for _, c := range result.Components {
		line := fmt.Sprintf("  [%s] %s", c.Status, c.Name)
		if c.Version != "" {
			line += " " + c.Version
		}
		cmd.Println(line)
		for _, m := range c.Messages {
			cmd.Printf("        %s\n", m.FullMessage)
		}
	}
}
