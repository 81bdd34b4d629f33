// internal/commands/status.go
package otune

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mjarrell/otune/internal/ollama"
)

// statusCmd probes the configured host and reports reachability.
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check connectivity to the Ollama host",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		client := ollama.New(cfg)
		ctx := cmd.Context()

		up := color.New(color.FgGreen).SprintFunc()
		down := color.New(color.FgRed).SprintFunc()

		if err := client.Ping(ctx); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n  %v\n", down("DOWN"), cfg.HostURL(), err)
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true
			return err
		}

		version, err := client.Version(ctx)
		if err != nil {
			version = "unknown"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (Ollama %s)\n", up("UP"), cfg.HostURL(), version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
