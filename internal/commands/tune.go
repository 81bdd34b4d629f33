// internal/commands/tune.go
package otune

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mjarrell/otune/internal/ollama"
	"github.com/mjarrell/otune/internal/tui"
)

// tuneCmd opens the interactive settings panel against the configured host.
var tuneCmd = &cobra.Command{
	Use:   "tune",
	Short: "Open the interactive settings panel",
	Long: `The 'tune' command opens the settings panel for the configured Ollama host.
Pick a model, adjust temperature, top_p, seed, and context size, and apply the
result either manually (ctrl+s) or on every edit with --autoApply.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		client := ollama.New(cfg)

		applied, saved, err := tui.RunPanel(cfg, client, nil)
		if err != nil {
			return err
		}
		if !saved {
			fmt.Fprintln(cmd.OutOrStdout(), "No settings were applied.")
			return nil
		}

		appliedTag := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s model=%s temperature=%v top_p=%v num_ctx=%d\n",
			appliedTag("Applied:"), applied.Model, applied.Temperature, applied.TopP, applied.NumCtx)
		if applied.UseFixedSeed {
			fmt.Fprintf(cmd.OutOrStdout(), "  fixed seed=%d\n", applied.Seed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuneCmd)
}
