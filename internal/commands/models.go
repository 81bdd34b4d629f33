// internal/commands/models.go
package otune

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mjarrell/otune/internal/logging"
	"github.com/mjarrell/otune/internal/ollama"
)

// modelsCmd lists the models installed on the host and marks loaded ones.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models on the Ollama host",
	Long:  `The 'models' command lists every model installed on the configured Ollama host and marks the ones currently loaded in memory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		client := ollama.New(cfg)
		ctx := cmd.Context()

		names, err := client.ListModels(ctx)
		if err != nil {
			return err
		}
		if len(names) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No models installed on %s.\n", cfg.HostURL())
			return nil
		}

		running, err := client.RunningModels(ctx)
		if err != nil {
			logging.LogEvent("could not query running models: %v", err)
			running = nil
		}

		loaded := color.New(color.FgGreen).SprintFunc()
		for _, name := range names {
			marker := "   "
			if _, ok := running[name]; ok {
				marker = loaded(" * ")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", marker, name)
		}
		if len(running) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "\n%s currently loaded\n", loaded("*"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
