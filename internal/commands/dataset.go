// internal/commands/dataset.go
package otune

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mjarrell/otune/internal/dataset"
	"github.com/mjarrell/otune/internal/tui"
	"github.com/mjarrell/otune/internal/util"
)

// datasetCmd prints the stored Q&A pairs.
var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Show the stored Q&A dataset",
	RunE: func(cmd *cobra.Command, args []string) error {
		store := dataset.NewStore(GetConfig().DatasetFilePath())
		pairs, err := store.Load()
		if err != nil {
			return err
		}
		if len(pairs) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Dataset %s is empty.\n", store.Path())
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Dataset %s (%d pair(s)):\n", store.Path(), len(pairs))
		for i, p := range pairs {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d. Q: %s\n     A: %s\n", i+1,
				util.TruncateRunes(p.Question, 72), util.TruncateRunes(p.Answer, 72))
		}
		return nil
	},
}

// importCmd loads CSV rows into the dataset store, asking merge-or-replace
// when the store already holds pairs.
var importCmd = &cobra.Command{
	Use:   "import <csv-file>",
	Short: "Import Q&A pairs from a two-column CSV file",
	Long: `The 'import' subcommand reads question/answer rows from a CSV file into the
dataset store. When the store already holds pairs, a confirmation dialog asks
whether to merge the incoming rows or replace the dataset outright.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store := dataset.NewStore(GetConfig().DatasetFilePath())
		existing, err := store.Load()
		if err != nil {
			return err
		}

		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("could not open %q: %w", args[0], err)
		}
		incoming, err := dataset.ReadCSV(file)
		file.Close()
		if err != nil {
			return err
		}
		if len(incoming) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No Q&A pairs found in %s.\n", args[0])
			return nil
		}

		action := tui.ImportReplace
		if len(existing) > 0 {
			action, err = confirmImport(len(existing), len(incoming))
			if err != nil {
				return err
			}
		}

		var next []dataset.Pair
		switch action {
		case tui.ImportMerge:
			next = dataset.Merge(existing, incoming)
		case tui.ImportReplace:
			next = incoming
		default:
			fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled; dataset unchanged.")
			return nil
		}

		if err := store.Save(next); err != nil {
			return err
		}
		done := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d pair(s) written to %s (%s)\n",
			done("Imported:"), len(next), store.Path(), action)
		return nil
	},
}

// confirmImport runs the merge/replace dialog and returns the user's choice.
func confirmImport(existing, incoming int) (tui.ImportAction, error) {
	final, err := tea.NewProgram(tui.NewConfirm(existing, incoming)).Run()
	if err != nil {
		return tui.ImportCancel, fmt.Errorf("error running import dialog: %w", err)
	}
	model, ok := final.(tui.ConfirmModel)
	if !ok {
		return tui.ImportCancel, fmt.Errorf("unexpected final model type %T", final)
	}
	return model.Choice(), nil
}

func init() {
	rootCmd.AddCommand(datasetCmd)
	datasetCmd.AddCommand(importCmd)
}
