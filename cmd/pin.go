package cmd

import (
	"github.com/spf13/cobra"
)

// pinCmd represents the pin command.
var pinCmd = &cobra.Command{
	Use:   "pin ID",
	Short: "Pin or unpin an entry",
	Long: `Toggle the pinned flag of an entry. Pinned entries are listed first.

Examples:
  diary pin 0195e2c4-...`,
	Args: cobra.ExactArgs(1),
	RunE: runPin,
}

func init() {
	pinCmd.ValidArgsFunction = completeEntryIDs
	rootCmd.AddCommand(pinCmd)
}

func runPin(cmd *cobra.Command, args []string) error {
	entry, err := ctx.Journal.TogglePin(request(cmd), ctx.User, args[0])
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(entry)
	}
	if entry.Pinned {
		ctx.CLIFormatter().Success("Pinned " + entry.Title)
	} else {
		ctx.CLIFormatter().Success("Unpinned " + entry.Title)
	}
	return nil
}
