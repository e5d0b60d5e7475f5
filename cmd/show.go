package cmd

import (
	"github.com/spf13/cobra"
)

// showCmd represents the show command.
var showCmd = &cobra.Command{
	Use:     "show ID",
	Aliases: []string{"view", "cat"},
	Short:   "Show one entry",
	Args:    cobra.ExactArgs(1),
	RunE:    runShow,
}

func init() {
	showCmd.ValidArgsFunction = completeEntryIDs
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	entry, err := ctx.Journal.Get(request(cmd), ctx.User, args[0])
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(entry)
	}
	ctx.CLIFormatter().PrintEntry(entry)
	return nil
}
