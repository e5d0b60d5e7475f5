package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// deleteCmd represents the delete command.
var deleteCmd = &cobra.Command{
	Use:     "delete ID",
	Aliases: []string{"rm", "remove"},
	Short:   "Delete an entry",
	Long: `Delete an entry permanently. Achievements it helped unlock are kept.

Examples:
  diary delete 0195e2c4-...`,
	Args: cobra.ExactArgs(1),
	RunE: runDelete,
}

func init() {
	deleteCmd.ValidArgsFunction = completeEntryIDs
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	if err := ctx.Journal.Delete(request(cmd), ctx.User, args[0]); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]string{"status": "deleted", "id": args[0]})
	}
	ctx.CLIFormatter().Success(fmt.Sprintf("Deleted entry %s", args[0]))
	return nil
}
