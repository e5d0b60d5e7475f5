package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/journal"
)

// Edit command flags.
var (
	editFlagTitle     string
	editFlagContent   string
	editFlagFile      string
	editFlagMood      string
	editFlagTags      []string
	editFlagClearTags bool
	editFlagDate      string
	editFlagPin       bool
)

// editCmd represents the edit command.
var editCmd = &cobra.Command{
	Use:     "edit ID",
	Aliases: []string{"e", "update"},
	Short:   "Change an existing entry",
	Long: `Change the fields of an existing entry. Only the flags you pass are changed.
Passing --tag replaces all tags; --mood none clears the mood.

Examples:
  diary edit 0195e2c4-... --title "Rainy Saturday"
  diary edit 0195e2c4-... --file revised.html
  diary edit 0195e2c4-... --mood none --clear-tags`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

func init() {
	editCmd.Flags().StringVar(&editFlagTitle, "title", "", "New title")
	editCmd.Flags().StringVarP(&editFlagContent, "content", "c", "", "New content")
	editCmd.Flags().StringVar(&editFlagFile, "file", "", "Read new content from a file ('-' for stdin)")
	editCmd.Flags().StringVarP(&editFlagMood, "mood", "m", "", "New mood, or 'none'")
	editCmd.Flags().StringSliceVarP(&editFlagTags, "tag", "t", nil, "Replace tags (repeatable or comma-separated)")
	editCmd.Flags().BoolVar(&editFlagClearTags, "clear-tags", false, "Remove all tags")
	editCmd.Flags().StringVarP(&editFlagDate, "date", "d", "", "New entry date")
	editCmd.Flags().BoolVar(&editFlagPin, "pin", false, "Pin (--pin) or unpin (--pin=false)")

	editCmd.ValidArgsFunction = completeEntryIDs
	editCmd.RegisterFlagCompletionFunc("mood", completeMoods)
	editCmd.RegisterFlagCompletionFunc("tag", completeTags)

	rootCmd.AddCommand(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	var patch journal.EntryPatch

	if flags.Changed("title") {
		patch.Title = &editFlagTitle
	}
	if flags.Changed("content") || flags.Changed("file") {
		content, err := readContent(editFlagContent, editFlagFile)
		if err != nil {
			return err
		}
		patch.Content = &content
	}
	if flags.Changed("mood") {
		mood := parseMood(editFlagMood)
		patch.Mood = &mood
	}
	if flags.Changed("tag") {
		patch.Tags = &editFlagTags
	} else if editFlagClearTags {
		patch.Tags = &[]string{}
	}
	if flags.Changed("date") {
		date, err := parseEntryDate(editFlagDate)
		if err != nil {
			return err
		}
		patch.Date = &date
	}
	if flags.Changed("pin") {
		patch.Pinned = &editFlagPin
	}

	if patch == (journal.EntryPatch{}) {
		return errors.NewUserError("Nothing to change", "Pass at least one of --title, --content, --mood, --tag or --date")
	}

	res, err := ctx.Journal.Update(request(cmd), ctx.User, args[0], patch)
	if res == nil {
		return err
	}

	if ctx.IsJSON() {
		if jerr := ctx.JSONFormatter().PrintSaved("updated", res); jerr != nil {
			return jerr
		}
	} else {
		ctx.CLIFormatter().PrintSaved("Updated", res)
	}
	return err
}
