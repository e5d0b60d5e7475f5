package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/journal"
)

// Write command flags.
var (
	writeFlagContent string
	writeFlagFile    string
	writeFlagMood    string
	writeFlagTags    []string
	writeFlagDate    string
	writeFlagPin     bool
)

// writeCmd represents the write command.
var writeCmd = &cobra.Command{
	Use:     "write TITLE [CONTENT]",
	Aliases: []string{"w", "new"},
	Short:   "Write a new journal entry",
	Long: `Write a new journal entry. Content may be given as the second argument,
with --content, read from --file, or piped on stdin. HTML and rich-text JSON
content are stored as is; word counts use their plain text.

Examples:
  diary write "Rainy Sunday" "Stayed in and read all afternoon."
  diary write "Trip" --file notes.html --tag travel --tag family
  diary write "Late thoughts" --mood tired --date yesterday
  echo "Ran 5k" | diary write "Morning run" --mood happy`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runWrite,
}

func init() {
	writeCmd.Flags().StringVarP(&writeFlagContent, "content", "c", "", "Entry content")
	writeCmd.Flags().StringVar(&writeFlagFile, "file", "", "Read content from a file ('-' for stdin)")
	writeCmd.Flags().StringVarP(&writeFlagMood, "mood", "m", "", "Mood: happy, calm, sad, angry, anxious, excited, grateful, tired")
	writeCmd.Flags().StringSliceVarP(&writeFlagTags, "tag", "t", nil, "Tag (repeatable or comma-separated)")
	writeCmd.Flags().StringVarP(&writeFlagDate, "date", "d", "", "Entry date (e.g. yesterday, 2025-03-14, '3 days ago')")
	writeCmd.Flags().BoolVar(&writeFlagPin, "pin", false, "Pin the entry")

	writeCmd.RegisterFlagCompletionFunc("mood", completeMoods)
	writeCmd.RegisterFlagCompletionFunc("tag", completeTags)

	rootCmd.AddCommand(writeCmd)
}

func runWrite(cmd *cobra.Command, args []string) error {
	content := writeFlagContent
	if len(args) == 2 {
		content = args[1]
	}
	content, err := readContent(content, writeFlagFile)
	if err != nil {
		return err
	}

	date, err := parseEntryDate(writeFlagDate)
	if err != nil {
		return err
	}

	res, err := ctx.Journal.Create(request(cmd), ctx.User, journal.EntryInput{
		Title:   args[0],
		Content: content,
		Mood:    parseMood(writeFlagMood),
		Date:    date,
		Tags:    writeFlagTags,
		Pinned:  writeFlagPin,
	})
	if res == nil {
		return err
	}

	if ctx.IsJSON() {
		if jerr := ctx.JSONFormatter().PrintSaved("created", res); jerr != nil {
			return jerr
		}
	} else {
		ctx.CLIFormatter().PrintSaved("Created", res)
	}
	// A failed achievement check still leaves the entry saved.
	return err
}
