package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/journal"
)

// List command flags.
var (
	listFlagSearch string
	listFlagMood   string
	listFlagTag    string
	listFlagFrom   string
	listFlagUntil  string
	listFlagSort   string
	listFlagOrder  string
	listFlagPage   int
	listFlagLimit  int
	listFlagPinned bool
)

// listCmd represents the list command.
var listCmd = &cobra.Command{
	Use:     "list [PERIOD]",
	Aliases: []string{"ls", "entries"},
	Short:   "List journal entries",
	Long: `List journal entries, pinned entries first. PERIOD narrows the list to
today, yesterday, this/last week, this/last month, this/last year, a year
such as 2024, or a single date.

Examples:
  diary list
  diary list this week
  diary list --search lake --mood calm
  diary list 2024 --sort wordCount --order asc
  diary list --tag travel --page 2`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVarP(&listFlagSearch, "search", "s", "", "Search titles and text")
	listCmd.Flags().StringVarP(&listFlagMood, "mood", "m", "", "Filter by mood")
	listCmd.Flags().StringVarP(&listFlagTag, "tag", "t", "", "Filter by tag")
	listCmd.Flags().StringVar(&listFlagFrom, "from", "", "First date to include")
	listCmd.Flags().StringVar(&listFlagUntil, "until", "", "Last date to include")
	listCmd.Flags().StringVar(&listFlagSort, "sort", "date", "Sort by: date, createdAt, wordCount")
	listCmd.Flags().StringVar(&listFlagOrder, "order", "desc", "Sort order: asc, desc")
	listCmd.Flags().IntVarP(&listFlagPage, "page", "p", 1, "Page number")
	listCmd.Flags().IntVarP(&listFlagLimit, "limit", "n", 0, "Entries per page (default $DIARY_LIST_LIMIT)")
	listCmd.Flags().BoolVar(&listFlagPinned, "pinned", false, "Only pinned entries")

	listCmd.ValidArgsFunction = completePeriods
	listCmd.RegisterFlagCompletionFunc("mood", completeMoods)
	listCmd.RegisterFlagCompletionFunc("tag", completeTags)

	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	period, err := parsePeriod(args, listFlagFrom, listFlagUntil)
	if err != nil {
		return err
	}

	filter := journal.ListFilter{
		Page:   listFlagPage,
		Limit:  listFlagLimit,
		Search: listFlagSearch,
		Mood:   parseMood(listFlagMood),
		Tag:    listFlagTag,
		From:   period.From,
		Until:  period.Until,
		SortBy: listFlagSort,
		Order:  listFlagOrder,
	}
	if listFlagPinned {
		filter.Pinned = &listFlagPinned
	}

	page, err := ctx.Journal.List(request(cmd), ctx.User, filter)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(page)
	}
	ctx.CLIFormatter().PrintEntryList(page)
	return nil
}
