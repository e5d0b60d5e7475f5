package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/stats"
)

// Memories command flags.
var (
	timelineFlagYear  int
	timelineFlagPage  int
	timelineFlagLimit int
)

// memoriesCmd represents the memories command.
var memoriesCmd = &cobra.Command{
	Use:     "memories",
	Aliases: []string{"mem", "memory"},
	Short:   "Revisit past entries",
	Long: `Revisit past entries: what you wrote on this day in other years, a random
entry, a month-by-month timeline, or a heatmap of a whole year.

Examples:
  diary memories
  diary memories random
  diary memories timeline --year 2024
  diary memories heatmap 2024`,
	Args: cobra.NoArgs,
	RunE: runOnThisDay,
}

// memoriesTodayCmd shows entries written on this day in other years.
var memoriesTodayCmd = &cobra.Command{
	Use:     "today",
	Aliases: []string{"on-this-day"},
	Short:   "Show entries written on this day in other years",
	Args:    cobra.NoArgs,
	RunE:    runOnThisDay,
}

// memoriesRandomCmd shows one random entry.
var memoriesRandomCmd = &cobra.Command{
	Use:   "random",
	Short: "Show a random entry",
	Args:  cobra.NoArgs,
	RunE:  runRandomMemory,
}

// memoriesTimelineCmd shows entries grouped by month.
var memoriesTimelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show entries grouped by month",
	Args:  cobra.NoArgs,
	RunE:  runTimeline,
}

// memoriesHeatmapCmd shows the activity heatmap of a year.
var memoriesHeatmapCmd = &cobra.Command{
	Use:     "heatmap [YEAR]",
	Aliases: []string{"calendar"},
	Short:   "Show a heatmap of the entries written in a year",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runHeatmap,
}

func init() {
	memoriesTimelineCmd.Flags().IntVarP(&timelineFlagYear, "year", "y", 0, "Only this year")
	memoriesTimelineCmd.Flags().IntVarP(&timelineFlagPage, "page", "p", 1, "Page number")
	memoriesTimelineCmd.Flags().IntVarP(&timelineFlagLimit, "limit", "n", 0, "Entries per page (default $DIARY_TIMELINE_LIMIT)")

	memoriesCmd.AddCommand(memoriesTodayCmd)
	memoriesCmd.AddCommand(memoriesRandomCmd)
	memoriesCmd.AddCommand(memoriesTimelineCmd)
	memoriesCmd.AddCommand(memoriesHeatmapCmd)
	rootCmd.AddCommand(memoriesCmd)
}

func runOnThisDay(cmd *cobra.Command, args []string) error {
	memories, err := ctx.Stats.OnThisDay(request(cmd), ctx.User)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string][]stats.Memory{"memories": memories})
	}
	ctx.CLIFormatter().PrintMemories(memories)
	return nil
}

func runRandomMemory(cmd *cobra.Command, args []string) error {
	entry, err := ctx.Stats.RandomMemory(request(cmd), ctx.User)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{"entry": entry})
	}
	if entry == nil {
		ctx.CLIFormatter().Muted("No entries yet. Use 'diary write' to start your journal.")
		return nil
	}
	ctx.CLIFormatter().PrintEntry(entry)
	return nil
}

func runTimeline(cmd *cobra.Command, args []string) error {
	timeline, err := ctx.Stats.Timeline(request(cmd), ctx.User, stats.TimelineQuery{
		Year:  timelineFlagYear,
		Page:  timelineFlagPage,
		Limit: timelineFlagLimit,
	})
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(timeline)
	}
	ctx.CLIFormatter().PrintTimeline(timeline)
	return nil
}

func runHeatmap(cmd *cobra.Command, args []string) error {
	year, err := yearArg(args)
	if err != nil {
		return err
	}

	heatmap, err := ctx.Stats.Heatmap(request(cmd), ctx.User, year)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(heatmap)
	}
	ctx.CLIFormatter().PrintHeatmap(heatmap)
	return nil
}
