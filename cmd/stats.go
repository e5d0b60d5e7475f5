package cmd

import (
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/stats"
)

// Stats command flags.
var (
	statsFlagFrom  string
	statsFlagUntil string
)

// statsCmd represents the stats command.
var statsCmd = &cobra.Command{
	Use:     "stats",
	Aliases: []string{"stat", "overview"},
	Short:   "Show journal statistics",
	Long: `Show total entries and words, the current writing streak, this month's
entries and progress toward the writing goal.

Examples:
  diary stats
  diary stats moods last month
  diary stats activity 2024
  diary stats tags`,
	Args: cobra.NoArgs,
	RunE: runOverview,
}

// statsMoodsCmd shows the mood breakdown.
var statsMoodsCmd = &cobra.Command{
	Use:   "moods [PERIOD]",
	Short: "Show how often each mood was recorded",
	Long: `Show how often each mood was recorded, optionally within a period.

Examples:
  diary stats moods
  diary stats moods this year
  diary stats moods --from 2025-01-01 --until 2025-03-31`,
	RunE: runStatsMoods,
}

// statsActivityCmd shows per-day activity.
var statsActivityCmd = &cobra.Command{
	Use:   "activity [YEAR]",
	Short: "Show entries and words for each active day of a year",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatsActivity,
}

// statsTagsCmd shows the most used tags.
var statsTagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "Show the most used tags",
	Args:  cobra.NoArgs,
	RunE:  runStatsTags,
}

func init() {
	statsMoodsCmd.Flags().StringVar(&statsFlagFrom, "from", "", "First date to include")
	statsMoodsCmd.Flags().StringVar(&statsFlagUntil, "until", "", "Last date to include")
	statsMoodsCmd.ValidArgsFunction = completePeriods

	statsCmd.AddCommand(statsMoodsCmd)
	statsCmd.AddCommand(statsActivityCmd)
	statsCmd.AddCommand(statsTagsCmd)
	rootCmd.AddCommand(statsCmd)
}

func runOverview(cmd *cobra.Command, args []string) error {
	rc := request(cmd)

	var (
		overview *stats.Overview
		progress *stats.GoalProgress
	)
	g, gctx := errgroup.WithContext(rc)
	g.Go(func() (err error) {
		overview, err = ctx.Stats.Overview(gctx, ctx.User)
		return err
	})
	g.Go(func() (err error) {
		progress, err = ctx.Stats.GoalProgress(gctx, ctx.User)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintOverview(overview, progress)
	}
	ctx.CLIFormatter().PrintOverview(overview, progress)
	return nil
}

func runStatsMoods(cmd *cobra.Command, args []string) error {
	period, err := parsePeriod(args, statsFlagFrom, statsFlagUntil)
	if err != nil {
		return err
	}

	counts, err := ctx.Stats.MoodBreakdown(request(cmd), ctx.User, period.From, period.Until)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string][]model.MoodCount{"moods": counts})
	}
	ctx.CLIFormatter().PrintMoods(counts)
	return nil
}

func runStatsActivity(cmd *cobra.Command, args []string) error {
	year, err := yearArg(args)
	if err != nil {
		return err
	}

	days, err := ctx.Stats.Activity(request(cmd), ctx.User, year)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{"year": year, "days": days})
	}
	ctx.CLIFormatter().PrintActivity(days)
	return nil
}

func runStatsTags(cmd *cobra.Command, args []string) error {
	tags, err := ctx.Stats.TopTags(request(cmd), ctx.User)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string][]model.TagCount{"tags": tags})
	}
	ctx.CLIFormatter().PrintTopTags(tags)
	return nil
}

// yearArg returns the year given as the only argument, or the current year.
func yearArg(args []string) (int, error) {
	if len(args) == 0 {
		return ctx.Stats.Today().Year(), nil
	}
	year, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errors.NewUserErrorWithField("year", args[0], "Year must be a number", "Pass a year such as 2024")
	}
	return year, nil
}
