package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/reminder"
)

// Goal command flags.
var (
	goalSetFlagDaily    int
	goalSetFlagWeekly   int
	goalSetFlagReminder string
	goalSetFlagAt       string
	goalSetFlagEmail    string
)

// goalCmd represents the goal command.
var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Show the writing goal and today's progress",
	Long: `Show the daily word goal, the weekly entry goal, reminder settings and
progress toward both goals. A goal with default targets is created the first
time it is shown.

Examples:
  diary goal
  diary goal set --daily 500
  diary goal set --weekly 5 --reminder on --at 21:30`,
	Args: cobra.NoArgs,
	RunE: runGoal,
}

// goalSetCmd changes the writing goal.
var goalSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change the writing goal",
	Long: `Change the writing goal. Only the flags you pass are changed.

Limits: daily words 50-10000, weekly entries 1-14, reminder time HH:MM.

Examples:
  diary goal set --daily 500
  diary goal set --weekly 4
  diary goal set --reminder on --at 07:45
  diary goal set --reminder off`,
	Args: cobra.NoArgs,
	RunE: runGoalSet,
}

func init() {
	goalSetCmd.Flags().IntVarP(&goalSetFlagDaily, "daily", "d", 0, "Daily word goal")
	goalSetCmd.Flags().IntVarP(&goalSetFlagWeekly, "weekly", "w", 0, "Weekly entry goal")
	goalSetCmd.Flags().StringVar(&goalSetFlagReminder, "reminder", "", "Daily reminder: on, off")
	goalSetCmd.Flags().StringVar(&goalSetFlagAt, "at", "", "Reminder time (HH:MM)")
	goalSetCmd.Flags().StringVar(&goalSetFlagEmail, "email", "", "Email reminder preference: on, off")

	onOff := func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"on", "off"}, cobra.ShellCompDirectiveNoFileComp
	}
	goalSetCmd.RegisterFlagCompletionFunc("reminder", onOff)
	goalSetCmd.RegisterFlagCompletionFunc("email", onOff)

	goalCmd.AddCommand(goalSetCmd)
	rootCmd.AddCommand(goalCmd)
}

// parseOnOff parses an on/off flag value.
func parseOnOff(flag, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "true", "yes":
		return true, nil
	case "off", "false", "no":
		return false, nil
	}
	return false, errors.NewUserErrorWithField(flag, value, "Expected on or off", "Pass --"+flag+" on or --"+flag+" off")
}

func runGoal(cmd *cobra.Command, args []string) error {
	goal, err := ctx.Stats.Goal(request(cmd), ctx.User)
	if err != nil {
		return err
	}
	return printGoal(cmd, goal)
}

func runGoalSet(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	var update model.GoalUpdate

	if flags.Changed("daily") {
		update.DailyWordGoal = &goalSetFlagDaily
	}
	if flags.Changed("weekly") {
		update.WeeklyEntryGoal = &goalSetFlagWeekly
	}
	if flags.Changed("reminder") {
		on, err := parseOnOff("reminder", goalSetFlagReminder)
		if err != nil {
			return err
		}
		update.ReminderEnabled = &on
	}
	if flags.Changed("at") {
		at := strings.TrimSpace(goalSetFlagAt)
		update.ReminderTime = &at
	}
	if flags.Changed("email") {
		on, err := parseOnOff("email", goalSetFlagEmail)
		if err != nil {
			return err
		}
		update.ReminderEmail = &on
	}

	if update.IsEmpty() {
		return errors.NewUserError("Nothing to change", "Pass at least one of --daily, --weekly, --reminder, --at or --email")
	}

	goal, err := ctx.Stats.UpdateGoal(request(cmd), ctx.User, update)
	if err != nil {
		return err
	}
	if !ctx.IsJSON() {
		ctx.CLIFormatter().Success("Writing goal updated")
	}
	return printGoal(cmd, goal)
}

// printGoal prints the goal, its progress and the next reminder time.
func printGoal(cmd *cobra.Command, goal *model.WritingGoal) error {
	progress, err := ctx.Stats.GoalProgress(request(cmd), ctx.User)
	if err != nil {
		return err
	}
	next, _, err := reminder.Next(goal, ctx.Stats.Now())
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.JSONFormatter().PrintGoal(goal, progress, next)
	}
	ctx.CLIFormatter().PrintGoal(goal, progress, next)
	return nil
}
