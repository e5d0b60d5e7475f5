package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/stats"
)

// achievementsCmd represents the achievements command.
var achievementsCmd = &cobra.Command{
	Use:     "achievements",
	Aliases: []string{"ach", "badges"},
	Short:   "Show achievements and which ones you have unlocked",
	Long: `Show every achievement with its unlock state. Achievements are checked
automatically after each write and edit; 'check' runs the check on demand.

Examples:
  diary achievements
  diary achievements check`,
	Args: cobra.NoArgs,
	RunE: runAchievements,
}

// achievementsCheckCmd evaluates achievements now.
var achievementsCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Unlock any achievements you now qualify for",
	Args:  cobra.NoArgs,
	RunE:  runAchievementsCheck,
}

func init() {
	achievementsCmd.AddCommand(achievementsCheckCmd)
	rootCmd.AddCommand(achievementsCmd)
}

func runAchievements(cmd *cobra.Command, args []string) error {
	list, err := ctx.Stats.ListAchievements(request(cmd), ctx.User)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string][]stats.AchievementStatus{"achievements": list})
	}
	ctx.CLIFormatter().PrintAchievements(list)
	return nil
}

func runAchievementsCheck(cmd *cobra.Command, args []string) error {
	unlocked, err := ctx.Stats.CheckAchievements(request(cmd), ctx.User)
	if err != nil {
		return err
	}

	if ctx.IsJSON() {
		if unlocked == nil {
			unlocked = []stats.Unlock{}
		}
		return ctx.Formatter.JSON(map[string][]stats.Unlock{"unlocked": unlocked})
	}
	if len(unlocked) == 0 {
		ctx.CLIFormatter().Muted("No new achievements.")
		return nil
	}
	ctx.CLIFormatter().PrintUnlocks(unlocked)
	return nil
}
