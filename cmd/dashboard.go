package cmd

import (
	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/tui"
)

// dashboardCmd represents the dashboard command.
var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash", "tui"},
	Short:   "Open the interactive TUI dashboard",
	Long: `Open an interactive terminal dashboard of your journal.

The dashboard shows:
  - Streak, totals and this month's entries
  - Progress toward today's and this week's goals
  - The heatmap of the selected year
  - Entries written on this day in other years

Keyboard Controls:
  ←/h, →/l - Previous / next year
  r        - Refresh data
  q        - Quit dashboard

Examples:
  diary dashboard
  diary dash`,
	Args: cobra.NoArgs,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return tui.Run(tui.DashboardConfig{
		Engine:  ctx.Stats,
		UserID:  ctx.User,
		Context: request(cmd),
	})
}
