package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nova728/diary/internal/notify"
	"github.com/nova728/diary/internal/reminder"
)

// remindCmd represents the remind command.
var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Wait in the foreground and remind you to write",
	Long: `Wait in the foreground and ring the terminal bell at your reminder time
while today's word goal is not met yet. Stop with Ctrl+C.

Turn reminders on and pick the time with 'diary goal set'. Set
DIARY_REMINDER_WEBHOOK (and DIARY_REMINDER_WEBHOOK_TYPE: generic, slack or
discord) to also post each reminder to a chat webhook.

Examples:
  diary goal set --reminder on --at 21:30
  diary remind`,
	Args: cobra.NoArgs,
	RunE: runRemind,
}

func init() {
	rootCmd.AddCommand(remindCmd)
}

func runRemind(cmd *cobra.Command, args []string) error {
	runCtx, stop := signal.NotifyContext(request(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	notifiers := []reminder.Notifier{printNotice}
	if url := ctx.Config.ReminderWebhook; url != "" {
		kind, err := notify.ParseKind(ctx.Config.ReminderWebhookType)
		if err != nil {
			return err
		}
		notifiers = append(notifiers, notify.NewWebhook(url, kind, nil).Notify)
	}

	watcher := reminder.NewWatcher(ctx.Stats, ctx.User, ctx.Stats.Location(), reminder.Broadcast(notifiers...))
	if err := watcher.Start(runCtx); err != nil {
		return err
	}
	defer watcher.Stop()

	if ctx.IsJSON() {
		if err := ctx.Formatter.JSON(map[string]any{"status": "waiting", "next_reminder": watcher.Next()}); err != nil {
			return err
		}
	} else {
		cli := ctx.CLIFormatter()
		cli.Muted(fmt.Sprintf("Next reminder at %s. Press Ctrl+C to stop.", ctx.Formatter.FormatTime(watcher.Next())))
	}

	<-runCtx.Done()
	return nil
}

// printNotice writes a reminder to the terminal.
func printNotice(_ context.Context, n reminder.Notice) error {
	if ctx.IsJSON() {
		return ctx.Formatter.JSON(map[string]any{"status": "reminder", "at": n.At, "progress": n.Progress})
	}
	cli := ctx.CLIFormatter()
	cli.Print("\a")
	cli.Warning("Time to write! Today's goal is not met yet.")
	cli.PrintGoalProgress(&n.Progress)
	return nil
}
