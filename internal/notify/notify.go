// Package notify posts writing reminders to chat webhooks.
package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/reminder"
)

// Kind selects the payload flavour of a webhook.
type Kind string

// Supported webhook kinds.
const (
	KindGeneric Kind = "generic"
	KindSlack   Kind = "slack"
	KindDiscord Kind = "discord"
)

// ParseKind validates a webhook kind. Empty means generic.
func ParseKind(s string) (Kind, error) {
	switch kind := Kind(strings.ToLower(strings.TrimSpace(s))); kind {
	case "":
		return KindGeneric, nil
	case KindGeneric, KindSlack, KindDiscord:
		return kind, nil
	}
	return "", errors.NewUserErrorWithField("DIARY_REMINDER_WEBHOOK_TYPE", s,
		"Unknown webhook type", "Use generic, slack or discord")
}

// Field is a labelled value shown next to the message.
type Field struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Message is a reminder ready to be formatted for a webhook.
type Message struct {
	Title  string
	Text   string
	Fields []Field
	At     time.Time
}

// MessageFromNotice renders a reminder notice.
func MessageFromNotice(n reminder.Notice) Message {
	p := n.Progress
	return Message{
		Title: "Time to write",
		Text: fmt.Sprintf("%s words written today, %s to go.",
			humanize.Comma(int64(p.DailyWords)), humanize.Comma(int64(max(p.DailyGoal-p.DailyWords, 0)))),
		Fields: []Field{
			{Name: "Today", Value: fmt.Sprintf("%d / %d words (%d%%)", p.DailyWords, p.DailyGoal, p.DailyPercent)},
			{Name: "This week", Value: fmt.Sprintf("%d / %d entries (%d%%)", p.WeeklyEntries, p.WeeklyGoal, p.WeeklyPercent)},
		},
		At: n.At,
	}
}

// Formatter formats messages for a specific webhook kind.
type Formatter interface {
	// Format converts a message into the webhook-specific payload.
	Format(m Message) ([]byte, error)

	// ContentType returns the HTTP Content-Type for the payload.
	ContentType() string
}

// FormatterFor returns the formatter for a webhook kind.
func FormatterFor(kind Kind) Formatter {
	switch kind {
	case KindSlack:
		return &SlackFormatter{}
	case KindDiscord:
		return &DiscordFormatter{}
	default:
		return &GenericFormatter{}
	}
}
