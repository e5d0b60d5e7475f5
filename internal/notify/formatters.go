package notify

import (
	"encoding/json"
	"time"
)

// reminderColor is the accent used by chat embeds.
const reminderColor = 0x7C3AED

// GenericFormatter formats messages as a plain JSON document.
type GenericFormatter struct{}

type genericPayload struct {
	Type      string  `json:"type"`
	Title     string  `json:"title"`
	Message   string  `json:"message"`
	Fields    []Field `json:"fields,omitempty"`
	Timestamp string  `json:"timestamp"`
}

// Format converts a message to the generic payload.
func (f *GenericFormatter) Format(m Message) ([]byte, error) {
	return json.Marshal(genericPayload{
		Type:      "reminder",
		Title:     m.Title,
		Message:   m.Text,
		Fields:    m.Fields,
		Timestamp: m.At.UTC().Format(time.RFC3339),
	})
}

// ContentType returns the content type for generic webhooks.
func (f *GenericFormatter) ContentType() string {
	return "application/json"
}

// SlackFormatter formats messages for Slack incoming webhooks.
type SlackFormatter struct{}

type slackPayload struct {
	Text   string       `json:"text"`
	Blocks []slackBlock `json:"blocks"`
}

type slackBlock struct {
	Type   string      `json:"type"`
	Text   *slackText  `json:"text,omitempty"`
	Fields []slackText `json:"fields,omitempty"`
}

type slackText struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Format converts a message to Slack block kit.
func (f *SlackFormatter) Format(m Message) ([]byte, error) {
	blocks := []slackBlock{
		{Type: "header", Text: &slackText{Type: "plain_text", Text: m.Title}},
		{Type: "section", Text: &slackText{Type: "mrkdwn", Text: m.Text}},
	}
	if len(m.Fields) > 0 {
		fields := make([]slackText, 0, len(m.Fields))
		for _, field := range m.Fields {
			fields = append(fields, slackText{Type: "mrkdwn", Text: "*" + field.Name + "*\n" + field.Value})
		}
		blocks = append(blocks, slackBlock{Type: "section", Fields: fields})
	}

	// text is the notification fallback.
	return json.Marshal(slackPayload{Text: m.Title + ": " + m.Text, Blocks: blocks})
}

// ContentType returns the content type for Slack webhooks.
func (f *SlackFormatter) ContentType() string {
	return "application/json"
}

// DiscordFormatter formats messages for Discord webhooks.
type DiscordFormatter struct{}

type discordPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Color       int                 `json:"color"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
	Footer      discordEmbedFooter  `json:"footer"`
	Timestamp   string              `json:"timestamp"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type discordEmbedFooter struct {
	Text string `json:"text"`
}

// Format converts a message to a Discord embed.
func (f *DiscordFormatter) Format(m Message) ([]byte, error) {
	embed := discordEmbed{
		Title:       m.Title,
		Description: m.Text,
		Color:       reminderColor,
		Footer:      discordEmbedFooter{Text: "Diary"},
		Timestamp:   m.At.UTC().Format(time.RFC3339),
	}
	for _, field := range m.Fields {
		embed.Fields = append(embed.Fields, discordEmbedField{Name: field.Name, Value: field.Value, Inline: true})
	}
	return json.Marshal(discordPayload{Embeds: []discordEmbed{embed}})
}

// ContentType returns the content type for Discord webhooks.
func (f *DiscordFormatter) ContentType() string {
	return "application/json"
}
