// Package content derives plain text and word counts from rich entry content.
//
// Content is either a TipTap/ProseMirror JSON document or an HTML fragment.
// Derived values are recomputed from content on every write and never stored
// on their own.
package content

import (
	"encoding/json"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// node is the subset of a TipTap document node that carries text.
type node struct {
	Type    string `json:"type"`
	Text    string `json:"text"`
	Content []node `json:"content"`
}

// PlainText extracts the readable text of raw content with whitespace collapsed.
func PlainText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}

	var b strings.Builder
	if doc, ok := parseDocument(trimmed); ok {
		writeNode(&b, doc)
	} else {
		writeHTML(&b, trimmed)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// WordCount returns the number of non-whitespace characters in text.
func WordCount(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// Derive returns the plain text and word count of raw content.
func Derive(raw string) (string, int) {
	text := PlainText(raw)
	return text, WordCount(text)
}

func parseDocument(raw string) (node, bool) {
	if !strings.HasPrefix(raw, "{") {
		return node{}, false
	}
	var doc node
	if err := json.Unmarshal([]byte(raw), &doc); err != nil || doc.Type == "" {
		return node{}, false
	}
	return doc, true
}

func writeNode(b *strings.Builder, n node) {
	if n.Type == "text" {
		b.WriteString(n.Text)
		return
	}
	for _, child := range n.Content {
		writeNode(b, child)
	}
	if n.Type != "doc" {
		b.WriteByte(' ')
	}
}

func writeHTML(b *strings.Builder, raw string) {
	z := html.NewTokenizer(strings.NewReader(raw))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			// io.EOF or malformed input; whatever was read so far is kept.
			return
		case html.TextToken:
			if skip == 0 {
				b.Write(z.Text())
			}
		case html.StartTagToken:
			if isHidden(z) {
				skip++
			}
			b.WriteByte(' ')
		case html.EndTagToken:
			if isHidden(z) && skip > 0 {
				skip--
			}
			b.WriteByte(' ')
		case html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

// isHidden reports whether the current tag's body is not visible text.
func isHidden(z *html.Tokenizer) bool {
	name, _ := z.TagName()
	switch string(name) {
	case "script", "style":
		return true
	}
	return false
}
