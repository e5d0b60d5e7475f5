package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"plain", "  just words  ", "just words"},
		{"html", "<p>Hello <b>world</b></p><p>again</p>", "Hello world again"},
		{"html entities", "<p>Fish &amp; chips</p>", "Fish & chips"},
		{"html script dropped", "<p>hi</p><script>alert(1)</script>", "hi"},
		{
			"tiptap",
			`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"Rain "},{"type":"text","marks":[{"type":"bold"}],"text":"again"}]},{"type":"paragraph","content":[{"type":"text","text":"today"}]}]}`,
			"Rain again today",
		},
		{"json without type is html", `{"text":"x"}`, `{"text":"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.raw))
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount(" \t\n"))
	assert.Equal(t, 10, WordCount("Hello world"))
	assert.Equal(t, 4, WordCount("今天 下雨"))
}

func TestDerive(t *testing.T) {
	text, words := Derive("<p>a b</p><p>cd</p>")
	assert.Equal(t, "a b cd", text)
	assert.Equal(t, 4, words)
}
