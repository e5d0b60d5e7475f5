package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nova728/diary/internal/config"
	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/journal"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/output"
	"github.com/nova728/diary/internal/runtime"
)

// withRuntime installs an in-memory runtime context for the duration of the test.
func withRuntime(t *testing.T) *bytes.Buffer {
	t.Helper()

	cfg, err := config.LoadFrom(map[string]string{
		"DIARY_DATABASE": config.InMemoryDatabase,
		"DIARY_TIMEZONE": "UTC",
	})
	require.NoError(t, err)

	opts := runtime.DefaultOptions(cfg)
	opts.ColorMode = output.ColorNever
	rt, err := runtime.New(opts)
	require.NoError(t, err)

	var buf bytes.Buffer
	rt.Formatter.Writer = &buf

	prev := ctx
	ctx = rt
	t.Cleanup(func() {
		ctx = prev
		_ = rt.Close()
	})
	return &buf
}

func TestParseOnOff(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"on", true},
		{"YES", true},
		{" true ", true},
		{"off", false},
		{"no", false},
		{"false", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseOnOff("reminder", tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseOnOff("email", "maybe")
	require.Error(t, err)
	assert.True(t, errors.IsUserError(err))
}

func TestParseMood(t *testing.T) {
	assert.Equal(t, model.Mood("happy"), parseMood(" Happy "))
	assert.Equal(t, model.Mood(""), parseMood("none"))
}

func TestReadContent(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		got, err := readContent("inline text", "ignored.txt")
		require.NoError(t, err)
		assert.Equal(t, "inline text", got)
	})

	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "entry.md")
		require.NoError(t, os.WriteFile(path, []byte("from a file"), 0o600))

		got, err := readContent("", path)
		require.NoError(t, err)
		assert.Equal(t, "from a file", got)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readContent("", filepath.Join(t.TempDir(), "nope.md"))
		require.Error(t, err)
		assert.True(t, errors.IsUserError(err))
	})
}

func TestYearArg(t *testing.T) {
	withRuntime(t)

	year, err := yearArg(nil)
	require.NoError(t, err)
	assert.Equal(t, ctx.Stats.Today().Year(), year)

	year, err = yearArg([]string{"2021"})
	require.NoError(t, err)
	assert.Equal(t, 2021, year)

	_, err = yearArg([]string{"last"})
	assert.True(t, errors.IsUserError(err))
}

func TestParsePeriodFlags(t *testing.T) {
	withRuntime(t)

	period, err := parsePeriod([]string{"2024"}, "", "")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", period.From.String())
	assert.Equal(t, "2024-12-31", period.Until.String())

	period, err = parsePeriod(nil, "2024-03-01", "2024-03-31")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", period.From.String())
	assert.Equal(t, "2024-03-31", period.Until.String())

	_, err = parsePeriod([]string{"someday"}, "", "")
	assert.Error(t, err)
}

func TestParseEntryDate(t *testing.T) {
	withRuntime(t)

	d, err := parseEntryDate("")
	require.NoError(t, err)
	assert.True(t, d.IsZero())

	d, err = parseEntryDate("2024-02-29")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", d.String())
}

func TestCompleteMoods(t *testing.T) {
	got, directive := completeMoods(nil, nil, "ha")
	assert.Equal(t, []string{"happy"}, got)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	all, _ := completeMoods(nil, nil, "")
	assert.Len(t, all, len(model.Moods))
}

func TestCompletePeriods(t *testing.T) {
	got, _ := completePeriods(nil, nil, "last")
	assert.Len(t, got, 3)
	assert.Contains(t, got, "last week\tthe previous week")

	none, _ := completePeriods(nil, []string{"week"}, "")
	assert.Empty(t, none)
}

func TestCompleteFromJournal(t *testing.T) {
	withRuntime(t)

	res, err := ctx.Journal.Create(context.Background(), ctx.User, journal.EntryInput{
		Title:   "Harbour walk",
		Content: "Fog over the water",
		Tags:    []string{"Travel", "walks"},
	})
	require.NoError(t, err)

	ids, _ := completeEntryIDs(nil, nil, "")
	require.Len(t, ids, 1)
	assert.Equal(t, res.Entry.ID+"\tHarbour walk", ids[0])

	more, _ := completeEntryIDs(nil, []string{res.Entry.ID}, "")
	assert.Empty(t, more)

	tags, _ := completeTags(nil, nil, "tr")
	assert.Equal(t, []string{"Travel"}, tags)
}

func TestCompletionsWithoutRuntime(t *testing.T) {
	prev := ctx
	ctx = nil
	t.Cleanup(func() { ctx = prev })

	ids, directive := completeEntryIDs(nil, nil, "")
	assert.Nil(t, ids)
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)

	tags, _ := completeTags(nil, nil, "")
	assert.Nil(t, tags)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, buf.String(), "diary "+Version)
}
