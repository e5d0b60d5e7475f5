package runtime

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nova728/diary/internal/config"
	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/journal"
	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/output"
)

func memoryConfig(t *testing.T, extra map[string]string) config.Config {
	t.Helper()
	environ := map[string]string{"DIARY_DATABASE": config.InMemoryDatabase}
	for k, v := range extra {
		environ[k] = v
	}
	cfg, err := config.LoadFrom(environ)
	require.NoError(t, err)
	return cfg
}

// =============================================================================
// Context Tests
// =============================================================================

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions(config.Config{User: "me"})

	assert.Equal(t, "me", opts.Config.User)
	assert.Equal(t, output.FormatCLI, opts.Format)
	assert.Equal(t, output.ColorAuto, opts.ColorMode)
	assert.False(t, opts.Debug)
}

func TestNew(t *testing.T) {
	ctx, err := New(DefaultOptions(memoryConfig(t, nil)))
	require.NoError(t, err)
	defer ctx.Close()

	assert.NotNil(t, ctx.DB)
	assert.NotNil(t, ctx.Formatter)
	assert.NotNil(t, ctx.EntryRepo)
	assert.NotNil(t, ctx.TagRepo)
	assert.NotNil(t, ctx.GoalRepo)
	assert.NotNil(t, ctx.Stats)
	assert.NotNil(t, ctx.Journal)
	assert.Equal(t, "me", ctx.User)
}

func TestNewWithOptions(t *testing.T) {
	ctx, err := New(Options{
		Config:    memoryConfig(t, map[string]string{"DIARY_TIMEZONE": "Asia/Tokyo"}),
		User:      "alice",
		Format:    output.FormatJSON,
		ColorMode: output.ColorNever,
		Debug:     true,
	})
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, output.FormatJSON, ctx.Formatter.Format)
	assert.Equal(t, output.ColorNever, ctx.Formatter.ColorMode)
	assert.Equal(t, "Asia/Tokyo", ctx.Stats.Location().String())
	assert.Equal(t, "Asia/Tokyo", ctx.Formatter.Location.String())
	assert.Equal(t, "alice", ctx.User)
	assert.True(t, ctx.Debug)
}

func TestNewRejectsBadUser(t *testing.T) {
	_, err := New(Options{Config: memoryConfig(t, nil), User: "a:b"})
	assert.True(t, errors.IsUserError(err))
}

func TestNewWithDatabasePath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "diary-test")
	cfg := memoryConfig(t, nil)
	cfg.Database = dbPath

	ctx, err := New(DefaultOptions(cfg))
	require.NoError(t, err)
	defer ctx.Close()

	assert.Equal(t, dbPath, ctx.DB.Path())
}

func TestContextClose(t *testing.T) {
	ctx, err := New(DefaultOptions(memoryConfig(t, nil)))
	require.NoError(t, err)
	assert.NoError(t, ctx.Close())

	// Closing nil DB should be safe
	nilCtx := &Context{}
	assert.NoError(t, nilCtx.Close())
}

func TestContextFormatters(t *testing.T) {
	t.Run("json_format", func(t *testing.T) {
		opts := DefaultOptions(memoryConfig(t, nil))
		opts.Format = output.FormatJSON
		ctx, err := New(opts)
		require.NoError(t, err)
		defer ctx.Close()

		assert.True(t, ctx.IsJSON())
		assert.False(t, ctx.IsCLI())
		assert.NotNil(t, ctx.JSONFormatter())
	})

	t.Run("cli_format", func(t *testing.T) {
		ctx, err := New(DefaultOptions(memoryConfig(t, nil)))
		require.NoError(t, err)
		defer ctx.Close()

		assert.False(t, ctx.IsJSON())
		assert.True(t, ctx.IsCLI())
		assert.NotNil(t, ctx.CLIFormatter())
	})
}

func TestContextRequest(t *testing.T) {
	ctx, err := New(Options{Config: memoryConfig(t, nil), User: "bob"})
	require.NoError(t, err)
	defer ctx.Close()

	req := ctx.Request(context.Background())
	assert.Equal(t, "bob", logging.UserFromContext(req))
	assert.NotEmpty(t, logging.RequestIDFromContext(req))
}

func TestContextDebugf(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: slog.LevelDebug, Output: &buf})
	defer logging.Init(logging.DefaultConfig())

	ctx, err := New(Options{Config: memoryConfig(t, nil), Debug: true})
	require.NoError(t, err)
	defer ctx.Close()
	ctx.Debugf("opened database", logging.KeyCount, 1)
	assert.Contains(t, buf.String(), "opened database")

	buf.Reset()
	ctx.Debug = false
	ctx.Debugf("quiet")
	assert.Empty(t, buf.String())
}

// =============================================================================
// Wiring Tests
// =============================================================================

func TestServicesShareStore(t *testing.T) {
	ctx, err := New(DefaultOptions(memoryConfig(t, map[string]string{"DIARY_TIMEZONE": "UTC"})))
	require.NoError(t, err)
	defer ctx.Close()

	req := ctx.Request(context.Background())
	res, err := ctx.Journal.Create(req, ctx.User, journal.EntryInput{Title: "first", Content: "hello"})
	require.NoError(t, err)
	require.Len(t, res.Unlocked, 1)

	overview, err := ctx.Stats.Overview(req, ctx.User)
	require.NoError(t, err)
	assert.Equal(t, 1, overview.TotalEntries)
	assert.Equal(t, 5, overview.TotalWords)
	assert.Equal(t, 1, overview.Streak)

	today := time.Now().UTC().Format(time.DateOnly)
	assert.Equal(t, today, res.Entry.Date.String())
}
