// Package runtime provides the application runtime context for the diary.
package runtime

import (
	"context"

	"github.com/nova728/diary/internal/config"
	"github.com/nova728/diary/internal/journal"
	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/output"
	"github.com/nova728/diary/internal/stats"
	"github.com/nova728/diary/internal/storage"
)

// Context holds the application runtime context.
type Context struct {
	Config    config.Config
	DB        *storage.DB
	Formatter *output.Formatter

	// Repositories
	EntryRepo *storage.EntryRepo
	TagRepo   *storage.TagRepo
	GoalRepo  *storage.GoalRepo

	// Services
	Stats   *stats.Service
	Journal *journal.Service

	// User is the ID commands act on behalf of.
	User string

	// Debug mode
	Debug bool
}

// Options configures the runtime context.
type Options struct {
	Config    config.Config
	User      string // overrides Config.User when set
	Format    output.Format
	ColorMode output.ColorMode
	Debug     bool
}

// DefaultOptions returns default runtime options for cfg.
func DefaultOptions(cfg config.Config) Options {
	return Options{
		Config:    cfg,
		Format:    output.FormatCLI,
		ColorMode: output.ColorAuto,
	}
}

// New creates a new runtime context: it opens the database and wires the
// repositories and services on top of it.
func New(opts Options) (*Context, error) {
	cfg := opts.Config
	if opts.User != "" {
		cfg.User = opts.User
	}
	if err := config.ValidateUser(cfg.User); err != nil {
		return nil, err
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	db, err := storage.Open(storage.Options{
		Path:     cfg.DatabasePath(),
		InMemory: cfg.InMemory(),
	})
	if err != nil {
		return nil, err
	}

	entries := storage.NewEntryRepo(db)
	tags := storage.NewTagRepo(db)
	goals := storage.NewGoalRepo(db)
	engine := stats.NewService(entries, tags, storage.NewAchievementRepo(db), goals,
		stats.WithLocation(loc),
		stats.WithTimelineLimit(cfg.TimelineLimit),
	)

	formatter := output.NewFormatter()
	formatter.Format = opts.Format
	formatter.ColorMode = opts.ColorMode
	formatter.Location = loc

	return &Context{
		Config:    cfg,
		DB:        db,
		Formatter: formatter,
		EntryRepo: entries,
		TagRepo:   tags,
		GoalRepo:  goals,
		Stats:     engine,
		Journal:   journal.NewService(entries, tags, engine, cfg.ListLimit),
		User:      cfg.User,
		Debug:     opts.Debug,
	}, nil
}

// Close closes the runtime context.
func (c *Context) Close() error {
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}

// Request returns a context for one command invocation, tagged with a
// request ID and the acting user.
func (c *Context) Request(parent context.Context) context.Context {
	return logging.NewRequestContext(parent, c.User)
}

// CLIFormatter returns a CLI formatter.
func (c *Context) CLIFormatter() *output.CLIFormatter {
	return output.NewCLIFormatter(c.Formatter)
}

// JSONFormatter returns a JSON formatter.
func (c *Context) JSONFormatter() *output.JSONFormatter {
	return output.NewJSONFormatter(c.Formatter)
}

// IsJSON returns true if output format is JSON.
func (c *Context) IsJSON() bool {
	return c.Formatter.Format == output.FormatJSON
}

// IsCLI returns true if output format is CLI.
func (c *Context) IsCLI() bool {
	return c.Formatter.Format == output.FormatCLI
}

// Debugf logs a debug message if debug mode is enabled.
func (c *Context) Debugf(msg string, args ...any) {
	if c.Debug {
		logging.DebugLog(msg, args...)
	}
}
