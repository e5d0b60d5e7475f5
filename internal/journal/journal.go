// Package journal implements the entry mutation workflow: creating, editing,
// deleting, pinning and listing entries. Achievements are checked after every
// create and update.
package journal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nova728/diary/internal/content"
	"github.com/nova728/diary/internal/errors"
	"github.com/nova728/diary/internal/logging"
	"github.com/nova728/diary/internal/model"
	"github.com/nova728/diary/internal/stats"
	"github.com/nova728/diary/internal/storage"
	"github.com/nova728/diary/internal/validate"
)

// List page sizes.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Engine is the part of the stats service the workflow depends on.
type Engine interface {
	Now() time.Time
	Today() model.Date
	CheckAchievements(ctx context.Context, userID string) ([]stats.Unlock, error)
}

// EntryInput holds the fields of a new entry. A zero Date means today.
type EntryInput struct {
	Title   string
	Content string
	Mood    model.Mood
	Date    model.Date
	Tags    []string
	Pinned  bool
}

// EntryPatch holds a partial entry change. Nil fields are left untouched;
// a pointer to the empty mood clears the mood.
type EntryPatch struct {
	Title   *string
	Content *string
	Mood    *model.Mood
	Date    *model.Date
	Tags    *[]string
	Pinned  *bool
}

// Result is a saved entry and the achievements its save unlocked.
type Result struct {
	Entry    *model.Entry   `json:"entry"`
	Unlocked []stats.Unlock `json:"unlocked"`
}

// ListFilter selects a page of entries.
type ListFilter struct {
	Page   int
	Limit  int
	Search string
	Mood   model.Mood
	Tag    string
	From   model.Date
	Until  model.Date
	SortBy string // date, createdAt or wordCount
	Order  string // asc or desc
	Pinned *bool
}

// Page is one page of listed entries.
type Page struct {
	Entries    []*model.Entry   `json:"entries"`
	Pagination stats.Pagination `json:"pagination"`
}

// Service runs the entry workflow against the Badger repositories.
type Service struct {
	entries   *storage.EntryRepo
	tags      *storage.TagRepo
	engine    Engine
	listLimit int
}

// NewService creates the workflow. listLimit is the default page size.
func NewService(entries *storage.EntryRepo, tags *storage.TagRepo, engine Engine, listLimit int) *Service {
	if listLimit <= 0 {
		listLimit = DefaultListLimit
	}
	return &Service{
		entries:   entries,
		tags:      tags,
		engine:    engine,
		listLimit: min(listLimit, MaxListLimit),
	}
}

// Create validates and stores a new entry, then checks achievements.
// When the achievement check fails the saved entry is still returned with the error.
func (s *Service) Create(ctx context.Context, userID string, in EntryInput) (*Result, error) {
	title := validate.SanitizeTitle(in.Title)
	body := validate.SanitizeContent(in.Content)
	tags := validate.SanitizeTags(in.Tags)
	if err := validateInput(title, body, in.Mood, tags); err != nil {
		return nil, err
	}

	now := s.engine.Now()
	names, err := s.resolveTags(userID, tags, now)
	if err != nil {
		return nil, err
	}

	date := in.Date
	if date.IsZero() {
		date = s.engine.Today()
	}

	entry := &model.Entry{
		UserID:    userID,
		Title:     title,
		Content:   body,
		Mood:      in.Mood,
		Date:      date,
		Pinned:    in.Pinned,
		Tags:      names,
		CreatedAt: now,
		UpdatedAt: now,
	}
	entry.ContentText, entry.WordCount = content.Derive(body)

	if err := s.entries.Create(entry); err != nil {
		return nil, errors.StoreFailure("create_entry", err)
	}
	logging.InfoContext(ctx, "entry created", logging.KeyEntryID, entry.ID, logging.KeyCount, entry.WordCount)

	return s.afterSave(ctx, userID, entry)
}

// Update applies a partial change to an entry of the user, then checks
// achievements. Derived text and word count are recomputed when content changes.
func (s *Service) Update(ctx context.Context, userID, id string, patch EntryPatch) (*Result, error) {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	title, body, mood, tags := entry.Title, entry.Content, entry.Mood, entry.Tags
	if patch.Title != nil {
		title = validate.SanitizeTitle(*patch.Title)
	}
	if patch.Content != nil {
		body = validate.SanitizeContent(*patch.Content)
	}
	if patch.Mood != nil {
		mood = *patch.Mood
	}
	if patch.Tags != nil {
		tags = validate.SanitizeTags(*patch.Tags)
	}
	if err := validateInput(title, body, mood, tags); err != nil {
		return nil, err
	}

	now := s.engine.Now()
	if patch.Tags != nil {
		if tags, err = s.resolveTags(userID, tags, now); err != nil {
			return nil, err
		}
	}

	entry.Title, entry.Mood, entry.Tags = title, mood, tags
	if patch.Content != nil {
		entry.Content = body
		entry.ContentText, entry.WordCount = content.Derive(body)
	}
	if patch.Date != nil && !patch.Date.IsZero() {
		entry.Date = *patch.Date
	}
	if patch.Pinned != nil {
		entry.Pinned = *patch.Pinned
	}
	entry.UpdatedAt = now

	if err := s.entries.Update(entry); err != nil {
		return nil, errors.StoreFailure("update_entry", err)
	}
	logging.InfoContext(ctx, "entry updated", logging.KeyEntryID, entry.ID)

	return s.afterSave(ctx, userID, entry)
}

// Delete removes an entry of the user. Achievements already unlocked stay.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.entries.Delete(userID, id); err != nil {
		return errors.StoreFailure("delete_entry", err)
	}
	logging.InfoContext(ctx, "entry deleted", logging.KeyEntryID, id)
	return nil
}

// TogglePin flips the pinned flag of an entry.
func (s *Service) TogglePin(ctx context.Context, userID, id string) (*model.Entry, error) {
	entry, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	entry.Pinned = !entry.Pinned
	entry.UpdatedAt = s.engine.Now()
	if err := s.entries.Update(entry); err != nil {
		return nil, errors.StoreFailure("pin_entry", err)
	}
	return entry, nil
}

// Get returns one entry of the user.
func (s *Service) Get(ctx context.Context, userID, id string) (*model.Entry, error) {
	entry, err := s.entries.Get(userID, strings.TrimSpace(id))
	if err != nil {
		return nil, errors.StoreFailure("get_entry", err)
	}
	return entry, nil
}

// List returns one page of the user's entries, pinned entries first.
func (s *Service) List(ctx context.Context, userID string, f ListFilter) (*Page, error) {
	if !storage.ValidSortField(f.SortBy) {
		return nil, errors.NewUserErrorWithField("sort", f.SortBy, "Unknown sort field",
			"Sort by date, createdAt or wordCount")
	}
	var asc bool
	switch strings.ToLower(f.Order) {
	case "", "desc":
	case "asc":
		asc = true
	default:
		return nil, errors.NewUserErrorWithField("order", f.Order, "Unknown sort order", "Use asc or desc")
	}
	if err := validate.Mood(f.Mood); err != nil {
		return nil, err
	}

	limit := s.listLimit
	if f.Limit > 0 {
		limit = min(f.Limit, MaxListLimit)
	}
	page := max(f.Page, 1)

	entries, total, err := s.entries.Query(userID, storage.EntryQuery{
		EntryFilter: storage.EntryFilter{From: f.From, Until: f.Until, Mood: f.Mood},
		Search:      f.Search,
		Tag:         strings.TrimSpace(f.Tag),
		Pinned:      f.Pinned,
		PinnedFirst: true,
		SortBy:      f.SortBy,
		Asc:         asc,
		Offset:      (page - 1) * limit,
		Limit:       limit,
	})
	if err != nil {
		return nil, errors.StoreFailure("list_entries", err)
	}

	return &Page{
		Entries: entries,
		Pagination: stats.Pagination{
			Total: total,
			Page:  page,
			Limit: limit,
			Pages: (total + limit - 1) / limit,
		},
	}, nil
}

func validateInput(title, body string, mood model.Mood, tags []string) error {
	if err := validate.Title(title); err != nil {
		return err
	}
	if err := validate.Content(body); err != nil {
		return err
	}
	if err := validate.Mood(mood); err != nil {
		return err
	}
	return validate.Tags(tags)
}

// resolveTags finds or creates every tag and returns their stored spellings.
func (s *Service) resolveTags(userID string, names []string, now time.Time) ([]string, error) {
	resolved := make([]string, 0, len(names))
	for _, name := range names {
		tag, _, err := s.tags.FindOrCreate(userID, name, now)
		if err != nil {
			return nil, errors.StoreFailure("resolve_tags", err)
		}
		resolved = append(resolved, tag.Name)
	}
	return resolved, nil
}

func (s *Service) afterSave(ctx context.Context, userID string, entry *model.Entry) (*Result, error) {
	result := &Result{Entry: entry}
	unlocked, err := s.engine.CheckAchievements(ctx, userID)
	if err != nil {
		logging.WarnContext(ctx, "achievement check failed", logging.KeyEntryID, entry.ID, logging.KeyError, err)
		return result, fmt.Errorf("entry saved, achievement check failed: %w", err)
	}
	result.Unlocked = unlocked
	return result, nil
}
