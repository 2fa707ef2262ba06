// Package todo provides an in-process todo list and the tools over it.
//
// The collection is owned by a Store and guarded by a single mutex around
// every read and write. Items live until deleted or the process exits.
package todo

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/wagiedev/toolkit-mcp-go/internal/models"
)

// Completion filters accepted by List.
const (
	FilterAll       = "all"
	FilterCompleted = "completed"
	FilterPending   = "pending"
)

// PriorityAll disables priority filtering in List.
const PriorityAll = "all"

var errEmptyTitle = errors.New("title must not be empty")

// Patch holds the fields of an update. Nil or blank fields are kept.
type Patch struct {
	Title       *string
	Description *string
	Priority    *string
}

// Store is the todo collection.
type Store struct {
	mu    sync.Mutex
	items []*models.TodoItem
	now   func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for creation and completion stamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates an empty store.
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Create adds an item with a fresh id. An unrecognised priority falls back
// to the default.
func (s *Store) Create(title, description, priority string) (models.TodoItem, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.TodoItem{}, errEmptyTitle
	}

	p, _ := models.ParsePriority(priority)

	s.mu.Lock()
	defer s.mu.Unlock()

	item := &models.TodoItem{
		ID:          ulid.Make().String(),
		Title:       title,
		Description: description,
		CreatedAt:   s.now(),
		Priority:    p,
	}

	s.items = append(s.items, item)

	return clone(item), nil
}

// List returns the items matching filter and priority, newest first.
func (s *Store) List(filter, priority string) ([]models.TodoItem, error) {
	match, err := completionFilter(filter)
	if err != nil {
		return nil, err
	}

	priority = strings.TrimSpace(priority)
	anyPriority := priority == "" || strings.EqualFold(priority, PriorityAll)

	var wantPriority models.Priority

	if !anyPriority {
		p, ok := models.ParsePriority(priority)
		if !ok {
			return nil, fmt.Errorf("unknown priority %q: use all, Low, Medium or High", priority)
		}

		wantPriority = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.TodoItem, 0, len(s.items))

	for i := len(s.items) - 1; i >= 0; i-- {
		item := s.items[i]
		if !match(item) || (!anyPriority && item.Priority != wantPriority) {
			continue
		}

		out = append(out, clone(item))
	}

	slices.SortStableFunc(out, func(a, b models.TodoItem) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out, nil
}

// Get returns the item with id, or nil.
func (s *Store) Get(id string) *models.TodoItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	if item := s.find(id); item != nil {
		c := clone(item)

		return &c
	}

	return nil
}

// Complete marks the item done and stamps CompletedAt. Completing an
// already completed item re-stamps it. Returns nil if id is unknown.
func (s *Store) Complete(id string) *models.TodoItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(id)
	if item == nil {
		return nil
	}

	now := s.now()
	item.IsCompleted = true
	item.CompletedAt = &now

	c := clone(item)

	return &c
}

// Update applies the non-blank fields of patch. A priority that does not
// name a known level is ignored. Returns nil if id is unknown.
func (s *Store) Update(id string, patch Patch) *models.TodoItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := s.find(id)
	if item == nil {
		return nil
	}

	if v, ok := nonBlank(patch.Title); ok {
		item.Title = strings.TrimSpace(v)
	}

	if v, ok := nonBlank(patch.Description); ok {
		item.Description = v
	}

	if v, ok := nonBlank(patch.Priority); ok {
		if p, valid := models.ParsePriority(v); valid {
			item.Priority = p
		}
	}

	c := clone(item)

	return &c
}

// Delete removes the item with id and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, item := range s.items {
		if item.ID == id {
			s.items = slices.Delete(s.items, i, i+1)

			return true
		}
	}

	return false
}

// ClearCompleted removes every completed item and returns how many were
// removed.
func (s *Store) ClearCompleted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.items)
	s.items = slices.DeleteFunc(s.items, func(item *models.TodoItem) bool {
		return item.IsCompleted
	})

	return before - len(s.items)
}

// Stats summarises the collection.
func (s *Store) Stats() models.TodoStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := models.TodoStats{Total: len(s.items)}

	for _, item := range s.items {
		if item.IsCompleted {
			stats.Completed++

			continue
		}

		stats.Pending++

		switch item.Priority {
		case models.PriorityLow:
			stats.PendingByPriority.Low++
		case models.PriorityMedium:
			stats.PendingByPriority.Medium++
		case models.PriorityHigh:
			stats.PendingByPriority.High++
		}
	}

	return stats
}

// find must be called with s.mu held.
func (s *Store) find(id string) *models.TodoItem {
	for _, item := range s.items {
		if item.ID == id {
			return item
		}
	}

	return nil
}

func clone(item *models.TodoItem) models.TodoItem {
	c := *item
	if item.CompletedAt != nil {
		t := *item.CompletedAt
		c.CompletedAt = &t
	}

	return c
}

func nonBlank(s *string) (string, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "", false
	}

	return *s, true
}

func completionFilter(filter string) (func(*models.TodoItem) bool, error) {
	switch strings.ToLower(strings.TrimSpace(filter)) {
	case "", FilterAll:
		return func(*models.TodoItem) bool { return true }, nil
	case FilterCompleted:
		return func(item *models.TodoItem) bool { return item.IsCompleted }, nil
	case FilterPending:
		return func(item *models.TodoItem) bool { return !item.IsCompleted }, nil
	default:
		return nil, fmt.Errorf("unknown filter %q: use %s, %s or %s", filter, FilterAll, FilterCompleted, FilterPending)
	}
}
