// Package store holds the client-side source of truth for a user's note
// collection. Every mutation goes through the backend first and is applied
// locally only after the backend acknowledges it (confirm-then-apply); the
// filtered, sorted view is derived from the collection rather than kept as
// separate state.
package store

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/snipnote/snipnote/internal/clipboard"
	"github.com/snipnote/snipnote/internal/models"
	"github.com/snipnote/snipnote/internal/notify"
	"github.com/snipnote/snipnote/internal/policy"
)

// Service is the backend contract the store depends on. Each call either
// returns the authoritative record(s) or an error; the store never invents
// ids or timestamps itself.
type Service interface {
	List(ctx context.Context, userID string) ([]models.Note, error)
	Create(ctx context.Context, draft models.Note, userID string) (models.Note, error)
	Update(ctx context.Context, note models.Note) (models.Note, error)
	UpdateFlag(ctx context.Context, noteID string, flag models.ToggleFlag, value bool) (models.Note, error)
	Delete(ctx context.Context, noteID string) error
}

// Snapshot is the immutable state view handed to subscribers and the UI.
// Notes is the filtered, sorted presentation sequence.
type Snapshot struct {
	Notes       []models.Note
	CurrentNote *models.Note
	SearchQuery string
	SortKey     policy.SortKey
	Selected    []string
	IsLoading   bool
}

// Store is the note state container. Create one per session with New and
// release it with Close.
type Store struct {
	svc      Service
	notifier notify.Notifier
	copier   clipboard.Copier
	logger   *zap.Logger

	mu          sync.Mutex
	user        *models.User
	notes       map[string]models.Note
	order       []string // ids, newest-first insertion order; base order for derivation
	currentNote *models.Note
	searchQuery string
	sortKey     policy.SortKey
	selected    map[string]struct{}
	isLoading   bool

	// Derivation cache: rev bumps whenever notes, query, or sort key change;
	// the filtered view is recomputed only when the cache falls behind.
	rev      uint64
	cacheRev uint64
	cache    []models.Note

	subscribers map[chan Snapshot]struct{}
	closed      bool
}

type Option func(*Store)

// WithNotifier sets the sink for user-visible notifications.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the store's logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// WithCopier enables the one-click-copy behavior of OpenNote.
func WithCopier(c clipboard.Copier) Option {
	return func(s *Store) { s.copier = c }
}

// WithSortKey overrides the initial sort key.
func WithSortKey(k policy.SortKey) Option {
	return func(s *Store) { s.sortKey = k }
}

func New(svc Service, opts ...Option) *Store {
	s := &Store{
		svc:         svc,
		notifier:    notify.Noop{},
		logger:      zap.NewNop(),
		notes:       make(map[string]models.Note),
		sortKey:     policy.DefaultSortKey,
		selected:    make(map[string]struct{}),
		subscribers: make(map[chan Snapshot]struct{}),
		cacheRev:    ^uint64(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetUser sets the owning user context. It does not clear the collection;
// callers pair it with FetchNotes or Clear.
func (s *Store) SetUser(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	s.publishLocked()
}

// User returns the current user context, or nil.
func (s *Store) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Clear drops the collection, focus, selection, and query. The user context
// is kept.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notes = make(map[string]models.Note)
	s.order = nil
	s.currentNote = nil
	s.searchQuery = ""
	s.selected = make(map[string]struct{})
	s.rev++
	s.publishLocked()
}

// FilteredNotes returns the filtered, sorted presentation sequence. It is a
// pure function of the collection, the search query, and the sort key.
func (s *Store) FilteredNotes() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyNotes(s.filteredLocked())
}

// CurrentNote returns a copy of the focused note, or nil when none is focused.
func (s *Store) CurrentNote() *models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentNote == nil {
		return nil
	}
	n := *s.currentNote
	return &n
}

// SearchQuery returns the active search query.
func (s *Store) SearchQuery() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchQuery
}

// SortKey returns the active sort key.
func (s *Store) SortKey() policy.SortKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortKey
}

// IsLoading reports whether the initial bulk fetch is in flight.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isLoading
}

// Snapshot returns the full state view.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers a state listener. Snapshots are delivered on a buffered
// channel; a lagging subscriber misses intermediate snapshots rather than
// blocking the store.
func (s *Store) Subscribe() chan Snapshot {
	ch := make(chan Snapshot, 16)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a listener and closes its channel.
func (s *Store) Unsubscribe(ch chan Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subscribers[ch]; ok {
		close(ch)
		delete(s.subscribers, ch)
	}
}

// Close releases all subscriptions. The store must not be used afterwards.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for ch := range s.subscribers {
		close(ch)
		delete(s.subscribers, ch)
	}
}

// filteredLocked computes (or reuses) the derived view. Callers hold s.mu.
func (s *Store) filteredLocked() []models.Note {
	if s.cacheRev == s.rev {
		return s.cache
	}
	base := make([]models.Note, 0, len(s.order))
	for _, id := range s.order {
		if n, ok := s.notes[id]; ok {
			base = append(base, n)
		}
	}
	filtered := policy.FilterNotes(base, s.searchQuery)
	policy.SortNotes(filtered, s.sortKey)
	s.cache = filtered
	s.cacheRev = s.rev
	return s.cache
}

// reanchorLocked applies the focus policy after the derived view changes:
// focus is kept unless the focused persisted note dropped out of the view.
// An unsaved focused note is never cleared here.
func (s *Store) reanchorLocked() {
	if s.currentNote == nil || !s.currentNote.Saved() {
		return
	}
	for _, n := range s.filteredLocked() {
		if n.ID == s.currentNote.ID {
			return
		}
	}
	s.currentNote = nil
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		Notes:       copyNotes(s.filteredLocked()),
		SearchQuery: s.searchQuery,
		SortKey:     s.sortKey,
		IsLoading:   s.isLoading,
	}
	if s.currentNote != nil {
		n := *s.currentNote
		snap.CurrentNote = &n
	}
	for id := range s.selected {
		snap.Selected = append(snap.Selected, id)
	}
	sort.Strings(snap.Selected)
	return snap
}

func (s *Store) publishLocked() {
	if s.closed || len(s.subscribers) == 0 {
		return
	}
	snap := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- snap:
		default:
		}
	}
}

// insertLocked puts the note into the collection, newest first. An existing
// entry with the same id is replaced in place, keeping the collection
// deduplicated by id.
func (s *Store) insertLocked(n models.Note) {
	if _, exists := s.notes[n.ID]; !exists {
		s.order = append([]string{n.ID}, s.order...)
	}
	s.notes[n.ID] = n
	s.rev++
}

// removeLocked drops the note from the collection and the selection.
func (s *Store) removeLocked(id string) {
	if _, exists := s.notes[id]; !exists {
		return
	}
	delete(s.notes, id)
	delete(s.selected, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.rev++
}

func copyNotes(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	copy(out, notes)
	return out
}
