// Package lists is the state container behind a shopping-list UI: an
// in-memory collection of lists and their items, mutated synchronously and
// persisted asynchronously through a pluggable adapter.
//
// Every mutation is applied to memory first (optimistic, last write wins)
// and then handed to a sharded FIFO executor that carries the post-mutation
// snapshot of the affected list to the Persistence Adapter. Persistence
// failures are logged, never surfaced, and never roll the mutation back.
package lists

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/shoppagain/lists/internal/ids"
	"github.com/shoppagain/lists/internal/job"
	"github.com/shoppagain/lists/internal/persist"
	"github.com/shoppagain/lists/internal/platform/logger"
	"github.com/shoppagain/lists/internal/shardqueue"
	"github.com/shoppagain/lists/internal/types"
)

// --------------------------------------------------------------------
// Store core
// --------------------------------------------------------------------

// Store owns the in-memory list collection. All mutation funnels through its
// methods; the mutex serializes both the state change and the enqueue of the
// matching persistence job, so jobs for one list are FIFO.
type Store struct {
	mu            sync.Mutex
	lists         []*types.ShoppingList
	searchKeyword string
	sortBy        SortKey
	loading       bool
	lastErr       string

	persister persist.Persister
	exec      executor
	log       zerolog.Logger
	now       func() time.Time

	queueShards int
	queueDepth  int
	maxAttempts int

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Store over the given Persistence Adapter. A nil persister
// keeps the store purely in memory. Additional options can be provided via
// functional arguments.
func New(p Persister, opts ...Option) (*Store, error) {
	if p == nil {
		p = persist.Noop{}
	}

	s := &Store{
		persister:   p,
		log:         logger.New("lists.store"),
		now:         time.Now,
		sortBy:      SortByDate,
		queueShards: 4,
		queueDepth:  1000,
		maxAttempts: 1, // best-effort writes: log failures, do not retry
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	s.exec = shardqueue.NewShardExecutor(shardqueue.Config{
		Shards:      s.queueShards,
		QueueSize:   s.queueDepth,
		MaxAttempts: s.maxAttempts,
		ErrorHandler: func(err error) {
			persistFailuresTotal.Inc()
			s.log.Error().Err(err).Msg("persistence write failed")
		},
	})

	return s, nil
}

// Close stops the background executor, draining queued persistence jobs.
// Safe to call multiple times.
func (s *Store) Close() error {
	if !atomic.CompareAndSwapUint32(&s.closedOnce, 0, 1) {
		return nil
	}
	if s.exec != nil {
		s.exec.Stop()
	}
	return nil
}

// AwaitDurability blocks until all previously enqueued persistence jobs for
// the given listID have been executed. It works by submitting a no-op job
// and waiting for it to run, thereby guaranteeing FIFO ordering has flushed.
func (s *Store) AwaitDurability(ctx context.Context, listID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	done := make(chan struct{})
	j := job.New(func(context.Context) error {
		close(done)
		return nil
	})
	if err := s.exec.Submit(ctx, listID, j); err != nil {
		return mapSubmitErr(err)
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}

// --------------------------------------------------------------------
// List mutations
// --------------------------------------------------------------------

// CreateList appends a new list with a fresh id, empty items and the current
// timestamp, then schedules a create against the adapter. Returns the new
// list's id, or "" when the title is empty after trimming (silent no-op; the
// UI validates first, the store defends independently).
func (s *Store) CreateList(ctx context.Context, title string, meta ListMetadata) string {
	if types.ValidateListTitle(title) != nil {
		return ""
	}

	l := &types.ShoppingList{
		ID:        ids.New(),
		Title:     title,
		OwnerID:   meta.OwnerID,
		CreatedAt: s.now().UTC(),
		Items:     []types.Item{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append(s.lists, l)

	snap := l.Clone()
	s.enqueue(ctx, l.ID, "create", func(jobCtx context.Context) error {
		_, err := s.persister.CreateList(jobCtx, snap)
		return err
	})
	return l.ID
}

// RenameList updates the title in place, preserving id, items and creation
// time. Unknown listID or an empty new title is a silent no-op.
func (s *Store) RenameList(ctx context.Context, listID, newTitle string) {
	if types.ValidateListTitle(newTitle) != nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.find(listID)
	if l == nil {
		return
	}
	l.Title = newTitle
	s.enqueueUpdate(ctx, l)
}

// DeleteList removes the list if present and schedules a delete against the
// adapter. Deleting an absent id is a silent no-op and persists nothing.
func (s *Store) DeleteList(ctx context.Context, listID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, l := range s.lists {
		if l.ID == listID {
			s.lists = append(s.lists[:i], s.lists[i+1:]...)
			s.enqueue(ctx, listID, "delete", func(jobCtx context.Context) error {
				return s.persister.DeleteList(jobCtx, listID)
			})
			return
		}
	}
}

// --------------------------------------------------------------------
// Item mutations
// --------------------------------------------------------------------

// AddItem appends a new item with a fresh id and the current timestamp to
// the parent list. Returns the item id, or "" when the parent is unknown or
// name/quantity are empty after trimming.
func (s *Store) AddItem(ctx context.Context, listID string, f ItemFields) string {
	if types.ValidateItemFields(f) != nil {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.find(listID)
	if l == nil {
		return ""
	}

	it := types.Item{
		ID:        ids.New(),
		Name:      f.Name,
		Quantity:  f.Quantity,
		Category:  f.Category,
		Notes:     f.Notes,
		Image:     f.Image,
		DateAdded: s.now().UTC(),
	}
	l.Items = append(l.Items, it)
	s.enqueueUpdate(ctx, l)
	return it.ID
}

// UpdateItem merges the non-nil updates into the matching item, preserving
// its id and DateAdded. Unknown list or item id is a silent no-op.
func (s *Store) UpdateItem(ctx context.Context, listID, itemID string, u ItemUpdates) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.find(listID)
	if l == nil {
		return
	}
	i := l.FindItem(itemID)
	if i < 0 {
		return
	}
	u.Apply(&l.Items[i])
	s.enqueueUpdate(ctx, l)
}

// RemoveItem deletes the matching item. Unknown ids are a silent no-op.
func (s *Store) RemoveItem(ctx context.Context, listID, itemID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := s.find(listID)
	if l == nil {
		return
	}
	i := l.FindItem(itemID)
	if i < 0 {
		return
	}
	l.Items = append(l.Items[:i], l.Items[i+1:]...)
	s.enqueueUpdate(ctx, l)
}

// --------------------------------------------------------------------
// Transient view parameters (never persisted)
// --------------------------------------------------------------------

// SetSearchKeyword stores the live search text used by projections.
func (s *Store) SetSearchKeyword(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchKeyword = text
}

// SetSortKey stores the sort selection used by projections. Unrecognized
// keys are kept as-is; the projection treats them as "no reordering".
func (s *Store) SetSortKey(key SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortBy = key
}

// SearchKeyword returns the current search text.
func (s *Store) SearchKeyword() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchKeyword
}

// SortBy returns the current sort selection.
func (s *Store) SortBy() SortKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sortBy
}

// --------------------------------------------------------------------
// Reads
// --------------------------------------------------------------------

// Lists returns a deep-copied snapshot in insertion order.
func (s *Store) Lists() []ShoppingList {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ShoppingList, 0, len(s.lists))
	for _, l := range s.lists {
		out = append(out, *l.Clone())
	}
	return out
}

// GetList returns a deep copy of one list.
func (s *Store) GetList(listID string) (ShoppingList, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l := s.find(listID); l != nil {
		return *l.Clone(), true
	}
	return ShoppingList{}, false
}

// VisibleItems projects one list's items through the current search keyword
// and sort key, ready for display. Unknown listID yields an empty slice.
func (s *Store) VisibleItems(listID string) []Item {
	s.mu.Lock()
	l := s.find(listID)
	var items []Item
	if l != nil {
		items = append(items, l.Items...)
	}
	keyword, sortBy := s.searchKeyword, s.sortBy
	s.mu.Unlock()

	return ProjectItems(items, keyword, sortBy)
}

// VisibleLists projects the list collection itself (matched on title).
func (s *Store) VisibleLists() []ShoppingList {
	return ProjectLists(s.Lists(), s.SearchKeyword(), s.SortBy())
}

// Loading reports whether an initial fetch is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the last fetch failure message, or "" when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// --------------------------------------------------------------------
// internals
// --------------------------------------------------------------------

// find returns the list with the given id. Callers hold s.mu.
func (s *Store) find(listID string) *types.ShoppingList {
	for _, l := range s.lists {
		if l.ID == listID {
			return l
		}
	}
	return nil
}

// enqueueUpdate snapshots the list and schedules an adapter update.
// Callers hold s.mu.
func (s *Store) enqueueUpdate(ctx context.Context, l *types.ShoppingList) {
	snap := l.Clone()
	s.enqueue(ctx, l.ID, "update", func(jobCtx context.Context) error {
		return s.persister.UpdateList(jobCtx, snap)
	})
}

// enqueue hands a persistence call to the shard executor. Failures to even
// enqueue (back-pressure, closed store) are logged, not surfaced: the
// in-memory mutation already happened and stays.
func (s *Store) enqueue(ctx context.Context, listID, op string, fn func(context.Context) error) {
	j := job.New(func(jobCtx context.Context) error {
		if err := fn(jobCtx); err != nil {
			return &opError{op: op, listID: listID, err: err}
		}
		return nil
	})
	if err := s.exec.Submit(ctx, listID, j); err != nil {
		persistFailuresTotal.Inc()
		s.log.Error().Err(err).Str("op", op).Str("list_id", listID).Msg("failed to enqueue persistence job")
		return
	}
	persistEnqueuedTotal.WithLabelValues(job.ShardLabel(listID)).Inc()
}

// opError tags adapter failures with the operation and list for the log.
type opError struct {
	op     string
	listID string
	err    error
}

func (e *opError) Error() string { return e.op + " list " + e.listID + ": " + e.err.Error() }
func (e *opError) Unwrap() error { return e.err }
