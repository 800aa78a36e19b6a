package lists

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoppagain/lists/internal/types"
)

// fakePersister records adapter calls for assertions and can be primed with
// fetch results or injected failures.
type fakePersister struct {
	mu      sync.Mutex
	ops     []string
	saved   map[string]*types.ShoppingList
	fetch   []*types.ShoppingList
	fetchCh chan struct{} // when non-nil, FetchAll blocks until it closes

	writeErr error
	fetchErr error
}

func newFakePersister() *fakePersister {
	return &fakePersister{saved: make(map[string]*types.ShoppingList)}
}

func (f *fakePersister) record(op string) {
	f.mu.Lock()
	f.ops = append(f.ops, op)
	f.mu.Unlock()
}

func (f *fakePersister) Ops() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.ops...)
}

func (f *fakePersister) Saved(id string) (*types.ShoppingList, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.saved[id]
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

func (f *fakePersister) CreateList(_ context.Context, l *types.ShoppingList) (*types.ShoppingList, error) {
	f.record("create")
	if f.writeErr != nil {
		return nil, f.writeErr
	}
	f.mu.Lock()
	f.saved[l.ID] = l.Clone()
	f.mu.Unlock()
	return l, nil
}

func (f *fakePersister) UpdateList(_ context.Context, l *types.ShoppingList) error {
	f.record("update")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mu.Lock()
	f.saved[l.ID] = l.Clone()
	f.mu.Unlock()
	return nil
}

func (f *fakePersister) DeleteList(_ context.Context, listID string) error {
	f.record("delete")
	if f.writeErr != nil {
		return f.writeErr
	}
	f.mu.Lock()
	delete(f.saved, listID)
	f.mu.Unlock()
	return nil
}

func (f *fakePersister) FetchAll(_ context.Context, ownerID string) ([]*types.ShoppingList, error) {
	f.record("fetch")
	if f.fetchCh != nil {
		<-f.fetchCh
	}
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	var out []*types.ShoppingList
	for _, l := range f.fetch {
		if l == nil {
			// Passed through as-is to model a misbehaving adapter.
			out = append(out, nil)
			continue
		}
		if ownerID == "" || l.OwnerID == ownerID {
			out = append(out, l.Clone())
		}
	}
	return out, nil
}

func newTestStore(t *testing.T, p Persister, opts ...Option) *Store {
	t.Helper()
	s, err := New(p, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func flush(t *testing.T, s *Store, listID string) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.AwaitDurability(ctx, listID))
}

func TestCreateListAssignsUniqueIDs(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		id := s.CreateList(ctx, "groceries", ListMetadata{})
		require.NotEmpty(t, id)
		require.False(t, seen[id], "duplicate list id %s", id)
		seen[id] = true
	}
	assert.Len(t, s.Lists(), 50)
}

func TestCreateListRejectsBlankTitle(t *testing.T) {
	p := newFakePersister()
	s := newTestStore(t, p)
	ctx := context.Background()

	assert.Empty(t, s.CreateList(ctx, "", ListMetadata{}))
	assert.Empty(t, s.CreateList(ctx, "   ", ListMetadata{}))
	assert.Empty(t, s.Lists())

	flush(t, s, "any")
	assert.Empty(t, p.Ops(), "rejected create must not reach the adapter")
}

func TestAddItemAppendsWithFreshIDAndTimestamp(t *testing.T) {
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	s := newTestStore(t, nil, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	listID := s.CreateList(ctx, "hardware", ListMetadata{})
	itemID := s.AddItem(ctx, listID, ItemFields{Name: "screws", Quantity: "2 boxes", Category: "fasteners"})
	require.NotEmpty(t, itemID)

	l, ok := s.GetList(listID)
	require.True(t, ok)
	require.Len(t, l.Items, 1)
	assert.Equal(t, itemID, l.Items[0].ID)
	assert.Equal(t, "screws", l.Items[0].Name)
	assert.Equal(t, "2 boxes", l.Items[0].Quantity)
	assert.Equal(t, fixed, l.Items[0].DateAdded)
}

func TestAddItemValidation(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()
	listID := s.CreateList(ctx, "l", ListMetadata{})

	assert.Empty(t, s.AddItem(ctx, listID, ItemFields{Name: " ", Quantity: "1"}))
	assert.Empty(t, s.AddItem(ctx, listID, ItemFields{Name: "milk", Quantity: ""}))
	assert.Empty(t, s.AddItem(ctx, "no-such-list", ItemFields{Name: "milk", Quantity: "1"}))

	l, _ := s.GetList(listID)
	assert.Empty(t, l.Items)
}

func TestUpdateItemPreservesIdentityAndUntouchedFields(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	listID := s.CreateList(ctx, "l", ListMetadata{})
	itemID := s.AddItem(ctx, listID, ItemFields{
		Name: "milk", Quantity: "1L", Category: "dairy", Notes: "whole",
	})

	before, _ := s.GetList(listID)
	s.UpdateItem(ctx, listID, itemID, ItemUpdates{Quantity: String("2L")})

	after, _ := s.GetList(listID)
	require.Len(t, after.Items, 1)
	got := after.Items[0]
	assert.Equal(t, itemID, got.ID)
	assert.Equal(t, "2L", got.Quantity)
	assert.Equal(t, "milk", got.Name)
	assert.Equal(t, "dairy", got.Category)
	assert.Equal(t, "whole", got.Notes)
	assert.Equal(t, before.Items[0].DateAdded, got.DateAdded)
}

func TestRemoveItemUnknownIDIsNoOp(t *testing.T) {
	p := newFakePersister()
	s := newTestStore(t, p)
	ctx := context.Background()

	listID := s.CreateList(ctx, "l", ListMetadata{})
	itemID := s.AddItem(ctx, listID, ItemFields{Name: "eggs", Quantity: "12"})
	flush(t, s, listID)
	callsBefore := len(p.Ops())

	s.RemoveItem(ctx, listID, "not-there")
	s.RemoveItem(ctx, "not-a-list", itemID)
	flush(t, s, listID)

	l, _ := s.GetList(listID)
	assert.Len(t, l.Items, 1)
	assert.Len(t, p.Ops(), callsBefore, "no-op removals must not persist")

	s.RemoveItem(ctx, listID, itemID)
	l, _ = s.GetList(listID)
	assert.Empty(t, l.Items)
}

func TestRenameListRoundTrip(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	listID := s.CreateList(ctx, "original", ListMetadata{})
	s.AddItem(ctx, listID, ItemFields{Name: "a", Quantity: "1"})
	before, _ := s.GetList(listID)

	s.RenameList(ctx, listID, "renamed")
	mid, _ := s.GetList(listID)
	assert.Equal(t, "renamed", mid.Title)

	s.RenameList(ctx, listID, "original")
	after, _ := s.GetList(listID)
	assert.Equal(t, before.Title, after.Title)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.Equal(t, before.Items, after.Items)

	s.RenameList(ctx, listID, "  ")
	unchanged, _ := s.GetList(listID)
	assert.Equal(t, "original", unchanged.Title)
}

func TestDeleteThenMutateIsSilentNoOp(t *testing.T) {
	p := newFakePersister()
	s := newTestStore(t, p)
	ctx := context.Background()

	listID := s.CreateList(ctx, "doomed", ListMetadata{})
	s.DeleteList(ctx, listID)
	flush(t, s, listID)
	callsBefore := len(p.Ops())

	s.RenameList(ctx, listID, "back from the dead")
	assert.Empty(t, s.AddItem(ctx, listID, ItemFields{Name: "x", Quantity: "1"}))
	s.DeleteList(ctx, listID)
	flush(t, s, listID)

	assert.Empty(t, s.Lists())
	assert.Len(t, p.Ops(), callsBefore)
}

func TestMutationsPersistPostMutationSnapshots(t *testing.T) {
	p := newFakePersister()
	s := newTestStore(t, p)
	ctx := context.Background()

	listID := s.CreateList(ctx, "groceries", ListMetadata{OwnerID: "u1"})
	itemID := s.AddItem(ctx, listID, ItemFields{Name: "milk", Quantity: "1L"})
	s.UpdateItem(ctx, listID, itemID, ItemUpdates{Quantity: String("2L")})
	flush(t, s, listID)

	assert.Equal(t, []string{"create", "update", "update"}, p.Ops())
	saved, ok := p.Saved(listID)
	require.True(t, ok)
	assert.Equal(t, "groceries", saved.Title)
	assert.Equal(t, "u1", saved.OwnerID)
	require.Len(t, saved.Items, 1)
	assert.Equal(t, "2L", saved.Items[0].Quantity)

	s.DeleteList(ctx, listID)
	flush(t, s, listID)
	_, ok = p.Saved(listID)
	assert.False(t, ok)
}

func TestPersistenceFailureKeepsInMemoryState(t *testing.T) {
	p := newFakePersister()
	p.writeErr = errors.New("backend down")
	s := newTestStore(t, p)
	ctx := context.Background()

	listID := s.CreateList(ctx, "offline", ListMetadata{})
	require.NotEmpty(t, listID)
	itemID := s.AddItem(ctx, listID, ItemFields{Name: "milk", Quantity: "1L"})
	require.NotEmpty(t, itemID)
	flush(t, s, listID)

	// The adapter failed every call, but memory is the source of truth.
	l, ok := s.GetList(listID)
	require.True(t, ok)
	assert.Len(t, l.Items, 1)
	assert.Equal(t, []string{"create", "update"}, p.Ops())
}

func TestReadsReturnDeepCopies(t *testing.T) {
	s := newTestStore(t, nil)
	ctx := context.Background()

	listID := s.CreateList(ctx, "l", ListMetadata{})
	s.AddItem(ctx, listID, ItemFields{Name: "milk", Quantity: "1L"})

	got, _ := s.GetList(listID)
	got.Title = "mutated"
	got.Items[0].Name = "mutated"

	fresh, _ := s.GetList(listID)
	assert.Equal(t, "l", fresh.Title)
	assert.Equal(t, "milk", fresh.Items[0].Name)
}

func TestCloseIsIdempotent(t *testing.T) {
	s, err := New(nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.ErrorIs(t, s.AwaitDurability(ctx, "x"), ErrClosed)
}

func TestConcurrentMutationsStayConsistent(t *testing.T) {
	p := newFakePersister()
	s := newTestStore(t, p)
	ctx := context.Background()
	listID := s.CreateList(ctx, "shared", ListMetadata{})

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				s.AddItem(ctx, listID, ItemFields{Name: "item", Quantity: "1"})
			}
		}()
	}
	wg.Wait()
	flush(t, s, listID)

	l, _ := s.GetList(listID)
	assert.Len(t, l.Items, 200)
	saved, ok := p.Saved(listID)
	require.True(t, ok)
	assert.Len(t, saved.Items, 200, "final snapshot reflects all mutations")
}
