package persisttest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/shoppagain/lists/internal/types"
)

// Backend is an in-memory stand-in for the external REST server the remote
// adapter talks to. It implements the contract documented on the remote
// package and records every request method for assertions.
type Backend struct {
	mu    sync.Mutex
	lists map[string]*types.ShoppingList
	calls []string

	srv *httptest.Server
}

// NewBackend starts the mock server; it is shut down with the test.
func NewBackend(t *testing.T) *Backend {
	t.Helper()
	b := &Backend{lists: make(map[string]*types.ShoppingList)}

	r := mux.NewRouter()
	r.HandleFunc("/lists", b.create).Methods(http.MethodPost)
	r.HandleFunc("/lists", b.fetchAll).Methods(http.MethodGet)
	r.HandleFunc("/lists/{id}", b.update).Methods(http.MethodPut)
	r.HandleFunc("/lists/{id}", b.delete).Methods(http.MethodDelete)

	b.srv = httptest.NewServer(r)
	t.Cleanup(b.srv.Close)
	return b
}

// URL is the base URL for the remote adapter.
func (b *Backend) URL() string { return b.srv.URL }

// Calls returns the request methods seen so far, in order.
func (b *Backend) Calls() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.calls...)
}

// Get returns the stored list, if any.
func (b *Backend) Get(id string) (*types.ShoppingList, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l, ok := b.lists[id]
	if !ok {
		return nil, false
	}
	return l.Clone(), true
}

// Put seeds a list directly, bypassing HTTP (for fetch tests).
func (b *Backend) Put(l *types.ShoppingList) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lists[l.ID] = l.Clone()
}

func (b *Backend) create(w http.ResponseWriter, r *http.Request) {
	var l types.ShoppingList
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil || l.ID == "" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.lists[l.ID] = l.Clone()
	b.calls = append(b.calls, "POST")
	b.mu.Unlock()

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(&l)
}

func (b *Backend) update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var l types.ShoppingList
	if err := json.NewDecoder(r.Body).Decode(&l); err != nil || l.ID != id {
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	b.mu.Lock()
	b.lists[id] = l.Clone()
	b.calls = append(b.calls, "PUT")
	b.mu.Unlock()

	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	b.mu.Lock()
	_, existed := b.lists[id]
	delete(b.lists, id)
	b.calls = append(b.calls, "DELETE")
	b.mu.Unlock()

	if !existed {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) fetchAll(w http.ResponseWriter, r *http.Request) {
	owner := r.URL.Query().Get("userId")
	b.mu.Lock()
	out := make([]*types.ShoppingList, 0, len(b.lists))
	for _, l := range b.lists {
		if owner == "" || l.OwnerID == owner {
			out = append(out, l.Clone())
		}
	}
	b.calls = append(b.calls, "GET")
	b.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	_ = json.NewEncoder(w).Encode(out)
}
