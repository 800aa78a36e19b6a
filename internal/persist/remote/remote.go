// Package remote persists lists against a REST endpoint, one network call
// per mutation. The endpoint contract is the usual mock-server shape:
//
//	POST   {base}/lists            create, responds 201 with the stored list
//	PUT    {base}/lists/{id}       update, responds 200 or 204
//	DELETE {base}/lists/{id}       delete, responds 204 (404 is benign)
//	GET    {base}/lists?userId=u   fetch all lists owned by u
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/shoppagain/lists/internal/types"
)

// Remote implements persist.Persister over HTTP.
type Remote struct {
	baseURL string
	http    *http.Client
}

// New constructs a Remote adapter for baseURL.
func New(baseURL string, opts ...Option) (*Remote, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("remote: baseURL cannot be empty")
	}
	r := &Remote{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	// Env override so traffic can be inspected without a code change. Applied
	// last so the dump sees the final transport chain (auth header included).
	if debugLoggingRequested() {
		if err := WithDebugLogging(true)(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote: %s: status %d", e.Op, e.Code)
}

// Irrecoverable marks 4xx responses (except 429) as not worth retrying.
func (e *StatusError) Irrecoverable() bool {
	return e.Code >= 400 && e.Code < 500 && e.Code != http.StatusTooManyRequests
}

// CreateList POSTs the list and returns the server's stored representation.
func (r *Remote) CreateList(ctx context.Context, l *types.ShoppingList) (*types.ShoppingList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateIDPresent(l.ID, "list id"); err != nil {
		return nil, err
	}
	body, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/lists", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "create list", Code: resp.StatusCode}
	}

	var stored types.ShoppingList
	if err := json.NewDecoder(resp.Body).Decode(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

// UpdateList PUTs the full post-mutation snapshot of the list.
func (r *Remote) UpdateList(ctx context.Context, l *types.ShoppingList) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(l.ID, "list id"); err != nil {
		return err
	}
	body, err := json.Marshal(l)
	if err != nil {
		return err
	}
	u := fmt.Sprintf("%s/lists/%s", r.baseURL, url.PathEscape(l.ID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, u, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return &StatusError{Op: "update list", Code: resp.StatusCode}
	}
	return nil
}

// DeleteList issues a DELETE; a 404 means the list is already gone, which is
// exactly the state the caller asked for.
func (r *Remote) DeleteList(ctx context.Context, listID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateIDPresent(listID, "list id"); err != nil {
		return err
	}
	u := fmt.Sprintf("%s/lists/%s", r.baseURL, url.PathEscape(listID))
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusNoContent, http.StatusNotFound:
		return nil
	default:
		return &StatusError{Op: "delete list", Code: resp.StatusCode}
	}
}

// FetchAll GETs every list owned by ownerID.
func (r *Remote) FetchAll(ctx context.Context, ownerID string) ([]*types.ShoppingList, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s/lists", r.baseURL)
	if ownerID != "" {
		u += "?userId=" + url.QueryEscape(ownerID)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := r.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "fetch lists", Code: resp.StatusCode}
	}

	var lists []*types.ShoppingList
	if err := json.NewDecoder(resp.Body).Decode(&lists); err != nil {
		return nil, err
	}
	// A JSON null in the payload decodes to a nil pointer; drop it rather
	// than hand back a list nobody can read.
	out := lists[:0]
	for _, l := range lists {
		if l != nil {
			out = append(out, l)
		}
	}
	return out, nil
}
