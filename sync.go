package lists

import "context"

// LoadListsForUser asynchronously replaces the in-memory collection with the
// adapter's lists for ownerID. While the fetch is in flight Loading reports
// true; on failure the collection is left untouched and Err carries the
// failure message until the next load clears it.
//
// There is no cancellation of earlier loads: when calls overlap, whichever
// response arrives last wins, for both data and error state.
func (s *Store) LoadListsForUser(ctx context.Context, ownerID string) {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()

	go func() {
		fetched, err := s.persister.FetchAll(ctx, ownerID)

		s.mu.Lock()
		defer s.mu.Unlock()
		s.loading = false
		if err != nil {
			fetchFailuresTotal.Inc()
			s.lastErr = err.Error()
			s.log.Error().Err(err).Str("owner_id", ownerID).Msg("list fetch failed")
			return
		}
		s.lists = s.lists[:0]
		for _, l := range fetched {
			if l == nil {
				// A misbehaving adapter must not plant a list that every
				// later read would dereference.
				continue
			}
			s.lists = append(s.lists, l.Clone())
		}
		s.log.Debug().Int("lists", len(s.lists)).Str("owner_id", ownerID).Msg("list fetch complete")
	}()
}
