package view

import (
	"sync"

	"github.com/wonny/epsdash/internal/contracts"
)

type memoKey struct {
	snapshot string
	query    Query
}

// Memo caches the last derived candidate view.
// The view is recomputed only when the snapshot identity or the query changes.
type Memo struct {
	mu    sync.Mutex
	key   memoKey
	view  CandidateView
	valid bool

	hits   int
	misses int
}

// NewMemo creates an empty memo
func NewMemo() *Memo {
	return &Memo{}
}

// View returns the candidate view for records under q.
// snapshot identifies records; callers must pass a new identity whenever records change.
func (m *Memo) View(snapshot string, records []contracts.Candidate, q Query) CandidateView {
	key := memoKey{snapshot: snapshot, query: q.Normalize()}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.valid && m.key == key {
		m.hits++
		return m.view
	}

	m.misses++
	m.view = BuildCandidateView(records, key.query)
	m.key = key
	m.valid = true
	return m.view
}

// Stats returns cache hits and misses
func (m *Memo) Stats() (hits, misses int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.hits, m.misses
}
