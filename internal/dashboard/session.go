package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/wonny/epsdash/internal/view"
)

// ErrSuperseded means a newer Select was issued before this load finished
var ErrSuperseded = errors.New("superseded by a newer selection")

// Session is the view state of one dashboard user: the selected date and its snapshot.
// Each Select is tagged with a generation; only the newest generation may publish.
//
// A Session belongs to one interactive client and is never shared between clients.
// The screening command builds one per run. The HTTP API is stateless and does not use it.
type Session struct {
	loader *Loader
	memo   *view.Memo

	mu       sync.Mutex
	gen      uint64
	cancel   context.CancelFunc
	date     string
	snapshot *Snapshot
	err      error
}

// NewSession creates an empty session
func NewSession(loader *Loader) *Session {
	return &Session{
		loader: loader,
		memo:   view.NewMemo(),
	}
}

// Select loads date and makes it current.
// The previous in-flight load is cancelled and its result discarded with ErrSuperseded.
func (s *Session) Select(ctx context.Context, date string) (*Snapshot, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	if s.cancel != nil {
		s.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.date = date
	s.mu.Unlock()

	snap, err := s.loader.Load(loadCtx, date)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		return nil, ErrSuperseded
	}
	cancel()
	s.cancel = nil

	// 실패 시 이전 스냅샷을 남기지 않음 (전부 아니면 전무)
	s.snapshot = snap
	s.err = err
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Current returns the selected date, its snapshot and the last load error
func (s *Session) Current() (string, *Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.date, s.snapshot, s.err
}

// View derives the candidate view of the current snapshot under q.
// It returns false when no snapshot is loaded.
func (s *Session) View(q view.Query) (view.CandidateView, bool) {
	_, snap, _ := s.Current()
	if snap == nil {
		return view.CandidateView{}, false
	}
	return s.memo.View(snap.ID(), snap.Candidates, q), true
}
