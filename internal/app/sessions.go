package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/govind-tiwari/review-extractor/internal/domain"
)

// ErrBusy is returned when a session already has a request in flight.
var ErrBusy = errors.New("submission already in progress")

// DefaultDeadline bounds one background extraction when none is configured.
const DefaultDeadline = 2 * time.Minute

// SessionService keeps one UIState per browser session and runs the network
// half of each submission in the background.
type SessionService struct {
	cache    domain.Cache
	sub      *Submitter
	ttl      time.Duration
	deadline time.Duration
	base     context.Context // canceled on shutdown; aborts in-flight requests

	mu sync.Mutex // serializes load-check-save of sessions
	wg sync.WaitGroup
}

// NewSessionService ties every background request to base and to deadline.
// deadline <= 0 uses DefaultDeadline.
func NewSessionService(base context.Context, c domain.Cache, sub *Submitter, ttl, deadline time.Duration) *SessionService {
	if deadline <= 0 {
		deadline = DefaultDeadline
	}
	return &SessionService{cache: c, sub: sub, ttl: ttl, deadline: deadline, base: base}
}

func sessionKey(id string) string  { return "session:" + id }
func inflightKey(id string) string { return "inflight:" + id }

// inflightTTL outlives the deadline, so the marker only expires on its own
// when the process that set it is gone.
func (s *SessionService) inflightTTL() int {
	return int(s.deadline/time.Second) + 5
}

// Current returns the session's state; unknown sessions start empty.
func (s *SessionService) Current(ctx context.Context, id string) (domain.UIState, error) {
	var st domain.UIState
	if _, err := s.cache.Get(ctx, sessionKey(id), &st); err != nil {
		return domain.UIState{}, fmt.Errorf("load session: %w", err)
	}
	return st, nil
}

func (s *SessionService) save(ctx context.Context, id string, st domain.UIState) error {
	if err := s.cache.Set(ctx, sessionKey(id), st, int(s.ttl.Seconds())); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Start validates rawURL and, if it is well formed, issues the request in
// the background. The returned state is either the rejected state or the
// loading state; the resolved state is saved when the request completes.
func (s *SessionService) Start(ctx context.Context, id, rawURL string) (domain.UIState, error) {
	s.mu.Lock()
	prev, err := s.Current(ctx, id)
	if err != nil {
		s.mu.Unlock()
		return domain.UIState{}, err
	}
	if prev.Loading {
		var since time.Time
		live, err := s.cache.Get(ctx, inflightKey(id), &since)
		if err != nil {
			s.mu.Unlock()
			return domain.UIState{}, fmt.Errorf("load in-flight marker: %w", err)
		}
		if live {
			s.mu.Unlock()
			return prev, ErrBusy
		}
		// loading, but whoever issued the request is gone
		log.Warn().Str("session", id).Msg("dropping stale loading state")
	}
	st, pageURL, ok := s.sub.Prepare(prev, rawURL)
	if ok {
		if err := s.cache.Set(ctx, inflightKey(id), time.Now(), s.inflightTTL()); err != nil {
			s.mu.Unlock()
			return domain.UIState{}, fmt.Errorf("save in-flight marker: %w", err)
		}
	}
	err = s.save(ctx, id, st)
	s.mu.Unlock()
	if err != nil || !ok {
		return st, err
	}

	s.wg.Add(1)
	go s.resolve(id, st, pageURL)
	return st, nil
}

func (s *SessionService) resolve(id string, st domain.UIState, pageURL string) {
	defer s.wg.Done()

	ctx, cancel := context.WithTimeout(s.base, s.deadline)
	final := s.sub.Complete(ctx, st, pageURL)
	cancel()

	// the result is stored even when base was canceled
	store, cancelStore := context.WithTimeout(context.WithoutCancel(s.base), 5*time.Second)
	defer cancelStore()
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.save(store, id, final); err != nil {
		log.Error().Err(err).Str("session", id).Msg("persist resolved state failed")
	}
	if err := s.cache.Del(store, inflightKey(id)); err != nil {
		log.Warn().Err(err).Str("session", id).Msg("clear in-flight marker failed")
	}
}

// Wait blocks until every background request has been resolved and saved.
// Canceling base makes it return promptly.
func (s *SessionService) Wait() { s.wg.Wait() }
