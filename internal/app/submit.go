package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/govind-tiwari/review-extractor/internal/adapters/observability"
	"github.com/govind-tiwari/review-extractor/internal/domain"
)

type Submitter struct {
	src domain.ReviewSource
}

func NewSubmitter(src domain.ReviewSource) *Submitter {
	return &Submitter{src: src}
}

// Prepare runs the part of a submission that needs no network I/O. When ok
// is false the URL was rejected and st already carries the validation error.
func (s *Submitter) Prepare(prev domain.UIState, rawURL string) (st domain.UIState, pageURL string, ok bool) {
	st = Reduce(prev, Submitted{URL: rawURL})
	pageURL, err := ValidateURL(rawURL)
	if err != nil {
		observability.ObserveSubmission(domain.KindValidation.String())
		return Reduce(st, Rejected{Err: err}), "", false
	}
	return Reduce(st, RequestStarted{}), pageURL, true
}

// Complete issues the request for a prepared state and resolves it. The
// returned state is never loading, even if the source panics.
func (s *Submitter) Complete(ctx context.Context, st domain.UIState, pageURL string) (out domain.UIState) {
	start := time.Now()
	outcome := "ok"
	out = st
	defer func() {
		if r := recover(); r != nil {
			err := &domain.ExtractError{Kind: domain.KindClient, Err: fmt.Errorf("%v", r)}
			log.Error().Interface("panic", r).Str("page", pageURL).Msg("review source panicked")
			out = Reduce(st, Failed{Err: err})
			outcome = domain.KindClient.String()
		}
		out = Reduce(out, Finished{})
		observability.ObserveSubmission(outcome)
		log.Debug().Str("page", pageURL).Str("outcome", outcome).Dur("duration", time.Since(start)).Msg("submission resolved")
	}()

	res, err := s.src.Extract(ctx, pageURL)
	if err != nil {
		kind := domain.Classify(err)
		outcome = kind.String()
		log.Warn().Err(err).Str("page", pageURL).Str("kind", outcome).Msg("extraction failed")
		out = Reduce(st, Failed{Err: err})
		return out
	}
	out = Reduce(st, Succeeded{Result: res})
	return out
}

// Submit runs a whole submission. commit, when non-nil, receives every
// intermediate snapshot in order.
func (s *Submitter) Submit(ctx context.Context, prev domain.UIState, rawURL string, commit func(domain.UIState)) domain.UIState {
	if commit == nil {
		commit = func(domain.UIState) {}
	}
	cleared := Reduce(prev, Submitted{URL: rawURL})
	commit(cleared)

	st, pageURL, ok := s.Prepare(prev, rawURL)
	commit(st)
	if !ok {
		return st
	}
	final := s.Complete(ctx, st, pageURL)
	commit(final)
	return final
}
