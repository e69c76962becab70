package app

import "github.com/govind-tiwari/review-extractor/internal/domain"

// Event is one discrete transition of a session's UIState.
type Event interface{ event() }

type (
	// Submitted starts a new submission and clears everything from the last one.
	Submitted struct{ URL string }
	// Rejected reports a validation failure; no request is issued.
	Rejected struct{ Err error }
	RequestStarted struct{}
	Succeeded      struct{ Result domain.ExtractionResult }
	Failed         struct{ Err error }
	// Finished leaves the loading state, whatever the outcome was.
	Finished struct{}
)

func (Submitted) event()      {}
func (Rejected) event()       {}
func (RequestStarted) event() {}
func (Succeeded) event()      {}
func (Failed) event()         {}
func (Finished) event()       {}

// Reduce returns the state that follows s after ev. s itself is never
// modified; pointer fields are replaced, not written through.
func Reduce(s domain.UIState, ev Event) domain.UIState {
	switch e := ev.(type) {
	case Submitted:
		return domain.UIState{URL: e.URL}
	case Rejected:
		msg := domain.UserMessage(e.Err)
		s.Loading = false
		s.Result = nil
		s.Error = &msg
	case RequestStarted:
		s.Loading = true
	case Succeeded:
		r := e.Result.Clone()
		s.Result = &r
		s.Error = nil
	case Failed:
		msg := domain.UserMessage(e.Err)
		s.Result = nil
		s.Error = &msg
	case Finished:
		s.Loading = false
	}
	return s
}
