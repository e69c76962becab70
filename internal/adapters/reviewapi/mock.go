package reviewapi

import (
	"context"
	"time"

	"github.com/govind-tiwari/review-extractor/internal/domain"
)

// MockSource implements domain.ReviewSource with canned reviews, so the UI
// can be exercised without a backend.
type MockSource struct {
	Latency time.Duration
}

func NewMockSource(latency time.Duration) *MockSource {
	return &MockSource{Latency: latency}
}

func (m *MockSource) Extract(ctx context.Context, pageURL string) (domain.ExtractionResult, error) {
	if m.Latency > 0 {
		t := time.NewTimer(m.Latency)
		defer t.Stop()
		select {
		case <-ctx.Done():
			return domain.ExtractionResult{}, &domain.ExtractError{Kind: domain.KindNoResponse, Err: ctx.Err()}
		case <-t.C:
		}
	}
	str := func(s string) *string { return &s }
	num := func(f float64) *float64 { return &f }
	reviews := []domain.ReviewRecord{
		{Title: str("Does what it says"), Body: str("Sturdy, arrived on time. " + pageURL), Rating: num(5), Reviewer: str("mock_user_1")},
		{Title: str("Okay for the price"), Body: str("Battery could be better."), Rating: num(3), Reviewer: str("mock_user_2")},
		{Body: str("No title, no name, no stars.")},
	}
	return domain.ExtractionResult{ReviewsCount: len(reviews), Reviews: reviews}, nil
}
