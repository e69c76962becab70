package reviewapi

import (
	"fmt"
	"time"

	"github.com/govind-tiwari/review-extractor/internal/domain"
)

type Options struct {
	Mode    string // http|mock
	Base    string
	RPS     int
	Timeout time.Duration
}

// NewSource selects the ReviewSource implementation for opts.Mode.
func NewSource(opts Options) (domain.ReviewSource, error) {
	switch opts.Mode {
	case "", "http":
		c, err := New(opts.Base, opts.RPS, opts.Timeout)
		if err != nil {
			return nil, err
		}
		return c, nil
	case "mock":
		return NewMockSource(750 * time.Millisecond), nil
	default:
		return nil, fmt.Errorf("unknown REVIEW_SOURCE: %s (use 'http' or 'mock')", opts.Mode)
	}
}
