package domain

import "context"

// ReviewSource extracts the reviews of one product page.
type ReviewSource interface {
	Extract(ctx context.Context, pageURL string) (ExtractionResult, error)
}

// ExtractFunc adapts a plain function to ReviewSource.
type ExtractFunc func(ctx context.Context, pageURL string) (ExtractionResult, error)

func (f ExtractFunc) Extract(ctx context.Context, pageURL string) (ExtractionResult, error) {
	return f(ctx, pageURL)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
