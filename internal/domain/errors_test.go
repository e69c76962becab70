package domain_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/govind-tiwari/review-extractor/internal/domain"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want domain.FailureKind
	}{
		{&domain.ExtractError{Kind: domain.KindServer, Status: 502}, domain.KindServer},
		{fmt.Errorf("wrapped: %w", &domain.ExtractError{Kind: domain.KindNoResponse}), domain.KindNoResponse},
		{domain.ErrInvalidURL, domain.KindValidation},
		{errors.New("anything"), domain.KindClient},
	}
	for _, tc := range cases {
		if got := domain.Classify(tc.err); got != tc.want {
			t.Errorf("Classify(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{&domain.ExtractError{Kind: domain.KindServer, Status: 400, Body: "Invalid URL provided."}, "Error: Invalid URL provided."},
		{&domain.ExtractError{Kind: domain.KindServer, Status: 500, Body: ""}, "Error: "},
		{&domain.ExtractError{Kind: domain.KindNoResponse, Err: context.DeadlineExceeded}, "Error: No response from the server."},
		{&domain.ExtractError{Kind: domain.KindClient, Err: errors.New("rate: Wait(n=1) would exceed context deadline")}, "Error: rate: Wait(n=1) would exceed context deadline"},
		{domain.ErrInvalidURL, "Please enter a valid URL."},
	}
	for _, tc := range cases {
		if got := domain.UserMessage(tc.err); got != tc.want {
			t.Errorf("UserMessage(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}

func TestExtractError_Unwrap(t *testing.T) {
	err := &domain.ExtractError{Kind: domain.KindNoResponse, Err: context.Canceled}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected errors.Is to see the cause")
	}
}
