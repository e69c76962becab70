package app_test

import (
	"errors"
	"testing"

	"github.com/govind-tiwari/review-extractor/internal/app"
	"github.com/govind-tiwari/review-extractor/internal/domain"
)

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://example.com/product/123",
		"http://localhost:3000/p?id=1#reviews",
		"  https://example.com/padded  ",
		"ftp://files.example.com/x",
	}
	for _, in := range valid {
		if _, err := app.ValidateURL(in); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want ok", in, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		"example.com/product",
		"/relative/path",
		"https://",
		"not a url",
		"://missing-scheme.com",
		"http://[::1",
	}
	for _, in := range invalid {
		if _, err := app.ValidateURL(in); !errors.Is(err, domain.ErrInvalidURL) {
			t.Errorf("ValidateURL(%q) = %v, want ErrInvalidURL", in, err)
		}
	}
}

func TestValidateURL_TrimsOnly(t *testing.T) {
	got, err := app.ValidateURL(" https://example.com/a?b=c%20d ")
	if err != nil {
		t.Fatal(err)
	}
	if got != "https://example.com/a?b=c%20d" {
		t.Fatalf("got %q", got)
	}
}
