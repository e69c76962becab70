package app

import (
	"net/url"
	"strings"

	"github.com/govind-tiwari/review-extractor/internal/domain"
)

// ValidateURL accepts syntactically well-formed absolute URLs and returns
// them trimmed of surrounding whitespace.
func ValidateURL(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", domain.ErrInvalidURL
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" {
		return "", domain.ErrInvalidURL
	}
	if u.Host == "" && u.Opaque == "" {
		return "", domain.ErrInvalidURL
	}
	return s, nil
}
