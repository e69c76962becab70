package reviewapi

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/govind-tiwari/review-extractor/internal/domain"
)

type wireResponse struct {
	ReviewsCount int          `json:"reviews_count"`
	Reviews      []wireReview `json:"reviews"`
}

type wireReview struct {
	Title    *string   `json:"title"`
	Body     *string   `json:"body"`
	Rating   flexFloat `json:"rating"`
	Reviewer *string   `json:"reviewer"`
}

// flexFloat accepts a JSON number, a numeric string ("4", "4,5") or null.
type flexFloat struct{ v *float64 }

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case nil:
		f.v = nil
	case float64:
		f.v = &v
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
		if s == "" {
			f.v = nil
			return nil
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("rating %q is not a number", v)
		}
		f.v = &n
	default:
		return fmt.Errorf("rating has unsupported type %T", raw)
	}
	return nil
}

func (w wireResponse) toDomain() (domain.ExtractionResult, error) {
	if w.ReviewsCount < 0 {
		return domain.ExtractionResult{}, fmt.Errorf("reviews_count %d is negative", w.ReviewsCount)
	}
	out := domain.ExtractionResult{
		ReviewsCount: w.ReviewsCount,
		Reviews:      make([]domain.ReviewRecord, 0, len(w.Reviews)),
	}
	for _, r := range w.Reviews {
		out.Reviews = append(out.Reviews, domain.ReviewRecord{
			Title:    r.Title,
			Body:     r.Body,
			Rating:   r.Rating.v,
			Reviewer: r.Reviewer,
		})
	}
	return out, nil
}
