package domain

// ReviewRecord is one extracted review. Any field may be missing.
type ReviewRecord struct {
	Title    *string  `json:"title,omitempty"`
	Body     *string  `json:"body,omitempty"`
	Rating   *float64 `json:"rating,omitempty"` // expected 1..5
	Reviewer *string  `json:"reviewer,omitempty"`
}

// ExtractionResult is the payload of one successful extraction. Count and
// Reviews are only meaningful together.
type ExtractionResult struct {
	ReviewsCount int            `json:"reviews_count"`
	Reviews      []ReviewRecord `json:"reviews"`
}

// Clone returns a copy that shares no backing array with r.
func (r ExtractionResult) Clone() ExtractionResult {
	out := ExtractionResult{ReviewsCount: r.ReviewsCount}
	if n := len(r.Reviews); n > 0 {
		out.Reviews = make([]ReviewRecord, n)
		copy(out.Reviews, r.Reviews)
	}
	return out
}
