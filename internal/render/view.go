// Package render turns a UIState into what the user sees. Build is pure;
// the HTML template and the text writer only format its output.
package render

import (
	"fmt"
	"strconv"

	"github.com/govind-tiwari/review-extractor/internal/domain"
)

const (
	NoTitle    = "No Title"
	NoBody     = "No Body"
	NoRating   = "N/A"
	NoReviewer = "Anonymous"

	LabelIdle    = "Extract Reviews"
	LabelLoading = "Extracting..."
)

type Entry struct {
	Title    string `json:"title"`
	Body     string `json:"body"`
	Rating   string `json:"rating"`
	Reviewer string `json:"reviewer"`
}

type View struct {
	URL         string  `json:"url"`
	Loading     bool    `json:"loading"`
	ButtonLabel string  `json:"button_label"`
	Error       string  `json:"error,omitempty"`
	ShowReviews bool    `json:"show_reviews"`
	Heading     string  `json:"heading,omitempty"`
	Entries     []Entry `json:"entries,omitempty"`
}

func Build(st domain.UIState) View {
	v := View{URL: st.URL, Loading: st.Loading, ButtonLabel: LabelIdle}
	if st.Loading {
		v.ButtonLabel = LabelLoading
	}
	if st.Error != nil {
		v.Error = *st.Error
		return v
	}
	if st.Result == nil || st.Result.ReviewsCount <= 0 {
		return v
	}
	v.ShowReviews = true
	v.Heading = fmt.Sprintf("Total Reviews Extracted: %d", st.Result.ReviewsCount)
	v.Entries = make([]Entry, 0, len(st.Result.Reviews))
	for _, r := range st.Result.Reviews {
		v.Entries = append(v.Entries, Entry{
			Title:    orDefault(r.Title, NoTitle),
			Body:     orDefault(r.Body, NoBody),
			Rating:   Rating(r.Rating),
			Reviewer: orDefault(r.Reviewer, NoReviewer),
		})
	}
	return v
}

// Rating formats a rating as "4 / 5"; absent or zero ratings read "N/A".
func Rating(r *float64) string {
	if r == nil || *r == 0 {
		return NoRating
	}
	return strconv.FormatFloat(*r, 'f', -1, 64) + " / 5"
}

func orDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
