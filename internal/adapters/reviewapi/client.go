package reviewapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/govind-tiwari/review-extractor/internal/adapters/observability"
	"github.com/govind-tiwari/review-extractor/internal/domain"
)

const (
	endpoint = "/api/reviews"
	service  = "review_api"
)

// Client calls the review-extraction backend. One Extract is one GET; there
// are no retries.
type Client struct {
	rc *resty.Client
	rl *rate.Limiter
}

// New validates base once so that request construction cannot fail later on
// a malformed address. timeout <= 0 keeps the transport default.
func New(base string, rps int, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("review api base %q: %w", base, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("review api base %q must be an absolute URL", base)
	}
	if rps <= 0 {
		rps = 5
	}

	rc := resty.New().
		SetBaseURL(base).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "review-extractor/1.0")
	if timeout > 0 {
		rc.SetTimeout(timeout)
	}
	rc.OnAfterResponse(func(_ *resty.Client, res *resty.Response) error {
		observability.ObserveExternal(service, endpoint, res.StatusCode(), res.Time())
		log.Debug().
			Str("endpoint", endpoint).
			Int("status", res.StatusCode()).
			Dur("duration", res.Time()).
			Msg("review api responded")
		return nil
	})
	rc.OnError(func(req *resty.Request, err error) {
		var rerr *resty.ResponseError
		if errors.As(err, &rerr) {
			return // already observed by OnAfterResponse
		}
		if req.Time.IsZero() {
			return // never sent
		}
		observability.ObserveExternal(service, endpoint, 0, time.Since(req.Time))
	})

	return &Client{rc: rc, rl: rate.NewLimiter(rate.Limit(rps), rps)}, nil
}

// Extract issues GET <base>/api/reviews?page=<pageURL>.
func (c *Client) Extract(ctx context.Context, pageURL string) (domain.ExtractionResult, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return domain.ExtractionResult{}, &domain.ExtractError{Kind: domain.KindClient, Err: err}
	}

	req := c.rc.R().
		SetContext(ctx).
		SetQueryParam("page", pageURL)
	res, err := req.Get(endpoint)
	if err != nil {
		// req.Time is stamped right before the transport call. A body cut
		// off mid-read comes back without a response but was still sent.
		if res != nil || !req.Time.IsZero() {
			return domain.ExtractionResult{}, &domain.ExtractError{Kind: domain.KindNoResponse, Err: err}
		}
		return domain.ExtractionResult{}, &domain.ExtractError{Kind: domain.KindClient, Err: err}
	}

	if !res.IsSuccess() {
		return domain.ExtractionResult{}, &domain.ExtractError{
			Kind:   domain.KindServer,
			Status: res.StatusCode(),
			Body:   string(res.Body()), // Response.String trims whitespace
		}
	}

	var body wireResponse
	if err := json.Unmarshal(res.Body(), &body); err != nil {
		return domain.ExtractionResult{}, &domain.ExtractError{
			Kind: domain.KindClient,
			Err:  fmt.Errorf("decode review api response: %w", err),
		}
	}
	out, err := body.toDomain()
	if err != nil {
		return domain.ExtractionResult{}, &domain.ExtractError{Kind: domain.KindClient, Err: err}
	}
	return out, nil
}
