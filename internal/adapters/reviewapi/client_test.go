package reviewapi_test

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/govind-tiwari/review-extractor/internal/adapters/reviewapi"
	"github.com/govind-tiwari/review-extractor/internal/domain"
)

func newClient(t *testing.T, base string) *reviewapi.Client {
	t.Helper()
	cl, err := reviewapi.New(base, 100, 2*time.Second) // high RPS for tests
	require.NoError(t, err)
	return cl
}

func TestClient_Extract_Success(t *testing.T) {
	var hits int32
	var gotPage, gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"reviews_count":2,"reviews":[` +
			`{"title":"Good","body":"Nice","rating":4,"reviewer":"A"},` +
			`{"body":"Meh","rating":"3,5"}]}`))
	}))
	defer ts.Close()

	page := "https://example.com/product/123?color=red&size=m"
	got, err := newClient(t, ts.URL).Extract(context.Background(), page)
	require.NoError(t, err)

	require.Equal(t, int32(1), atomic.LoadInt32(&hits))
	require.Equal(t, "/api/reviews", gotPath)
	require.Equal(t, page, gotPage)

	require.Equal(t, 2, got.ReviewsCount)
	require.Len(t, got.Reviews, 2)
	require.Equal(t, "Good", *got.Reviews[0].Title)
	require.Equal(t, 4.0, *got.Reviews[0].Rating)
	require.Nil(t, got.Reviews[1].Title)
	require.Nil(t, got.Reviews[1].Reviewer)
	require.Equal(t, 3.5, *got.Reviews[1].Rating)
}

func TestClient_Extract_ServerErrorKeepsBody(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("Error extracting reviews: Unable to identify review CSS selector."))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Extract(context.Background(), "https://example.com/p")
	require.Error(t, err)

	var xe *domain.ExtractError
	require.ErrorAs(t, err, &xe)
	require.Equal(t, domain.KindServer, xe.Kind)
	require.Equal(t, http.StatusInternalServerError, xe.Status)
	require.Equal(t, "Error extracting reviews: Unable to identify review CSS selector.", xe.Body)
	require.Equal(t, "Error: Error extracting reviews: Unable to identify review CSS selector.", domain.UserMessage(err))
	require.Equal(t, int32(1), atomic.LoadInt32(&hits), "no retries")
}

func TestClient_Extract_ServerErrorBodyIsNotTrimmed(t *testing.T) {
	const body = "  Error extracting reviews: x\n"
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(body))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Extract(context.Background(), "https://example.com/p")
	require.Equal(t, domain.KindServer, domain.Classify(err))
	require.Equal(t, "Error: "+body, domain.UserMessage(err))
}

func TestClient_Extract_TruncatedBodyIsNoResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Length", "100")
		_, _ = w.Write([]byte(`{"reviews_count":`))
		w.(http.Flusher).Flush()
		panic(http.ErrAbortHandler) // drop the connection mid-body
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Extract(context.Background(), "https://example.com/p")
	require.Error(t, err)
	require.Equal(t, domain.KindNoResponse, domain.Classify(err))
	require.Equal(t, domain.MsgNoResponse, domain.UserMessage(err))
}

func TestClient_Extract_NoResponse(t *testing.T) {
	// grab a free port, then close it so the dial is refused
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = newClient(t, "http://"+addr).Extract(context.Background(), "https://example.com/p")
	require.Error(t, err)
	require.Equal(t, domain.KindNoResponse, domain.Classify(err))
	require.Equal(t, domain.MsgNoResponse, domain.UserMessage(err))
}

func TestClient_Extract_TimeoutIsNoResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer ts.Close()

	cl, err := reviewapi.New(ts.URL, 100, 50*time.Millisecond)
	require.NoError(t, err)
	_, err = cl.Extract(context.Background(), "https://example.com/p")
	require.Equal(t, domain.KindNoResponse, domain.Classify(err))
}

func TestClient_Extract_UndecodableBodyIsClientError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Extract(context.Background(), "https://example.com/p")
	require.Equal(t, domain.KindClient, domain.Classify(err))
	require.Contains(t, domain.UserMessage(err), "Error: decode review api response")
}

func TestClient_Extract_NegativeCountIsClientError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"reviews_count":-1,"reviews":[]}`))
	}))
	defer ts.Close()

	_, err := newClient(t, ts.URL).Extract(context.Background(), "https://example.com/p")
	require.Equal(t, domain.KindClient, domain.Classify(err))
}

func TestClient_Extract_CanceledBeforeSendIsClientError(t *testing.T) {
	cl, err := reviewapi.New("http://127.0.0.1:1", 1, 0)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// the limiter refuses to wait on a dead context, so nothing is sent
	_, err = cl.Extract(ctx, "https://example.com/p")
	require.Equal(t, domain.KindClient, domain.Classify(err))
}

func TestNew_RejectsRelativeBase(t *testing.T) {
	_, err := reviewapi.New("localhost:8080", 5, 0)
	require.Error(t, err)
}

func TestNewSource_Modes(t *testing.T) {
	src, err := reviewapi.NewSource(reviewapi.Options{Mode: "mock"})
	require.NoError(t, err)
	require.IsType(t, &reviewapi.MockSource{}, src)

	src, err = reviewapi.NewSource(reviewapi.Options{Base: "http://localhost:8080"})
	require.NoError(t, err)
	require.IsType(t, &reviewapi.Client{}, src)

	_, err = reviewapi.NewSource(reviewapi.Options{Mode: "selenium"})
	require.Error(t, err)
}

func TestMockSource_FallbackFieldsMissing(t *testing.T) {
	got, err := reviewapi.NewMockSource(0).Extract(context.Background(), "https://example.com/p")
	require.NoError(t, err)
	require.Equal(t, len(got.Reviews), got.ReviewsCount)
	last := got.Reviews[len(got.Reviews)-1]
	require.Nil(t, last.Title)
	require.Nil(t, last.Rating)
	require.Nil(t, last.Reviewer)
}
