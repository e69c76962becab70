package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/semaphore"

	"github.com/govind-tiwari/review-extractor/internal/adapters/observability"
	"github.com/govind-tiwari/review-extractor/internal/adapters/reviewapi"
	"github.com/govind-tiwari/review-extractor/internal/app"
	"github.com/govind-tiwari/review-extractor/internal/domain"
	"github.com/govind-tiwari/review-extractor/internal/render"
	"github.com/govind-tiwari/review-extractor/internal/shared"
)

// newSource is swapped in tests.
var newSource = func(opts reviewapi.Options) (domain.ReviewSource, error) {
	return reviewapi.NewSource(opts)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	// logs go to stderr so stdout only carries results; Load itself logs,
	// and may change APP_ENV or LOG_LEVEL through .env
	log.Logger = observability.NewLogger(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"), stderr)
	cfg := shared.Load()
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel, stderr)
	var format string

	cmd := &cobra.Command{
		Use:           "extractor [flags] <product-url>...",
		Short:         "Extracts the reviews of one or more product pages through the review API.",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := render.ParseFormat(format)
			if err != nil {
				return err
			}
			src, err := newSource(reviewapi.Options{
				Mode:    cfg.ReviewSource,
				Base:    cfg.ReviewAPIBase,
				RPS:     cfg.ReviewAPIRPS,
				Timeout: cfg.ReviewAPITimeout,
			})
			if err != nil {
				return err
			}
			if cfg.Workers <= 0 {
				cfg.Workers = 1
			}
			failed := run(cmd.Context(), app.NewSubmitter(src), args, cfg.Workers, f, stdout)
			if failed > 0 {
				return fmt.Errorf("%d of %d extractions failed", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&cfg.ReviewAPIBase, "base", cfg.ReviewAPIBase, "review API base address")
	cmd.Flags().StringVar(&cfg.ReviewSource, "source", cfg.ReviewSource, "review source: http or mock")
	cmd.Flags().IntVarP(&cfg.Workers, "workers", "w", cfg.Workers, "URLs extracted at the same time")
	cmd.Flags().StringVarP(&format, "format", "f", string(render.FormatTable), "output format: table or text")
	return cmd
}

// run submits every URL as its own session and prints the rendered results
// in argument order. It returns how many submissions ended with an error.
func run(ctx context.Context, sub *app.Submitter, urls []string, workers int, f render.Format, out io.Writer) int {
	sem := semaphore.NewWeighted(int64(workers))
	states := make([]domain.UIState, len(urls))
	var wg sync.WaitGroup

	for i, u := range urls {
		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			msg := domain.UserMessage(&domain.ExtractError{Kind: domain.KindClient, Err: err})
			states[i] = domain.UIState{URL: u, Error: &msg}
			continue
		}
		wg.Add(1)
		go func(i int, u string) {
			defer wg.Done()
			defer sem.Release(1)
			states[i] = sub.Submit(ctx, domain.UIState{}, u, nil)
		}(i, u)
	}
	wg.Wait()

	failed := 0
	for i, st := range states {
		if st.Error != nil {
			failed++
		}
		var buf bytes.Buffer
		if len(urls) > 1 {
			fmt.Fprintf(&buf, "== %s\n", urls[i])
		}
		if err := render.WriteText(&buf, render.Build(st), f); err != nil {
			log.Error().Err(err).Msg("render failed")
		}
		if st.Error == nil && (st.Result == nil || st.Result.ReviewsCount == 0) {
			buf.WriteString("No reviews found.\n")
		}
		_, _ = out.Write(buf.Bytes())
	}
	return failed
}

func execute(ctx context.Context) int {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
