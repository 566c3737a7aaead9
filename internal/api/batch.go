package api

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/btltech/astromeric-sub000/internal/model"
)

// BatchFetcher fetches forecasts for multiple profiles concurrently.
// It uses errgroup to manage goroutines and respect the concurrency limit.
//
// Design decision: We keep batching separate from Client rather than adding
// a multi-profile method to it because:
//  1. It keeps the Client focused on single-request semantics
//  2. It allows different batch strategies later without touching the client
//  3. The callback surface stays testable in isolation
type BatchFetcher struct {
	// client performs the individual forecast requests.
	client *Client

	// concurrency is the maximum number of in-flight requests.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchResult pairs a profile with its forecast or error.
type BatchResult struct {
	// Profile is the profile the fetch was for.
	Profile *model.SavedProfile

	// Forecast is the fetched forecast, nil when Err is set.
	Forecast *model.Forecast

	// Err is the fetch error, nil on success.
	Err error
}

// BatchOption configures a BatchFetcher.
type BatchOption func(*BatchFetcher)

// WithConcurrency sets the maximum number of concurrent fetches.
// Default is 4 if not specified.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchFetcher) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithBatchLogger sets a custom logger for batch fetching.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchFetcher) {
		b.logger = logger
	}
}

// NewBatchFetcher creates a BatchFetcher backed by the given client.
func NewBatchFetcher(client *Client, opts ...BatchOption) *BatchFetcher {
	bf := &BatchFetcher{
		client:      client,
		concurrency: 4,
	}

	for _, opt := range opts {
		opt(bf)
	}

	if bf.logger == nil {
		bf.logger = slog.Default()
	}

	return bf
}

// FetchForecasts fetches a forecast for each profile at the given scope.
// Results preserve the input order. Individual fetch failures are recorded
// in the corresponding BatchResult rather than aborting the batch; only
// context cancellation stops the whole run early.
func (bf *BatchFetcher) FetchForecasts(ctx context.Context, profiles []*model.SavedProfile, scope model.Scope, locale string) ([]BatchResult, error) {
	bf.logger.Info("starting batch forecast fetch",
		"profiles", len(profiles),
		"scope", scope.String(),
		"concurrency", bf.concurrency,
	)

	startTime := time.Now()

	// Pre-allocate results to keep input order without locking.
	results := make([]BatchResult, len(profiles))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bf.concurrency)

	for i, profile := range profiles {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			forecast, err := bf.client.Forecast(ctx, profile, scope, locale)
			results[i] = BatchResult{Profile: profile, Forecast: forecast, Err: err}
			if err != nil {
				bf.logger.Warn("forecast fetch failed",
					"profile", profile.Name,
					"error", err,
				)
			}
			return nil
		})
	}

	err := g.Wait()

	bf.logger.Info("batch forecast fetch finished",
		"profiles", len(profiles),
		"elapsed", time.Since(startTime).Round(time.Millisecond),
	)

	return results, err
}
