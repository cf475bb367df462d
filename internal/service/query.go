package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/stabletide/internal/analysis"
	"github.com/guttosm/stabletide/internal/cache"
	"github.com/guttosm/stabletide/internal/domain/models"
	"github.com/guttosm/stabletide/internal/logger"
	"github.com/guttosm/stabletide/internal/metrics"
)

// Fetcher is the upstream half of a query; *analysis.Client implements it.
type Fetcher interface {
	FetchRecommendations(ctx context.Context, p models.QueryParams) (models.CachedQueryResult, error)
}

// QueryService runs a query against the analysis service and stores the
// result as the latest document.
type QueryService interface {
	// Submit fetches the result for p and writes it to the cache.
	// A failed cache write is reported in the SaveOutcome and never turns
	// into an error; an upstream failure returns an error and leaves the
	// cache untouched.
	Submit(ctx context.Context, p models.QueryParams) (models.CachedQueryResult, cache.SaveOutcome, error)
}

type queryService struct {
	fetcher Fetcher
	store   cache.Store
	key     string
	group   singleflight.Group
	log     zerolog.Logger
}

type submitResult struct {
	result  models.CachedQueryResult
	outcome cache.SaveOutcome
}

func NewQueryService(f Fetcher, store cache.Store, key string) QueryService {
	return &queryService{
		fetcher: f,
		store:   store,
		key:     key,
		log:     logger.Component("query"),
	}
}

func (s *queryService) Submit(ctx context.Context, p models.QueryParams) (models.CachedQueryResult, cache.SaveOutcome, error) {
	if err := analysis.Validate(p); err != nil {
		return models.CachedQueryResult{}, cache.SaveOutcome{}, err
	}

	// Identical in-flight queries share one upstream call and one write. The
	// shared call is detached from the caller that started it so its
	// cancellation does not fail the others; the client timeout still applies.
	shared := context.WithoutCancel(ctx)
	v, err, dup := s.group.Do(flightKey(p), func() (any, error) {
		return s.run(shared, p)
	})
	if dup {
		s.log.Debug().Str("asset", p.Asset).Msg("joined in-flight query")
	}
	if err != nil {
		return models.CachedQueryResult{}, cache.SaveOutcome{}, err
	}
	r := v.(submitResult)
	return r.result, r.outcome, nil
}

func (s *queryService) run(ctx context.Context, p models.QueryParams) (submitResult, error) {
	start := time.Now()
	res, err := s.fetcher.FetchRecommendations(ctx, p)
	metrics.ObserveUpstream(outcomeLabel(err), time.Since(start))
	if err != nil {
		s.log.Warn().Err(err).
			Str("asset", p.Asset).
			Str("start", p.Start).
			Str("end", p.End).
			Msg("analysis request failed")
		return submitResult{}, err
	}

	outcome := cache.Persist(ctx, s.store, s.key, res.Document())
	if outcome.OK() {
		metrics.CacheOp("save", "ok")
		s.log.Info().
			Str("key", outcome.Key).
			Dur("elapsed", outcome.Elapsed).
			Int("historical", len(res.HistoricalData)).
			Int("predictions", len(res.Predictions)).
			Msg("query result cached")
	} else {
		metrics.CacheOp("save", "error")
		s.log.Error().Err(outcome.Err).
			Str("key", outcome.Key).
			Msg("cache write failed; result not persisted")
	}
	return submitResult{result: res, outcome: outcome}, nil
}

func flightKey(p models.QueryParams) string {
	return strings.Join([]string{p.Start, p.End, p.Asset, p.TimeIntervals, p.TimeIntervalLength}, "\x00")
}

func outcomeLabel(err error) string {
	var ue *analysis.UpstreamError
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &ue):
		return "status"
	case errors.Is(err, analysis.ErrUpstreamTimeout):
		return "timeout"
	case errors.Is(err, analysis.ErrUpstreamUnavailable):
		return "unavailable"
	case errors.Is(err, analysis.ErrMalformedPayload):
		return "malformed"
	default:
		return "error"
	}
}
