// Package report reads the latest cached query result and turns it into the
// view-model consumed by the presentation layer.
package report

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/guttosm/stabletide/internal/cache"
	"github.com/guttosm/stabletide/internal/domain/dto"
	"github.com/guttosm/stabletide/internal/domain/models"
	"github.com/guttosm/stabletide/internal/logger"
	"github.com/guttosm/stabletide/internal/metrics"
	"github.com/guttosm/stabletide/internal/series"
)

// Loader builds report views from the document stored under one cache key.
type Loader struct {
	store cache.Store
	key   string
	log   zerolog.Logger
}

func NewLoader(store cache.Store, key string) *Loader {
	return &Loader{store: store, key: key, log: logger.Component("report")}
}

// Load never fails: any read or alignment problem yields the empty state.
func (l *Loader) Load(ctx context.Context) dto.ReportView {
	var doc models.CachedQueryResult
	if err := l.store.Load(ctx, l.key, &doc); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			metrics.CacheOp("load", "not_found")
			l.log.Info().Str("key", l.key).Msg("no cached result yet")
		} else {
			metrics.CacheOp("load", "error")
			l.log.Warn().Err(err).Str("key", l.key).Msg("cached result unreadable")
		}
		return empty()
	}
	metrics.CacheOp("load", "ok")

	aligned, err := series.Align(doc.HistoricalData, doc.Predictions)
	if err != nil {
		l.log.Warn().Err(err).Str("key", l.key).Msg("cached result cannot be charted")
		return empty()
	}

	view := Build(doc, aligned)
	metrics.ReportRender("populated")
	return view
}

// Build assembles the view-model from a cached document and its aligned series.
func Build(doc models.CachedQueryResult, aligned models.AlignedSeries) dto.ReportView {
	v := dto.ReportView{
		Analysis:             doc.Analysis,
		Report:               doc.Report,
		HistoricalSpreadData: aligned.HistoricalSpread,
		HistoricalVolumeData: aligned.HistoricalVolume,
		PredictedSpreadData:  aligned.PredictedSpread,
		PredictedVolumeData:  aligned.PredictedVolume,
		XAxis:                aligned.XAxis,
	}
	if doc.CurrentDay != "" {
		day := doc.CurrentDay
		v.CurrentDay = &day
	}
	return v
}

func empty() dto.ReportView {
	metrics.ReportRender("empty")
	return dto.ReportView{}
}
