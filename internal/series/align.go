// Package series turns historical and predicted liquidity records into
// chart-ready series sharing one label axis.
package series

import (
	"errors"
	"fmt"

	"github.com/guttosm/stabletide/internal/domain/models"
)

// labelLen is the length of the YYYY-MM-DD prefix used as axis label.
const labelLen = 10

// ErrNonPositiveBidPrice is returned for records whose bid_price is zero or
// negative; the spread percentage is undefined for them.
var ErrNonPositiveBidPrice = errors.New("bid_price must be greater than zero")

// InvalidRecordError locates the record that could not be aligned.
type InvalidRecordError struct {
	Series string // "historical" or "predictions"
	Index  int
	Err    error
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Series, e.Index, e.Err)
}

func (e *InvalidRecordError) Unwrap() error { return e.Err }

// SpreadPercent returns bid_ask_spread as a percentage of bid_price.
func SpreadPercent(r models.LiquidityRecord) float64 {
	return (r.BidAskSpread / r.BidPrice) * 100
}

// Label returns the date part of a record timestamp.
func Label(timestamp string) string {
	if len(timestamp) < labelLen {
		return timestamp
	}
	return timestamp[:labelLen]
}

// Align builds the chart series. Both inputs must already be ascending by
// timestamp, with predictions following history; no sorting is done.
//
// Layout for h historical and p predicted records:
//   - XAxis has h+p labels.
//   - HistoricalSpread/HistoricalVolume have h values.
//   - PredictedSpread/PredictedVolume have h+p entries: nil for indices
//     [0, h-1), the last historical value at h-1 (the seam), then the
//     predictions. With no history there is no seam.
func Align(historical, predictions []models.LiquidityRecord) (models.AlignedSeries, error) {
	if err := check("historical", historical); err != nil {
		return models.AlignedSeries{}, err
	}
	if err := check("predictions", predictions); err != nil {
		return models.AlignedSeries{}, err
	}

	h, total := len(historical), len(historical)+len(predictions)
	out := models.AlignedSeries{
		HistoricalSpread: make(models.Series, 0, h),
		HistoricalVolume: make(models.Series, 0, h),
		PredictedSpread:  make(models.Series, 0, total),
		PredictedVolume:  make(models.Series, 0, total),
		XAxis:            make([]string, 0, total),
	}

	for _, r := range historical {
		out.HistoricalSpread = append(out.HistoricalSpread, value(SpreadPercent(r)))
		out.HistoricalVolume = append(out.HistoricalVolume, value(r.Volume))
		out.PredictedSpread = append(out.PredictedSpread, nil)
		out.PredictedVolume = append(out.PredictedVolume, nil)
		out.XAxis = append(out.XAxis, Label(r.Timestamp))
	}

	// Seam: the predicted line starts from the last observed point.
	if last := h - 1; last >= 0 {
		out.PredictedSpread[last] = value(*out.HistoricalSpread[last])
		out.PredictedVolume[last] = value(*out.HistoricalVolume[last])
	}

	for _, r := range predictions {
		out.PredictedSpread = append(out.PredictedSpread, value(SpreadPercent(r)))
		out.PredictedVolume = append(out.PredictedVolume, value(r.Volume))
		out.XAxis = append(out.XAxis, Label(r.Timestamp))
	}

	return out, nil
}

func check(name string, records []models.LiquidityRecord) error {
	for i, r := range records {
		if r.BidPrice <= 0 {
			return &InvalidRecordError{Series: name, Index: i, Err: ErrNonPositiveBidPrice}
		}
	}
	return nil
}

func value(v float64) *float64 { return &v }
