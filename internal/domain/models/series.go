package models

// Series is a chart series where nil marks "no value at this index".
type Series []*float64

// AlignedSeries is the chart input derived from one CachedQueryResult.
//
// The historical series cover indices [0, len(historical)); the predicted
// series cover the whole axis and hold nil before the seam, which is the last
// historical index (shared by both series).
type AlignedSeries struct {
	HistoricalSpread Series
	HistoricalVolume Series
	PredictedSpread  Series
	PredictedVolume  Series
	XAxis            []string
}

// QueryParams are the five fields of a recommendations query. Values are
// forwarded to the analysis service as-is.
type QueryParams struct {
	Start              string `json:"start"`
	End                string `json:"end"`
	Asset              string `json:"asset"`
	TimeIntervals      string `json:"time_intervals"`
	TimeIntervalLength string `json:"time_interval_length"`
}
