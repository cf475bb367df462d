package models

import "encoding/json"

// LiquidityRecord is one observation or prediction at a timestamp, as produced
// by the analysis service.
//
// Fields:
//   - Timestamp: ISO-8601 date-time; only the leading YYYY-MM-DD is used for labels.
//   - BidAskSpread: absolute spread, non-negative.
//   - Volume: traded volume, non-negative.
//   - BidPrice: must be > 0, it divides the spread.
//   - AssetType: optional, echoed by the backend.
//
// swagger:model LiquidityRecord
type LiquidityRecord struct {
	AssetType    string  `json:"asset_type,omitempty" example:"crypto"`
	Timestamp    string  `json:"timestamp" example:"2024-01-01T00:00:00Z"`
	BidAskSpread float64 `json:"bid_ask_spread" example:"1.5"`
	Volume       float64 `json:"volume" example:"1200"`
	BidPrice     float64 `json:"bid_price" example:"50"`
}

// LiquidityReport is the risk summary computed by the backend for one query.
// TotalRecords == HistoricalRecords + PredictionRecords.
//
// swagger:model LiquidityReport
type LiquidityReport struct {
	AssetType                  string   `json:"asset_type"`
	TotalRecords               int      `json:"total_records"`
	HistoricalRecords          int      `json:"historical_records"`
	PredictionRecords          int      `json:"prediction_records"`
	HighRiskCount              int      `json:"high_risk_count"`
	ModerateRiskCount          int      `json:"moderate_risk_count"`
	CurrentWarnings            []string `json:"current_warnings"`
	PredictedWarnings          []string `json:"predicted_warnings"`
	CurrentHighRiskCount       int      `json:"current_high_risk_count"`
	PredictedHighRiskCount     int      `json:"predicted_high_risk_count"`
	CurrentModerateRiskCount   int      `json:"current_moderate_risk_count"`
	PredictedModerateRiskCount int      `json:"predicted_moderate_risk_count"`
}

// CachedQueryResult is the document persisted after a successful query.
//
// HistoricalData and Predictions are each ascending by timestamp, and every
// prediction is at or after the last historical record. CurrentDay is the
// "end" parameter of the query that produced the document.
//
// Raw, when set, is the document exactly as the analysis service sent it plus
// current_day. It is what gets persisted, so fields the typed view does not
// declare are kept.
type CachedQueryResult struct {
	Analysis       json.RawMessage   `json:"analysis" swaggertype:"string"`
	Report         *LiquidityReport  `json:"report"`
	HistoricalData []LiquidityRecord `json:"historical_data"`
	Predictions    []LiquidityRecord `json:"predictions"`
	CurrentDay     string            `json:"current_day,omitempty"`

	Raw json.RawMessage `json:"-" swaggerignore:"true"`
}

// Document returns the value to persist: Raw when present, r otherwise.
func (r CachedQueryResult) Document() any {
	if len(r.Raw) > 0 {
		return r.Raw
	}
	return r
}
