package dto

import (
	"encoding/json"

	"github.com/guttosm/stabletide/internal/domain/models"
)

// ReportView is the view-model handed to the presentation layer.
//
// The zero value is the empty state: every field serializes as null. It is
// returned whenever no usable cached result exists.
type ReportView struct {
	Analysis             json.RawMessage         `json:"analysis" swaggertype:"string"`
	Report               *models.LiquidityReport `json:"report"`
	CurrentDay           *string                 `json:"currentDay" example:"2024-01-31"`
	HistoricalSpreadData models.Series           `json:"historicalSpreadData" swaggertype:"array,number"`
	HistoricalVolumeData models.Series           `json:"historicalVolumeData" swaggertype:"array,number"`
	PredictedSpreadData  models.Series           `json:"predictedSpreadData" swaggertype:"array,number"`
	PredictedVolumeData  models.Series           `json:"predictedVolumeData" swaggertype:"array,number"`
	XAxis                []string                `json:"xAxis"`
}

// IsEmpty reports whether v is the empty state.
func (v ReportView) IsEmpty() bool {
	return v.Analysis == nil && v.Report == nil && v.CurrentDay == nil &&
		v.HistoricalSpreadData == nil && v.HistoricalVolumeData == nil &&
		v.PredictedSpreadData == nil && v.PredictedVolumeData == nil && v.XAxis == nil
}
