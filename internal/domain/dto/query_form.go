package dto

import (
	"strings"

	"github.com/guttosm/stabletide/internal/domain/models"
)

// QueryForm binds the POST /query submission (form body or query string).
// All five fields are required.
type QueryForm struct {
	Start              string `form:"start" binding:"required" example:"2024-01-01"`
	End                string `form:"end" binding:"required" example:"2024-01-31"`
	Asset              string `form:"asset" binding:"required" example:"crypto"`
	TimeIntervals      string `form:"time_intervals" binding:"required" example:"7"`
	TimeIntervalLength string `form:"time_interval_length" binding:"required" example:"86400"`
}

// formFieldNames maps struct field names to their form names for error reporting.
var formFieldNames = map[string]string{
	"Start":              "start",
	"End":                "end",
	"Asset":              "asset",
	"TimeIntervals":      "time_intervals",
	"TimeIntervalLength": "time_interval_length",
}

// FormFieldName returns the form name of a QueryForm struct field, or the
// lower-cased field name when unknown.
func FormFieldName(structField string) string {
	if n, ok := formFieldNames[structField]; ok {
		return n
	}
	return strings.ToLower(structField)
}

// Params converts the form into query parameters.
func (f QueryForm) Params() models.QueryParams {
	return models.QueryParams{
		Start:              f.Start,
		End:                f.End,
		Asset:              f.Asset,
		TimeIntervals:      f.TimeIntervals,
		TimeIntervalLength: f.TimeIntervalLength,
	}
}
