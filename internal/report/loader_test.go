package report

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/stabletide/internal/cache"
	"github.com/guttosm/stabletide/internal/domain/models"
)

const key = "recommendations"

type brokenStore struct{}

func (brokenStore) Save(context.Context, string, any) error { return nil }
func (brokenStore) Load(context.Context, string, any) error { return errors.New("connection reset") }
func (brokenStore) Ping(context.Context) error              { return nil }
func (brokenStore) Close() error                            { return nil }

func newStore(t *testing.T) *cache.FileStore {
	t.Helper()
	s, err := cache.NewFileStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestLoad_MissingFileGivesEmptyState(t *testing.T) {
	view := NewLoader(newStore(t), key).Load(context.Background())
	assert.True(t, view.IsEmpty())
}

func TestLoad_MalformedFileGivesEmptyState(t *testing.T) {
	s := newStore(t)
	path, err := s.Path(key)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	view := NewLoader(s, key).Load(context.Background())
	assert.True(t, view.IsEmpty())
}

func TestLoad_BackendErrorGivesEmptyState(t *testing.T) {
	view := NewLoader(brokenStore{}, key).Load(context.Background())
	assert.True(t, view.IsEmpty())
}

func TestLoad_ZeroBidPriceGivesEmptyState(t *testing.T) {
	s := newStore(t)
	doc := models.CachedQueryResult{
		HistoricalData: []models.LiquidityRecord{{Timestamp: "2024-01-01", BidAskSpread: 1, Volume: 1, BidPrice: 0}},
	}
	require.NoError(t, s.Save(context.Background(), key, doc))

	view := NewLoader(s, key).Load(context.Background())
	assert.True(t, view.IsEmpty())
}

func TestLoad_PopulatedView(t *testing.T) {
	s := newStore(t)
	doc := models.CachedQueryResult{
		Analysis:       json.RawMessage(`"Liquidity is stable."`),
		Report:         &models.LiquidityReport{AssetType: "crypto", TotalRecords: 2, HistoricalRecords: 1, PredictionRecords: 1},
		HistoricalData: []models.LiquidityRecord{{Timestamp: "2024-01-01T00:00:00Z", BidAskSpread: 1, Volume: 100, BidPrice: 50}},
		Predictions:    []models.LiquidityRecord{{Timestamp: "2024-01-02T00:00:00Z", BidAskSpread: 2, Volume: 200, BidPrice: 50}},
		CurrentDay:     "2024-01-31",
	}
	require.NoError(t, s.Save(context.Background(), key, doc))

	view := NewLoader(s, key).Load(context.Background())
	require.False(t, view.IsEmpty())

	body, err := json.Marshal(view)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"analysis": "Liquidity is stable.",
		"report": {
			"asset_type": "crypto", "total_records": 2, "historical_records": 1, "prediction_records": 1,
			"high_risk_count": 0, "moderate_risk_count": 0, "current_warnings": null, "predicted_warnings": null,
			"current_high_risk_count": 0, "predicted_high_risk_count": 0,
			"current_moderate_risk_count": 0, "predicted_moderate_risk_count": 0
		},
		"currentDay": "2024-01-31",
		"historicalSpreadData": [2],
		"historicalVolumeData": [100],
		"predictedSpreadData": [2, 4],
		"predictedVolumeData": [100, 200],
		"xAxis": ["2024-01-01", "2024-01-02"]
	}`, string(body))
}

func TestBuild_NoCurrentDay(t *testing.T) {
	v := Build(models.CachedQueryResult{}, models.AlignedSeries{XAxis: []string{}})
	assert.Nil(t, v.CurrentDay)
	assert.NotNil(t, v.XAxis)
}
