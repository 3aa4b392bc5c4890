package ensemble

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
)

var issueTime = time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC)

func forecastPoint(model domain.ModelCode, hour int, lat, lon float64, knots, pressure int) domain.ForecastPoint {
	return domain.ForecastPoint{
		TrackPoint: domain.TrackPoint{
			Lat:            lat,
			Lon:            lon,
			WindSpeedKnots: knots,
			WindSpeedKmh:   domain.KnotsToKmh(float64(knots)),
			PressureMb:     pressure,
			Timestamp:      issueTime,
		},
		ForecastHour: hour,
		Model:        model,
		Technique:    string(model),
	}
}

func TestCompute_TwoModelsIdenticalPosition(t *testing.T) {
	res, err := Compute([]domain.ForecastPoint{
		forecastPoint(domain.ModelOFCL, 24, 16.0, 124.0, 80, 970),
		forecastPoint(domain.ModelJTWC, 24, 16.0, 124.0, 90, 960),
	})
	require.NoError(t, err)

	require.Len(t, res.Consensus, 1)
	cp := res.Consensus[0]
	assert.Equal(t, 24, cp.ForecastHour)
	assert.InDelta(t, 85, cp.WindSpeedKnots, 1e-9)
	assert.Equal(t, 157, cp.WindSpeedKmh)
	assert.InDelta(t, 965, cp.PressureMb, 1e-9)
	assert.Equal(t, 2, cp.ModelCount)
	assert.Equal(t, issueTime.Add(24*time.Hour), cp.ValidTime)

	require.Len(t, res.Uncertainty, 1)
	up := res.Uncertainty[0]
	assert.Zero(t, up.PositionUncertaintyKm)
	assert.Equal(t, ConfidenceLow, up.Confidence)
	assert.Equal(t, Bounds{MinLat: 16, MaxLat: 16, MinLon: 124, MaxLon: 124}, up.Bounds)
	assert.Equal(t, 2, res.ModelCount)
}

func TestCompute_UncertaintyRequiresTwoContributors(t *testing.T) {
	res, err := Compute([]domain.ForecastPoint{
		forecastPoint(domain.ModelOFCL, 12, 15.0, 125.0, 80, 970),
		forecastPoint(domain.ModelOFCL, 24, 16.0, 124.0, 85, 965),
		forecastPoint(domain.ModelJTWC, 24, 16.4, 123.6, 90, 960),
		forecastPoint(domain.ModelGFS, 48, 18.0, 121.0, 70, 980),
	})
	require.NoError(t, err)

	require.Len(t, res.Consensus, 3)
	assert.Equal(t, []int{12, 24, 48}, []int{res.Consensus[0].ForecastHour, res.Consensus[1].ForecastHour, res.Consensus[2].ForecastHour})
	assert.Equal(t, 1, res.Consensus[0].ModelCount)
	assert.Equal(t, 2, res.Consensus[1].ModelCount)
	assert.Equal(t, 1, res.Consensus[2].ModelCount)

	require.Len(t, res.Uncertainty, 1)
	assert.Equal(t, 24, res.Uncertainty[0].ForecastHour)
	assert.Greater(t, res.Uncertainty[0].PositionUncertaintyKm, 0.0)
	assert.InDelta(t, 0.2, res.Uncertainty[0].LatStdDev, 1e-9)
	assert.InDelta(t, 0.2, res.Uncertainty[0].LonStdDev, 1e-9)
	assert.Equal(t, Bounds{MinLat: 16.0, MaxLat: 16.4, MinLon: 123.6, MaxLon: 124.0}, res.Uncertainty[0].Bounds)
	assert.Equal(t, 3, res.ModelCount)
}

func TestCompute_PositionUncertaintyKm(t *testing.T) {
	// Longitude spread only, at the equator: 0.5 deg population std dev = 55.5 km.
	res, err := Compute([]domain.ForecastPoint{
		forecastPoint(domain.ModelOFCL, 24, 0, 120.0, 80, 970),
		forecastPoint(domain.ModelJTWC, 24, 0, 121.0, 80, 970),
	})
	require.NoError(t, err)
	require.Len(t, res.Uncertainty, 1)
	assert.InDelta(t, 55.5, res.Uncertainty[0].PositionUncertaintyKm, 1e-6)
}

func TestCompute_ConsensusMeanIsOrderInvariant(t *testing.T) {
	points := []domain.ForecastPoint{
		forecastPoint(domain.ModelOFCL, 24, 16.0, 124.0, 80, 970),
		forecastPoint(domain.ModelJTWC, 24, 16.6, 123.2, 90, 960),
		forecastPoint(domain.ModelECMWF, 24, 15.7, 124.4, 75, 975),
		forecastPoint(domain.ModelGFS, 24, 16.9, 123.9, 95, 955),
		forecastPoint(domain.ModelHWRF, 24, 16.2, 124.1, 100, 950),
	}
	wantLat := (16.0 + 16.6 + 15.7 + 16.9 + 16.2) / 5

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 20; i++ {
		shuffled := append([]domain.ForecastPoint(nil), points...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

		res, err := Compute(shuffled)
		require.NoError(t, err)
		require.Len(t, res.Consensus, 1)
		assert.InDelta(t, wantLat, res.Consensus[0].Lat, 1e-9)
	}
}

func TestCompute_FirstRecordPerModelAndHourWins(t *testing.T) {
	res, err := Compute([]domain.ForecastPoint{
		forecastPoint(domain.ModelOFCL, 24, 16.0, 124.0, 80, 970),
		forecastPoint(domain.ModelOFCL, 24, 16.0, 124.0, 80, 970),
		forecastPoint(domain.ModelJTWC, 24, 16.0, 124.0, 90, 960),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Consensus[0].ModelCount)
	assert.Len(t, res.Models[domain.ModelOFCL], 2)
}

func TestCompute_NoData(t *testing.T) {
	_, err := Compute(nil)
	require.ErrorIs(t, err, domain.ErrNoData)

	_, err = Compute([]domain.ForecastPoint{forecastPoint(domain.ModelOFCL, 0, 14, 125, 80, 970)})
	require.ErrorIs(t, err, domain.ErrNoData)

	assert.Nil(t, ConsensusTrack(nil))
}

func TestConfidenceLevel(t *testing.T) {
	tests := []struct {
		name   string
		models int
		km     float64
		want   Confidence
	}{
		{"very high", 8, 49.9, ConfidenceVeryHigh},
		{"eight models at 50km", 8, 50, ConfidenceHigh},
		{"seven models tight", 7, 10, ConfidenceHigh},
		{"six models 99km", 6, 99, ConfidenceHigh},
		{"six models 100km", 6, 100, ConfidenceMedium},
		{"four models 149km", 4, 149.9, ConfidenceMedium},
		{"four models 150km", 4, 150, ConfidenceLow},
		{"two models zero spread", 2, 0, ConfidenceLow},
		{"two models 199km", 2, 199, ConfidenceLow},
		{"two models 200km", 2, 200, ConfidenceVeryLow},
		{"one model", 1, 0, ConfidenceVeryLow},
		{"many models wide spread", 10, 500, ConfidenceVeryLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConfidenceLevel(tt.models, tt.km))
		})
	}
}

func TestToSpaghetti(t *testing.T) {
	res, err := Compute([]domain.ForecastPoint{
		forecastPoint(domain.ModelJTWC, 12, 15.5, 124.5, 85, 965),
		forecastPoint(domain.ModelJTWC, 12, 15.5, 124.5, 85, 965),
		forecastPoint(domain.ModelJTWC, 24, 16.0, 124.0, 90, 960),
		forecastPoint(domain.ModelOFCL, 24, 16.0, 124.0, 80, 970),
	})
	require.NoError(t, err)

	sp := ToSpaghetti(res)
	require.Len(t, sp.Tracks, 2)
	assert.Equal(t, domain.ModelOFCL, sp.Tracks[0].Model.Code)
	assert.Equal(t, domain.ModelJTWC, sp.Tracks[1].Model.Code)
	assert.Len(t, sp.Tracks[1].Points, 2)
	assert.Equal(t, res.Consensus, sp.Consensus)
	assert.Equal(t, 2, sp.ModelCount)
}
