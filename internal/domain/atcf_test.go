package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testObservationLine = "WP,01,2025090100,03,OFCL,0,145N,1205E,080,990,TY"

func TestParseLine(t *testing.T) {
	t.Run("observation", func(t *testing.T) {
		rec, ok := ParseLine(testObservationLine)
		require.True(t, ok)

		assert.Equal(t, KindObservation, rec.Kind)
		assert.Equal(t, "WP", rec.Basin)
		assert.Equal(t, 1, rec.Number)
		assert.Equal(t, "OFCL", rec.Technique)
		assert.InDelta(t, 14.5, rec.Point.Lat, 1e-9)
		assert.InDelta(t, 120.5, rec.Point.Lon, 1e-9)
		assert.Equal(t, 80, rec.Point.WindSpeedKnots)
		assert.Equal(t, 148, rec.Point.WindSpeedKmh)
		assert.Equal(t, 990, rec.Point.PressureMb)
		assert.Equal(t, 0, rec.Point.ForecastHour)
		assert.Equal(t, "TY", rec.Point.StormType)
		assert.Equal(t, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), rec.Point.Timestamp)
	})

	t.Run("forecast with padded fields", func(t *testing.T) {
		rec, ok := ParseLine("WP, 01, 2025090100, 03, JTWC,  24, 162N, 1231E,  95,  965, TY, 34, NEQ")
		require.True(t, ok)

		assert.Equal(t, KindForecast, rec.Kind)
		assert.Equal(t, ModelJTWC, rec.Point.Model)
		assert.Equal(t, 24, rec.Point.ForecastHour)
		assert.InDelta(t, 16.2, rec.Point.Lat, 1e-9)
		assert.InDelta(t, 123.1, rec.Point.Lon, 1e-9)
		assert.Equal(t, time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC), rec.Point.ValidTime())
	})

	t.Run("CARQ kept as data", func(t *testing.T) {
		rec, ok := ParseLine("WP,01,2025090100,01,CARQ,0,145N,1205E,080,990,TY")
		require.True(t, ok)
		assert.Equal(t, TechniqueCARQ, rec.Technique)
		assert.Equal(t, ModelOther, rec.Point.Model)
	})

	t.Run("too few fields", func(t *testing.T) {
		_, ok := ParseLine("WP,01,2025090100,03,OFCL,0,145N,1205E,080,990")
		assert.False(t, ok)
	})

	t.Run("empty line", func(t *testing.T) {
		_, ok := ParseLine("")
		assert.False(t, ok)
	})

	t.Run("garbage numerics decode to zero", func(t *testing.T) {
		rec, ok := ParseLine("WP,xx,2025090100,03,OFCL,abc,N,E,fast,low,TY")
		require.True(t, ok)
		assert.Equal(t, KindObservation, rec.Kind)
		assert.Zero(t, rec.Number)
		assert.Zero(t, rec.Point.Lat)
		assert.Zero(t, rec.Point.Lon)
		assert.Zero(t, rec.Point.WindSpeedKnots)
		assert.Zero(t, rec.Point.PressureMb)
	})
}

func TestParseFeed_SkipsMalformedLines(t *testing.T) {
	body := testObservationLine + "\n" +
		"garbage\n" +
		"\n" +
		"WP,01,2025090106,03,OFCL,0,150N,1200E,085,985,TY\n"

	records := ParseFeed(body)
	require.Len(t, records, 2)
	assert.InDelta(t, 15.0, records[1].Point.Lat, 1e-9)
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		field string
		lat   float64
		lon   float64
	}{
		{"north", "145N", 14.5, 14.5},
		{"south", "145S", -14.5, 14.5},
		{"east", "1205E", 120.5, 120.5},
		{"west", "1205W", 120.5, -120.5},
		{"empty", "", 0, 0},
		{"no digits", "N", 0, 0},
		{"no hemisphere", "145", 14.5, 14.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.lat, ParseLatitude(tt.field), 1e-9)
			assert.InDelta(t, tt.lon, ParseLongitude(tt.field), 1e-9)
		})
	}
}

func TestParseSynopticTime(t *testing.T) {
	now := time.Date(2025, 9, 3, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(now))
	t.Cleanup(func() { SetClock(nil) })

	assert.Equal(t, time.Date(2025, 9, 1, 18, 0, 0, 0, time.UTC), ParseSynopticTime("2025090118"))
	assert.Equal(t, time.Date(2025, 9, 1, 18, 0, 0, 0, time.UTC), ParseSynopticTime("202509011830"))
	assert.Equal(t, now, ParseSynopticTime("20250901"))
	assert.Equal(t, now, ParseSynopticTime("20259X0118"))
}

func TestKnotsToKmh(t *testing.T) {
	assert.Equal(t, 185, KnotsToKmh(100))
	assert.Equal(t, 148, KnotsToKmh(80))
	assert.Equal(t, 0, KnotsToKmh(0))
	assert.Equal(t, 157, KnotsToKmh(85))
}
