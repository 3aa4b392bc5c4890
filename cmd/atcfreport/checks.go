package main

import (
	"fmt"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
	"github.com/couchcryptid/cyclone-track-service/internal/ensemble"
	"github.com/couchcryptid/cyclone-track-service/internal/impact"
)

// phase tracks pass/fail for a group of checks.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func checkTrack(storm domain.Storm) *phase {
	p := &phase{name: "track"}

	if len(storm.Track) == 0 {
		p.errorf("empty track")
		return p
	}
	for i := 1; i < len(storm.Track); i++ {
		if storm.Track[i].Timestamp.Before(storm.Track[i-1].Timestamp) {
			p.errorf("track point %d at %s precedes point %d", i, storm.Track[i].Timestamp, i-1)
		}
	}
	if storm.CurrentPosition != storm.Track[len(storm.Track)-1] {
		p.errorf("current position is not the latest track point")
	}
	for i, fp := range storm.Forecast {
		if fp.ForecastHour < 0 {
			p.errorf("forecast point %d has negative hour %d", i, fp.ForecastHour)
		}
	}
	return p
}

func checkEnsemble(res *ensemble.Result) *phase {
	p := &phase{name: "ensemble"}
	if res == nil {
		return p
	}

	counts := make(map[int]int, len(res.Consensus))
	prev := -1
	for _, c := range res.Consensus {
		if c.ForecastHour <= prev {
			p.errorf("consensus hour %d out of order", c.ForecastHour)
		}
		prev = c.ForecastHour
		counts[c.ForecastHour] = c.ModelCount
		if c.ModelCount < 1 || c.ModelCount > res.ModelCount {
			p.errorf("hour %d: %d contributors of %d models", c.ForecastHour, c.ModelCount, res.ModelCount)
		}
	}
	for _, u := range res.Uncertainty {
		if counts[u.ForecastHour] < 2 {
			p.errorf("hour %d: uncertainty reported with %d contributors", u.ForecastHour, counts[u.ForecastHour])
		}
		if u.Confidence != ensemble.ConfidenceLevel(counts[u.ForecastHour], u.PositionUncertaintyKm) {
			p.errorf("hour %d: confidence %s does not match its inputs", u.ForecastHour, u.Confidence)
		}
	}
	return p
}

func checkImpact(res impact.StormImpact) *phase {
	p := &phase{name: "impact"}

	seen := make(map[string]bool, len(res.AffectedAreas.Cities))
	var total int64
	for _, c := range res.AffectedAreas.Cities {
		if seen[c.City] {
			p.errorf("city %s counted more than once", c.City)
		}
		seen[c.City] = true
		total += c.Population
	}
	if total != res.AffectedAreas.TotalPopulationAtRisk {
		p.errorf("population at risk %d, per-city sum %d", res.AffectedAreas.TotalPopulationAtRisk, total)
	}
	if res.Landfall.WillMakeLandfall && res.Landfall.Location == nil {
		p.errorf("landfall predicted without a location")
	}
	return p
}
