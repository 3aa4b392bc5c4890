// Command atcfreport parses local ATCF decks and prints the storm, its
// ensemble, and its impact assessment as JSON. With -check it also runs
// integrity checks over the derived data and exits non-zero on failure.
//
// Usage:
//
//	go run ./cmd/atcfreport \
//	  -best data/bwp072025.dat \
//	  -forecast data/awp072025.dat \
//	  -now 2025-09-03T00:00:00Z \
//	  -check
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/cyclone-track-service/internal/domain"
	"github.com/couchcryptid/cyclone-track-service/internal/ensemble"
	"github.com/couchcryptid/cyclone-track-service/internal/impact"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// report is the document printed to stdout.
type report struct {
	Storm    domain.Storm        `json:"storm"`
	Ensemble *ensemble.Result    `json:"ensemble,omitempty"`
	Impact   impact.StormImpact  `json:"impact"`
	Checks   map[string][]string `json:"checks,omitempty"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("atcfreport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	bestPath := fs.String("best", "", "path to a best-track (b-deck) file")
	forecastPath := fs.String("forecast", "", "path to an aid (a-deck) file")
	idFlag := fs.String("id", "", "storm id such as wp072025 (default: derived from the -best file name)")
	nowFlag := fs.String("now", "", "RFC3339 instant used as the current time")
	deckName := fs.Bool("deck-name", false, "name the storm from the best-track name column when present")
	check := fs.Bool("check", false, "run integrity checks and exit non-zero on failure")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *bestPath == "" {
		fs.Usage()
		return 2
	}

	clock := clockwork.NewRealClock()
	if *nowFlag != "" {
		now, err := time.Parse(time.RFC3339, *nowFlag)
		if err != nil {
			fmt.Fprintf(stderr, "invalid -now: %v\n", err)
			return 2
		}
		clock = clockwork.NewFakeClockAt(now)
	}
	domain.SetClock(clock)
	defer domain.SetClock(nil)

	id, err := stormID(*idFlag, *bestPath)
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: %v\n", err)
		return 1
	}

	storm, err := loadStorm(id, *bestPath, domain.BuildOptions{PreferDeckName: *deckName})
	if err != nil {
		fmt.Fprintf(stderr, "FATAL: %v\n", err)
		return 1
	}

	out := report{Storm: storm}
	if *forecastPath != "" {
		points, err := loadForecast(*forecastPath)
		if err != nil {
			fmt.Fprintf(stderr, "FATAL: %v\n", err)
			return 1
		}
		storm.Forecast = points
		out.Storm = storm

		res, err := ensemble.Compute(points)
		switch {
		case err == nil:
			out.Ensemble = &res
		case errors.Is(err, domain.ErrNoData):
			fmt.Fprintln(stderr, "no forecast points in the latest cycle")
		default:
			fmt.Fprintf(stderr, "FATAL: ensemble: %v\n", err)
			return 1
		}
	}

	out.Impact = impact.NewPredictor(clock, false).StormImpact(storm)

	code := 0
	if *check {
		phases := []*phase{
			checkTrack(storm),
			checkEnsemble(out.Ensemble),
			checkImpact(out.Impact),
		}
		out.Checks = make(map[string][]string, len(phases))
		for _, p := range phases {
			out.Checks[p.name] = p.errors
			status := "PASS"
			if !p.passed() {
				status = fmt.Sprintf("FAIL (%d errors)", len(p.errors))
				code = 1
			}
			fmt.Fprintf(stderr, "  %-32s %s\n", p.name, status)
		}
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		fmt.Fprintf(stderr, "FATAL: encode report: %v\n", err)
		return 1
	}
	return code
}

// stormID takes the explicit id or derives one from a b-deck file name.
func stormID(explicit, bestPath string) (domain.StormID, error) {
	if explicit != "" {
		return domain.ParseStormID(explicit)
	}
	base := strings.TrimSuffix(filepath.Base(bestPath), filepath.Ext(bestPath))
	return domain.ParseStormID(strings.TrimPrefix(strings.ToLower(base), "b"))
}

func loadStorm(id domain.StormID, path string, opts domain.BuildOptions) (domain.Storm, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Storm{}, err
	}
	storm, ok := domain.BuildStormWith(id, domain.ParseFeed(string(data)), opts)
	if !ok {
		return domain.Storm{}, fmt.Errorf("%s: no observations", path)
	}
	return storm, nil
}

func loadForecast(path string) ([]domain.ForecastPoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	points := domain.LatestCycle(domain.ForecastPoints(domain.ParseFeed(string(data))))
	domain.SortForecast(points)
	return points, nil
}
