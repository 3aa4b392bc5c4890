package domain

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidStormID is returned for identifiers that do not match bbNNYYYY.
var ErrInvalidStormID = errors.New("invalid storm id")

// stormIDRe matches basin + two-digit sequence + four-digit year, e.g. "wp012025".
var stormIDRe = regexp.MustCompile(`^([a-z]{2})(\d{2})(\d{4})$`)

// StormID is the deterministic identity of a storm: basin, sequence number, year.
type StormID struct {
	Basin  string
	Number int
	Year   int
}

// NewStormID normalizes the basin to lower case.
func NewStormID(basin string, number, year int) StormID {
	return StormID{Basin: strings.ToLower(basin), Number: number, Year: year}
}

// ParseStormID decodes an id such as "wp012025".
func ParseStormID(s string) (StormID, error) {
	m := stormIDRe.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if len(m) != 4 {
		return StormID{}, fmt.Errorf("%w: %q", ErrInvalidStormID, s)
	}
	number, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if number < 1 {
		return StormID{}, fmt.Errorf("%w: %q", ErrInvalidStormID, s)
	}
	return StormID{Basin: m[1], Number: number, Year: year}, nil
}

func (id StormID) String() string {
	return fmt.Sprintf("%s%02d%04d", id.Basin, id.Number, id.Year)
}

// Label is the display name used when a feed never names its storm, e.g. "WP01".
func (id StormID) Label() string {
	return fmt.Sprintf("%s%02d", strings.ToUpper(id.Basin), id.Number)
}

// BestTrackFile is the b-deck file name, e.g. "bwp012025.dat".
func (id StormID) BestTrackFile() string {
	return "b" + id.String() + ".dat"
}

// ForecastFile is the a-deck file name, e.g. "awp012025.dat".
func (id StormID) ForecastFile() string {
	return "a" + id.String() + ".dat"
}
