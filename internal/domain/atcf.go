package domain

import (
	"bufio"
	"math"
	"strconv"
	"strings"
	"time"
)

// TechniqueCARQ is the combined-ARQ quality control technique.
const TechniqueCARQ = "CARQ"

// minFields is the number of positional fields a usable line must carry.
const minFields = 11

// stormNameField is the position of the storm name on full-width b-deck lines.
const stormNameField = 27

// ParseLine decodes one ATCF line. The second return value is false for lines
// that do not carry enough fields; such lines are skipped, never fatal.
func ParseLine(line string) (Record, bool) {
	parts := strings.Split(line, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		fields = append(fields, strings.TrimSpace(p))
	}
	if len(fields) < minFields {
		return Record{}, false
	}

	knots := parseIntOrZero(fields[8])
	technique := strings.ToUpper(fields[4])
	tau := parseIntOrZero(fields[5])
	if tau < 0 {
		tau = 0
	}

	point := ForecastPoint{
		TrackPoint: TrackPoint{
			Lat:            ParseLatitude(fields[6]),
			Lon:            ParseLongitude(fields[7]),
			WindSpeedKnots: knots,
			WindSpeedKmh:   KnotsToKmh(float64(knots)),
			PressureMb:     parseIntOrZero(fields[9]),
			Timestamp:      ParseSynopticTime(fields[2]),
			StormType:      strings.ToUpper(fields[10]),
		},
		ForecastHour: tau,
		Technique:    technique,
		Model:        ParseModelCode(technique),
	}

	kind := KindObservation
	if tau > 0 {
		kind = KindForecast
	}

	var name string
	if len(fields) > stormNameField {
		name = strings.ToUpper(fields[stormNameField])
	}

	return Record{
		Kind:      kind,
		Basin:     strings.ToUpper(fields[0]),
		Number:    parseIntOrZero(fields[1]),
		Technique: technique,
		StormName: name,
		Point:     point,
	}, true
}

// ParseFeed decodes every usable line of a feed body, skipping the rest.
func ParseFeed(body string) []Record {
	var records []Record
	sc := bufio.NewScanner(strings.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		if rec, ok := ParseLine(sc.Text()); ok {
			records = append(records, rec)
		}
	}
	return records
}

// ParseLatitude decodes a tenths-of-a-degree field such as "145N" (14.5) or "145S" (-14.5).
func ParseLatitude(field string) float64 {
	return parseCoordinate(field, 'S')
}

// ParseLongitude decodes a tenths-of-a-degree field such as "1205E" (120.5) or "1205W" (-120.5).
func ParseLongitude(field string) float64 {
	return parseCoordinate(field, 'W')
}

func parseCoordinate(field string, negative byte) float64 {
	field = strings.ToUpper(strings.TrimSpace(field))
	if field == "" {
		return 0
	}

	end := 0
	for end < len(field) && (field[end] >= '0' && field[end] <= '9' || end == 0 && field[end] == '-') {
		end++
	}
	tenths, err := strconv.Atoi(field[:end])
	if err != nil {
		return 0
	}

	v := float64(tenths) / 10
	if field[len(field)-1] == negative {
		v = -v
	}
	return v
}

// ParseSynopticTime decodes a YYYYMMDDHH field as a UTC instant. Fields shorter
// than ten characters fall back to the current time.
func ParseSynopticTime(field string) time.Time {
	field = strings.TrimSpace(field)
	if len(field) < 10 {
		return clock.Now().UTC()
	}
	t, err := time.Parse("2006010215", field[:10])
	if err != nil {
		return clock.Now().UTC()
	}
	return t.UTC()
}

// KnotsToKmh converts knots to whole kilometres per hour.
func KnotsToKmh(knots float64) int {
	return int(math.Round(knots * 1.852))
}

func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
