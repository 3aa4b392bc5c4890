package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bestDeck = `WP, 07, 2025090100,   , BEST,   0, 120N, 1290E,  80,  975, TY
WP, 07, 2025090106,   , BEST,   0, 121N, 1285E,  90,  965, TY
WP, 07, 2025090112,   , BEST,   0, 122N, 1280E, 100,  955, TY
`

const aidDeck = `WP, 07, 2025090106, 03, OFCL,  12, 130N, 1270E,  95,  960, TY
WP, 07, 2025090112, 03, OFCL,  12, 122N, 1270E, 100,  955, TY
WP, 07, 2025090112, 03, JTWC,  12, 122N, 1270E, 110,  950, TY
WP, 07, 2025090112, 03, OFCL,  24, 123N, 1255E, 105,  950, TY
WP, 07, 2025090112, 03, JTWC,  24, 125N, 1253E, 115,  945, TY
`

func writeDecks(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	best := filepath.Join(dir, "bwp072025.dat")
	aid := filepath.Join(dir, "awp072025.dat")
	require.NoError(t, os.WriteFile(best, []byte(bestDeck), 0o600))
	require.NoError(t, os.WriteFile(aid, []byte(aidDeck), 0o600))
	return best, aid
}

func TestRun_Report(t *testing.T) {
	best, aid := writeDecks(t)
	var stdout, stderr bytes.Buffer

	code := run([]string{"-best", best, "-forecast", aid, "-now", "2025-09-01T12:00:00Z", "-check"}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())

	var out struct {
		Storm struct {
			ID       string `json:"id"`
			Track    []any  `json:"track"`
			Forecast []any  `json:"forecast"`
		} `json:"storm"`
		Ensemble struct {
			ModelCount int   `json:"model_count"`
			Consensus  []any `json:"consensus"`
		} `json:"ensemble"`
		Impact struct {
			StormID string `json:"storm_id"`
		} `json:"impact"`
		Checks map[string][]string `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))

	assert.Equal(t, "wp072025", out.Storm.ID)
	assert.Len(t, out.Storm.Track, 3)
	assert.Len(t, out.Storm.Forecast, 4)
	assert.Equal(t, 2, out.Ensemble.ModelCount)
	assert.Len(t, out.Ensemble.Consensus, 2)
	assert.Equal(t, "wp072025", out.Impact.StormID)
	assert.Len(t, out.Checks, 3)
	assert.Contains(t, stderr.String(), "PASS")
}

func TestRun_ExplicitID(t *testing.T) {
	best, _ := writeDecks(t)
	renamed := filepath.Join(filepath.Dir(best), "track.txt")
	require.NoError(t, os.Rename(best, renamed))

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 1, run([]string{"-best", renamed}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "invalid storm id")

	stdout.Reset()
	stderr.Reset()
	assert.Equal(t, 0, run([]string{"-best", renamed, "-id", "wp072025"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), `"id": "wp072025"`)
}

func TestRun_Usage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"-best", "x", "-now", "yesterday"}, &stdout, &stderr))
}

func TestRun_MissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"-best", filepath.Join(t.TempDir(), "bwp012025.dat")}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "FATAL")
}

func TestRun_DeckName(t *testing.T) {
	best := filepath.Join(t.TempDir(), "bwp072025.dat")
	deck := "WP, 07, 2025090100,   , BEST,   0, 120N, 1290E,  80,  975, TY,  34, NEQ,   60,   60,   50,   60, 1006,  200,  30,  45,   0,   W,   0,    , 290,   8,     KROSA\n"
	require.NoError(t, os.WriteFile(best, []byte(deck), 0o600))

	var stdout, stderr bytes.Buffer
	require.Equal(t, 0, run([]string{"-best", best}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), `"name": "BEST"`)

	stdout.Reset()
	require.Equal(t, 0, run([]string{"-best", best, "-deck-name"}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), `"name": "KROSA"`)
}
