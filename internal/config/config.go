package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// DefaultATCFBaseURL serves the JTWC best-track and aid decks.
const DefaultATCFBaseURL = "https://www.ssd.noaa.gov/PS/TROP/DATA/ATCF/JTWC"

var basinPattern = regexp.MustCompile(`^[a-z]{2}$`)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// ATCF feed configuration.
	ATCFBaseURL        string
	ATCFBasin          string
	ATCFMaxSequence    int
	ATCFTimeout        time.Duration
	ATCFPreferDeckName bool

	// Tracker configuration.
	FetchConcurrency        int
	CacheTTL                time.Duration
	ActiveWindow            time.Duration
	LandfallProjectPosition bool

	// Snapshot publishing.
	KafkaBrokers        []string
	KafkaSnapshotTopic  string
	KafkaEnabled        bool
	KafkaPublishTimeout time.Duration
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	atcfTimeout, err := parsePositiveDuration("ATCF_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := parsePositiveDuration("CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	activeWindow, err := parsePositiveDuration("ACTIVE_WINDOW", "168h")
	if err != nil {
		return nil, err
	}
	publishTimeout, err := parsePositiveDuration("KAFKA_PUBLISH_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	maxSequence, err := parseIntInRange("ATCF_MAX_SEQUENCE", 30, 1, 99)
	if err != nil {
		return nil, err
	}
	concurrency, err := parseIntInRange("FETCH_CONCURRENCY", 30, 1, 100)
	if err != nil {
		return nil, err
	}

	project, err := parseBool("LANDFALL_PROJECT_POSITION", false)
	if err != nil {
		return nil, err
	}

	deckName, err := parseBool("ATCF_PREFER_DECK_NAME", false)
	if err != nil {
		return nil, err
	}

	var brokers []string
	if raw := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); raw != "" {
		brokers = sharedcfg.ParseBrokers(raw)
	}
	kafkaEnabled := len(brokers) > 0
	if v := os.Getenv("KAFKA_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ATCFBaseURL:        strings.TrimRight(sharedcfg.EnvOrDefault("ATCF_BASE_URL", DefaultATCFBaseURL), "/"),
		ATCFBasin:          strings.ToLower(sharedcfg.EnvOrDefault("ATCF_BASIN", "wp")),
		ATCFMaxSequence:    maxSequence,
		ATCFTimeout:        atcfTimeout,
		ATCFPreferDeckName: deckName,

		FetchConcurrency:        concurrency,
		CacheTTL:                cacheTTL,
		ActiveWindow:            activeWindow,
		LandfallProjectPosition: project,

		KafkaBrokers:        brokers,
		KafkaSnapshotTopic:  sharedcfg.EnvOrDefault("KAFKA_SNAPSHOT_TOPIC", "cyclone-snapshots"),
		KafkaEnabled:        kafkaEnabled,
		KafkaPublishTimeout: publishTimeout,
	}

	if cfg.ATCFBaseURL == "" {
		return nil, errors.New("ATCF_BASE_URL is required")
	}
	if !basinPattern.MatchString(cfg.ATCFBasin) {
		return nil, fmt.Errorf("invalid ATCF_BASIN %q: want a two-letter basin code", cfg.ATCFBasin)
	}
	if cfg.KafkaEnabled && len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is not set")
	}
	if cfg.KafkaEnabled && cfg.KafkaSnapshotTopic == "" {
		return nil, errors.New("KAFKA_SNAPSHOT_TOPIC is required")
	}

	return cfg, nil
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(sharedcfg.EnvOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseIntInRange(key string, def, lo, hi int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < lo || n > hi {
		return 0, fmt.Errorf("invalid %s: must be between %d and %d", key, lo, hi)
	}
	return n, nil
}

func parseBool(key string, def bool) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s", key)
	}
	return b, nil
}
