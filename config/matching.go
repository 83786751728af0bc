package config

import (
	"os"
	"strconv"
)

type MatchingConfig struct {
	// DistanceThreshold is the maximum normalized edit distance (0.0-1.0) a
	// catalog entry may have from the query key and still count as a match.
	// Entries above it are discarded before confidence conversion.
	DistanceThreshold float64 `env:"MATCH_DISTANCE_THRESHOLD" envDefault:"0.4"`
	// AutoMatchConfidence and ReviewConfidence split match results into
	// "matched", "needs_review" and "unmatched" buckets.
	AutoMatchConfidence int `env:"MATCH_AUTO_CONFIDENCE" envDefault:"85"`
	ReviewConfidence    int `env:"MATCH_REVIEW_CONFIDENCE" envDefault:"60"`
}

var Matching = loadMatchingConfig()

func loadMatchingConfig() MatchingConfig {
	cfg := MatchingConfig{
		DistanceThreshold:   0.4,
		AutoMatchConfidence: 85,
		ReviewConfidence:    60,
	}

	if v := os.Getenv("MATCH_DISTANCE_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 && f <= 1 {
			cfg.DistanceThreshold = f
		}
	}

	if v := os.Getenv("MATCH_AUTO_CONFIDENCE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.AutoMatchConfidence = i
		}
	}

	if v := os.Getenv("MATCH_REVIEW_CONFIDENCE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			cfg.ReviewConfidence = i
		}
	}

	return cfg
}
