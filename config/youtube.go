package config

import (
	"os"
	"strconv"
)

type YouTubeConfig struct {
	APIKey   string `env:"YOUTUBE_API_KEY"`
	PageSize int    `env:"YOUTUBE_PAGE_SIZE" envDefault:"50"`
	MaxPages int    `env:"YOUTUBE_MAX_PAGES" envDefault:"20"`
}

var YouTube = loadYouTubeConfig()

func loadYouTubeConfig() YouTubeConfig {
	cfg := YouTubeConfig{
		PageSize: 50,
		MaxPages: 20,
	}

	cfg.APIKey = os.Getenv("YOUTUBE_API_KEY")

	if v := os.Getenv("YOUTUBE_PAGE_SIZE"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 && i <= 50 {
			cfg.PageSize = i
		}
	}

	if v := os.Getenv("YOUTUBE_MAX_PAGES"); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i > 0 {
			cfg.MaxPages = i
		}
	}

	return cfg
}
