package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/vainnor/vatsim-position/feed"
)

const (
	defaultListenAddr    = ":8080"
	defaultWatchInterval = 15 * time.Second
)

type Config struct {
	ListenAddr    string
	FeedURL       string
	WatchInterval time.Duration
}

// Load reads .env, then the environment, then command line flags. Later
// sources override earlier ones.
func Load(args []string) (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	return parse(args, os.Getenv)
}

func parse(args []string, getenv func(string) string) (Config, error) {
	cfg := Config{
		ListenAddr:    defaultListenAddr,
		FeedURL:       feed.DefaultURL,
		WatchInterval: defaultWatchInterval,
	}

	if addr := getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if url := getenv("FEED_URL"); url != "" {
		cfg.FeedURL = url
	}
	if intervalStr := getenv("WATCH_INTERVAL"); intervalStr != "" {
		interval, err := strconv.Atoi(intervalStr)
		if err != nil || interval <= 0 {
			return cfg, fmt.Errorf("invalid WATCH_INTERVAL %q: must be a positive number of seconds", intervalStr)
		}
		cfg.WatchInterval = time.Duration(interval) * time.Second
	}

	fs := pflag.NewFlagSet("vatsim-position", pflag.ContinueOnError)
	fs.StringVarP(&cfg.ListenAddr, "addr", "a", cfg.ListenAddr, "address for the HTTP API to listen on")
	fs.StringVarP(&cfg.FeedURL, "feed-url", "f", cfg.FeedURL, "VATSIM v3 data feed URL")
	fs.DurationVarP(&cfg.WatchInterval, "watch-interval", "w", cfg.WatchInterval, "default refresh interval for position watches")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}

	if cfg.WatchInterval <= 0 {
		return cfg, fmt.Errorf("watch interval must be positive, got %v", cfg.WatchInterval)
	}

	return cfg, nil
}
