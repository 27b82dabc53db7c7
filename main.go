package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/spf13/pflag"
	"github.com/vainnor/vatsim-position/api"
	"github.com/vainnor/vatsim-position/config"
	"github.com/vainnor/vatsim-position/feed"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, pflag.ErrHelp) {
		return
	}
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	client := feed.NewClient(feed.WithURL(cfg.FeedURL))
	router := api.NewRouter(client, cfg.WatchInterval)

	log.Printf("Using VATSIM feed %s", cfg.FeedURL)
	log.Printf("Starting API server on %s", cfg.ListenAddr)
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		log.Fatalf("Failed to start API server: %v", err)
	}
}
