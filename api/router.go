package api

import (
	"context"
	"time"

	"github.com/gorilla/mux"
	"github.com/vainnor/vatsim-position/types"
)

// PositionSource is implemented by feed.Client.
type PositionSource interface {
	Lookup(ctx context.Context, callsign string) (*types.PositionRecord, error)
	Stats() types.LookupStats
}

// NewRouter creates and configures a new router with all API endpoints
func NewRouter(source PositionSource, watchInterval time.Duration) *mux.Router {
	return newRouter(source, watchInterval, MinWatchInterval)
}

func newRouter(source PositionSource, watchInterval, minWatchInterval time.Duration) *mux.Router {
	r := mux.NewRouter()
	r.Use(RequestLogger)

	api := r.PathPrefix("/api").Subrouter()

	// Pilot endpoints
	api.HandleFunc("/pilots/{callsign}/position", GetPilotPosition(source)).Methods("GET")
	api.HandleFunc("/pilots/{from}/to/{to}", GetRelativePosition(source)).Methods("GET")
	api.HandleFunc("/pilots/{callsign}/watch", WatchPilotPosition(source, watchInterval, minWatchInterval)).Methods("GET")

	// Geodesic helpers
	api.HandleFunc("/geo/distance", GetDistance).Methods("GET")
	api.HandleFunc("/geo/bearing", GetBearing).Methods("GET")

	api.HandleFunc("/feed/stats", GetFeedStats(source)).Methods("GET")

	return r
}
