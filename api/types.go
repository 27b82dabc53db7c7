package api

import (
	"time"

	"github.com/vainnor/vatsim-position/types"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type RelativePosition struct {
	From       *types.PositionRecord `json:"from"`
	To         *types.PositionRecord `json:"to"`
	DistanceNM float64               `json:"distance_nm"`
	Bearing    float64               `json:"bearing"`
	Compass    string                `json:"compass"`
}

type DistanceResponse struct {
	DistanceNM float64 `json:"distance_nm"`
}

type BearingResponse struct {
	Bearing float64 `json:"bearing"`
	Compass string  `json:"compass"`
}

const (
	MessagePosition = "position"
	MessageError    = "error"
)

// WatchMessage is pushed to websocket watchers on every refresh.
type WatchMessage struct {
	Type     string                `json:"type"`
	WatchID  string                `json:"watch_id"`
	Callsign string                `json:"callsign"`
	Position *types.PositionRecord `json:"position,omitempty"`
	Error    string                `json:"error,omitempty"`
	Time     time.Time             `json:"time"`
}
