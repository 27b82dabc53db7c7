package api

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

// MinWatchInterval is the shortest refresh a watcher may request. The feed is
// regenerated every 15 seconds; polling faster only re-downloads the same snapshot.
const MinWatchInterval = 5 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WatchPilotPosition upgrades to a websocket and pushes a fresh lookup
// immediately and then once per interval until the client goes away.
// Requested intervals below minInterval are raised to it.
func WatchPilotPosition(source PositionSource, defaultInterval, minInterval time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callsign := mux.Vars(r)["callsign"]

		interval := defaultInterval
		if raw := r.URL.Query().Get("interval"); raw != "" {
			d, err := time.ParseDuration(raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid interval: "+raw)
				return
			}
			interval = d
		}
		if interval < minInterval {
			interval = minInterval
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("Error upgrading watch for %s: %v", callsign, err)
			return
		}
		defer conn.Close()

		watchID := uuid.NewString()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		// Drain client frames so close messages are processed.
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.NextReader(); err != nil {
					return
				}
			}
		}()

		log.Printf("Watch %s started for %s every %v", watchID, callsign, interval)
		defer log.Printf("Watch %s for %s ended", watchID, callsign)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			if err := pushPosition(ctx, conn, source, watchID, callsign); err != nil {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}
}

func pushPosition(ctx context.Context, conn *websocket.Conn, source PositionSource, watchID, callsign string) error {
	msg := WatchMessage{
		Type:     MessagePosition,
		WatchID:  watchID,
		Callsign: callsign,
	}

	pos, err := source.Lookup(ctx, callsign)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err != nil {
		msg.Type = MessageError
		msg.Error = err.Error()
	} else {
		msg.Position = pos
	}
	msg.Time = time.Now().UTC()

	if err := conn.WriteJSON(msg); err != nil {
		log.Printf("Error writing watch %s update: %v", watchID, err)
		return err
	}
	return nil
}
