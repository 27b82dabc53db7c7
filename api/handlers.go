package api

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/vainnor/vatsim-position/feed"
	"github.com/vainnor/vatsim-position/geo"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding %T response: %v", v, err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// lookupStatus maps a lookup failure onto an HTTP status. Anything that is
// not a missing callsign is the upstream feed's fault.
func lookupStatus(err error) int {
	if feed.IsNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

// GetPilotPosition returns the live position of a single callsign
func GetPilotPosition(source PositionSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callsign := mux.Vars(r)["callsign"]

		pos, err := source.Lookup(r.Context(), callsign)
		if err != nil {
			writeError(w, lookupStatus(err), err.Error())
			return
		}

		writeJSON(w, http.StatusOK, pos)
	}
}

// GetRelativePosition looks up two callsigns and reports the distance and
// initial bearing from the first to the second.
func GetRelativePosition(source PositionSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)

		from, err := source.Lookup(r.Context(), vars["from"])
		if err != nil {
			writeError(w, lookupStatus(err), err.Error())
			return
		}
		to, err := source.Lookup(r.Context(), vars["to"])
		if err != nil {
			writeError(w, lookupStatus(err), err.Error())
			return
		}

		bearing := geo.Bearing(from.Lat, from.Lon, to.Lat, to.Lon)
		writeJSON(w, http.StatusOK, RelativePosition{
			From:       from,
			To:         to,
			DistanceNM: geo.DistanceNM(from.Lat, from.Lon, to.Lat, to.Lon),
			Bearing:    bearing,
			Compass:    geo.CompassPoint(bearing),
		})
	}
}

func GetDistance(w http.ResponseWriter, r *http.Request) {
	c, err := parseCoordinates(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, DistanceResponse{
		DistanceNM: geo.DistanceNM(c[0], c[1], c[2], c[3]),
	})
}

func GetBearing(w http.ResponseWriter, r *http.Request) {
	c, err := parseCoordinates(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bearing := geo.Bearing(c[0], c[1], c[2], c[3])
	writeJSON(w, http.StatusOK, BearingResponse{
		Bearing: bearing,
		Compass: geo.CompassPoint(bearing),
	})
}

// parseCoordinates reads lat1, lon1, lat2, lon2 from the query string.
func parseCoordinates(r *http.Request) ([4]float64, error) {
	var out [4]float64
	q := r.URL.Query()
	for i, name := range []string{"lat1", "lon1", "lat2", "lon2"} {
		raw := q.Get(name)
		if raw == "" {
			return out, fmt.Errorf("missing query parameter %s", name)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return out, fmt.Errorf("invalid %s: %q", name, raw)
		}
		out[i] = v
	}
	return out, nil
}

func GetFeedStats(source PositionSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, source.Stats())
	}
}
