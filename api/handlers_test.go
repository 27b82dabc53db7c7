package api

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vainnor/vatsim-position/feed"
	"github.com/vainnor/vatsim-position/types"
)

type fakeSource struct {
	mu        sync.Mutex
	positions map[string]types.PositionRecord
	err       error
	calls     int
}

func (f *fakeSource) Lookup(ctx context.Context, callsign string) (*types.PositionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	for key, pos := range f.positions {
		if strings.EqualFold(key, callsign) {
			p := pos
			return &p, nil
		}
	}
	return nil, &feed.NotFoundError{Callsign: callsign}
}

func (f *fakeSource) Stats() types.LookupStats {
	f.mu.Lock()
	defer f.mu.Unlock()
	return types.LookupStats{Lookups: int64(f.calls)}
}

func (f *fakeSource) lookups() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		positions: map[string]types.PositionRecord{
			"BAW123": {Callsign: "BAW123", Lat: 51.5, Lon: -0.12, Alt: 35000, Groundspeed: 450, LastSeen: "2024-01-01T00:00:00Z"},
			"AAL100": {Callsign: "AAL100", Lat: 51.5, Lon: 10, Alt: 37000, Groundspeed: 480, LastSeen: "2024-01-01T00:00:05Z"},
		},
	}
}

func serve(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestGetPilotPosition(t *testing.T) {
	router := NewRouter(newFakeSource(), 15*time.Second)

	t.Run("Found", func(t *testing.T) {
		rec := serve(t, router, "/api/pilots/baw123/position")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.NotEmpty(t, rec.Header().Get(requestIDHeader))

		var pos types.PositionRecord
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &pos))
		assert.Equal(t, types.PositionRecord{
			Callsign:    "BAW123",
			Lat:         51.5,
			Lon:         -0.12,
			Alt:         35000,
			Groundspeed: 450,
			LastSeen:    "2024-01-01T00:00:00Z",
		}, pos)
		assert.Contains(t, rec.Body.String(), `"lastSeen":"2024-01-01T00:00:00Z"`)
	})

	t.Run("Not found", func(t *testing.T) {
		rec := serve(t, router, "/api/pilots/DLH1/position")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body.Error, "DLH1")
	})

	t.Run("Feed failure", func(t *testing.T) {
		source := newFakeSource()
		source.err = &feed.FetchError{StatusCode: http.StatusInternalServerError}
		rec := serve(t, NewRouter(source, time.Second), "/api/pilots/BAW123/position")
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "500")
	})
}

func TestGetRelativePosition(t *testing.T) {
	source := newFakeSource()
	router := NewRouter(source, 15*time.Second)

	rec := serve(t, router, "/api/pilots/BAW123/to/AAL100")
	require.Equal(t, http.StatusOK, rec.Code)

	var rel RelativePosition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rel))
	assert.Equal(t, "BAW123", rel.From.Callsign)
	assert.Equal(t, "AAL100", rel.To.Callsign)
	assert.InDelta(t, 377.9, rel.DistanceNM, 0.5)
	assert.Greater(t, rel.Bearing, 80.0)
	assert.Less(t, rel.Bearing, 100.0)
	assert.Equal(t, "E", rel.Compass)
	assert.Equal(t, 2, source.lookups())

	rec = serve(t, router, "/api/pilots/BAW123/to/NOPE")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "NOPE")
}

func TestGeoEndpoints(t *testing.T) {
	router := NewRouter(newFakeSource(), 15*time.Second)

	t.Run("Distance", func(t *testing.T) {
		rec := serve(t, router, "/api/geo/distance?lat1=0&lon1=0&lat2=0&lon2=90")
		require.Equal(t, http.StatusOK, rec.Code)

		var body DistanceResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.InDelta(t, 5403.6, body.DistanceNM, 0.1)
	})

	t.Run("Bearing", func(t *testing.T) {
		rec := serve(t, router, "/api/geo/bearing?lat1=0&lon1=0&lat2=0&lon2=90")
		require.Equal(t, http.StatusOK, rec.Code)

		var body BearingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.InDelta(t, 90.0, body.Bearing, 1e-9)
		assert.Equal(t, "E", body.Compass)
	})

	badQueries := []string{
		"/api/geo/distance?lat1=0&lon1=0&lat2=0",
		"/api/geo/distance?lat1=north&lon1=0&lat2=0&lon2=1",
		"/api/geo/bearing?lat1=NaN&lon1=0&lat2=0&lon2=1",
		"/api/geo/bearing?lat1=0&lon1=Inf&lat2=0&lon2=1",
	}
	for _, target := range badQueries {
		rec := serve(t, router, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetFeedStats(t *testing.T) {
	source := newFakeSource()
	router := NewRouter(source, 15*time.Second)

	serve(t, router, "/api/pilots/BAW123/position")
	rec := serve(t, router, "/api/feed/stats")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats types.LookupStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.EqualValues(t, 1, stats.Lookups)
}

func TestRequestLogger(t *testing.T) {
	handler := RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, "abc-123", rec.Header().Get(requestIDHeader))
}

func TestWriteJSONLogsEncodeFailure(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusOK, DistanceResponse{DistanceNM: math.Inf(1)})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, buf.String(), "Error encoding api.DistanceResponse response")
}
