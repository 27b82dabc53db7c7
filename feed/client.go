package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/vainnor/vatsim-position/types"
)

const DefaultURL = "https://data.vatsim.net/v3/vatsim-data.json"

// Client looks up pilots in the VATSIM data feed. Every lookup downloads a
// fresh snapshot; nothing is cached between calls.
type Client struct {
	url    string
	client *http.Client

	mu    sync.Mutex
	stats types.LookupStats
}

type Option func(*Client)

// WithURL points the client at a different feed document.
func WithURL(url string) Option {
	return func(c *Client) {
		c.url = url
	}
}

// WithHTTPClient replaces the transport. The default client sets no timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.client = hc
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		url:    DefaultURL,
		client: &http.Client{},
		stats: types.LookupStats{
			StartTime: time.Now(),
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) Stats() types.LookupStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Lookup fetches the current snapshot and returns the position of the first
// pilot whose callsign matches, ignoring case.
func (c *Client) Lookup(ctx context.Context, callsign string) (*types.PositionRecord, error) {
	c.record(func(s *types.LookupStats) { s.Lookups++ })

	data, err := c.FetchSnapshot(ctx)
	if err != nil {
		c.record(func(s *types.LookupStats) { s.FetchFailures++ })
		return nil, err
	}

	pilot, ok := findPilot(data.Pilots, callsign)
	if !ok {
		c.record(func(s *types.LookupStats) { s.NotFound++ })
		return nil, &NotFoundError{Callsign: callsign}
	}

	c.record(func(s *types.LookupStats) { s.Found++ })
	return toPosition(pilot), nil
}

// FetchSnapshot downloads and decodes one feed document. A decode failure is
// returned as produced by encoding/json.
func (c *Client) FetchSnapshot(ctx context.Context) (*types.VatsimData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building feed request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		log.Printf("Error fetching VATSIM data: %v", err)
		return nil, fmt.Errorf("error fetching data: %w", err)
	}
	defer resp.Body.Close()

	c.record(func(s *types.LookupStats) { s.LastFetch = time.Now() })

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("VATSIM feed returned status %d", resp.StatusCode)
		return nil, &FetchError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading feed body: %w", err)
	}

	var data types.VatsimData
	if err := json.Unmarshal(body, &data); err != nil {
		log.Printf("Error decoding VATSIM data: %v", err)
		return nil, err
	}

	return &data, nil
}

func (c *Client) record(fn func(*types.LookupStats)) {
	c.mu.Lock()
	fn(&c.stats)
	c.mu.Unlock()
}

func findPilot(pilots []types.Pilot, callsign string) (types.Pilot, bool) {
	for _, p := range pilots {
		if p.Callsign != "" && strings.EqualFold(p.Callsign, callsign) {
			return p, true
		}
	}
	return types.Pilot{}, false
}

func toPosition(p types.Pilot) *types.PositionRecord {
	// last_seen and logon_time mean different things; the fallback is kept as-is.
	lastSeen := p.LastSeen
	if lastSeen == "" {
		lastSeen = p.LogonTime
	}

	return &types.PositionRecord{
		Callsign:    p.Callsign,
		Lat:         p.Latitude,
		Lon:         p.Longitude,
		Alt:         p.Altitude,
		Groundspeed: p.Groundspeed,
		LastSeen:    lastSeen,
	}
}

// IsNotFound reports whether err is, or wraps, a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsFetchError reports whether err is, or wraps, a FetchError.
func IsFetchError(err error) bool {
	var fe *FetchError
	return errors.As(err, &fe)
}
