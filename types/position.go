package types

// PositionRecord is the normalized position of one pilot at fetch time.
type PositionRecord struct {
	Callsign    string  `json:"callsign"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Alt         float64 `json:"alt"` // feet
	Groundspeed float64 `json:"groundspeed"`
	LastSeen    string  `json:"lastSeen"`
}
