package types

// VatsimData is the v3 network data document. Only the pilot fields a lookup
// maps are decoded, so unrelated parts of the feed cannot fail a lookup.
type VatsimData struct {
	Pilots []Pilot `json:"pilots"`
}

// Pilot is a single entry of the pilots array. Timestamps are kept as the
// strings the feed sends.
type Pilot struct {
	Callsign    string  `json:"callsign"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Altitude    float64 `json:"altitude"`
	Groundspeed float64 `json:"groundspeed"`
	LastSeen    string  `json:"last_seen"`
	LogonTime   string  `json:"logon_time"`
}
