package types

import "time"

type LookupStats struct {
	Lookups       int64     `json:"lookups"`
	Found         int64     `json:"found"`
	NotFound      int64     `json:"not_found"`
	FetchFailures int64     `json:"fetch_failures"`
	LastFetch     time.Time `json:"last_fetch"`
	StartTime     time.Time `json:"start_time"`
}
