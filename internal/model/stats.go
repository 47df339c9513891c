package model

import "time"

// AggregateStats is the single denormalized summary document shown on the
// landing page. It is recomputed in full on each refresh (never incremented),
// so it is consistent with the underlying collections at LastUpdated and
// possibly stale in between. At most one live instance exists — the stats
// repository replaces it wholesale with an upsert.
//
// Concurrent refreshes race harmlessly: each is a complete
// recompute-and-replace, so the last writer wins with a valid snapshot.
type AggregateStats struct {
	TotalIdentifications int64     `json:"total_identifications" bson:"total_identifications"`
	TotalUsers           int64     `json:"total_users"           bson:"total_users"`
	TotalSpecies         int64     `json:"total_species"         bson:"total_species"`
	LastUpdated          time.Time `json:"last_updated"          bson:"last_updated"`
}
