package model

import "time"

// Upload records one identification event — the stored image, the species
// the pipeline settled on, and the confidence it reported.
//
// An Upload always belongs to exactly one existing user and is immutable
// after creation. Latitude/Longitude are pointers because "no location" and
// "location (0, 0)" are different things — (0, 0) is a real place in the
// Gulf of Guinea. A separate maintenance pass (cmd/retrofit) may back-fill
// missing locations; normal request flow never mutates an Upload.
type Upload struct {
	ID          string    `json:"id"          bson:"_id"`
	Filename    string    `json:"filename"    bson:"filename"`
	SpeciesName string    `json:"speciesName" bson:"species_name"`
	Confidence  float64   `json:"confidence"  bson:"confidence"` // 0–100
	UserID      string    `json:"userId"      bson:"user_id"`
	Latitude    *float64  `json:"latitude,omitempty"  bson:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty" bson:"longitude,omitempty"`
	UploadDate  time.Time `json:"uploadDate"  bson:"upload_date"`
}

// HasLocation reports whether this upload carries geolocation.
func (u *Upload) HasLocation() bool {
	return u.Latitude != nil && u.Longitude != nil
}
