package domain

import "time"

// AccessLevel is the visibility flag on a dataset record.
type AccessLevel string

const (
	AccessPublic     AccessLevel = "public"
	AccessSubscriber AccessLevel = "abonne"
)

// Valid reports whether the access level is one of the known values.
func (a AccessLevel) Valid() bool {
	return a == AccessPublic || a == AccessSubscriber
}

// Geographic bounds for dataset coordinates (inclusive).
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// Dataset is a described, optionally file-attached unit of data with
// geolocation and access-level metadata. Owned and persisted by the upstream
// platform; the console only holds transient per-screen copies.
type Dataset struct {
	ID           int64
	TypeID       int64
	Title        string
	Country      string
	Region       string
	Latitude     *float64
	Longitude    *float64
	Description  string
	CollectedAt  *time.Time
	Access       AccessLevel
	FileURL      string
	ThumbnailURL string
	// Meta is free-form JSON text attached to the record, stored verbatim.
	Meta string
}
