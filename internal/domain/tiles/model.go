package tiles

import (
	"time"

	"github.com/google/uuid"
)

// Bounds is a geographic bounding box in degrees.
type Bounds struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// ZoomRange is an inclusive range of zoom levels.
type ZoomRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Contains reports whether z lies in the range.
func (r ZoomRange) Contains(z int) bool {
	return z >= r.Min && z <= r.Max
}

// Coord addresses one XYZ tile.
type Coord struct {
	Z int `json:"z"`
	X int `json:"x"`
	Y int `json:"y"`
}

// RegionStatus tracks the download lifecycle.
type RegionStatus string

const (
	RegionPending RegionStatus = "pending"
	RegionReady   RegionStatus = "ready"
	RegionFailed  RegionStatus = "failed"
)

// Region is an area cached for offline use.
type Region struct {
	ID            uuid.UUID    `json:"id"`
	Name          string       `json:"name"`
	Bounds        Bounds       `json:"bounds"`
	Zoom          ZoomRange    `json:"zoomLevels"`
	Status        RegionStatus `json:"status"`
	TileCount     int          `json:"tileCount"`
	StoredTiles   int          `json:"storedTiles"`
	SizeBytes     int64        `json:"sizeBytes"`
	ContentType   string       `json:"contentType,omitempty"`
	FailureReason *string      `json:"failureReason,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
}

// Covers reports whether c falls inside the region's bounds and zoom range.
func (r Region) Covers(c Coord) bool {
	if !r.Zoom.Contains(c.Z) {
		return false
	}
	tl, br := TileRange(r.Bounds, c.Z)
	return c.X >= tl.X && c.X <= br.X && c.Y >= tl.Y && c.Y <= br.Y
}

// CreateRegionRequest describes a region to download.
type CreateRegionRequest struct {
	Name   string    `json:"name"`
	Bounds Bounds    `json:"bounds"`
	Zoom   ZoomRange `json:"zoomLevels"`
}

// Tile is a cached tile image.
type Tile struct {
	Coord       Coord
	RegionID    uuid.UUID
	ContentType string
	Data        []byte
}
