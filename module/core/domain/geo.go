package domain

// GeoPoint is a coordinate pair in decimal degrees (WGS 84).
type GeoPoint struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}
