package models

import "fmt"

// Coordinates is a validated latitude/longitude pair in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// NewCoordinates validates the ranges at construction time.
func NewCoordinates(lat, lng float64) (Coordinates, error) {
	if lat < -90 || lat > 90 {
		return Coordinates{}, fmt.Errorf("latitude must be between -90 and 90, got %v", lat)
	}
	if lng < -180 || lng > 180 {
		return Coordinates{}, fmt.Errorf("longitude must be between -180 and 180, got %v", lng)
	}
	return Coordinates{Lat: lat, Lng: lng}, nil
}
