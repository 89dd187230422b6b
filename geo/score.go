// Package geo computes great-circle distances and the composite relevance
// score used to rank providers.
package geo

import (
	"math"

	"medibook/models"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Relevance weighting. Fixed policy, not tunable at runtime: distance 40%,
// rating 30%, same-day availability 30%. Distance saturates at 10 km.
const (
	distanceWeight     = 0.4
	ratingWeight       = 0.3
	availabilityWeight = 0.3
	maxRelevantKm      = 10.0
)

// Distance returns the great-circle distance between two points in km.
func Distance(a, b models.Coordinates) float64 {
	dLat := (b.Lat - a.Lat) * (math.Pi / 180)
	dLon := (b.Lng - a.Lng) * (math.Pi / 180)
	lat1Rad := a.Lat * (math.Pi / 180)
	lat2Rad := b.Lat * (math.Pi / 180)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// RelevanceScore combines distance, rating and same-day availability into a
// single score in [0,1], rounded to two decimals.
func RelevanceScore(distanceKm, rating float64, availableToday bool) float64 {
	distScore := math.Max(0, maxRelevantKm-distanceKm) / maxRelevantKm
	ratingScore := rating / 5
	availScore := 0.0
	if availableToday {
		availScore = 1.0
	}
	score := distScore*distanceWeight + ratingScore*ratingWeight + availScore*availabilityWeight
	return math.Round(score*100) / 100
}
