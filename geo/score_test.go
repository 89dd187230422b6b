package geo

import (
	"testing"

	"medibook/models"

	"github.com/stretchr/testify/assert"
)

func TestDistanceIsSymmetric(t *testing.T) {
	pune := models.Coordinates{Lat: 18.5204, Lng: 73.8567}
	mumbai := models.Coordinates{Lat: 19.0760, Lng: 72.8777}

	assert.Equal(t, Distance(pune, mumbai), Distance(mumbai, pune))
	assert.Equal(t, float64(0), Distance(pune, pune))
}

func TestDistanceKnownValue(t *testing.T) {
	pune := models.Coordinates{Lat: 18.5204, Lng: 73.8567}
	mumbai := models.Coordinates{Lat: 19.0760, Lng: 72.8777}

	// Pune to Mumbai is roughly 120 km as the crow flies.
	d := Distance(pune, mumbai)
	assert.InDelta(t, 120, d, 5)
}

func TestRelevanceScorePinsCoefficients(t *testing.T) {
	// 0 km, 5 stars, available today: every component saturates.
	assert.Equal(t, 1.0, RelevanceScore(0, 5, true))

	// Each component in isolation pins its weight.
	assert.Equal(t, 0.4, RelevanceScore(0, 0, false))
	assert.Equal(t, 0.3, RelevanceScore(10, 5, false))
	assert.Equal(t, 0.3, RelevanceScore(10, 0, true))

	// Distance component saturates to zero at and beyond 10 km.
	assert.Equal(t, RelevanceScore(10, 4, true), RelevanceScore(25, 4, true))

	// Halfway distance contributes half the distance weight.
	assert.Equal(t, 0.2, RelevanceScore(5, 0, false))
}

func TestRelevanceScoreMonotonicity(t *testing.T) {
	// Non-increasing in distance, rating and availability fixed.
	prev := RelevanceScore(0, 4, true)
	for d := 1.0; d <= 12; d++ {
		cur := RelevanceScore(d, 4, true)
		assert.LessOrEqual(t, cur, prev, "distance %v", d)
		prev = cur
	}

	// Non-decreasing in rating, distance and availability fixed.
	prev = RelevanceScore(3, 0, false)
	for r := 0.5; r <= 5; r += 0.5 {
		cur := RelevanceScore(3, r, false)
		assert.GreaterOrEqual(t, cur, prev, "rating %v", r)
		prev = cur
	}
}

func TestRelevanceScoreBounds(t *testing.T) {
	for _, d := range []float64{0, 1, 5, 10, 100} {
		for _, r := range []float64{0, 2.5, 5} {
			for _, avail := range []bool{true, false} {
				s := RelevanceScore(d, r, avail)
				assert.GreaterOrEqual(t, s, 0.0)
				assert.LessOrEqual(t, s, 1.0)
			}
		}
	}
}
