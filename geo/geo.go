// Package geo provides great-circle helpers on a spherical Earth of radius
// 6371 km. Inputs are decimal degrees and are not range checked.
package geo

import (
	"math"

	"github.com/umahmood/haversine"
)

const (
	MetersPerNauticalMile = 1852.0

	degreesToRadians = math.Pi / 180.0
	radiansToDegrees = 180.0 / math.Pi
)

var compassPoints = []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// DistanceNM returns the haversine distance between two points in nautical miles.
func DistanceNM(lat1, lon1, lat2, lon2 float64) float64 {
	_, km := haversine.Distance(
		haversine.Coord{Lat: lat1, Lon: lon1},
		haversine.Coord{Lat: lat2, Lon: lon2},
	)
	return km * 1000 / MetersPerNauticalMile
}

// Bearing returns the initial great-circle bearing from the first point to
// the second, in degrees within [0, 360). Identical points yield 0.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1 := lat1 * degreesToRadians
	phi2 := lat2 * degreesToRadians
	deltaLon := (lon2 - lon1) * degreesToRadians

	y := math.Sin(deltaLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(deltaLon)

	return math.Mod(math.Atan2(y, x)*radiansToDegrees+360, 360)
}

// CompassPoint maps a bearing to the nearest of the eight principal winds.
func CompassPoint(bearing float64) string {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	return compassPoints[int((b+22.5)/45.0)%8]
}
