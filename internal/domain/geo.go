package domain

import (
	"math"

	"github.com/golang/geo/s2"
)

// EarthRadiusKm is the mean earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Haversine returns the great-circle distance in kilometres between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// Bearing returns the initial bearing in degrees [0, 360) from the first point to the second.
func Bearing(lat1, lon1, lat2, lon2 float64) float64 {
	phi1, phi2 := toRadians(lat1), toRadians(lat2)
	dLon := toRadians(lon2 - lon1)
	y := math.Sin(dLon) * math.Cos(phi2)
	x := math.Cos(phi1)*math.Sin(phi2) - math.Sin(phi1)*math.Cos(phi2)*math.Cos(dLon)
	deg := toDegrees(math.Atan2(y, x))
	return math.Mod(deg+360, 360)
}

// Destination returns the point reached travelling distanceKm along bearingDeg.
func Destination(lat, lon, bearingDeg, distanceKm float64) (float64, float64) {
	delta := distanceKm / EarthRadiusKm
	theta := toRadians(bearingDeg)
	phi1, lambda1 := toRadians(lat), toRadians(lon)

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)
	return toDegrees(phi2), math.Mod(toDegrees(lambda2)+540, 360) - 180
}

func toRadians(deg float64) float64 { return deg * math.Pi / 180 }
func toDegrees(rad float64) float64 { return rad * 180 / math.Pi }

// Coordinate is a plain latitude/longitude pair.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// coastline is a coarse sample of the Philippine coastline used for landfall
// detection. Positions sit on the shore, spaced so that a track crossing land
// passes within a few tens of kilometres of at least one sample.
var coastline = []Coordinate{
	{Lat: 18.60, Lon: 120.60}, // Laoag shore
	{Lat: 18.35, Lon: 122.25}, // Santa Ana
	{Lat: 17.30, Lon: 122.45}, // Palanan
	{Lat: 16.10, Lon: 121.95}, // Dinalungan
	{Lat: 15.75, Lon: 121.58}, // Baler
	{Lat: 14.75, Lon: 121.65}, // Real
	{Lat: 14.10, Lon: 122.95}, // Daet
	{Lat: 13.60, Lon: 124.20}, // Virac
	{Lat: 13.14, Lon: 123.75}, // Legazpi
	{Lat: 12.55, Lon: 124.95}, // Catarman
	{Lat: 11.78, Lon: 125.48}, // Borongan
	{Lat: 11.24, Lon: 125.00}, // Tacloban
	{Lat: 10.05, Lon: 125.55}, // Siargao strait
	{Lat: 9.79, Lon: 125.49},  // Surigao
	{Lat: 8.55, Lon: 126.35},  // Hinatuan
	{Lat: 7.07, Lon: 125.62},  // Davao Gulf
	{Lat: 14.58, Lon: 120.97}, // Manila Bay
	{Lat: 13.75, Lon: 121.05}, // Batangas
	{Lat: 16.05, Lon: 120.33}, // Lingayen Gulf
	{Lat: 10.30, Lon: 123.90}, // Cebu
	{Lat: 10.70, Lon: 122.56}, // Iloilo
	{Lat: 9.74, Lon: 118.73},  // Puerto Princesa
}

// Coastline returns the coastline sample points.
func Coastline() []Coordinate {
	out := make([]Coordinate, len(coastline))
	copy(out, coastline)
	return out
}

// DistanceToCoast returns the haversine distance to the nearest coastline sample.
func DistanceToCoast(lat, lon float64, samples []Coordinate) float64 {
	best := math.Inf(1)
	for _, c := range samples {
		if d := Haversine(lat, lon, c.Lat, c.Lon); d < best {
			best = d
		}
	}
	return best
}

// regionOfInterest is the Philippine Area of Responsibility.
var regionOfInterest = polygonLoop([]Coordinate{
	{Lat: 5, Lon: 115},
	{Lat: 5, Lon: 135},
	{Lat: 25, Lon: 135},
	{Lat: 25, Lon: 120},
	{Lat: 21, Lon: 120},
	{Lat: 15, Lon: 115},
})

// InRegionOfInterest reports whether a position lies inside the Philippine Area of Responsibility.
func InRegionOfInterest(lat, lon float64) bool {
	return regionOfInterest.ContainsPoint(s2.PointFromLatLng(s2.LatLngFromDegrees(lat, lon)))
}

func polygonLoop(vertices []Coordinate) *s2.Loop {
	points := make([]s2.Point, 0, len(vertices))
	for _, v := range vertices {
		points = append(points, s2.PointFromLatLng(s2.LatLngFromDegrees(v.Lat, v.Lon)))
	}

	loop := s2.LoopFromPoints(points)
	// Vertices given clockwise describe the complement; flip back to the small side.
	if loop.Area() > 2*math.Pi {
		loop.Invert()
	}
	return loop
}
