package domain

import "math"

// City is a static registry entry. Entries are never mutated.
type City struct {
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	Population int64   `json:"population"`
	IsCoastal  bool    `json:"is_coastal"`
}

var cityRegistry = []City{
	{Name: "Manila", Lat: 14.5995, Lon: 120.9842, Population: 1846513, IsCoastal: true},
	{Name: "Quezon City", Lat: 14.6760, Lon: 121.0437, Population: 2960048, IsCoastal: false},
	{Name: "Batangas City", Lat: 13.7565, Lon: 121.0583, Population: 351437, IsCoastal: true},
	{Name: "Baguio", Lat: 16.4023, Lon: 120.5960, Population: 366358, IsCoastal: false},
	{Name: "Dagupan", Lat: 16.0433, Lon: 120.3333, Population: 174302, IsCoastal: true},
	{Name: "Laoag", Lat: 18.1977, Lon: 120.5936, Population: 111125, IsCoastal: true},
	{Name: "Tuguegarao", Lat: 17.6132, Lon: 121.7270, Population: 166334, IsCoastal: false},
	{Name: "Baler", Lat: 15.7589, Lon: 121.5623, Population: 43785, IsCoastal: true},
	{Name: "Naga", Lat: 13.6218, Lon: 123.1948, Population: 209170, IsCoastal: false},
	{Name: "Legazpi", Lat: 13.1391, Lon: 123.7438, Population: 209533, IsCoastal: true},
	{Name: "Virac", Lat: 13.5810, Lon: 124.2300, Population: 76520, IsCoastal: true},
	{Name: "Catbalogan", Lat: 11.7753, Lon: 124.8861, Population: 106440, IsCoastal: true},
	{Name: "Tacloban", Lat: 11.2444, Lon: 125.0039, Population: 251881, IsCoastal: true},
	{Name: "Borongan", Lat: 11.6077, Lon: 125.4312, Population: 71961, IsCoastal: true},
	{Name: "Cebu City", Lat: 10.3157, Lon: 123.8854, Population: 964169, IsCoastal: true},
	{Name: "Iloilo City", Lat: 10.7202, Lon: 122.5621, Population: 457626, IsCoastal: true},
	{Name: "Bacolod", Lat: 10.6765, Lon: 122.9509, Population: 600783, IsCoastal: true},
	{Name: "Surigao City", Lat: 9.7843, Lon: 125.4888, Population: 171107, IsCoastal: true},
	{Name: "Cagayan de Oro", Lat: 8.4542, Lon: 124.6319, Population: 728402, IsCoastal: true},
	{Name: "Davao City", Lat: 7.1907, Lon: 125.4553, Population: 1776949, IsCoastal: true},
	{Name: "Zamboanga City", Lat: 6.9214, Lon: 122.0790, Population: 977234, IsCoastal: true},
	{Name: "Puerto Princesa", Lat: 9.7392, Lon: 118.7353, Population: 307079, IsCoastal: true},
}

// Cities returns a copy of the city registry.
func Cities() []City {
	out := make([]City, len(cityRegistry))
	copy(out, cityRegistry)
	return out
}

// NearestCity returns the registry entry closest to a position and its distance in km.
// The second value is false for an empty registry.
func NearestCity(lat, lon float64, cities []City) (City, float64, bool) {
	var (
		best     City
		bestDist = math.Inf(1)
		found    bool
	)
	for _, c := range cities {
		if d := Haversine(lat, lon, c.Lat, c.Lon); d < bestDist {
			best, bestDist, found = c, d, true
		}
	}
	return best, bestDist, found
}
