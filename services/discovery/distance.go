package discovery

import (
	"math"

	"ayursutra/models"
)

// earthRadiusKm is the mean radius used by the haversine formula.
const earthRadiusKm = 6371.0

// nearbyRadiusKm bounds the "near me" filter. The comparison is strict: a
// clinic exactly on the boundary is excluded.
const nearbyRadiusKm = 10.0

// HaversineKm returns the great-circle distance in kilometres between two
// coordinate pairs.
func HaversineKm(from, to models.Coordinates) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLon := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusKm * c
}

// Nearby keeps the clinics within the radius of the given position, in their
// original order. Clinics without stored coordinates are skipped entirely
// rather than treated as distance zero.
func Nearby(clinics []models.Clinic, position models.Coordinates) []models.Clinic {
	matched := make([]models.Clinic, 0, len(clinics))
	for _, clinic := range clinics {
		if !clinic.HasCoordinates() {
			continue
		}
		dist := HaversineKm(position, models.Coordinates{
			Latitude:  *clinic.Latitude,
			Longitude: *clinic.Longitude,
		})
		if dist < nearbyRadiusKm {
			matched = append(matched, clinic)
		}
	}
	return matched
}
