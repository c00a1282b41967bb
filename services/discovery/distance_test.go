package discovery

import (
	"testing"

	"ayursutra/models"

	"github.com/stretchr/testify/assert"
)

func coords(lat, lng float64) models.Coordinates {
	return models.Coordinates{Latitude: lat, Longitude: lng}
}

func clinicAt(id string, lat, lng float64) models.Clinic {
	return models.Clinic{ID: id, Latitude: &lat, Longitude: &lng}
}

func TestHaversineKnownDistances(t *testing.T) {
	// Delhi to Mumbai, roughly 1150 km.
	delhi := coords(28.6139, 77.2090)
	mumbai := coords(19.0760, 72.8777)
	assert.InDelta(t, 1150, HaversineKm(delhi, mumbai), 20)

	// Identical points.
	assert.Zero(t, HaversineKm(delhi, delhi))

	// Direction does not matter.
	assert.Equal(t, HaversineKm(delhi, mumbai), HaversineKm(mumbai, delhi))

	// One degree of latitude is about 111 km.
	assert.InDelta(t, 111.2, HaversineKm(coords(0, 0), coords(1, 0)), 0.5)
}

func TestNearbyStrictRadius(t *testing.T) {
	origin := coords(28.6139, 77.2090)

	// Roughly 0.09 degrees of latitude is 10 km; just inside vs just outside.
	inside := clinicAt("inside", 28.6139+0.085, 77.2090)
	outside := clinicAt("outside", 28.6139+0.095, 77.2090)

	got := Nearby([]models.Clinic{inside, outside}, origin)
	assert.Len(t, got, 1)
	assert.Equal(t, "inside", got[0].ID)
}

func TestNearbySkipsClinicsWithoutCoordinates(t *testing.T) {
	origin := coords(28.6139, 77.2090)
	lat := 28.6140
	partial := models.Clinic{ID: "partial", Latitude: &lat}
	none := models.Clinic{ID: "none"}
	near := clinicAt("near", 28.6140, 77.2091)

	got := Nearby([]models.Clinic{partial, none, near}, origin)
	assert.Len(t, got, 1)
	assert.Equal(t, "near", got[0].ID)
}

func TestNearbyPreservesOrder(t *testing.T) {
	origin := coords(0, 0)
	list := []models.Clinic{
		clinicAt("c", 0.03, 0),
		clinicAt("a", 0.01, 0),
		clinicAt("b", 0.02, 0),
	}

	got := Nearby(list, origin)
	ids := make([]string, 0, len(got))
	for _, c := range got {
		ids = append(ids, c.ID)
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)
}
