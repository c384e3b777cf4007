package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elduverx/gruposmCRM-sub002/internal/models"
)

func square(minLat, minLng, maxLat, maxLng float64) []models.LatLng {
	return []models.LatLng{
		{Lat: minLat, Lng: minLng},
		{Lat: minLat, Lng: maxLng},
		{Lat: maxLat, Lng: maxLng},
		{Lat: maxLat, Lng: minLng},
	}
}

func TestIsPointInPolygon_Square(t *testing.T) {
	poly := square(0, 0, 10, 10)

	assert.True(t, IsPointInPolygon(models.LatLng{Lat: 5, Lng: 5}, poly))
	assert.False(t, IsPointInPolygon(models.LatLng{Lat: 15, Lng: 15}, poly))
	assert.False(t, IsPointInPolygon(models.LatLng{Lat: 5, Lng: -1}, poly))
	assert.False(t, IsPointInPolygon(models.LatLng{Lat: -1, Lng: 5}, poly))
}

func TestIsPointInPolygon_VertexIsDeterministic(t *testing.T) {
	poly := square(0, 0, 10, 10)
	corner := models.LatLng{Lat: 0, Lng: 0}

	first := IsPointInPolygon(corner, poly)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, IsPointInPolygon(corner, poly))
	}
}

func TestIsPointInPolygon_Degenerate(t *testing.T) {
	tests := []struct {
		name string
		poly []models.LatLng
	}{
		{"empty", nil},
		{"single vertex", []models.LatLng{{Lat: 1, Lng: 1}}},
		{"segment", []models.LatLng{{Lat: 0, Lng: 0}, {Lat: 10, Lng: 10}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, IsPointInPolygon(models.LatLng{Lat: 0, Lng: 0}, tt.poly))
			assert.False(t, IsPointInPolygon(models.LatLng{Lat: 5, Lng: 5}, tt.poly))
		})
	}
}

func TestIsPointInPolygon_Concave(t *testing.T) {
	// L-shape: the notch at lat 5..10, lng 5..10 is outside.
	poly := []models.LatLng{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 5, Lng: 10},
		{Lat: 5, Lng: 5},
		{Lat: 10, Lng: 5},
		{Lat: 10, Lng: 0},
	}

	assert.True(t, IsPointInPolygon(models.LatLng{Lat: 2, Lng: 8}, poly))
	assert.True(t, IsPointInPolygon(models.LatLng{Lat: 8, Lng: 2}, poly))
	assert.False(t, IsPointInPolygon(models.LatLng{Lat: 8, Lng: 8}, poly))
}

func TestIsPointInPolygon_RealCoordinates(t *testing.T) {
	// Rough block around Valencia's old town.
	poly := []models.LatLng{
		{Lat: 39.4785, Lng: -0.3830},
		{Lat: 39.4785, Lng: -0.3700},
		{Lat: 39.4710, Lng: -0.3700},
		{Lat: 39.4710, Lng: -0.3830},
	}

	assert.True(t, IsPointInPolygon(models.LatLng{Lat: 39.4750, Lng: -0.3760}, poly))
	assert.False(t, IsPointInPolygon(models.LatLng{Lat: 39.4699, Lng: -0.3760}, poly))
}

func TestFindZoneForPoint_FirstMatchWins(t *testing.T) {
	zones := []models.Zone{
		{ID: "a", Name: "A", Coordinates: square(0, 0, 10, 10)},
		{ID: "b", Name: "B", Coordinates: square(2, 2, 8, 8)},
	}
	p := models.LatLng{Lat: 5, Lng: 5}

	zone, ok := FindZoneForPoint(p, zones)
	require.True(t, ok)
	assert.Equal(t, "a", zone.ID)

	zones[0], zones[1] = zones[1], zones[0]
	zone, ok = FindZoneForPoint(p, zones)
	require.True(t, ok)
	assert.Equal(t, "b", zone.ID)
}

func TestFindZoneForPoint_NoMatch(t *testing.T) {
	zones := []models.Zone{
		{ID: "a", Coordinates: square(0, 0, 10, 10)},
		{ID: "degenerate", Coordinates: []models.LatLng{{Lat: 20, Lng: 20}}},
	}

	zone, ok := FindZoneForPoint(models.LatLng{Lat: 20, Lng: 20}, zones)
	assert.False(t, ok)
	assert.Nil(t, zone)

	zone, ok = FindZoneForPoint(models.LatLng{Lat: 1, Lng: 1}, nil)
	assert.False(t, ok)
	assert.Nil(t, zone)
}

func TestZonesContaining(t *testing.T) {
	zones := []models.Zone{
		{ID: "a", Coordinates: square(0, 0, 10, 10)},
		{ID: "far", Coordinates: square(50, 50, 60, 60)},
		{ID: "b", Coordinates: square(2, 2, 8, 8)},
	}

	got := ZonesContaining(models.LatLng{Lat: 5, Lng: 5}, zones)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
}
