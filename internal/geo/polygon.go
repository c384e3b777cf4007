// Package geo resolves which zone a coordinate falls in.
package geo

import (
	"github.com/elduverx/gruposmCRM-sub002/internal/models"
)

// IsPointInPolygon reports whether point lies inside polygon using the even-odd
// rule: a ray cast from the point towards +lng crosses an odd number of edges.
//
// Polygons with fewer than three vertices contain nothing. Membership of points
// exactly on an edge or vertex is not defined by the rule; the result for such a
// point is whatever the crossing arithmetic yields, and is stable for a given input.
func IsPointInPolygon(point models.LatLng, polygon []models.LatLng) bool {
	if len(polygon) < 3 {
		return false
	}

	x, y := point.Lng, point.Lat
	inside := false
	for i, j := 0, len(polygon)-1; i < len(polygon); j, i = i, i+1 {
		xi, yi := polygon[i].Lng, polygon[i].Lat
		xj, yj := polygon[j].Lng, polygon[j].Lat

		if (yi > y) != (yj > y) {
			xIntercept := (xj-xi)*(y-yi)/(yj-yi) + xi
			if x < xIntercept {
				inside = !inside
			}
		}
	}
	return inside
}

// FindZoneForPoint returns the first zone, in the given order, whose polygon
// contains point. Overlaps are resolved by order only.
func FindZoneForPoint(point models.LatLng, zones []models.Zone) (*models.Zone, bool) {
	for i := range zones {
		if IsPointInPolygon(point, zones[i].Coordinates) {
			return &zones[i], true
		}
	}
	return nil, false
}

// ZonesContaining returns every zone whose polygon contains point, preserving order.
func ZonesContaining(point models.LatLng, zones []models.Zone) []models.Zone {
	var out []models.Zone
	for _, z := range zones {
		if IsPointInPolygon(point, z.Coordinates) {
			out = append(out, z)
		}
	}
	return out
}
