package service

import "math"

// Maximum allowed distance in meters between a guestbook's anchor coordinate
// and the coordinate a footprint is submitted from.
const footprintRangeMeters = 100

// withinRange reports whether a footprint submitted at (latFoot, lonFoot)
// is close enough to the guestbook anchored at (latBook, lonBook). The
// boundary is inclusive.
func withinRange(latBook, lonBook, latFoot, lonFoot float64) bool {
	return distanceMeters(latBook, lonBook, latFoot, lonFoot) <= footprintRangeMeters
}

// distanceMeters computes the great-circle distance between two coordinates
// given in degrees, using the spherical law of cosines.
func distanceMeters(lat1, lon1, lat2, lon2 float64) float64 {
	theta := lon1 - lon2
	dist := math.Sin(radians(lat1))*math.Sin(radians(lat2)) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*math.Cos(radians(theta))
	// Rounding can push the cosine just past [-1, 1] when the points
	// coincide, which would make Acos return NaN.
	dist = math.Min(1, math.Max(-1, dist))
	return degrees(math.Acos(dist)) * 60 * 1.1515 * 1609.344
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }
func degrees(rad float64) float64 { return rad * 180 / math.Pi }
