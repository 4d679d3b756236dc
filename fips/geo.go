package fips

import (
	"math"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/golang/geo/s2"
)

// LatLng returns the state's centroid as an s2 point.
func (s State) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(s.Latitude, s.Longitude)
}

// CellID returns the s2 cell containing the state's centroid at the given
// level (0–30).
func (s State) CellID(level int) s2.CellID {
	return s2.CellIDFromLatLng(s.LatLng()).Parent(level)
}

// Geohash encodes the state's centroid with the given number of characters.
func (s State) Geohash(precision int) string {
	return geohash.EncodeWithPrecision(s.Latitude, s.Longitude, precision)
}

// NearestState returns the state whose centroid is closest to the point on
// the sphere. Coordinates outside the valid range report false.
//
// Centroids are a coarse proxy for boundaries: points near a border may
// resolve to the neighbour with the closer centre.
func NearestState(lat, lng float64) (State, bool) {
	ll := s2.LatLngFromDegrees(lat, lng)
	if !ll.IsValid() || math.IsNaN(lat) || math.IsNaN(lng) {
		return State{}, false
	}
	best, bestDist := -1, math.Inf(1)
	for i, s := range states {
		if d := ll.Distance(s.LatLng()).Radians(); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return State{}, false
	}
	return states[best], true
}

const geohashAlphabet = "0123456789bcdefghjkmnpqrstuvwxyz"

// GeohashState resolves a geohash to the nearest state, using the centre of
// the hash's bounding box. Hashes are matched case-insensitively; any
// character outside the geohash alphabet reports false.
func GeohashState(hash string) (State, bool) {
	hash = strings.ToLower(hash)
	if hash == "" || strings.Trim(hash, geohashAlphabet) != "" {
		return State{}, false
	}
	box := geohash.Decode(hash)
	if box == nil {
		return State{}, false
	}
	c := box.Center()
	return NearestState(c.Lat(), c.Lng())
}
