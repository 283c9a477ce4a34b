// Package geomath computes parcel area, centroid and point distance on a
// spherical Earth. Coordinates are WGS-84 decimal degrees.
package geomath

import (
	"fmt"
	"math"

	"fieldbook/pkg/apperr"
)

// EarthRadiusM is the mean Earth radius used by every formula in this package.
const EarthRadiusM = 6371000.0

const sqmPerHectare = 10000.0

// degenerateRatio is the smallest |signed area| treated as a real polygon,
// relative to the squared diagonal of the ring's bounding box.
const degenerateRatio = 1e-9

type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// AreaFunc computes an area in hectares. Area is the default; a geodesic
// implementation can be substituted where one is available.
type AreaFunc func(ring []Point) float64

func rad(deg float64) float64 { return deg * math.Pi / 180 }

// Area returns the area in hectares of the ring, treated as cyclic.
// Rings with fewer than three points have zero area.
func Area(ring []Point) float64 {
	pts := open(ring)
	n := len(pts)
	if n < 3 {
		return 0
	}
	total := 0.0
	for i := 0; i < n; i++ {
		p1 := pts[i]
		p2 := pts[(i+1)%n]
		total += (rad(p2.Lng) - rad(p1.Lng)) * (2 + math.Sin(rad(p1.Lat)) + math.Sin(rad(p2.Lat)))
	}
	sqm := math.Abs(total) * EarthRadiusM * EarthRadiusM / 2
	return sqm / sqmPerHectare
}

// Centroid returns the area-weighted centroid of the ring, using lat/lng as
// planar coordinates. It is accurate for parcel-sized rings only.
// Vertices are shifted by the first one before accumulating.
func Centroid(ring []Point) (Point, error) {
	pts := open(ring)
	n := len(pts)
	if n < 3 {
		return Point{}, fmt.Errorf("%w: %d points", apperr.ErrDegenerateGeometry, n)
	}
	o := pts[0]
	minX, maxX, minY, maxY := 0.0, 0.0, 0.0, 0.0
	var a, cx, cy float64
	for i := 0; i < n; i++ {
		x0, y0 := pts[i].Lng-o.Lng, pts[i].Lat-o.Lat
		x1, y1 := pts[(i+1)%n].Lng-o.Lng, pts[(i+1)%n].Lat-o.Lat
		minX, maxX = math.Min(minX, x0), math.Max(maxX, x0)
		minY, maxY = math.Min(minY, y0), math.Max(maxY, y0)
		cross := x0*y1 - x1*y0
		a += cross
		cx += (x0 + x1) * cross
		cy += (y0 + y1) * cross
	}
	a /= 2
	w, h := maxX-minX, maxY-minY
	if math.IsNaN(a) || math.Abs(a) <= degenerateRatio*(w*w+h*h) {
		return Point{}, fmt.Errorf("%w: zero signed area", apperr.ErrDegenerateGeometry)
	}
	return Point{Lat: o.Lat + cy/(6*a), Lng: o.Lng + cx/(6*a)}, nil
}

// Distance returns the great-circle (haversine) distance in metres.
// Non-finite input yields +Inf so that proximity checks never pass.
func Distance(a, b Point) float64 {
	for _, v := range []float64{a.Lat, a.Lng, b.Lat, b.Lng} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.Inf(1)
		}
	}
	dLat := rad(b.Lat - a.Lat)
	dLng := rad(b.Lng - a.Lng)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(rad(a.Lat))*math.Cos(rad(b.Lat))*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	d := EarthRadiusM * c
	if math.IsNaN(d) {
		return math.Inf(1)
	}
	return d
}

// IsClosed reports whether the last point repeats the first.
func IsClosed(ring []Point) bool {
	return len(ring) > 1 && ring[0] == ring[len(ring)-1]
}

// Close returns a copy of ring sealed by repeating its first point.
func Close(ring []Point) []Point {
	out := make([]Point, len(ring), len(ring)+1)
	copy(out, ring)
	if len(out) > 0 && !IsClosed(out) {
		out = append(out, out[0])
	}
	return out
}

// DistinctCount counts distinct vertices, ignoring the closing duplicate.
func DistinctCount(ring []Point) int {
	seen := make(map[Point]struct{}, len(ring))
	for _, p := range ring {
		seen[p] = struct{}{}
	}
	return len(seen)
}

// open drops the closing duplicate, if any.
func open(ring []Point) []Point {
	if IsClosed(ring) {
		return ring[:len(ring)-1]
	}
	return ring
}
