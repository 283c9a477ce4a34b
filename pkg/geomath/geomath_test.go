package geomath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldbook/pkg/apperr"
)

// metres per degree of latitude on the sphere used here
const mPerDeg = EarthRadiusM * math.Pi / 180

func squareAt(lat, lng, sideM float64) []Point {
	d := sideM / mPerDeg
	h := d / 2
	return []Point{
		{Lat: lat - h, Lng: lng - h},
		{Lat: lat - h, Lng: lng + h},
		{Lat: lat + h, Lng: lng + h},
		{Lat: lat + h, Lng: lng - h},
	}
}

func TestArea_KilometreSquareNearEquator(t *testing.T) {
	ring := squareAt(0.01, 20.0, 1000)
	assert.InEpsilon(t, 100.0, Area(ring), 0.01)
}

func TestArea_ClosedAndOpenRingsAgree(t *testing.T) {
	ring := squareAt(0.5, 19.9, 500)
	assert.InDelta(t, Area(ring), Area(Close(ring)), 1e-9)
}

func TestArea_OrientationIndependent(t *testing.T) {
	ring := squareAt(52.2, 21.0, 300)
	rev := make([]Point, len(ring))
	for i := range ring {
		rev[len(ring)-1-i] = ring[i]
	}
	assert.InDelta(t, Area(ring), Area(rev), 1e-9)
	assert.Greater(t, Area(ring), 0.0)
}

func TestArea_FewerThanThreePoints(t *testing.T) {
	assert.Zero(t, Area(nil))
	assert.Zero(t, Area([]Point{{1, 1}}))
	assert.Zero(t, Area([]Point{{1, 1}, {1, 2}}))
	// a closed "ring" of two distinct points
	assert.Zero(t, Area([]Point{{1, 1}, {1, 2}, {1, 1}}))
}

func TestCentroid_SquareIsCentre(t *testing.T) {
	ring := squareAt(52.2297, 21.0122, 400)
	c, err := Centroid(Close(ring))
	require.NoError(t, err)
	assert.InDelta(t, 52.2297, c.Lat, 1e-9)
	assert.InDelta(t, 21.0122, c.Lng, 1e-9)
}

func TestCentroid_InsideHull(t *testing.T) {
	ring := []Point{
		{Lat: 50.000, Lng: 19.000},
		{Lat: 50.000, Lng: 19.010},
		{Lat: 50.004, Lng: 19.012},
		{Lat: 50.008, Lng: 19.006},
		{Lat: 50.005, Lng: 18.999},
	}
	c, err := Centroid(ring)
	require.NoError(t, err)
	assert.True(t, c.Lat > 50.000 && c.Lat < 50.008, "lat %v", c.Lat)
	assert.True(t, c.Lng > 18.999 && c.Lng < 19.012, "lng %v", c.Lng)
}

func TestCentroid_Degenerate(t *testing.T) {
	cases := map[string][]Point{
		"single":    {{Lat: 1, Lng: 1}},
		"two":       {{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}},
		"collinear": {{Lat: 1, Lng: 1}, {Lat: 2, Lng: 2}, {Lat: 3, Lng: 3}},
		"repeated":  {{Lat: 1, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 1}, {Lat: 1, Lng: 1}},
	}
	for name, ring := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Centroid(ring)
			assert.ErrorIs(t, err, apperr.ErrDegenerateGeometry)
		})
	}
}

func TestCentroid_CollinearFarFromOrigin(t *testing.T) {
	_, err := Centroid([]Point{
		{Lat: -63.835, Lng: 156.905},
		{Lat: -63.8337, Lng: 156.9067},
		{Lat: -63.8311, Lng: 156.9101},
	})
	require.ErrorIs(t, err, apperr.ErrDegenerateGeometry)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 1000; i++ {
		p0 := Point{Lat: rng.Float64()*170 - 85, Lng: rng.Float64()*360 - 180}
		ang := rng.Float64() * 2 * math.Pi
		l := 1e-3 + rng.Float64()*9e-3
		d := Point{Lat: l * math.Sin(ang), Lng: l * math.Cos(ang)}
		t1, t2 := 0.2+rng.Float64()*0.3, 0.6+rng.Float64()*0.4
		ring := []Point{
			p0,
			{Lat: p0.Lat + t1*d.Lat, Lng: p0.Lng + t1*d.Lng},
			{Lat: p0.Lat + t2*d.Lat, Lng: p0.Lng + t2*d.Lng},
		}
		c, err := Centroid(ring)
		require.ErrorIs(t, err, apperr.ErrDegenerateGeometry, "ring %v gave %v", ring, c)
	}
}

func TestCentroid_ParcelFarFromOriginInsideHull(t *testing.T) {
	ring := squareAt(-63.83, 156.9, 50)
	c, err := Centroid(ring)
	require.NoError(t, err)
	assert.InDelta(t, -63.83, c.Lat, 1e-9)
	assert.InDelta(t, 156.9, c.Lng, 1e-9)

	// thin but real triangle
	tri := []Point{{Lat: 61.5, Lng: 170.2}, {Lat: 61.5, Lng: 170.21}, {Lat: 61.5001, Lng: 170.205}}
	c, err = Centroid(tri)
	require.NoError(t, err)
	assert.True(t, c.Lat > 61.5 && c.Lat < 61.5001, "lat %v", c.Lat)
	assert.True(t, c.Lng > 170.2 && c.Lng < 170.21, "lng %v", c.Lng)
}

func TestDistance(t *testing.T) {
	a := Point{Lat: 0, Lng: 0}
	assert.Zero(t, Distance(a, a))
	assert.InDelta(t, mPerDeg, Distance(a, Point{Lat: 1, Lng: 0}), 1e-6)

	// symmetric
	p := Point{Lat: 52.1, Lng: 21.3}
	q := Point{Lat: 52.1002, Lng: 21.3003}
	assert.InDelta(t, Distance(p, q), Distance(q, p), 1e-9)
	assert.Less(t, Distance(p, q), 40.0)
}

func TestDistance_NonFiniteFailsClosed(t *testing.T) {
	a := Point{Lat: 10, Lng: 10}
	assert.True(t, math.IsInf(Distance(a, Point{Lat: math.NaN(), Lng: 10}), 1))
	assert.True(t, math.IsInf(Distance(Point{Lat: math.Inf(1)}, a), 1))
}

func TestCloseAndDistinct(t *testing.T) {
	ring := []Point{{1, 1}, {1, 2}, {2, 2}}
	closed := Close(ring)
	require.Len(t, closed, 4)
	assert.Equal(t, closed[0], closed[3])
	assert.Len(t, ring, 3, "input must not be modified")
	assert.Equal(t, closed, Close(closed))
	assert.Equal(t, 3, DistinctCount(closed))
	assert.Empty(t, Close(nil))
}
