// Package capture accumulates operator clicks into a parcel boundary.
//
// A Session moves Idle → Drawing → Closed. While drawing, a click that lands
// within the closure threshold of the first point (once three points exist)
// ends the drawing without being appended. FinishManually ends it explicitly.
// On closure the ring is sealed and its area computed, ready to become a Field.
//
// A Session is single-operator state and is not safe for concurrent use.
package capture

import (
	"errors"
	"fmt"

	"fieldbook/pkg/apperr"
	"fieldbook/pkg/geomath"
)

// DefaultCloseThresholdM is the proximity, in metres, that closes a ring.
const DefaultCloseThresholdM = 20.0

const minPoints = 3

type State int

const (
	Idle State = iota
	Drawing
	Closed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Result is the finished ring handed to the caller.
type Result struct {
	Ring     []geomath.Point `json:"ring"`
	AreaHa   float64         `json:"area_ha"`
	Centroid *geomath.Point  `json:"centroid,omitempty"`
}

type Option func(*Session)

// WithThreshold overrides the closure distance in metres.
func WithThreshold(m float64) Option {
	return func(s *Session) {
		if m > 0 {
			s.threshold = m
		}
	}
}

// WithAreaFunc substitutes the area computation applied on closure.
func WithAreaFunc(f geomath.AreaFunc) Option {
	return func(s *Session) {
		if f != nil {
			s.area = f
		}
	}
}

type Session struct {
	state     State
	buf       []geomath.Point
	ring      []geomath.Point
	areaHa    float64
	threshold float64
	area      geomath.AreaFunc
	distance  func(a, b geomath.Point) float64
}

func NewSession(opts ...Option) *Session {
	s := &Session{
		threshold: DefaultCloseThresholdM,
		area:      geomath.Area,
		distance:  geomath.Distance,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Session) State() State { return s.state }

// Points returns a copy of the points collected so far.
func (s *Session) Points() []geomath.Point {
	return append([]geomath.Point(nil), s.buf...)
}

// StartDrawing begins a new ring. Only valid from Idle.
func (s *Session) StartDrawing() error {
	if s.state != Idle {
		return fmt.Errorf("%w: start drawing while %s", apperr.ErrInvalidState, s.state)
	}
	s.buf = s.buf[:0]
	s.ring = nil
	s.areaHa = 0
	s.state = Drawing
	return nil
}

// AddPoint appends p, or closes the ring when p lands near the first point.
// It reports whether the session is now Closed.
func (s *Session) AddPoint(p geomath.Point) (bool, error) {
	if s.state != Drawing {
		return false, fmt.Errorf("%w: add point while %s", apperr.ErrInvalidState, s.state)
	}
	if len(s.buf) >= minPoints && s.distance(s.buf[0], p) < s.threshold {
		s.close()
		return true, nil
	}
	s.buf = append(s.buf, p)
	return false, nil
}

// FinishManually closes the ring without the proximity gesture.
func (s *Session) FinishManually() error {
	if s.state != Drawing {
		return fmt.Errorf("%w: finish while %s", apperr.ErrInvalidState, s.state)
	}
	if len(s.buf) < minPoints {
		return fmt.Errorf("%w: have %d, need %d", apperr.ErrInsufficientPoints, len(s.buf), minPoints)
	}
	s.close()
	return nil
}

// Cancel discards everything and returns to Idle.
func (s *Session) Cancel() {
	s.buf = nil
	s.ring = nil
	s.areaHa = 0
	s.state = Idle
}

func (s *Session) close() {
	s.ring = geomath.Close(s.buf)
	s.areaHa = s.area(s.ring)
	s.state = Closed
}

// Ring returns the sealed ring; nil unless Closed.
func (s *Session) Ring() []geomath.Point {
	if s.state != Closed {
		return nil
	}
	return append([]geomath.Point(nil), s.ring...)
}

// AreaHa returns the area computed on closure.
func (s *Session) AreaHa() float64 { return s.areaHa }

// Result returns the closed ring with its area and, when defined, centroid.
func (s *Session) Result() (Result, error) {
	if s.state != Closed {
		return Result{}, fmt.Errorf("%w: result while %s", apperr.ErrInvalidState, s.state)
	}
	r := Result{Ring: s.Ring(), AreaHa: s.areaHa}
	c, err := geomath.Centroid(s.ring)
	switch {
	case err == nil:
		r.Centroid = &c
	case !errors.Is(err, apperr.ErrDegenerateGeometry):
		return Result{}, err
	}
	return r, nil
}

// Replay drives a fresh session with a recorded click sequence. If the
// closure gesture never fires, the ring is finished manually.
func Replay(points []geomath.Point, opts ...Option) (Result, error) {
	s := NewSession(opts...)
	if err := s.StartDrawing(); err != nil {
		return Result{}, err
	}
	if geomath.IsClosed(points) {
		points = points[:len(points)-1]
	}
	for _, p := range points {
		closed, err := s.AddPoint(p)
		if err != nil {
			return Result{}, err
		}
		if closed {
			return s.Result()
		}
	}
	if err := s.FinishManually(); err != nil {
		return Result{}, err
	}
	return s.Result()
}
