package session

import (
	"log/slog"

	"github.com/osuushi/polypath/advanced"
)

// DefaultCloseThreshold is how close, in local units, a new vertex must land
// to the first vertex to close the outline.
const DefaultCloseThreshold = 20

// Option configures a Session during creation.
type Option func(*Session)

// WithCloseThreshold sets the closing distance. Values that are not positive
// are ignored.
func WithCloseThreshold(threshold float64) Option {
	return func(s *Session) {
		if threshold > 0 {
			s.closeThreshold = threshold
		}
	}
}

// WithTriangulator swaps the triangulation primitive. The default picks the
// monotone sweep when it can and falls back to ear clipping.
func WithTriangulator(triangulate advanced.Triangulator) Option {
	return func(s *Session) {
		if triangulate != nil {
			s.triangulate = triangulate
		}
	}
}

// WithPointFactory sets the constructor used for the centers and midpoints the
// mesh synthesizes.
func WithPointFactory(newPoint advanced.PointFactory) Option {
	return func(s *Session) {
		if newPoint != nil {
			s.newPoint = newPoint
		}
	}
}

// WithLogger gives the session its own logger instead of the package logger.
// Useful for tagging every record with a connection id.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		s.log = l
	}
}
