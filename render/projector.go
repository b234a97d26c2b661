package render

import (
	"math"

	"github.com/urban-transit-tools/transport-catalogue/geo"
	"github.com/urban-transit-tools/transport-catalogue/svg"
)

const epsilon = 1e-6

func isZero(v float64) bool { return math.Abs(v) < epsilon }

// SphereProjector maps geographic coordinates onto a width×height
// canvas with the given padding. The zoom factor is shared by both axes
// so shapes keep their proportions; latitude is inverted because screen
// y grows down.
type SphereProjector struct {
	padding float64
	minLng  float64
	maxLat  float64
	zoom    float64
}

// NewSphereProjector fits the bounding rectangle of the rendered stops
// into the canvas. A degenerate span on one axis falls back to the
// other axis' zoom; if both are degenerate the zoom is 0 and every
// point projects onto the padding corner.
func NewSphereProjector(minLat, maxLat, minLng, maxLng, width, height, padding float64) SphereProjector {
	p := SphereProjector{padding: padding, minLng: minLng, maxLat: maxLat}

	widthZoom := math.NaN()
	if !isZero(maxLng - minLng) {
		widthZoom = (width - 2*padding) / (maxLng - minLng)
	}
	heightZoom := math.NaN()
	if !isZero(maxLat - minLat) {
		heightZoom = (height - 2*padding) / (maxLat - minLat)
	}

	switch {
	case !math.IsNaN(widthZoom) && !math.IsNaN(heightZoom):
		p.zoom = math.Min(widthZoom, heightZoom)
	case !math.IsNaN(widthZoom):
		p.zoom = widthZoom
	case !math.IsNaN(heightZoom):
		p.zoom = heightZoom
	}
	return p
}

// Project maps a coordinate to its canvas point.
func (p SphereProjector) Project(c geo.Coordinates) svg.Point {
	return svg.Point{
		X: (c.Lng-p.minLng)*p.zoom + p.padding,
		Y: (p.maxLat-c.Lat)*p.zoom + p.padding,
	}
}
