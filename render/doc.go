// Package render draws the route map as an SVG document.
//
// Buses render in lexicographic name order across four layers: route
// polylines, route name labels, stop circles and stop name labels. A
// sphere projector maps geographic coordinates onto the canvas with an
// equal-axis zoom derived from the bounding box of every stop that
// appears on a non-empty route.
package render
