// Package graph provides a directed weighted multigraph and a
// shortest-path engine over it.
//
// Vertices are addressed by dense integer ids fixed at construction;
// edges are addressed by insertion id and are never removed. Edge
// weights carry a time in minutes plus opaque ride metadata; the
// shortest-path engine compares and accumulates time only.
//
// The Router computes one-to-all Dijkstra per source on first use and
// caches the result. It is not safe for concurrent use.
package graph
