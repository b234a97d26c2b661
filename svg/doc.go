// Package svg renders SVG documents from typed primitives.
//
// The package models three elements — Circle, Polyline and Text — each
// carrying the shared path properties (fill, stroke, stroke width, line
// cap, line join). Properties render only when set, in a fixed attribute
// order, so the emitted markup is deterministic.
//
// All serialization is done manually over strings.Builder for precise
// control of the output format; text data goes through XML escaping.
package svg
