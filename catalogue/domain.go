package catalogue

import "github.com/urban-transit-tools/transport-catalogue/geo"

// StopID is a dense per-catalogue stop identifier assigned in insertion
// order starting at zero.
type StopID uint32

// Stop is a named point on the map.
type Stop struct {
	ID          StopID
	Name        string
	Coordinates geo.Coordinates
}

// Bus is a named route over stops. Route holds the materialized stop
// sequence: for a bus declared s0..sn without the roundtrip flag it is
// s0..sn,sn-1..s0, for a roundtrip bus the sequence as declared.
type Bus struct {
	Name        string
	Route       []*Stop
	RouteLength float64
	Curvature   float64
	IsRoundtrip bool
}

// BusInfo is the derived statistics answered for a bus query.
type BusInfo struct {
	StopCount       int
	UniqueStopCount int
	RouteLength     float64
	Curvature       float64
}
