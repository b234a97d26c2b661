package catalogue

import (
	"errors"
	"fmt"
	"sort"

	"github.com/urban-transit-tools/transport-catalogue/geo"
)

// Errors reported while populating a catalogue.
var (
	ErrStopExists  = errors.New("stop already exists")
	ErrBusExists   = errors.New("bus already exists")
	ErrUnknownStop = errors.New("unknown stop")
)

// Catalogue stores stops, buses and the road distance table in memory
// for fast lookups.
type Catalogue struct {
	stops []*Stop
	buses []*Bus

	stopByName  map[string]*Stop
	busByName   map[string]*Bus
	distances   map[StopID]map[StopID]float64 // from -> to -> meters, directional
	busesAtStop map[StopID][]*Bus             // one entry per route occurrence
}

// New returns an empty catalogue.
func New() *Catalogue {
	return &Catalogue{
		stopByName:  map[string]*Stop{},
		busByName:   map[string]*Bus{},
		distances:   map[StopID]map[StopID]float64{},
		busesAtStop: map[StopID][]*Bus{},
	}
}

// AddStop inserts a stop under the next dense id. The name must be
// unique across stops.
func (c *Catalogue) AddStop(name string, coordinates geo.Coordinates) (*Stop, error) {
	if _, ok := c.stopByName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrStopExists, name)
	}
	stop := &Stop{ID: StopID(len(c.stops)), Name: name, Coordinates: coordinates}
	c.stops = append(c.stops, stop)
	c.stopByName[name] = stop
	c.busesAtStop[stop.ID] = nil
	return stop, nil
}

// AddDistance records the road distance from one stop to another,
// overwriting any prior value. Both stops must already exist.
func (c *Catalogue) AddDistance(fromName, toName string, meters float64) error {
	from, ok := c.stopByName[fromName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, fromName)
	}
	to, ok := c.stopByName[toName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownStop, toName)
	}
	inner := c.distances[from.ID]
	if inner == nil {
		inner = map[StopID]float64{}
		c.distances[from.ID] = inner
	}
	inner[to.ID] = meters
	return nil
}

// AddBus materializes the route named by stopNames, computes its real
// length and curvature and links the bus into every visited stop.
func (c *Catalogue) AddBus(name string, stopNames []string, isRoundtrip bool) (*Bus, error) {
	if _, ok := c.busByName[name]; ok {
		return nil, fmt.Errorf("%w: %q", ErrBusExists, name)
	}
	bus := &Bus{Name: name, IsRoundtrip: isRoundtrip}
	bus.Route = make([]*Stop, 0, len(stopNames))
	for _, stopName := range stopNames {
		stop, ok := c.stopByName[stopName]
		if !ok {
			return nil, fmt.Errorf("%w: %q on bus %q", ErrUnknownStop, stopName, name)
		}
		bus.Route = append(bus.Route, stop)
	}
	if !isRoundtrip {
		for i := len(bus.Route) - 2; i >= 0; i-- {
			bus.Route = append(bus.Route, bus.Route[i])
		}
	}
	bus.RouteLength = c.computeRouteLength(bus)
	if geoLength := computeGeographicLength(bus); geoLength > 0 {
		bus.Curvature = bus.RouteLength / geoLength
	}
	c.linkBus(bus)
	return bus, nil
}

// RestoreBus links a bus whose route, length and curvature were already
// materialized, e.g. when loading a persisted catalogue. Stats are kept
// verbatim, not recomputed.
func (c *Catalogue) RestoreBus(bus *Bus) error {
	if _, ok := c.busByName[bus.Name]; ok {
		return fmt.Errorf("%w: %q", ErrBusExists, bus.Name)
	}
	c.linkBus(bus)
	return nil
}

func (c *Catalogue) linkBus(bus *Bus) {
	c.buses = append(c.buses, bus)
	c.busByName[bus.Name] = bus
	for _, stop := range bus.Route {
		c.busesAtStop[stop.ID] = append(c.busesAtStop[stop.ID], bus)
	}
}

// StopInfo returns the names of buses visiting the stop, sorted
// lexicographically and deduplicated. The second result is false if the
// stop is unknown; a known stop without buses yields an empty slice.
func (c *Catalogue) StopInfo(name string) ([]string, bool) {
	stop, ok := c.stopByName[name]
	if !ok {
		return nil, false
	}
	seen := map[string]struct{}{}
	names := []string{}
	for _, bus := range c.busesAtStop[stop.ID] {
		if _, dup := seen[bus.Name]; dup {
			continue
		}
		seen[bus.Name] = struct{}{}
		names = append(names, bus.Name)
	}
	sort.Strings(names)
	return names, true
}

// BusInfo returns the derived statistics for a bus, or false if the bus
// is unknown.
func (c *Catalogue) BusInfo(name string) (BusInfo, bool) {
	bus, ok := c.busByName[name]
	if !ok {
		return BusInfo{}, false
	}
	unique := map[*Stop]struct{}{}
	for _, stop := range bus.Route {
		unique[stop] = struct{}{}
	}
	return BusInfo{
		StopCount:       len(bus.Route),
		UniqueStopCount: len(unique),
		RouteLength:     bus.RouteLength,
		Curvature:       bus.Curvature,
	}, true
}

// Distance returns the road distance from one stop to another: the
// recorded forward distance if present, else the recorded reverse
// distance, else the great-circle distance between the coordinates.
func (c *Catalogue) Distance(from, to *Stop) float64 {
	if meters, ok := c.lookupDistance(from.ID, to.ID); ok {
		return meters
	}
	if meters, ok := c.lookupDistance(to.ID, from.ID); ok {
		return meters
	}
	return geo.Distance(from.Coordinates, to.Coordinates)
}

func (c *Catalogue) lookupDistance(from, to StopID) (float64, bool) {
	inner, ok := c.distances[from]
	if !ok {
		return 0, false
	}
	meters, ok := inner[to]
	return meters, ok
}

// StopByName resolves a stop by name.
func (c *Catalogue) StopByName(name string) (*Stop, bool) {
	stop, ok := c.stopByName[name]
	return stop, ok
}

// StopByID resolves a stop by its dense id.
func (c *Catalogue) StopByID(id StopID) (*Stop, bool) {
	if int(id) >= len(c.stops) {
		return nil, false
	}
	return c.stops[id], true
}

// Stops lists every stop in insertion (id) order.
func (c *Catalogue) Stops() []*Stop { return c.stops }

// Buses lists every bus in insertion order.
func (c *Catalogue) Buses() []*Bus { return c.buses }

// StopCount reports the number of stops.
func (c *Catalogue) StopCount() int { return len(c.stops) }

// Distances exposes the recorded distance table for persistence.
// Callers must treat the returned maps as read-only.
func (c *Catalogue) Distances() map[StopID]map[StopID]float64 { return c.distances }

func (c *Catalogue) computeRouteLength(bus *Bus) float64 {
	switch len(bus.Route) {
	case 0:
		return 0
	case 1:
		if meters, ok := c.lookupDistance(bus.Route[0].ID, bus.Route[0].ID); ok {
			return meters
		}
		return 0
	}
	length := 0.0
	for i := 1; i < len(bus.Route); i++ {
		length += c.Distance(bus.Route[i-1], bus.Route[i])
	}
	return length
}

func computeGeographicLength(bus *Bus) float64 {
	if len(bus.Route) < 2 {
		return 0
	}
	length := 0.0
	for i := 1; i < len(bus.Route); i++ {
		length += geo.Distance(bus.Route[i-1].Coordinates, bus.Route[i].Coordinates)
	}
	return length
}
