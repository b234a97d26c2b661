package routing

import (
	"github.com/urban-transit-tools/transport-catalogue/catalogue"
	"github.com/urban-transit-tools/transport-catalogue/graph"
)

// Settings configure the time model: the fixed wait incurred on every
// boarding (minutes) and the bus cruising speed (km/h).
type Settings struct {
	BusWaitTime float64 `json:"bus_wait_time" yaml:"bus_wait_time" validate:"gte=0"`
	BusVelocity float64 `json:"bus_velocity" yaml:"bus_velocity" validate:"gt=0"`
}

// Item is one leg of a built route: either a WaitItem or a BusItem.
type Item interface {
	isItem()
}

// WaitItem is the fixed wait before boarding at a stop.
type WaitItem struct {
	StopName string
	Time     float64
}

// BusItem is a ride on one bus across SpanCount stop-to-stop segments.
type BusItem struct {
	Bus       string
	SpanCount int
	Time      float64
}

func (WaitItem) isItem() {}
func (BusItem) isItem()  {}

// RouteInfo is a built trip: the total time in minutes and the legs in
// travel order.
type RouteInfo struct {
	TotalTime float64
	Items     []Item
}

// Router answers trip queries over a fixed catalogue. Construction
// projects every bus into the time graph; queries then run against the
// shortest-path engine.
type Router struct {
	cat      *catalogue.Catalogue
	settings Settings
	graph    *graph.Graph
	engine   *graph.Router
}

// NewRouter builds the wait/ride graph for the catalogue.
func NewRouter(settings Settings, cat *catalogue.Catalogue) *Router {
	r := &Router{cat: cat, settings: settings}
	r.graph = r.buildGraph()
	r.engine = graph.NewRouter(r.graph)
	return r
}

// BuildRoute returns the minimum-time trip between two stops named in
// the catalogue, or false if either name is unknown or the pair is
// unreachable. A trip from a stop to itself has total time 0 and no
// items.
func (r *Router) BuildRoute(fromName, toName string) (RouteInfo, bool) {
	from, ok := r.cat.StopByName(fromName)
	if !ok {
		return RouteInfo{}, false
	}
	to, ok := r.cat.StopByName(toName)
	if !ok {
		return RouteInfo{}, false
	}
	stopCount := r.cat.StopCount()
	raw, ok := r.engine.BuildRoute(r.waitVertex(from), r.waitVertex(to))
	if !ok {
		return RouteInfo{}, false
	}

	info := RouteInfo{TotalTime: raw.TotalTime, Items: make([]Item, 0, len(raw.Edges))}
	for _, edgeID := range raw.Edges {
		edge := r.graph.Edge(edgeID)
		if edge.Weight.SpanCount == 0 {
			stopID := int(edge.To)
			if stopID >= stopCount {
				stopID -= stopCount
			}
			stop, _ := r.cat.StopByID(catalogue.StopID(stopID))
			info.Items = append(info.Items, WaitItem{StopName: stop.Name, Time: edge.Weight.Time})
		} else {
			info.Items = append(info.Items, BusItem{
				Bus:       edge.Weight.Bus,
				SpanCount: edge.Weight.SpanCount,
				Time:      edge.Weight.Time,
			})
		}
	}
	return info, true
}

func (r *Router) waitVertex(stop *catalogue.Stop) graph.VertexID {
	return graph.VertexID(int(stop.ID) + r.cat.StopCount())
}

func (r *Router) enterVertex(stop *catalogue.Stop) graph.VertexID {
	return graph.VertexID(stop.ID)
}

func (r *Router) buildGraph() *graph.Graph {
	stopCount := r.cat.StopCount()
	g := graph.New(2 * stopCount)

	for _, stop := range r.cat.Stops() {
		g.AddEdge(graph.Edge{
			From:   r.waitVertex(stop),
			To:     r.enterVertex(stop),
			Weight: graph.Weight{Time: r.settings.BusWaitTime},
		})
	}
	for _, bus := range r.cat.Buses() {
		if bus.IsRoundtrip {
			r.addRoundTrip(g, bus)
		} else {
			r.addLinearTrip(g, bus)
		}
	}
	return g
}

func (r *Router) addRoundTrip(g *graph.Graph, bus *catalogue.Bus) {
	for i := 0; i < len(bus.Route); i++ {
		accumulated := 0.0
		for j := i + 1; j < len(bus.Route); j++ {
			accumulated += r.cat.Distance(bus.Route[j-1], bus.Route[j])
			g.AddEdge(graph.Edge{
				From: r.enterVertex(bus.Route[i]),
				To:   r.waitVertex(bus.Route[j]),
				Weight: graph.Weight{
					Time:      r.driveMinutes(accumulated),
					SpanCount: j - i,
					Bus:       bus.Name,
				},
			})
		}
	}
}

// addLinearTrip emits segments within the forward half of the
// materialized route and their directed reverses; the reverse segment
// accumulates the reverse-direction distances between the same stops.
func (r *Router) addLinearTrip(g *graph.Graph, bus *catalogue.Bus) {
	mid := len(bus.Route)/2 + 1
	for i := 0; i < mid; i++ {
		accumulated := 0.0
		accumulatedReverse := 0.0
		for j := i + 1; j < mid; j++ {
			accumulated += r.cat.Distance(bus.Route[j-1], bus.Route[j])
			accumulatedReverse += r.cat.Distance(bus.Route[j], bus.Route[j-1])
			g.AddEdge(graph.Edge{
				From: r.enterVertex(bus.Route[i]),
				To:   r.waitVertex(bus.Route[j]),
				Weight: graph.Weight{
					Time:      r.driveMinutes(accumulated),
					SpanCount: j - i,
					Bus:       bus.Name,
				},
			})
			g.AddEdge(graph.Edge{
				From: r.enterVertex(bus.Route[j]),
				To:   r.waitVertex(bus.Route[i]),
				Weight: graph.Weight{
					Time:      r.driveMinutes(accumulatedReverse),
					SpanCount: j - i,
					Bus:       bus.Name,
				},
			})
		}
	}
}

func (r *Router) driveMinutes(meters float64) float64 {
	return meters / 1000 / r.settings.BusVelocity * 60
}
