package graph

import (
	"container/heap"
	"math"
)

const noEdge = EdgeID(-1)

// Route is a shortest path: the accumulated time and the edge ids in
// order from source to target.
type Route struct {
	TotalTime float64
	Edges     []EdgeID
}

// Router answers shortest-path queries over a graph. Per-source results
// are computed lazily and cached for the router's lifetime.
type Router struct {
	graph    *Graph
	bySource map[VertexID]*shortestPaths
}

type shortestPaths struct {
	dist []float64
	prev []EdgeID // predecessor edge on the best path, noEdge if none
}

// NewRouter returns a router over the graph. The graph must not gain
// edges afterwards.
func NewRouter(g *Graph) *Router {
	return &Router{graph: g, bySource: map[VertexID]*shortestPaths{}}
}

// BuildRoute returns the minimum-time path between two vertices, or
// false if the target is unreachable. A path from a vertex to itself
// has total time 0 and no edges.
func (r *Router) BuildRoute(from, to VertexID) (Route, bool) {
	paths := r.fromSource(from)
	if math.IsInf(paths.dist[to], 1) {
		return Route{}, false
	}
	route := Route{TotalTime: paths.dist[to]}
	for v := to; v != from; {
		edgeID := paths.prev[v]
		route.Edges = append(route.Edges, edgeID)
		v = r.graph.Edge(edgeID).From
	}
	for i, j := 0, len(route.Edges)-1; i < j; i, j = i+1, j-1 {
		route.Edges[i], route.Edges[j] = route.Edges[j], route.Edges[i]
	}
	return route, true
}

func (r *Router) fromSource(source VertexID) *shortestPaths {
	if cached, ok := r.bySource[source]; ok {
		return cached
	}
	paths := r.dijkstra(source)
	r.bySource[source] = paths
	return paths
}

// dijkstra runs one-to-all Dijkstra with lazy deletion: outdated queue
// entries are skipped when popped.
func (r *Router) dijkstra(source VertexID) *shortestPaths {
	n := r.graph.VertexCount()
	paths := &shortestPaths{
		dist: make([]float64, n),
		prev: make([]EdgeID, n),
	}
	for v := range paths.dist {
		paths.dist[v] = math.Inf(1)
		paths.prev[v] = noEdge
	}
	paths.dist[source] = 0

	queue := &vertexQueue{{vertex: source, dist: 0}}
	for queue.Len() > 0 {
		item := heap.Pop(queue).(queueItem)
		if item.dist > paths.dist[item.vertex] {
			continue
		}
		for _, edgeID := range r.graph.IncidentEdges(item.vertex) {
			edge := r.graph.Edge(edgeID)
			candidate := item.dist + edge.Weight.Time
			if candidate < paths.dist[edge.To] {
				paths.dist[edge.To] = candidate
				paths.prev[edge.To] = edgeID
				heap.Push(queue, queueItem{vertex: edge.To, dist: candidate})
			}
		}
	}
	return paths
}

type queueItem struct {
	vertex VertexID
	dist   float64
}

type vertexQueue []queueItem

func (q vertexQueue) Len() int           { return len(q) }
func (q vertexQueue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q vertexQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *vertexQueue) Push(x any)        { *q = append(*q, x.(queueItem)) }
func (q *vertexQueue) Pop() any {
	old := *q
	last := old[len(old)-1]
	*q = old[:len(old)-1]
	return last
}
