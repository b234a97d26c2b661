package graph

// VertexID addresses a vertex; ids are dense in [0, VertexCount).
type VertexID int

// EdgeID addresses an edge by insertion order.
type EdgeID int

// Weight is the edge payload. Time is the comparable component;
// SpanCount and Bus ride along for path reconstruction (SpanCount is 0
// and Bus empty on a wait edge).
type Weight struct {
	Time      float64
	SpanCount int
	Bus       string
}

// Edge is a directed connection between two vertices.
type Edge struct {
	From   VertexID
	To     VertexID
	Weight Weight
}

// Graph is a directed weighted multigraph with a fixed vertex count.
type Graph struct {
	edges     []Edge
	incidence [][]EdgeID // vertex -> outgoing edge ids
}

// New returns a graph over vertexCount vertices and no edges.
func New(vertexCount int) *Graph {
	return &Graph{incidence: make([][]EdgeID, vertexCount)}
}

// AddEdge inserts an edge and returns its id. Parallel edges and
// self-loops are allowed.
func (g *Graph) AddEdge(e Edge) EdgeID {
	id := EdgeID(len(g.edges))
	g.edges = append(g.edges, e)
	g.incidence[e.From] = append(g.incidence[e.From], id)
	return id
}

// Edge returns the edge with the given id.
func (g *Graph) Edge(id EdgeID) Edge { return g.edges[id] }

// IncidentEdges returns the ids of edges leaving the vertex.
func (g *Graph) IncidentEdges(v VertexID) []EdgeID { return g.incidence[v] }

// VertexCount reports the number of vertices.
func (g *Graph) VertexCount() int { return len(g.incidence) }

// EdgeCount reports the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }
