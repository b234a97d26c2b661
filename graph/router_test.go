package graph

import (
	"math"
	"reflect"
	"testing"
)

func TestRouterSameVertex(t *testing.T) {
	g := New(2)
	g.AddEdge(Edge{From: 0, To: 1, Weight: Weight{Time: 1}})
	r := NewRouter(g)

	route, ok := r.BuildRoute(0, 0)
	if !ok {
		t.Fatal("a vertex must be reachable from itself")
	}
	if route.TotalTime != 0 || len(route.Edges) != 0 {
		t.Errorf("expected empty zero-time route, got %+v", route)
	}
}

func TestRouterUnreachable(t *testing.T) {
	g := New(3)
	g.AddEdge(Edge{From: 0, To: 1, Weight: Weight{Time: 1}})
	r := NewRouter(g)

	if _, ok := r.BuildRoute(1, 0); ok {
		t.Error("edges are directed; 1 -> 0 must be unreachable")
	}
	if _, ok := r.BuildRoute(0, 2); ok {
		t.Error("vertex 2 has no incident edges and must be unreachable")
	}
}

func TestRouterPicksFasterPath(t *testing.T) {
	// 0 -> 1 -> 2 is faster than the direct 0 -> 2 edge.
	g := New(3)
	g.AddEdge(Edge{From: 0, To: 2, Weight: Weight{Time: 10}})
	hop1 := g.AddEdge(Edge{From: 0, To: 1, Weight: Weight{Time: 3}})
	hop2 := g.AddEdge(Edge{From: 1, To: 2, Weight: Weight{Time: 4}})
	r := NewRouter(g)

	route, ok := r.BuildRoute(0, 2)
	if !ok {
		t.Fatal("expected a route")
	}
	if route.TotalTime != 7 {
		t.Errorf("expected total time 7, got %v", route.TotalTime)
	}
	if !reflect.DeepEqual(route.Edges, []EdgeID{hop1, hop2}) {
		t.Errorf("expected edges %v, got %v", []EdgeID{hop1, hop2}, route.Edges)
	}
}

func TestRouterAccumulatesTimeOnly(t *testing.T) {
	g := New(3)
	g.AddEdge(Edge{From: 0, To: 1, Weight: Weight{Time: 2, SpanCount: 3, Bus: "a"}})
	g.AddEdge(Edge{From: 1, To: 2, Weight: Weight{Time: 2.5, SpanCount: 1, Bus: "b"}})
	r := NewRouter(g)

	route, ok := r.BuildRoute(0, 2)
	if !ok {
		t.Fatal("expected a route")
	}
	if math.Abs(route.TotalTime-4.5) > 1e-12 {
		t.Errorf("expected total time 4.5, got %v", route.TotalTime)
	}
	// Metadata stays readable per edge.
	if g.Edge(route.Edges[0]).Weight.Bus != "a" || g.Edge(route.Edges[1]).Weight.Bus != "b" {
		t.Error("edge metadata must survive path reconstruction")
	}
}

func TestRouterCachesPerSource(t *testing.T) {
	g := New(4)
	g.AddEdge(Edge{From: 0, To: 1, Weight: Weight{Time: 1}})
	g.AddEdge(Edge{From: 1, To: 2, Weight: Weight{Time: 1}})
	g.AddEdge(Edge{From: 2, To: 3, Weight: Weight{Time: 1}})
	r := NewRouter(g)

	for i := 0; i < 3; i++ {
		route, ok := r.BuildRoute(0, 3)
		if !ok || route.TotalTime != 3 {
			t.Fatalf("expected stable cached answer, got %+v ok=%v", route, ok)
		}
	}
	if len(r.bySource) != 1 {
		t.Errorf("expected one cached source, got %d", len(r.bySource))
	}
}
