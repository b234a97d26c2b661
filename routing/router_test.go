package routing

import (
	"math"
	"reflect"
	"sort"
	"testing"

	"github.com/urban-transit-tools/transport-catalogue/catalogue"
	"github.com/urban-transit-tools/transport-catalogue/geo"
)

func buildCatalogue(t *testing.T, stops map[string]geo.Coordinates, distances map[[2]string]float64) *catalogue.Catalogue {
	t.Helper()
	c := catalogue.New()
	// Insertion order does not matter for routing, but keep it stable.
	for _, name := range sortedKeys(stops) {
		if _, err := c.AddStop(name, stops[name]); err != nil {
			t.Fatal(err)
		}
	}
	for pair, meters := range distances {
		if err := c.AddDistance(pair[0], pair[1], meters); err != nil {
			t.Fatal(err)
		}
	}
	return c
}

func sortedKeys(stops map[string]geo.Coordinates) []string {
	names := make([]string, 0, len(stops))
	for name := range stops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func TestBuildRouteAcrossOneBus(t *testing.T) {
	c := buildCatalogue(t,
		map[string]geo.Coordinates{
			"A": {Lat: 55.574371, Lng: 37.6517},
			"B": {Lat: 55.587655, Lng: 37.645687},
		},
		map[[2]string]float64{
			{"A", "B"}: 1000,
			{"B", "A"}: 1000,
		})
	if _, err := c.AddBus("l", []string{"A", "B", "A"}, true); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(Settings{BusWaitTime: 6, BusVelocity: 40}, c)

	t.Run("same stop", func(t *testing.T) {
		info, ok := r.BuildRoute("A", "A")
		if !ok {
			t.Fatal("expected a trivial route")
		}
		if info.TotalTime != 0 || len(info.Items) != 0 {
			t.Errorf("expected zero-time empty route, got %+v", info)
		}
	})

	t.Run("one span", func(t *testing.T) {
		info, ok := r.BuildRoute("A", "B")
		if !ok {
			t.Fatal("expected a route")
		}
		if math.Abs(info.TotalTime-7.5) > 1e-12 {
			t.Errorf("expected total time 7.5, got %v", info.TotalTime)
		}
		want := []Item{
			WaitItem{StopName: "A", Time: 6},
			BusItem{Bus: "l", SpanCount: 1, Time: 1.5},
		}
		if !reflect.DeepEqual(info.Items, want) {
			t.Errorf("expected items %+v, got %+v", want, info.Items)
		}
	})
}

func TestBuildRouteTotalEqualsItemSum(t *testing.T) {
	c := buildCatalogue(t,
		map[string]geo.Coordinates{
			"A": {Lat: 55.574371, Lng: 37.6517},
			"B": {Lat: 55.587655, Lng: 37.645687},
			"C": {Lat: 55.592028, Lng: 37.653656},
			"D": {Lat: 55.580999, Lng: 37.659164},
		},
		map[[2]string]float64{
			{"A", "B"}: 2600,
			{"B", "C"}: 1380,
			{"C", "D"}: 1720,
		})
	if _, err := c.AddBus("14", []string{"A", "B", "C"}, true); err != nil {
		t.Fatal(err)
	}
	if _, err := c.AddBus("24", []string{"C", "D"}, false); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(Settings{BusWaitTime: 2, BusVelocity: 30}, c)
	info, ok := r.BuildRoute("A", "D")
	if !ok {
		t.Fatal("expected a route with one transfer")
	}

	sum := 0.0
	for _, item := range info.Items {
		switch item := item.(type) {
		case WaitItem:
			sum += item.Time
		case BusItem:
			sum += item.Time
		}
	}
	if math.Abs(info.TotalTime-sum) > 1e-9 {
		t.Errorf("total time %v does not match item sum %v", info.TotalTime, sum)
	}

	first, ok := info.Items[0].(WaitItem)
	if !ok {
		t.Fatalf("first item must be a wait, got %+v", info.Items[0])
	}
	if first.StopName != "A" || first.Time != 2 {
		t.Errorf("expected initial Wait{A, 2}, got %+v", first)
	}
}

func TestLinearBusUsesReverseDistances(t *testing.T) {
	c := buildCatalogue(t,
		map[string]geo.Coordinates{
			"A": {Lat: 55.574371, Lng: 37.6517},
			"B": {Lat: 55.587655, Lng: 37.645687},
		},
		map[[2]string]float64{
			{"A", "B"}: 1000,
			{"B", "A"}: 3000,
		})
	if _, err := c.AddBus("l", []string{"A", "B"}, false); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(Settings{BusWaitTime: 6, BusVelocity: 40}, c)

	forward, ok := r.BuildRoute("A", "B")
	if !ok {
		t.Fatal("expected a forward route")
	}
	if math.Abs(forward.TotalTime-7.5) > 1e-12 {
		t.Errorf("forward: expected 6 + 1.5, got %v", forward.TotalTime)
	}

	backward, ok := r.BuildRoute("B", "A")
	if !ok {
		t.Fatal("expected a backward route")
	}
	if math.Abs(backward.TotalTime-10.5) > 1e-12 {
		t.Errorf("backward: expected 6 + 4.5, got %v", backward.TotalTime)
	}
}

func TestBuildRouteNotFound(t *testing.T) {
	c := buildCatalogue(t,
		map[string]geo.Coordinates{
			"A": {Lat: 55.574371, Lng: 37.6517},
			"B": {Lat: 55.587655, Lng: 37.645687},
			"Island": {Lat: 55.592028, Lng: 37.653656},
		},
		nil)
	if _, err := c.AddBus("l", []string{"A", "B", "A"}, true); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(Settings{BusWaitTime: 6, BusVelocity: 40}, c)

	if _, ok := r.BuildRoute("A", "Island"); ok {
		t.Error("a stop with no buses must be unreachable")
	}
	if _, ok := r.BuildRoute("A", "Nowhere"); ok {
		t.Error("an unknown stop name must not route")
	}
	if _, ok := r.BuildRoute("Nowhere", "A"); ok {
		t.Error("an unknown stop name must not route")
	}
}

func TestEmptyRouteBusAddsNoEdges(t *testing.T) {
	c := buildCatalogue(t,
		map[string]geo.Coordinates{"A": {Lat: 55.5, Lng: 37.5}},
		nil)
	if _, err := c.AddBus("void", nil, true); err != nil {
		t.Fatal(err)
	}

	r := NewRouter(Settings{BusWaitTime: 6, BusVelocity: 40}, c)
	// One wait edge per stop, nothing from the empty bus.
	if got := r.graph.EdgeCount(); got != 1 {
		t.Errorf("expected only the wait edge, got %d edges", got)
	}
}
