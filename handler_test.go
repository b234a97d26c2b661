package transportcatalogue

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/urban-transit-tools/transport-catalogue/geo"
	"github.com/urban-transit-tools/transport-catalogue/jsonio"
	"github.com/urban-transit-tools/transport-catalogue/render"
	"github.com/urban-transit-tools/transport-catalogue/routing"
	"github.com/urban-transit-tools/transport-catalogue/storage"
	"github.com/urban-transit-tools/transport-catalogue/svg"
)

func processDocument(t *testing.T, document string) string {
	t.Helper()
	reader, err := jsonio.NewReader(strings.NewReader(document))
	if err != nil {
		t.Fatal(err)
	}
	cat, err := BuildCatalogue(reader)
	if err != nil {
		t.Fatal(err)
	}

	renderSettings, _ := reader.RenderSettings()
	routingSettings, _ := reader.RoutingSettings()
	renderer := render.NewMapRenderer(renderSettings)
	router := routing.NewRouter(routingSettings, cat)

	var out bytes.Buffer
	handler := NewStatHandler(cat, renderer, router)
	if err := handler.Process(&out, reader.StatRequests()); err != nil {
		t.Fatal(err)
	}
	return out.String()
}

func TestEmptyCatalogueBusRequest(t *testing.T) {
	got := processDocument(t, `{
		"base_requests": [],
		"stat_requests": [{"id": 1, "type": "Bus", "name": "X"}]
	}`)
	want := `[{"request_id":1,"error_message":"not found"}]`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestEmptyStatPhaseEmitsEmptyArray(t *testing.T) {
	got := processDocument(t, `{"base_requests": []}`)
	if got != "[]" {
		t.Errorf("expected [], got %s", got)
	}
}

func TestSingleStopWithoutBuses(t *testing.T) {
	got := processDocument(t, `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 0, "longitude": 0, "road_distances": {}}
		],
		"stat_requests": [
			{"id": 1, "type": "Stop", "name": "A"},
			{"id": 2, "type": "Stop", "name": "B"}
		]
	}`)
	want := `[{"buses":[],"request_id":1},{"request_id":2,"error_message":"not found"}]`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestBusStatResponse(t *testing.T) {
	got := processDocument(t, `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 55.574371, "longitude": 37.6517,
			 "road_distances": {"B": 600}},
			{"type": "Stop", "name": "B", "latitude": 55.587655, "longitude": 37.645687,
			 "road_distances": {"C": 400}},
			{"type": "Stop", "name": "C", "latitude": 55.592028, "longitude": 37.653656,
			 "road_distances": {}},
			{"type": "Bus", "name": "l", "stops": ["A", "B", "C"], "is_roundtrip": false}
		],
		"stat_requests": [{"id": 7, "type": "Bus", "name": "l"}]
	}`)

	var responses []map[string]any
	if err := json.Unmarshal([]byte(got), &responses); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, got)
	}
	if len(responses) != 1 {
		t.Fatalf("expected 1 response, got %d", len(responses))
	}
	response := responses[0]
	if response["request_id"] != float64(7) {
		t.Errorf("unexpected request_id: %v", response["request_id"])
	}
	if response["route_length"] != float64(2000) {
		t.Errorf("expected route_length 2000, got %v", response["route_length"])
	}
	if response["stop_count"] != float64(5) {
		t.Errorf("expected stop_count 5, got %v", response["stop_count"])
	}
	if response["unique_stop_count"] != float64(3) {
		t.Errorf("expected unique_stop_count 3, got %v", response["unique_stop_count"])
	}
	// Curvature is road length over geographic length; the road distances
	// here are shorter than the great-circle ones, so it is below 1.
	a := geo.Coordinates{Lat: 55.574371, Lng: 37.6517}
	b := geo.Coordinates{Lat: 55.587655, Lng: 37.645687}
	c := geo.Coordinates{Lat: 55.592028, Lng: 37.653656}
	wantCurvature := 2000 / (2 * (geo.Distance(a, b) + geo.Distance(b, c)))
	if curvature := response["curvature"].(float64); math.Abs(curvature-wantCurvature) > 1e-12 {
		t.Errorf("expected curvature %v, got %v", wantCurvature, curvature)
	}

	// Key order matches the response schema.
	wantPrefix := `[{"curvature":`
	if !strings.HasPrefix(got, wantPrefix) {
		t.Errorf("expected response to start with %s, got %s", wantPrefix, got)
	}
}

func TestRouteResponse(t *testing.T) {
	got := processDocument(t, `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 55.574371, "longitude": 37.6517,
			 "road_distances": {"B": 1000}},
			{"type": "Stop", "name": "B", "latitude": 55.587655, "longitude": 37.645687,
			 "road_distances": {"A": 1000}},
			{"type": "Bus", "name": "l", "stops": ["A", "B", "A"], "is_roundtrip": true}
		],
		"routing_settings": {"bus_wait_time": 6, "bus_velocity": 40},
		"stat_requests": [
			{"id": 1, "type": "Route", "from": "A", "to": "A"},
			{"id": 2, "type": "Route", "from": "A", "to": "B"},
			{"id": 3, "type": "Route", "from": "A", "to": "Nowhere"}
		]
	}`)

	var responses []map[string]any
	if err := json.Unmarshal([]byte(got), &responses); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, got)
	}
	if len(responses) != 3 {
		t.Fatalf("expected 3 responses, got %d", len(responses))
	}

	trivial := responses[0]
	if trivial["total_time"] != float64(0) {
		t.Errorf("expected total_time 0, got %v", trivial["total_time"])
	}
	if items := trivial["items"].([]any); len(items) != 0 {
		t.Errorf("expected no items, got %v", items)
	}

	ride := responses[1]
	if total := ride["total_time"].(float64); math.Abs(total-7.5) > 1e-9 {
		t.Errorf("expected total_time 7.5, got %v", total)
	}
	items := ride["items"].([]any)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	wait := items[0].(map[string]any)
	if wait["type"] != "Wait" || wait["stop_name"] != "A" || wait["time"] != float64(6) {
		t.Errorf("unexpected wait item: %v", wait)
	}
	bus := items[1].(map[string]any)
	if bus["type"] != "Bus" || bus["bus"] != "l" || bus["span_count"] != float64(1) || bus["time"] != float64(1.5) {
		t.Errorf("unexpected bus item: %v", bus)
	}

	missing := responses[2]
	if missing["error_message"] != "not found" {
		t.Errorf("expected not found, got %v", missing)
	}
}

func TestMapResponse(t *testing.T) {
	got := processDocument(t, `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 55.5, "longitude": 37.5, "road_distances": {}},
			{"type": "Stop", "name": "B", "latitude": 55.6, "longitude": 37.6, "road_distances": {}},
			{"type": "Bus", "name": "r", "stops": ["A", "B", "A"], "is_roundtrip": true}
		],
		"render_settings": {
			"width": 200, "height": 200, "padding": 30,
			"line_width": 4, "stop_radius": 5,
			"bus_label_font_size": 20, "bus_label_offset": [7, 15],
			"stop_label_font_size": 18, "stop_label_offset": [7, -3],
			"underlayer_color": "white", "underlayer_width": 3,
			"color_palette": ["red", "green"]
		},
		"routing_settings": {"bus_wait_time": 6, "bus_velocity": 40},
		"stat_requests": [{"id": 11, "type": "Map"}, {"id": 12, "type": "Map"}]
	}`)

	var responses []map[string]any
	if err := json.Unmarshal([]byte(got), &responses); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, got)
	}
	if len(responses) != 2 {
		t.Fatalf("expected 2 responses, got %d", len(responses))
	}
	first := responses[0]["map"].(string)
	second := responses[1]["map"].(string)
	if first != second {
		t.Error("repeated Map requests must reuse the same rendering")
	}
	if !strings.HasPrefix(first, "<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n<svg") {
		t.Errorf("unexpected document preamble: %q", first[:60])
	}
	if !strings.Contains(first, "<polyline points=\"30,170 170,30 30,170\" fill=\"none\" stroke=\"red\"") {
		t.Errorf("expected the red round-trip polyline, got:\n%s", first)
	}
	if strings.HasSuffix(first, "\n") {
		t.Error("the SVG document must not end with a newline")
	}
}

func TestUnknownStatRequestType(t *testing.T) {
	got := processDocument(t, `{"stat_requests": [{"id": 9, "type": "Teleport"}]}`)
	want := `[{"request_id":9,"error_message":"not found"}]`
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

// TestMakeBaseThenProcessRequests exercises the two-phase flow end to
// end through the persistence artifact.
func TestMakeBaseThenProcessRequests(t *testing.T) {
	baseDocument := `{
		"base_requests": [
			{"type": "Stop", "name": "A", "latitude": 55.5, "longitude": 37.5,
			 "road_distances": {"B": 1000}},
			{"type": "Stop", "name": "B", "latitude": 55.6, "longitude": 37.6,
			 "road_distances": {"A": 1000}},
			{"type": "Bus", "name": "r", "stops": ["A", "B", "A"], "is_roundtrip": true}
		],
		"render_settings": {
			"width": 200, "height": 200, "padding": 30,
			"line_width": 4, "stop_radius": 5,
			"bus_label_font_size": 20, "bus_label_offset": [7, 15],
			"stop_label_font_size": 18, "stop_label_offset": [7, -3],
			"underlayer_color": "white", "underlayer_width": 3,
			"color_palette": ["red", "green"]
		},
		"routing_settings": {"bus_wait_time": 6, "bus_velocity": 40}
	}`

	reader, err := jsonio.NewReader(strings.NewReader(baseDocument))
	if err != nil {
		t.Fatal(err)
	}
	cat, err := BuildCatalogue(reader)
	if err != nil {
		t.Fatal(err)
	}
	renderSettings, _ := reader.RenderSettings()
	routingSettings, _ := reader.RoutingSettings()

	artifact := storage.Encode(cat, renderSettings, routingSettings)
	data, err := storage.Decode(artifact)
	if err != nil {
		t.Fatal(err)
	}

	handler := NewStatHandler(data.Catalogue,
		render.NewMapRenderer(data.RenderSettings),
		routing.NewRouter(data.RouterSettings, data.Catalogue))

	var out bytes.Buffer
	requests := []jsonio.StatRequest{
		jsonio.GetBusRequest{ID: 1, Name: "r"},
		jsonio.GetRouteRequest{ID: 2, From: "A", To: "B"},
	}
	if err := handler.Process(&out, requests); err != nil {
		t.Fatal(err)
	}

	var responses []map[string]any
	if err := json.Unmarshal(out.Bytes(), &responses); err != nil {
		t.Fatalf("output is not a JSON array: %v\n%s", err, out.String())
	}
	if responses[0]["stop_count"] != float64(3) {
		t.Errorf("expected stop_count 3, got %v", responses[0]["stop_count"])
	}
	if total := responses[1]["total_time"].(float64); math.Abs(total-7.5) > 1e-9 {
		t.Errorf("expected total_time 7.5, got %v", total)
	}
}

// The renderer settings parsed from JSON are the same values the map
// layer consumes; spot-check the underlayer color shortcut.
func TestRenderSettingsFlowThrough(t *testing.T) {
	reader, err := jsonio.NewReader(strings.NewReader(`{
		"render_settings": {
			"width": 200, "height": 200, "padding": 30,
			"line_width": 4, "stop_radius": 5,
			"bus_label_font_size": 20, "bus_label_offset": [7, 15],
			"stop_label_font_size": 18, "stop_label_offset": [7, -3],
			"underlayer_color": [255, 255, 255, 0.85], "underlayer_width": 3,
			"color_palette": ["red"]
		}
	}`))
	if err != nil {
		t.Fatal(err)
	}
	settings, ok := reader.RenderSettings()
	if !ok {
		t.Fatal("render settings must be present")
	}
	if settings.UnderlayerColor != svg.RGBA(255, 255, 255, 0.85) {
		t.Errorf("unexpected underlayer color: %+v", settings.UnderlayerColor)
	}
}
