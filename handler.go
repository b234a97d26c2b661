package transportcatalogue

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urban-transit-tools/transport-catalogue/catalogue"
	"github.com/urban-transit-tools/transport-catalogue/geo"
	"github.com/urban-transit-tools/transport-catalogue/jsonio"
	"github.com/urban-transit-tools/transport-catalogue/render"
	"github.com/urban-transit-tools/transport-catalogue/routing"
)

// Response document field names.
const (
	fieldRequestID       = "request_id"
	fieldErrorMessage    = "error_message"
	fieldBuses           = "buses"
	fieldCurvature       = "curvature"
	fieldRouteLength     = "route_length"
	fieldStopCount       = "stop_count"
	fieldUniqueStopCount = "unique_stop_count"
	fieldMap             = "map"
	fieldItems           = "items"
	fieldTotalTime       = "total_time"
	fieldType            = "type"
	fieldStopName        = "stop_name"
	fieldBus             = "bus"
	fieldSpanCount       = "span_count"
	fieldTime            = "time"

	notFoundMessage = "not found"
	typeWait        = "Wait"
	typeBus         = "Bus"
)

// BuildCatalogue populates a catalogue from the parsed document: every
// stop first, then the stops' road distances, then the buses.
func BuildCatalogue(reader *jsonio.Reader) (*catalogue.Catalogue, error) {
	cat := catalogue.New()
	for _, stop := range reader.Stops() {
		coordinates := geo.Coordinates{Lat: stop.Latitude, Lng: stop.Longitude}
		if _, err := cat.AddStop(stop.Name, coordinates); err != nil {
			return nil, err
		}
	}
	for _, stop := range reader.Stops() {
		for toName, meters := range stop.RoadDistances {
			if err := cat.AddDistance(stop.Name, toName, meters); err != nil {
				return nil, err
			}
		}
	}
	for _, bus := range reader.Buses() {
		if _, err := cat.AddBus(bus.Name, bus.Stops, bus.IsRoundtrip); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// StatHandler answers stat requests against a loaded catalogue. The
// rendered map is memoized: the catalogue cannot change underneath a
// handler, so every Map request in a run shares one rendering.
type StatHandler struct {
	cat       *catalogue.Catalogue
	renderer  *render.MapRenderer
	router    *routing.Router
	cachedMap *string
}

// NewStatHandler wires a handler over the catalogue, renderer and
// router.
func NewStatHandler(cat *catalogue.Catalogue, renderer *render.MapRenderer, router *routing.Router) *StatHandler {
	return &StatHandler{cat: cat, renderer: renderer, router: router}
}

// Process answers every request in order and writes the response array.
// The output is always a valid JSON array, [] when requests is empty.
func (h *StatHandler) Process(out io.Writer, requests []jsonio.StatRequest) error {
	responses, err := h.HandleStatRequests(requests)
	if err != nil {
		return err
	}
	data, err := json.Marshal(responses)
	if err != nil {
		return fmt.Errorf("marshal responses: %w", err)
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("write responses: %w", err)
	}
	return nil
}

// HandleStatRequests builds the response array without serializing it.
func (h *StatHandler) HandleStatRequests(requests []jsonio.StatRequest) (*jsonio.Array, error) {
	responses := jsonio.NewArray()
	for _, request := range requests {
		switch request := request.(type) {
		case jsonio.GetStopRequest:
			responses.Append(h.handleStop(request))
		case jsonio.GetBusRequest:
			responses.Append(h.handleBus(request))
		case jsonio.GetMapRequest:
			response, err := h.handleMap(request)
			if err != nil {
				return nil, err
			}
			responses.Append(response)
		case jsonio.GetRouteRequest:
			responses.Append(h.handleRoute(request))
		default:
			responses.Append(notFound(request.RequestID()))
		}
	}
	return responses, nil
}

func (h *StatHandler) handleStop(request jsonio.GetStopRequest) any {
	busNames, ok := h.cat.StopInfo(request.Name)
	if !ok {
		return notFound(request.ID)
	}
	buses := jsonio.NewBuilder().StartArray()
	for _, name := range busNames {
		buses.Value(name)
	}
	return jsonio.NewBuilder().
		StartDict().
		Key(fieldBuses).Value(buses.EndArray().Build()).
		Key(fieldRequestID).Value(request.ID).
		EndDict().
		Build()
}

func (h *StatHandler) handleBus(request jsonio.GetBusRequest) any {
	info, ok := h.cat.BusInfo(request.Name)
	if !ok {
		return notFound(request.ID)
	}
	return jsonio.NewBuilder().
		StartDict().
		Key(fieldCurvature).Value(info.Curvature).
		Key(fieldRequestID).Value(request.ID).
		Key(fieldRouteLength).Value(info.RouteLength).
		Key(fieldStopCount).Value(info.StopCount).
		Key(fieldUniqueStopCount).Value(info.UniqueStopCount).
		EndDict().
		Build()
}

func (h *StatHandler) handleMap(request jsonio.GetMapRequest) (any, error) {
	document, err := h.renderedMap()
	if err != nil {
		return nil, err
	}
	return jsonio.NewBuilder().
		StartDict().
		Key(fieldMap).Value(document).
		Key(fieldRequestID).Value(request.ID).
		EndDict().
		Build(), nil
}

func (h *StatHandler) handleRoute(request jsonio.GetRouteRequest) any {
	info, ok := h.router.BuildRoute(request.From, request.To)
	if !ok {
		return notFound(request.ID)
	}
	items := jsonio.NewBuilder().StartArray()
	for _, item := range info.Items {
		switch item := item.(type) {
		case routing.WaitItem:
			items.Value(jsonio.NewBuilder().
				StartDict().
				Key(fieldStopName).Value(item.StopName).
				Key(fieldTime).Value(item.Time).
				Key(fieldType).Value(typeWait).
				EndDict().
				Build())
		case routing.BusItem:
			items.Value(jsonio.NewBuilder().
				StartDict().
				Key(fieldBus).Value(item.Bus).
				Key(fieldSpanCount).Value(item.SpanCount).
				Key(fieldTime).Value(item.Time).
				Key(fieldType).Value(typeBus).
				EndDict().
				Build())
		}
	}
	return jsonio.NewBuilder().
		StartDict().
		Key(fieldItems).Value(items.EndArray().Build()).
		Key(fieldTotalTime).Value(info.TotalTime).
		Key(fieldRequestID).Value(request.ID).
		EndDict().
		Build()
}

func (h *StatHandler) renderedMap() (string, error) {
	if h.cachedMap != nil {
		return *h.cachedMap, nil
	}
	var buf bytes.Buffer
	if err := h.renderer.Render(h.cat.Buses(), &buf); err != nil {
		return "", fmt.Errorf("render map: %w", err)
	}
	document := buf.String()
	h.cachedMap = &document
	return document, nil
}

func notFound(requestID int) any {
	return jsonio.NewBuilder().
		StartDict().
		Key(fieldRequestID).Value(requestID).
		Key(fieldErrorMessage).Value(notFoundMessage).
		EndDict().
		Build()
}
