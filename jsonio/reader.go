package jsonio

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/urban-transit-tools/transport-catalogue/render"
	"github.com/urban-transit-tools/transport-catalogue/routing"
	"github.com/urban-transit-tools/transport-catalogue/storage"
)

// AddStopRequest declares a stop with its outgoing road distances.
type AddStopRequest struct {
	Name          string             `json:"name"`
	Latitude      float64            `json:"latitude"`
	Longitude     float64            `json:"longitude"`
	RoadDistances map[string]float64 `json:"road_distances"`
}

// AddBusRequest declares a bus over named stops.
type AddBusRequest struct {
	Name        string   `json:"name"`
	Stops       []string `json:"stops"`
	IsRoundtrip bool     `json:"is_roundtrip"`
}

// StatRequest is one of GetStopRequest, GetBusRequest, GetMapRequest,
// GetRouteRequest or UnknownRequest.
type StatRequest interface {
	RequestID() int
}

// GetStopRequest asks for the buses visiting a stop.
type GetStopRequest struct {
	ID   int
	Name string
}

// GetBusRequest asks for a bus's route statistics.
type GetBusRequest struct {
	ID   int
	Name string
}

// GetMapRequest asks for the rendered SVG map.
type GetMapRequest struct {
	ID int
}

// GetRouteRequest asks for the fastest trip between two stops.
type GetRouteRequest struct {
	ID   int
	From string
	To   string
}

// UnknownRequest carries an unrecognized stat request type.
type UnknownRequest struct {
	ID int
}

func (r GetStopRequest) RequestID() int  { return r.ID }
func (r GetBusRequest) RequestID() int   { return r.ID }
func (r GetMapRequest) RequestID() int   { return r.ID }
func (r GetRouteRequest) RequestID() int { return r.ID }
func (r UnknownRequest) RequestID() int  { return r.ID }

// Reader parses the input document once and hands out its sections.
type Reader struct {
	stops         []AddStopRequest
	buses         []AddBusRequest
	stats         []StatRequest
	render        *render.Settings
	routing       *routing.Settings
	serialization *storage.Settings
}

type document struct {
	BaseRequests          []json.RawMessage `json:"base_requests"`
	StatRequests          []statRequestDTO  `json:"stat_requests"`
	RenderSettings        *render.Settings  `json:"render_settings"`
	RoutingSettings       *routing.Settings `json:"routing_settings"`
	SerializationSettings *storage.Settings `json:"serialization_settings"`
}

type baseRequestHeader struct {
	Type string `json:"type"`
}

type statRequestDTO struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
	From string `json:"from"`
	To   string `json:"to"`
}

// NewReader consumes the whole input stream and parses the document.
func NewReader(input io.Reader) (*Reader, error) {
	data, err := io.ReadAll(input)
	if err != nil {
		return nil, fmt.Errorf("read input document: %w", err)
	}
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse input document: %w", err)
	}

	reader := &Reader{
		render:        doc.RenderSettings,
		routing:       doc.RoutingSettings,
		serialization: doc.SerializationSettings,
	}
	for _, raw := range doc.BaseRequests {
		var header baseRequestHeader
		if err := json.Unmarshal(raw, &header); err != nil {
			return nil, fmt.Errorf("parse base request: %w", err)
		}
		switch header.Type {
		case "Stop":
			var stop AddStopRequest
			if err := json.Unmarshal(raw, &stop); err != nil {
				return nil, fmt.Errorf("parse stop request: %w", err)
			}
			reader.stops = append(reader.stops, stop)
		case "Bus":
			var bus AddBusRequest
			if err := json.Unmarshal(raw, &bus); err != nil {
				return nil, fmt.Errorf("parse bus request: %w", err)
			}
			reader.buses = append(reader.buses, bus)
		default:
			return nil, fmt.Errorf("unknown base request type %q", header.Type)
		}
	}
	for _, dto := range doc.StatRequests {
		reader.stats = append(reader.stats, parseStatRequest(dto))
	}
	return reader, nil
}

func parseStatRequest(dto statRequestDTO) StatRequest {
	switch dto.Type {
	case "Stop":
		return GetStopRequest{ID: dto.ID, Name: dto.Name}
	case "Bus":
		return GetBusRequest{ID: dto.ID, Name: dto.Name}
	case "Map":
		return GetMapRequest{ID: dto.ID}
	case "Route":
		return GetRouteRequest{ID: dto.ID, From: dto.From, To: dto.To}
	default:
		return UnknownRequest{ID: dto.ID}
	}
}

// Stops returns the stop declarations in document order.
func (r *Reader) Stops() []AddStopRequest { return r.stops }

// Buses returns the bus declarations in document order.
func (r *Reader) Buses() []AddBusRequest { return r.buses }

// StatRequests returns the stat requests in document order.
func (r *Reader) StatRequests() []StatRequest { return r.stats }

// RenderSettings returns the render_settings section if present.
func (r *Reader) RenderSettings() (render.Settings, bool) {
	if r.render == nil {
		return render.Settings{}, false
	}
	return *r.render, true
}

// RoutingSettings returns the routing_settings section if present.
func (r *Reader) RoutingSettings() (routing.Settings, bool) {
	if r.routing == nil {
		return routing.Settings{}, false
	}
	return *r.routing, true
}

// SerializationSettings returns the serialization_settings section if
// present.
func (r *Reader) SerializationSettings() (storage.Settings, bool) {
	if r.serialization == nil {
		return storage.Settings{}, false
	}
	return *r.serialization, true
}
