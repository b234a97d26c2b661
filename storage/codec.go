package storage

import (
	"fmt"
	"math"
	"os"
	"sort"

	"google.golang.org/protobuf/encoding/protowire"

	"github.com/urban-transit-tools/transport-catalogue/catalogue"
	"github.com/urban-transit-tools/transport-catalogue/geo"
	"github.com/urban-transit-tools/transport-catalogue/render"
	"github.com/urban-transit-tools/transport-catalogue/routing"
	"github.com/urban-transit-tools/transport-catalogue/svg"
)

// Settings locate the persisted artifact.
type Settings struct {
	File string `json:"file" yaml:"file"`
}

// Data is the persisted triple.
type Data struct {
	Catalogue      *catalogue.Catalogue
	RenderSettings render.Settings
	RouterSettings routing.Settings
}

// Serializer saves and loads the artifact at the configured path.
type Serializer struct {
	settings Settings
}

// NewSerializer returns a serializer for the given settings.
func NewSerializer(settings Settings) *Serializer {
	return &Serializer{settings: settings}
}

// Save encodes the triple and rewrites the artifact file.
func (s *Serializer) Save(cat *catalogue.Catalogue, renderSettings render.Settings, routerSettings routing.Settings) error {
	data := Encode(cat, renderSettings, routerSettings)
	if err := os.WriteFile(s.settings.File, data, 0o644); err != nil {
		return fmt.Errorf("save base: %w", err)
	}
	return nil
}

// Load reads the artifact file and decodes the triple.
func (s *Serializer) Load() (Data, error) {
	raw, err := os.ReadFile(s.settings.File)
	if err != nil {
		return Data{}, fmt.Errorf("load base: %w", err)
	}
	data, err := Decode(raw)
	if err != nil {
		return Data{}, fmt.Errorf("load base: %w", err)
	}
	return data, nil
}

// Top-level field numbers.
const (
	fieldCatalogue      = 1
	fieldRenderSettings = 2
	fieldRouterSettings = 3
)

// Catalogue message fields.
const (
	fieldStop     = 1
	fieldDistance = 2
	fieldBus      = 3
)

// Stop message fields.
const (
	fieldStopID          = 1
	fieldStopName        = 2
	fieldStopCoordinates = 3
)

// Coordinates / Point fields.
const (
	fieldLatOrX = 1
	fieldLngOrY = 2
)

// StopDistances fields.
const (
	fieldFromStopID    = 1
	fieldDistanceEntry = 2
)

// DistanceEntry fields.
const (
	fieldToStopID = 1
	fieldMeters   = 2
)

// Bus message fields.
const (
	fieldBusName        = 1
	fieldBusStopIDs     = 2
	fieldBusRouteLength = 3
	fieldBusCurvature   = 4
	fieldBusIsRoundtrip = 5
)

// RenderSettings fields.
const (
	fieldWidth             = 1
	fieldHeight            = 2
	fieldPadding           = 3
	fieldLineWidth         = 4
	fieldStopRadius        = 5
	fieldBusLabelFontSize  = 6
	fieldBusLabelOffset    = 7
	fieldStopLabelFontSize = 8
	fieldStopLabelOffset   = 9
	fieldUnderlayerColor   = 10
	fieldUnderlayerWidth   = 11
	fieldPalette           = 12
)

// Color oneof fields.
const (
	fieldColorName = 1
	fieldColorRGB  = 2
	fieldColorRGBA = 3
	fieldColorNone = 4
)

// Rgb / Rgba fields.
const (
	fieldRed     = 1
	fieldGreen   = 2
	fieldBlue    = 3
	fieldOpacity = 4
)

// RouterSettings fields.
const (
	fieldBusWaitTime = 1
	fieldBusVelocity = 2
)

// Encode serializes the triple into the wire format.
func Encode(cat *catalogue.Catalogue, renderSettings render.Settings, routerSettings routing.Settings) []byte {
	var b []byte
	b = appendMessage(b, fieldCatalogue, encodeCatalogue(cat))
	b = appendMessage(b, fieldRenderSettings, encodeRenderSettings(renderSettings))
	b = appendMessage(b, fieldRouterSettings, encodeRouterSettings(routerSettings))
	return b
}

// Decode restores the triple from the wire format.
func Decode(data []byte) (Data, error) {
	var out Data
	out.Catalogue = catalogue.New()
	err := eachField(data, func(num protowire.Number, payload []byte) error {
		switch num {
		case fieldCatalogue:
			cat, err := decodeCatalogue(payload)
			if err != nil {
				return err
			}
			out.Catalogue = cat
		case fieldRenderSettings:
			settings, err := decodeRenderSettings(payload)
			if err != nil {
				return err
			}
			out.RenderSettings = settings
		case fieldRouterSettings:
			settings, err := decodeRouterSettings(payload)
			if err != nil {
				return err
			}
			out.RouterSettings = settings
		}
		return nil
	})
	if err != nil {
		return Data{}, err
	}
	return out, nil
}

func encodeCatalogue(cat *catalogue.Catalogue) []byte {
	var b []byte
	for _, stop := range cat.Stops() {
		b = appendMessage(b, fieldStop, encodeStop(stop))
	}
	distances := cat.Distances()
	for _, stop := range cat.Stops() {
		inner := distances[stop.ID]
		if len(inner) == 0 {
			continue
		}
		b = appendMessage(b, fieldDistance, encodeStopDistances(stop.ID, inner))
	}
	for _, bus := range cat.Buses() {
		b = appendMessage(b, fieldBus, encodeBus(bus))
	}
	return b
}

func encodeStop(stop *catalogue.Stop) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldStopID, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(stop.ID))
	b = protowire.AppendTag(b, fieldStopName, protowire.BytesType)
	b = protowire.AppendString(b, stop.Name)
	var coords []byte
	coords = appendDouble(coords, fieldLatOrX, stop.Coordinates.Lat)
	coords = appendDouble(coords, fieldLngOrY, stop.Coordinates.Lng)
	b = appendMessage(b, fieldStopCoordinates, coords)
	return b
}

func encodeStopDistances(from catalogue.StopID, inner map[catalogue.StopID]float64) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldFromStopID, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(from))

	targets := make([]catalogue.StopID, 0, len(inner))
	for to := range inner {
		targets = append(targets, to)
	}
	sort.Slice(targets, func(i, j int) bool { return targets[i] < targets[j] })
	for _, to := range targets {
		var entry []byte
		entry = protowire.AppendTag(entry, fieldToStopID, protowire.VarintType)
		entry = protowire.AppendVarint(entry, uint64(to))
		entry = appendDouble(entry, fieldMeters, inner[to])
		b = appendMessage(b, fieldDistanceEntry, entry)
	}
	return b
}

func encodeBus(bus *catalogue.Bus) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldBusName, protowire.BytesType)
	b = protowire.AppendString(b, bus.Name)

	var packed []byte
	for _, stop := range bus.Route {
		packed = protowire.AppendVarint(packed, uint64(stop.ID))
	}
	b = appendMessage(b, fieldBusStopIDs, packed)

	b = appendDouble(b, fieldBusRouteLength, bus.RouteLength)
	b = appendDouble(b, fieldBusCurvature, bus.Curvature)
	b = protowire.AppendTag(b, fieldBusIsRoundtrip, protowire.VarintType)
	b = protowire.AppendVarint(b, boolBit(bus.IsRoundtrip))
	return b
}

func encodeRenderSettings(s render.Settings) []byte {
	var b []byte
	b = appendDouble(b, fieldWidth, s.Width)
	b = appendDouble(b, fieldHeight, s.Height)
	b = appendDouble(b, fieldPadding, s.Padding)
	b = appendDouble(b, fieldLineWidth, s.LineWidth)
	b = appendDouble(b, fieldStopRadius, s.StopRadius)
	b = protowire.AppendTag(b, fieldBusLabelFontSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.BusLabelFontSize))
	b = appendMessage(b, fieldBusLabelOffset, encodePoint(s.BusLabelOffset))
	b = protowire.AppendTag(b, fieldStopLabelFontSize, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.StopLabelFontSize))
	b = appendMessage(b, fieldStopLabelOffset, encodePoint(s.StopLabelOffset))
	b = appendMessage(b, fieldUnderlayerColor, encodeColor(s.UnderlayerColor))
	b = appendDouble(b, fieldUnderlayerWidth, s.UnderlayerWidth)
	for _, color := range s.ColorPalette {
		b = appendMessage(b, fieldPalette, encodeColor(color))
	}
	return b
}

func encodeRouterSettings(s routing.Settings) []byte {
	var b []byte
	b = appendDouble(b, fieldBusWaitTime, s.BusWaitTime)
	b = appendDouble(b, fieldBusVelocity, s.BusVelocity)
	return b
}

func encodePoint(p svg.Point) []byte {
	var b []byte
	b = appendDouble(b, fieldLatOrX, p.X)
	b = appendDouble(b, fieldLngOrY, p.Y)
	return b
}

func encodeColor(c svg.Color) []byte {
	var b []byte
	switch c.Kind {
	case svg.ColorNamed:
		b = protowire.AppendTag(b, fieldColorName, protowire.BytesType)
		b = protowire.AppendString(b, c.Name)
	case svg.ColorRGB:
		b = appendMessage(b, fieldColorRGB, encodeChannels(c, false))
	case svg.ColorRGBA:
		b = appendMessage(b, fieldColorRGBA, encodeChannels(c, true))
	default:
		b = protowire.AppendTag(b, fieldColorNone, protowire.VarintType)
		b = protowire.AppendVarint(b, 1)
	}
	return b
}

func encodeChannels(c svg.Color, withOpacity bool) []byte {
	var b []byte
	b = protowire.AppendTag(b, fieldRed, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Red))
	b = protowire.AppendTag(b, fieldGreen, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Green))
	b = protowire.AppendTag(b, fieldBlue, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(c.Blue))
	if withOpacity {
		b = appendDouble(b, fieldOpacity, c.Opacity)
	}
	return b
}

type stopRecord struct {
	id   catalogue.StopID
	name string
	c    geo.Coordinates
}

type distanceRecord struct {
	from    catalogue.StopID
	entries []distanceEntry
}

type distanceEntry struct {
	to     catalogue.StopID
	meters float64
}

type busRecord struct {
	name        string
	stopIDs     []catalogue.StopID
	routeLength float64
	curvature   float64
	isRoundtrip bool
}

func decodeCatalogue(data []byte) (*catalogue.Catalogue, error) {
	var stops []stopRecord
	var distances []distanceRecord
	var buses []busRecord

	err := eachField(data, func(num protowire.Number, payload []byte) error {
		switch num {
		case fieldStop:
			stop, err := decodeStop(payload)
			if err != nil {
				return err
			}
			stops = append(stops, stop)
		case fieldDistance:
			record, err := decodeStopDistances(payload)
			if err != nil {
				return err
			}
			distances = append(distances, record)
		case fieldBus:
			bus, err := decodeBus(payload)
			if err != nil {
				return err
			}
			buses = append(buses, bus)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	cat := catalogue.New()

	// Re-inserting in ascending id order reproduces the dense ids.
	sort.Slice(stops, func(i, j int) bool { return stops[i].id < stops[j].id })
	for _, record := range stops {
		stop, err := cat.AddStop(record.name, record.c)
		if err != nil {
			return nil, err
		}
		if stop.ID != record.id {
			return nil, fmt.Errorf("stop ids are not dense: stored %d, assigned %d", record.id, stop.ID)
		}
	}
	for _, record := range distances {
		from, ok := cat.StopByID(record.from)
		if !ok {
			return nil, fmt.Errorf("distance references unknown stop id %d", record.from)
		}
		for _, entry := range record.entries {
			to, ok := cat.StopByID(entry.to)
			if !ok {
				return nil, fmt.Errorf("distance references unknown stop id %d", entry.to)
			}
			if err := cat.AddDistance(from.Name, to.Name, entry.meters); err != nil {
				return nil, err
			}
		}
	}
	for _, record := range buses {
		bus := &catalogue.Bus{
			Name:        record.name,
			RouteLength: record.routeLength,
			Curvature:   record.curvature,
			IsRoundtrip: record.isRoundtrip,
		}
		bus.Route = make([]*catalogue.Stop, 0, len(record.stopIDs))
		for _, id := range record.stopIDs {
			stop, ok := cat.StopByID(id)
			if !ok {
				return nil, fmt.Errorf("bus %q references unknown stop id %d", record.name, id)
			}
			bus.Route = append(bus.Route, stop)
		}
		if err := cat.RestoreBus(bus); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

func decodeStop(data []byte) (stopRecord, error) {
	var record stopRecord
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldStopID:
			v, n := protowire.ConsumeVarint(b)
			record.id = catalogue.StopID(v)
			return n, nil
		case fieldStopName:
			v, n := protowire.ConsumeString(b)
			record.name = v
			return n, nil
		case fieldStopCoordinates:
			payload, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			var err error
			record.c, err = decodeCoordinates(payload)
			return n, err
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return record, err
}

func decodeCoordinates(data []byte) (geo.Coordinates, error) {
	var c geo.Coordinates
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldLatOrX:
			v, n := protowire.ConsumeFixed64(b)
			c.Lat = math.Float64frombits(v)
			return n, nil
		case fieldLngOrY:
			v, n := protowire.ConsumeFixed64(b)
			c.Lng = math.Float64frombits(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return c, err
}

func decodeStopDistances(data []byte) (distanceRecord, error) {
	var record distanceRecord
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldFromStopID:
			v, n := protowire.ConsumeVarint(b)
			record.from = catalogue.StopID(v)
			return n, nil
		case fieldDistanceEntry:
			payload, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			entry, err := decodeDistanceEntry(payload)
			if err != nil {
				return n, err
			}
			record.entries = append(record.entries, entry)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return record, err
}

func decodeDistanceEntry(data []byte) (distanceEntry, error) {
	var entry distanceEntry
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldToStopID:
			v, n := protowire.ConsumeVarint(b)
			entry.to = catalogue.StopID(v)
			return n, nil
		case fieldMeters:
			v, n := protowire.ConsumeFixed64(b)
			entry.meters = math.Float64frombits(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return entry, err
}

func decodeBus(data []byte) (busRecord, error) {
	var record busRecord
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldBusName:
			v, n := protowire.ConsumeString(b)
			record.name = v
			return n, nil
		case fieldBusStopIDs:
			payload, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			for len(payload) > 0 {
				v, vn := protowire.ConsumeVarint(payload)
				if vn < 0 {
					return n, protowire.ParseError(vn)
				}
				record.stopIDs = append(record.stopIDs, catalogue.StopID(v))
				payload = payload[vn:]
			}
			return n, nil
		case fieldBusRouteLength:
			v, n := protowire.ConsumeFixed64(b)
			record.routeLength = math.Float64frombits(v)
			return n, nil
		case fieldBusCurvature:
			v, n := protowire.ConsumeFixed64(b)
			record.curvature = math.Float64frombits(v)
			return n, nil
		case fieldBusIsRoundtrip:
			v, n := protowire.ConsumeVarint(b)
			record.isRoundtrip = v != 0
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return record, err
}

func decodeRenderSettings(data []byte) (render.Settings, error) {
	var s render.Settings
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldWidth, fieldHeight, fieldPadding, fieldLineWidth, fieldStopRadius, fieldUnderlayerWidth:
			v, n := protowire.ConsumeFixed64(b)
			value := math.Float64frombits(v)
			switch num {
			case fieldWidth:
				s.Width = value
			case fieldHeight:
				s.Height = value
			case fieldPadding:
				s.Padding = value
			case fieldLineWidth:
				s.LineWidth = value
			case fieldStopRadius:
				s.StopRadius = value
			case fieldUnderlayerWidth:
				s.UnderlayerWidth = value
			}
			return n, nil
		case fieldBusLabelFontSize:
			v, n := protowire.ConsumeVarint(b)
			s.BusLabelFontSize = int(v)
			return n, nil
		case fieldStopLabelFontSize:
			v, n := protowire.ConsumeVarint(b)
			s.StopLabelFontSize = int(v)
			return n, nil
		case fieldBusLabelOffset, fieldStopLabelOffset:
			payload, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			point, err := decodePoint(payload)
			if err != nil {
				return n, err
			}
			if num == fieldBusLabelOffset {
				s.BusLabelOffset = point
			} else {
				s.StopLabelOffset = point
			}
			return n, nil
		case fieldUnderlayerColor:
			payload, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			color, err := decodeColor(payload)
			if err != nil {
				return n, err
			}
			s.UnderlayerColor = color
			return n, nil
		case fieldPalette:
			payload, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			color, err := decodeColor(payload)
			if err != nil {
				return n, err
			}
			s.ColorPalette = append(s.ColorPalette, color)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return s, err
}

func decodeRouterSettings(data []byte) (routing.Settings, error) {
	var s routing.Settings
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldBusWaitTime:
			v, n := protowire.ConsumeFixed64(b)
			s.BusWaitTime = math.Float64frombits(v)
			return n, nil
		case fieldBusVelocity:
			v, n := protowire.ConsumeFixed64(b)
			s.BusVelocity = math.Float64frombits(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return s, err
}

func decodePoint(data []byte) (svg.Point, error) {
	var p svg.Point
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldLatOrX:
			v, n := protowire.ConsumeFixed64(b)
			p.X = math.Float64frombits(v)
			return n, nil
		case fieldLngOrY:
			v, n := protowire.ConsumeFixed64(b)
			p.Y = math.Float64frombits(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return p, err
}

func decodeColor(data []byte) (svg.Color, error) {
	color := svg.NoneColor
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldColorName:
			v, n := protowire.ConsumeString(b)
			color = svg.Named(v)
			return n, nil
		case fieldColorRGB, fieldColorRGBA:
			payload, n := protowire.ConsumeBytes(b)
			if n < 0 {
				return n, nil
			}
			decoded, err := decodeChannels(payload, num == fieldColorRGBA)
			if err != nil {
				return n, err
			}
			color = decoded
			return n, nil
		case fieldColorNone:
			_, n := protowire.ConsumeVarint(b)
			color = svg.NoneColor
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	return color, err
}

func decodeChannels(data []byte, withOpacity bool) (svg.Color, error) {
	var r, g, bl uint8
	var opacity float64
	err := walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		switch num {
		case fieldRed:
			v, n := protowire.ConsumeVarint(b)
			r = uint8(v)
			return n, nil
		case fieldGreen:
			v, n := protowire.ConsumeVarint(b)
			g = uint8(v)
			return n, nil
		case fieldBlue:
			v, n := protowire.ConsumeVarint(b)
			bl = uint8(v)
			return n, nil
		case fieldOpacity:
			v, n := protowire.ConsumeFixed64(b)
			opacity = math.Float64frombits(v)
			return n, nil
		}
		return protowire.ConsumeFieldValue(num, typ, b), nil
	})
	if err != nil {
		return svg.NoneColor, err
	}
	if withOpacity {
		return svg.RGBA(r, g, bl, opacity), nil
	}
	return svg.RGB(r, g, bl), nil
}

func appendDouble(b []byte, num protowire.Number, v float64) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed64Type)
	return protowire.AppendFixed64(b, math.Float64bits(v))
}

func appendMessage(b []byte, num protowire.Number, msg []byte) []byte {
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

func boolBit(v bool) uint64 {
	if v {
		return 1
	}
	return 0
}

// eachField visits every length-delimited field of a message; non-bytes
// fields are skipped.
func eachField(data []byte, visit func(num protowire.Number, payload []byte) error) error {
	return walkFields(data, func(num protowire.Number, typ protowire.Type, b []byte) (int, error) {
		if typ != protowire.BytesType {
			return protowire.ConsumeFieldValue(num, typ, b), nil
		}
		payload, n := protowire.ConsumeBytes(b)
		if n < 0 {
			return n, nil
		}
		return n, visit(num, payload)
	})
}

// walkFields drives a field-by-field scan. The callback consumes the
// field value and returns how many bytes it used; a negative count is a
// wire-format error.
func walkFields(data []byte, consume func(num protowire.Number, typ protowire.Type, b []byte) (int, error)) error {
	for len(data) > 0 {
		num, typ, tagLen := protowire.ConsumeTag(data)
		if tagLen < 0 {
			return fmt.Errorf("corrupt artifact: %w", protowire.ParseError(tagLen))
		}
		data = data[tagLen:]
		used, err := consume(num, typ, data)
		if err != nil {
			return err
		}
		if used < 0 {
			return fmt.Errorf("corrupt artifact: %w", protowire.ParseError(used))
		}
		data = data[used:]
	}
	return nil
}
