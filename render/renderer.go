package render

import (
	"io"
	"sort"

	"github.com/urban-transit-tools/transport-catalogue/catalogue"
	"github.com/urban-transit-tools/transport-catalogue/svg"
)

const (
	defaultFont       = "Verdana"
	defaultFontWeight = "bold"
)

var (
	stopFillColor      = svg.Named("white")
	stopLabelFillColor = svg.Named("black")
)

// Settings are the map appearance options supplied with the input
// document. The color palette must be non-empty.
type Settings struct {
	Width             float64     `json:"width" yaml:"width" validate:"gte=0"`
	Height            float64     `json:"height" yaml:"height" validate:"gte=0"`
	Padding           float64     `json:"padding" yaml:"padding" validate:"gte=0"`
	LineWidth         float64     `json:"line_width" yaml:"line_width" validate:"gte=0"`
	StopRadius        float64     `json:"stop_radius" yaml:"stop_radius" validate:"gte=0"`
	BusLabelFontSize  int         `json:"bus_label_font_size" yaml:"bus_label_font_size" validate:"gte=0"`
	BusLabelOffset    svg.Point   `json:"bus_label_offset" yaml:"-"`
	StopLabelFontSize int         `json:"stop_label_font_size" yaml:"stop_label_font_size" validate:"gte=0"`
	StopLabelOffset   svg.Point   `json:"stop_label_offset" yaml:"-"`
	UnderlayerColor   svg.Color   `json:"underlayer_color" yaml:"-"`
	UnderlayerWidth   float64     `json:"underlayer_width" yaml:"underlayer_width" validate:"gte=0"`
	ColorPalette      []svg.Color `json:"color_palette" yaml:"-" validate:"min=1"`
}

// MapRenderer emits the SVG map for a set of buses.
type MapRenderer struct {
	settings Settings
}

// NewMapRenderer returns a renderer with the given settings.
func NewMapRenderer(settings Settings) *MapRenderer {
	return &MapRenderer{settings: settings}
}

// Settings returns the renderer's settings, e.g. for persistence.
func (m *MapRenderer) Settings() Settings { return m.settings }

// Render draws the buses in lexicographic name order: route lines,
// route labels, stop circles, stop labels.
func (m *MapRenderer) Render(buses []*catalogue.Bus, out io.Writer) error {
	sorted := make([]*catalogue.Bus, len(buses))
	copy(sorted, buses)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	projector := m.projectorFor(sorted)
	doc := svg.NewDocument()

	colorIndex := 0
	for _, bus := range sorted {
		if len(bus.Route) == 0 {
			continue
		}
		line := routeLine{
			route:     bus.Route,
			projector: projector,
			stroke:    m.settings.ColorPalette[colorIndex],
			width:     m.settings.LineWidth,
		}
		line.Draw(doc)
		colorIndex = (colorIndex + 1) % len(m.settings.ColorPalette)
	}

	colorIndex = 0
	for _, bus := range sorted {
		if len(bus.Route) == 0 {
			continue
		}
		labels := routeLabels{
			bus:       bus,
			projector: projector,
			color:     m.settings.ColorPalette[colorIndex],
			settings:  &m.settings,
		}
		labels.Draw(doc)
		colorIndex = (colorIndex + 1) % len(m.settings.ColorPalette)
	}

	stops := renderedStops(sorted)
	stopMarkers{stops: stops, projector: projector, radius: m.settings.StopRadius}.Draw(doc)
	stopLabels{stops: stops, projector: projector, settings: &m.settings}.Draw(doc)

	return doc.Render(out)
}

// projectorFor fits the projector to the stops of non-empty routes.
func (m *MapRenderer) projectorFor(sorted []*catalogue.Bus) SphereProjector {
	var minLat, maxLat, minLng, maxLng float64
	seeded := false
	for _, bus := range sorted {
		for _, stop := range bus.Route {
			c := stop.Coordinates
			if !seeded {
				minLat, maxLat, minLng, maxLng = c.Lat, c.Lat, c.Lng, c.Lng
				seeded = true
				continue
			}
			if c.Lat < minLat {
				minLat = c.Lat
			}
			if c.Lat > maxLat {
				maxLat = c.Lat
			}
			if c.Lng < minLng {
				minLng = c.Lng
			}
			if c.Lng > maxLng {
				maxLng = c.Lng
			}
		}
	}
	return NewSphereProjector(minLat, maxLat, minLng, maxLng,
		m.settings.Width, m.settings.Height, m.settings.Padding)
}

// renderedStops collects the distinct stops of every non-empty route,
// ordered lexicographically by name.
func renderedStops(buses []*catalogue.Bus) []*catalogue.Stop {
	byName := map[string]*catalogue.Stop{}
	for _, bus := range buses {
		for _, stop := range bus.Route {
			byName[stop.Name] = stop
		}
	}
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	stops := make([]*catalogue.Stop, len(names))
	for i, name := range names {
		stops[i] = byName[name]
	}
	return stops
}

// routeLine draws one bus route as a polyline.
type routeLine struct {
	route     []*catalogue.Stop
	projector SphereProjector
	stroke    svg.Color
	width     float64
}

func (r routeLine) Draw(container svg.ObjectContainer) {
	line := svg.NewPolyline().
		SetFillColor(svg.NoneColor).
		SetStrokeColor(r.stroke).
		SetStrokeWidth(r.width).
		SetStrokeLineCap(svg.LineCapRound).
		SetStrokeLineJoin(svg.LineJoinRound)
	for _, stop := range r.route {
		line.AddPoint(r.projector.Project(stop.Coordinates))
	}
	container.Add(line)
}

// underlayerAndText builds the two stacked text elements of one label.
func underlayerAndText(data string, offset svg.Point, fontSize int, fill svg.Color, settings *Settings) (*svg.Text, *svg.Text) {
	underlayer := svg.NewText().
		SetData(data).
		SetOffset(offset).
		SetFontSize(fontSize).
		SetFontFamily(defaultFont).
		SetFillColor(settings.UnderlayerColor).
		SetStrokeColor(settings.UnderlayerColor).
		SetStrokeWidth(settings.UnderlayerWidth).
		SetStrokeLineCap(svg.LineCapRound).
		SetStrokeLineJoin(svg.LineJoinRound)
	text := svg.NewText().
		SetData(data).
		SetOffset(offset).
		SetFontSize(fontSize).
		SetFontFamily(defaultFont).
		SetFillColor(fill)
	return underlayer, text
}

// routeLabels draws the bus name at the route start and, for a
// non-roundtrip bus whose midpoint differs from the start, at the
// midpoint as well.
type routeLabels struct {
	bus       *catalogue.Bus
	projector SphereProjector
	color     svg.Color
	settings  *Settings
}

func (r routeLabels) Draw(container svg.ObjectContainer) {
	underlayer, text := underlayerAndText(r.bus.Name, r.settings.BusLabelOffset,
		r.settings.BusLabelFontSize, r.color, r.settings)
	underlayer.SetFontWeight(defaultFontWeight)
	text.SetFontWeight(defaultFontWeight)

	route := r.bus.Route
	first := route[0].Coordinates
	mid := route[len(route)/2].Coordinates
	start := r.projector.Project(first)

	// The start/midpoint comparison keeps the original combined
	// lat+lng zero check for byte-identical output.
	if r.bus.IsRoundtrip || isZero((first.Lat-mid.Lat)+(first.Lng-mid.Lng)) {
		container.Add(underlayer.SetPosition(start))
		container.Add(text.SetPosition(start))
		return
	}

	end := r.projector.Project(mid)
	endUnderlayer := underlayer.Clone()
	endText := text.Clone()
	container.Add(underlayer.SetPosition(start))
	container.Add(text.SetPosition(start))
	container.Add(endUnderlayer.SetPosition(end))
	container.Add(endText.SetPosition(end))
}

// stopMarkers draws one white circle per rendered stop.
type stopMarkers struct {
	stops     []*catalogue.Stop
	projector SphereProjector
	radius    float64
}

func (s stopMarkers) Draw(container svg.ObjectContainer) {
	for _, stop := range s.stops {
		container.Add(svg.NewCircle().
			SetCenter(s.projector.Project(stop.Coordinates)).
			SetRadius(s.radius).
			SetFillColor(stopFillColor))
	}
}

// stopLabels draws the stop name pair (underlayer + text) per stop.
type stopLabels struct {
	stops     []*catalogue.Stop
	projector SphereProjector
	settings  *Settings
}

func (s stopLabels) Draw(container svg.ObjectContainer) {
	for _, stop := range s.stops {
		underlayer, text := underlayerAndText(stop.Name, s.settings.StopLabelOffset,
			s.settings.StopLabelFontSize, stopLabelFillColor, s.settings)
		position := s.projector.Project(stop.Coordinates)
		container.Add(underlayer.SetPosition(position))
		container.Add(text.SetPosition(position))
	}
}
