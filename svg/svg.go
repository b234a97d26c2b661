package svg

import (
	"io"
	"strconv"
	"strings"
)

// Line cap and join values used by path properties.
const (
	LineCapButt   = "butt"
	LineCapRound  = "round"
	LineCapSquare = "square"

	LineJoinArcs      = "arcs"
	LineJoinBevel     = "bevel"
	LineJoinMiter     = "miter"
	LineJoinMiterClip = "miter-clip"
	LineJoinRound     = "round"
)

// ftoa renders a float the way the rest of the document does: shortest
// representation that round-trips.
func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"\"", "&quot;",
	"'", "&apos;",
	"<", "&lt;",
	">", "&gt;",
)

func escape(s string) string {
	return escaper.Replace(s)
}

// Object is a renderable SVG element.
type Object interface {
	render(b *strings.Builder)
}

// ObjectContainer collects rendered objects in draw order.
type ObjectContainer interface {
	Add(obj Object)
}

// Drawable knows how to contribute its objects to a container.
type Drawable interface {
	Draw(container ObjectContainer)
}

// pathProps holds the optional presentation attributes shared by every
// element. Attributes render only when set, always in the order fill,
// stroke, stroke-width, stroke-linecap, stroke-linejoin.
type pathProps struct {
	fill        *Color
	stroke      *Color
	strokeWidth *float64
	lineCap     string
	lineJoin    string
}

func (p *pathProps) setFill(c Color)     { p.fill = &c }
func (p *pathProps) setStroke(c Color)   { p.stroke = &c }
func (p *pathProps) setWidth(w float64)  { p.strokeWidth = &w }
func (p *pathProps) setCap(cap string)   { p.lineCap = cap }
func (p *pathProps) setJoin(join string) { p.lineJoin = join }

func (p *pathProps) renderAttrs(b *strings.Builder) {
	if p.fill != nil {
		b.WriteString(" fill=\"")
		b.WriteString(p.fill.String())
		b.WriteString("\"")
	}
	if p.stroke != nil {
		b.WriteString(" stroke=\"")
		b.WriteString(p.stroke.String())
		b.WriteString("\"")
	}
	if p.strokeWidth != nil {
		b.WriteString(" stroke-width=\"")
		b.WriteString(ftoa(*p.strokeWidth))
		b.WriteString("\"")
	}
	if p.lineCap != "" {
		b.WriteString(" stroke-linecap=\"")
		b.WriteString(p.lineCap)
		b.WriteString("\"")
	}
	if p.lineJoin != "" {
		b.WriteString(" stroke-linejoin=\"")
		b.WriteString(p.lineJoin)
		b.WriteString("\"")
	}
}

// Circle models the <circle> element.
type Circle struct {
	center Point
	radius float64
	props  pathProps
}

// NewCircle returns a circle of radius 1 centered at the origin.
func NewCircle() *Circle { return &Circle{radius: 1.0} }

func (c *Circle) SetCenter(center Point) *Circle { c.center = center; return c }
func (c *Circle) SetRadius(r float64) *Circle    { c.radius = r; return c }

func (c *Circle) SetFillColor(color Color) *Circle      { c.props.setFill(color); return c }
func (c *Circle) SetStrokeColor(color Color) *Circle    { c.props.setStroke(color); return c }
func (c *Circle) SetStrokeWidth(w float64) *Circle      { c.props.setWidth(w); return c }
func (c *Circle) SetStrokeLineCap(cap string) *Circle   { c.props.setCap(cap); return c }
func (c *Circle) SetStrokeLineJoin(join string) *Circle { c.props.setJoin(join); return c }

func (c *Circle) render(b *strings.Builder) {
	b.WriteString("<circle")
	b.WriteString(" cx=\"")
	b.WriteString(ftoa(c.center.X))
	b.WriteString("\" cy=\"")
	b.WriteString(ftoa(c.center.Y))
	b.WriteString("\" r=\"")
	b.WriteString(ftoa(c.radius))
	b.WriteString("\"")
	c.props.renderAttrs(b)
	b.WriteString("/>")
}

// Polyline models the <polyline> element.
type Polyline struct {
	points []Point
	props  pathProps
}

// NewPolyline returns an empty polyline.
func NewPolyline() *Polyline { return &Polyline{} }

// AddPoint appends a vertex to the polyline.
func (p *Polyline) AddPoint(point Point) *Polyline {
	p.points = append(p.points, point)
	return p
}

func (p *Polyline) SetFillColor(color Color) *Polyline      { p.props.setFill(color); return p }
func (p *Polyline) SetStrokeColor(color Color) *Polyline    { p.props.setStroke(color); return p }
func (p *Polyline) SetStrokeWidth(w float64) *Polyline      { p.props.setWidth(w); return p }
func (p *Polyline) SetStrokeLineCap(cap string) *Polyline   { p.props.setCap(cap); return p }
func (p *Polyline) SetStrokeLineJoin(join string) *Polyline { p.props.setJoin(join); return p }

func (p *Polyline) render(b *strings.Builder) {
	b.WriteString("<polyline points=\"")
	for i, point := range p.points {
		if i > 0 {
			b.WriteString(" ")
		}
		b.WriteString(ftoa(point.X))
		b.WriteString(",")
		b.WriteString(ftoa(point.Y))
	}
	b.WriteString("\"")
	p.props.renderAttrs(b)
	b.WriteString("/>")
}

// Text models the <text> element.
type Text struct {
	position   Point
	offset     Point
	fontSize   int
	fontFamily string
	fontWeight string
	data       string
	props      pathProps
}

// NewText returns a text element with font size 1 at the origin.
func NewText() *Text { return &Text{fontSize: 1} }

func (t *Text) SetPosition(p Point) *Text         { t.position = p; return t }
func (t *Text) SetOffset(p Point) *Text           { t.offset = p; return t }
func (t *Text) SetFontSize(size int) *Text        { t.fontSize = size; return t }
func (t *Text) SetFontFamily(family string) *Text { t.fontFamily = family; return t }
func (t *Text) SetFontWeight(weight string) *Text { t.fontWeight = weight; return t }
func (t *Text) SetData(data string) *Text         { t.data = data; return t }

func (t *Text) SetFillColor(color Color) *Text      { t.props.setFill(color); return t }
func (t *Text) SetStrokeColor(color Color) *Text    { t.props.setStroke(color); return t }
func (t *Text) SetStrokeWidth(w float64) *Text      { t.props.setWidth(w); return t }
func (t *Text) SetStrokeLineCap(cap string) *Text   { t.props.setCap(cap); return t }
func (t *Text) SetStrokeLineJoin(join string) *Text { t.props.setJoin(join); return t }

// Clone returns a copy that can be repositioned independently.
func (t *Text) Clone() *Text {
	dup := *t
	return &dup
}

func (t *Text) render(b *strings.Builder) {
	b.WriteString("<text")
	t.props.renderAttrs(b)
	b.WriteString(" x=\"")
	b.WriteString(ftoa(t.position.X))
	b.WriteString("\" y=\"")
	b.WriteString(ftoa(t.position.Y))
	b.WriteString("\" dx=\"")
	b.WriteString(ftoa(t.offset.X))
	b.WriteString("\" dy=\"")
	b.WriteString(ftoa(t.offset.Y))
	b.WriteString("\" font-size=\"")
	b.WriteString(strconv.Itoa(t.fontSize))
	b.WriteString("\"")
	if t.fontFamily != "" {
		b.WriteString(" font-family=\"")
		b.WriteString(escape(t.fontFamily))
		b.WriteString("\"")
	}
	if t.fontWeight != "" {
		b.WriteString(" font-weight=\"")
		b.WriteString(escape(t.fontWeight))
		b.WriteString("\"")
	}
	b.WriteString(">")
	b.WriteString(escape(t.data))
	b.WriteString("</text>")
}

// Document is an ordered collection of objects rendered as a complete
// SVG document.
type Document struct {
	objects []Object
}

// NewDocument returns an empty document.
func NewDocument() *Document { return &Document{} }

// Add appends an object; objects render in insertion order.
func (d *Document) Add(obj Object) {
	d.objects = append(d.objects, obj)
}

// Render writes the document. Each object sits on its own line indented
// by two spaces; the closing tag carries no trailing newline.
func (d *Document) Render(w io.Writer) error {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"UTF-8\" ?>\n")
	b.WriteString("<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\">\n")
	for _, obj := range d.objects {
		b.WriteString("  ")
		obj.render(&b)
		b.WriteString("\n")
	}
	b.WriteString("</svg>")
	_, err := io.WriteString(w, b.String())
	return err
}
