package svg

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ColorKind discriminates the color variant.
type ColorKind uint8

const (
	ColorNone ColorKind = iota
	ColorNamed
	ColorRGB
	ColorRGBA
)

// Color is a variant: unset ("none"), a named/CSS string, an RGB triple
// or an RGBA quadruple.
type Color struct {
	Kind    ColorKind
	Name    string
	Red     uint8
	Green   uint8
	Blue    uint8
	Opacity float64
}

// NoneColor is the unset color; it renders as "none".
var NoneColor = Color{}

// Named returns a color holding a literal color string.
func Named(name string) Color {
	return Color{Kind: ColorNamed, Name: name}
}

// RGB returns an opaque rgb(r,g,b) color.
func RGB(r, g, b uint8) Color {
	return Color{Kind: ColorRGB, Red: r, Green: g, Blue: b}
}

// RGBA returns an rgba(r,g,b,opacity) color.
func RGBA(r, g, b uint8, opacity float64) Color {
	return Color{Kind: ColorRGBA, Red: r, Green: g, Blue: b, Opacity: opacity}
}

// String renders the color as it appears in an SVG attribute value.
func (c Color) String() string {
	switch c.Kind {
	case ColorNamed:
		return c.Name
	case ColorRGB:
		return "rgb(" + strconv.Itoa(int(c.Red)) + "," + strconv.Itoa(int(c.Green)) + "," + strconv.Itoa(int(c.Blue)) + ")"
	case ColorRGBA:
		return "rgba(" + strconv.Itoa(int(c.Red)) + "," + strconv.Itoa(int(c.Green)) + "," + strconv.Itoa(int(c.Blue)) + "," + ftoa(c.Opacity) + ")"
	default:
		return "none"
	}
}

// UnmarshalJSON accepts a color string, a 3-element RGB array or a
// 4-element RGBA array (opacity is a real).
func (c *Color) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, "\"") {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*c = Named(name)
		return nil
	}
	var parts []float64
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	switch len(parts) {
	case 3:
		*c = RGB(uint8(parts[0]), uint8(parts[1]), uint8(parts[2]))
	case 4:
		*c = RGBA(uint8(parts[0]), uint8(parts[1]), uint8(parts[2]), parts[3])
	default:
		return fmt.Errorf("svg: color array has %d elements, want 3 or 4", len(parts))
	}
	return nil
}

// Point is a position on the canvas.
type Point struct {
	X float64
	Y float64
}

// UnmarshalJSON accepts a 2-element [x, y] array.
func (p *Point) UnmarshalJSON(data []byte) error {
	var parts []float64
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != 2 {
		return fmt.Errorf("svg: point array has %d elements, want 2", len(parts))
	}
	p.X, p.Y = parts[0], parts[1]
	return nil
}
