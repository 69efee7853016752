package scene

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/luki/gauge/internal/geometry"
)

const svgNamespace = "http://www.w3.org/2000/svg"

type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	Xmlns   string   `xml:"xmlns,attr"`
	ViewBox string   `xml:"viewBox,attr"`
	Items   []any
}

type svgPath struct {
	XMLName     xml.Name `xml:"path"`
	D           string   `xml:"d,attr"`
	Fill        string   `xml:"fill,attr"`
	Stroke      string   `xml:"stroke,attr"`
	StrokeWidth string   `xml:"stroke-width,attr"`
}

type svgLine struct {
	XMLName     xml.Name `xml:"line"`
	X1          string   `xml:"x1,attr"`
	Y1          string   `xml:"y1,attr"`
	X2          string   `xml:"x2,attr"`
	Y2          string   `xml:"y2,attr"`
	Stroke      string   `xml:"stroke,attr"`
	StrokeWidth string   `xml:"stroke-width,attr"`
}

type svgPolygon struct {
	XMLName xml.Name `xml:"polygon"`
	Points  string   `xml:"points,attr"`
	Fill    string   `xml:"fill,attr"`
	Opacity string   `xml:"opacity,attr"`
}

type svgGroup struct {
	XMLName   xml.Name `xml:"g"`
	Transform string   `xml:"transform,attr"`
	Style     string   `xml:"style,attr"`
	Polygon   svgPolygon
}

type svgText struct {
	XMLName    xml.Name `xml:"text"`
	X          string   `xml:"x,attr"`
	Y          string   `xml:"y,attr"`
	Anchor     string   `xml:"text-anchor,attr,omitempty"`
	Baseline   string   `xml:"dominant-baseline,attr,omitempty"`
	FontSize   string   `xml:"font-size,attr"`
	FontWeight string   `xml:"font-weight,attr,omitempty"`
	Fill       string   `xml:"fill,attr,omitempty"`
	Content    string   `xml:",chardata"`
}

var num = geometry.FormatFloat

func encodeShape(s Shape) (any, error) {
	switch s := s.(type) {
	case Arc:
		return svgPath{
			D:           s.Path,
			Fill:        "none",
			Stroke:      s.Stroke,
			StrokeWidth: num(s.StrokeWidth),
		}, nil
	case Line:
		return svgLine{
			X1: num(s.X1), Y1: num(s.Y1), X2: num(s.X2), Y2: num(s.Y2),
			Stroke:      s.Stroke,
			StrokeWidth: num(s.StrokeWidth),
		}, nil
	case Needle:
		pts := make([]string, len(s.Points))
		for i, p := range s.Points {
			pts[i] = num(p.X) + "," + num(p.Y)
		}
		return svgGroup{
			Transform: fmt.Sprintf("translate(%s, %s) rotate(%s)", num(s.CX), num(s.CY), num(s.Angle)),
			Style:     needleTransition,
			Polygon: svgPolygon{
				Points:  strings.Join(pts, " "),
				Fill:    s.Fill,
				Opacity: num(s.Opacity),
			},
		}, nil
	case Text:
		t := svgText{
			X: num(s.X), Y: num(s.Y),
			Anchor:   s.Anchor,
			Baseline: s.Baseline,
			FontSize: num(s.FontSize),
			Fill:     s.Fill,
			Content:  s.Content,
		}
		if s.Bold {
			t.FontWeight = "bold"
		}
		return t, nil
	}
	return nil, fmt.Errorf("unsupported shape %T", s)
}

// WriteSVG encodes the scene as a standalone SVG document.
func (s Scene) WriteSVG(w io.Writer) error {
	doc := svgDoc{
		Xmlns:   svgNamespace,
		ViewBox: fmt.Sprintf("0 0 %s %s", num(s.Width), num(s.Height)),
		Items:   make([]any, 0, len(s.Elements)),
	}
	for _, e := range s.Elements {
		item, err := encodeShape(e.Shape)
		if err != nil {
			return fmt.Errorf("layer %s: %w", e.Layer, err)
		}
		doc.Items = append(doc.Items, item)
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode svg: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// SVG returns the encoded document.
func (s Scene) SVG() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.WriteSVG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
