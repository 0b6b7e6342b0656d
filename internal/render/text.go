package render

import (
	"encoding/xml"
	"image"
	"image/color"
	"io"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// textSpan is one SVG text element lifted out of the rendered document.
type textSpan struct {
	content string
	x       float64
	y       float64
	size    float64
	bold    bool
	anchor  string
	fill    color.RGBA
}

var (
	fontOnce    sync.Once
	fontErr     error
	regularFont *sfnt.Font
	boldFont    *sfnt.Font
)

func loadFonts() error {
	fontOnce.Do(func() {
		regularFont, fontErr = opentype.Parse(goregular.TTF)
		if fontErr != nil {
			return
		}
		boldFont, fontErr = opentype.Parse(gobold.TTF)
	})
	return fontErr
}

// drawText paints the document's text elements onto img. The vector pass
// ignores them, so without this the cards would carry no copy at all.
func drawText(img *image.RGBA, svg string) error {
	spans, err := parseTextSpans(svg)
	if err != nil {
		return err
	}
	if len(spans) == 0 {
		return nil
	}

	if err := loadFonts(); err != nil {
		return err
	}

	type faceKey struct {
		size float64
		bold bool
	}
	faces := make(map[faceKey]font.Face)
	defer func() {
		for _, face := range faces {
			face.Close()
		}
	}()

	for _, span := range spans {
		key := faceKey{size: span.size, bold: span.bold}
		face, ok := faces[key]
		if !ok {
			source := regularFont
			if span.bold {
				source = boldFont
			}
			face, err = opentype.NewFace(source, &opentype.FaceOptions{
				Size:    span.size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
			if err != nil {
				return err
			}
			faces[key] = face
		}

		drawer := &font.Drawer{
			Dst:  img,
			Src:  image.NewUniform(span.fill),
			Face: face,
			Dot: fixed.Point26_6{
				X: fixed.Int26_6(span.x * 64),
				Y: fixed.Int26_6(span.y * 64),
			},
		}

		switch span.anchor {
		case "end":
			drawer.Dot.X -= drawer.MeasureString(span.content)
		case "middle":
			drawer.Dot.X -= drawer.MeasureString(span.content) / 2
		}

		drawer.DrawString(span.content)
	}

	return nil
}

// parseTextSpans collects every text element with its resolved baseline.
// dy offsets are folded into y.
func parseTextSpans(svg string) ([]textSpan, error) {
	decoder := xml.NewDecoder(strings.NewReader(svg))

	var spans []textSpan
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return spans, nil
		}
		if err != nil {
			return nil, err
		}

		start, ok := token.(xml.StartElement)
		if !ok || start.Name.Local != "text" {
			continue
		}

		span := textSpan{size: 16, fill: color.RGBA{A: 0xFF}}
		for _, attr := range start.Attr {
			switch attr.Name.Local {
			case "x":
				span.x, _ = strconv.ParseFloat(attr.Value, 64)
			case "y", "dy":
				offset, _ := strconv.ParseFloat(attr.Value, 64)
				span.y += offset
			case "font-size":
				if size, err := strconv.ParseFloat(attr.Value, 64); err == nil {
					span.size = size
				}
			case "font-weight":
				if weight, err := strconv.Atoi(attr.Value); err == nil {
					span.bold = weight >= 600
				} else {
					span.bold = attr.Value == "bold"
				}
			case "fill":
				span.fill = parseFill(attr.Value)
			case "text-anchor":
				span.anchor = attr.Value
			}
		}

		for {
			token, err := decoder.Token()
			if err != nil {
				return nil, err
			}
			if data, ok := token.(xml.CharData); ok {
				span.content += string(data)
			}
			if end, ok := token.(xml.EndElement); ok && end.Name.Local == "text" {
				break
			}
		}

		if strings.TrimSpace(span.content) != "" {
			spans = append(spans, span)
		}
	}
}

func parseFill(value string) color.RGBA {
	value = strings.TrimPrefix(value, "#")
	if len(value) == 3 {
		value = strings.Repeat(string(value[0]), 2) +
			strings.Repeat(string(value[1]), 2) +
			strings.Repeat(string(value[2]), 2)
	}

	n, err := strconv.ParseUint(value, 16, 32)
	if err != nil || len(value) != 6 {
		return color.RGBA{A: 0xFF}
	}

	return color.RGBA{R: uint8(n >> 16), G: uint8(n >> 8), B: uint8(n), A: 0xFF}
}
