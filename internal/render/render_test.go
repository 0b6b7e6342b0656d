package render

import (
	"bytes"
	"html"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_UserCard(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	svg, err := renderer.UserCard(UserCardView{
		Name:       "Brian Douglas",
		Login:      "bdougie",
		Bio:        "open source advocate",
		Followers:  1200,
		Highlights: 34,
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "Brian Douglas")
	assert.Contains(t, svg, "@bdougie")
	assert.Contains(t, svg, "open source advocate")
	assert.Contains(t, svg, "1200")
	assert.NotContains(t, svg, "<image", "no avatar given, image node must be omitted")
}

func TestRenderer_InsightCardOverflowPill(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	svg, err := renderer.InsightCard(InsightCardView{
		Name:         "Core dependencies",
		Repos:        []string{"org/one", "org/two", "org/three"},
		Overflow:     "+4",
		Contributors: 12,
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "org/one")
	assert.Contains(t, svg, "org/three")
	// the template engine emits the plus sign as a character reference
	assert.Contains(t, html.UnescapeString(svg), "+4")
	assert.Contains(t, svg, "12 contributors")
}

func TestRenderer_InsightCardNoOverflow(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	svg, err := renderer.InsightCard(InsightCardView{
		Name:  "Small page",
		Repos: []string{"org/only"},
	})
	require.NoError(t, err)

	assert.Contains(t, svg, "org/only")
	assert.NotContains(t, html.UnescapeString(svg), "+")
}

func TestRenderer_EscapesMarkup(t *testing.T) {
	renderer, err := NewRenderer()
	require.NoError(t, err)

	svg, err := renderer.UserCard(UserCardView{
		Name:  "<script>alert(1)</script>",
		Login: "attacker",
	})
	require.NoError(t, err)

	assert.NotContains(t, svg, "<script>")
}

func TestRasterize_ProducesPNGWithTint(t *testing.T) {
	tint := color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xFF}

	data, err := Rasterize(`<svg width="10" height="10" viewBox="0 0 10 10" xmlns="http://www.w3.org/2000/svg"></svg>`, 10, 10, tint)
	require.NoError(t, err)

	assert.Equal(t, "\x89PNG", string(data[:4]))

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, 10, img.Bounds().Dx())
	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0x10), r>>8)
	assert.Equal(t, uint32(0x20), g>>8)
	assert.Equal(t, uint32(0x30), b>>8)
}

func TestRasterize_DrawsTextOverTint(t *testing.T) {
	svg := `<svg width="200" height="60" viewBox="0 0 200 60" xmlns="http://www.w3.org/2000/svg">
  <text x="10" y="44" font-family="sans-serif" font-size="36" font-weight="700" fill="#FFFFFF">Hello</text>
</svg>`

	data, err := Rasterize(svg, 200, 60, CardBackground)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)

	lit := 0
	for y := 10; y < 50; y++ {
		for x := 10; x < 120; x++ {
			r, _, _, _ := img.At(x, y).RGBA()
			if r>>8 > 0x80 {
				lit++
			}
		}
	}
	assert.Greater(t, lit, 50, "glyph pixels must stand out from the background tint")
}

func TestParseTextSpans(t *testing.T) {
	spans, err := parseTextSpans(`<svg><text x="124" y="340" dy="38" font-size="28" font-weight="600" fill="#F87216">&#43;2</text></svg>`)
	require.NoError(t, err)
	require.Len(t, spans, 1)

	assert.Equal(t, "+2", spans[0].content)
	assert.Equal(t, 124.0, spans[0].x)
	assert.Equal(t, 378.0, spans[0].y)
	assert.True(t, spans[0].bold)
	assert.Equal(t, color.RGBA{R: 0xF8, G: 0x72, B: 0x16, A: 0xFF}, spans[0].fill)
}

func TestRasterize_InvalidSVG(t *testing.T) {
	_, err := Rasterize("<svg width='10'", CardWidth, CardHeight, CardBackground)
	assert.Error(t, err)
}
