package render

import (
	"bytes"
	"embed"
	"html/template"
	"image/color"
)

const (
	CardWidth  = 1200
	CardHeight = 630
)

// CardBackground is the tint painted behind every rasterized card.
var CardBackground = color.RGBA{R: 0x11, G: 0x16, B: 0x27, A: 0xFF}

//go:embed templates/*.svg.tmpl
var templatesFS embed.FS

type UserCardView struct {
	Name       string
	Login      string
	Bio        string
	Followers  int
	Highlights int
	Avatar     template.URL
}

type InsightCardView struct {
	Name         string
	Repos        []string
	Overflow     string
	Contributors int
}

type HighlightCardView struct {
	Title    string
	Body     string
	Login    string
	Avatar   template.URL
	Repos    []string
	Overflow string
}

type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	templates, err := template.New("cards").Funcs(template.FuncMap{
		// vertical offset for the Nth pill in a list starting at base
		"rowY": func(base, i int) int { return base + i*72 },
	}).ParseFS(templatesFS, "templates/*.svg.tmpl")
	if err != nil {
		return nil, err
	}

	return &Renderer{templates: templates}, nil
}

func (r *Renderer) UserCard(view UserCardView) (string, error) {
	return r.render("user.svg.tmpl", view)
}

func (r *Renderer) InsightCard(view InsightCardView) (string, error) {
	return r.render("insight.svg.tmpl", view)
}

func (r *Renderer) HighlightCard(view HighlightCardView) (string, error) {
	return r.render("highlight.svg.tmpl", view)
}

func (r *Renderer) render(name string, view interface{}) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, view); err != nil {
		return "", err
	}

	return buf.String(), nil
}
