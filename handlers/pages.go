package handlers

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/yuin/goldmark"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	pageEvents   = "events.html"
	pageEvent    = "event.html"
	pageLogin    = "login.html"
	pageSignup   = "signup.html"
	pageNotFound = "notfound.html"
)

// Pages renders the server-side HTML pages.
type Pages struct {
	institute string
	pages     map[string]*template.Template
}

func NewPages(institute string) *Pages {
	p := &Pages{institute: institute, pages: map[string]*template.Template{}}
	for _, name := range []string{pageEvents, pageEvent, pageLogin, pageSignup, pageNotFound} {
		p.pages[name] = template.Must(template.ParseFS(templateFS, "templates/layout.html", "templates/"+name))
	}
	return p
}

// render executes a page with data merged into the common layout fields.
func (p *Pages) render(e *core.RequestEvent, code int, name string, data map[string]any) error {
	t, ok := p.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	if data == nil {
		data = map[string]any{}
	}
	data["Institute"] = p.institute

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return e.HTML(code, buf.String())
}

// markdown keeps goldmark's default of omitting raw HTML.
var markdown = goldmark.New(
	goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps()),
)

// renderMarkdown converts an event description to HTML.
func renderMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func notFoundPage(e *core.RequestEvent, p *Pages) error {
	return p.render(e, http.StatusNotFound, pageNotFound, nil)
}
