// Package views renders the server-side HTML pages and serves their static assets.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/playlist/internal/domain"
)

// Page titles.
const (
	TitleIndex     = "Mi Playlist Musical"
	TitleFavorites = "Videos Favoritos"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// PageData is what the index template renders.
// Stats is nil on the favorites page.
type PageData struct {
	Title     string
	Videos    []*domain.Video
	Stats     *domain.Stats
	Favorites bool
}

// Pages holds the parsed templates.
type Pages struct {
	tmpl *template.Template
}

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Local().Format("02/01/2006 15:04")
	},
}

// New parses the embedded templates.
func New() (*Pages, error) {
	tmpl, err := template.New("pages").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Pages{tmpl: tmpl}, nil
}

// Render executes the index template into w. The page is rendered into a
// buffer first so a template error never produces a half-written response.
func (p *Pages) Render(w io.Writer, data PageData) error {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, "index.html", data); err != nil {
		return fmt.Errorf("failed to render page: %w", err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// Static serves the embedded assets, to be mounted under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
