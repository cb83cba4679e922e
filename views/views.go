// Package views holds the HTML templates rendered by the web controllers.
package views

import (
	"embed"
	"html/template"
	"time"
)

//go:embed templates
var files embed.FS

// Funcs are the helpers available in every template.
var Funcs = template.FuncMap{
	// old prefers the flashed form value and falls back to the stored one.
	"old": func(old map[string]string, key, fallback string) string {
		if v, ok := old[key]; ok {
			return v
		}
		return fallback
	},
	"date": func(t time.Time) string {
		return t.Format("Jan 2, 2006 15:04")
	},
}

// Load parses every embedded template. Templates are addressed by the name in
// their define block, e.g. "posts/index.html".
func Load() (*template.Template, error) {
	return template.New("").Funcs(Funcs).ParseFS(files, "templates/*/*.html")
}

// MustLoad is Load for boot code.
func MustLoad() *template.Template {
	return template.Must(Load())
}
