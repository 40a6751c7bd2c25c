// Package views embeds the HTML templates so the binary renders from any
// working directory. Theming is deliberately minimal; the templates only
// expose the data contracts the controllers supply.
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded template set.
func Templates() *template.Template {
	funcs := template.FuncMap{
		// Post bodies are sanitized rich text; render them as HTML.
		"safe": func(s string) template.HTML { return template.HTML(s) },
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}
