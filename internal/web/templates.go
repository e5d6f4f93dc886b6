package web

import (
	"embed"
	"html/template"
	"time"
	"unicode/utf8"

	"github.com/yatube/yatube/internal/media"
)

//go:embed templates/*.html templates/includes/*.html
var templateFS embed.FS

// truncate cuts s to at most length characters
func truncate(length int, s string) string {
	if length < 0 || utf8.RuneCountInString(s) <= length {
		return s
	}
	return string([]rune(s)[:length])
}

func formatDate(t time.Time) string {
	return t.Format("2 January 2006")
}

// parseTemplates loads every page and partial into one set. Pages are
// looked up by file name, e.g. "index.html".
func parseTemplates(images *media.Storage) (*template.Template, error) {
	funcs := template.FuncMap{
		"truncate": truncate,
		"date":     formatDate,
		"mediaURL": images.URL,
	}
	return template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html", "templates/includes/*.html")
}
