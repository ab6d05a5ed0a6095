// Package web holds the HTML views rendered by the handlers.
package web

import (
	"embed"
	"html/template"
	"strconv"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Templates parses every view. Times are displayed in the clinic's zone.
func Templates(clock *timezone.Clock) (*template.Template, error) {
	funcs := template.FuncMap{
		"clinicTime": func(t time.Time) string {
			return clock.Local(t).Format(timezone.FormLayout)
		},
		"str": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"num": func(n *int) string {
			if n == nil {
				return ""
			}
			return strconv.Itoa(*n)
		},
	}

	return template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.tmpl")
}
