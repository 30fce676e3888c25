package logostamp

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templatesFS embed.FS

var indexTemplate *template.Template

// TemplateData holds data for template rendering
type TemplateData struct {
	Version string
	Field   string
}

func init() {
	var err error
	indexTemplate, err = template.ParseFS(templatesFS, "templates/index.html")
	if err != nil {
		panic("failed to parse index template: " + err.Error())
	}
}

// renderIndex renders the upload page
func renderIndex(w http.ResponseWriter, field string) {
	data := TemplateData{
		Version: Version,
		Field:   field,
	}
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	_, _ = w.Write(buf.Bytes())
}
