package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

// pages that render inside the shared layout
var pageFiles = []string{
	"index.html",
	"search.html",
	"search_results.html",
	"person_detail.html",
	"create.html",
	"confirm_duplicate.html",
	"update_status.html",
	"not_found.html",
}

var templateFuncs = template.FuncMap{
	"formatUnix": func(ts int64) string {
		return time.Unix(ts, 0).Format("2006-01-02 15:04")
	},
	"deref": func(p *int64) int64 {
		if p == nil {
			return 0
		}
		return *p
	},
}

// templateSet holds one parsed layout+page template per page file.
type templateSet struct {
	pages map[string]*template.Template
}

func newTemplateSet() (*templateSet, error) {
	ts := &templateSet{pages: make(map[string]*template.Template, len(pageFiles))}
	for _, page := range pageFiles {
		tmpl, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		ts.pages[page] = tmpl
	}
	return ts, nil
}

// page is the data envelope every template receives.
type page struct {
	Title string
	Flash *Flash
	Data  interface{}
}

func (ts *templateSet) render(w http.ResponseWriter, r *http.Request, status int, name, title string, data interface{}) {
	tmpl, ok := ts.pages[name]
	if !ok {
		log.Printf("render: unknown template %s", name)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p := page{
		Title: title,
		Flash: popFlash(w, r),
		Data:  data,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", p); err != nil {
		log.Printf("render: error executing template %s: %v", name, err)
	}
}
