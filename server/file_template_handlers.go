package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"

	"github.com/jrsteele09/bursary-portal/auth"
	"github.com/rs/zerolog/log"
)

//go:embed templates/*
var templateFiles embed.FS

const layoutTemplate = "layout.html"

func TemplateFilesFS() fs.FS {
	subFS, err := fs.Sub(templateFiles, "templates")
	if err != nil {
		panic("Failed to create templates sub filesystem: " + err.Error())
	}
	return subFS
}

var templateFuncs = template.FuncMap{
	"lower": strings.ToLower,
}

// ParseTemplate parses a template from the embedded filesystem
func ParseTemplate(name string) (*template.Template, error) {
	content, err := fs.ReadFile(TemplateFilesFS(), name)
	if err != nil {
		return nil, err
	}
	return template.New(name).Funcs(templateFuncs).Parse(string(content))
}

// pageSet holds the parsed layout and every page body.
type pageSet struct {
	layout *template.Template
	pages  map[string]*template.Template
}

func loadPages() (*pageSet, error) {
	layout, err := ParseTemplate(layoutTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", layoutTemplate, err)
	}

	names, err := fs.Glob(TemplateFilesFS(), "*.html")
	if err != nil {
		return nil, err
	}
	ps := &pageSet{layout: layout, pages: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		if name == layoutTemplate {
			continue
		}
		tmpl, err := ParseTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		ps.pages[name] = tmpl
	}
	return ps, nil
}

// layoutData is what layout.html renders around a page body.
type layoutData struct {
	AppName string
	Title   string
	Nav     NavbarModel
	Error   string
	Notice  string
	Content template.HTML
}

// view describes one rendered page.
type view struct {
	Template string
	Title    string
	Status   int
	Error    string
	Notice   string
	Data     any
}

// render executes the page body and then the layout around it. Nothing is
// written to w until both succeeded.
func (s *Server) render(w http.ResponseWriter, r *http.Request, v view) {
	tmpl, ok := s.pages.pages[v.Template]
	if !ok {
		log.Ctx(r.Context()).Error().Str("template", v.Template).Msg("unknown template")
		http.Error(w, "500 - Internal Server Error", http.StatusInternalServerError)
		return
	}

	var content bytes.Buffer
	if err := tmpl.Execute(&content, v.Data); err != nil {
		log.Ctx(r.Context()).Err(err).Str("template", v.Template).Msg("Failed to render content")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	var state auth.State
	if ac, err := auth.FromContext(r.Context()); err == nil {
		state = ac.State()
	}
	if v.Error == "" {
		v.Error = r.URL.Query().Get("error")
	}
	if v.Notice == "" {
		v.Notice = r.URL.Query().Get("notice")
	}

	data := layoutData{
		AppName: s.config.GetAppName(),
		Title:   v.Title,
		Nav:     buildNavbar(state, r.URL.Path),
		Error:   v.Error,
		Notice:  v.Notice,
		Content: template.HTML(content.String()),
	}

	var page bytes.Buffer
	if err := s.pages.layout.Execute(&page, data); err != nil {
		log.Ctx(r.Context()).Err(err).Msg("Failed to render layout")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
		return
	}

	status := v.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = page.WriteTo(w)
}
