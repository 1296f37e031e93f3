package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"sort"
	"strings"
	"sync"
)

// TemplateRenderer is the rendering surface the handlers depend on.
type TemplateRenderer interface {
	RenderHTTP(w http.ResponseWriter, name string, data any)
	RenderHTTPStatus(w http.ResponseWriter, status int, name string, data any)
	RenderPartial(w http.ResponseWriter, name string, data any)
}

// Renderer manages template parsing and rendering with isolated template sets.
//
// Templates are organized as:
//   - layouts/public.html - base layout defining "public"
//   - partials/*.html - fragments for htmx responses, each defining a
//     template named after its file
//   - pages/public/*.html - pages rendered inside the public layout
type Renderer struct {
	templates map[string]*template.Template
	logger    *slog.Logger
	isDev     bool
	mu        sync.RWMutex

	fsys  fs.FS
	funcs template.FuncMap
}

// RendererConfig holds configuration for the renderer.
type RendererConfig struct {
	FS     fs.FS            // Embedded templates, or os.DirFS in development
	Funcs  template.FuncMap // Defaults to TemplateFuncs(nil)
	Logger *slog.Logger
	IsDev  bool // Reparse on every render
}

// NewRenderer parses every template up front so a broken template fails startup.
func NewRenderer(cfg RendererConfig) (*Renderer, error) {
	funcs := cfg.Funcs
	if funcs == nil {
		funcs = TemplateFuncs(nil)
	}

	r := &Renderer{
		templates: make(map[string]*template.Template),
		logger:    cfg.Logger,
		isDev:     cfg.IsDev,
		fsys:      cfg.FS,
		funcs:     funcs,
	}

	if err := r.loadTemplates(); err != nil {
		return nil, err
	}

	return r, nil
}

func (r *Renderer) loadTemplates() error {
	templates := make(map[string]*template.Template)

	partialFiles, err := fs.Glob(r.fsys, "partials/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob partials: %w", err)
	}

	for _, partial := range partialFiles {
		partialTmpl, err := template.New("").Funcs(r.funcs).ParseFS(r.fsys, partial)
		if err != nil {
			return fmt.Errorf("failed to parse partial %s: %w", partial, err)
		}
		templates["partial/"+baseName(partial)] = partialTmpl
	}

	publicBaseTmpl, err := template.New("public").Funcs(r.funcs).ParseFS(r.fsys, "layouts/public.html")
	if err != nil {
		return fmt.Errorf("failed to parse public layout: %w", err)
	}

	// pages embed partials with {{template "name" .}}
	if len(partialFiles) > 0 {
		publicBaseTmpl, err = publicBaseTmpl.ParseFS(r.fsys, partialFiles...)
		if err != nil {
			return fmt.Errorf("failed to parse partials into public layout: %w", err)
		}
	}

	publicPages, err := fs.Glob(r.fsys, "pages/public/*.html")
	if err != nil {
		return fmt.Errorf("failed to glob public pages: %w", err)
	}

	for _, page := range publicPages {
		pageTmpl, err := publicBaseTmpl.Clone()
		if err != nil {
			return fmt.Errorf("failed to clone public template for %s: %w", page, err)
		}

		pageTmpl, err = pageTmpl.ParseFS(r.fsys, page)
		if err != nil {
			return fmt.Errorf("failed to parse public page %s: %w", page, err)
		}

		templates["public/"+baseName(page)] = pageTmpl
	}

	r.mu.Lock()
	r.templates = templates
	r.mu.Unlock()

	r.logger.Debug("templates loaded", "count", len(templates))
	return nil
}

// Reload reparses all templates. Useful for development.
func (r *Renderer) Reload() error {
	return r.loadTemplates()
}

// Render renders a template to an io.Writer.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if r.isDev {
		if err := r.Reload(); err != nil {
			return fmt.Errorf("template reload failed: %w", err)
		}
	}

	r.mu.RLock()
	tmpl, ok := r.templates[name]
	r.mu.RUnlock()

	if !ok {
		return fmt.Errorf("template %q not found", name)
	}

	return tmpl.ExecuteTemplate(w, r.getBaseTemplateName(name), data)
}

// RenderHTTP renders a page with status 200.
func (r *Renderer) RenderHTTP(w http.ResponseWriter, name string, data any) {
	r.RenderHTTPStatus(w, http.StatusOK, name, data)
}

// RenderHTTPStatus renders a template directly to an http.ResponseWriter.
func (r *Renderer) RenderHTTPStatus(w http.ResponseWriter, status int, name string, data any) {
	// buffer first so a failed execution can still send a 500
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		r.logger.Error("template execution failed", "name", name, "error", err)
		http.Error(w, "Template execution failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// RenderPartial renders a partial template (for htmx responses).
// The partial file should contain {{define "name"}}...{{end}} where name matches the file name.
func (r *Renderer) RenderPartial(w http.ResponseWriter, name string, data any) {
	r.RenderHTTPStatus(w, http.StatusOK, "partial/"+name, data)
}

// getBaseTemplateName determines which template to execute.
func (r *Renderer) getBaseTemplateName(name string) string {
	if partial, ok := strings.CutPrefix(name, "partial/"); ok {
		return partial
	}
	return "public"
}

// ListTemplates returns the loaded template names in sorted order.
func (r *Renderer) ListTemplates() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.templates))
	for name := range r.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func baseName(p string) string {
	return strings.TrimSuffix(path.Base(p), path.Ext(p))
}

// ToastData holds data for rendering a toast notification.
type ToastData struct {
	Type        string // success, error, info
	Message     string
	AutoDismiss int // seconds
}
