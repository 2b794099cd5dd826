package widget

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
)

// RenderArgs are the wrappers placed around rendered widget markup.
type RenderArgs struct {
	BeforeWidget string
	AfterWidget  string
	BeforeTitle  string
	AfterTitle   string
}

// DefaultRenderArgs returns the wrappers used for widgets outside a sidebar.
func DefaultRenderArgs() RenderArgs {
	return RenderArgs{
		BeforeWidget: `<section id="%1$s" class="widget %2$s">`,
		AfterWidget:  `</section>`,
		BeforeTitle:  `<h2 class="widget-title">`,
		AfterTitle:   `</h2>`,
	}
}

// Renderer produces the markup of a widget instance.
type Renderer interface {
	Render(ctx context.Context, w Descriptor, instance Instance, args RenderArgs) (string, error)
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(ctx context.Context, w Descriptor, instance Instance, args RenderArgs) (string, error)

// Render calls f.
func (f RendererFunc) Render(ctx context.Context, w Descriptor, instance Instance, args RenderArgs) (string, error) {
	return f(ctx, w, instance, args)
}

const defaultTemplate = `{{.BeforeWidget}}{{with .Title}}{{$.BeforeTitle}}{{.}}{{$.AfterTitle}}{{end}}{{.Body}}{{.AfterWidget}}`

// TemplateRenderer renders widgets with html/template. Templates are chosen
// by widget class name and fall back to a title plus body layout.
type TemplateRenderer struct {
	fallback *template.Template
	byClass  map[string]*template.Template
}

// NewTemplateRenderer parses the per class name templates.
func NewTemplateRenderer(templates map[string]string) (*TemplateRenderer, error) {
	fallback, err := template.New("widget").Parse(defaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse default widget template: %w", err)
	}

	r := &TemplateRenderer{
		fallback: fallback,
		byClass:  make(map[string]*template.Template, len(templates)),
	}

	for class, text := range templates {
		t, err := template.New(class).Parse(text)
		if err != nil {
			return nil, fmt.Errorf("failed to parse widget template %s: %w", class, err)
		}
		r.byClass[class] = t
	}

	return r, nil
}

type renderData struct {
	ID           string
	ClassName    string
	Title        string
	Body         template.HTML
	Instance     Instance
	BeforeWidget template.HTML
	AfterWidget  template.HTML
	BeforeTitle  template.HTML
	AfterTitle   template.HTML
}

// Render implements Renderer. Widgets without an instance render nothing.
func (r *TemplateRenderer) Render(_ context.Context, w Descriptor, instance Instance, args RenderArgs) (string, error) {
	if instance == nil {
		return "", nil
	}

	t, ok := r.byClass[w.ClassName]
	if !ok {
		t = r.fallback
	}

	// wrapper markup comes from the sidebar registration and is trusted
	data := renderData{
		ID:           w.ID,
		ClassName:    w.ClassName,
		Title:        stringSetting(instance, "title"),
		Body:         template.HTML(firstSetting(instance, "text", "content")), //nolint:gosec
		Instance:     instance,
		BeforeWidget: template.HTML(args.BeforeWidget), //nolint:gosec
		AfterWidget:  template.HTML(args.AfterWidget),  //nolint:gosec
		BeforeTitle:  template.HTML(args.BeforeTitle),  //nolint:gosec
		AfterTitle:   template.HTML(args.AfterTitle),   //nolint:gosec
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render widget %s: %w", w.ID, err)
	}

	return buf.String(), nil
}

func stringSetting(in Instance, key string) string {
	if v, ok := in[key].(string); ok {
		return v
	}
	return ""
}

func firstSetting(in Instance, keys ...string) string {
	for _, k := range keys {
		if v := stringSetting(in, k); v != "" {
			return v
		}
	}
	return ""
}

// formatWrapper fills the %1$s (widget id) and %2$s (class name)
// placeholders of a before_widget wrapper.
func formatWrapper(wrapper, id, className string) string {
	return strings.NewReplacer("%1$s", id, "%2$s", className).Replace(wrapper)
}
