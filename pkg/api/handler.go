// Package api serves menus, menu locations, widgets and sidebars over
// the ng-menu-route, ng-widget-route and ng-sidebar-route namespaces.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mchmarny/ngwp/pkg/menu"
	"github.com/mchmarny/ngwp/pkg/metric"
	"github.com/mchmarny/ngwp/pkg/site"
	"github.com/mchmarny/ngwp/pkg/widget"
)

// Route namespaces.
const (
	MenuNamespace    = "/ng-menu-route/v2"
	WidgetNamespace  = "/ng-widget-route/v2"
	SidebarNamespace = "/ng-sidebar-route/v2"
)

// Source supplies the site state served by the handlers.
type Source interface {
	Menus(ctx context.Context) ([]menu.Menu, error)
	Menu(ctx context.Context, id int64) (menu.Menu, []menu.Item, error)
	Locations(ctx context.Context) ([]menu.Location, error)
	LocationItems(ctx context.Context, slug string) ([]menu.Item, error)
	WidgetState(ctx context.Context) (*widget.State, error)
}

// Handler serves the REST routes.
type Handler struct {
	source   Source
	baseURL  string
	renderer widget.Renderer
	builds   metric.IncrementalCounter
}

// NewHandler returns a Handler reading from source. Links in responses are
// prefixed with baseURL. Tree builds are counted on reg.
func NewHandler(source Source, baseURL string, renderer widget.Renderer, reg prometheus.Registerer) *Handler {
	return &Handler{
		source:   source,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		renderer: renderer,
		builds: metric.NewCounterWithRegistry(reg, "menu_tree_builds_total",
			"Menu tree builds by result.", "result"),
	}
}

// Routes mounts every route on r.
func (h *Handler) Routes(r chi.Router) {
	r.Route(MenuNamespace, func(r chi.Router) {
		r.Get("/menus", h.listMenus)
		r.Get("/menus/{id}", h.getMenu)
		r.Get("/menu-locations", h.listLocations)
		r.Get("/menu-locations/{location}", h.getLocation)
	})

	r.Route(WidgetNamespace, func(r chi.Router) {
		r.Get("/widgets", h.listWidgets)
		r.Get(`/widgets/{widget_id:[\w-]+-\d+}`, h.getWidget)
	})

	r.Route(SidebarNamespace, func(r chi.Router) {
		r.Get("/sidebars", h.listSidebars)
		r.Get("/sidebars/{sidebar_id}", h.getSidebar)
	})

	r.NotFound(notFound)
	r.MethodNotAllowed(methodNotAllowed)
}

func (h *Handler) link(namespace, path string, parts ...string) menu.Links {
	collection := h.baseURL + namespace + path
	self := collection
	if len(parts) > 0 {
		self += "/" + strings.Join(parts, "/")
	}
	return menu.Links{Collection: collection, Self: self}
}

func (h *Handler) buildTree(items []menu.Item) ([]*menu.Node, error) {
	tree, err := menu.BuildTree(items)
	if err != nil {
		h.builds.Increment("invalid")
		return nil, err
	}
	h.builds.Increment("ok")
	return tree, nil
}

func (h *Handler) listMenus(w http.ResponseWriter, r *http.Request) {
	menus, err := h.source.Menus(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	out := make([]menu.Menu, 0, len(menus))
	for _, m := range menus {
		m.Meta.Links = h.link(MenuNamespace, "/menus", strconv.FormatInt(m.ID, 10))
		out = append(out, m)
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, r, http.StatusBadRequest, ErrCodeBadRequest, fmt.Sprintf("invalid menu id: %q", raw))
		return
	}

	m, items, err := h.source.Menu(r.Context(), id)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	tree, err := h.buildTree(items)
	if err != nil {
		writeFailure(w, r, fmt.Errorf("menu %d: %w", id, err))
		return
	}

	m.Meta.Links = h.link(MenuNamespace, "/menus", strconv.FormatInt(id, 10))
	writeJSON(w, http.StatusOK, menu.Detail{Menu: m, Items: tree})
}

func (h *Handler) listLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := h.source.Locations(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	out := newOrderedObject[menu.Location](len(locations))
	for _, l := range locations {
		l.Meta.Links = h.link(MenuNamespace, "/menu-locations", l.Slug)
		out.set(l.Slug, l)
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getLocation(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "location")

	items, err := h.source.LocationItems(r.Context(), slug)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	tree, err := h.buildTree(items)
	if err != nil {
		writeFailure(w, r, fmt.Errorf("menu location %s: %w", slug, err))
		return
	}

	writeJSON(w, http.StatusOK, tree)
}

func (h *Handler) assembler(ctx context.Context) (*widget.Assembler, *widget.State, error) {
	state, err := h.source.WidgetState(ctx)
	if err != nil {
		return nil, nil, err
	}
	return widget.NewAssembler(state, h.renderer), state, nil
}

func (h *Handler) listWidgets(w http.ResponseWriter, r *http.Request) {
	a, _, err := h.assembler(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	widgets, err := a.Widgets(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	out := newOrderedObject[*widget.Widget](len(widgets))
	for _, wd := range widgets {
		out.set(wd.ID, wd)
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getWidget(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "widget_id")

	a, state, err := h.assembler(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	d, ok := state.Widget(id)
	if !ok {
		writeFailure(w, r, fmt.Errorf("widget %s: %w", id, site.ErrNotFound))
		return
	}

	out, err := a.Widget(r.Context(), d)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) listSidebars(w http.ResponseWriter, r *http.Request) {
	a, _, err := h.assembler(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	sidebars, err := a.Sidebars()
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	out := newOrderedObject[*widget.SidebarView](len(sidebars))
	for _, sb := range sidebars {
		out.set(sb.ID, sb)
	}

	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) getSidebar(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sidebar_id")

	a, state, err := h.assembler(r.Context())
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	sb, ok := state.Sidebar(id)
	if !ok {
		writeFailure(w, r, fmt.Errorf("sidebar %s: %w", id, site.ErrNotFound))
		return
	}

	view, err := a.Sidebar(sb)
	if err != nil {
		writeFailure(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}
