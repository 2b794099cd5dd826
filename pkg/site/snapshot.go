// Package site reads exported site state (menus, menu locations, widgets and
// sidebars) from a YAML snapshot and serves it to the REST handlers.
package site

import (
	"strings"

	"github.com/mchmarny/ngwp/pkg/menu"
	"github.com/mchmarny/ngwp/pkg/widget"
)

// Snapshot is the on-disk layout of the exported site state.
type Snapshot struct {
	Menus       []MenuRecord                      `yaml:"menus"`
	Locations   []LocationRecord                  `yaml:"locations"`
	Widgets     []widget.Descriptor               `yaml:"widgets"`
	Sidebars    []widget.Sidebar                  `yaml:"sidebars"`
	Memberships []widget.Membership               `yaml:"sidebars_widgets"`
	Instances   map[string]map[int]map[string]any `yaml:"instances"`
}

// MenuRecord is a navigation menu and its items as exported.
type MenuRecord struct {
	ID          int64        `yaml:"id"`
	Name        string       `yaml:"name"`
	Slug        string       `yaml:"slug"`
	Description string       `yaml:"description"`
	Count       int          `yaml:"count"`
	Items       []ItemRecord `yaml:"items"`
}

// ItemRecord is a menu item as exported. Items are listed in menu order.
type ItemRecord struct {
	ID          int64    `yaml:"id"`
	Order       int      `yaml:"order"`
	Parent      int64    `yaml:"parent"`
	Title       string   `yaml:"title"`
	URL         string   `yaml:"url"`
	AttrTitle   string   `yaml:"attr_title"`
	Target      string   `yaml:"target"`
	Classes     []string `yaml:"classes"`
	XFN         string   `yaml:"xfn"`
	Description string   `yaml:"description"`
	ObjectID    int64    `yaml:"object_id"`
	Object      string   `yaml:"object"`
	ObjectSlug  string   `yaml:"object_slug"`
	Type        string   `yaml:"type"`
	TypeLabel   string   `yaml:"type_label"`
}

// LocationRecord is a theme menu location. Menu is 0 when no menu is assigned.
type LocationRecord struct {
	Slug  string `yaml:"slug"`
	Label string `yaml:"label"`
	Menu  int64  `yaml:"menu"`
}

func (r ItemRecord) item() menu.Item {
	return menu.Item{
		ID:          r.ID,
		Order:       r.Order,
		ParentID:    r.Parent,
		Title:       r.Title,
		URL:         r.URL,
		Attr:        r.AttrTitle,
		Target:      r.Target,
		Classes:     strings.Join(r.Classes, " "),
		XFN:         r.XFN,
		Description: r.Description,
		ObjectID:    r.ObjectID,
		Object:      r.Object,
		ObjectSlug:  r.ObjectSlug,
		Type:        r.Type,
		TypeLabel:   r.TypeLabel,
	}
}

func (r *MenuRecord) menu() menu.Menu {
	count := r.Count
	if count == 0 {
		count = len(r.Items)
	}
	return menu.Menu{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Count:       count,
	}
}

func (r *MenuRecord) items() []menu.Item {
	out := make([]menu.Item, len(r.Items))
	for i, it := range r.Items {
		out[i] = it.item()
	}
	return out
}

func (s *Snapshot) findMenu(id int64) (*MenuRecord, bool) {
	for i := range s.Menus {
		if s.Menus[i].ID == id {
			return &s.Menus[i], true
		}
	}
	return nil, false
}

func (s *Snapshot) widgetState() *widget.State {
	instances := make(map[string]map[int]widget.Instance, len(s.Instances))
	for option, byNumber := range s.Instances {
		m := make(map[int]widget.Instance, len(byNumber))
		for n, settings := range byNumber {
			m[n] = widget.Instance(settings)
		}
		instances[option] = m
	}

	return &widget.State{
		Widgets:     s.Widgets,
		Sidebars:    s.Sidebars,
		Memberships: widget.Memberships(s.Memberships),
		Instances:   instances,
	}
}
