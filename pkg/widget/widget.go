// Package widget assembles registered widgets and sidebars into their REST
// representation. All site state is passed in through State; nothing is read
// from process globals.
package widget

import (
	"github.com/goccy/go-json"
)

// Descriptor is a registered widget.
type Descriptor struct {
	// ID is the widget id, e.g. text-2.
	ID string `json:"id" yaml:"id" validate:"required"`

	// Name is the widget display name.
	Name string `json:"name" yaml:"name"`

	// ClassName is the CSS class of the widget type.
	ClassName string `json:"classname" yaml:"classname"`

	// Description of the widget type
	Description string `json:"description" yaml:"description"`

	// Number is the instance number, 0 or less when the widget has no instance.
	Number int `json:"-" yaml:"number"`

	// OptionName is the option holding the settings of all instances of the widget type.
	OptionName string `json:"-" yaml:"option_name"`
}

// Sidebar is a registered sidebar.
type Sidebar struct {
	ID           string `json:"id" yaml:"id" validate:"required"`
	Name         string `json:"name" yaml:"name"`
	Description  string `json:"description" yaml:"description"`
	Class        string `json:"class" yaml:"class"`
	BeforeWidget string `json:"before_widget" yaml:"before_widget"`
	AfterWidget  string `json:"after_widget" yaml:"after_widget"`
	BeforeTitle  string `json:"before_title" yaml:"before_title"`
	AfterTitle   string `json:"after_title" yaml:"after_title"`
}

// Membership lists the widgets placed in a sidebar, in display order.
type Membership struct {
	SidebarID string   `yaml:"sidebar"`
	WidgetIDs []string `yaml:"widgets"`
}

// Memberships is the ordered sidebar to widgets mapping.
type Memberships []Membership

// SidebarFor returns the first sidebar that contains the widget.
func (m Memberships) SidebarFor(widgetID string) (string, bool) {
	for _, s := range m {
		for _, id := range s.WidgetIDs {
			if id == widgetID {
				return s.SidebarID, true
			}
		}
	}
	return "", false
}

// WidgetsIn returns the widgets of the sidebar, nil when it has none.
func (m Memberships) WidgetsIn(sidebarID string) []string {
	for _, s := range m {
		if s.SidebarID == sidebarID {
			return s.WidgetIDs
		}
	}
	return nil
}

// Instance holds the settings of a single widget instance.
type Instance map[string]any

// Optional is a value that serializes as false when it is not set.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Optional.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// MarshalJSON implements json.Marshaler.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set {
		return []byte("false"), nil
	}
	return json.Marshal(o.Value)
}

// Widget is the assembled REST representation of a widget.
type Widget struct {
	Descriptor

	InSidebar      Optional[string]   `json:"in_sidebar"`
	SidebarParams  Optional[Sidebar]  `json:"sidebar_params"`
	HasOutput      bool               `json:"has_output"`
	InstanceNumber int                `json:"instance_number"`
	Instance       Optional[Instance] `json:"instance"`
	Output         string             `json:"widget_output"`
}

// SidebarView is the assembled REST representation of a sidebar.
type SidebarView struct {
	Sidebar

	ActiveWidgets Optional[[]string] `json:"active_widgets"`
}
