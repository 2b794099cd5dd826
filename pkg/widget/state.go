package widget

import (
	"errors"
	"fmt"
)

// ErrInvalidInput matches any *InvalidInputError.
var ErrInvalidInput = errors.New("invalid widget input")

// InvalidInputError is returned for malformed widget or sidebar records.
type InvalidInputError struct {
	Kind    string
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid %s field %s: %s", e.Kind, e.Field, e.Message)
}

// Is reports whether target is ErrInvalidInput.
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

// State is a snapshot of the registered widgets and sidebars of a site.
type State struct {
	// Widgets are the registered widgets in registration order.
	Widgets []Descriptor
	// Sidebars are the registered sidebars in registration order.
	Sidebars []Sidebar
	// Memberships maps sidebars to the widgets they render.
	Memberships Memberships
	// Instances maps option name and instance number to instance settings.
	Instances map[string]map[int]Instance
}

// Widget looks up a registered widget by id.
func (s *State) Widget(id string) (Descriptor, bool) {
	for _, w := range s.Widgets {
		if w.ID == id {
			return w, true
		}
	}
	return Descriptor{}, false
}

// Sidebar looks up a registered sidebar by id.
func (s *State) Sidebar(id string) (Sidebar, bool) {
	for _, sb := range s.Sidebars {
		if sb.ID == id {
			return sb, true
		}
	}
	return Sidebar{}, false
}

// Instance returns the settings stored for the widget instance.
func (s *State) Instance(optionName string, number int) (Instance, bool) {
	instances, ok := s.Instances[optionName]
	if !ok {
		return nil, false
	}
	in, ok := instances[number]
	return in, ok
}
