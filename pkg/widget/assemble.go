package widget

import (
	"context"
	"fmt"

	"github.com/mchmarny/ngwp/pkg/validation"
)

// Assembler builds widget and sidebar views from a State snapshot.
type Assembler struct {
	state    *State
	renderer Renderer
}

// NewAssembler returns an Assembler over state. A nil renderer renders
// every widget as an empty string.
func NewAssembler(state *State, renderer Renderer) *Assembler {
	if state == nil {
		state = &State{}
	}
	if renderer == nil {
		renderer = RendererFunc(func(context.Context, Descriptor, Instance, RenderArgs) (string, error) {
			return "", nil
		})
	}
	return &Assembler{state: state, renderer: renderer}
}

// Widget assembles a single widget.
func (a *Assembler) Widget(ctx context.Context, d Descriptor) (*Widget, error) {
	if err := validation.ValidateStruct(&d); err != nil {
		return nil, &InvalidInputError{Kind: "widget", Field: "id", Message: err.Error()}
	}

	w := &Widget{
		Descriptor:     d,
		HasOutput:      d.Number > 0,
		InstanceNumber: d.Number,
	}

	args := DefaultRenderArgs()
	if sidebarID, ok := a.state.Memberships.SidebarFor(d.ID); ok {
		w.InSidebar = Some(sidebarID)

		if sb, found := a.state.Sidebar(sidebarID); found {
			if sb.BeforeWidget != "" {
				sb.BeforeWidget = formatWrapper(sb.BeforeWidget, d.ID, d.ClassName)
				args = RenderArgs{
					BeforeWidget: sb.BeforeWidget,
					AfterWidget:  sb.AfterWidget,
					BeforeTitle:  sb.BeforeTitle,
					AfterTitle:   sb.AfterTitle,
				}
			}
			w.SidebarParams = Some(sb)
		}
	}
	args.BeforeWidget = formatWrapper(args.BeforeWidget, d.ID, d.ClassName)

	var instance Instance
	if w.HasOutput {
		if in, ok := a.state.Instance(d.OptionName, d.Number); ok {
			instance = in
			w.Instance = Some(in)
		}
	}

	out, err := a.renderer.Render(ctx, d, instance, args)
	if err != nil {
		return nil, fmt.Errorf("failed to render widget %s: %w", d.ID, err)
	}
	w.Output = out

	return w, nil
}

// Widgets assembles every registered widget in registration order.
func (a *Assembler) Widgets(ctx context.Context) ([]*Widget, error) {
	out := make([]*Widget, 0, len(a.state.Widgets))
	for _, d := range a.state.Widgets {
		w, err := a.Widget(ctx, d)
		if err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	return out, nil
}

// Sidebar assembles a single sidebar. ActiveWidgets stays unset (false)
// when the sidebar renders no widgets.
func (a *Assembler) Sidebar(s Sidebar) (*SidebarView, error) {
	if err := validation.ValidateStruct(&s); err != nil {
		return nil, &InvalidInputError{Kind: "sidebar", Field: "id", Message: err.Error()}
	}

	v := &SidebarView{Sidebar: s}
	if ids := a.state.Memberships.WidgetsIn(s.ID); len(ids) > 0 {
		v.ActiveWidgets = Some(ids)
	}
	return v, nil
}

// Sidebars assembles every registered sidebar in registration order.
func (a *Assembler) Sidebars() ([]*SidebarView, error) {
	out := make([]*SidebarView, 0, len(a.state.Sidebars))
	for _, s := range a.state.Sidebars {
		v, err := a.Sidebar(s)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
