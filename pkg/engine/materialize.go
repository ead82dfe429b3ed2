package engine

import (
	"github.com/cockroachdb/errors"

	"github.com/vango-dev/vdom/pkg/vdom"
)

// materialize renders component n into its concrete node. fresh is true
// for a new component instance, which gets its Start call first.
func (p *pass) materialize(n *vdom.Node, fresh bool) (*vdom.Node, error) {
	if n.Attrs == nil {
		n.Attrs = make(vdom.Attrs)
	}
	if fresh {
		if s, ok := n.Comp.(vdom.Starter); ok {
			s.Start(n.Attrs)
		}
	}

	out, err := vdom.Normalize(n.Comp.Render(n.Attrs, n.Children))
	if err != nil {
		return nil, errors.Wrapf(err, "rendering %s", vdom.RendererName(n.Comp))
	}

	scope := n.Scope
	if s, ok := n.Comp.(vdom.Styler); ok {
		class := p.in.sheet.Scope(vdom.RendererID(n.Comp), s.Style())
		scope = append(scope[:len(scope):len(scope)], class)
	}
	if len(scope) > 0 {
		applyScope(out, scope)
	}
	return out, nil
}

// applyScope hands the style classes of the enclosing components to the
// rendered root: an element carries them in its class name, a component
// passes them on.
func applyScope(out *vdom.Node, scope []string) {
	switch out.Kind {
	case vdom.KindElement:
		if out.Attrs == nil {
			out.Attrs = make(vdom.Attrs)
		}
		var className string
		if v, ok := out.Attrs[vdom.ClassNameAttr]; ok && v != nil {
			className = vdom.AttrString(v)
		}
		out.Attrs[vdom.ClassNameAttr] = joinClasses(className, scope)
	case vdom.KindComponent:
		out.Scope = scope
	}
}
