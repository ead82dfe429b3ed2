package engine

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/style"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// emptyElement stands in for the previous state of a freshly created
// element. Children created against it are not parent-stable.
var emptyElement = &vdom.Node{Kind: vdom.KindElement}

// propertyKeys are written as live properties rather than attributes.
var propertyKeys = map[string]bool{
	"checked":          true,
	"value":            true,
	vdom.ClassNameAttr: true,
	"selectedIndex":    true,
}

// create builds the host nodes for n. parentStable is false when n is part
// of a subtree that is itself being created.
func (p *pass) create(n *vdom.Node, ctx vdom.Attrs, parentStable bool) (host.Node, error) {
	switch n.Kind {
	case vdom.KindText:
		t := p.in.doc.CreateTextNode(n.Text)
		p.created(t)
		return t, nil

	case vdom.KindComponent:
		concrete, err := p.materialize(n, true)
		if err != nil {
			return nil, err
		}
		n.Concrete = concrete
		return p.create(concrete, n.Attrs, parentStable)

	case vdom.KindElement:
		el := p.in.doc.CreateElement(n.Tag)
		p.created(el)
		if hook, ok := vdom.AsHook(n.Attrs[vdom.OnCreateAttr]); ok {
			info := &vdom.HookInfo{Element: el, Node: n, ParentStable: parentStable, Instance: p.in}
			p.afterCommit(func() { hook(ctx, info) })
		}
		if err := p.patchElement(n, emptyElement, newPath(el), ctx); err != nil {
			return nil, err
		}
		return el, nil
	}
	return nil, errors.AssertionFailedf("cannot create a %s node", n.Kind)
}

func (p *pass) created(h host.Node) {
	p.stats.Created++
	p.stats.Writes++
	if p.in.rootHost == nil {
		p.in.rootHost = h
	}
}

// patch updates the host node at rp, which reflects prev, to reflect next.
// CanPatch(next, prev) must hold. It returns the node to keep in the tree.
func (p *pass) patch(next, prev *vdom.Node, rp *renderPath, ctx vdom.Attrs) (*vdom.Node, error) {
	switch next.Kind {
	case vdom.KindText:
		if next.Text == prev.Text {
			return next, nil
		}
		h, err := p.resolve(rp, rp.len())
		if err != nil {
			return nil, err
		}
		t, ok := h.(host.Text)
		if !ok {
			return nil, shapeErrorf("text node expected at %s, found %T", rp, h)
		}
		t.SetText(next.Text)
		p.stats.Writes++
		return next, nil

	case vdom.KindComponent:
		return p.patchComponent(next, prev, rp)

	case vdom.KindElement:
		return next, p.patchElement(next, prev, rp, ctx)
	}
	return nil, shapeErrorf("cannot patch a %s node", next.Kind)
}

func (p *pass) patchComponent(next, prev *vdom.Node, rp *renderPath) (*vdom.Node, error) {
	fresh := true
	if prev.Attrs != nil && vdom.AttrsEqual(next.Attrs, prev.Attrs) {
		next.Attrs = prev.Attrs
		fresh = false
	} else {
		p.stop(prev)
	}

	concrete, err := p.materialize(next, fresh)
	if err != nil {
		return nil, err
	}
	if vdom.CanPatch(concrete, prev.Concrete) {
		c, err := p.patch(concrete, prev.Concrete, rp, next.Attrs)
		if err != nil {
			return nil, err
		}
		next.Concrete = c
		return next, nil
	}

	// The rendered root changed shape: replace the whole subtree.
	old, err := p.resolve(rp, rp.len())
	if err != nil {
		return nil, err
	}
	parent := old.Parent()
	if parent == nil {
		return nil, errors.Wrapf(ErrMissingElement, "replacing %s: node is detached", rp)
	}
	if prev.Concrete != nil {
		p.destroy(prev.Concrete, prev.Attrs, old, true)
	}
	wasRoot := old == p.in.rootHost
	if wasRoot {
		p.in.resetRoot()
	}
	h, err := p.create(concrete, next.Attrs, true)
	if err != nil {
		return nil, err
	}
	if wasRoot {
		p.in.rootHost = h
	}
	parent.ReplaceChild(h, old)
	p.stats.Writes++
	rp.replaceLast(h)
	next.Concrete = concrete
	return next, nil
}

func (p *pass) patchElement(next, prev *vdom.Node, rp *renderPath, ctx vdom.Attrs) error {
	if next.Attrs == nil {
		next.Attrs = make(vdom.Attrs)
	}
	pos := rp.len()
	if p.in.cfg.Validate {
		if err := p.validateElement(next, prev, rp); err != nil {
			return err
		}
	}

	if err := p.reconcile(next, prev, rp, ctx); err != nil {
		return err
	}
	rp.truncate(pos)

	if b, ok := next.Attrs[vdom.BindingAttr]; ok && b != nil {
		if err := p.bind(next, ctx, b); err != nil {
			return err
		}
	}

	el := &lazyElement{p: p, rp: rp}
	if err := p.patchAttrs(next, prev, el); err != nil {
		return err
	}

	if prev != emptyElement {
		if hook, ok := vdom.AsHook(next.Attrs[vdom.OnRefreshAttr]); ok {
			e, err := el.get()
			if err != nil {
				return err
			}
			info := &vdom.HookInfo{Element: e, Node: next, ParentStable: true, Instance: p.in}
			p.afterCommit(func() { hook(ctx, info) })
		}
	}
	return nil
}

// skipAttr reports keys that never reach the host as attributes.
func skipAttr(key string) bool {
	return key == vdom.KeyAttr || key == vdom.BindingAttr || vdom.IsTransient(key) || vdom.IsLifecycleKey(key)
}

// absent reports whether v leaves the attribute unset. nil always does;
// false does for plain attributes, while properties keep it.
func absent(key string, v any) bool {
	if v == nil {
		return true
	}
	if b, ok := v.(bool); ok && !b && !propertyKeys[key] {
		return true
	}
	return false
}

func (p *pass) patchAttrs(next, prev *vdom.Node, el *lazyElement) error {
	for key, nv := range next.Attrs {
		if skipAttr(key) {
			continue
		}
		if vdom.IsEventKey(key) {
			if nv != nil {
				p.delegate(vdom.EventType(key))
			}
			continue
		}
		if absent(key, nv) {
			continue
		}
		ov := prev.Attrs[key]
		if key == vdom.StyleAttrKey {
			if err := p.patchStyle(el, nv, ov); err != nil {
				return err
			}
			continue
		}
		if !absent(key, ov) && vdom.ValuesEqual(nv, ov) {
			continue
		}
		e, err := el.get()
		if err != nil {
			return err
		}
		if propertyKeys[key] {
			e.SetProperty(key, nv)
		} else {
			e.SetAttribute(key, vdom.AttrString(nv))
		}
		p.stats.Writes++
	}

	for key, ov := range prev.Attrs {
		if skipAttr(key) || vdom.IsEventKey(key) || absent(key, ov) {
			continue
		}
		if !absent(key, next.Attrs[key]) {
			continue
		}
		e, err := el.get()
		if err != nil {
			return err
		}
		switch {
		case key == vdom.StyleAttrKey:
			if _, isMap := styleMap(ov); isMap {
				e.ClearProperty(key)
			} else {
				e.RemoveAttribute(key)
			}
		case propertyKeys[key]:
			e.ClearProperty(key)
		default:
			e.RemoveAttribute(key)
		}
		p.stats.Writes++
	}
	return nil
}

// patchStyle applies a style attribute. Maps are patched per property,
// strings are written as the style attribute.
func (p *pass) patchStyle(el *lazyElement, nv, ov any) error {
	nm, newIsMap := styleMap(nv)
	om, oldIsMap := styleMap(ov)

	if !newIsMap {
		if vdom.ValuesEqual(nv, ov) {
			return nil
		}
		e, err := el.get()
		if err != nil {
			return err
		}
		if oldIsMap {
			e.ClearProperty(vdom.StyleAttrKey)
			p.stats.Writes++
		}
		e.SetAttribute(vdom.StyleAttrKey, vdom.AttrString(nv))
		p.stats.Writes++
		return nil
	}

	if ov != nil && !oldIsMap {
		e, err := el.get()
		if err != nil {
			return err
		}
		e.RemoveAttribute(vdom.StyleAttrKey)
		p.stats.Writes++
	}
	for name, v := range nm {
		if old, ok := om[name]; ok && old == v {
			continue
		}
		e, err := el.get()
		if err != nil {
			return err
		}
		e.SetStyle(name, v)
		p.stats.Writes++
	}
	for name := range om {
		if _, ok := nm[name]; ok {
			continue
		}
		e, err := el.get()
		if err != nil {
			return err
		}
		e.SetStyle(name, "")
		p.stats.Writes++
	}
	return nil
}

// styleMap converts a style attribute value to CSS property names and values.
func styleMap(v any) (map[string]string, bool) {
	out := make(map[string]string)
	switch m := v.(type) {
	case map[string]string:
		for k, val := range m {
			out[style.Kebab(k)] = val
		}
	case map[string]any:
		for k, val := range m {
			out[style.Kebab(k)] = vdom.AttrString(val)
		}
	case style.Style:
		for k, val := range m {
			out[style.Kebab(k)] = vdom.AttrString(val)
		}
	default:
		return nil, false
	}
	return out, true
}

// destroy runs the teardown of n and its descendants, children first. h is
// the host node of n when known. The returned channel, if any, comes from
// n's own onremove hook and delays removal of h.
func (p *pass) destroy(n *vdom.Node, ctx vdom.Attrs, h host.Node, parentStable bool) <-chan struct{} {
	switch n.Kind {
	case vdom.KindComponent:
		var ch <-chan struct{}
		if n.Concrete != nil {
			ch = p.destroy(n.Concrete, n.Attrs, h, parentStable)
		}
		p.stop(n)
		return ch

	case vdom.KindElement:
		for _, c := range n.Children {
			p.destroy(c, ctx, nil, false)
		}
		if hook, ok := vdom.AsRemoveHook(n.Attrs[vdom.OnRemoveAttr]); ok {
			el, _ := h.(host.Element)
			return hook(ctx, &vdom.HookInfo{Element: el, Node: n, ParentStable: parentStable, Instance: p.in})
		}
	}
	return nil
}

func (p *pass) stop(n *vdom.Node) {
	if n == nil || n.Kind != vdom.KindComponent {
		return
	}
	if s, ok := n.Comp.(vdom.Stopper); ok {
		s.Stop(n.Attrs)
	}
}

// joinClasses appends classes missing from className.
func joinClasses(className string, classes []string) string {
	have := strings.Fields(className)
	for _, c := range classes {
		found := false
		for _, h := range have {
			if h == c {
				found = true
				break
			}
		}
		if !found {
			have = append(have, c)
		}
	}
	return strings.Join(have, " ")
}
