package vdom

import (
	"reflect"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/style"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindText      Kind = iota // Plain text node
	KindElement               // <div>, <li>, etc.
	KindComponent             // Renders into a concrete subtree
	KindKept                  // Placeholder for a subtree awaiting removal
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	case KindKept:
		return "Kept"
	default:
		return "Unknown"
	}
}

// Attrs holds attributes, event handlers, lifecycle hooks and, for
// components, local state under transient keys.
type Attrs map[string]any

// Node is a node of the logical tree.
type Node struct {
	Kind     Kind     // Node type
	Tag      string   // Element tag name (e.g., "div")
	Comp     Renderer // For KindComponent
	Attrs    Attrs    // Attributes and handlers; never nil for built nodes
	Children []*Node  // Child nodes
	Key      string   // Sibling identity
	Text     string   // For KindText

	// Engine bookkeeping. Applications leave these alone.

	// Concrete is the subtree a component rendered into.
	Concrete *Node
	// Host caches the host node; only maintained in validation mode.
	Host host.Node
	// Scope lists generated style classes the rendered root must carry.
	Scope []string
	// Discard marks a kept placeholder whose teardown has completed.
	Discard bool
}

// Renderer is anything that can render a component.
//
// Render returns a *Node, a scalar, a slice of those, or nil; the result is
// normalized with Normalize.
type Renderer interface {
	Render(attrs Attrs, children []*Node) any
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(attrs Attrs, children []*Node) any

// Render implements Renderer.
func (f RenderFunc) Render(attrs Attrs, children []*Node) any {
	return f(attrs, children)
}

// Starter is implemented by renderers that want to know when a component
// instance starts. Start runs before the first render of the instance.
type Starter interface {
	Start(attrs Attrs)
}

// Stopper is implemented by renderers that want to know when a component
// instance stops.
type Stopper interface {
	Stop(attrs Attrs)
}

// Styler is implemented by renderers that carry a scoped style. The style
// is generated once per renderer and its class added to the rendered root.
type Styler interface {
	Style() style.Style
}

type funcID uintptr

// RendererID returns a comparable identity for r.
//
// A RenderFunc is identified by its code pointer, so closures created at
// one call site share one identity. The compiler may copy a function
// literal into every site its enclosing function is inlined at, so a
// factory called from two places can yield two identities; declare
// components once (a package-level RenderFunc or a pointer renderer) when
// they must patch into each other. Other renderers are
// identified by value when their dynamic type is comparable (typically a
// pointer), and by type otherwise.
func RendererID(r Renderer) any {
	if r == nil {
		return nil
	}
	if f, ok := r.(RenderFunc); ok {
		return funcID(reflect.ValueOf(f).Pointer())
	}
	t := reflect.TypeOf(r)
	if t.Comparable() {
		return r
	}
	return t
}

// SameRenderer reports whether a and b are the same component renderer.
func SameRenderer(a, b Renderer) bool {
	return RendererID(a) == RendererID(b)
}

// RendererName returns a readable name for r, used in logs and dumps.
func RendererName(r Renderer) string {
	if r == nil {
		return "<nil>"
	}
	if n, ok := r.(interface{ Name() string }); ok {
		return n.Name()
	}
	if f, ok := r.(RenderFunc); ok {
		if fn := funcName(f); fn != "" {
			return fn
		}
	}
	return reflect.TypeOf(r).String()
}

// CanPatch reports whether next can be patched onto prev instead of
// replacing it: both text, or the same kind with equal tag or renderer and
// equal key.
func CanPatch(next, prev *Node) bool {
	if next == nil || prev == nil || next.Kind != prev.Kind {
		return false
	}
	switch next.Kind {
	case KindText:
		return true
	case KindElement:
		return next.Tag == prev.Tag && next.Key == prev.Key
	case KindComponent:
		return next.Key == prev.Key && SameRenderer(next.Comp, prev.Comp)
	default:
		return next == prev
	}
}

// IsKept reports whether n is a kept placeholder.
func (n *Node) IsKept() bool {
	return n != nil && n.Kind == KindKept
}

// NewKept returns a placeholder for a subtree awaiting removal.
func NewKept() *Node {
	return &Node{Kind: KindKept}
}

// StyledFunc is a render function with a scoped style.
type StyledFunc struct {
	fn    RenderFunc
	style style.Style
}

// Styled attaches a scoped style to fn. The result must be created once
// and reused: each StyledFunc is its own component identity.
func Styled(fn RenderFunc, st style.Style) *StyledFunc {
	return &StyledFunc{fn: fn, style: st}
}

// Render implements Renderer.
func (s *StyledFunc) Render(attrs Attrs, children []*Node) any {
	return s.fn(attrs, children)
}

// Style implements Styler.
func (s *StyledFunc) Style() style.Style {
	return s.style
}

// Name returns the name of the wrapped function.
func (s *StyledFunc) Name() string {
	return RendererName(s.fn)
}
