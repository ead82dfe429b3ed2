package vdom

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// Attr is a single attribute produced by the helper constructors.
// An Attr with an empty Key is ignored.
type Attr struct {
	Key   string
	Value any
}

// EventHandler binds a handler to an "on<event>" attribute.
type EventHandler struct {
	Event   string // e.g. "onclick"
	Handler any
}

// H builds a node and panics with the construction error on failure.
// It is meant for tree descriptions written in code, where a malformed
// argument is a programming error.
func H(tag any, args ...any) *Node {
	n, err := Build(tag, args...)
	if err != nil {
		panic(err)
	}
	return n
}

// Build builds a node from a tag and a list of arguments.
//
// The tag is an element name with optional shorthand ("li.item.active@k7"),
// a RenderFunc or plain render function, or any Renderer. Arguments are
// attribute maps, Attr values, event handlers, child nodes, scalars (which
// become text), renderers (which become component children) and slices of
// any of those, flattened in place. nil arguments are dropped.
func Build(tag any, args ...any) (*Node, error) {
	var n *Node
	switch t := tag.(type) {
	case string:
		n = parseTag(t)
	case RenderFunc:
		n = newComponent(t)
	case func(Attrs, []*Node) any:
		n = newComponent(RenderFunc(t))
	case Renderer:
		if t == nil {
			return nil, constructionErrorf("vdom: nil renderer")
		}
		n = newComponent(t)
	default:
		return nil, constructionErrorf("vdom: unsupported tag type %T", tag)
	}
	for _, arg := range args {
		if err := n.add(arg); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func newComponent(r Renderer) *Node {
	return &Node{Kind: KindComponent, Comp: r, Attrs: make(Attrs)}
}

// parseTag splits "tag.c1.c2@key" into an element node.
func parseTag(s string) *Node {
	n := &Node{Kind: KindElement, Attrs: make(Attrs)}
	if i := strings.IndexByte(s, '@'); i >= 0 {
		n.Key = s[i+1:]
		s = s[:i]
	}
	parts := strings.Split(s, ".")
	n.Tag = parts[0]
	if n.Tag == "" {
		n.Tag = "div"
	}
	if classes := parts[1:]; len(classes) > 0 {
		n.Attrs[ClassNameAttr] = strings.Join(classes, " ")
	}
	return n
}

func (n *Node) setAttr(key string, value any) {
	if key == "" {
		return
	}
	if key == KeyAttr {
		if value == nil {
			n.Key = ""
		} else {
			n.Key = AttrString(value)
		}
		return
	}
	n.Attrs[key] = value
}

func (n *Node) add(arg any) error {
	switch v := arg.(type) {
	case nil:
	case Attrs:
		for k, val := range v {
			n.setAttr(k, val)
		}
	case map[string]any:
		for k, val := range v {
			n.setAttr(k, val)
		}
	case Attr:
		n.setAttr(v.Key, v.Value)
	case []Attr:
		for _, a := range v {
			n.setAttr(a.Key, a.Value)
		}
	case EventHandler:
		n.setAttr(v.Event, v.Handler)
	case *Node:
		if v != nil {
			n.Children = append(n.Children, v)
		}
	case []*Node:
		for _, c := range v {
			if c != nil {
				n.Children = append(n.Children, c)
			}
		}
	case []any:
		for _, item := range v {
			if err := n.add(item); err != nil {
				return err
			}
		}
	case []string:
		for _, s := range v {
			n.Children = append(n.Children, Text(s))
		}
	case RenderFunc:
		n.Children = append(n.Children, newComponent(v))
	case func(Attrs, []*Node) any:
		n.Children = append(n.Children, newComponent(RenderFunc(v)))
	case Renderer:
		n.Children = append(n.Children, newComponent(v))
	default:
		if s, ok := scalarText(arg); ok {
			n.Children = append(n.Children, Text(s))
			return nil
		}
		rv := reflect.ValueOf(arg)
		if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
			for i := 0; i < rv.Len(); i++ {
				if err := n.add(rv.Index(i).Interface()); err != nil {
					return err
				}
			}
			return nil
		}
		return constructionErrorf("vdom: unsupported argument type %T in <%s>", arg, n.describe())
	}
	return nil
}

func (n *Node) describe() string {
	if n.Kind == KindComponent {
		return RendererName(n.Comp)
	}
	return n.Tag
}

// scalarText renders string, bool and numeric values as text.
func scalarText(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(s), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	}
	return "", false
}

// Normalize converts a render result into a single node.
//
// A node or scalar becomes that node. A sequence is flattened; exactly one
// item becomes that item, zero or several are wrapped in a div.
func Normalize(v any) (*Node, error) {
	switch r := v.(type) {
	case *Node:
		if r != nil {
			return r, nil
		}
		return H("div"), nil
	case nil:
		return H("div"), nil
	}
	if s, ok := scalarText(v); ok {
		return Text(s), nil
	}
	wrap, err := Build("div", v)
	if err != nil {
		return nil, err
	}
	if len(wrap.Children) == 1 {
		return wrap.Children[0], nil
	}
	return wrap, nil
}

// Text creates a text node.
func Text(content string) *Node {
	return &Node{Kind: KindText, Text: content}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *Node {
	return Text(fmt.Sprintf(format, args...))
}
