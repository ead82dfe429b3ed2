package engine

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vango-dev/vdom/pkg/vdom"
)

const inputKey = "oninput"

// bind ties the value (or, for checkboxes, the checked state) of input n
// to the location binding names inside ctx. The current value is read into
// the node and an input handler writes changes back.
func (p *pass) bind(n *vdom.Node, ctx vdom.Attrs, binding any) error {
	path, err := bindingPath(binding)
	if err != nil {
		return err
	}
	checkbox := isCheckbox(n)

	v, ok := readPath(ctx, path)
	switch {
	case checkbox:
		if !ok {
			if err := writePath(ctx, path, false); err != nil {
				return err
			}
		}
		n.Attrs["checked"] = truthy(v)
	default:
		if !ok || v == nil {
			v = ""
			if err := writePath(ctx, path, v); err != nil {
				return err
			}
		}
		n.Attrs["value"] = v
	}

	var user vdom.Handler
	for k, h := range n.Attrs {
		if strings.EqualFold(k, inputKey) {
			user, _ = vdom.AsHandler(h)
			delete(n.Attrs, k)
		}
	}
	n.Attrs[inputKey] = bindingHandler(path, inputType(n), user)
	return nil
}

func bindingHandler(path []string, typ string, user vdom.Handler) vdom.Handler {
	return func(ctx vdom.Attrs, ev *vdom.Event) error {
		if v, ok := inputValue(ev, typ); ok {
			if err := writePath(ctx, path, v); err != nil {
				return err
			}
			if typ == "checkbox" {
				ev.Node.Attrs["checked"] = v
			} else {
				ev.Node.Attrs["value"] = v
			}
		}
		if user != nil {
			return user(ctx, ev)
		}
		return nil
	}
}

// inputValue reads the live value of the event's element.
func inputValue(ev *vdom.Event, typ string) (any, bool) {
	if ev.Element == nil {
		return nil, false
	}
	switch typ {
	case "checkbox":
		return truthy(ev.Element.Property("checked")), true
	case "number":
		f, err := strconv.ParseFloat(vdom.AttrString(ev.Element.Property("value")), 64)
		if err != nil {
			return nil, false
		}
		return f, true
	}
	v := ev.Element.Property("value")
	if v == nil {
		return "", true
	}
	return vdom.AttrString(v), true
}

func inputType(n *vdom.Node) string {
	if t, ok := n.Attrs["type"]; ok && t != nil {
		return strings.ToLower(vdom.AttrString(t))
	}
	return ""
}

func isCheckbox(n *vdom.Node) bool {
	return inputType(n) == "checkbox"
}

func truthy(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case string:
		return b != ""
	}
	return true
}

// bindingPath accepts "a.b.c", []string{"a", "b", "c"} or the same as []any.
func bindingPath(binding any) ([]string, error) {
	var path []string
	switch s := binding.(type) {
	case string:
		path = strings.Split(s, ".")
	case []string:
		path = s
	case []any:
		for _, e := range s {
			str, ok := e.(string)
			if !ok {
				return nil, errors.Newf("binding path element %v is not a string", e)
			}
			path = append(path, str)
		}
	default:
		return nil, errors.Newf("unsupported binding %T", binding)
	}
	if len(path) == 0 {
		return nil, errors.New("empty binding path")
	}
	for _, seg := range path {
		if seg == "" {
			return nil, errors.Newf("binding path %q has an empty segment", strings.Join(path, "."))
		}
	}
	return path, nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case vdom.Attrs:
		return m, m != nil
	case map[string]any:
		return m, m != nil
	}
	return nil, false
}

func readPath(ctx vdom.Attrs, path []string) (any, bool) {
	var cur map[string]any = ctx
	for i, seg := range path {
		v, ok := cur[seg]
		if !ok {
			return nil, false
		}
		if i == len(path)-1 {
			return v, true
		}
		if cur, ok = asMap(v); !ok {
			return nil, false
		}
	}
	return nil, false
}

// writePath stores v at path, creating intermediate maps as needed.
func writePath(ctx vdom.Attrs, path []string, v any) error {
	var cur map[string]any = ctx
	for i, seg := range path[:len(path)-1] {
		next, ok := cur[seg]
		if !ok || next == nil {
			m := make(map[string]any)
			cur[seg] = m
			cur = m
			continue
		}
		m, ok := asMap(next)
		if !ok {
			return errors.Newf("binding %s: %s is a %T, not a map",
				strings.Join(path, "."), strings.Join(path[:i+1], "."), next)
		}
		cur = m
	}
	cur[path[len(path)-1]] = v
	return nil
}
