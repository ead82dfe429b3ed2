package main

import (
	"fmt"
	"strings"

	"github.com/vango-dev/vdom/pkg/host/memhost"
	"github.com/vango-dev/vdom/pkg/style"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// demo is a tree plus a script of changes applied to it one pass at a time.
type demo struct {
	name        string
	description string
	context     func() vdom.Attrs
	root        vdom.RenderFunc
	steps       []step
}

// step changes the mounted demo. It either edits the context or acts on
// the host tree like a user would.
type step struct {
	label string
	do    func(ctx vdom.Attrs, body *memhost.Element) error
}

func setCtx(key string, value any) func(vdom.Attrs, *memhost.Element) error {
	return func(ctx vdom.Attrs, _ *memhost.Element) error {
		ctx[key] = value
		return nil
	}
}

func click(id string) func(vdom.Attrs, *memhost.Element) error {
	return func(_ vdom.Attrs, body *memhost.Element) error {
		el := body.GetElementByID(id)
		if el == nil {
			return fmt.Errorf("no element with id %q", id)
		}
		el.Dispatch("click")
		return nil
	}
}

func input(id string, value any) func(vdom.Attrs, *memhost.Element) error {
	return func(_ vdom.Attrs, body *memhost.Element) error {
		el := body.GetElementByID(id)
		if el == nil {
			return fmt.Errorf("no element with id %q", id)
		}
		el.Input(value)
		el.Dispatch("input")
		return nil
	}
}

var demos = []*demo{
	counterDemo(),
	listDemo(),
	formDemo(),
	styledDemo(),
}

func findDemo(name string) (*demo, bool) {
	for _, d := range demos {
		if d.name == name {
			return d, true
		}
	}
	return nil, false
}

func counterDemo() *demo {
	return &demo{
		name:        "counter",
		description: "A button whose click handler increments a count",
		context:     func() vdom.Attrs { return vdom.Attrs{"count": 0} },
		root: func(ctx vdom.Attrs, _ []*vdom.Node) any {
			return vdom.Div(
				vdom.Span(vdom.ID("count"), "Count: ", ctx["count"]),
				vdom.Button(vdom.ID("inc"), vdom.OnClick(func() {
					ctx["count"] = ctx["count"].(int) + 1
				}), "+1"),
			)
		},
		steps: []step{
			{"click +1", click("inc")},
			{"click +1 again", click("inc")},
		},
	}
}

func listDemo() *demo {
	items := func(s string) []string { return strings.Fields(s) }
	return &demo{
		name:        "list",
		description: "Keyed list items moved, removed and inserted",
		context:     func() vdom.Attrs { return vdom.Attrs{"items": items("a b c d e")} },
		root: func(ctx vdom.Attrs, _ []*vdom.Node) any {
			return vdom.Ul(vdom.Range(ctx["items"].([]string), func(item string, _ int) *vdom.Node {
				return vdom.Li(vdom.Key(item), strings.ToUpper(item))
			}))
		},
		steps: []step{
			{"swap first and last", setCtx("items", items("e b c d a"))},
			{"remove c", setCtx("items", items("e b d a"))},
			{"insert x in the middle", setCtx("items", items("e b x d a"))},
			{"reverse", setCtx("items", items("a d x b e"))},
			{"no change", setCtx("items", items("a d x b e"))},
		},
	}
}

func formDemo() *demo {
	return &demo{
		name:        "form",
		description: "Inputs bound to nested context values",
		context: func() vdom.Attrs {
			return vdom.Attrs{"user": map[string]any{"name": "", "subscribed": false}}
		},
		root: func(ctx vdom.Attrs, _ []*vdom.Node) any {
			user, _ := ctx["user"].(map[string]any)
			return vdom.Form(
				vdom.Input(vdom.ID("name"), vdom.Binding("user.name")),
				vdom.Input(vdom.ID("subscribed"), vdom.Type("checkbox"), vdom.Binding("user.subscribed")),
				vdom.P(vdom.ID("summary"), fmt.Sprintf("name=%q subscribed=%v", user["name"], user["subscribed"])),
			)
		},
		steps: []step{
			{"type a name", input("name", "ada")},
			{"tick the checkbox", input("subscribed", true)},
		},
	}
}

var card = vdom.Styled(func(ctx vdom.Attrs, children []*vdom.Node) any {
	return vdom.Section(vdom.H2(ctx["title"]), children)
}, style.Style{
	"padding": "8px",
	"> h2":    style.Style{"fontWeight": "bold"},
})

func styledDemo() *demo {
	return &demo{
		name:        "styled",
		description: "A component with a scoped style, shared by two instances",
		context:     func() vdom.Attrs { return vdom.Attrs{"title": "First"} },
		root: func(ctx vdom.Attrs, _ []*vdom.Node) any {
			return vdom.Div(
				vdom.H(card, vdom.Attrs{"title": ctx["title"]}, "body"),
				vdom.H(card, vdom.Attrs{"title": "Second"}),
			)
		},
		steps: []step{
			{"retitle the first card", setCtx("title", "Renamed")},
		},
	}
}
