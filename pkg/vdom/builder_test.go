package vdom

import (
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		in    string
		tag   string
		class any
		key   string
	}{
		{"li", "li", nil, ""},
		{"", "div", nil, ""},
		{".box", "div", "box", ""},
		{"li.item.active", "li", "item active", ""},
		{"section.card@k1", "section", "card", "k1"},
		{"@only", "div", nil, "only"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n := parseTag(tt.in)
			if n.Tag != tt.tag {
				t.Errorf("Tag = %q, want %q", n.Tag, tt.tag)
			}
			if got := n.Attrs[ClassNameAttr]; got != tt.class {
				t.Errorf("className = %v, want %v", got, tt.class)
			}
			if n.Key != tt.key {
				t.Errorf("Key = %q, want %q", n.Key, tt.key)
			}
		})
	}
}

func TestBuildArguments(t *testing.T) {
	got := H("section.card@key",
		"Click here:",
		123,
		H("button", Attrs{"id": "b", "className": "c"}, "Click me"),
		Attrs{"id": "myId"},
	)

	want := &Node{
		Kind:  KindElement,
		Tag:   "section",
		Key:   "key",
		Attrs: Attrs{"className": "card", "id": "myId"},
		Children: []*Node{
			Text("Click here:"),
			Text("123"),
			{
				Kind:     KindElement,
				Tag:      "button",
				Attrs:    Attrs{"id": "b", "className": "c"},
				Children: []*Node{Text("Click me")},
			},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Build mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFlattensAndDropsNil(t *testing.T) {
	items := []string{"a", "b"}
	n := H("ul",
		nil,
		[]*Node{H("li", "1"), nil, H("li", "2")},
		[]any{"x", []any{H("li", "3"), nil}},
		items,
		[]int{7, 8},
	)
	var texts []string
	for _, c := range n.Children {
		switch c.Kind {
		case KindText:
			texts = append(texts, c.Text)
		case KindElement:
			texts = append(texts, c.Tag+":"+c.Children[0].Text)
		}
	}
	want := []string{"li:1", "li:2", "x", "li:3", "a", "b", "7", "8"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("children mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildKeyAttribute(t *testing.T) {
	n := H("li", Attrs{"key": 42, "title": "x"})
	if n.Key != "42" {
		t.Errorf("Key = %q, want %q", n.Key, "42")
	}
	if _, ok := n.Attrs["key"]; ok {
		t.Error("key should not be kept as an attribute")
	}

	n = H("li.a@first", Key("second"))
	if n.Key != "second" {
		t.Errorf("Key = %q, want later key to win", n.Key)
	}
}

func TestBuildLaterAttributesWin(t *testing.T) {
	n := H("div.a", Class("b"), Attrs{"id": "1"}, ID("2"), ClassIf(false, "c"))
	if got := n.Attrs[ClassNameAttr]; got != "b" {
		t.Errorf("className = %v, want b", got)
	}
	if got := n.Attrs["id"]; got != "2" {
		t.Errorf("id = %v, want 2", got)
	}
}

func TestBuildComponentChild(t *testing.T) {
	inner := RenderFunc(func(Attrs, []*Node) any { return "hi" })
	n := H("div", inner, func(Attrs, []*Node) any { return nil })
	if len(n.Children) != 2 {
		t.Fatalf("children = %d, want 2", len(n.Children))
	}
	for i, c := range n.Children {
		if c.Kind != KindComponent {
			t.Errorf("child %d kind = %v, want Component", i, c.Kind)
		}
	}

	comp := H(inner, Attrs{"x": 1}, "child")
	if comp.Kind != KindComponent || comp.Attrs["x"] != 1 || len(comp.Children) != 1 {
		t.Errorf("unexpected component node %+v", comp)
	}
}

func TestBuildErrors(t *testing.T) {
	if _, err := Build(42); !errors.Is(err, ErrConstruction) {
		t.Errorf("Build(42) error = %v, want ErrConstruction", err)
	}
	_, err := Build("div", struct{ X int }{1})
	if !errors.Is(err, ErrConstruction) {
		t.Fatalf("error = %v, want ErrConstruction", err)
	}
	if !strings.Contains(err.Error(), "<div>") {
		t.Errorf("error %q should name the element", err)
	}

	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("H did not panic")
		}
		if e, ok := r.(error); !ok || !errors.Is(e, ErrConstruction) {
			t.Errorf("panic value = %v, want ErrConstruction", r)
		}
	}()
	H("div", make(chan int))
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		kind Kind
		tag  string
		n    int
	}{
		{"nil", nil, KindElement, "div", 0},
		{"node", H("span"), KindElement, "span", 0},
		{"scalar", 23, KindText, "", 0},
		{"single item slice", []any{H("p")}, KindElement, "p", 0},
		{"nested single", []any{[]any{nil, "x"}}, KindText, "", 0},
		{"several", []any{"a", H("b")}, KindElement, "div", 2},
		{"empty", []*Node{}, KindElement, "div", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := Normalize(tt.in)
			if err != nil {
				t.Fatal(err)
			}
			if n.Kind != tt.kind || n.Tag != tt.tag || len(n.Children) != tt.n {
				t.Errorf("Normalize = {%v %q %d children}, want {%v %q %d}",
					n.Kind, n.Tag, len(n.Children), tt.kind, tt.tag, tt.n)
			}
		})
	}
}

func TestElementFactories(t *testing.T) {
	n := Ul(Class("list"), Li(Key("a"), "A"), Li(Key("b"), OnClick(func() {}), "B"))
	if n.Tag != "ul" || len(n.Children) != 2 {
		t.Fatalf("unexpected tree:\n%s", Dump(n))
	}
	if n.Children[1].Key != "b" {
		t.Errorf("Key = %q, want b", n.Children[1].Key)
	}
	if _, ok := AsHandler(n.Children[1].Attrs["onclick"]); !ok {
		t.Error("onclick should hold a handler")
	}
	if got := CustomElement("my-widget", "x").Tag; got != "my-widget" {
		t.Errorf("CustomElement tag = %q", got)
	}
}

func TestDump(t *testing.T) {
	out := Dump(Ul(Li(Key("a"), Class("x"), "A"), Li()))
	for _, want := range []string{"ul", "li @a className=\"x\"", "\"A\""} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump missing %q:\n%s", want, out)
		}
	}
}
