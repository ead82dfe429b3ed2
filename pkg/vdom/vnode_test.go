package vdom

import (
	"testing"
)

type objRenderer struct{ name string }

func (r *objRenderer) Render(Attrs, []*Node) any { return r.name }

type valueRenderer struct{ items []string }

func (valueRenderer) Render(Attrs, []*Node) any { return nil }

func makeFunc() RenderFunc {
	return func(Attrs, []*Node) any { return nil }
}

func TestRendererIdentity(t *testing.T) {
	a, b := &objRenderer{"a"}, &objRenderer{"a"}
	if !SameRenderer(a, a) {
		t.Error("pointer renderer should equal itself")
	}
	if SameRenderer(a, b) {
		t.Error("distinct pointers should differ")
	}
	var fns []RenderFunc
	for i := 0; i < 2; i++ {
		fns = append(fns, func(Attrs, []*Node) any { return i })
	}
	if !SameRenderer(fns[0], fns[1]) {
		t.Error("closures made at one call site should share identity")
	}
	if SameRenderer(makeFunc(), RenderFunc(func(Attrs, []*Node) any { return 1 })) {
		t.Error("different function literals should differ")
	}
	if !SameRenderer(valueRenderer{[]string{"x"}}, valueRenderer{}) {
		t.Error("non-comparable renderers are identified by type")
	}
}

func TestCanPatch(t *testing.T) {
	f := makeFunc()
	nodes := []*Node{
		Text("a"),
		H("li"),
		H("li@k"),
		H("p"),
		H(f),
		H(f, Key("k")),
		H(&objRenderer{}),
	}
	for i, n := range nodes {
		if !CanPatch(n, n) {
			t.Errorf("CanPatch not reflexive for node %d", i)
		}
		for j, m := range nodes {
			if CanPatch(n, m) != CanPatch(m, n) {
				t.Errorf("CanPatch not symmetric for %d, %d", i, j)
			}
			if i != j && CanPatch(n, m) {
				t.Errorf("nodes %d and %d should not patch", i, j)
			}
		}
	}
	if !CanPatch(Text("a"), Text("b")) {
		t.Error("texts always patch")
	}
	if !CanPatch(H("li@k", "x"), H("li@k", "y")) {
		t.Error("same tag and key should patch")
	}
}

func TestAttrsEqual(t *testing.T) {
	fn := func() {}
	tests := []struct {
		name string
		a, b Attrs
		want bool
	}{
		{"empty", Attrs{}, Attrs{}, true},
		{"same", Attrs{"a": 1, "b": "x"}, Attrs{"a": 1, "b": "x"}, true},
		{"transient ignored", Attrs{"a": 1, "$count": 3}, Attrs{"a": 1, "_p": 4}, true},
		{"changed", Attrs{"a": 1}, Attrs{"a": 2}, false},
		{"missing", Attrs{"a": 1}, Attrs{}, false},
		{"extra", Attrs{}, Attrs{"a": nil}, false},
		{"functions", Attrs{"f": fn}, Attrs{"f": fn}, false},
		{"maps", Attrs{"m": map[string]string{"x": "1"}}, Attrs{"m": map[string]string{"x": "1"}}, true},
		{"mixed types", Attrs{"a": 1}, Attrs{"a": "1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AttrsEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("AttrsEqual = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEventKeys(t *testing.T) {
	tests := []struct {
		key   string
		event bool
	}{
		{"onclick", true},
		{"onInput", true},
		{"oncreate", false},
		{"onremove", false},
		{"on", false},
		{"title", false},
	}
	for _, tt := range tests {
		if got := IsEventKey(tt.key); got != tt.event {
			t.Errorf("IsEventKey(%q) = %v, want %v", tt.key, got, tt.event)
		}
	}
	if got := EventType("onInput"); got != "input" {
		t.Errorf("EventType = %q", got)
	}
}

func TestHookAdapters(t *testing.T) {
	calls := 0
	h, ok := AsHook(func() { calls++ })
	if !ok {
		t.Fatal("AsHook rejected func()")
	}
	h(nil, nil)

	rh, ok := AsRemoveHook(func(*HookInfo) { calls++ })
	if !ok {
		t.Fatal("AsRemoveHook rejected a plain hook")
	}
	if ch := rh(nil, &HookInfo{}); ch != nil {
		t.Error("plain hook should be synchronous")
	}

	done := make(chan struct{})
	rh, _ = AsRemoveHook(func(Attrs, *HookInfo) <-chan struct{} { return done })
	if rh(nil, nil) == nil {
		t.Error("async hook lost its channel")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}

	if _, ok := AsHandler("not a func"); ok {
		t.Error("AsHandler accepted a string")
	}
	var nilHandler Handler
	if _, ok := AsHandler(nilHandler); ok {
		t.Error("AsHandler accepted a nil handler")
	}
}
