package vtest_test

import (
	"testing"

	"github.com/vango-dev/vdom/pkg/vdom"
	"github.com/vango-dev/vdom/pkg/vtest"
)

func counter(ctx vdom.Attrs, _ []*vdom.Node) any {
	return vdom.Div(
		vdom.Button(vdom.ID("inc"), vdom.OnClick(func() {
			ctx["count"] = ctx["count"].(int) + 1
		}), "+"),
		ctx["count"],
	)
}

func TestMount(t *testing.T) {
	h := vtest.NewMount().WithContext(vdom.Attrs{"count": 0}).Mount(t, counter)
	h.ExpectHTML(t, `div{button{@id="inc" "+"} "0"}`)

	if h.Root() == nil {
		t.Fatal("expected an element root")
	}
	if h.Registry.Len() != 1 {
		t.Errorf("expected 1 mounted instance, got %d", h.Registry.Len())
	}
}

func TestClickRefreshes(t *testing.T) {
	h := vtest.NewMount().WithContext(vdom.Attrs{"count": 0}).Mount(t, counter)

	ev := h.Click(t, "inc")
	if !ev.DefaultPrevented() {
		t.Error("handled event should have its default prevented")
	}
	h.ExpectHTML(t, `div{button{@id="inc" "+"} "1"}`)
	h.ExpectContains(t, `"1"`)
	h.ExpectNotContains(t, `"0"`)
}

func TestClock(t *testing.T) {
	c := &vtest.Clock{}
	calls := 0
	c.AfterFunc(0, func() { calls++ })
	stopped := c.AfterFunc(0, func() { calls += 10 })
	if !stopped.Stop() {
		t.Error("first Stop should report a pending timer")
	}
	if c.Pending() != 1 {
		t.Errorf("expected 1 pending, got %d", c.Pending())
	}
	if ran := c.Flush(); ran != 1 {
		t.Errorf("expected 1 function to run, got %d", ran)
	}
	if calls != 1 {
		t.Errorf("expected calls == 1, got %d", calls)
	}
	if stopped.Stop() {
		t.Error("second Stop should report nothing pending")
	}
}

func TestClockRunsNestedSchedules(t *testing.T) {
	c := &vtest.Clock{}
	var order []int
	c.AfterFunc(0, func() {
		order = append(order, 1)
		c.AfterFunc(0, func() { order = append(order, 2) })
	})
	if ran := c.Flush(); ran != 2 {
		t.Errorf("expected 2 functions to run, got %d", ran)
	}
	if len(order) != 2 || order[1] != 2 {
		t.Errorf("unexpected order %v", order)
	}
}
