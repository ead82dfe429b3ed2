package engine

import (
	"strings"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// delegate makes sure events of the given type reaching the root are
// dispatched to the tree.
func (p *pass) delegate(eventType string) {
	in := p.in
	if in.delegated[eventType] {
		return
	}
	root, ok := in.rootHost.(host.Element)
	if !ok {
		return
	}
	in.delegated[eventType] = true
	root.AddEventListener(eventType, in.onHostEvent)
	p.stats.Writes++
	in.log.Debug("vdom: delegating event type", "type", eventType)
}

func (in *Instance) onHostEvent(ev host.Event) {
	in.post(func() { in.dispatch(ev) })
}

// frame is one element on the way from the root to an event target.
type frame struct {
	node *vdom.Node
	ctx  vdom.Attrs
}

const (
	eventHandled  = "handled"
	eventDeclined = "declined"
	eventIgnored  = "ignored"
)

// dispatch runs the handlers on the way from the event target up to the
// root, innermost first, until one of them handles the event.
func (in *Instance) dispatch(ev host.Event) {
	_, span := in.cfg.Tracer.Start(in.cfg.Context, "vdom.dispatch")
	defer span.End()
	span.SetAttributes(attribute.String("vdom.event", ev.Type()))

	chain, ok := in.hostChain(ev.Target())
	if !ok {
		return
	}
	frames := in.resolveFrames(chain)

	status := eventIgnored
	ran := false
	for d := len(frames) - 1; d >= 0; d-- {
		f := frames[d]
		handler, ok := handlerFor(f.node, ev.Type())
		if !ok {
			continue
		}
		el, _ := chain[d].(host.Element)
		err := handler(f.ctx, &vdom.Event{Event: ev, Element: el, Node: f.node, Instance: in})
		ran = true
		if errors.Is(err, vdom.ErrNotHandled) {
			status = eventDeclined
			continue
		}
		status = eventHandled
		ev.PreventDefault()
		ev.StopPropagation()
		if err != nil {
			span.RecordError(err)
			in.log.Error("vdom: event handler failed", "type", ev.Type(), "error", err)
			in.cfg.Metrics.handlerError()
		}
		break
	}

	if in.cfg.Validate && len(frames) == len(chain) && len(frames) > 0 {
		last := frames[len(frames)-1].node
		if last.Host != nil && last.Host != chain[len(chain)-1] {
			in.log.Error("vdom: event target does not match the tree", "type", ev.Type())
		}
	}

	in.cfg.Metrics.observeEvent(ev.Type(), status)
	in.stateMu.Lock()
	in.stats.Events++
	in.stateMu.Unlock()

	if ran {
		in.Refresh()
	}
}

// hostChain returns the host nodes from the root down to target. It fails
// when target is not inside the rendered tree.
func (in *Instance) hostChain(target host.Node) ([]host.Node, bool) {
	if in.rootHost == nil || target == nil {
		return nil, false
	}
	var chain []host.Node
	for n := target; ; {
		chain = append(chain, n)
		if n == in.rootHost {
			break
		}
		parent := n.Parent()
		if parent == nil {
			return nil, false
		}
		n = parent
	}
	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain, true
}

// resolveFrames maps the host chain onto the logical tree. The result is
// shorter than chain when the walk reaches a node being removed.
func (in *Instance) resolveFrames(chain []host.Node) []frame {
	frames := make([]frame, 0, len(chain))
	n, ctx := concreteOf(in.tree, in.ctx)
	for d := range chain {
		if n == nil || n.IsKept() {
			break
		}
		frames = append(frames, frame{node: n, ctx: ctx})
		if d+1 == len(chain) {
			break
		}
		idx := indexOf(chain[d+1])
		if idx < 0 || idx >= len(n.Children) {
			break
		}
		n, ctx = concreteOf(n.Children[idx], ctx)
	}
	return frames
}

// concreteOf follows component nodes down to the node they render.
func concreteOf(n *vdom.Node, ctx vdom.Attrs) (*vdom.Node, vdom.Attrs) {
	for n != nil && n.Kind == vdom.KindComponent {
		ctx = n.Attrs
		n = n.Concrete
	}
	return n, ctx
}

func indexOf(n host.Node) int {
	i := 0
	for s := n.PreviousSibling(); s != nil; s = s.PreviousSibling() {
		i++
	}
	return i
}

func handlerFor(n *vdom.Node, eventType string) (vdom.Handler, bool) {
	if n.Kind != vdom.KindElement {
		return nil, false
	}
	key := "on" + eventType
	if v, ok := n.Attrs[key]; ok {
		return vdom.AsHandler(v)
	}
	for k, v := range n.Attrs {
		if vdom.IsEventKey(k) && strings.EqualFold(k, key) {
			return vdom.AsHandler(v)
		}
	}
	return nil, false
}
