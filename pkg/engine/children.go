package engine

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// reconcile brings the host children of the element at rp from prev's
// children to next's.
//
// Matching prefixes and suffixes are patched in place. The rest, the
// window, is matched by key, or for unkeyed and soft-keyed children by a
// nearby old node of the same shape, and moved into position. Leftover old
// children are torn down.
func (p *pass) reconcile(next, prev *vdom.Node, rp *renderPath, ctx vdom.Attrs) error {
	nc, oc := next.Children, prev.Children
	pos := rp.len()
	count := min(len(nc), len(oc))

	start := 0
	for ; start < count && vdom.CanPatch(nc[start], oc[start]); start++ {
		rp.at(pos, start)
		c, err := p.patch(nc[start], oc[start], rp, ctx)
		if err != nil {
			return err
		}
		nc[start] = c
	}
	count -= start

	newLast, oldLast := len(nc)-1, len(oc)-1
	end := 0
	for ; end < count && vdom.CanPatch(nc[newLast-end], oc[oldLast-end]); end++ {
		// The host still has the old layout, so address by old index.
		rp.at(pos, oldLast-end)
		c, err := p.patch(nc[newLast-end], oc[oldLast-end], rp, ctx)
		if err != nil {
			return err
		}
		nc[newLast-end] = c
	}
	rp.truncate(pos)

	if start+end == len(nc) && len(nc) == len(oc) {
		return nil
	}
	return p.reconcileWindow(next, prev, rp, ctx, start, end)
}

// window is the unmatched middle of a child list.
type window struct {
	p       *pass
	start   int
	oldEnd  int
	old     []*vdom.Node
	hosts   []host.Node    // host node of old[start+i]
	claimed []bool         // old[start+i] has been reused
	keys    map[string]int // key -> index in old
	wanted  map[string]bool
}

func (p *pass) reconcileWindow(next, prev *vdom.Node, rp *renderPath, ctx vdom.Attrs, start, end int) error {
	nc, oc := next.Children, prev.Children
	pos := rp.len()
	parent, err := p.element(rp)
	if err != nil {
		return err
	}
	oldEnd, newEnd := len(oc)-end, len(nc)-end

	w := &window{
		p:       p,
		start:   start,
		oldEnd:  oldEnd,
		old:     oc,
		hosts:   make([]host.Node, oldEnd-start),
		claimed: make([]bool, oldEnd-start),
		keys:    make(map[string]int),
		wanted:  make(map[string]bool),
	}

	// The anchor is the first old host node not yet accounted for. Every
	// resolved child goes right before it.
	var anchor host.Node
	if len(oc) > start {
		rp.at(pos, start)
		first, err := p.resolve(rp, rp.len())
		rp.truncate(pos)
		if err != nil {
			return err
		}
		anchor = first
		cur := first
		for i := start; i < oldEnd; i++ {
			if cur == nil {
				return errors.Wrapf(ErrMissingElement, "path %s: child %d missing", rp, i)
			}
			w.hosts[i-start] = cur
			if k := oc[i].Key; k != "" {
				if _, dup := w.keys[k]; !dup {
					w.keys[k] = i
				}
			}
			cur = cur.NextSibling()
			p.stats.Reads++
		}
	}
	for _, c := range nc[start:newEnd] {
		if c.Key != "" {
			w.wanted[c.Key] = true
		}
	}

	// Claim old nodes first, so that the old instances are torn down before
	// their replacements are created.
	matches := make([]int, newEnd-start)
	for i := start; i < newEnd; i++ {
		j := w.match(nc[i], i)
		if j >= 0 {
			w.claimed[j-start] = true
		}
		matches[i-start] = j
	}

	// Whatever was not claimed ends up after the new children, in old
	// order. Kept placeholders stand in for the ones still being removed.
	var kept []*vdom.Node
	var removed []host.Node
	for k, h := range w.hosts {
		if w.claimed[k] {
			continue
		}
		o := oc[start+k]
		if o.IsKept() {
			if !o.Discard {
				kept = append(kept, o)
				continue
			}
		} else if ch := p.destroy(o, ctx, h, true); ch != nil {
			placeholder := vdom.NewKept()
			p.in.watch(placeholder, ch)
			kept = append(kept, placeholder)
			continue
		}
		removed = append(removed, h)
	}

	parentStable := prev != emptyElement
	for i := start; i < newEnd; i++ {
		child := nc[i]
		j := matches[i-start]
		if j < 0 {
			h, err := p.create(child, ctx, parentStable)
			if err != nil {
				return err
			}
			parent.InsertBefore(h, anchor)
			p.stats.Writes++
			continue
		}

		h := w.hosts[j-start]
		if h == anchor {
			anchor = h.NextSibling()
			p.stats.Reads++
		} else {
			parent.InsertBefore(h, anchor)
			p.stats.Writes++
		}
		c, err := p.patch(child, oc[j], newPath(h), ctx)
		if err != nil {
			return err
		}
		nc[i] = c
	}

	for _, h := range removed {
		parent.RemoveChild(h)
		p.stats.Writes++
	}

	if len(kept) > 0 {
		children := make([]*vdom.Node, 0, len(nc)+len(kept))
		children = append(children, nc[:newEnd]...)
		children = append(children, kept...)
		children = append(children, nc[newEnd:]...)
		next.Children = children
	}
	return nil
}

// match returns the index in old of the node to reuse for child, or -1.
func (w *window) match(child *vdom.Node, i int) int {
	if child.Key != "" {
		if j, ok := w.keys[child.Key]; ok && !w.claimed[j-w.start] && vdom.CanPatch(child, w.old[j]) {
			return j
		}
		if !w.p.soft(child.Key) {
			return -1
		}
	}

	// Look around the same position, nearest first.
	for d := 0; d <= w.p.in.cfg.Lookahead; d++ {
		for _, j := range [2]int{i - d, i + d} {
			if j < w.start || j >= w.oldEnd || w.claimed[j-w.start] {
				continue
			}
			if w.reusable(child, w.old[j]) {
				return j
			}
			if d == 0 {
				break
			}
		}
	}
	return -1
}

// reusable reports whether old can be patched into child although their
// keys did not match exactly.
func (w *window) reusable(child, old *vdom.Node) bool {
	if old.Kind != child.Kind || old.IsKept() {
		return false
	}
	if old.Key != "" && (!w.p.soft(old.Key) || w.wanted[old.Key]) {
		return false
	}
	switch old.Kind {
	case vdom.KindText:
		return true
	case vdom.KindElement:
		return old.Tag == child.Tag
	case vdom.KindComponent:
		return vdom.SameRenderer(old.Comp, child.Comp)
	}
	return false
}

func (p *pass) soft(key string) bool {
	prefix := p.in.cfg.SoftKeyPrefix
	return prefix != "" && strings.HasPrefix(key, prefix)
}
