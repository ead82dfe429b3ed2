package engine

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/vango-dev/vdom/pkg/host"
)

// step is one hop of a render path: a child index, or a host node once
// resolved.
type step struct {
	idx  int
	node host.Node
}

// renderPath locates a host node as a host node followed by child indices.
// Indices are resolved lazily and the result is cached in place, so the
// parent part of a path is walked at most once per pass.
type renderPath struct {
	steps []step
}

func newPath(h host.Node) *renderPath {
	return &renderPath{steps: []step{{node: h}}}
}

func (rp *renderPath) len() int { return len(rp.steps) }

// at sets the path to its first pos steps followed by child index i.
func (rp *renderPath) at(pos, i int) {
	rp.steps = append(rp.steps[:pos], step{idx: i})
}

func (rp *renderPath) truncate(pos int) {
	rp.steps = rp.steps[:pos]
}

// replaceLast points the last step at h.
func (rp *renderPath) replaceLast(h host.Node) {
	rp.steps[len(rp.steps)-1] = step{node: h}
}

func (rp *renderPath) String() string {
	parts := make([]string, len(rp.steps))
	for i, s := range rp.steps {
		if s.node != nil {
			parts[i] = fmt.Sprintf("%T", s.node)
		} else {
			parts[i] = fmt.Sprint(s.idx)
		}
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// resolve returns the host node at step limit-1.
func (p *pass) resolve(rp *renderPath, limit int) (host.Node, error) {
	last := limit - 1
	for i := last; i >= 0; i-- {
		n := rp.steps[i].node
		if n == nil {
			continue
		}
		for j := i + 1; j <= last; j++ {
			el, ok := n.(host.Element)
			if !ok {
				return nil, errors.Wrapf(ErrMissingElement, "path %s: %T has no children", rp, n)
			}
			n = el.ChildAt(rp.steps[j].idx)
			p.stats.Reads++
			if n == nil {
				return nil, errors.Wrapf(ErrMissingElement, "path %s: no child at step %d", rp, j)
			}
			rp.steps[j].node = n
		}
		return n, nil
	}
	return nil, errors.AssertionFailedf("render path %s has no host node", rp)
}

// element resolves the whole path to an element.
func (p *pass) element(rp *renderPath) (host.Element, error) {
	n, err := p.resolve(rp, rp.len())
	if err != nil {
		return nil, err
	}
	el, ok := n.(host.Element)
	if !ok {
		return nil, shapeErrorf("element expected at %s, found %T", rp, n)
	}
	return el, nil
}

// lazyElement resolves its path on first use.
type lazyElement struct {
	p  *pass
	rp *renderPath
	el host.Element
}

func (l *lazyElement) get() (host.Element, error) {
	if l.el != nil {
		return l.el, nil
	}
	el, err := l.p.element(l.rp)
	if err != nil {
		return nil, err
	}
	l.el = el
	return el, nil
}
