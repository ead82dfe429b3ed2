package engine

import (
	"github.com/vango-dev/vdom/pkg/vdom"
)

// validateElement checks that next is patched once per pass and onto the
// host element prev was rendered to, then records that element on next.
func (p *pass) validateElement(next, prev *vdom.Node, rp *renderPath) error {
	h, err := p.resolve(rp, rp.len())
	if err != nil {
		return err
	}
	if next.Host != nil {
		return shapeErrorf("node <%s> at %s patched twice; nodes must not be reused within a tree", next.Tag, rp)
	}
	if prev != emptyElement && prev.Host != nil && prev.Host != h {
		return shapeErrorf("node <%s> at %s: host element moved under the engine", next.Tag, rp)
	}
	next.Host = h
	return nil
}
