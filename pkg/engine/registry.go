package engine

import (
	"sync"

	"github.com/cockroachdb/errors"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Registry tracks mounted instances.
type Registry struct {
	mu        sync.Mutex
	instances map[*Instance]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{instances: make(map[*Instance]struct{})}
}

// Mount renders root into parent and returns the mounted instance.
//
// ctx is the attribute map of the root: handlers and bindings outside any
// component see it as their context. The first pass runs before Mount
// returns; its error, if any, is available through Instance.Err.
func (r *Registry) Mount(parent host.Element, doc host.Document, root vdom.RenderFunc, ctx vdom.Attrs, opts ...Option) *Instance {
	if ctx == nil {
		ctx = make(vdom.Attrs)
	}
	in := newInstance(r, parent, doc, root, ctx, newConfig(opts))

	r.mu.Lock()
	r.instances[in] = struct{}{}
	r.mu.Unlock()

	in.mountErr = in.RefreshNow()
	return in
}

// Unmount unmounts in. It fails with ErrNotMounted when in is not
// registered here.
func (r *Registry) Unmount(in *Instance) error {
	if !r.remove(in) {
		return errors.Wrapf(ErrNotMounted, "unmount %p", in)
	}
	in.unmount()
	return nil
}

// Len returns the number of mounted instances.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.instances)
}

// Instances returns the mounted instances in no particular order.
func (r *Registry) Instances() []*Instance {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Instance, 0, len(r.instances))
	for in := range r.instances {
		out = append(out, in)
	}
	return out
}

func (r *Registry) remove(in *Instance) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.instances[in]; !ok {
		return false
	}
	delete(r.instances, in)
	return true
}
