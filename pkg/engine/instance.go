package engine

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vango-dev/vdom/pkg/host"
	"github.com/vango-dev/vdom/pkg/style"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Instance is a mounted tree.
//
// Refresh, RefreshNow, Unmount, Refreshify and Go are safe for concurrent
// use. The tree itself belongs to the run loop; read it through Tree only
// from handlers, hooks and render functions, or while no pass is running.
type Instance struct {
	reg    *Registry
	parent host.Element
	doc    host.Document
	root   vdom.RenderFunc
	ctx    vdom.Attrs
	cfg    Config
	log    *slog.Logger
	sheet  *style.Sheet

	// Owned by the run loop.
	tree      *vdom.Node
	rootHost  host.Node
	delegated map[string]bool

	stateMu        sync.Mutex
	running        bool
	queued         bool
	scheduled      bool
	timer          Timer
	timerSeq       uint64
	tasks          []func()
	mounted        bool
	unmountPending bool
	stats          Stats

	pending    errgroup.Group
	pendingCtx context.Context
	cancel     context.CancelFunc

	mountErr error
}

func newInstance(reg *Registry, parent host.Element, doc host.Document, root vdom.RenderFunc, ctx vdom.Attrs, cfg Config) *Instance {
	in := &Instance{
		reg:       reg,
		parent:    parent,
		doc:       doc,
		root:      root,
		ctx:       ctx,
		cfg:       cfg,
		log:       cfg.Logger,
		sheet:     style.NewSheet(cfg.ClassPrefix, cfg.Injector),
		delegated: make(map[string]bool),
		mounted:   true,
	}
	in.pendingCtx, in.cancel = context.WithCancel(cfg.Context)
	return in
}

// Tree returns the current logical tree. The root is a component node for
// the mounted render function.
func (in *Instance) Tree() *vdom.Node {
	return in.tree
}

// Root returns the host node the tree is rendered into, or nil.
func (in *Instance) Root() host.Node {
	return in.rootHost
}

// Context returns the root attributes given to Mount.
func (in *Instance) Context() vdom.Attrs {
	return in.ctx
}

// Err returns the error of the pass run by Mount.
func (in *Instance) Err() error {
	return in.mountErr
}

// Stats returns a snapshot of the instance counters.
func (in *Instance) Stats() Stats {
	in.stateMu.Lock()
	defer in.stateMu.Unlock()
	return in.stats
}

// Mounted reports whether the instance is still mounted.
func (in *Instance) Mounted() bool {
	in.stateMu.Lock()
	defer in.stateMu.Unlock()
	return in.mounted
}

// Unmount tears the tree down and removes it from the host. Called while a
// pass runs, the teardown happens once the run loop drains.
func (in *Instance) Unmount() error {
	return in.reg.Unmount(in)
}

// Refreshify wraps fn so that calling the result runs fn on the run loop
// followed by a render pass.
func (in *Instance) Refreshify(fn func()) func() {
	return func() {
		in.post(func() {
			fn()
			in.Refresh()
		})
	}
}

// Go runs fn in the background and schedules a pass once it returns. The
// context is canceled on unmount. A non-nil error is logged and reported
// by WaitPending.
func (in *Instance) Go(fn func(ctx context.Context) error) {
	in.pending.Go(func() error {
		err := fn(in.pendingCtx)
		if err != nil {
			in.log.Warn("vdom: background task failed", "error", err)
		}
		in.post(in.Refresh)
		return err
	})
}

// WaitPending blocks until the background work started with Go and every
// pending removal has completed (or been canceled by Unmount).
func (in *Instance) WaitPending() error {
	return in.pending.Wait()
}

// watch discards kept once ch fires, unless the instance is gone by then.
func (in *Instance) watch(kept *vdom.Node, ch <-chan struct{}) {
	in.cfg.Metrics.pending(1)
	ctx := in.pendingCtx
	in.pending.Go(func() error {
		defer in.cfg.Metrics.pending(-1)
		select {
		case <-ch:
		case <-ctx.Done():
			return nil
		}
		in.post(func() {
			kept.Discard = true
			in.Refresh()
		})
		return nil
	})
}

// resetRoot forgets the root host node and the delegated event types, for
// when the root is about to be replaced.
func (in *Instance) resetRoot() {
	in.rootHost = nil
	in.delegated = make(map[string]bool)
}

func (in *Instance) unmount() {
	in.stateMu.Lock()
	if !in.mounted {
		in.stateMu.Unlock()
		return
	}
	in.mounted = false
	if in.timer != nil {
		in.timer.Stop()
		in.timer = nil
	}
	in.scheduled = false
	in.cancel()
	if in.running {
		in.unmountPending = true
		in.stateMu.Unlock()
		return
	}
	in.running = true
	in.stateMu.Unlock()

	in.teardown()

	in.stateMu.Lock()
	in.running = false
	in.tasks = nil
	in.queued = false
	in.stateMu.Unlock()
}

// teardown destroys the tree and detaches the root. Removal hooks run but
// their completion is not awaited.
func (in *Instance) teardown() {
	defer func() {
		if r := recover(); r != nil {
			in.log.Error("vdom: unmount panicked", "panic", r)
		}
	}()
	p := &pass{in: in}
	if in.tree != nil {
		p.destroy(in.tree, in.ctx, in.rootHost, false)
	}
	if root, ok := in.rootHost.(host.Element); ok {
		for t := range in.delegated {
			root.RemoveEventListener(t)
		}
	}
	if in.rootHost != nil {
		if parent := in.rootHost.Parent(); parent != nil {
			parent.RemoveChild(in.rootHost)
		}
	}
	in.tree = nil
	in.resetRoot()
	in.log.Debug("vdom: unmounted")
}
