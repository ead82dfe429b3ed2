package engine

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vango-dev/vdom/pkg/vdom"
)

// pass is the state of one render pass.
type pass struct {
	in    *Instance
	stats PassStats
	after []func()
}

// pass renders the root and brings the host in line with it. Panics raised
// by application code are recovered here; edits applied before the failure
// stay applied.
func (in *Instance) pass() (err error) {
	_, span := in.cfg.Tracer.Start(in.cfg.Context, "vdom.pass")
	p := &pass{in: in}
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = errors.Wrap(e, "engine: render pass panicked")
			} else {
				err = errors.Newf("engine: render pass panicked: %v", r)
			}
		}
		p.stats.Duration = time.Since(start)
		span.SetAttributes(
			attribute.Int("vdom.writes", p.stats.Writes),
			attribute.Int("vdom.reads", p.stats.Reads),
			attribute.Int("vdom.created", p.stats.Created),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			in.log.Error("vdom: render pass failed", "error", err)
		} else {
			in.log.Debug("vdom: refreshed",
				"writes", p.stats.Writes,
				"reads", p.stats.Reads,
				"created", p.stats.Created,
				"duration", p.stats.Duration)
		}
		span.End()
		in.cfg.Metrics.observePass(p.stats, err)
		in.recordPass(p.stats, err)
	}()

	if err := p.render(); err != nil {
		return err
	}
	p.flush()
	return nil
}

func (p *pass) render() error {
	in := p.in
	next := &vdom.Node{Kind: vdom.KindComponent, Comp: in.root, Attrs: in.ctx}

	if in.tree != nil && in.rootHost != nil && vdom.CanPatch(next, in.tree) {
		root, err := p.patch(next, in.tree, newPath(in.rootHost), in.ctx)
		if err != nil {
			return err
		}
		in.tree = root
		return nil
	}

	in.log.Debug("vdom: creating root")
	old := in.rootHost
	in.resetRoot()
	h, err := p.create(next, in.ctx, true)
	if err != nil {
		return err
	}
	in.rootHost = h
	if old != nil {
		in.parent.ReplaceChild(h, old)
	} else {
		in.parent.InsertBefore(h, nil)
	}
	p.stats.Writes++
	in.tree = next
	return nil
}

// afterCommit queues fn to run once the host is up to date.
func (p *pass) afterCommit(fn func()) {
	p.after = append(p.after, fn)
}

func (p *pass) flush() {
	for i := 0; i < len(p.after); i++ {
		p.after[i]()
	}
	p.after = nil
}

func (in *Instance) recordPass(s PassStats, err error) {
	in.stateMu.Lock()
	defer in.stateMu.Unlock()
	in.stats.Passes++
	in.stats.Last = s
	if err != nil {
		in.stats.Failures++
	}
}
