// Package engine mounts logical trees built with package vdom onto a host
// tree and keeps the two in sync.
//
// A Registry mounts a root render function into a host element and returns
// an Instance. Every change to an Instance happens on its run loop: render
// passes, event dispatch and completion of pending teardowns are serialized,
// and requests arriving while a pass runs are queued and drained by the
// goroutine that owns the loop.
//
//	reg := engine.NewRegistry()
//	in := reg.Mount(body, doc, app, vdom.Attrs{}, engine.WithLogger(logger))
//	defer in.Unmount()
//
// Each pass renders the root, compares the result with the previous tree
// and applies the differences to the host. Children are reconciled by key
// with a bounded look-around for unkeyed items; elements whose onremove
// hook returns a channel linger in the host until the channel fires.
//
// Event handlers are not attached to host elements. The engine registers
// one listener per event type on the root element, maps the event target
// back to the logical tree and runs the handlers it finds, innermost
// first.
package engine
