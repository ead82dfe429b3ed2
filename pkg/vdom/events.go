package vdom

import "github.com/vango-dev/vdom/pkg/host"

// Refresher is the part of a mounted instance handed to handlers and hooks.
type Refresher interface {
	// Refresh schedules a render pass.
	Refresh()
	// RefreshNow runs a render pass right away.
	RefreshNow() error
}

// Event is what a Handler receives.
type Event struct {
	host.Event

	// Element is the host element the handler is attached to.
	Element host.Element
	// Node is the logical node carrying the handler.
	Node *Node
	// Instance is the mounted instance dispatching the event.
	Instance Refresher
}

// Handler handles a delegated event. ctx is the attribute map of the
// enclosing component, or the mount context at the top level.
//
// Returning ErrNotHandled lets the event reach outer handlers; any other
// result, nil included, marks the event as handled.
type Handler func(ctx Attrs, ev *Event) error

// HookInfo is passed to lifecycle hooks.
type HookInfo struct {
	Element host.Element
	Node    *Node
	// ParentStable is false when the element was created or removed as part
	// of a larger subtree that is itself being created or removed.
	ParentStable bool
	Instance     Refresher
}

// Hook runs after an element is created (oncreate) or patched (onrefresh).
type Hook func(ctx Attrs, info *HookInfo)

// RemoveHook runs when an element is torn down. A non-nil channel delays
// the removal of the host element until it is closed or receives.
type RemoveHook func(ctx Attrs, info *HookInfo) <-chan struct{}

// AsHandler converts the handler shapes accepted by the On* helpers.
func AsHandler(v any) (Handler, bool) {
	switch fn := v.(type) {
	case Handler:
		return fn, fn != nil
	case func(Attrs, *Event) error:
		return fn, fn != nil
	case func(*Event) error:
		return func(_ Attrs, ev *Event) error { return fn(ev) }, fn != nil
	case func(*Event):
		return func(_ Attrs, ev *Event) error { fn(ev); return nil }, fn != nil
	case func() error:
		return func(Attrs, *Event) error { return fn() }, fn != nil
	case func():
		return func(Attrs, *Event) error { fn(); return nil }, fn != nil
	}
	return nil, false
}

// AsHook converts the oncreate/onrefresh hook shapes.
func AsHook(v any) (Hook, bool) {
	switch fn := v.(type) {
	case Hook:
		return fn, fn != nil
	case func(Attrs, *HookInfo):
		return fn, fn != nil
	case func(*HookInfo):
		return func(_ Attrs, info *HookInfo) { fn(info) }, fn != nil
	case func():
		return func(Attrs, *HookInfo) { fn() }, fn != nil
	}
	return nil, false
}

// AsRemoveHook converts the onremove hook shapes. Plain hooks are
// synchronous.
func AsRemoveHook(v any) (RemoveHook, bool) {
	switch fn := v.(type) {
	case RemoveHook:
		return fn, fn != nil
	case func(Attrs, *HookInfo) <-chan struct{}:
		return fn, fn != nil
	case func(*HookInfo) <-chan struct{}:
		return func(_ Attrs, info *HookInfo) <-chan struct{} { return fn(info) }, fn != nil
	}
	if h, ok := AsHook(v); ok {
		return func(ctx Attrs, info *HookInfo) <-chan struct{} {
			h(ctx, info)
			return nil
		}, true
	}
	return nil, false
}

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// On handles events of an arbitrary type.
func On(eventType string, handler any) EventHandler { return event(eventType, handler) }

// Lifecycle hooks

// OnCreate runs once the element has been attached to the host tree.
func OnCreate(hook any) Attr { return attr(OnCreateAttr, hook) }

// OnRefresh runs after every pass that patched the element.
func OnRefresh(hook any) Attr { return attr(OnRefreshAttr, hook) }

// OnRemove runs when the element is torn down. See RemoveHook.
func OnRemove(hook any) Attr { return attr(OnRemoveAttr, hook) }

// Mouse events

func OnClick(handler any) EventHandler       { return event("click", handler) }
func OnDblClick(handler any) EventHandler    { return event("dblclick", handler) }
func OnMouseDown(handler any) EventHandler   { return event("mousedown", handler) }
func OnMouseUp(handler any) EventHandler     { return event("mouseup", handler) }
func OnMouseMove(handler any) EventHandler   { return event("mousemove", handler) }
func OnMouseOver(handler any) EventHandler   { return event("mouseover", handler) }
func OnMouseOut(handler any) EventHandler    { return event("mouseout", handler) }
func OnContextMenu(handler any) EventHandler { return event("contextmenu", handler) }
func OnWheel(handler any) EventHandler       { return event("wheel", handler) }

// Keyboard events

func OnKeyDown(handler any) EventHandler { return event("keydown", handler) }
func OnKeyUp(handler any) EventHandler   { return event("keyup", handler) }

// Form events

// OnInput handles input events. On an element with a binding, the bound
// value is written before the handler runs.
func OnInput(handler any) EventHandler    { return event("input", handler) }
func OnChange(handler any) EventHandler   { return event("change", handler) }
func OnSubmit(handler any) EventHandler   { return event("submit", handler) }
func OnFocusIn(handler any) EventHandler  { return event("focusin", handler) }
func OnFocusOut(handler any) EventHandler { return event("focusout", handler) }
func OnReset(handler any) EventHandler    { return event("reset", handler) }

// Pointer and drag events

func OnPointerDown(handler any) EventHandler { return event("pointerdown", handler) }
func OnPointerUp(handler any) EventHandler   { return event("pointerup", handler) }
func OnPointerMove(handler any) EventHandler { return event("pointermove", handler) }
func OnDragStart(handler any) EventHandler   { return event("dragstart", handler) }
func OnDragOver(handler any) EventHandler    { return event("dragover", handler) }
func OnDrop(handler any) EventHandler        { return event("drop", handler) }

// Touch events

func OnTouchStart(handler any) EventHandler { return event("touchstart", handler) }
func OnTouchEnd(handler any) EventHandler   { return event("touchend", handler) }
