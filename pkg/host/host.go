// Package host defines the render target the engine writes into.
//
// The engine never creates or inspects host nodes directly; it goes through
// these interfaces. A browser binding, a terminal renderer or the in-memory
// tree in package memhost can all serve as a host.
//
// Navigation methods (Parent, NextSibling, PreviousSibling, ChildAt) count as
// reads; everything that changes the tree or a node counts as a write.
package host

// Node is any node of the host tree.
type Node interface {
	// Parent returns the element containing this node, or nil when detached.
	Parent() Element

	// NextSibling returns the node after this one, or nil.
	NextSibling() Node

	// PreviousSibling returns the node before this one, or nil.
	PreviousSibling() Node
}

// Text is a host text node.
type Text interface {
	Node

	// SetText replaces the text content.
	SetText(text string)
}

// Element is a host element node.
type Element interface {
	Node

	// ChildAt returns the i-th child, or nil when out of range.
	ChildAt(i int) Node

	// FirstChild returns the first child, or nil.
	FirstChild() Node

	// InsertBefore moves or inserts child right before ref.
	// A nil ref appends.
	InsertBefore(child, ref Node)

	// RemoveChild detaches child.
	RemoveChild(child Node)

	// ReplaceChild puts newChild where oldChild was and detaches oldChild.
	ReplaceChild(newChild, oldChild Node)

	// SetAttribute sets a string attribute.
	SetAttribute(name, value string)

	// RemoveAttribute removes an attribute.
	RemoveAttribute(name string)

	// SetProperty sets a live property such as value, checked or className.
	SetProperty(name string, value any)

	// ClearProperty resets a live property to its empty state.
	ClearProperty(name string)

	// Property reads a live property.
	Property(name string) any

	// SetStyle sets one style property. An empty value removes it.
	SetStyle(name, value string)

	// AddEventListener registers fn for events of the given type
	// (without the "on" prefix) reaching this element.
	AddEventListener(eventType string, fn Listener)

	// RemoveEventListener drops all listeners for the given type.
	RemoveEventListener(eventType string)
}

// Document creates host nodes.
type Document interface {
	CreateElement(tag string) Element
	CreateTextNode(text string) Text
}

// Listener receives host events.
type Listener func(ev Event)

// Event is a host event as delivered to a Listener.
type Event interface {
	// Type is the event type without the "on" prefix, e.g. "click".
	Type() string

	// Target is the node the event was fired on.
	Target() Node

	PreventDefault()
	StopPropagation()
}
