// Package memhost is an in-memory host tree.
//
// It implements the host interfaces with plain Go values, counts the nodes
// it creates and the writes applied to it, and serializes itself into a
// compact form used throughout the tests:
//
//	ul{li{@class="a" "A"} li{@class="b" "B"}}
//
// Attributes print as @name, live properties as name and style properties
// as $name. Entries are sorted, children follow in order.
package memhost

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/vango-dev/vdom/pkg/host"
)

// Stats counts what happened to a Document's tree.
type Stats struct {
	Created int // nodes created
	Writes  int // mutations applied
}

// Document creates in-memory nodes and accumulates Stats.
type Document struct {
	stats Stats
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	return &Document{}
}

// Stats returns the counters accumulated since the last ResetStats.
func (d *Document) Stats() Stats {
	return d.stats
}

// ResetStats zeroes the counters.
func (d *Document) ResetStats() {
	d.stats = Stats{}
}

// CreateElement implements host.Document.
func (d *Document) CreateElement(tag string) host.Element {
	return d.NewElement(tag)
}

// CreateTextNode implements host.Document.
func (d *Document) CreateTextNode(text string) host.Text {
	d.stats.Created++
	t := &Text{base: base{doc: d}, text: text}
	t.self = t
	return t
}

// NewElement creates an element and returns its concrete type.
func (d *Document) NewElement(tag string) *Element {
	d.stats.Created++
	e := &Element{
		base:      base{doc: d},
		tag:       tag,
		attrs:     make(map[string]string),
		props:     make(map[string]any),
		style:     make(map[string]string),
		listeners: make(map[string][]host.Listener),
	}
	e.self = e
	return e
}

func (d *Document) write() {
	if d != nil {
		d.stats.Writes++
	}
}

// memNode is implemented by *Element and *Text.
type memNode interface {
	host.Node
	setParent(p *Element)
	String() string
}

type base struct {
	doc    *Document
	parent *Element
	self   memNode
}

func (b *base) setParent(p *Element) { b.parent = p }

// Parent implements host.Node.
func (b *base) Parent() host.Element {
	if b.parent == nil {
		return nil
	}
	return b.parent
}

// NextSibling implements host.Node.
func (b *base) NextSibling() host.Node {
	return b.sibling(+1)
}

// PreviousSibling implements host.Node.
func (b *base) PreviousSibling() host.Node {
	return b.sibling(-1)
}

func (b *base) sibling(delta int) host.Node {
	if b.parent == nil {
		return nil
	}
	idx := b.parent.indexOf(b.self)
	if idx < 0 {
		panic("memhost: node not found among its parent's children")
	}
	idx += delta
	if idx < 0 || idx >= len(b.parent.children) {
		return nil
	}
	return b.parent.children[idx]
}

// Text is an in-memory text node.
type Text struct {
	base
	text string
}

// SetText implements host.Text.
func (t *Text) SetText(text string) {
	t.doc.write()
	t.text = text
}

// Data returns the text content.
func (t *Text) Data() string {
	return t.text
}

// String returns the quoted text content.
func (t *Text) String() string {
	return strconv.Quote(t.text)
}

// Element is an in-memory element.
type Element struct {
	base
	tag       string
	children  []memNode
	attrs     map[string]string
	props     map[string]any
	style     map[string]string
	listeners map[string][]host.Listener
}

// Tag returns the element name.
func (e *Element) Tag() string {
	return e.tag
}

// Children returns the child nodes.
func (e *Element) Children() []host.Node {
	out := make([]host.Node, len(e.children))
	for i, c := range e.children {
		out[i] = c
	}
	return out
}

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// Style returns a style property.
func (e *Element) Style(name string) string {
	return e.style[name]
}

func (e *Element) indexOf(n host.Node) int {
	for i, c := range e.children {
		if host.Node(c) == n {
			return i
		}
	}
	return -1
}

// ChildAt implements host.Element.
func (e *Element) ChildAt(i int) host.Node {
	if i < 0 || i >= len(e.children) {
		return nil
	}
	return e.children[i]
}

// FirstChild implements host.Element.
func (e *Element) FirstChild() host.Node {
	return e.ChildAt(0)
}

// InsertBefore implements host.Element.
func (e *Element) InsertBefore(child, ref host.Node) {
	c := asMem(child)
	if p := parentOf(c); p != nil {
		p.detach(c)
	}
	c.setParent(e)
	e.doc.write()
	if ref == nil {
		e.children = append(e.children, c)
		return
	}
	idx := e.indexOf(ref)
	if idx < 0 {
		panic("memhost: InsertBefore with a reference node that is not a child")
	}
	e.children = append(e.children, nil)
	copy(e.children[idx+1:], e.children[idx:])
	e.children[idx] = c
}

// AppendChild appends child.
func (e *Element) AppendChild(child host.Node) {
	e.InsertBefore(child, nil)
}

// RemoveChild implements host.Element.
func (e *Element) RemoveChild(child host.Node) {
	c := asMem(child)
	if e.indexOf(c) < 0 {
		panic("memhost: RemoveChild of a node that is not a child")
	}
	e.doc.write()
	e.detach(c)
}

// ReplaceChild implements host.Element.
func (e *Element) ReplaceChild(newChild, oldChild host.Node) {
	n, o := asMem(newChild), asMem(oldChild)
	idx := e.indexOf(o)
	if idx < 0 {
		panic("memhost: ReplaceChild of a node that is not a child")
	}
	if p := parentOf(n); p != nil {
		p.detach(n)
		idx = e.indexOf(o)
	}
	e.doc.write()
	n.setParent(e)
	o.setParent(nil)
	e.children[idx] = n
}

func (e *Element) detach(c memNode) {
	idx := e.indexOf(c)
	if idx < 0 {
		return
	}
	e.children = append(e.children[:idx], e.children[idx+1:]...)
	c.setParent(nil)
}

// SetAttribute implements host.Element.
func (e *Element) SetAttribute(name, value string) {
	e.doc.write()
	e.attrs[name] = value
}

// RemoveAttribute implements host.Element.
func (e *Element) RemoveAttribute(name string) {
	e.doc.write()
	delete(e.attrs, name)
}

// SetProperty implements host.Element. className is reflected into the
// class attribute the way browsers do.
func (e *Element) SetProperty(name string, value any) {
	e.doc.write()
	if name == "className" {
		e.attrs["class"] = fmt.Sprint(value)
		return
	}
	e.props[name] = value
}

// ClearProperty implements host.Element.
func (e *Element) ClearProperty(name string) {
	e.doc.write()
	switch name {
	case "className":
		delete(e.attrs, "class")
	case "style":
		e.style = make(map[string]string)
	default:
		delete(e.props, name)
	}
}

// Property implements host.Element.
func (e *Element) Property(name string) any {
	if name == "className" {
		return e.attrs["class"]
	}
	return e.props[name]
}

// SetStyle implements host.Element.
func (e *Element) SetStyle(name, value string) {
	e.doc.write()
	if value == "" {
		delete(e.style, name)
		return
	}
	e.style[name] = value
}

// AddEventListener implements host.Element.
func (e *Element) AddEventListener(eventType string, fn host.Listener) {
	e.doc.write()
	e.listeners[eventType] = append(e.listeners[eventType], fn)
}

// RemoveEventListener implements host.Element.
func (e *Element) RemoveEventListener(eventType string) {
	e.doc.write()
	delete(e.listeners, eventType)
}

// Listeners reports how many listeners are registered for eventType.
func (e *Element) Listeners(eventType string) int {
	return len(e.listeners[eventType])
}

// Input sets the live value property the way a user typing would, without
// counting a write.
func (e *Element) Input(value any) {
	if b, ok := value.(bool); ok {
		e.props["checked"] = b
		return
	}
	e.props["value"] = value
}

// Dispatch fires an event of the given type at e and bubbles it to the
// ancestors until a listener stops propagation.
func (e *Element) Dispatch(eventType string) *Event {
	ev := &Event{typ: eventType, target: e}
	for cur := e; cur != nil && !ev.stopped; cur = cur.parent {
		for _, fn := range cur.listeners[eventType] {
			fn(ev)
		}
	}
	return ev
}

// GetElementByID finds the first element in e's subtree with the given id.
func (e *Element) GetElementByID(id string) *Element {
	if e.attrs["id"] == id {
		return e
	}
	for _, c := range e.children {
		if ce, ok := c.(*Element); ok {
			if found := ce.GetElementByID(id); found != nil {
				return found
			}
		}
	}
	return nil
}

// String serializes e and its subtree.
func (e *Element) String() string {
	entries := make([]string, 0, len(e.attrs)+len(e.props)+len(e.style))
	for k, v := range e.attrs {
		entries = append(entries, "@"+k+"="+strconv.Quote(v))
	}
	for k, v := range e.props {
		entries = append(entries, k+"="+formatValue(v))
	}
	for k, v := range e.style {
		entries = append(entries, "$"+k+"="+strconv.Quote(v))
	}
	sort.Strings(entries)
	for _, c := range e.children {
		entries = append(entries, c.String())
	}
	return e.tag + "{" + strings.Join(entries, " ") + "}"
}

// ChildrenString serializes the children of e separated by spaces.
func (e *Element) ChildrenString() string {
	parts := make([]string, len(e.children))
	for i, c := range e.children {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return strconv.Quote(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		return fmt.Sprint(val)
	}
}

func asMem(n host.Node) memNode {
	m, ok := n.(memNode)
	if !ok {
		panic(fmt.Sprintf("memhost: foreign host node %T", n))
	}
	return m
}

func parentOf(n memNode) *Element {
	switch v := n.(type) {
	case *Element:
		return v.parent
	case *Text:
		return v.parent
	}
	return nil
}

// Event is an in-memory host event.
type Event struct {
	typ       string
	target    host.Node
	stopped   bool
	prevented bool
}

// Type implements host.Event.
func (ev *Event) Type() string { return ev.typ }

// Target implements host.Event.
func (ev *Event) Target() host.Node { return ev.target }

// PreventDefault implements host.Event.
func (ev *Event) PreventDefault() { ev.prevented = true }

// StopPropagation implements host.Event.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Stopped reports whether a listener stopped propagation.
func (ev *Event) Stopped() bool { return ev.stopped }

// DefaultPrevented reports whether a listener prevented the default action.
func (ev *Event) DefaultPrevented() bool { return ev.prevented }
