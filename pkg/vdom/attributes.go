package vdom

import (
	"fmt"
	"strings"
)

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets className, joining multiple classes with spaces.
// It replaces classes given in the tag shorthand.
func Class(classes ...string) Attr { return attr(ClassNameAttr, strings.Join(classes, " ")) }

// Key sets the sibling identity used by child reconciliation.
// Keys starting with "~" are soft: a match nearby is preferred but not required.
func Key(key any) Attr { return attr(KeyAttr, fmt.Sprintf("%v", key)) }

// Style sets inline style properties. Properties are patched one by one.
func Style(props map[string]string) Attr { return attr(StyleAttrKey, props) }

// Binding ties the element's value to a path in the enclosing component's
// attributes. path is a dotted string ("form.name") or a []string.
func Binding(path any) Attr { return attr(BindingAttr, path) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Accessibility attributes

func Role(role string) Attr           { return attr("role", role) }
func AriaLabel(label string) Attr     { return attr("aria-label", label) }
func AriaHidden(hidden bool) Attr     { return attr("aria-hidden", hidden) }
func AriaExpanded(expanded bool) Attr { return attr("aria-expanded", expanded) }
func AriaControls(id string) Attr     { return attr("aria-controls", id) }
func TabIndex(index int) Attr         { return attr("tabindex", index) }
func TitleAttr(title string) Attr     { return attr("title", title) }
func Hidden() Attr                    { return attr("hidden", true) }

// Link attributes

func Href(url string) Attr      { return attr("href", url) }
func Target(target string) Attr { return attr("target", target) }
func Rel(rel string) Attr       { return attr("rel", rel) }
func Src(url string) Attr       { return attr("src", url) }
func Alt(text string) Attr      { return attr("alt", text) }

// Form attributes

// Value sets the live value property of an input.
func Value(value any) Attr { return attr("value", value) }

// Checked sets the live checked property of a checkbox.
func Checked(checked bool) Attr { return attr("checked", checked) }

// SelectedIndex sets the live selectedIndex property of a select.
func SelectedIndex(i int) Attr { return attr("selectedIndex", i) }

func Name(name string) Attr        { return attr("name", name) }
func Type(t string) Attr           { return attr("type", t) }
func Placeholder(text string) Attr { return attr("placeholder", text) }
func For(id string) Attr           { return attr("for", id) }
func Disabled() Attr               { return attr("disabled", true) }
func Readonly() Attr               { return attr("readonly", true) }
func Required() Attr               { return attr("required", true) }
func Autofocus() Attr              { return attr("autofocus", true) }
func Min(value string) Attr        { return attr("min", value) }
func Max(value string) Attr        { return attr("max", value) }
func Step(value string) Attr       { return attr("step", value) }
func Rows(n int) Attr              { return attr("rows", n) }
func Cols(n int) Attr              { return attr("cols", n) }
func Colspan(n int) Attr           { return attr("colspan", n) }

// Conditional attributes

// ClassIf sets className conditionally.
func ClassIf(condition bool, class string) Attr {
	if condition {
		return Class(class)
	}
	return Attr{} // Empty attr, will be ignored
}

// AttrIf adds any attribute conditionally.
func AttrIf(condition bool, a Attr) Attr {
	if condition {
		return a
	}
	return Attr{}
}

// Classes merges multiple class values into className.
// Accepts string, []string, and map[string]bool.
func Classes(classes ...any) Attr {
	var result []string
	for _, c := range classes {
		switch v := c.(type) {
		case string:
			if v != "" {
				result = append(result, v)
			}
		case []string:
			for _, s := range v {
				if s != "" {
					result = append(result, s)
				}
			}
		case map[string]bool:
			for class, include := range v {
				if include && class != "" {
					result = append(result, class)
				}
			}
		}
	}
	return Class(result...)
}
