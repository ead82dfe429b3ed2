package vdom

// el builds an element through H. Factories panic on malformed arguments
// just like H.
func el(tag string, args []any) *Node {
	return H(tag, args...)
}

// Sectioning and text content

func Div(args ...any) *Node     { return el("div", args) }
func P(args ...any) *Node       { return el("p", args) }
func Span(args ...any) *Node    { return el("span", args) }
func Pre(args ...any) *Node     { return el("pre", args) }
func Header(args ...any) *Node  { return el("header", args) }
func Footer(args ...any) *Node  { return el("footer", args) }
func Main(args ...any) *Node    { return el("main", args) }
func Nav(args ...any) *Node     { return el("nav", args) }
func Section(args ...any) *Node { return el("section", args) }
func Article(args ...any) *Node { return el("article", args) }
func Aside(args ...any) *Node   { return el("aside", args) }
func H1(args ...any) *Node      { return el("h1", args) }
func H2(args ...any) *Node      { return el("h2", args) }
func H3(args ...any) *Node      { return el("h3", args) }
func Hr(args ...any) *Node      { return el("hr", args) }
func Br(args ...any) *Node      { return el("br", args) }

// Lists

func Ul(args ...any) *Node { return el("ul", args) }
func Ol(args ...any) *Node { return el("ol", args) }
func Li(args ...any) *Node { return el("li", args) }
func Dl(args ...any) *Node { return el("dl", args) }
func Dt(args ...any) *Node { return el("dt", args) }
func Dd(args ...any) *Node { return el("dd", args) }

// Inline text semantics

func A(args ...any) *Node      { return el("a", args) }
func Strong(args ...any) *Node { return el("strong", args) }
func Em(args ...any) *Node     { return el("em", args) }
func B(args ...any) *Node      { return el("b", args) }
func I(args ...any) *Node      { return el("i", args) }
func Small(args ...any) *Node  { return el("small", args) }
func Code(args ...any) *Node   { return el("code", args) }
func Img(args ...any) *Node    { return el("img", args) }

// Forms

func Form(args ...any) *Node     { return el("form", args) }
func Input(args ...any) *Node    { return el("input", args) }
func Textarea(args ...any) *Node { return el("textarea", args) }
func Select(args ...any) *Node   { return el("select", args) }
func Option(args ...any) *Node   { return el("option", args) }
func Button(args ...any) *Node   { return el("button", args) }
func Label(args ...any) *Node    { return el("label", args) }
func Fieldset(args ...any) *Node { return el("fieldset", args) }
func Legend(args ...any) *Node   { return el("legend", args) }
func Progress(args ...any) *Node { return el("progress", args) }

// Tables

func Table(args ...any) *Node { return el("table", args) }
func Thead(args ...any) *Node { return el("thead", args) }
func Tbody(args ...any) *Node { return el("tbody", args) }
func Tr(args ...any) *Node    { return el("tr", args) }
func Th(args ...any) *Node    { return el("th", args) }
func Td(args ...any) *Node    { return el("td", args) }

// Interactive

func Details(args ...any) *Node { return el("details", args) }
func Summary(args ...any) *Node { return el("summary", args) }
func Dialog(args ...any) *Node  { return el("dialog", args) }

// CustomElement creates an element with a custom tag name.
// The tag name is taken literally, without shorthand.
func CustomElement(tag string, args ...any) *Node {
	n := el("div", args)
	n.Tag = tag
	return n
}
