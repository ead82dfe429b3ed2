// Package vdom describes user interfaces as trees of Nodes.
//
// A Node is a text leaf, an element, a component or (inside the engine) a
// kept placeholder for a subtree whose removal is still pending. Trees are
// built fresh on every render pass and handed to package engine, which
// diffs them against the previous pass and patches the host tree.
//
// # Building trees
//
// H and Build accept a tag and a variadic argument list:
//
//	H("ul.todo",
//	    H("li.done@1", "Buy milk"),
//	    H("li@2", Attrs{"onclick": toggle}, "Walk the dog"),
//	)
//
// A string tag names an element and may carry a class and key shorthand
// ("li.done@1"). A RenderFunc or any other Renderer makes a component.
// Arguments may be attribute maps, Attr and EventHandler values, child
// Nodes, string and numeric scalars, and nested slices of all of these.
// Element factories such as Div and Li are thin wrappers around H.
//
// # Components
//
// A component renders its attributes and children into a concrete tree.
// Attribute keys beginning with "$" or "_" are transient: they do not count
// when deciding whether a component was re-rendered with the same
// attributes, which is what lets "$"-keys hold component-local state:
//
//	func Counter(attrs vdom.Attrs, _ []*vdom.Node) any {
//	    n, _ := attrs["$count"].(int)
//	    return vdom.Button(vdom.OnClick(func(ctx vdom.Attrs, _ *vdom.Event) error {
//	        ctx["$count"] = n + 1
//	        return nil
//	    }), n)
//	}
//
// Function values never compare equal, so a component given a fresh
// callback under a plain key is restarted on every pass and loses its
// "$" state. Pass callbacks under a "_" key instead:
//
//	vdom.H(Editor, vdom.Attrs{"value": v, "_onSave": save})
package vdom
