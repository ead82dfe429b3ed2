package vdom

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders the logical tree rooted at n for debugging. Components are
// shown with their renderer name and the subtree they rendered into.
func Dump(n *Node) string {
	tree := treeprint.New()
	dumpInto(tree, n)
	return tree.String()
}

func dumpInto(t treeprint.Tree, n *Node) {
	if n == nil {
		t.AddNode("<nil>")
		return
	}
	switch n.Kind {
	case KindText:
		t.AddNode(strconv.Quote(n.Text))
	case KindKept:
		label := "<kept>"
		if n.Discard {
			label = "<kept discard>"
		}
		t.AddNode(label)
	case KindComponent:
		b := t.AddMetaBranch("component", RendererName(n.Comp)+label(n))
		for _, c := range n.Children {
			dumpInto(b.AddBranch("child"), c)
		}
		if n.Concrete != nil {
			dumpInto(b, n.Concrete)
		}
	default:
		if len(n.Children) == 0 {
			t.AddNode(n.Tag + label(n))
			return
		}
		b := t.AddBranch(n.Tag + label(n))
		for _, c := range n.Children {
			dumpInto(b, c)
		}
	}
}

// label formats the key and the plain attributes of n.
func label(n *Node) string {
	var parts []string
	if n.Key != "" {
		parts = append(parts, "@"+n.Key)
	}
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := n.Attrs[k]
		switch {
		case IsEventKey(k) || IsLifecycleKey(k):
			parts = append(parts, k)
		case IsTransient(k):
		default:
			parts = append(parts, fmt.Sprintf("%s=%q", k, AttrString(v)))
		}
	}
	if len(parts) == 0 {
		return ""
	}
	return " " + strings.Join(parts, " ")
}
