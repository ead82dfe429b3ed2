package engine

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vdom/pkg/host/memhost"
)

func TestRenderPath(t *testing.T) {
	doc := memhost.NewDocument()
	root := doc.NewElement("ul")
	li := doc.NewElement("li")
	root.AppendChild(doc.NewElement("li"))
	root.AppendChild(li)
	li.AppendChild(doc.CreateTextNode("x"))

	p := &pass{}
	rp := newPath(root)
	rp.at(1, 1)
	rp.at(2, 0)

	n, err := p.resolve(rp, rp.len())
	require.NoError(t, err)
	require.Equal(t, `"x"`, n.(*memhost.Text).String())
	require.Equal(t, 2, p.stats.Reads)

	// Resolved steps are cached.
	_, err = p.resolve(rp, rp.len())
	require.NoError(t, err)
	require.Equal(t, 2, p.stats.Reads)

	el, err := p.element(&renderPath{steps: rp.steps[:2]})
	require.NoError(t, err)
	require.Same(t, li, el)

	_, err = p.element(rp)
	require.True(t, errors.Is(err, ErrShapeConsistency), "got %v", err)

	rp.truncate(1)
	rp.at(1, 5)
	_, err = p.resolve(rp, rp.len())
	require.True(t, errors.Is(err, ErrMissingElement), "got %v", err)
}

func TestJoinClasses(t *testing.T) {
	require.Equal(t, "a b", joinClasses("a", []string{"b"}))
	require.Equal(t, "a b", joinClasses("a b", []string{"b", "a"}))
	require.Equal(t, "vs1", joinClasses("", []string{"vs1"}))
}

func TestBindingPath(t *testing.T) {
	for _, spec := range []any{"a.b", []string{"a", "b"}, []any{"a", "b"}} {
		path, err := bindingPath(spec)
		require.NoError(t, err)
		require.Equal(t, []string{"a", "b"}, path)
	}
	for _, spec := range []any{"", "a..b", []any{"a", 1}, 42} {
		_, err := bindingPath(spec)
		require.Error(t, err, "%v", spec)
	}
}
