package vtest

import (
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/vango-dev/vdom/pkg/engine"
	"github.com/vango-dev/vdom/pkg/host/memhost"
	"github.com/vango-dev/vdom/pkg/vdom"
)

// Harness is a tree mounted into an in-memory host.
type Harness struct {
	Doc      *memhost.Document
	Body     *memhost.Element
	Sheet    *memhost.Sheet
	Clock    *Clock
	Registry *engine.Registry
	Instance *engine.Instance
}

// MountBuilder allows fluent construction of a Harness.
type MountBuilder struct {
	ctx      vdom.Attrs
	opts     []engine.Option
	validate bool
}

// NewMount creates a new mount builder. Validation is on by default.
//
// Example:
//
//	h := vtest.NewMount().
//	    WithContext(vdom.Attrs{"count": 0}).
//	    Mount(t, Counter)
func NewMount() *MountBuilder {
	return &MountBuilder{validate: true}
}

// WithContext sets the root attribute map.
func (b *MountBuilder) WithContext(ctx vdom.Attrs) *MountBuilder {
	b.ctx = ctx
	return b
}

// WithOptions appends engine options. They apply after the harness
// defaults, so they win.
func (b *MountBuilder) WithOptions(opts ...engine.Option) *MountBuilder {
	b.opts = append(b.opts, opts...)
	return b
}

// WithoutValidation mounts without validation mode.
func (b *MountBuilder) WithoutValidation() *MountBuilder {
	b.validate = false
	return b
}

// Mount mounts root under a fresh body element. The first pass must
// succeed.
func (b *MountBuilder) Mount(t testing.TB, root vdom.RenderFunc) *Harness {
	t.Helper()
	h := b.Start(root)
	if err := h.Instance.Err(); err != nil {
		t.Fatalf("mount failed: %+v", err)
	}
	t.Cleanup(func() { _ = h.Instance.Unmount() })
	return h
}

// Start is Mount without the checks, for tests that expect the first pass
// to fail.
func (b *MountBuilder) Start(root vdom.RenderFunc) *Harness {
	doc := memhost.NewDocument()
	h := &Harness{
		Doc:      doc,
		Body:     doc.NewElement("body"),
		Sheet:    &memhost.Sheet{},
		Clock:    &Clock{},
		Registry: engine.NewRegistry(),
	}
	opts := []engine.Option{
		engine.WithValidation(b.validate),
		engine.WithAfterFunc(h.Clock.AfterFunc),
		engine.WithInjector(h.Sheet),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	}
	opts = append(opts, b.opts...)
	h.Instance = h.Registry.Mount(h.Body, doc, root, b.ctx, opts...)
	return h
}

// Mount is a shorthand for NewMount().Mount(t, root).
func Mount(t testing.TB, root vdom.RenderFunc) *Harness {
	t.Helper()
	return NewMount().Mount(t, root)
}

// String serializes the mounted host tree.
func (h *Harness) String() string {
	return h.Body.ChildrenString()
}

// Root returns the root host element, or nil when the root is not an
// element.
func (h *Harness) Root() *memhost.Element {
	el, _ := h.Instance.Root().(*memhost.Element)
	return el
}

// Find returns the element with the given id.
func (h *Harness) Find(t testing.TB, id string) *memhost.Element {
	t.Helper()
	el := h.Body.GetElementByID(id)
	if el == nil {
		t.Fatalf("no element with id %q in %s", id, h)
	}
	return el
}

// Click dispatches a click on the element with the given id.
func (h *Harness) Click(t testing.TB, id string) *memhost.Event {
	t.Helper()
	return h.Find(t, id).Dispatch("click")
}

// Type sets the live value of the element with the given id and
// dispatches an input event. A bool sets the checked state.
func (h *Harness) Type(t testing.TB, id string, value any) *memhost.Event {
	t.Helper()
	el := h.Find(t, id)
	el.Input(value)
	return el.Dispatch("input")
}

// Refresh runs a pass right away and fails the test on error.
func (h *Harness) Refresh(t testing.TB) {
	t.Helper()
	if err := h.Instance.RefreshNow(); err != nil {
		t.Fatalf("refresh failed: %+v", err)
	}
}

// Flush fires scheduled refreshes.
func (h *Harness) Flush() int {
	return h.Clock.Flush()
}

// ExpectHTML asserts that the serialized host tree equals want.
//
// Example:
//
//	h.ExpectHTML(t, `ul{li{"A"} li{"B"}}`)
func (h *Harness) ExpectHTML(t testing.TB, want string) {
	t.Helper()
	if got := h.String(); got != want {
		t.Errorf("host tree mismatch\n got: %s\nwant: %s", got, want)
	}
}

// ExpectContains asserts that the serialized host tree contains expected.
func (h *Harness) ExpectContains(t testing.TB, expected string) {
	t.Helper()
	if got := h.String(); !strings.Contains(got, expected) {
		t.Errorf("expected host tree to contain %q, got:\n%s", expected, truncate(got, 500))
	}
}

// ExpectNotContains asserts that the serialized host tree does not
// contain unexpected.
func (h *Harness) ExpectNotContains(t testing.TB, unexpected string) {
	t.Helper()
	if got := h.String(); strings.Contains(got, unexpected) {
		t.Errorf("expected host tree to NOT contain %q, got:\n%s", unexpected, truncate(got, 500))
	}
}

// ExpectWrites asserts an upper bound on the host writes of the last pass.
func (h *Harness) ExpectWrites(t testing.TB, max int) {
	t.Helper()
	if got := h.Instance.Stats().Last.Writes; got > max {
		t.Errorf("expected at most %d writes, got %d", max, got)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
