// Package vtest provides testing helpers for trees mounted with the engine.
//
// A Harness mounts a render function into an in-memory host, with
// validation mode on, a manual clock for scheduled refreshes and a sheet
// collecting generated styles.
//
// # Quick Start
//
//	func TestCounter(t *testing.T) {
//	    h := vtest.NewMount().
//	        WithContext(vdom.Attrs{"count": 0}).
//	        Mount(t, Counter)
//	    h.ExpectHTML(t, `div{button{@id="inc" "+"} "0"}`)
//
//	    h.Click(t, "inc")
//	    h.ExpectHTML(t, `div{button{@id="inc" "+"} "1"}`)
//	}
//
// # Scheduled Refreshes
//
// Refresh never renders on its own under a Harness; Flush fires the
// pending timers:
//
//	h.Instance.Refresh()
//	h.Flush()
//
// # Host Assertions
//
// The host tree serializes to the compact memhost form:
//
//	h.ExpectContains(t, `li{@class="a" "A"}`)
//	h.ExpectWrites(t, 2)
package vtest
