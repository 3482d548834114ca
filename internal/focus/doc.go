// Package focus keeps per-editable selection and scroll state in sync with
// a document whose selection notifications are unreliable.
//
// A Tracker watches a set of editable regions. It remembers the last
// selection and scroll offsets seen inside each region, restores them when
// the region regains focus, and republishes focus, blur, scroll and
// selection changes on the event bus.
//
// # Signals
//
// Three sources can indicate that the selection moved, and they arrive in
// no particular order:
//
//   - native selection-change notifications, when the document has them
//   - application events such as inserts, commands and plugin exits
//   - focus and blur transitions of the editables themselves
//
// Every handler re-checks that the live selection lies inside the current
// editable before it writes anything, so a selection that wandered into
// non-editable content never overwrites stored state.
//
// # Threading
//
// A Tracker is single-threaded. DOM listeners, bus handlers, hit handlers
// and the Clock's timer callbacks must all run on the same goroutine, which
// is what schedule.Loop and schedule.ManualClock provide.
package focus
