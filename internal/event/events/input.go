package events

import "github.com/dshills/focustrack/internal/dom"

// Inserted is the payload of the insert.* topics. The tracker only uses the
// fact that the event occurred; the fields are informational.
type Inserted struct {
	Text string
	HTML bool
}

// CommandExecuted is the payload of command.executed and nav.executed.
type CommandExecuted struct {
	Name string
}

// PluginEvent is the payload of plugin.saved and plugin.exited.
type PluginEvent struct {
	Plugin string
}

// RangeSupplied is the payload of editable.range: a component set the
// selection programmatically.
type RangeSupplied struct {
	Range dom.Range
}
