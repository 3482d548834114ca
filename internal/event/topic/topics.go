package topic

// Inbound application topics: semantic events published by editing
// commands and plugins that the focus tracker listens to.
const (
	CharInserted          Topic = "insert.char"
	TextInserted          Topic = "insert.text"
	HTMLInserted          Topic = "insert.html"
	PluginSaved           Topic = "plugin.saved"
	PluginExited          Topic = "plugin.exited"
	CommandExecuted       Topic = "command.executed"
	NavigationExecuted    Topic = "nav.executed"
	ExternalRangeSupplied Topic = "editable.range"
)

// Outbound topics published by the focus tracker.
const (
	EditableBlurred    Topic = "editable.blur"
	EditableFocused    Topic = "editable.focus"
	EditableScrolled   Topic = "editable.scroll"
	WindowScrolled     Topic = "window.scroll"
	OrientationChanged Topic = "event.orientationchange"
	SelectionChanged   Topic = "selection.change"
)
