package log

// Canonical field names for structured logging.
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldFile      = "file"
	FieldLine      = "line"
	FieldBlock     = "block"
	FieldDate      = "date"
	FieldMarker    = "marker"
	FieldPostfix   = "postfix"
	FieldAmount    = "amount"
	FieldTitle     = "title"
	FieldEntries   = "entries"
	FieldDuration  = "duration_ms"
)

// Standard component names.
const (
	ComponentApp     = "app"
	ComponentSchema  = "schema"
	ComponentParser  = "parser"
	ComponentSummary = "summary"
	ComponentWatch   = "watch"
)
