package logging

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldPath is the standardized structured logging key for filesystem paths.
	FieldPath = "path"
	// FieldCategory is the standardized structured logging key for classification categories.
	FieldCategory = "category"
	// FieldEventType is the standardized structured logging key for machine-readable event names.
	FieldEventType = "event_type"
	// FieldSessionID is the standardized structured logging key for watch session identifiers.
	FieldSessionID = "session_id"
)
