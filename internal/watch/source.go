package watch

// EventKind identifies how a path came to the coordinator's attention.
type EventKind int

const (
	// KindCreated means the notification source saw the file appear.
	KindCreated EventKind = iota
	// KindMoved means the file was moved into a watched root.
	KindMoved
	// KindExisting means the path was found by a scan of existing files.
	KindExisting
)

func (k EventKind) String() string {
	switch k {
	case KindCreated:
		return "created"
	case KindMoved:
		return "moved"
	case KindExisting:
		return "existing"
	default:
		return "unknown"
	}
}

// Event is one raw change notification.
type Event struct {
	Path string
	Kind EventKind
}

// EventSource is the pluggable notification mechanism. Implementations watch
// registered roots recursively and deliver file events until Close.
type EventSource interface {
	// Watch registers a root directory. Called once per root before events
	// are consumed; implementations must cover subdirectories.
	Watch(root string) error
	// Events returns the stream of file events. The channel closes when the
	// source shuts down.
	Events() <-chan Event
	// Errors returns the stream of source-level errors. Receiving an error
	// does not invalidate the source.
	Errors() <-chan error
	// Close deregisters all roots and releases resources.
	Close() error
}
