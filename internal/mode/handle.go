package mode

// Handle identifies the active mode and how to tear it down. The zero
// Handle means no mode is active. Only the switchboard creates handles.
type Handle struct {
	name     string
	teardown Teardown
}

// NewHandle creates a handle for a started mode.
func NewHandle(name string, td Teardown) Handle {
	return Handle{name: name, teardown: td}
}

// Name returns the active mode's ID, or "".
func (h Handle) Name() string {
	return h.name
}

// Active reports whether the handle refers to a running mode.
func (h Handle) Active() bool {
	return h.name != ""
}

// Teardown returns the mode's teardown, which may be nil.
func (h Handle) Teardown() Teardown {
	return h.teardown
}
