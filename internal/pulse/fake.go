package pulse

// FakeLine is a test double that delivers a scripted number of edges to the
// active watcher whenever Fire is called.
type FakeLine struct {
	// WatchError, if set, will be returned by Watch.
	WatchError error

	// Watching reports whether a watcher is currently registered.
	Watching bool

	// WatchCalls and UnwatchCalls count registrations for lifecycle
	// assertions.
	WatchCalls   int
	UnwatchCalls int

	fn func()
}

// NewFakeLine creates a FakeLine.
func NewFakeLine() *FakeLine {
	return &FakeLine{}
}

// Watch registers the callback.
func (f *FakeLine) Watch(fn func()) error {
	f.WatchCalls++
	if f.WatchError != nil {
		return f.WatchError
	}
	f.fn = fn
	f.Watching = true
	return nil
}

// Unwatch deregisters the callback.
func (f *FakeLine) Unwatch() error {
	f.UnwatchCalls++
	f.fn = nil
	f.Watching = false
	return nil
}

// Fire delivers n rising edges to the active watcher. Edges fired while
// nothing is watching are dropped, as they would be by the hardware.
func (f *FakeLine) Fire(n int) {
	for i := 0; i < n; i++ {
		if f.fn != nil {
			f.fn()
		}
	}
}
