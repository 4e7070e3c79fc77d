package log

// Fanout forwards each event to a set of sinks, each optionally restricted
// to certain event categories. This lets the console carry state changes
// and errors while a file sink keeps the full exchange record. Attach all
// sinks before handing the Fanout to an engine; Log is safe for concurrent
// use, Attach is not.
type Fanout struct {
	sinks []fanoutSink
}

type fanoutSink struct {
	logger Logger
	only   []Category // empty admits every category
}

// NewFanout creates an empty Fanout. Logging to it is a no-op until sinks
// are attached.
func NewFanout() *Fanout {
	return &Fanout{}
}

// Attach adds a sink. When categories are named, the sink receives only
// events of those categories. Returns the Fanout for chaining.
func (f *Fanout) Attach(logger Logger, categories ...Category) *Fanout {
	f.sinks = append(f.sinks, fanoutSink{logger: logger, only: categories})
	return f
}

// Log forwards the event to every sink whose restriction admits it.
func (f *Fanout) Log(event Event) {
	for _, s := range f.sinks {
		if s.admits(event.Category) {
			s.logger.Log(event)
		}
	}
}

func (s fanoutSink) admits(category Category) bool {
	if len(s.only) == 0 {
		return true
	}
	for _, c := range s.only {
		if c == category {
			return true
		}
	}
	return false
}

// Compile-time interface satisfaction check.
var _ Logger = (*Fanout)(nil)
