package domain

// Window is the history of accepted contexts, most recent first. Entries are
// retained for the whole path; only the first Params.WindowScan are consulted.
type Window struct {
	// stored oldest first so pushing a new head is an append
	entries       []Context
	substitutions int
}

func NewWindow() *Window {
	return &Window{}
}

func (w *Window) Len() int {
	return len(w.entries)
}

// At returns the i-th most recent context.
func (w *Window) At(i int) Context {
	return w.entries[len(w.entries)-1-i]
}

func (w *Window) Head() (Context, bool) {
	if len(w.entries) == 0 {
		return Context{}, false
	}
	return w.At(0), true
}

func (w *Window) Entries() []Context {
	out := make([]Context, len(w.entries))
	for i := range w.entries {
		out[i] = w.At(i)
	}
	return out
}

func (w *Window) Substitutions() int {
	return w.substitutions
}

func (w *Window) push(c Context) {
	w.entries = append(w.entries, c)
}
