package pdfdesk

// State is a step of the conversion pipeline.
type State int

// Pipeline states, in order. StateFailed is reachable from any non-terminal state.
const (
	StateIdle State = iota
	StateSandboxing
	StateRasterizing
	StatePaginating
	StateComposing
	StateDone
	StateFailed
)

var stateNames = [...]string{
	StateIdle:        "idle",
	StateSandboxing:  "sandboxing",
	StateRasterizing: "rasterizing",
	StatePaginating:  "paginating",
	StateComposing:   "composing",
	StateDone:        "done",
	StateFailed:      "failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Terminal reports whether s ends a conversion.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// tracker records the current state of one Convert call and notifies the
// observer on every transition.
type tracker struct {
	state   State
	observe func(State)
}

func (t *tracker) enter(s State) {
	t.state = s
	if t.observe != nil {
		t.observe(s)
	}
}

// fail moves to StateFailed and wraps err with the state it failed in.
func (t *tracker) fail(err error) error {
	failed := t.state
	t.enter(StateFailed)
	return &ConversionError{State: failed, Kind: kindOf(failed), Err: err}
}
