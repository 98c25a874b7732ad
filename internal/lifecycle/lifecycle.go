package lifecycle

// State is the lifecycle of a lazily constructed instance.
type State int

const (
	Uninitialized State = iota
	Initialized
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	default:
		return "unknown"
	}
}
