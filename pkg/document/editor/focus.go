package editor

// Mutation is the kind of change applied to a block sequence.
type Mutation int

const (
	MutationLoad Mutation = iota + 1
	MutationInsert
	MutationRemove
	MutationUpdate
	MutationMove
)

func (m Mutation) String() string {
	switch m {
	case MutationLoad:
		return "load"
	case MutationInsert:
		return "insert"
	case MutationRemove:
		return "remove"
	case MutationUpdate:
		return "update"
	case MutationMove:
		return "move"
	default:
		return "unknown"
	}
}

// NextFocusTarget computes the position that should receive input focus
// after a mutation. index is the position produced by the mutation and is
// only used by MutationInsert.
//
// The target is a position, not a block: it does not follow a block that
// was moved or shifted by a removal.
func NextFocusTarget(target, newLen int, m Mutation, index int) int {
	if newLen <= 0 {
		return 0
	}

	switch m {
	case MutationLoad:
		return 0
	case MutationInsert:
		target = index
	}

	return clamp(target, 0, newLen-1)
}

// FocusCoordinator tracks the focus target across mutations.
// It knows nothing about rendering; a rendering layer polls Target
// after each mutation and focuses the matching element.
type FocusCoordinator struct {
	target int
	length int
}

func NewFocusCoordinator(length int) *FocusCoordinator {
	f := &FocusCoordinator{}
	f.Observe(MutationLoad, length, 0)
	return f
}

// Observe records a mutation that left the sequence with newLen elements
// and returns the new target.
func (f *FocusCoordinator) Observe(m Mutation, newLen, index int) int {
	f.target = NextFocusTarget(f.target, newLen, m, index)
	f.length = newLen
	return f.target
}

func (f *FocusCoordinator) Target() int {
	return f.target
}

// Set moves focus explicitly, for example on arrow-key navigation.
// Out-of-range positions are ignored.
func (f *FocusCoordinator) Set(index int) bool {
	if index < 0 || index >= f.length {
		return false
	}
	f.target = index
	return true
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
