package attendance

// State is the check-in/check-out phase derived from an employee's most
// recent activity. It is global per employee, not scoped to a calendar day:
// an open check-in carried over from yesterday still blocks a new check-in
// and still allows today's check-out.
type State string

const (
	StateNone       State = "NONE"
	StateCheckedIn  State = "CHECKED_IN"
	StateCheckedOut State = "CHECKED_OUT"
)

// StateFromActivity derives the sequencer state from the latest activity,
// or StateNone when the employee has no activity yet.
func StateFromActivity(latest *Activity) State {
	if latest == nil {
		return StateNone
	}
	if latest.Kind == KindCheckIn {
		return StateCheckedIn
	}
	return StateCheckedOut
}

// NextState applies the check-in/check-out ordering rules. It returns the
// resulting state, or a sequence violation error when the transition is not
// allowed from the current state.
func NextState(current State, kind Kind) (State, error) {
	switch kind {
	case KindCheckIn:
		if current == StateCheckedIn {
			return current, ErrNotCheckedOut
		}
		return StateCheckedIn, nil
	case KindCheckOut:
		switch current {
		case StateNone:
			return current, ErrNoCheckInFound
		case StateCheckedIn:
			return StateCheckedOut, nil
		default:
			return current, ErrNotCheckedIn
		}
	default:
		return current, ErrUnknownKind
	}
}
