package order

// Status is the lifecycle state of a submitted order.
type Status string

const (
	StatusDraft                Status = "DRAFT"
	StatusPendingPayment       Status = "PENDING_PAYMENT"
	StatusAwaitingConfirmation Status = "AWAITING_CONFIRMATION"
	StatusPaid                 Status = "PAID"
	StatusPreparing            Status = "PREPARING"
	StatusReady                Status = "READY"
	StatusCompleted            Status = "COMPLETED"
	StatusCancelled            Status = "CANCELLED"
	StatusRefunded             Status = "REFUNDED"
)

// transitions is the single source of truth for allowed status changes.
// Both Transition and AvailableTransitions consult this table.
var transitions = map[Status][]Status{
	StatusDraft:                {StatusPendingPayment},
	StatusPendingPayment:       {StatusAwaitingConfirmation, StatusCancelled},
	StatusAwaitingConfirmation: {StatusPaid, StatusCancelled},
	StatusPaid:                 {StatusPreparing, StatusCancelled},
	StatusPreparing:            {StatusReady, StatusCancelled},
	StatusReady:                {StatusCompleted, StatusCancelled},
	StatusCompleted:            {StatusRefunded},
	StatusCancelled:            {},
	StatusRefunded:             {},
}

// AvailableTransitions returns the statuses reachable from s. The result is
// a copy; callers may not mutate the table through it.
func AvailableTransitions(s Status) []Status {
	next, ok := transitions[s]
	if !ok {
		return nil
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether s -> target is an allowed change.
func CanTransition(s, target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible from s.
func (s Status) IsTerminal() bool {
	return len(transitions[s]) == 0
}

// ParseStatus validates a raw status string.
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	if _, ok := transitions[s]; !ok {
		return "", false
	}
	return s, true
}
