package order

import "testing"

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from    Status
		to      Status
		allowed bool
	}{
		{StatusDraft, StatusPendingPayment, true},
		{StatusPendingPayment, StatusAwaitingConfirmation, true},
		{StatusPendingPayment, StatusCancelled, true},
		{StatusAwaitingConfirmation, StatusPaid, true},
		{StatusPaid, StatusPreparing, true},
		{StatusPreparing, StatusReady, true},
		{StatusReady, StatusCompleted, true},
		{StatusCompleted, StatusRefunded, true},

		{StatusPendingPayment, StatusReady, false},
		{StatusDraft, StatusCancelled, false},
		{StatusDraft, StatusPaid, false},
		{StatusPaid, StatusCompleted, false},
		{StatusCancelled, StatusPendingPayment, false},
		{StatusRefunded, StatusCompleted, false},
		{StatusCompleted, StatusCancelled, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestAvailableTransitionsMatchesTable(t *testing.T) {
	for from := range transitions {
		avail := AvailableTransitions(from)
		if len(avail) != len(transitions[from]) {
			t.Fatalf("%s: %d available, table has %d", from, len(avail), len(transitions[from]))
		}
		for _, to := range avail {
			if !CanTransition(from, to) {
				t.Fatalf("AvailableTransitions(%s) contains %s but CanTransition disagrees", from, to)
			}
		}
	}
}

func TestAvailableTransitionsReturnsCopy(t *testing.T) {
	avail := AvailableTransitions(StatusPendingPayment)
	avail[0] = StatusRefunded
	if CanTransition(StatusPendingPayment, StatusRefunded) {
		t.Fatalf("mutating the returned slice changed the table")
	}
}

func TestTerminalStates(t *testing.T) {
	for _, s := range []Status{StatusCancelled, StatusRefunded} {
		if !s.IsTerminal() {
			t.Fatalf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusDraft, StatusPendingPayment, StatusCompleted} {
		if s.IsTerminal() {
			t.Fatalf("%s should not be terminal", s)
		}
	}
}

func TestParseStatus(t *testing.T) {
	if s, ok := ParseStatus("PAID"); !ok || s != StatusPaid {
		t.Fatalf("ParseStatus(PAID) = %s, %v", s, ok)
	}
	if _, ok := ParseStatus("SHIPPED"); ok {
		t.Fatalf("ParseStatus accepted unknown status")
	}
}
