package relay

import "testing"

func TestAssignSeatFirstComeFirstSeated(t *testing.T) {
	reg := NewRegistry()
	if got := reg.AssignSeat("c1"); got != RoleFirst {
		t.Fatalf("c1 role = %v, want first", got)
	}
	if got := reg.AssignSeat("c2"); got != RoleSecond {
		t.Fatalf("c2 role = %v, want second", got)
	}
	for _, id := range []ConnID{"c3", "c4", "c5"} {
		if got := reg.AssignSeat(id); got != RoleObserver {
			t.Fatalf("%s role = %v, want observer", id, got)
		}
	}
	if reg.RoleOf("c3") != RoleObserver {
		t.Fatal("observer must not be bound to a seat")
	}
}

func TestAssignSeatTwiceKeepsSeat(t *testing.T) {
	reg := NewRegistry()
	reg.AssignSeat("c1")
	if got := reg.AssignSeat("c1"); got != RoleFirst {
		t.Fatalf("expected c1 to keep first seat, got %v", got)
	}
	if first, second := reg.Occupied(); !first || second {
		t.Fatalf("unexpected occupancy first=%v second=%v", first, second)
	}
}

func TestReleaseIsIdempotent(t *testing.T) {
	reg := NewRegistry()
	reg.AssignSeat("c1")
	reg.AssignSeat("c2")

	if got := reg.Release("c1"); got != RoleFirst {
		t.Fatalf("release c1 = %v, want first", got)
	}
	if got := reg.Release("c1"); got != RoleObserver {
		t.Fatalf("second release c1 = %v, want observer", got)
	}
	if got := reg.Release("nobody"); got != RoleObserver {
		t.Fatalf("release unknown = %v, want observer", got)
	}
	if reg.RoleOf("c2") != RoleSecond {
		t.Fatal("c2 lost its seat")
	}
}

func TestReleasedSeatGoesToNextConnection(t *testing.T) {
	reg := NewRegistry()
	reg.AssignSeat("c1")
	reg.AssignSeat("c2")
	reg.AssignSeat("c3")

	reg.Release("c2")
	if got := reg.AssignSeat("c4"); got != RoleSecond {
		t.Fatalf("c4 role = %v, want vacated second seat", got)
	}
	if reg.RoleOf("c3") != RoleObserver {
		t.Fatal("existing observer must not be promoted")
	}
}

func TestRoleOfEmptyID(t *testing.T) {
	reg := NewRegistry()
	if reg.RoleOf("") != RoleObserver {
		t.Fatal("empty id must be observer")
	}
}
