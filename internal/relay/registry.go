package relay

// Registry tracks which connection holds each playing seat. It has no
// notion of turn order. Not safe for concurrent use; Relay serializes access.
type Registry struct {
	seatA ConnID
	seatB ConnID
}

func NewRegistry() *Registry {
	return &Registry{}
}

// AssignSeat binds id to the first vacant seat, first-come-first-seated.
// When both seats are held, id becomes an observer and nothing is bound.
func (r *Registry) AssignSeat(id ConnID) Role {
	if role := r.RoleOf(id); role != RoleObserver {
		return role
	}
	if r.seatA == "" {
		r.seatA = id
		return RoleFirst
	}
	if r.seatB == "" {
		r.seatB = id
		return RoleSecond
	}
	return RoleObserver
}

// Release vacates the seat held by id and returns the role it held.
// Releasing a non-occupant is a no-op that returns RoleObserver.
func (r *Registry) Release(id ConnID) Role {
	if id == "" {
		return RoleObserver
	}
	switch id {
	case r.seatA:
		r.seatA = ""
		return RoleFirst
	case r.seatB:
		r.seatB = ""
		return RoleSecond
	}
	return RoleObserver
}

func (r *Registry) RoleOf(id ConnID) Role {
	if id == "" {
		return RoleObserver
	}
	switch id {
	case r.seatA:
		return RoleFirst
	case r.seatB:
		return RoleSecond
	}
	return RoleObserver
}

// Occupied reports whether each seat is held.
func (r *Registry) Occupied() (first, second bool) {
	return r.seatA != "", r.seatB != ""
}
