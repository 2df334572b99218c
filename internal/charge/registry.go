package charge

import "github.com/san-kum/chargefield/internal/geom"

// ID identifies a charge for the lifetime of a registry. IDs are never reused.
type ID uint64

type EventKind int

const (
	Added EventKind = iota
	Removed
	Moved
)

func (k EventKind) String() string {
	switch k {
	case Added:
		return "added"
	case Removed:
		return "removed"
	case Moved:
		return "moved"
	default:
		return "unknown"
	}
}

// Event describes one applied mutation. For Moved, OldPosition holds the
// position before the move and Charge the position after it. For Removed,
// Charge is the charge as it was when removed.
type Event struct {
	Kind        EventKind
	ID          ID
	Charge      Charge
	OldPosition geom.Point
}

type entry struct {
	id     ID
	charge Charge
	origin geom.Point
	held   bool
}

type subscription struct {
	id int
	fn func(Event)
}

// Registry is the mutable ChargeSet. Dependents learn about mutations only
// through Subscribe; nothing is recomputed on their behalf.
//
// A Registry is not safe for concurrent mutation. Hand a Snapshot to
// goroutines that need to read the charges.
type Registry struct {
	entries []entry
	nextID  ID
	subs    []subscription
	nextSub int
}

func NewRegistry() *Registry {
	return &Registry{nextID: 1}
}

// Add places a charge whose origin is its starting position.
func (r *Registry) Add(pos geom.Point, sign Sign) ID {
	return r.AddWithOrigin(pos, pos, sign)
}

// AddWithOrigin places a charge that returns to origin when put away.
func (r *Registry) AddWithOrigin(pos, origin geom.Point, sign Sign) ID {
	c := New(pos, sign)
	id := r.nextID
	r.nextID++
	r.entries = append(r.entries, entry{id: id, charge: c, origin: origin})
	r.emit(Event{Kind: Added, ID: id, Charge: c, OldPosition: pos})
	return id
}

func (r *Registry) Remove(id ID) error {
	i := r.index(id)
	if i < 0 {
		return &ChargeError{ID: id, Op: "remove", Wrapped: ErrUnknownCharge}
	}
	e := r.entries[i]
	r.entries = append(r.entries[:i], r.entries[i+1:]...)
	r.emit(Event{Kind: Removed, ID: id, Charge: e.charge, OldPosition: e.charge.Position})
	return nil
}

// Move relocates a charge. Moving to the current position emits nothing.
func (r *Registry) Move(id ID, pos geom.Point) error {
	i := r.index(id)
	if i < 0 {
		return &ChargeError{ID: id, Op: "move", Wrapped: ErrUnknownCharge}
	}
	old := r.entries[i].charge.Position
	if old == pos {
		return nil
	}
	r.entries[i].charge.Position = pos
	r.emit(Event{Kind: Moved, ID: id, Charge: r.entries[i].charge, OldPosition: old})
	return nil
}

// SetUserControlled marks a charge as being dragged.
func (r *Registry) SetUserControlled(id ID, held bool) error {
	i := r.index(id)
	if i < 0 {
		return &ChargeError{ID: id, Op: "hold", Wrapped: ErrUnknownCharge}
	}
	r.entries[i].held = held
	return nil
}

// ReturnToOrigin applies the end state of the return-home animation: the
// charge has reached its origin and leaves the active set.
func (r *Registry) ReturnToOrigin(id ID) error {
	i := r.index(id)
	if i < 0 {
		return &ChargeError{ID: id, Op: "return", Wrapped: ErrUnknownCharge}
	}
	return r.Remove(id)
}

func (r *Registry) Get(id ID) (Particle, bool) {
	i := r.index(id)
	if i < 0 {
		return Particle{}, false
	}
	e := r.entries[i]
	return Particle{ID: e.id, Charge: e.charge, origin: e.origin, held: e.held}, true
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) IDs() []ID {
	ids := make([]ID, len(r.entries))
	for i, e := range r.entries {
		ids[i] = e.id
	}
	return ids
}

// Snapshot copies the current charges in insertion order.
func (r *Registry) Snapshot() Set {
	s := make(Set, len(r.entries))
	for i, e := range r.entries {
		s[i] = e.charge
	}
	return s
}

// Clear removes every charge, emitting one Removed event per charge.
func (r *Registry) Clear() {
	for len(r.entries) > 0 {
		_ = r.Remove(r.entries[len(r.entries)-1].id)
	}
}

// Subscribe registers fn for every subsequent event. Events are delivered
// synchronously, after the mutation, in subscription order.
func (r *Registry) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := r.nextSub
	r.nextSub++
	r.subs = append(r.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range r.subs {
			if s.id == id {
				r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

func (r *Registry) emit(ev Event) {
	subs := r.subs
	for _, s := range subs {
		s.fn(ev)
	}
}

func (r *Registry) index(id ID) int {
	for i, e := range r.entries {
		if e.id == id {
			return i
		}
	}
	return -1
}
