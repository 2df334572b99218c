package charge

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/san-kum/chargefield/internal/geom"
)

func TestParseSign(t *testing.T) {
	tests := []struct {
		in      int
		want    Sign
		wantErr bool
	}{
		{1, Positive, false},
		{-1, Negative, false},
		{0, 0, true},
		{2, 0, true},
		{-3, 0, true},
	}

	for _, tt := range tests {
		got, err := ParseSign(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidSign) {
				t.Errorf("ParseSign(%d): expected ErrInvalidSign, got %v", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseSign(%d): expected %v, got %v (%v)", tt.in, tt.want, got, err)
		}
	}
}

func TestNewPanicsOnInvalidSign(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for sign 0")
		}
	}()
	New(geom.Pt(0, 0), Sign(0))
}

func TestRegistryAddRemoveMove(t *testing.T) {
	r := NewRegistry()

	a := r.Add(geom.Pt(-1, 0), Positive)
	b := r.Add(geom.Pt(1, 0), Negative)
	if a == b {
		t.Fatal("expected distinct ids")
	}
	if r.Len() != 2 {
		t.Fatalf("expected 2 charges, got %d", r.Len())
	}

	if err := r.Move(b, geom.Pt(2, 0)); err != nil {
		t.Fatalf("move failed: %v", err)
	}
	p, ok := r.Get(b)
	if !ok || p.Position() != geom.Pt(2, 0) {
		t.Errorf("expected b at (2, 0), got %v", p.Position())
	}

	if err := r.Remove(a); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	want := Set{{Position: geom.Pt(2, 0), Sign: Negative}}
	if diff := cmp.Diff(want, r.Snapshot()); diff != "" {
		t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
	}

	c := r.Add(geom.Pt(0, 0), Positive)
	if c == a || c == b {
		t.Errorf("id %d reused", c)
	}
}

func TestRegistryUnknownID(t *testing.T) {
	r := NewRegistry()

	err := r.Remove(42)
	if !errors.Is(err, ErrUnknownCharge) {
		t.Errorf("expected ErrUnknownCharge, got %v", err)
	}
	var ce *ChargeError
	if !errors.As(err, &ce) || ce.ID != 42 {
		t.Errorf("expected ChargeError for id 42, got %v", err)
	}

	if err := r.Move(7, geom.Pt(1, 1)); !errors.Is(err, ErrUnknownCharge) {
		t.Errorf("expected ErrUnknownCharge from move, got %v", err)
	}
	if err := r.ReturnToOrigin(7); !errors.Is(err, ErrUnknownCharge) {
		t.Errorf("expected ErrUnknownCharge from return, got %v", err)
	}
}

func TestRegistryEvents(t *testing.T) {
	r := NewRegistry()
	var events []Event
	unsubscribe := r.Subscribe(func(ev Event) { events = append(events, ev) })

	id := r.Add(geom.Pt(0, 1), Positive)
	_ = r.Move(id, geom.Pt(0, 2))
	_ = r.Move(id, geom.Pt(0, 2))
	_ = r.Remove(id)

	want := []Event{
		{Kind: Added, ID: id, Charge: Charge{Position: geom.Pt(0, 1), Sign: Positive}, OldPosition: geom.Pt(0, 1)},
		{Kind: Moved, ID: id, Charge: Charge{Position: geom.Pt(0, 2), Sign: Positive}, OldPosition: geom.Pt(0, 1)},
		{Kind: Removed, ID: id, Charge: Charge{Position: geom.Pt(0, 2), Sign: Positive}, OldPosition: geom.Pt(0, 2)},
	}
	if diff := cmp.Diff(want, events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	unsubscribe()
	r.Add(geom.Pt(1, 1), Negative)
	if len(events) != 3 {
		t.Errorf("expected no events after unsubscribe, got %d", len(events))
	}
}

func TestRegistryEventSeesAppliedState(t *testing.T) {
	r := NewRegistry()
	var seen int
	r.Subscribe(func(ev Event) { seen = r.Len() })

	r.Add(geom.Pt(0, 0), Positive)
	if seen != 1 {
		t.Errorf("subscriber should observe the added charge, saw %d", seen)
	}
}

func TestUnsubscribeDuringDispatch(t *testing.T) {
	r := NewRegistry()
	calls := 0
	var unsubscribe func()
	unsubscribe = r.Subscribe(func(Event) {
		calls++
		unsubscribe()
	})
	r.Subscribe(func(Event) { calls++ })

	r.Add(geom.Pt(0, 0), Positive)
	r.Add(geom.Pt(1, 0), Positive)
	if calls != 3 {
		t.Errorf("expected 3 calls, got %d", calls)
	}
}

func TestReturnToOrigin(t *testing.T) {
	r := NewRegistry()
	id := r.AddWithOrigin(geom.Pt(1, 1), geom.Pt(-3, -2), Negative)

	p, _ := r.Get(id)
	if p.Origin() != geom.Pt(-3, -2) {
		t.Errorf("expected origin (-3, -2), got %v", p.Origin())
	}

	if err := r.ReturnToOrigin(id); err != nil {
		t.Fatalf("return failed: %v", err)
	}
	if _, ok := r.Get(id); ok {
		t.Error("charge should leave the active set once home")
	}
}

func TestSetUserControlled(t *testing.T) {
	r := NewRegistry()
	id := r.Add(geom.Pt(0, 0), Positive)

	if err := r.SetUserControlled(id, true); err != nil {
		t.Fatal(err)
	}
	p, _ := r.Get(id)
	if !p.UserControlled() {
		t.Error("expected charge to be user controlled")
	}
}

func TestClear(t *testing.T) {
	r := NewRegistry()
	r.Add(geom.Pt(0, 0), Positive)
	r.Add(geom.Pt(1, 0), Negative)

	removed := 0
	r.Subscribe(func(ev Event) {
		if ev.Kind == Removed {
			removed++
		}
	})
	r.Clear()

	if r.Len() != 0 || removed != 2 {
		t.Errorf("expected empty registry and 2 removals, got len %d removals %d", r.Len(), removed)
	}
}

func TestSetNetCharge(t *testing.T) {
	s := Set{
		New(geom.Pt(0, 0), Positive),
		New(geom.Pt(1, 0), Positive),
		New(geom.Pt(2, 0), Negative),
	}
	if s.NetCharge() != 1 {
		t.Errorf("expected net charge 1, got %d", s.NetCharge())
	}
}
