package entityids

import "testing"

func TestRoundTrip(t *testing.T) {
	id, err := ToID("Zombie")
	if err != nil {
		t.Fatalf("ToID: %v", err)
	}
	name, err := ToName(id)
	if err != nil {
		t.Fatalf("ToName: %v", err)
	}
	if name != "Zombie" {
		t.Fatalf("round trip: got %q want %q", name, "Zombie")
	}
}

func TestUnknownName(t *testing.T) {
	_, err := ToID("NotARealEntity")
	if err == nil {
		t.Fatal("expected an error for an unregistered name")
	}
	if _, ok := err.(*UnknownEntityId); !ok {
		t.Fatalf("expected *UnknownEntityId, got %T", err)
	}
}

func TestUnknownID(t *testing.T) {
	_, err := ToName(999999)
	if err == nil {
		t.Fatal("expected an error for an unregistered id")
	}
	if _, ok := err.(*UnknownEntityId); !ok {
		t.Fatalf("expected *UnknownEntityId, got %T", err)
	}
}

func TestAllForwardEntriesReverse(t *testing.T) {
	for name := range forward {
		id, err := ToID(name)
		if err != nil {
			t.Fatalf("ToID(%q): %v", name, err)
		}
		got, err := ToName(id)
		if err != nil {
			t.Fatalf("ToName(%d) for %q: %v", id, name, err)
		}
		if got != name {
			t.Fatalf("ToName(%d): got %q want %q (id is not unique)", id, got, name)
		}
	}
}
