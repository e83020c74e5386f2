package app

import (
	"testing"
)

func TestRegistryBindGetUnbind(t *testing.T) {
	r := NewRegistry()
	sess, _ := newFakeSession("c1")

	canceled := false
	r.Bind("c1", sess, func() { canceled = true })

	if got, ok := r.Get("c1"); !ok || got != sess {
		t.Fatal("expected bound session back")
	}
	if r.Count() != 1 {
		t.Fatalf("expected 1 bound connection, got %d", r.Count())
	}

	if !r.Cancel("c1") {
		t.Fatal("cancel of a bound connection must report true")
	}
	if !canceled {
		t.Fatal("cancel func was not invoked")
	}

	if !r.Unbind("c1") {
		t.Fatal("first unbind must report true")
	}
	if r.Unbind("c1") {
		t.Fatal("second unbind must report false; cleanup runs exactly once")
	}
	if _, ok := r.Get("c1"); ok {
		t.Fatal("unbound connection must not be found")
	}
}

func TestRegistryCancelUnknown(t *testing.T) {
	r := NewRegistry()
	if r.Cancel("ghost") {
		t.Fatal("cancel of unknown connection must report false")
	}
}
