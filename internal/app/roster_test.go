package app

import (
	"testing"
)

func TestRosterJoinCreatesRoomLazily(t *testing.T) {
	r := newRoster()
	sess, _ := newFakeSession("c1")

	if r.exists("r1") {
		t.Fatal("room should not exist before first join")
	}
	members := r.join("r1", sess, "alice")
	if !r.exists("r1") {
		t.Fatal("room should exist after first join")
	}
	if len(members) != 1 || members[0].UserName != "alice" || members[0].ID != "c1" {
		t.Fatalf("unexpected member list %+v", members)
	}
}

func TestRosterLeaveReportsNotFound(t *testing.T) {
	r := newRoster()
	sess, _ := newFakeSession("c1")
	r.join("r1", sess, "alice")

	if _, ok := r.leave("r1", "someone-else"); ok {
		t.Error("leave of a non-member must report not found")
	}
	if _, ok := r.leave("nowhere", "c1"); ok {
		t.Error("leave of an unknown room must report not found")
	}

	removed, ok := r.leave("r1", "c1")
	if !ok || removed.UserName != "alice" {
		t.Fatalf("expected to remove alice, got %+v ok=%v", removed, ok)
	}
}

func TestRosterRemoveEverywhere(t *testing.T) {
	r := newRoster()
	multi, _ := newFakeSession("multi")
	other, _ := newFakeSession("other")

	r.join("A", multi, "mel")
	r.join("B", multi, "mel")
	r.join("A", other, "ana")

	removed := r.removeEverywhere("multi")
	if len(removed) != 2 {
		t.Fatalf("expected eviction from 2 rooms, got %d", len(removed))
	}
	seen := map[string]bool{}
	for _, rm := range removed {
		seen[string(rm.room)] = true
		if rm.member.UserName != "mel" {
			t.Errorf("unexpected member %+v", rm.member)
		}
	}
	if !seen["A"] || !seen["B"] {
		t.Errorf("expected rooms A and B affected, got %v", seen)
	}
	if r.count("A") != 1 || r.count("B") != 0 {
		t.Errorf("unexpected remaining counts A=%d B=%d", r.count("A"), r.count("B"))
	}

	if out := r.removeEverywhere("nobody"); len(out) != 0 {
		t.Errorf("expected empty result for unknown connection, got %+v", out)
	}
}

func TestRosterFindByName(t *testing.T) {
	r := newRoster()
	sess, _ := newFakeSession("c1")
	r.join("r1", sess, "alice")

	if sid, ok := r.findByName("r1", "alice"); !ok || sid != "c1" {
		t.Errorf("expected to find alice on c1, got %q ok=%v", sid, ok)
	}
	if _, ok := r.findByName("r1", "nobody"); ok {
		t.Error("expected miss for unknown name")
	}
}

func TestRosterDropIfEmpty(t *testing.T) {
	r := newRoster()
	sess, _ := newFakeSession("c1")
	r.join("r1", sess, "alice")

	r.dropIfEmpty("r1")
	if !r.exists("r1") {
		t.Fatal("occupied room must not be dropped")
	}

	r.leave("r1", "c1")
	r.dropIfEmpty("r1")
	if r.exists("r1") {
		t.Fatal("empty room must be dropped")
	}
}
