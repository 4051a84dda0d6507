package core

import (
	"net"
	"testing"

	"github.com/vovakirdan/chatline/internal/proto"
)

func TestSessionManagerJoinAndLeave(t *testing.T) {
	reg := NewRegistry()
	groups := NewGroupDirectory(reg)
	sm := NewSessionManager(reg, groups)

	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	c, err := sm.Join("alice", server, proto.NewFrameReader(server), "conn-1")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if !sm.Active(c) {
		t.Fatal("expected client to be active after join")
	}
	if _, ok := sm.ByName("alice"); !ok {
		t.Fatal("expected alice to resolve by name")
	}

	sm.Leave(c)

	if sm.Active(c) {
		t.Fatal("expected client to be inactive after leave")
	}
	if _, ok := sm.ByName("alice"); ok {
		t.Fatal("alice should no longer resolve after leave")
	}
	if reg.IsReserved("alice") {
		t.Fatal("name should be released after leave")
	}
}

func TestSessionManagerJoinRejectsDuplicateName(t *testing.T) {
	reg := NewRegistry()
	groups := NewGroupDirectory(reg)
	sm := NewSessionManager(reg, groups)

	s1, c1 := net.Pipe()
	defer s1.Close()
	defer c1.Close()
	s2, c2 := net.Pipe()
	defer s2.Close()
	defer c2.Close()

	if _, err := sm.Join("bob", s1, proto.NewFrameReader(s1), "conn-1"); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if _, err := sm.Join("bob", s2, proto.NewFrameReader(s2), "conn-2"); err != ErrNameInUse {
		t.Fatalf("expected ErrNameInUse on second join, got %v", err)
	}
}

func TestSessionManagerLeavePurgesGroupMembership(t *testing.T) {
	reg := NewRegistry()
	groups := NewGroupDirectory(reg)
	sm := NewSessionManager(reg, groups)

	sa, ca := net.Pipe()
	defer sa.Close()
	defer ca.Close()
	sb, cb := net.Pipe()
	defer sb.Close()
	defer cb.Close()

	alice, _ := sm.Join("alice", sa, proto.NewFrameReader(sa), "a")
	bob, _ := sm.Join("bob", sb, proto.NewFrameReader(sb), "b")

	if _, err := groups.Create("team", alice, []string{"bob"}); err != nil {
		t.Fatalf("create group: %v", err)
	}

	sm.Leave(bob)

	if _, ok := groups.Lookup("team"); ok {
		t.Fatal("expected team to be garbage-collected once bob left")
	}
}
