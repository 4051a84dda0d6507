package core

import "testing"

func newOnlineClient(name string, reg *Registry) *Client {
	c := &Client{Name: name, Groups: make(map[string]struct{})}
	_ = reg.ReserveClient(name, c)
	return c
}

func TestGroupDirectoryCreateRequiresTwoDistinctMembers(t *testing.T) {
	reg := NewRegistry()
	dir := NewGroupDirectory(reg)
	alice := newOnlineClient("alice", reg)

	if _, err := dir.Create("soloteam", alice, []string{"alice"}); err != ErrTooFewMembers {
		t.Fatalf("expected ErrTooFewMembers for creator+self only, got %v", err)
	}

	_ = newOnlineClient("bob", reg)
	g, err := dir.Create("team", alice, []string{"bob"})
	if err != nil {
		t.Fatalf("create with 2 distinct members: %v", err)
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", g.Len())
	}
}

func TestGroupDirectoryCreateRejectsUnknownMember(t *testing.T) {
	reg := NewRegistry()
	dir := NewGroupDirectory(reg)
	alice := newOnlineClient("alice", reg)

	if _, err := dir.Create("team", alice, []string{"ghost"}); err != ErrUnknownMember {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
}

func TestGroupDirectoryCreateRejectsNameCollision(t *testing.T) {
	reg := NewRegistry()
	dir := NewGroupDirectory(reg)
	alice := newOnlineClient("alice", reg)
	_ = newOnlineClient("bob", reg)
	newOnlineClient("team", reg) // reserve "team" as a client name

	if _, err := dir.Create("team", alice, []string{"bob"}); err != ErrNameInUse {
		t.Fatalf("expected ErrNameInUse, got %v", err)
	}
}

func TestGroupDirectoryMemberOrderIsCreatorTypedOrder(t *testing.T) {
	reg := NewRegistry()
	dir := NewGroupDirectory(reg)
	alice := newOnlineClient("alice", reg)
	carol := newOnlineClient("carol", reg)
	bob := newOnlineClient("bob", reg)

	g, err := dir.Create("team", alice, []string{"carol", "bob"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	members := g.Members()
	want := []*Client{alice, carol, bob}
	if len(members) != len(want) {
		t.Fatalf("members = %v", members)
	}
	for i, m := range want {
		if members[i] != m {
			t.Fatalf("members[%d] = %s, want %s", i, members[i].Name, m.Name)
		}
	}
}

func TestGroupDirectoryPurgeClientGarbageCollectsUndersizedGroups(t *testing.T) {
	reg := NewRegistry()
	dir := NewGroupDirectory(reg)
	alice := newOnlineClient("alice", reg)
	bob := newOnlineClient("bob", reg)

	if _, err := dir.Create("team", alice, []string{"bob"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	dir.PurgeClient(bob)

	if _, ok := dir.Lookup("team"); ok {
		t.Fatal("expected group to be garbage-collected below 2 members")
	}
	if reg.IsReserved("team") {
		t.Fatal("expected group name to be released on garbage collection")
	}
}

func TestGroupDirectoryPurgeClientLeavesLargerGroupsIntact(t *testing.T) {
	reg := NewRegistry()
	dir := NewGroupDirectory(reg)
	alice := newOnlineClient("alice", reg)
	_ = newOnlineClient("bob", reg)
	carol := newOnlineClient("carol", reg)

	if _, err := dir.Create("team", alice, []string{"bob", "carol"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	dir.PurgeClient(carol)

	g, ok := dir.Lookup("team")
	if !ok {
		t.Fatal("expected group to survive with 2 remaining members")
	}
	if g.Len() != 2 {
		t.Fatalf("expected 2 members, got %d", g.Len())
	}
	if g.Has(carol) {
		t.Fatal("carol should have been removed")
	}
}
