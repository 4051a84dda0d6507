package core

import "strings"

// GroupDirectory owns group lifecycle on top of the shared Registry: it
// reserves and releases group names and keeps membership in lock-step with
// client teardown via the eager-purge discipline (see SPEC_FULL.md's open
// question resolution on self-healing groups).
type GroupDirectory struct {
	registry *Registry
	groups   map[string]*Group
}

// NewGroupDirectory builds a directory backed by registry.
func NewGroupDirectory(registry *Registry) *GroupDirectory {
	return &GroupDirectory{
		registry: registry,
		groups:   make(map[string]*Group),
	}
}

// Create reserves name and builds a group containing creator plus every
// distinct requested member that is currently an online client. Fails if
// name is not reservable, any requested member is unknown, or the distinct
// member count (creator included) is below two.
func (d *GroupDirectory) Create(name string, creator *Client, requestedMembers []string) (*Group, error) {
	if !ValidName(name) {
		return nil, ErrInvalidName
	}
	if d.registry.IsReserved(name) {
		return nil, ErrNameInUse
	}

	ordered := []*Client{creator}
	seen := map[*Client]struct{}{creator: {}}
	for _, raw := range requestedMembers {
		mname := strings.TrimSpace(raw)
		if mname == "" {
			continue
		}
		member, ok := d.registry.LookupClient(mname)
		if !ok {
			return nil, ErrUnknownMember
		}
		if _, dup := seen[member]; dup {
			continue
		}
		seen[member] = struct{}{}
		ordered = append(ordered, member)
	}

	if len(ordered) < 2 {
		return nil, ErrTooFewMembers
	}

	g := NewGroup(name)
	for _, member := range ordered {
		g.AddMember(member)
	}

	if err := d.registry.ReserveGroup(name, g); err != nil {
		return nil, err
	}
	d.groups[name] = g
	return g, nil
}

// Lookup returns the live group registered under name, if any.
func (d *GroupDirectory) Lookup(name string) (*Group, bool) {
	g, ok := d.groups[name]
	return g, ok
}

// Members returns name's members, or ok=false if no such group is live.
func (d *GroupDirectory) Members(name string) ([]*Client, bool) {
	g, ok := d.groups[name]
	if !ok {
		return nil, false
	}
	return g.Members(), true
}

// Remove drops the group and releases its name.
func (d *GroupDirectory) Remove(name string) {
	delete(d.groups, name)
	d.registry.Release(name)
}

// PurgeClient removes c from every group it belongs to. Any group whose
// membership drops below two as a result is garbage-collected: its name is
// released and it stops resolving entirely.
func (d *GroupDirectory) PurgeClient(c *Client) {
	names := make([]string, 0, len(c.Groups))
	for name := range c.Groups {
		names = append(names, name)
	}
	for _, name := range names {
		g, ok := d.groups[name]
		if !ok {
			continue
		}
		g.RemoveMember(c)
		if g.Len() < 2 {
			d.Remove(name)
		}
	}
}
