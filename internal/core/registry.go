package core

import "regexp"

// nameRule matches the 1-30 character alphanumeric charset shared by
// client and group names.
var nameRule = regexp.MustCompile(`^[A-Za-z0-9]{1,30}$`)

// ValidName reports whether name satisfies the charset/length rule.
func ValidName(name string) bool {
	return nameRule.MatchString(name)
}

// Kind distinguishes the two entity types a name can resolve to.
type Kind int

const (
	KindClient Kind = iota
	KindGroup
)

type entry struct {
	kind   Kind
	client *Client
	group  *Group
}

// Registry is the authoritative name -> entity mapping shared by clients
// and groups. The event loop is single-threaded, so reserve/release/lookup
// need no locking to stay atomic with respect to each other.
type Registry struct {
	entries map[string]entry
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// ReserveClient atomically reserves name for c. Fails with ErrInvalidName
// or ErrNameInUse.
func (r *Registry) ReserveClient(name string, c *Client) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if _, exists := r.entries[name]; exists {
		return ErrNameInUse
	}
	r.entries[name] = entry{kind: KindClient, client: c}
	return nil
}

// ReserveGroup atomically reserves name for g.
func (r *Registry) ReserveGroup(name string, g *Group) error {
	if !ValidName(name) {
		return ErrInvalidName
	}
	if _, exists := r.entries[name]; exists {
		return ErrNameInUse
	}
	r.entries[name] = entry{kind: KindGroup, group: g}
	return nil
}

// Release removes name from the registry. No-op if absent.
func (r *Registry) Release(name string) {
	delete(r.entries, name)
}

// IsReserved reports whether name is currently held by any entity.
func (r *Registry) IsReserved(name string) bool {
	_, exists := r.entries[name]
	return exists
}

// LookupClient returns the client registered under name, if any.
func (r *Registry) LookupClient(name string) (*Client, bool) {
	e, exists := r.entries[name]
	if !exists || e.kind != KindClient {
		return nil, false
	}
	return e.client, true
}

// LookupGroup returns the group registered under name, if any.
func (r *Registry) LookupGroup(name string) (*Group, bool) {
	e, exists := r.entries[name]
	if !exists || e.kind != KindGroup {
		return nil, false
	}
	return e.group, true
}
