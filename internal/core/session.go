package core

import (
	"net"

	"github.com/vovakirdan/chatline/internal/proto"
)

// SessionManager holds the mapping between transport endpoints and client
// records, and drives join/leave lifecycle transitions. It is the sole
// owner of client records and their endpoints; the group directory below
// it only references those records, and each Client.Groups lists the group
// names the client belongs to so Leave can purge them.
type SessionManager struct {
	registry *Registry
	groups   *GroupDirectory
	byConn   map[net.Conn]*Client
	byName   map[string]*Client
}

// NewSessionManager builds a session manager sharing registry and groups
// with the rest of the server.
func NewSessionManager(registry *Registry, groups *GroupDirectory) *SessionManager {
	return &SessionManager{
		registry: registry,
		groups:   groups,
		byConn:   make(map[net.Conn]*Client),
		byName:   make(map[string]*Client),
	}
}

// Join reserves name for a freshly accepted connection and creates its
// client record. Fails with ErrInvalidName or ErrNameInUse without
// mutating any other state. frames must be the reader used to read the
// handshake name frame off conn.
func (sm *SessionManager) Join(name string, conn net.Conn, frames *proto.FrameReader, connID string) (*Client, error) {
	c := NewClient(name, conn, frames, connID)
	if err := sm.registry.ReserveClient(name, c); err != nil {
		return nil, err
	}
	sm.byConn[conn] = c
	sm.byName[name] = c
	return c, nil
}

// Leave purges c from every group it belongs to, releases its name, and
// drops it from both lookup tables. It does not close c.Conn; callers are
// responsible for closing the endpoint they accepted.
func (sm *SessionManager) Leave(c *Client) {
	sm.groups.PurgeClient(c)
	sm.registry.Release(c.Name)
	delete(sm.byConn, c.Conn)
	delete(sm.byName, c.Name)
}

// ByConn looks up the client owning conn, if still active.
func (sm *SessionManager) ByConn(conn net.Conn) (*Client, bool) {
	c, ok := sm.byConn[conn]
	return c, ok
}

// ByName looks up an online client by name.
func (sm *SessionManager) ByName(name string) (*Client, bool) {
	c, ok := sm.byName[name]
	return c, ok
}

// Active reports whether c is still the registered client for its name
// (guards against acting on a client that a concurrent dirty-leave already
// tore down earlier in the same event-loop iteration).
func (sm *SessionManager) Active(c *Client) bool {
	current, ok := sm.byName[c.Name]
	return ok && current == c
}

// Clients returns a snapshot of every online client, used for broadcasting
// the server-exit notification.
func (sm *SessionManager) Clients() []*Client {
	out := make([]*Client, 0, len(sm.byName))
	for _, c := range sm.byName {
		out = append(out, c)
	}
	return out
}

// Names returns the names of every online client.
func (sm *SessionManager) Names() []string {
	out := make([]string, 0, len(sm.byName))
	for name := range sm.byName {
		out = append(out, name)
	}
	return out
}
