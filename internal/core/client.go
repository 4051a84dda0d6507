package core

import (
	"net"

	"github.com/vovakirdan/chatline/internal/proto"
)

// Client is a chat participant as seen by the core layer: a fixed name,
// its transport endpoint, and the per-connection pending-read buffer.
type Client struct {
	Name   string
	Conn   net.Conn
	Frames *proto.FrameReader

	// ConnID is a correlation handle for logging, assigned at accept time
	// before the name handshake completes. It is never sent on the wire.
	ConnID string

	// Groups is the set of group names this client currently belongs to,
	// kept in lock-step by GroupDirectory so client teardown can purge
	// membership without scanning every group.
	Groups map[string]struct{}
}

// NewClient constructs a client bound to an already-accepted connection.
// frames must be the same FrameReader the caller used to read the
// handshake name frame, so any bytes the client pipelined right behind it
// are not stranded in a second, freshly-allocated buffer.
func NewClient(name string, conn net.Conn, frames *proto.FrameReader, connID string) *Client {
	return &Client{
		Name:   name,
		Conn:   conn,
		Frames: frames,
		ConnID: connID,
		Groups: make(map[string]struct{}),
	}
}
