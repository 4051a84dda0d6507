package server

import (
	"fmt"

	"github.com/vovakirdan/chatline/internal/proto"
)

// handleOperatorLine processes one line read from the operator console
// (§4.6.1). The only recognized command is the exact string EXIT; every
// other line is silently ignored. Returns true when the server should
// shut down.
func (s *Server) handleOperatorLine(line string) bool {
	if line != "EXIT" {
		return false
	}
	s.shutdown()
	return true
}

// shutdown notifies every connected client, closes every stream, then the
// listener, and prints the final status line with no trailing newline
// (preserved for bit-compat with the original wire contract, §6).
func (s *Server) shutdown() {
	close(s.done)

	for _, c := range s.sessions.Clients() {
		_ = proto.WriteFrame(c.Conn, string(proto.TagServerExit))
		c.Conn.Close()
	}

	if s.listener != nil {
		s.listener.Close()
	}

	fmt.Print("EXIT command is typed: server is shutting down")
}
