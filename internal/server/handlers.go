package server

import (
	"fmt"

	"github.com/vovakirdan/chatline/internal/core"
	"github.com/vovakirdan/chatline/internal/proto"
)

// handleCreateGroup implements the create-group command (§4.6.2). The
// creator always gets exactly one response frame; other listed members
// receive no notice of the creation.
func (s *Server) handleCreateGroup(creator *core.Client, body string) {
	groupName, members, ok := proto.ParseCreateGroup(body)
	if !ok {
		s.reply(creator, proto.TagCreateGroup, fmt.Sprintf(`ERROR: failed to create group "%s".`, groupName))
		return
	}

	if _, err := s.groups.Create(groupName, creator, members); err != nil {
		line := fmt.Sprintf(`ERROR: failed to create group "%s".`, groupName)
		s.reply(creator, proto.TagCreateGroup, line)
		fmt.Println(line)
		s.log.Info().Str("client", creator.Name).Str("group", groupName).Err(err).Msg(line)
		return
	}

	line := fmt.Sprintf(`Group "%s" was created successfully.`, groupName)
	s.reply(creator, proto.TagCreateGroup, line)
	fmt.Println(line)
	s.log.Info().Str("client", creator.Name).Str("group", groupName).Msg(line)
}

// handleSend implements the send command (§4.6.2): unicast to a client,
// multicast to a group's other members, or reject with the standard error.
func (s *Server) handleSend(sender *core.Client, body string) {
	dest, text, ok := proto.ParseSend(body)
	if !ok {
		s.reply(sender, proto.TagSend, "ERROR: failed to send.")
		return
	}

	if dest == sender.Name {
		s.reply(sender, proto.TagSend, "ERROR: failed to send.")
		return
	}

	relayed := proto.FormatRelayed(sender.Name, text)

	if recipient, ok := s.sessions.ByName(dest); ok {
		s.deliver(recipient, relayed)
		s.ackSend(sender, dest, text)
		return
	}

	if group, ok := s.groups.Lookup(dest); ok {
		if !group.Has(sender) {
			s.reply(sender, proto.TagSend, "ERROR: failed to send.")
			return
		}
		for _, member := range group.Members() {
			if member == sender {
				continue
			}
			s.deliver(member, relayed)
		}
		s.ackSend(sender, dest, text)
		return
	}

	s.reply(sender, proto.TagSend, "ERROR: failed to send.")
}

func (s *Server) ackSend(sender *core.Client, dest, text string) {
	s.reply(sender, proto.TagSend, "Sent successfully.")
	line := fmt.Sprintf(`%s: "%s" was sent successfully to %s.`, sender.Name, text, dest)
	fmt.Println(line)
	s.log.Info().Str("client", sender.Name).Str("dest", dest).Msg(line)
}

// deliver writes one untagged relayed frame to recipient. A write failure
// means recipient's stream is broken; that client is torn down the same
// way a read failure would be (§4.5 dirty leave), but the fan-out
// continues to any remaining recipients and the sender's own ack is
// unaffected.
func (s *Server) deliver(recipient *core.Client, body string) {
	if err := s.writeFrameTo(recipient, body); err != nil {
		s.leaveDirty(recipient, err)
	}
}

// handleWho implements the who command (§4.6.2).
func (s *Server) handleWho(requester *core.Client) {
	names := s.sessions.Names()
	s.reply(requester, proto.TagWho, proto.FormatWho(names))
	line := requester.Name + ": Requests the currently connected client names."
	fmt.Println(line)
	s.log.Info().Str("client", requester.Name).Msg(line)
}

// reply writes exactly one tagged response frame back to c.
func (s *Server) reply(c *core.Client, tag proto.Tag, body string) {
	_ = s.writeFrameTo(c, proto.EncodeResponse(tag, body))
}

// leaveClean implements the client-exit command (§4.5 Leave, clean path):
// purge groups, release the name, acknowledge, announce, close.
func (s *Server) leaveClean(c *core.Client) {
	s.sessions.Leave(c)
	_ = proto.WriteRaw(c.Conn, proto.ClientExitAck)
	s.announce(c.Name + ": Unregistered successfully.")
	c.Conn.Close()
}

// leaveDirty implements §4.5 Leave, dirty path: triggered by any I/O error
// or EOF on a client stream. No acknowledgement byte is written.
func (s *Server) leaveDirty(c *core.Client, cause error) {
	if !s.sessions.Active(c) {
		return
	}
	s.sessions.Leave(c)
	s.announce(fmt.Sprintf("%s: Connection lost (%v).", c.Name, cause))
	c.Conn.Close()
}
