package proto

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tag identifies the kind of a tagged frame. The wire form is a single
// ASCII digit; everything after it is tag-specific payload.
type Tag byte

const (
	TagCreateGroup Tag = '0'
	TagSend        Tag = '1'
	TagWho         Tag = '2'
	TagClientExit  Tag = '3'
	TagServerExit  Tag = '4'
)

// Handshake reply bytes, sent unframed immediately after the name frame.
const (
	HandshakeFailure byte = '0'
	HandshakeOK      byte = '1'
	HandshakeInUse   byte = '2'
)

// ClientExitAck is the single raw byte written back on a clean client-exit.
const ClientExitAck byte = '1'

// Request is a decoded tagged frame from a client.
type Request struct {
	Tag  Tag
	Body string
}

// DecodeRequest splits a raw frame into its tag and body. An empty frame
// has no tag and is reported via ok=false.
func DecodeRequest(frame string) (Request, bool) {
	if frame == "" {
		return Request{}, false
	}
	return Request{Tag: Tag(frame[0]), Body: frame[1:]}, true
}

// EncodeResponse prepends tag to body to form a tagged response frame.
func EncodeResponse(tag Tag, body string) string {
	var b strings.Builder
	b.WriteByte(byte(tag))
	b.WriteString(body)
	return b.String()
}

// ParseCreateGroup splits "<group-name> <m1>,<m2>,..." into the group name
// and the trimmed, non-empty member tokens.
func ParseCreateGroup(body string) (group string, members []string, ok bool) {
	group, rest, found := strings.Cut(body, " ")
	if !found || group == "" {
		return "", nil, false
	}
	for _, tok := range strings.Split(rest, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			members = append(members, tok)
		}
	}
	return group, members, true
}

// ParseSend splits "<dest-name> <message-text>" at the first whitespace;
// the remainder is literal text and may contain any character but '\n'.
func ParseSend(body string) (dest string, text string, ok bool) {
	i := strings.IndexFunc(body, unicode.IsSpace)
	if i <= 0 {
		return "", "", false
	}
	_, size := utf8.DecodeRuneInString(body[i:])
	return body[:i], body[i+size:], true
}

// FormatRelayed renders a message relayed from sender to its recipients:
// an untagged frame with no response wrapper (see §9 on the handshake and
// relay-tag asymmetry preserved by this wire protocol).
func FormatRelayed(sender, text string) string {
	return sender + ": " + text
}

// FormatWho renders the who response body: sorted names, comma-joined,
// terminated by a period. Callers prepend TagWho themselves.
func FormatWho(names []string) string {
	sorted := make([]string, len(names))
	copy(sorted, names)
	sort.Strings(sorted)
	return strings.Join(sorted, ",") + "."
}
