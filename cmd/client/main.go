// Command chatline-client is the passive terminal front-end described in
// spec.md §1: it reads stdin lines, frames them with a tag byte, writes
// them to the server, and prints server replies. It is specified only at
// its interface and carries none of the core session-layer engineering.
package main

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/chatline/internal/proto"
)

func main() {
	root := &cobra.Command{
		Use:   "chatline-client <clientName> <serverAddress> <port>",
		Short: "Connect to a chatline server",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClient(args[0], args[1], args[2])
		},
		SilenceUsage: true,
	}

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runClient(name, addr, port string) error {
	if !isAlphanumeric(name) {
		return fmt.Errorf("Usage: chatline-client clientName serverAddress serverPort")
	}
	if !isDottedDecimal(addr) || !isAllDigits(port) {
		return fmt.Errorf("Usage: chatline-client clientName serverAddress serverPort")
	}

	conn, err := net.Dial("tcp", addr+":"+port)
	if err != nil {
		fmt.Println("Failed to connect the server")
		os.Exit(1)
	}
	defer conn.Close()

	frames := proto.NewFrameReader(conn)
	if err := proto.WriteFrame(conn, name); err != nil {
		fmt.Println("Failed to connect the server")
		os.Exit(1)
	}

	status, err := frames.ReadByte()
	if err != nil {
		fmt.Println("Failed to connect the server")
		os.Exit(1)
	}
	switch status {
	case proto.HandshakeOK:
		fmt.Println("Connected Successfully.")
	case proto.HandshakeInUse:
		fmt.Println("Client name is already in use.")
		os.Exit(1)
	default:
		fmt.Println("Failed to connect the server")
		os.Exit(1)
	}

	done := make(chan struct{})
	go printServerReplies(frames, done)

	readUserCommands(conn)
	<-done
	return nil
}

// printServerReplies prints every frame the server sends until the stream
// closes: tagged responses have their tag stripped, relayed sends are
// printed verbatim (they carry no tag), and a server-exit notification
// ends the client.
func printServerReplies(frames *proto.FrameReader, done chan<- struct{}) {
	defer close(done)
	for {
		frame, err := frames.ReadFrame()
		if err != nil {
			return
		}
		req, ok := proto.DecodeRequest(frame)
		if ok && req.Tag == proto.TagServerExit {
			fmt.Println("Server is shutting down.")
			os.Exit(0)
		}
		if ok && looksTagged(req.Tag) {
			fmt.Println(req.Body)
			continue
		}
		fmt.Println(frame)
	}
}

func looksTagged(t proto.Tag) bool {
	switch t {
	case proto.TagCreateGroup, proto.TagSend, proto.TagWho:
		return true
	default:
		return false
	}
}

// readUserCommands translates a small set of human-typed commands into
// tagged frames: "create_group <name> <m1,m2,...>", "send <name> <text>",
// "who", and "exit".
func readUserCommands(conn net.Conn) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		var frame string
		switch {
		case line == "who":
			frame = string(proto.TagWho)
		case line == "exit":
			_ = proto.WriteFrame(conn, string(proto.TagClientExit))
			return
		case strings.HasPrefix(line, "create_group "):
			frame = proto.EncodeResponse(proto.TagCreateGroup, strings.TrimPrefix(line, "create_group "))
		case strings.HasPrefix(line, "send "):
			frame = proto.EncodeResponse(proto.TagSend, strings.TrimPrefix(line, "send "))
		default:
			fmt.Println("ERROR: Invalid input.")
			continue
		}
		if err := proto.WriteFrame(conn, frame); err != nil {
			return
		}
	}
}

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isDottedDecimal(s string) bool {
	for _, r := range s {
		if r != '.' && (r < '0' || r > '9') {
			return false
		}
	}
	return s != ""
}
