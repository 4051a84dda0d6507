// Package proto implements the line-framed wire protocol: a framing codec
// (newline-delimited payloads) plus the tagged request/response scheme
// layered on top of it.
package proto

import (
	"bufio"
	"errors"
	"io"
)

// Errors returned by FrameReader.ReadFrame.
var (
	// ErrPeerClosed means the stream hit EOF with no partial frame pending.
	ErrPeerClosed = errors.New("proto: peer closed connection")
	// ErrTruncated means EOF arrived in the middle of a frame.
	ErrTruncated = errors.New("proto: connection closed mid-frame")
)

// FrameReader reads newline-terminated payloads off a byte stream,
// buffering any bytes beyond the first frame in a single underlying read.
type FrameReader struct {
	r *bufio.Reader
}

// NewFrameReader wraps r for frame-at-a-time reading.
func NewFrameReader(r io.Reader) *FrameReader {
	return &FrameReader{r: bufio.NewReader(r)}
}

// ReadFrame returns the next frame with its trailing newline stripped.
func (fr *FrameReader) ReadFrame() (string, error) {
	line, err := fr.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if len(line) == 0 {
				return "", ErrPeerClosed
			}
			return "", ErrTruncated
		}
		return "", err
	}
	return line[:len(line)-1], nil
}

// ReadByte reads a single raw (unframed) byte: the handshake status byte
// or the client-exit acknowledgement.
func (fr *FrameReader) ReadByte() (byte, error) {
	return fr.r.ReadByte()
}

// WriteFrame writes payload followed by a single newline, retrying on
// short writes so the whole frame lands as one logical write.
func WriteFrame(w io.Writer, payload string) error {
	return writeFull(w, append([]byte(payload), '\n'))
}

// WriteRaw writes a single unframed byte, used by the handshake reply and
// the client-exit acknowledgement.
func WriteRaw(w io.Writer, b byte) error {
	return writeFull(w, []byte{b})
}

func writeFull(w io.Writer, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			return err
		}
		data = data[n:]
	}
	return nil
}
