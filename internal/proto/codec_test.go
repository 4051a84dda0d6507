package proto

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestFrameReaderSplitsMultipleFramesFromOneRead(t *testing.T) {
	fr := NewFrameReader(strings.NewReader("hello\nworld\n"))

	first, err := fr.ReadFrame()
	if err != nil || first != "hello" {
		t.Fatalf("first frame = %q, err = %v", first, err)
	}

	second, err := fr.ReadFrame()
	if err != nil || second != "world" {
		t.Fatalf("second frame = %q, err = %v", second, err)
	}
}

func TestFrameReaderPeerClosedOnCleanEOF(t *testing.T) {
	fr := NewFrameReader(strings.NewReader(""))

	_, err := fr.ReadFrame()
	if !errors.Is(err, ErrPeerClosed) {
		t.Fatalf("expected ErrPeerClosed, got %v", err)
	}
}

func TestFrameReaderTruncatedOnPartialFrame(t *testing.T) {
	fr := NewFrameReader(strings.NewReader("partial-no-newline"))

	_, err := fr.ReadFrame()
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("expected ErrTruncated, got %v", err)
	}
}

func TestFrameReaderPropagatesUnderlyingError(t *testing.T) {
	boom := errors.New("boom")
	fr := NewFrameReader(&erroringReader{err: boom})

	_, err := fr.ReadFrame()
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped underlying error, got %v", err)
	}
}

type erroringReader struct{ err error }

func (e *erroringReader) Read([]byte) (int, error) { return 0, e.err }

func TestWriteFrameAppendsExactlyOneNewline(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, "payload"); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if buf.String() != "payload\n" {
		t.Fatalf("got %q", buf.String())
	}
}

func TestWriteFrameRetriesShortWrites(t *testing.T) {
	sw := &shortWriter{max: 3}
	if err := WriteFrame(sw, "hello world"); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if sw.buf.String() != "hello world\n" {
		t.Fatalf("got %q", sw.buf.String())
	}
}

type shortWriter struct {
	buf bytes.Buffer
	max int
}

func (s *shortWriter) Write(p []byte) (int, error) {
	if len(p) > s.max {
		p = p[:s.max]
	}
	return s.buf.Write(p)
}

func TestFrameReaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payloads := []string{"0team bob,carol", "1bob hello world", "2", "3"}
	for _, p := range payloads {
		if err := WriteFrame(&buf, p); err != nil {
			t.Fatalf("WriteFrame(%q): %v", p, err)
		}
	}

	fr := NewFrameReader(&buf)
	for _, want := range payloads {
		got, err := fr.ReadFrame()
		if err != nil {
			t.Fatalf("ReadFrame: %v", err)
		}
		if got != want {
			t.Fatalf("got %q, want %q", got, want)
		}
	}
	if _, err := fr.ReadFrame(); !errors.Is(err, ErrPeerClosed) && !errors.Is(err, io.EOF) {
		t.Fatalf("expected clean end of stream, got %v", err)
	}
}
