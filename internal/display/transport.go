// Package display paints the whole game onto a remote character terminal.
// The terminal is a dumb byte sink: the Screen renderer here owns every line
// and column, and a Transport delivers the resulting byte stream in strict
// call order.
package display

import (
	"bytes"
	"io"
	"os"

	"github.com/muesli/termenv"
)

// Transport is the strictly ordered byte sink behind the terminal. Both
// calls block until the transport is ready for the next byte; there is no
// buffering or backpressure beyond that.
type Transport interface {
	Send(s string) error
	SendChar(c byte) error
}

// WriterTransport adapts any io.Writer into a Transport
type WriterTransport struct {
	w io.Writer
}

// NewWriterTransport wraps a writer
func NewWriterTransport(w io.Writer) *WriterTransport {
	return &WriterTransport{w: w}
}

// Send writes the string
func (t *WriterTransport) Send(s string) error {
	_, err := io.WriteString(t.w, s)
	return err
}

// SendChar writes a single byte
func (t *WriterTransport) SendChar(c byte) error {
	_, err := t.w.Write([]byte{c})
	return err
}

// NewLocalTransport paints onto the attached terminal. The cursor is hidden
// the way the reference rig's serial terminal ran; RestoreLocal undoes it.
func NewLocalTransport() *WriterTransport {
	termenv.DefaultOutput().HideCursor()
	return NewWriterTransport(os.Stdout)
}

// RestoreLocal re-shows the cursor on the attached terminal
func RestoreLocal() {
	termenv.DefaultOutput().ShowCursor()
}

// Buffer is an in-memory transport for tests. It records the exact byte
// stream the screen produced.
type Buffer struct {
	buf bytes.Buffer
}

// Send appends the string to the buffer
func (b *Buffer) Send(s string) error {
	b.buf.WriteString(s)
	return nil
}

// SendChar appends one byte to the buffer
func (b *Buffer) SendChar(c byte) error {
	b.buf.WriteByte(c)
	return nil
}

// String returns everything sent so far
func (b *Buffer) String() string {
	return b.buf.String()
}

// Lines splits the stream into lines
func (b *Buffer) Lines() []string {
	s := b.buf.String()
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}

// Reset discards the recorded stream
func (b *Buffer) Reset() {
	b.buf.Reset()
}
