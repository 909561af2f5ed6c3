package securemem

import (
	"crypto/rand"
	"fmt"
)

// Buffer is a byte buffer that is overwritten with zeros when released.
// It is used for passwords, master entropy, derived keys and private key
// material. A Buffer must not be aliased across concurrent operations.
type Buffer struct {
	data []byte
}

// New allocates a zeroed buffer of n bytes.
func New(n int) *Buffer {
	return &Buffer{data: make([]byte, n)}
}

// FromBytes copies b into a new buffer. The caller's copy is not scrubbed;
// wiping it remains the caller's responsibility.
func FromBytes(b []byte) *Buffer {
	data := make([]byte, len(b))
	copy(data, b)
	return &Buffer{data: data}
}

// Random fills a new buffer of n bytes from crypto/rand.
func Random(n int) (*Buffer, error) {
	buf := New(n)
	if _, err := rand.Read(buf.data); err != nil {
		buf.Wipe()
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return buf, nil
}

// Bytes exposes the underlying bytes. The slice is owned by the buffer
// and becomes all-zero once Wipe is called; callers must not retain it.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Len returns the buffer length in bytes.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Wipe overwrites the buffer with zeros. It is safe to call more than
// once and on a nil buffer, so it can sit in a defer on every exit path.
func (b *Buffer) Wipe() {
	if b == nil {
		return
	}
	clear(b.data)
}

// Zero overwrites a raw byte slice in place. Helper for material that
// never made it into a Buffer.
func Zero(b []byte) {
	clear(b)
}
