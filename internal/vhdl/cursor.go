package vhdl

import (
	"fmt"

	"fortio.org/safecast"
)

// cursor is a byte position in a source buffer.
type cursor struct {
	buf   []byte
	off   uint32
	limit uint32
}

func newCursor(buf []byte) cursor {
	limit, err := safecast.Conv[uint32](len(buf))
	if err != nil {
		panic(fmt.Errorf("source buffer overflow: %w", err))
	}
	return cursor{buf: buf, limit: limit}
}

func (c *cursor) eof() bool { return c.off >= c.limit }

// peek returns the current byte, or 0 at end of buffer.
func (c *cursor) peek() byte {
	if c.eof() {
		return 0
	}
	return c.buf[c.off]
}

// peekAt returns the byte n positions ahead, or 0 past the end.
func (c *cursor) peekAt(n uint32) byte {
	if c.off+n >= c.limit {
		return 0
	}
	return c.buf[c.off+n]
}

func (c *cursor) bump() byte {
	if c.eof() {
		return 0
	}
	b := c.buf[c.off]
	c.off++
	return b
}

// eat consumes the current byte if it is b.
func (c *cursor) eat(b byte) bool {
	if !c.eof() && c.buf[c.off] == b {
		c.off++
		return true
	}
	return false
}

func (c *cursor) pos() int { return int(c.off) }

func (c *cursor) spanFrom(start int) Span {
	return Span{Start: start, End: int(c.off)}
}

func (c *cursor) reset(off int) {
	v, err := safecast.Conv[uint32](off)
	if err != nil {
		panic(fmt.Errorf("cursor offset overflow: %w", err))
	}
	c.off = v
}
