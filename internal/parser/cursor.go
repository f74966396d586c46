package parser

import (
	"errors"
	"fmt"
)

// ErrEndOfInput is returned by every Cursor operation that runs out of input.
var ErrEndOfInput = errors.New("end of input")

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Cursor is a forward-only rune stream over the whole configuration text.
type Cursor struct {
	content []rune
	offset  int
	pos     Position
}

func NewCursor(content string) *Cursor {
	return &Cursor{
		content: []rune(content),
		pos:     Position{Line: 1, Column: 1},
	}
}

// Position is the location of the next rune.
func (c *Cursor) Position() Position {
	return c.pos
}

func (c *Cursor) AtEnd() bool {
	return c.offset >= len(c.content)
}

func (c *Cursor) Peek() (rune, error) {
	if c.AtEnd() {
		return 0, ErrEndOfInput
	}
	return c.content[c.offset], nil
}

func (c *Cursor) Next() (rune, error) {
	r, err := c.Peek()
	if err != nil {
		return 0, err
	}
	c.offset++
	if r == '\n' {
		c.pos.Line++
		c.pos.Column = 1
	} else {
		c.pos.Column++
	}
	return r, nil
}

// NextN consumes exactly n runes. Nothing is consumed when fewer remain.
func (c *Cursor) NextN(n int) (string, error) {
	if len(c.content)-c.offset < n {
		return "", ErrEndOfInput
	}
	out := make([]rune, 0, n)
	for i := 0; i < n; i++ {
		r, _ := c.Next()
		out = append(out, r)
	}
	return string(out), nil
}

// NextUntil consumes runes while stop returns false for the next rune. The
// rune that satisfies stop is left in the stream.
func (c *Cursor) NextUntil(stop func(rune) bool) (string, error) {
	var out []rune
	for {
		r, err := c.Peek()
		if err != nil {
			return "", err
		}
		if stop(r) {
			return string(out), nil
		}
		_, _ = c.Next()
		out = append(out, r)
	}
}
