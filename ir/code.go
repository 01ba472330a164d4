// Package ir defines the unified structural representation produced by the
// lowering engine: immutable source buffers, byte-exact provenance ranges,
// the type and parameter algebra, symbols with their kinds, files with
// symbol tables, projects, and the edit engine that rewrites buffers from
// byte-range replacements.
package ir

import (
	"fmt"
	"sort"
)

// Code is an immutable owned byte buffer of source text. It is shared by
// reference between a File, every Symbol lowered from it, and any edits
// over it; it is never mutated in place — applying edits produces a new
// Code.
type Code struct {
	Bytes []byte
}

// NewCode wraps source bytes in a Code buffer.
func NewCode(b []byte) *Code {
	return &Code{Bytes: b}
}

// String returns a lossy UTF-8 text view of the buffer.
func (c *Code) String() string {
	return string(c.Bytes)
}

// Substring is a half-open (start, end) byte range into a specific Code.
type Substring struct {
	Start int
	End   int
}

func (s Substring) String() string {
	return fmt.Sprintf("(%d, %d)", s.Start, s.End)
}

// Pos is a zero-based (row, column) position, derived from the grammar
// adapter. It is informational only; edit arithmetic uses byte offsets.
type Pos struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d, %d)", p.Row, p.Column)
}

// Range is the (start, end) position pair of a node.
type Range struct {
	Start Pos `json:"start"`
	End   Pos `json:"end"`
}

func (r Range) String() string {
	return fmt.Sprintf("(%s, %s)", r.Start, r.End)
}

// CodeEdit replaces the bytes in Substring with NewBytes. Applying it
// yields code[:start] + new_bytes + code[end:].
type CodeEdit struct {
	Substring Substring
	NewBytes  []byte
}

// Apply applies a single edit, producing a new Code.
func (e CodeEdit) Apply(code *Code) *Code {
	return NewCode(Splice(code.Bytes, []CodeEdit{e}))
}

// ApplyEdits applies a batch of edits to the buffer and returns a new Code.
// Edits are sorted in descending start-offset order before application, so
// each replacement leaves the offsets of all lower-offset edits valid in
// original-buffer coordinates. Overlapping edits in one batch are a caller
// error and are rejected.
func (c *Code) ApplyEdits(edits []CodeEdit) (*Code, error) {
	if len(edits) == 0 {
		return c, nil
	}
	sorted := sortEditsDescending(edits)
	for _, e := range sorted {
		if e.Substring.Start < 0 || e.Substring.End < e.Substring.Start || e.Substring.End > len(c.Bytes) {
			return nil, fmt.Errorf("edit range %s out of bounds for buffer of %d bytes", e.Substring, len(c.Bytes))
		}
	}
	for i := 1; i < len(sorted); i++ {
		// sorted descending: sorted[i] starts at or before sorted[i-1]
		if sorted[i].Substring.End > sorted[i-1].Substring.Start {
			return nil, fmt.Errorf("overlapping edits %s and %s", sorted[i].Substring, sorted[i-1].Substring)
		}
	}
	return NewCode(spliceSorted(c.Bytes, sorted)), nil
}

// Splice rewrites buf by applying each edit in descending start-offset
// order, returning a new byte slice. Edits whose range falls outside the
// buffer are skipped. This is the shared primitive behind both the edit
// engine and the expression rewriting done during lowering.
func Splice(buf []byte, edits []CodeEdit) []byte {
	return spliceSorted(buf, sortEditsDescending(edits))
}

func sortEditsDescending(edits []CodeEdit) []CodeEdit {
	sorted := make([]CodeEdit, len(edits))
	copy(sorted, edits)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Substring.Start > sorted[j].Substring.Start
	})
	return sorted
}

func spliceSorted(buf []byte, edits []CodeEdit) []byte {
	out := buf
	for _, e := range edits {
		start, end := e.Substring.Start, e.Substring.End
		if start < 0 || end < start || end > len(out) {
			continue
		}
		next := make([]byte, 0, len(out)-(end-start)+len(e.NewBytes))
		next = append(next, out[:start]...)
		next = append(next, e.NewBytes...)
		next = append(next, out[end:]...)
		out = next
	}
	return out
}
