package input

import (
	"slices"
	"unicode"
)

// Buffer holds the text of the line being edited and the cursor
// position, both in runes.
type Buffer struct {
	runes []rune
	pos   int
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{runes: []rune{}}
}

// NewBufferWithText creates a buffer with initial text and the cursor
// at the end.
func NewBufferWithText(text string) *Buffer {
	runes := []rune(text)
	return &Buffer{runes: runes, pos: len(runes)}
}

// Text returns the buffer content.
func (b *Buffer) Text() string {
	return string(b.runes)
}

// Len returns the content length in runes.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Pos returns the cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// SetText replaces the content and moves the cursor to the end.
func (b *Buffer) SetText(text string) {
	b.runes = []rune(text)
	b.pos = len(b.runes)
}

// Clear empties the buffer.
func (b *Buffer) Clear() {
	b.runes = b.runes[:0]
	b.pos = 0
}

// SetPos moves the cursor, clamped to the content.
func (b *Buffer) SetPos(pos int) {
	b.pos = min(max(pos, 0), len(b.runes))
}

// CursorStart moves the cursor to the start of the line.
func (b *Buffer) CursorStart() {
	b.pos = 0
}

// CursorEnd moves the cursor to the end of the line.
func (b *Buffer) CursorEnd() {
	b.pos = len(b.runes)
}

// Insert inserts text at the cursor and moves the cursor past it.
func (b *Buffer) Insert(text string) {
	b.InsertRunes([]rune(text))
}

// InsertRunes inserts runes at the cursor and moves the cursor past
// them.
func (b *Buffer) InsertRunes(runes []rune) {
	if len(runes) == 0 {
		return
	}
	b.runes = slices.Insert(b.runes, b.pos, runes...)
	b.pos += len(runes)
}

// DeleteCharBackward deletes the rune before the cursor. It reports
// whether anything was deleted.
func (b *Buffer) DeleteCharBackward() bool {
	if b.pos == 0 {
		return false
	}
	b.runes = slices.Delete(b.runes, b.pos-1, b.pos)
	b.pos--
	return true
}

// DeleteCharForward deletes the rune at the cursor. It reports whether
// anything was deleted.
func (b *Buffer) DeleteCharForward() bool {
	if b.pos >= len(b.runes) {
		return false
	}
	b.runes = slices.Delete(b.runes, b.pos, b.pos+1)
	return true
}

// DeleteBeforeCursor deletes everything before the cursor.
func (b *Buffer) DeleteBeforeCursor() {
	b.runes = slices.Delete(b.runes, 0, b.pos)
	b.pos = 0
}

// DeleteAfterCursor deletes everything after the cursor.
func (b *Buffer) DeleteAfterCursor() {
	b.runes = b.runes[:b.pos]
}

// DeleteWordBackward deletes from the start of the previous word to the
// cursor.
func (b *Buffer) DeleteWordBackward() {
	if b.pos == 0 {
		return
	}
	end := b.pos
	b.WordBackward()
	b.runes = slices.Delete(b.runes, b.pos, end)
}

// DeleteWordForward deletes from the cursor to the end of the next
// word.
func (b *Buffer) DeleteWordForward() {
	if b.pos >= len(b.runes) {
		return
	}
	start := b.pos
	b.WordForward()
	b.runes = slices.Delete(b.runes, start, b.pos)
	b.pos = start
}

// WordBackward moves the cursor to the start of the previous word. A
// word is a run of non-whitespace runes.
func (b *Buffer) WordBackward() {
	i := b.pos - 1
	for i >= 0 && unicode.IsSpace(b.runes[i]) {
		i--
	}
	for i >= 0 && !unicode.IsSpace(b.runes[i]) {
		i--
	}
	b.pos = i + 1
}

// WordForward moves the cursor past the end of the next word.
func (b *Buffer) WordForward() {
	i := b.pos
	for i < len(b.runes) && unicode.IsSpace(b.runes[i]) {
		i++
	}
	for i < len(b.runes) && !unicode.IsSpace(b.runes[i]) {
		i++
	}
	b.pos = i
}

// TextBeforeCursor returns the text before the cursor.
func (b *Buffer) TextBeforeCursor() string {
	return string(b.runes[:b.pos])
}

// TextAfterCursor returns the text after the cursor.
func (b *Buffer) TextAfterCursor() string {
	return string(b.runes[b.pos:])
}
