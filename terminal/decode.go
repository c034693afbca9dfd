package terminal

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

const escByte = 0x1b

// Decode maps one raw chunk to exactly one event
// Order: escape table, single printable character, X10 mouse report
// Returns false for anything else; the caller drops the chunk
func Decode(chunk []byte) (Event, bool) {
	if len(chunk) == 0 {
		return Event{}, false
	}

	if k, ok := escapeTable[string(chunk)]; ok {
		return NewKeyEvent(k), true
	}

	if r, size := utf8.DecodeRune(chunk); size == len(chunk) && r != utf8.RuneError && unicode.IsPrint(r) {
		return NewKeyEvent(Key(string(r))), true
	}

	if p, ok := decodeMouse(chunk); ok {
		return NewPointerEvent(p), true
	}

	return Event{}, false
}

// DecodeAll decodes a chunk that may hold several coalesced keystrokes
// A chunk Decode accepts yields its single event. Otherwise the chunk is
// split left to right (mouse report, longest table match, printable rune);
// if any position fails to decode the whole chunk is dropped
func DecodeAll(chunk []byte) []Event {
	if ev, ok := Decode(chunk); ok {
		return []Event{ev}
	}
	if len(chunk) == 0 {
		return nil
	}

	var events []Event
	for i := 0; i < len(chunk); {
		ev, n := decodePrefix(chunk[i:])
		if n == 0 {
			return nil
		}
		events = append(events, ev)
		i += n
	}
	return events
}

// decodePrefix decodes the leading event of b, returning bytes consumed (0 on failure)
func decodePrefix(b []byte) (Event, int) {
	if bytes.HasPrefix(b, mousePrefix) && len(b) >= mouseReportLen {
		if p, ok := decodeMouse(b[:mouseReportLen]); ok {
			return NewPointerEvent(p), mouseReportLen
		}
	}

	n := maxSequenceLen
	if n > len(b) {
		n = len(b)
	}
	for ; n > 0; n-- {
		k, ok := escapeTable[string(b[:n])]
		if !ok {
			continue
		}
		if !splittable(b, n) {
			return Event{}, 0
		}
		return NewKeyEvent(k), n
	}

	if b[0] == escByte {
		return Event{}, 0
	}
	r, size := utf8.DecodeRune(b)
	if r == utf8.RuneError || !unicode.IsPrint(r) {
		return Event{}, 0
	}
	return NewKeyEvent(Key(string(r))), size
}

// splittable reports whether the table match b[:n] may end an event
// A lone ESC splits off only before another ESC or at the end. ESC O and ESC [
// (Alt-O and the CSI introducer) followed by more bytes start a sequence the
// table does not know, so the chunk is dropped instead of typed as text
func splittable(b []byte, n int) bool {
	if b[0] != escByte || n >= len(b) {
		return true
	}
	switch n {
	case 1:
		return b[1] == escByte
	case 2:
		return b[1] != 'O' && b[1] != '['
	}
	return true
}
