package terminal

import (
	"unicode"
	"unicode/utf8"
)

// Key is a semantic key name
// Printable characters are their own name ("a", "é"); named keys use the spellings below
type Key string

// Control keys
const (
	KeyNone          Key = ""
	KeyEsc           Key = "Esc"
	KeyEnter         Key = "Enter"
	KeyTab           Key = "Tab"
	KeyShiftTab      Key = "Shift-Tab"
	KeySpace         Key = "Space"
	KeyBackspace     Key = "Backspace"
	KeyCtrlBackspace Key = "Ctrl-Backspace"
	KeyAltBackspace  Key = "Alt-Backspace"
	KeyDelete        Key = "Delete"
	KeyCtrlDelete    Key = "Ctrl-Delete"
	KeyShiftDelete   Key = "Shift-Delete"
	KeyAltDelete     Key = "Alt-Delete"
	KeyInsert        Key = "Insert"

	// Kill is appended by the listener, never decoded from input
	KeyKill Key = "Kill"
)

// Navigation
const (
	KeyUp        Key = "Up"
	KeyDown      Key = "Down"
	KeyLeft      Key = "Left"
	KeyRight     Key = "Right"
	KeyCtrlUp    Key = "Ctrl-Up"
	KeyCtrlDown  Key = "Ctrl-Down"
	KeyCtrlLeft  Key = "Ctrl-Left"
	KeyCtrlRight Key = "Ctrl-Right"
	KeyHome      Key = "Home"
	KeyEnd       Key = "End"
	KeyCtrlHome  Key = "Ctrl-Home"
	KeyCtrlEnd   Key = "Ctrl-End"
	KeyPageUp    Key = "PageUp"
	KeyPageDown  Key = "PageDown"
)

// Ctrl combinations with editor bindings
const (
	KeyCtrlC Key = "Ctrl-c"
	KeyCtrlY Key = "Ctrl-y"
	KeyCtrlZ Key = "Ctrl-z"
)

// Printable reports whether k names a single printable character
func (k Key) Printable() bool {
	r, size := utf8.DecodeRuneInString(string(k))
	return size > 0 && size == len(k) && r != utf8.RuneError && unicode.IsPrint(r)
}

// Rune returns the character for printable keys, Space included
func (k Key) Rune() (rune, bool) {
	if k == KeySpace {
		return ' ', true
	}
	if !k.Printable() {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(string(k))
	return r, true
}

func (k Key) String() string {
	if k == KeyNone {
		return "None"
	}
	return string(k)
}
