package terminal

import (
	"testing"
)

func TestDecodeEscapeTable(t *testing.T) {
	for seq, want := range Sequences() {
		ev, ok := Decode([]byte(seq))
		if !ok {
			t.Fatalf("Decode(%q) failed, want %q", seq, want)
		}
		if ev.Type != EventKey || ev.Key != want {
			t.Errorf("Decode(%q) = %v, want Key(%s)", seq, ev, want)
		}
	}
}

func TestDecodeNamedSequences(t *testing.T) {
	tests := []struct {
		in   string
		want Key
	}{
		{"\x1b", KeyEsc},
		{"\r", KeyEnter},
		{"\x7f", KeyBackspace},
		{"\x08", KeyCtrlBackspace},
		{"\x1b[3~", KeyDelete},
		{"\x1b[3;5~", KeyCtrlDelete},
		{"\x1b[A", KeyUp},
		{"\x1bOB", KeyDown},
		{"\x1b[1;5D", KeyCtrlLeft},
		{"\x1b[1;5C", KeyCtrlRight},
		{"\x1b[1;5A", KeyCtrlUp},
		{"\x1b[1;5B", KeyCtrlDown},
		{"\x1b[1;2A", "Shift-Up"},
		{"\x1a", KeyCtrlZ},
		{"\x19", KeyCtrlY},
		{"\x03", KeyCtrlC},
		{"\x01", "Ctrl-a"},
		{"\x1bx", "Alt-x"},
		{"\x1b[15~", "F5"},
		{" ", KeySpace},
	}

	for _, tt := range tests {
		ev, ok := Decode([]byte(tt.in))
		if !ok || ev.Key != tt.want {
			t.Errorf("Decode(%q) = %v, %v; want %s", tt.in, ev, ok, tt.want)
		}
	}
}

func TestDecodePrintableASCII(t *testing.T) {
	for b := byte(0x21); b < 0x7f; b++ {
		ev, ok := Decode([]byte{b})
		if !ok {
			t.Fatalf("Decode(%q) failed", b)
		}
		if ev.Key != Key(string(rune(b))) {
			t.Errorf("Decode(%q) = %v", b, ev)
		}
	}
}

func TestDecodeUnicodeRune(t *testing.T) {
	ev, ok := Decode([]byte("é"))
	if !ok || ev.Key != "é" {
		t.Fatalf("Decode(é) = %v, %v", ev, ok)
	}
	if _, ok := Decode([]byte("ab")); ok {
		t.Error("two printable characters should not decode as one event")
	}
}

func TestDecodeMouse(t *testing.T) {
	actions := map[byte]PointerAction{
		32: LeftClick,
		33: MiddleClick,
		34: RightClick,
		35: MouseUp,
		64: LeftDrag,
		65: MiddleDrag,
		66: RightDrag,
		96: ScrollUp,
		97: ScrollDown,
	}

	for cb, want := range actions {
		for _, pos := range [][2]byte{{33, 33}, {40, 50}, {200, 120}} {
			report := []byte{0x1b, '[', 'M', cb, pos[0], pos[1]}
			ev, ok := Decode(report)
			if !ok {
				t.Fatalf("Decode(%q) failed", report)
			}
			if ev.Type != EventPointer {
				t.Fatalf("Decode(%q) type = %v", report, ev.Type)
			}
			p := ev.Pointer
			if p.Action != want || p.Row != int(pos[1])-33 || p.Col != int(pos[0])-33 {
				t.Errorf("Decode(%q) = %+v, want %s row=%d col=%d", report, p, want, pos[1]-33, pos[0]-33)
			}
		}
	}
}

func TestDecodeMouseRejects(t *testing.T) {
	bad := [][]byte{
		{0x1b, '[', 'M', 'z', 40, 40},     // unknown action
		{0x1b, '[', 'M', ' ', 40},         // short
		{0x1b, '[', 'M', ' ', 40, 40, 40}, // long
		{0x1b, '[', 'N', ' ', 40, 40},     // wrong prefix
		{0x1b, '[', 'M', ' ', 10, 40},     // below offset
		{},
		{0x1b, '[', '9', '9', '~'},
		{0x02, 0x1b, 0x00},
	}
	for _, b := range bad {
		if ev, ok := Decode(b); ok {
			t.Errorf("Decode(%q) = %v, want failure", b, ev)
		}
	}
}

func TestDecodeAll(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Event
	}{
		{"single", "\x1b[A", []Event{NewKeyEvent(KeyUp)}},
		{"escapes", "\x1b\x1b\x1b", []Event{NewKeyEvent(KeyEsc), NewKeyEvent(KeyEsc), NewKeyEvent(KeyEsc)}},
		{"paste", "hi!", []Event{NewKeyEvent("h"), NewKeyEvent("i"), NewKeyEvent("!")}},
		{"text and enter", "a\rb", []Event{NewKeyEvent("a"), NewKeyEvent(KeyEnter), NewKeyEvent("b")}},
		{"arrows", "\x1b[A\x1b[B", []Event{NewKeyEvent(KeyUp), NewKeyEvent(KeyDown)}},
		{"drag burst", "\x1b[M@!!\x1b[M@\"!", []Event{
			NewPointerEvent(PointerEvent{Action: LeftDrag, Row: 0, Col: 0}),
			NewPointerEvent(PointerEvent{Action: LeftDrag, Row: 0, Col: 1}),
		}},
		{"unknown csi", "\x1b[99~", nil},
		{"keypad enter", "\x1bOM", nil},
		{"keypad digits", "\x1bOj\x1bOp", nil},
		{"alt letter then text", "\x1bxy", []Event{NewKeyEvent("Alt-x"), NewKeyEvent("y")}},
		{"alt-O at end", "a\x1bO", []Event{NewKeyEvent("a"), NewKeyEvent("Alt-O")}},
		{"empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeAll([]byte(tt.in))
			if len(got) != len(tt.want) {
				t.Fatalf("DecodeAll(%q) = %v, want %v", tt.in, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestKeyRune(t *testing.T) {
	if r, ok := Key("x").Rune(); !ok || r != 'x' {
		t.Errorf("Key(x).Rune() = %q, %v", r, ok)
	}
	if r, ok := KeySpace.Rune(); !ok || r != ' ' {
		t.Errorf("Space.Rune() = %q, %v", r, ok)
	}
	if _, ok := KeyEnter.Rune(); ok {
		t.Error("Enter should not have a rune")
	}
}
