package terminal

// escapeSequence maps a raw byte string to its key name
type escapeSequence struct {
	seq string
	key Key
}

// xterm-256color sequences; exact matches only
var escapeSequences = []escapeSequence{
	// Control bytes
	{"\x1b", KeyEsc},
	{"\r", KeyEnter},
	{"\n", "Ctrl-j"},
	{"\t", KeyTab},
	{" ", KeySpace},
	{"\x7f", KeyBackspace},
	{"\x08", KeyCtrlBackspace},
	{"\x1b\x7f", KeyAltBackspace},
	{"\x00", "Ctrl-Space"},
	{"\x1c", "Ctrl-\\"},
	{"\x1d", "Ctrl-]"},
	{"\x1e", "Ctrl-^"},
	{"\x1f", "Ctrl-_"},
	{"\x1b[Z", KeyShiftTab},

	// Arrows, normal and application cursor mode
	{"\x1b[A", KeyUp},
	{"\x1b[B", KeyDown},
	{"\x1b[C", KeyRight},
	{"\x1b[D", KeyLeft},
	{"\x1bOA", KeyUp},
	{"\x1bOB", KeyDown},
	{"\x1bOC", KeyRight},
	{"\x1bOD", KeyLeft},

	// Home / End / editing block
	{"\x1b[H", KeyHome},
	{"\x1b[F", KeyEnd},
	{"\x1bOH", KeyHome},
	{"\x1bOF", KeyEnd},
	{"\x1b[1~", KeyHome},
	{"\x1b[4~", KeyEnd},
	{"\x1b[7~", KeyHome},
	{"\x1b[8~", KeyEnd},
	{"\x1b[1;5H", KeyCtrlHome},
	{"\x1b[1;5F", KeyCtrlEnd},
	{"\x1b[2~", KeyInsert},
	{"\x1b[3~", KeyDelete},
	{"\x1b[3;2~", KeyShiftDelete},
	{"\x1b[3;3~", KeyAltDelete},
	{"\x1b[3;5~", KeyCtrlDelete},
	{"\x1b[5~", KeyPageUp},
	{"\x1b[6~", KeyPageDown},

	// Function keys
	{"\x1bOP", "F1"},
	{"\x1bOQ", "F2"},
	{"\x1bOR", "F3"},
	{"\x1bOS", "F4"},
	{"\x1b[15~", "F5"},
	{"\x1b[17~", "F6"},
	{"\x1b[18~", "F7"},
	{"\x1b[19~", "F8"},
	{"\x1b[20~", "F9"},
	{"\x1b[21~", "F10"},
	{"\x1b[23~", "F11"},
	{"\x1b[24~", "F12"},
}

// modifier parameters for CSI 1;m X arrows
var arrowModifiers = []struct {
	param  byte
	prefix string
}{
	{'2', "Shift-"},
	{'3', "Alt-"},
	{'5', "Ctrl-"},
	{'6', "Ctrl-Shift-"},
}

var arrowFinals = []struct {
	final byte
	key   Key
}{
	{'A', KeyUp},
	{'B', KeyDown},
	{'C', KeyRight},
	{'D', KeyLeft},
}

// escapeTable is the exact-match lookup built from the sequence lists
var escapeTable = buildEscapeTable()

// maxSequenceLen bounds the longest-match scan in DecodeAll
var maxSequenceLen int

func buildEscapeTable() map[string]Key {
	m := make(map[string]Key, 160)
	for _, s := range escapeSequences {
		m[s.seq] = s.key
	}

	// Ctrl-a..Ctrl-z except bytes owned by Backspace, Tab, newline and Enter
	for b := byte(0x01); b <= 0x1a; b++ {
		switch b {
		case 0x08, 0x09, 0x0a, 0x0d:
			continue
		}
		m[string([]byte{b})] = Key("Ctrl-" + string(rune('a'+b-1)))
	}

	for _, mod := range arrowModifiers {
		for _, a := range arrowFinals {
			seq := string([]byte{0x1b, '[', '1', ';', mod.param, a.final})
			m[seq] = Key(mod.prefix + string(a.key))
		}
	}

	// Alt+letter arrives as ESC followed by the letter
	for r := 'a'; r <= 'z'; r++ {
		m["\x1b"+string(r)] = Key("Alt-" + string(r))
		upper := r - 'a' + 'A'
		if _, taken := m["\x1b"+string(upper)]; !taken {
			m["\x1b"+string(upper)] = Key("Alt-" + string(upper))
		}
	}

	for seq := range m {
		if len(seq) > maxSequenceLen {
			maxSequenceLen = len(seq)
		}
	}
	return m
}

// Sequences returns a copy of the escape table
func Sequences() map[string]Key {
	out := make(map[string]Key, len(escapeTable))
	for seq, k := range escapeTable {
		out[seq] = k
	}
	return out
}
