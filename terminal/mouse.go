package terminal

// PointerAction is the kind of mouse report
type PointerAction uint8

const (
	PointerNone PointerAction = iota
	LeftClick
	LeftDrag
	RightClick
	ScrollUp
	ScrollDown
	MouseUp
	MiddleClick
	MiddleDrag
	RightDrag
)

// PointerEvent is a decoded mouse report, 0-indexed screen cell
type PointerEvent struct {
	Action PointerAction
	Row    int
	Col    int
}

// X10 report layout: ESC [ M Cb Cx Cy
const (
	mouseReportLen = 6
	mouseOffset    = 33
)

var mousePrefix = []byte("\x1b[M")

// mouseActions maps Cb (32 + button code) to an action
var mouseActions = map[byte]PointerAction{
	' ': LeftClick,
	'!': MiddleClick,
	'"': RightClick,
	'#': MouseUp,
	'@': LeftDrag,
	'A': MiddleDrag,
	'B': RightDrag,
	'`': ScrollUp,
	'a': ScrollDown,
}

// String returns human-readable action name
func (a PointerAction) String() string {
	switch a {
	case LeftClick:
		return "LeftClick"
	case LeftDrag:
		return "LeftDrag"
	case RightClick:
		return "RightClick"
	case ScrollUp:
		return "ScrollUp"
	case ScrollDown:
		return "ScrollDown"
	case MouseUp:
		return "MouseUp"
	case MiddleClick:
		return "MiddleClick"
	case MiddleDrag:
		return "MiddleDrag"
	case RightDrag:
		return "RightDrag"
	default:
		return "None"
	}
}

// decodeMouse parses a single X10 report
func decodeMouse(b []byte) (PointerEvent, bool) {
	if len(b) != mouseReportLen {
		return PointerEvent{}, false
	}
	if b[0] != mousePrefix[0] || b[1] != mousePrefix[1] || b[2] != mousePrefix[2] {
		return PointerEvent{}, false
	}
	action, ok := mouseActions[b[3]]
	if !ok {
		return PointerEvent{}, false
	}
	if b[4] < mouseOffset || b[5] < mouseOffset {
		return PointerEvent{}, false
	}
	return PointerEvent{
		Action: action,
		Row:    int(b[5]) - mouseOffset,
		Col:    int(b[4]) - mouseOffset,
	}, true
}
