package terminal

import "fmt"

// EventType distinguishes the two event streams
type EventType uint8

const (
	EventNone EventType = iota
	EventKey
	EventPointer
)

// Event is a decoded input event, Key or Pointer depending on Type
type Event struct {
	Type    EventType
	Key     Key
	Pointer PointerEvent
}

// NewKeyEvent wraps a key name
func NewKeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// NewPointerEvent wraps a mouse report
func NewPointerEvent(p PointerEvent) Event {
	return Event{Type: EventPointer, Pointer: p}
}

func (e Event) String() string {
	switch e.Type {
	case EventKey:
		return "Key(" + string(e.Key) + ")"
	case EventPointer:
		return fmt.Sprintf("%s(row=%d, col=%d)", e.Pointer.Action, e.Pointer.Row, e.Pointer.Col)
	default:
		return "None"
	}
}
