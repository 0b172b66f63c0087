// Package buttons turns physical key presses into navigation events for the
// overlay: focus movement, number adjustment, activation, reset and exit.
package buttons

import "context"

type Event string

const (
	Up     Event = "up"
	Down   Event = "down"
	Left   Event = "left"
	Right  Event = "right"
	Select Event = "select"
	Reset  Event = "reset"
	Exit   Event = "exit"
)

// ParseEvent accepts the event names used by the HTTP input endpoint.
func ParseEvent(s string) (Event, bool) {
	switch e := Event(s); e {
	case Up, Down, Left, Right, Select, Reset, Exit:
		return e, true
	}
	return "", false
}

type Buttons interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type NoopButtons struct{ ch chan Event }

func NewNoopButtons() *NoopButtons { return &NoopButtons{ch: make(chan Event)} }

func (n *NoopButtons) Start(ctx context.Context) error { return nil }
func (n *NoopButtons) Stop() error                     { close(n.ch); return nil }
func (n *NoopButtons) Events() <-chan Event            { return n.ch }

// Linux input-event-codes.h
const (
	evKey = 0x01

	keyEsc   = 1
	keyTab   = 15
	keyEnter = 28
	keySpace = 57
	keyF4    = 62
	keyF5    = 63
	keyUp    = 103
	keyLeft  = 105
	keyRight = 106
	keyDown  = 108
)

var keyEvents = map[uint16]Event{
	keyUp:    Up,
	keyDown:  Down,
	keyTab:   Down,
	keyLeft:  Left,
	keyRight: Right,
	keyEnter: Select,
	keySpace: Select,
	keyF5:    Reset,
	keyF4:    Exit,
	keyEsc:   Exit,
}

// keyPress maps one input_event to a button event. Only presses and
// autorepeats of known keys count.
func keyPress(typ, code uint16, value int32) (Event, bool) {
	if typ != evKey || (value != 1 && value != 2) {
		return "", false
	}
	e, ok := keyEvents[code]
	if ok && value == 2 && (e == Exit || e == Reset) {
		return "", false
	}
	return e, ok
}
