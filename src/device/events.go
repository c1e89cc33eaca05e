package device

import (
	"switchboard/src/events"
)

// EventAction identifies requests to drive a switch.
const EventAction events.EventType = "device_action"

// Verb names the requested state change.
type Verb string

const (
	// VerbOn requests the on state.
	VerbOn Verb = "on"
	// VerbOff requests the off state.
	VerbOff Verb = "off"
)

// Valid reports whether the verb is one of the known values.
func (v Verb) Valid() bool {
	return v == VerbOn || v == VerbOff
}

// ActionEvent asks for a verb to be applied to a named switch. Events
// are immutable values; create one per broadcast and discard it.
type ActionEvent struct {
	Target string
	Verb   Verb
}

// Kind reports the event's type identity.
func (ActionEvent) Kind() events.EventType {
	return EventAction
}
