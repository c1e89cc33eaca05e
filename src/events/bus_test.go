package events_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"switchboard/src/events"
)

type noteEvent struct {
	text string
}

func (noteEvent) Kind() events.EventType { return "note" }

type otherEvent struct{}

func (otherEvent) Kind() events.EventType { return "other" }

type recordingHandler struct {
	name     string
	kind     events.EventType
	received []events.Event
	order    *[]string
	err      error
}

func (h *recordingHandler) EventType() events.EventType { return h.kind }

func (h *recordingHandler) Handle(evt events.Event) error {
	h.received = append(h.received, evt)
	if h.order != nil {
		*h.order = append(*h.order, h.name)
	}
	return h.err
}

func TestBroadcastWithoutHandlers(t *testing.T) {
	bus := events.NewBus()
	err := bus.Broadcast(noteEvent{text: "hello"})
	require.ErrorIs(t, err, events.ErrNoHandlers)

	// A handler for a different kind must not change the outcome.
	other := &recordingHandler{name: "other", kind: "other"}
	bus.Mediate(other)
	err = bus.Broadcast(noteEvent{text: "hello"})
	require.ErrorIs(t, err, events.ErrNoHandlers)
	assert.Empty(t, other.received)
}

func TestBroadcastRegistrationOrder(t *testing.T) {
	bus := events.NewBus()
	var order []string
	first := &recordingHandler{name: "first", kind: "note", order: &order}
	second := &recordingHandler{name: "second", kind: "note", order: &order}
	third := &recordingHandler{name: "third", kind: "note", order: &order}
	bus.Mediate(first)
	bus.Mediate(second)
	bus.Mediate(third)

	require.NoError(t, bus.Broadcast(noteEvent{text: "once"}))
	assert.Equal(t, []string{"first", "second", "third"}, order)
	for _, h := range []*recordingHandler{first, second, third} {
		require.Len(t, h.received, 1)
		assert.Equal(t, noteEvent{text: "once"}, h.received[0])
	}
}

func TestBroadcastRoutesByKind(t *testing.T) {
	bus := events.NewBus()
	notes := &recordingHandler{name: "notes", kind: "note"}
	others := &recordingHandler{name: "others", kind: "other"}
	bus.Mediate(notes)
	bus.Mediate(others)

	require.NoError(t, bus.Broadcast(noteEvent{text: "a"}))
	require.NoError(t, bus.Broadcast(otherEvent{}))

	assert.Len(t, notes.received, 1)
	assert.Len(t, others.received, 1)
}

func TestBroadcastSameHandlerTwice(t *testing.T) {
	bus := events.NewBus()
	h := &recordingHandler{name: "dup", kind: "note"}
	bus.Mediate(h)
	bus.Mediate(h)

	require.NoError(t, bus.Broadcast(noteEvent{}))
	assert.Len(t, h.received, 2)
	assert.Equal(t, 2, bus.HandlerCount("note"))
}

func TestUnmediate(t *testing.T) {
	bus := events.NewBus()
	keep := &recordingHandler{name: "keep", kind: "note"}
	drop := &recordingHandler{name: "drop", kind: "note"}
	bus.Mediate(keep)
	id := bus.Mediate(drop)

	require.True(t, bus.Unmediate(id))
	require.False(t, bus.Unmediate(id))
	require.False(t, bus.Unmediate("bogus"))

	require.NoError(t, bus.Broadcast(noteEvent{}))
	assert.Len(t, keep.received, 1)
	assert.Empty(t, drop.received)
}

func TestUnmediateLastHandlerRestoresUnhandled(t *testing.T) {
	bus := events.NewBus()
	id := bus.Mediate(&recordingHandler{name: "only", kind: "note"})
	require.True(t, bus.Unmediate(id))
	require.ErrorIs(t, bus.Broadcast(noteEvent{}), events.ErrNoHandlers)
}

func TestHandlerErrorAbortsDispatch(t *testing.T) {
	bus := events.NewBus()
	boom := errors.New("boom")
	var order []string
	bus.Mediate(&recordingHandler{name: "ok", kind: "note", order: &order})
	bus.Mediate(&recordingHandler{name: "fail", kind: "note", order: &order, err: boom})
	late := &recordingHandler{name: "late", kind: "note", order: &order}
	bus.Mediate(late)

	err := bus.Broadcast(noteEvent{})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"ok", "fail"}, order)
	assert.Empty(t, late.received)
}
