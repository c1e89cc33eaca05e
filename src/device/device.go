package device

import (
	"switchboard/src/observer"
)

// Switch is a named binary-state entity. State changes notify every
// attached observer synchronously before the mutating call returns.
// Observer iteration follows map order; callers must not rely on a
// particular order across observers.
type Switch struct {
	name      string
	on        bool
	observers map[string]observer.Observer[bool]
}

// NewSwitch builds a switch in the off state.
func NewSwitch(name string) *Switch {
	return &Switch{
		name:      name,
		observers: map[string]observer.Observer[bool]{},
	}
}

// Name returns the switch identifier.
func (s *Switch) Name() string {
	return s.name
}

// IsOn reports the current state.
func (s *Switch) IsOn() bool {
	return s.on
}

// On sets the state to on and notifies observers.
func (s *Switch) On() {
	s.on = true
	s.notifyObservers()
}

// Off sets the state to off and notifies observers.
func (s *Switch) Off() {
	s.on = false
	s.notifyObservers()
}

// AttachObserver registers or replaces the observer under key.
func (s *Switch) AttachObserver(key string, obs observer.Observer[bool]) {
	s.observers[key] = obs
}

// DetachObserver removes the observer under key, reporting whether an
// entry existed.
func (s *Switch) DetachObserver(key string) bool {
	if _, ok := s.observers[key]; !ok {
		return false
	}
	delete(s.observers, key)
	return true
}

func (s *Switch) notifyObservers() {
	for _, obs := range s.observers {
		obs.SubjectUpdated(s.on)
	}
}

// StateObserver accumulates notifications from one switch.
type StateObserver struct {
	updates int
	last    bool
}

// NewStateObserver builds an empty state observer.
func NewStateObserver() *StateObserver {
	return &StateObserver{}
}

// SubjectUpdated records the new state.
func (o *StateObserver) SubjectUpdated(state bool) {
	o.last = state
	o.updates++
}

// UpdateCount reports how many notifications arrived.
func (o *StateObserver) UpdateCount() int {
	return o.updates
}

// LastState reports the most recently observed state.
func (o *StateObserver) LastState() bool {
	return o.last
}
