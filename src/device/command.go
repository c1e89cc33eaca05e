package device

import (
	"switchboard/src/registry"
)

// TurnOnCommand switches its bound target on. The binding is a handle
// into the registry arena; the exclusive mutable view is acquired only
// for the duration of Execute.
type TurnOnCommand struct {
	reg    *registry.Registry[*Switch]
	target string
}

// NewTurnOnCommand binds an on command to a registry entry.
func NewTurnOnCommand(reg *registry.Registry[*Switch], target string) *TurnOnCommand {
	return &TurnOnCommand{reg: reg, target: target}
}

// Execute acquires the target exclusively and switches it on.
func (c *TurnOnCommand) Execute() error {
	return c.reg.WithExclusive(c.target, func(s *Switch) error {
		s.On()
		return nil
	})
}

// TurnOffCommand switches its bound target off.
type TurnOffCommand struct {
	reg    *registry.Registry[*Switch]
	target string
}

// NewTurnOffCommand binds an off command to a registry entry.
func NewTurnOffCommand(reg *registry.Registry[*Switch], target string) *TurnOffCommand {
	return &TurnOffCommand{reg: reg, target: target}
}

// Execute acquires the target exclusively and switches it off.
func (c *TurnOffCommand) Execute() error {
	return c.reg.WithExclusive(c.target, func(s *Switch) error {
		s.Off()
		return nil
	})
}
