package command

// Command is a bound, re-invocable unit of work against one entity.
// The target and verb are fixed at construction; Execute may be called
// any number of times.
type Command interface {
	Execute() error
}

// Invoker holds a single command and triggers it on request. It is the
// remote-control side of the pattern: callers swap commands in and
// press the same button.
type Invoker struct {
	command Command
}

// NewInvoker builds an invoker around an initial command.
func NewInvoker(cmd Command) *Invoker {
	return &Invoker{command: cmd}
}

// SetCommand replaces the held command.
func (inv *Invoker) SetCommand(cmd Command) {
	inv.command = cmd
}

// Execute runs the held command. A nil command is a no-op.
func (inv *Invoker) Execute() error {
	if inv == nil || inv.command == nil {
		return nil
	}
	return inv.command.Execute()
}
