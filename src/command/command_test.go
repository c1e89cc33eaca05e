package command_test

import (
	"errors"
	"testing"

	"switchboard/src/command"
)

type countingCommand struct {
	runs int
	err  error
}

func (c *countingCommand) Execute() error {
	c.runs++
	return c.err
}

func TestInvokerExecutesHeldCommand(t *testing.T) {
	cmd := &countingCommand{}
	inv := command.NewInvoker(cmd)
	for i := 0; i < 3; i++ {
		if err := inv.Execute(); err != nil {
			t.Fatalf("execute failed: %v", err)
		}
	}
	if cmd.runs != 3 {
		t.Fatalf("command should be re-invocable, got %d runs", cmd.runs)
	}
}

func TestInvokerSetCommand(t *testing.T) {
	first := &countingCommand{}
	second := &countingCommand{}
	inv := command.NewInvoker(first)
	inv.SetCommand(second)
	if err := inv.Execute(); err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if first.runs != 0 || second.runs != 1 {
		t.Fatalf("only the replacement command should run")
	}
}

func TestInvokerPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	inv := command.NewInvoker(&countingCommand{err: boom})
	if err := inv.Execute(); !errors.Is(err, boom) {
		t.Fatalf("expected command error, got %v", err)
	}
}

func TestInvokerWithoutCommand(t *testing.T) {
	inv := command.NewInvoker(nil)
	if err := inv.Execute(); err != nil {
		t.Fatalf("empty invoker should be a no-op, got %v", err)
	}
}
