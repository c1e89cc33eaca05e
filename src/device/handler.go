package device

import (
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"switchboard/src/command"
	"switchboard/src/events"
	"switchboard/src/registry"
)

// Outcome names what a dispatch did inside the handler. The bus never
// sees these; they exist so callers and tests can tell "ran and
// mutated" apart from "ran and did nothing".
type Outcome int

const (
	// OutcomeNone means the handler has not run yet.
	OutcomeNone Outcome = iota
	// OutcomeApplied means the command executed against the target.
	OutcomeApplied
	// OutcomeNoTarget means the event named an unknown entity.
	OutcomeNoTarget
	// OutcomeWrongEvent means the payload was not an ActionEvent.
	OutcomeWrongEvent
	// OutcomeBadVerb means the event carried an unknown verb.
	OutcomeBadVerb
)

// ActionHandler turns ActionEvents into switch commands. Unknown
// targets and malformed payloads are absorbed as silent no-ops;
// mutation conflicts propagate to the broadcaster.
type ActionHandler struct {
	reg    *registry.Registry[*Switch]
	last   Outcome
	logger *zerolog.Logger
}

// NewActionHandler builds a handler over the given entity registry.
func NewActionHandler(reg *registry.Registry[*Switch]) *ActionHandler {
	return &ActionHandler{reg: reg}
}

// SetLogger installs a structured logger for miss diagnostics.
func (h *ActionHandler) SetLogger(l zerolog.Logger) {
	h.logger = &l
}

// EventType declares the kind this handler accepts.
func (h *ActionHandler) EventType() events.EventType {
	return EventAction
}

// LastOutcome reports what the most recent Handle call did.
func (h *ActionHandler) LastOutcome() Outcome {
	return h.last
}

// Handle recovers the action event, resolves the target, and executes
// the matching command.
func (h *ActionHandler) Handle(evt events.Event) error {
	act, ok := evt.(ActionEvent)
	if !ok {
		h.last = OutcomeWrongEvent
		return nil
	}

	var cmd command.Command
	switch act.Verb {
	case VerbOn:
		cmd = NewTurnOnCommand(h.reg, act.Target)
	case VerbOff:
		cmd = NewTurnOffCommand(h.reg, act.Target)
	default:
		h.last = OutcomeBadVerb
		return nil
	}

	invoker := command.NewInvoker(cmd)
	err := invoker.Execute()
	if errors.Is(err, registry.ErrNotFound) {
		h.last = OutcomeNoTarget
		if h.logger != nil {
			suggestions := h.reg.Suggest(act.Target, 3)
			h.logger.Warn().
				Str("target", act.Target).
				Str("suggestions", strings.Join(suggestions, ", ")).
				Msg("action target not found")
		}
		return nil
	}
	if err != nil {
		return err
	}
	h.last = OutcomeApplied
	return nil
}
