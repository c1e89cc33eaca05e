package scenario

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"switchboard/src/device"
	"switchboard/src/events"
	"switchboard/src/registry"
)

// DeviceSpec declares a device and its initial state.
type DeviceSpec struct {
	Name    string `yaml:"name"`
	Initial bool   `yaml:"initial"`
}

// Step is one broadcast action.
type Step struct {
	Target string `yaml:"target"`
	Verb   string `yaml:"verb"`
}

// Scenario is a declarative wiring file: devices to create, then
// actions to broadcast in order.
type Scenario struct {
	Devices []DeviceSpec `yaml:"devices"`
	Steps   []Step       `yaml:"steps"`
}

// Result summarizes a scenario run.
type Result struct {
	Handled   int
	Unhandled int
}

// Load reads a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, err
	}
	return Parse(data)
}

// Parse decodes scenario YAML.
func Parse(data []byte) (Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("scenario: decode: %w", err)
	}
	for _, step := range sc.Steps {
		if !device.Verb(step.Verb).Valid() {
			return Scenario{}, fmt.Errorf("scenario: unknown verb %q for target %q", step.Verb, step.Target)
		}
	}
	return sc, nil
}

// Setup creates the declared devices in the registry. Initial states
// are applied directly; no events are broadcast.
func (sc Scenario) Setup(reg *registry.Registry[*device.Switch]) {
	for _, spec := range sc.Devices {
		sw := device.NewSwitch(spec.Name)
		if spec.Initial {
			sw.On()
		}
		reg.Add(spec.Name, sw)
	}
}

// Run broadcasts every step in order. Steps with no registered handler
// are tallied as unhandled rather than treated as failures; any other
// broadcast error aborts the run.
func (sc Scenario) Run(bus *events.Bus) (Result, error) {
	var res Result
	for _, step := range sc.Steps {
		err := bus.Broadcast(device.ActionEvent{
			Target: step.Target,
			Verb:   device.Verb(step.Verb),
		})
		switch {
		case err == nil:
			res.Handled++
		case errors.Is(err, events.ErrNoHandlers):
			res.Unhandled++
		default:
			return res, fmt.Errorf("scenario: step %s %s: %w", step.Verb, step.Target, err)
		}
	}
	return res, nil
}
