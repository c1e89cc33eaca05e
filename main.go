package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"switchboard/src/audit"
	"switchboard/src/device"
	"switchboard/src/events"
	"switchboard/src/registry"
	"switchboard/src/statistics"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	reg := registry.New[*device.Switch]()
	reg.SetLogger(logger)

	light := device.NewSwitch("light_1")
	watcher := device.NewStateObserver()
	light.AttachObserver("light_observer_1", watcher)

	tracker := statistics.NewUptimeTracker()
	light.AttachObserver("uptime", tracker.ObserverFor(light.Name()))
	reg.Add(light.Name(), light)

	bus := events.NewBus()
	bus.SetLogger(logger)

	handler := device.NewActionHandler(reg)
	handler.SetLogger(logger)
	bus.Mediate(handler)

	auditor := audit.NewManager(os.TempDir())
	if err := auditor.Enable(light.Name()); err != nil {
		logger.Warn().Err(err).Msg("audit unavailable")
	} else {
		bus.Mediate(auditor)
	}

	actions := []device.ActionEvent{
		{Target: "light_1", Verb: device.VerbOn},
		{Target: "light_1", Verb: device.VerbOff},
	}
	for _, act := range actions {
		if err := bus.Broadcast(act); err != nil {
			logger.Error().Err(err).Msg("broadcast failed")
			os.Exit(1)
		}
		fmt.Printf("light_1 is now %v (notifications: %d)\n", watcher.LastState(), watcher.UpdateCount())
	}
	tracker.Flush()
	fmt.Printf("light_1 total uptime: %s\n", statistics.FormatDuration(tracker.Uptime(light.Name())))
}
