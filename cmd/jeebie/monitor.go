package main

import (
	"context"
	"log/slog"
	"time"

	"github.com/valerio/go-jeebie-core/jeebie"
	"github.com/valerio/go-jeebie-core/jeebie/monitor"
	"github.com/valerio/go-jeebie-core/jeebie/testrom"
)

const (
	refreshInterval = time.Second / 30
	// refreshCheckEvery is how many instructions run between clock reads.
	refreshCheckEvery = 1024
	idleSleep         = 10 * time.Millisecond
)

// runMonitor drives dmg while the dashboard is shown. Once a banner appears
// or the ceiling is reached, the final state stays on screen until the user
// quits.
func runMonitor(ctx context.Context, dmg *jeebie.DMG, maxInstructions uint64) (testrom.Result, error) {
	m, err := monitor.NewTerminal(dmg)
	if err != nil {
		return dmg.Result(), err
	}
	if err := m.Init(); err != nil {
		return dmg.Result(), err
	}
	defer m.Cleanup()

	finished := false
	lastRefresh := time.Time{}
	for ctx.Err() == nil {
		step := false
		idle := finished || m.Paused()
		if idle || (dmg.Instructions()%refreshCheckEvery == 0 && time.Since(lastRefresh) >= refreshInterval) {
			switch m.Update() {
			case monitor.CommandQuit:
				return dmg.Result(), dmg.Flush()
			case monitor.CommandStep:
				step = true
			}
			lastRefresh = time.Now()
		}

		if finished || (m.Paused() && !step) {
			time.Sleep(idleSleep)
			continue
		}

		if _, err := dmg.Step(); err != nil {
			return dmg.Result(), err
		}

		if dmg.Outcome() != testrom.OutcomeRunning || (maxInstructions != 0 && dmg.Instructions() >= maxInstructions) {
			finished = true
			slog.Info("Run finished, press Q to exit", "outcome", dmg.Result().Outcome)
		}
	}

	if err := dmg.Flush(); err != nil {
		return dmg.Result(), err
	}
	return dmg.Result(), ctx.Err()
}
