package runner

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"lunatint/internal/app/errors"
	"lunatint/internal/config/logger"
)

// Pipeline states
const (
	Idle      = "idle"
	Loaded    = "loaded"
	Applied   = "applied"
	Persisted = "persisted"
	Failed    = "failed"
)

// Pipeline events
const (
	Load    = "load"
	Apply   = "apply"
	Persist = "persist"
	Fail    = "fail"
)

// pipeline tracks a run through load, apply and persist; persisting is only reachable after a
// successful apply
type pipeline struct {
	machine *fsm.FSM
}

func newPipeline(log logger.Logger) *pipeline {
	return &pipeline{
		machine: fsm.NewFSM(
			Idle,
			fsm.Events{
				{Name: Load, Src: []string{Idle}, Dst: Loaded},
				{Name: Apply, Src: []string{Loaded}, Dst: Applied},
				{Name: Persist, Src: []string{Applied}, Dst: Persisted},
				{Name: Fail, Src: []string{Idle, Loaded, Applied}, Dst: Failed},
			},
			fsm.Callbacks{
				"after_event": func(_ context.Context, e *fsm.Event) {
					log.Debug().Msgf("Pipeline %s -> %s (%s)", e.Src, e.Dst, e.Event)
				},
			},
		),
	}
}

// advance fires event, mapping rejected transitions to ErrInvalidTransition
func (p *pipeline) advance(ctx context.Context, event string) error {
	if err := p.machine.Event(ctx, event); err != nil {
		return fmt.Errorf("%w: %s from %s: %w", errors.ErrInvalidTransition, event, p.machine.Current(), err)
	}

	return nil
}

// require returns ErrInvalidTransition unless event can fire from the current state
func (p *pipeline) require(event string) error {
	if !p.machine.Can(event) {
		return fmt.Errorf("%w: %s from %s", errors.ErrInvalidTransition, event, p.machine.Current())
	}

	return nil
}

// fail moves the pipeline to failed and hands err back
func (p *pipeline) fail(ctx context.Context, err error) error {
	if p.machine.Can(Fail) {
		_ = p.machine.Event(ctx, Fail)
	}

	return err
}

// State returns the current state
func (p *pipeline) State() string {
	return p.machine.Current()
}
