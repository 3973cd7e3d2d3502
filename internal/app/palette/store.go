//go:generate mockgen -source=store.go -destination=store_mock.go -package=palette
package palette

import (
	"context"
	"fmt"

	"lunatint/internal/app/color"
	"lunatint/internal/app/errors"
	"lunatint/internal/app/ramp"
	"lunatint/internal/app/worker"
	"lunatint/internal/config"
	"lunatint/internal/config/logger"
)

// Result lists the names touched by a batch, in batch order
type Result struct {
	Created   []string
	Updated   []string
	Unchanged []string
}

// Changed reports whether the batch modified the palette
func (r *Result) Changed() bool {
	return len(r.Created) > 0 || len(r.Updated) > 0
}

// Store applies update batches to a palette
type Store interface {
	ApplyUpdates(ctx context.Context, p *Palette, requests []Request) (*Result, error)
}

type store struct {
	gen         ramp.Generator
	pool        worker.Pool
	defaultStep ramp.Step
	strict      bool
	log         logger.Logger
}

// update is a validated request waiting for its ramp
type update struct {
	name string
	base color.Color
	step ramp.Step
	ramp ramp.Ramp
}

// NewStore creates a store using the configured default step and duplicate policy
func NewStore(cfg *config.Config, gen ramp.Generator, pool worker.Pool, log logger.Logger) Store {
	return &store{
		gen:         gen,
		pool:        pool,
		defaultStep: ramp.Step(cfg.Palette.DefaultStep),
		strict:      cfg.Palette.Duplicates == config.DuplicatesStrict,
		log:         log,
	}
}

// ApplyUpdates validates the whole batch, computes every ramp and only then merges the results
// into p, so a failing batch leaves p untouched. Existing names are updated in place.
func (s *store) ApplyUpdates(ctx context.Context, p *Palette, requests []Request) (*Result, error) {
	updates, err := s.plan(p, requests)
	if err != nil {
		return nil, err
	}

	err = s.pool.Run(ctx, len(updates), func(i int) error {
		u := updates[i]

		r, err := s.gen.Generate(u.base, u.step)
		if err != nil {
			return fmt.Errorf("color '%s': %w", u.name, err)
		}

		u.ramp = r

		return nil
	})
	if err != nil {
		return nil, err
	}

	result := s.merge(p, updates)

	s.log.Debug().Msgf("Applied %d request(s): %d created, %d updated, %d unchanged",
		len(requests), len(result.Created), len(result.Updated), len(result.Unchanged))

	return result, nil
}

// plan resolves requests into one update per name, keeping the position of the first occurrence
func (s *store) plan(p *Palette, requests []Request) ([]*update, error) {
	updates := make([]*update, 0, len(requests))
	byName := make(map[string]*update, len(requests))

	for _, req := range requests {
		u, err := s.resolve(p, req)
		if err != nil {
			return nil, err
		}

		prev, seen := byName[u.name]
		if !seen {
			byName[u.name] = u
			updates = append(updates, u)

			continue
		}

		if s.strict && (prev.base != u.base || prev.step != u.step) {
			return nil, fmt.Errorf("%w: '%s' (%s at %s and %s at %s)",
				errors.ErrDuplicateName, u.name, prev.base, prev.step, u.base, u.step)
		}

		s.log.Debug().Msgf("Color '%s' repeated in batch, last value wins", u.name)
		*prev = *u
	}

	return updates, nil
}

func (s *store) resolve(p *Palette, req Request) (*update, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	base, err := color.Parse(req.Value)
	if err != nil {
		return nil, fmt.Errorf("color '%s': %w", req.Name, err)
	}

	step := s.defaultStep

	switch {
	case req.Step != nil:
		step, err = ramp.ParseStep(*req.Step)
		if err != nil {
			return nil, fmt.Errorf("color '%s': %w", req.Name, err)
		}
	default:
		if e, ok := p.Get(req.Name); ok {
			step = e.BaseStep
		}
	}

	return &update{name: req.Name, base: base, step: step}, nil
}

func (s *store) merge(p *Palette, updates []*update) *Result {
	result := &Result{}

	for _, u := range updates {
		e, ok := p.Get(u.name)
		if !ok {
			p.add(u.name, u.base, u.step, u.ramp)
			result.Created = append(result.Created, u.name)

			continue
		}

		if e.Base == u.base && e.BaseStep == u.step && e.Ramp == u.ramp {
			result.Unchanged = append(result.Unchanged, u.name)
			continue
		}

		e.Base = u.base
		e.BaseStep = u.step
		e.Ramp = u.ramp
		e.Revision++

		result.Updated = append(result.Updated, u.name)
	}

	return result
}
