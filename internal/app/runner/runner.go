//go:generate mockgen -source=runner.go -destination=runner_mock.go -package=runner
package runner

import (
	"context"
	"fmt"
	"io"
	"os"

	"lunatint/internal/app/colorfile"
	"lunatint/internal/app/errors"
	"lunatint/internal/app/lunacy"
	"lunatint/internal/app/palette"
	"lunatint/internal/app/preview"
	"lunatint/internal/app/ramp"
	"lunatint/internal/app/source"
	"lunatint/internal/config"
	"lunatint/internal/config/logger"
)

// Job describes one run: where requests come from and which document receives the palette
type Job struct {
	Target string
	Path   string
	Out    string
	DryRun bool
	Emit   bool
	Source source.Options
}

// Runner executes a job through load, apply and persist
type Runner interface {
	Run(ctx context.Context, job Job) (*palette.Result, error)
}

type runner struct {
	cfg     *config.Config
	store   palette.Store
	gen     ramp.Generator
	preview preview.Preview
	out     io.Writer
	log     logger.Logger
}

// NewRunner creates a runner writing previews and dry-run output to stdout
func NewRunner(cfg *config.Config, store palette.Store, gen ramp.Generator, pv preview.Preview, log logger.Logger) Runner {
	return &runner{
		cfg:     cfg,
		store:   store,
		gen:     gen,
		preview: pv,
		out:     os.Stdout,
		log:     log.WithComponent("RUNNER"),
	}
}

// Run loads the target and the requests, applies them as one batch and only then persists.
// A failure at any stage leaves the target file untouched.
func (r *runner) Run(ctx context.Context, job Job) (*palette.Result, error) {
	pl := newPipeline(r.log)

	t, err := r.open(job)
	if err != nil {
		return nil, pl.fail(ctx, err)
	}

	refresh, err := t.refresh()
	if err != nil {
		return nil, pl.fail(ctx, err)
	}

	requests, err := source.Gather(job.Source)
	if err != nil {
		return nil, pl.fail(ctx, err)
	}

	refresh = unrequested(refresh, requests)

	if len(requests) == 0 && len(refresh) == 0 {
		return nil, pl.fail(ctx, errors.ErrNoRequests)
	}

	r.log.Debug().Msgf("Loaded %s with %d request(s)", t.describe(), len(requests))

	if err := pl.advance(ctx, Load); err != nil {
		return nil, pl.fail(ctx, err)
	}

	p := t.palette()

	if len(refresh) > 0 {
		refreshed, err := r.store.ApplyUpdates(ctx, p, refresh)
		if err != nil {
			return nil, pl.fail(ctx, err)
		}

		r.log.Debug().Msgf("Refreshed %d stored color(s), %d changed", len(refresh), len(refreshed.Updated)+len(refreshed.Created))
	}

	result, err := r.store.ApplyUpdates(ctx, p, requests)
	if err != nil {
		return nil, pl.fail(ctx, err)
	}

	if err := t.apply(p); err != nil {
		return nil, pl.fail(ctx, err)
	}

	if dt, ok := t.(*documentTarget); ok {
		r.log.Debug().Msgf("%d swatch(es) added, %d updated", dt.changes.Added, dt.changes.Updated)
	}

	if err := pl.advance(ctx, Apply); err != nil {
		return nil, pl.fail(ctx, err)
	}

	if err := r.persist(pl, t, job, p, result); err != nil {
		return nil, pl.fail(ctx, err)
	}

	if err := pl.advance(ctx, Persist); err != nil {
		return nil, pl.fail(ctx, err)
	}

	return result, nil
}

func (r *runner) open(job Job) (target, error) {
	switch job.Target {
	case TargetPreview, "":
		return previewTarget{}, nil
	case TargetFile:
		f, err := colorfile.Load(job.Path)
		if err != nil {
			return nil, err
		}

		return &fileTarget{file: f, defaultStep: ramp.Step(r.cfg.Palette.DefaultStep)}, nil
	case TargetDocument:
		format, err := lunacy.NewNameFormat(r.cfg.Document.NameFormat)
		if err != nil {
			return nil, err
		}

		doc, err := lunacy.Open(job.Path, format)
		if err != nil {
			return nil, err
		}

		return &documentTarget{doc: doc, gen: r.gen}, nil
	default:
		return nil, fmt.Errorf("%w: %q", errors.ErrUnknownTarget, job.Target)
	}
}

// persist writes the preview and the target; it refuses to run before the pipeline has applied
func (r *runner) persist(pl *pipeline, t target, job Job, p *palette.Palette, result *palette.Result) error {
	if err := pl.require(Persist); err != nil {
		return err
	}

	if err := r.preview.Write(r.out, touched(p, result)); err != nil {
		return fmt.Errorf("failed to write preview: %w", err)
	}

	if job.Emit {
		format, err := lunacy.NewNameFormat(r.cfg.Document.NameFormat)
		if err != nil {
			return err
		}

		data, err := lunacy.Emit(p, format)
		if err != nil {
			return err
		}

		if _, err := r.out.Write(data); err != nil {
			return fmt.Errorf("failed to write swatches: %w", err)
		}
	}

	r.log.Info().Msgf("%d created, %d updated, %d unchanged", len(result.Created), len(result.Updated), len(result.Unchanged))

	if _, ok := t.(previewTarget); ok {
		return nil
	}

	if job.DryRun {
		data, err := t.bytes()
		if err != nil {
			return err
		}

		if _, err := r.out.Write(data); err != nil {
			return fmt.Errorf("failed to write dry run output: %w", err)
		}

		r.log.Info().Msg("Dry run, nothing written")

		return nil
	}

	if err := t.save(job.Out); err != nil {
		return err
	}

	dest := job.Out
	if dest == "" {
		dest = job.Path
	}

	r.log.Info().Msgf("Wrote %s", dest)

	return nil
}

// touched returns the entries named by the batch in palette order, or all entries when the
// batch named none
func touched(p *palette.Palette, result *palette.Result) []*palette.Entry {
	names := make(map[string]bool)
	for _, list := range [][]string{result.Created, result.Updated, result.Unchanged} {
		for _, n := range list {
			names[n] = true
		}
	}

	entries := p.Entries()
	if len(names) == 0 {
		return entries
	}

	out := make([]*palette.Entry, 0, len(names))

	for _, e := range entries {
		if names[e.Name] {
			out = append(out, e)
		}
	}

	return out
}

// unrequested drops refresh requests for names the user batch restates, so a stored entry that
// no longer parses cannot block its own replacement
func unrequested(refresh, requests []palette.Request) []palette.Request {
	if len(refresh) == 0 || len(requests) == 0 {
		return refresh
	}

	named := make(map[string]struct{}, len(requests))
	for _, req := range requests {
		named[req.Name] = struct{}{}
	}

	out := make([]palette.Request, 0, len(refresh))
	for _, req := range refresh {
		if _, ok := named[req.Name]; !ok {
			out = append(out, req)
		}
	}

	return out
}
