package pipeline

import (
	"context"

	"github.com/arthur-debert/arcbuilder/pkg/build"
	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/mratool"
	"github.com/arthur-debert/arcbuilder/pkg/resolve"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// Result is the outcome of a completed run.
type Result struct {
	RunID    string
	Selected types.CoreSelection
	ROMs     resolve.Report
	MRAs     resolve.Report
	Builds   build.Report
	// Violations are grouping keys whose core is not selected.
	Violations []error
	// BuildErr is set when the build backend could not be made available;
	// no builds ran.
	BuildErr error
}

// Failures counts every per-item failure of the run.
func (r *Result) Failures() int {
	n := len(r.ROMs.Failed) + len(r.MRAs.Failed) + len(r.Builds.Failed()) + len(r.Violations)
	if r.BuildErr != nil {
		n++
	}
	return n
}

// Run executes the whole pipeline. The returned error is non-nil only when
// a dataset could not be loaded; errors.IsFatal reports those.
func Run(ctx context.Context, opts Options) (*Result, error) {
	r, err := newRun(opts)
	if err != nil {
		return nil, err
	}
	defer r.logOpenBreakers()

	ds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	res := &Result{RunID: r.id, Selected: ds.selected}

	r.console.Println(MsgCheckingROMs)
	res.ROMs = r.resolver.CacheROMs(ctx, resolve.PlanROMs(ds.arcade, ds.selected), r.layout.ROMDir(), opts.Force)

	r.console.Println(MsgCheckingMRAs)
	grouping, mraFiles := resolve.PlanMRAs(ds.mra, ds.selected)
	res.MRAs = r.resolver.CacheMRAs(ctx, mraFiles, r.layout.MRADir(), r.cfg.Sources.MRAFilesRef, opts.Force)

	if opts.NoBuild {
		r.logger.Info().Msg("Build skipped on request")
		return res, nil
	}

	r.console.Println(MsgBuilding)
	steps, violations := build.Plan(grouping, ds.selected, r.layout)
	res.Violations = r.reportViolations(violations)

	backend, err := r.backend(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("Build tool unavailable, no ARC files built")
		r.console.Error(err.Error())
		res.BuildErr = err
		return res, nil
	}

	buildLogger := r.component("build")
	orchestrator := build.NewOrchestrator(build.Options{
		Backend: backend,
		FS:      r.fs,
		Console: r.console,
		Metrics: opts.Metrics,
		Logger:  &buildLogger,
	})
	res.Builds = orchestrator.Execute(ctx, steps)

	r.logger.Info().
		Int("steps", len(steps)).
		Int("failed", len(res.Builds.Failed())).
		Int("violations", len(res.Violations)).
		Msg("Run complete")
	return res, nil
}

// logOpenBreakers names the hosts whose breaker tripped during the run.
// Downloads from those hosts were refused without a request.
func (r *run) logOpenBreakers() {
	if r.breakers == nil {
		return
	}
	for host, state := range r.breakers.BreakerState() {
		if state == "open" {
			r.logger.Warn().Str("host", host).Msg("Circuit open for host")
		}
	}
}

func (r *run) reportViolations(violations []error) []error {
	for _, v := range violations {
		r.opts.Metrics.RecordContractViolation()
		r.logger.Error().
			Err(v).
			Interface("details", errors.GetErrorDetails(v)).
			Msg("Grouping key has no selected core")
	}
	return violations
}

// backend returns the configured backend, the explicit tool path, or a
// freshly provisioned tool, in that order.
func (r *run) backend(ctx context.Context) (build.Backend, error) {
	if r.opts.Backend != nil {
		return r.opts.Backend, nil
	}

	toolLogger := r.component("mratool")
	if r.cfg.Tool.Path != "" {
		return mratool.New(r.cfg.Tool.Path, &toolLogger), nil
	}

	return mratool.Provision(ctx, mratool.ProvisionOptions{
		Store:       r.store,
		FS:          r.fs,
		BinDir:      r.layout.BinDir(),
		BaseURL:     r.cfg.Tool.BaseURL,
		GOOS:        r.goos(),
		GOARCH:      r.goarch(),
		SettleDelay: r.cfg.Tool.SettleDelay,
		Logger:      &toolLogger,
	})
}
