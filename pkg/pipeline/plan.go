package pipeline

import (
	"context"

	"github.com/arthur-debert/arcbuilder/pkg/build"
	"github.com/arthur-debert/arcbuilder/pkg/mra"
	"github.com/arthur-debert/arcbuilder/pkg/resolve"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// PlannedStep is a build step with the game its MRA describes. Game is
// empty when the MRA is not cached or cannot be read.
type PlannedStep struct {
	build.Step
	Game string
}

// PlanResult describes what a run would build.
type PlanResult struct {
	RunID      string
	Selected   types.CoreSelection
	ROMFiles   []types.CatalogEntry
	MRAFiles   []types.CatalogEntry
	ROMs       resolve.Report
	MRAs       resolve.Report
	Steps      []PlannedStep
	Violations []error
}

// Plan loads the datasets, caches what the selection needs unless
// SkipDownloads is set, and returns the build steps without running them.
func Plan(ctx context.Context, opts Options) (*PlanResult, error) {
	r, err := newRun(opts)
	if err != nil {
		return nil, err
	}

	ds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	res := &PlanResult{RunID: r.id, Selected: ds.selected}
	res.ROMFiles = resolve.PlanROMs(ds.arcade, ds.selected)
	grouping, mraFiles := resolve.PlanMRAs(ds.mra, ds.selected)
	res.MRAFiles = mraFiles

	if !opts.SkipDownloads {
		r.console.Println(MsgCheckingROMs)
		res.ROMs = r.resolver.CacheROMs(ctx, res.ROMFiles, r.layout.ROMDir(), opts.Force)
		r.console.Println(MsgCheckingMRAs)
		res.MRAs = r.resolver.CacheMRAs(ctx, mraFiles, r.layout.MRADir(), r.cfg.Sources.MRAFilesRef, opts.Force)
	}

	steps, violations := build.Plan(grouping, ds.selected, r.layout)
	res.Violations = r.reportViolations(violations)

	games := make(map[string]string)
	for _, step := range steps {
		game, seen := games[step.MRA]
		if !seen {
			if info, err := mra.Inspect(r.fs, step.Request.MRAPath); err == nil {
				game = info.Name
			} else {
				r.logger.Debug().Err(err).Str("mra", step.MRA).Msg("MRA not inspected")
			}
			games[step.MRA] = game
		}
		res.Steps = append(res.Steps, PlannedStep{Step: step, Game: game})
	}

	return res, nil
}
