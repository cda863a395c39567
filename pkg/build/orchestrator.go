package build

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/filesystem"
	"github.com/arthur-debert/arcbuilder/pkg/logging"
	"github.com/arthur-debert/arcbuilder/pkg/metrics"
	"github.com/arthur-debert/arcbuilder/pkg/style"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// StepResult is the outcome of one step.
type StepResult struct {
	Step   Step
	Result Result
	Err    error
}

// OK reports whether the step produced its ARC without complaint.
func (r StepResult) OK() bool {
	return r.Err == nil
}

// Report collects step outcomes in execution order.
type Report struct {
	Results []StepResult
}

// Failed returns the results that did not succeed.
func (r Report) Failed() []StepResult {
	var out []StepResult
	for _, res := range r.Results {
		if !res.OK() {
			out = append(out, res)
		}
	}
	return out
}

// Options configures an Orchestrator.
type Options struct {
	Backend Backend
	FS      types.FS
	Console *style.Console
	Metrics *metrics.Recorder
	Logger  *zerolog.Logger
}

// Orchestrator runs build steps.
type Orchestrator struct {
	backend Backend
	fs      types.FS
	console *style.Console
	metrics *metrics.Recorder
	logger  zerolog.Logger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(opts Options) *Orchestrator {
	o := &Orchestrator{
		backend: opts.Backend,
		fs:      opts.FS,
		console: style.OrDefault(opts.Console),
		metrics: opts.Metrics,
		logger:  logging.OrDefault(opts.Logger, "build"),
	}
	if o.fs == nil {
		o.fs = filesystem.NewOS()
	}
	return o
}

// Execute runs every step in order. A failing step is recorded and the
// next one runs regardless.
func (o *Orchestrator) Execute(ctx context.Context, steps []Step) Report {
	var report Report
	created := make(map[string]bool)
	keysByCore := make(map[string]string)
	hasPrimary := make(map[string]bool)

	for _, step := range steps {
		if prev, ok := keysByCore[step.CoreID]; ok && prev != step.TagKey {
			o.logger.Warn().
				Str("core_id", step.CoreID).
				Str("tag_key", step.TagKey).
				Str("other_tag_key", prev).
				Msg("Two tag keys build the same core; their outputs may overwrite each other")
		}
		keysByCore[step.CoreID] = step.TagKey
		if step.Kind == KindPrimary {
			hasPrimary[step.TagKey] = true
		}

		report.Results = append(report.Results, o.run(ctx, step, created))
	}

	for _, step := range steps {
		if !hasPrimary[step.TagKey] {
			o.logger.Warn().
				Str("tag_key", step.TagKey).
				Str("core_id", step.CoreID).
				Msg("No MRA matches default_mra; no primary ARC built")
			hasPrimary[step.TagKey] = true
		}
	}

	return report
}

func (o *Orchestrator) run(ctx context.Context, step Step, created map[string]bool) StepResult {
	res := StepResult{Step: step}
	logger := o.logger.With().Str("mra", step.MRA).Str("kind", string(step.Kind)).Logger()

	if err := ctx.Err(); err != nil {
		res.Err = errors.Wrap(err, errors.ErrBuildExecute, "build cancelled")
		return res
	}

	outDir := step.Request.OutDir
	if !created[outDir] {
		if err := o.fs.MkdirAll(outDir, 0755); err != nil {
			res.Err = errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", outDir)
			logger.Error().Err(err).Msg("Cannot create output directory")
			return res
		}
		created[outDir] = true
	}

	logger.Debug().
		Str("out_dir", outDir).
		Str("output_name", step.Request.OutputName).
		Msg("Building")

	start := time.Now()
	result, err := o.backend.Build(ctx, step.Request)
	res.Result = result

	if out := strings.TrimSpace(result.Stdout); out != "" {
		o.console.Output(result.Stdout)
	}

	switch {
	case err != nil:
		res.Err = errors.Wrapf(err, errors.ErrBuildExecute, "failed to build %s", step.MRA)
		logger.Error().Err(err).Msg("Build tool failed")
	case strings.TrimSpace(result.Stderr) != "":
		res.Err = errors.Newf(errors.ErrBuildExecute, "problem processing %s", step.MRA).
			WithDetail("stderr", result.Stderr)
		logger.Error().Str("stderr", strings.TrimSpace(result.Stderr)).Msg("Problem processing MRA")
	}

	o.metrics.RecordBuild(string(step.Kind), res.OK(), time.Since(start))
	return res
}
