package mratool

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/arcbuilder/pkg/build"
	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/logging"
)

// Tool runs the mra executable at Path.
type Tool struct {
	Path   string
	logger zerolog.Logger
}

var _ build.Backend = (*Tool)(nil)

// New creates a Tool for the executable at path.
func New(path string, logger *zerolog.Logger) *Tool {
	return &Tool{
		Path:   path,
		logger: logging.OrDefault(logger, "mratool"),
	}
}

// Args returns the command line for req, without the executable.
func Args(req build.Request) []string {
	args := []string{"-A", "-z", req.ROMCacheDir, "-O", req.OutDir}
	if req.OutputName != "" {
		args = append(args, "-a", req.OutputName)
	}
	return append(args, req.MRAPath)
}

// Build implements build.Backend. A tool that ran but exited non-zero is an
// error; anything it printed is still returned.
func (t *Tool) Build(ctx context.Context, req build.Request) (build.Result, error) {
	args := Args(req)
	t.logger.Debug().
		Str("command", t.Path).
		Str("args", strings.Join(args, " ")).
		Msg("Executing command")

	cmd := exec.CommandContext(ctx, t.Path, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := build.Result{Stdout: stdout.String(), Stderr: stderr.String()}

	if err != nil {
		t.logger.Error().
			Err(err).
			Str("command", t.Path).
			Strs("args", args).
			Str("stderr", result.Stderr).
			Msg("Command execution failed")
		return result, errors.Wrapf(err, errors.ErrBuildExecute, "failed to execute %s", t.Path).
			WithDetail("mra", req.MRAPath)
	}

	return result, nil
}
