package build

import (
	"path/filepath"
	"strings"

	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/resolve"
	"github.com/arthur-debert/arcbuilder/pkg/types"
)

// Kind tells primary builds from secondary ones.
type Kind string

const (
	// KindPrimary writes the core's named ARC at the output root.
	KindPrimary Kind = "primary"
	// KindSecondary lets the tool name the ARC, in the variant directory.
	KindSecondary Kind = "secondary"
)

// Step is one planned build.
type Step struct {
	Kind    Kind
	TagKey  string
	CoreID  string
	MRA     string
	Request Request
}

// OutputName returns the primary ARC name of a core.
func OutputName(coreID string, core types.Core) string {
	base := coreID
	if core.DefaultARC != "" {
		base = core.DefaultARC
	}
	return strings.ToUpper(base + ".arc")
}

// VariantDir returns the subdirectory for a multi-variant core.
func VariantDir(coreID string) string {
	return strings.ToUpper(strings.ReplaceAll(coreID, "jt", ""))
}

// PrimaryIndex returns the position of the primary MRA in files, or -1 when
// a configured default_mra matches none of them.
func PrimaryIndex(files []string, core types.Core) int {
	if len(files) == 0 {
		return -1
	}
	if len(files) == 1 || core.DefaultMRA == "" {
		return 0
	}
	for i, name := range files {
		if strings.HasPrefix(name, core.DefaultMRA) {
			return i
		}
	}
	return -1
}

// Plan lays out the builds for mras. Groups whose core id is not selected
// are skipped and reported as contract violations.
func Plan(mras types.CoreMRAs, selection types.CoreSelection, layout types.Layout) ([]Step, []error) {
	var steps []Step
	var violations []error

	for _, key := range mras.Keys() {
		coreID := resolve.DeriveCoreID(key)
		core, ok := selection[coreID]
		if !ok {
			violations = append(violations,
				errors.Newf(errors.ErrContractViolation, "tag key %q resolves to core %q, which is not selected", key, coreID).
					WithDetail("tag_key", key).
					WithDetail("core_id", coreID))
			continue
		}

		files := mras.Files(key)
		outDir := layout.OutputDir()
		if len(files) > 1 {
			outDir = filepath.Join(outDir, VariantDir(coreID))
		}
		primary := PrimaryIndex(files, core)

		for i, name := range files {
			mraPath := filepath.Join(layout.MRADir(), name)
			if i == primary {
				steps = append(steps, Step{
					Kind:   KindPrimary,
					TagKey: key,
					CoreID: coreID,
					MRA:    name,
					Request: Request{
						MRAPath:     mraPath,
						ROMCacheDir: layout.ROMDir(),
						OutDir:      layout.OutputDir(),
						OutputName:  OutputName(coreID, core),
					},
				})
			}
			steps = append(steps, Step{
				Kind:   KindSecondary,
				TagKey: key,
				CoreID: coreID,
				MRA:    name,
				Request: Request{
					MRAPath:     mraPath,
					ROMCacheDir: layout.ROMDir(),
					OutDir:      outDir,
				},
			})
		}
	}

	return steps, violations
}
