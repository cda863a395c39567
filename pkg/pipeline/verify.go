package pipeline

import (
	"context"

	"github.com/arthur-debert/arcbuilder/pkg/resolve"
)

// VerifyResult is the audit of every cached file the selection needs.
type VerifyResult struct {
	RunID string
	ROMs  []resolve.Check
	MRAs  []resolve.Check
}

// Corrupt returns the checks that failed verification.
func (v *VerifyResult) Corrupt() []resolve.Check {
	var out []resolve.Check
	for _, group := range [][]resolve.Check{v.ROMs, v.MRAs} {
		for _, c := range group {
			if c.State == resolve.CheckCorrupt {
				out = append(out, c)
			}
		}
	}
	return out
}

// Verify re-checks the cached ROM archives and MRA files against the
// catalogs. Catalogs are loaded as in Run; no ROM or MRA file is fetched.
func Verify(ctx context.Context, opts Options) (*VerifyResult, error) {
	r, err := newRun(opts)
	if err != nil {
		return nil, err
	}

	ds, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	_, mraFiles := resolve.PlanMRAs(ds.mra, ds.selected)
	res := &VerifyResult{
		RunID: r.id,
		ROMs:  r.resolver.Audit(resolve.PlanROMs(ds.arcade, ds.selected), r.layout.ROMDir()),
		MRAs:  r.resolver.Audit(mraFiles, r.layout.MRADir()),
	}

	r.logger.Info().
		Int("roms", len(res.ROMs)).
		Int("mras", len(res.MRAs)).
		Int("corrupt", len(res.Corrupt())).
		Msg("Verification complete")
	return res, nil
}
