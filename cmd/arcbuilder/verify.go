package arcbuilder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/arcbuilder/pkg/pipeline"
	"github.com/arthur-debert/arcbuilder/pkg/resolve"
	"github.com/arthur-debert/arcbuilder/pkg/style"
)

var checkStatus = map[resolve.CheckState]style.Status{
	resolve.CheckOK:         style.StatusOK,
	resolve.CheckCorrupt:    style.StatusCorrupt,
	resolve.CheckMissing:    style.StatusMissing,
	resolve.CheckUnverified: style.StatusUnverified,
}

func newVerifyCmd(ro *rootOptions) *cobra.Command {
	do := &datasetOptions{}

	cmd := &cobra.Command{
		Use:   "verify",
		Short: MsgVerifyShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, ro, datasetBindings)
			if err != nil {
				return err
			}

			console, err := newConsole(cmd, ro)
			if err != nil {
				return err
			}
			opts := pipelineOptions(cfg, do, console, nil)
			res, err := pipeline.Verify(cmd.Context(), opts)
			if err != nil {
				return err
			}

			var files []style.FileStatus
			files = appendChecks(files, "rom", res.ROMs)
			files = appendChecks(files, "mra", res.MRAs)
			for _, f := range files {
				if f.Status != style.StatusOK {
					console.Println(style.RenderFileStatus(f))
				}
			}

			counts := style.CountStatus(files)
			if counts[style.StatusCorrupt]+counts[style.StatusMissing] == 0 {
				console.Success(MsgAllVerified)
			}
			console.Println(fmt.Sprintf(MsgVerifySummary,
				counts[style.StatusOK],
				counts[style.StatusCorrupt],
				counts[style.StatusMissing],
				counts[style.StatusUnverified]))
			return nil
		},
	}

	addDatasetFlags(cmd, do)
	return cmd
}

func appendChecks(files []style.FileStatus, kind string, checks []resolve.Check) []style.FileStatus {
	for _, c := range checks {
		fs := style.FileStatus{Kind: kind, Name: c.Name, Status: checkStatus[c.State]}
		if c.Err != nil {
			fs.Detail = c.Err.Error()
		}
		files = append(files, fs)
	}
	return files
}
