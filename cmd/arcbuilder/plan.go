package arcbuilder

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/arcbuilder/pkg/metrics"
	"github.com/arthur-debert/arcbuilder/pkg/pipeline"
)

func newPlanCmd(ro *rootOptions) *cobra.Command {
	do := &datasetOptions{}
	var offline bool

	cmd := &cobra.Command{
		Use:   "plan",
		Short: MsgPlanShort,
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
			rec := metrics.New()
			opts := pipelineOptions(cfg, do, console, rec)
			opts.SkipDownloads = offline

			res, err := pipeline.Plan(cmd.Context(), opts)
			if err != nil {
				return err
			}

			if len(res.Steps) == 0 {
				console.Println(MsgNothingToBuild)
			} else {
				rows := make([][]string, 0, len(res.Steps))
				for _, s := range res.Steps {
					output := s.Request.OutDir
					if s.Request.OutputName != "" {
						output = filepath.Join(output, s.Request.OutputName)
					}
					rows = append(rows, []string{s.CoreID, string(s.Kind), s.MRA, s.Game, output})
				}
				console.Table(planHeader, rows)
			}
			for _, v := range res.Violations {
				console.Warn(v.Error())
			}

			writeMetrics(console, rec, cfg.Metrics.Textfile)
			return nil
		},
	}

	addDatasetFlags(cmd, do)
	cmd.Flags().BoolVar(&offline, "offline", false, MsgFlagOffline)
	return cmd
}
