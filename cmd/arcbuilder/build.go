package arcbuilder

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/arcbuilder/pkg/logging"
	"github.com/arthur-debert/arcbuilder/pkg/metrics"
	"github.com/arthur-debert/arcbuilder/pkg/pipeline"
	"github.com/arthur-debert/arcbuilder/pkg/style"
)

func newBuildCmd(ro *rootOptions) *cobra.Command {
	do := &datasetOptions{}
	var (
		noArc bool
		tool  string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: MsgBuildShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.build")
			cfg, err := loadConfig(cmd, ro, datasetBindings, []flagBinding{{"tool", "tool.path"}})
			if err != nil {
				return err
			}

			console, err := newConsole(cmd, ro)
			if err != nil {
				return err
			}
			rec := metrics.New()
			opts := pipelineOptions(cfg, do, console, rec)
			opts.NoBuild = noArc

			done := logging.LogOperationStart(logger, "build")
			res, err := pipeline.Run(cmd.Context(), opts)
			done()
			if err != nil {
				return err
			}

			printRunSummary(console, res, noArc)
			writeMetrics(console, rec, cfg.Metrics.Textfile)
			return nil
		},
	}

	addDatasetFlags(cmd, do)
	cmd.Flags().BoolVarP(&noArc, "no-arc", "n", false, MsgFlagNoArc)
	cmd.Flags().StringVar(&tool, "tool", "", MsgFlagTool)
	return cmd
}

func printRunSummary(console *style.Console, res *pipeline.Result, noBuild bool) {
	if len(res.Selected) == 0 {
		console.Warn(MsgNoCoresSelected)
	}

	for _, f := range res.ROMs.Failed {
		console.Markup(fmt.Sprintf(MsgFailedROM, f.Name, f.Err))
	}
	for _, f := range res.MRAs.Failed {
		console.Markup(fmt.Sprintf(MsgFailedMRA, f.Name, f.Err))
	}
	for _, r := range res.Builds.Failed() {
		console.Markup(fmt.Sprintf(MsgFailedARC, r.Step.MRA, r.Err))
	}
	for _, v := range res.Violations {
		console.Warn(v.Error())
	}

	lines := []string{
		fmt.Sprintf(MsgSummaryROMs, len(res.ROMs.Ensured), len(res.ROMs.Failed)),
		fmt.Sprintf(MsgSummaryMRAs, len(res.MRAs.Ensured), len(res.MRAs.Failed)),
	}
	switch {
	case noBuild || res.BuildErr != nil:
		lines = append(lines, MsgSummaryNoBuild)
	default:
		failed := len(res.Builds.Failed())
		lines = append(lines, fmt.Sprintf(MsgSummaryBuilds, len(res.Builds.Results)-failed, failed))
	}
	if len(res.Violations) > 0 {
		lines = append(lines, fmt.Sprintf(MsgSummaryRules, len(res.Violations)))
	}
	console.Box(MsgSummaryTitle, lines)
}
