package arcbuilder

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/arcbuilder/internal/version"
	"github.com/arthur-debert/arcbuilder/pkg/config"
	"github.com/arthur-debert/arcbuilder/pkg/errors"
	"github.com/arthur-debert/arcbuilder/pkg/logging"
	"github.com/arthur-debert/arcbuilder/pkg/metrics"
	"github.com/arthur-debert/arcbuilder/pkg/paths"
	"github.com/arthur-debert/arcbuilder/pkg/pipeline"
	"github.com/arthur-debert/arcbuilder/pkg/style"
)

// rootOptions are the persistent flags shared by every command.
type rootOptions struct {
	verbosity   int
	configFile  string
	cacheDir    string
	metricsFile string
	format      string
}

// flagBinding maps a command-line flag onto a configuration key.
type flagBinding struct {
	flag string
	key  string
}

var rootBindings = []flagBinding{
	{"cache-dir", "paths.cache_dir"},
	{"metrics-file", "metrics.textfile"},
}

var datasetBindings = []flagBinding{
	{"cores-db", "paths.cores_db"},
	{"output-dir", "paths.output_dir"},
	{"arcadedb-ref", "sources.arcade_db_ref"},
	{"mradb-ref", "sources.mra_db_ref"},
	{"mras-ref", "sources.mra_files_ref"},
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	ro := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "arcbuilder",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if err := logging.Setup(logging.Options{Verbosity: ro.verbosity, File: paths.LogFilePath()}); err != nil {
				log.Warn().Err(err).Msg("Logging to console only")
			}
			logging.LogCommand(cmd.Name(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&ro.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&ro.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVarP(&ro.cacheDir, "cache-dir", "C", "", MsgFlagCacheDir)
	rootCmd.PersistentFlags().StringVar(&ro.metricsFile, "metrics-file", "", MsgFlagMetricsFile)
	rootCmd.PersistentFlags().StringVar(&ro.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddCommand(newBuildCmd(ro))
	rootCmd.AddCommand(newPlanCmd(ro))
	rootCmd.AddCommand(newVerifyCmd(ro))
	rootCmd.AddCommand(newConfigCmd(ro))
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// datasetOptions are the flags selecting datasets and cores, shared by
// build, plan and verify.
type datasetOptions struct {
	coresDB       string
	outputDir     string
	include       []string
	exclude       []string
	forceArcadeDB bool
	forceMRADB    bool
	force         bool
	arcadeDBRef   string
	mraDBRef      string
	mrasRef       string
}

func addDatasetFlags(cmd *cobra.Command, do *datasetOptions) {
	f := cmd.Flags()
	f.StringVarP(&do.coresDB, "cores-db", "c", "", MsgFlagCoresDB)
	f.StringVarP(&do.outputDir, "output-dir", "O", "", MsgFlagOutputDir)
	f.StringArrayVarP(&do.include, "include", "i", nil, MsgFlagInclude)
	f.StringArrayVarP(&do.exclude, "exclude", "e", nil, MsgFlagExclude)
	f.BoolVarP(&do.forceArcadeDB, "force-arcade-db", "a", false, MsgFlagForceArcadeDB)
	f.BoolVarP(&do.forceMRADB, "force-mra-db", "m", false, MsgFlagForceMRADB)
	f.BoolVarP(&do.force, "force", "f", false, MsgFlagForce)
	f.StringVar(&do.arcadeDBRef, "arcadedb-ref", "", MsgFlagArcadeDBRef)
	f.StringVar(&do.mraDBRef, "mradb-ref", "", MsgFlagMRADBRef)
	f.StringVar(&do.mrasRef, "mras-ref", "", MsgFlagMRAsRef)
}

// overrides collects the values of flags the user set explicitly.
func overrides(cmd *cobra.Command, bindings ...[]flagBinding) map[string]interface{} {
	values := make(map[string]interface{})
	for _, group := range bindings {
		for _, b := range group {
			if f := cmd.Flags().Lookup(b.flag); f != nil && f.Changed {
				values[b.key] = f.Value.String()
			}
		}
	}
	return values
}

func loadConfig(cmd *cobra.Command, ro *rootOptions, bindings ...[]flagBinding) (*config.Config, error) {
	cfg, err := config.Load(config.LoadOptions{
		File:      ro.configFile,
		Overrides: overrides(cmd, append([][]flagBinding{rootBindings}, bindings...)...),
	})
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("cores_db", cfg.Paths.CoresDB).
		Str("cache_dir", cfg.Paths.CacheDir).
		Str("output_dir", cfg.Paths.OutputDir).
		Msg("Configuration loaded")
	return cfg, nil
}

func newConsole(cmd *cobra.Command, ro *rootOptions) (*style.Console, error) {
	format, err := style.ParseFormat(ro.format)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInvalidInput, "invalid --format")
	}
	return style.NewConsole(cmd.OutOrStdout(), format), nil
}

// pipelineOptions assembles the options shared by build, plan and verify.
func pipelineOptions(cfg *config.Config, do *datasetOptions, console *style.Console, rec *metrics.Recorder) pipeline.Options {
	return pipeline.Options{
		Config:        cfg,
		Include:       do.include,
		Exclude:       do.exclude,
		ForceArcadeDB: do.forceArcadeDB,
		ForceMRADB:    do.forceMRADB,
		Force:         do.force,
		Console:       console,
		Metrics:       rec,
	}
}

// writeMetrics exports rec when a textfile is configured. Failures are
// reported and never fail the command.
func writeMetrics(console *style.Console, rec *metrics.Recorder, path string) {
	if path == "" {
		return
	}
	if err := rec.WriteTextfile(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Failed to write metrics textfile")
		console.Warn(fmt.Sprintf(MsgMetricsFailed, path, err))
	}
}

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	// ExitNoData means a catalog or the cores DB could not be loaded.
	ExitNoData = 2
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.IsFatal(err):
		return ExitNoData
	default:
		return ExitFailure
	}
}
