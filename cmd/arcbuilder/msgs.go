package arcbuilder

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort    = "Build ARC files and ROM caches for FPGA arcade cores"
	MsgRootLong     = `arcbuilder downloads the arcade ROM and MRA catalogs, caches the ROM archives
and MRA files needed by the cores listed in a cores DB file, and runs the mra
tool to produce ARC files for each core.`
	MsgBuildShort   = "Cache ROM and MRA files and build ARC files"
	MsgPlanShort    = "Show the ARC files a build would produce"
	MsgVerifyShort  = "Re-check cached ROM and MRA files against the catalogs"
	MsgConfigShort  = "Print the effective configuration as TOML"
	MsgVersionShort = "Print version information"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig        = "Config file (default $XDG_CONFIG_HOME/arcbuilder/config.toml)"
	MsgFlagCacheDir      = "Cache directory name and location"
	MsgFlagMetricsFile   = "Write Prometheus metrics to this textfile after the run"
	MsgFlagFormat        = "Console output format: auto, term or text"
	MsgFlagCoresDB       = "Cores DB file name and location (JSON or YAML)"
	MsgFlagOutputDir     = "Output dir name and location"
	MsgFlagInclude       = "Names of cores to include, separated by commas"
	MsgFlagExclude       = "Names of cores to exclude, separated by commas"
	MsgFlagForceArcadeDB = "Force to download again cached Arcade DB file"
	MsgFlagForceMRADB    = "Force to download again cached MRA DB file"
	MsgFlagForce         = "Force to download again cached ZIP and MRA files"
	MsgFlagNoArc         = "Do not build ARC files, only fill the caches"
	MsgFlagArcadeDBRef   = "Arcade DB commit or branch"
	MsgFlagMRADBRef      = "MRA DB commit or branch"
	MsgFlagMRAsRef       = "MRA files commit or branch"
	MsgFlagTool          = "Use this mra executable instead of downloading one"
	MsgFlagOffline       = "Plan from the cache without downloading ROM or MRA files"
	MsgFlagDefaults      = "Print the commented defaults, suitable as a new config file"

	// Output
	MsgSummaryTitle    = "Summary"
	MsgSummaryROMs     = "[rom]ROM files[/rom]:  %d cached, %d failed"
	MsgSummaryMRAs     = "[mra]MRA files[/mra]:  %d cached, %d failed"
	MsgSummaryBuilds   = "[arc]ARC builds[/arc]: %d ok, %d failed"
	MsgSummaryNoBuild  = "[arc]ARC builds[/arc]: [muted]skipped[/muted]"
	MsgSummaryRules    = "Skipped groups: %d"
	MsgFailedROM       = "[warning]![/warning] [rom]%s[/rom]: %v"
	MsgFailedMRA       = "[warning]![/warning] [mra]%s[/mra]: %v"
	MsgFailedARC       = "[warning]![/warning] [arc]%s[/arc]: %v"
	MsgNoCoresSelected = "No cores selected."
	MsgNothingToBuild  = "Nothing to build."
	MsgVerifySummary   = "%d ok, %d corrupt, %d missing, %d unverified"
	MsgAllVerified     = "All cached files verified."
	MsgMetricsFailed   = "Could not write metrics to %s: %v"
	MsgVersionFormat   = "arcbuilder version %s\n  commit: %s\n  built:  %s\n"
)

// Plan table header
var planHeader = []string{"Core", "Kind", "MRA", "Game", "Output"}
