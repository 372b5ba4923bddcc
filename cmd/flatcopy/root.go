package main

import (
	"context"
	"fmt"
	"io"

	"flatcopy/internal/config"
	"flatcopy/internal/errors"
	"flatcopy/internal/log"
	"flatcopy/internal/organize"

	"github.com/spf13/cobra"
)

// app holds the parsed flags and output streams for one invocation.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	exitCode int

	sourceDir          string
	destDir            string
	additionalIgnored  string
	targetDirs         string
	excludedExtensions string
	includedExtensions string
	preset             string
	configFile         string
	dryRun             bool
	jobs               int

	verbose bool
	logJSON bool
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{stdout: stdout, stderr: stderr}
}

// rootCmd builds the command tree
func (a *app) rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flatcopy",
		Short: "Copy a project tree into one flat directory",
		Long: `flatcopy walks a source tree, skips ignored directories, filters files by
extension and copies every remaining file into a single destination
directory. Each file is named after its path relative to the source, with
separators replaced by "_", so src/sub/a.rs becomes src_sub_a.rs.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.configureLogging()
		},
		RunE: a.runCopy,
	}

	flags := cmd.Flags()
	flags.StringVarP(&a.sourceDir, "source-dir", "s", config.DefaultSourceDir, "directory to traverse")
	flags.StringVarP(&a.destDir, "dest-dir", "d", config.DefaultDestDir, "directory that receives the flattened files")
	flags.StringVarP(&a.additionalIgnored, "additional-ignored-dirs", "a", "", "comma-separated directory names to skip, added to the built-in list")
	flags.StringVarP(&a.targetDirs, "target-dirs", "t", "", "comma-separated subdirectories to restrict traversal to")
	flags.StringVarP(&a.excludedExtensions, "excluded-extensions", "x", "", "comma-separated extensions to skip")
	flags.StringVarP(&a.includedExtensions, "included-extensions", "i", "", "comma-separated extensions to copy (all others are skipped)")
	flags.StringVar(&a.preset, "preset", "", "built-in preset: "+joinNames(config.PresetNames()))
	flags.StringVarP(&a.configFile, "config-file", "c", "", "YAML or TOML config file")
	flags.BoolVarP(&a.dryRun, "dry-run", "n", false, "print the plan without copying anything")
	flags.IntVarP(&a.jobs, "jobs", "j", config.DefaultJobs, "number of files copied concurrently")

	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log every file")
	cmd.PersistentFlags().BoolVar(&a.logJSON, "log-json", false, "write log lines as JSON")

	cmd.AddCommand(a.presetsCmd())
	cmd.AddCommand(a.initCmd())

	return cmd
}

func (a *app) configureLogging() {
	opts := []log.Option{log.WithOutput(a.stderr)}
	if a.logJSON {
		opts = append(opts, log.WithJSON())
	}
	log.Configure(opts...)
	log.SetDebug(a.verbose)
}

// flagLayer collects only the flags the user actually set, so unset flags
// never mask the config file or preset.
func (a *app) flagLayer(cmd *cobra.Command) config.Layer {
	var l config.Layer
	flags := cmd.Flags()
	if flags.Changed("source-dir") {
		l.SourceDir = &a.sourceDir
	}
	if flags.Changed("dest-dir") {
		l.DestDir = &a.destDir
	}
	if flags.Changed("additional-ignored-dirs") {
		l.AdditionalIgnoredDirs = config.SplitList(a.additionalIgnored)
	}
	if flags.Changed("target-dirs") {
		l.TargetDirs = config.SplitList(a.targetDirs)
	}
	if flags.Changed("excluded-extensions") {
		l.ExcludedExtensions = config.SplitList(a.excludedExtensions)
	}
	if flags.Changed("included-extensions") {
		l.IncludedExtensions = config.SplitList(a.includedExtensions)
	}
	if flags.Changed("dry-run") {
		l.DryRun = &a.dryRun
	}
	if flags.Changed("jobs") {
		l.Jobs = &a.jobs
	}
	return l
}

func (a *app) runCopy(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(config.Sources{
		Flags:      a.flagLayer(cmd),
		ConfigFile: a.configFile,
		Preset:     a.preset,
	})
	if err != nil {
		return err
	}

	log.LogWithFields(
		log.F("source", cfg.SourceDir),
		log.F("dest", cfg.DestDir),
		log.F("preset", cfg.Preset),
		log.F("ignored", cfg.IgnoredDirs),
		log.F("targets", cfg.TargetDirs),
	).Debug("configuration resolved")

	summary, err := organize.CurrentEngineFactory(cfg).Run(cmd.Context())
	if summary != nil {
		if summary.DryRun {
			fmt.Fprint(a.stdout, renderPlan(summary))
		}
		fmt.Fprintln(a.stdout, renderSummary(cfg, summary))
		a.exitCode = summary.ExitCode()
	}
	return err
}

// fail reports err on stderr and maps it to an exit code.
func (a *app) fail(err error) int {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		fmt.Fprintln(a.stderr, warnStyle.Render("Interrupted: remaining files were not copied."))
		return exitCanceled
	}
	fmt.Fprintln(a.stderr, failStyle.Render("Error:")+" "+err.Error())
	return exitFatal
}
