package main

import (
	"fmt"
	"os"

	"flatcopy/internal/config"
	"flatcopy/internal/errors"

	"github.com/spf13/cobra"
)

const defaultConfigFile = "flatcopy.yaml"

// presetsCmd lists the built-in presets
func (a *app) presetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "presets",
		Short: "List the built-in presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(a.stdout, renderPresets(config.Presets()))
			return nil
		},
	}
}

// initCmd writes a starter config file
func (a *app) initCmd() *cobra.Command {
	var (
		preset string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a starter config file",
		Long: `Write a starter config file. The format follows the extension:
.toml writes TOML, anything else writes YAML. Defaults to ` + defaultConfigFile + `.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := defaultConfigFile
			if len(args) > 0 {
				path = args[0]
			}

			if _, err := os.Stat(path); err == nil && !force {
				return errors.NewConfigError("config file already exists, use --force to overwrite", path, errors.ConflictingOptions, nil)
			}

			fc, err := starterConfig(preset)
			if err != nil {
				return err
			}
			if err := config.SaveFile(fc, path); err != nil {
				return err
			}

			fmt.Fprintf(a.stdout, "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", "preset to record in the file")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")

	return cmd
}

// starterConfig returns the file contents written by init. Preset lists are
// not copied into the file; naming the preset keeps them in effect.
func starterConfig(preset string) (*config.FileConfig, error) {
	source, dest, jobs := config.DefaultSourceDir, config.DefaultDestDir, config.DefaultJobs
	fc := &config.FileConfig{
		SourceDir: &source,
		DestDir:   &dest,
		Jobs:      &jobs,
	}
	if preset == "" {
		return fc, nil
	}
	p, err := config.LookupPreset(preset)
	if err != nil {
		return nil, err
	}
	fc.Preset = string(p.Name)
	return fc, nil
}
