package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/phobologic/swaglint/internal/config"
)

// errConfigExists is returned when init would overwrite a file without --force.
var errConfigExists = errors.New("configuration file already exists")

type initOptions struct {
	dryRun bool
	force  bool
}

// newInitCommand implements `swaglint init`, which writes the default
// configuration so it can be edited in place.
func newInitCommand() *cobra.Command {
	opts := &initOptions{}

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the default configuration file",
		Long: `Writes the embedded default configuration to ` + config.DefaultFile + `.

path defaults to ./` + config.DefaultFile + `. When path is a directory the file is
created inside it. An existing file is only replaced with --force.`,
		Example: `  # Print the defaults
  swaglint init --dry-run

  # Create ./` + config.DefaultFile + `
  swaglint init`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := config.DefaultFile
			if len(args) > 0 {
				path = args[0]
			}
			return runInit(cmd, path, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the configuration instead of writing it")
	cmd.Flags().BoolVar(&opts.force, "force", false, "Overwrite an existing file")
	return cmd
}

func runInit(cmd *cobra.Command, path string, opts *initOptions) error {
	data := config.Defaults()

	if opts.dryRun {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}

	path = targetPath(path)
	if _, err := os.Stat(path); err == nil && !opts.force {
		return fmt.Errorf("%s: %w (use --force to replace it)", path, errConfigExists)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "wrote default configuration to %s\n", path)
	return nil
}

// targetPath places the file inside path when path names a directory.
func targetPath(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, config.DefaultFile)
	}
	return path
}
