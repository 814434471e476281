package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/ssargent/sealink/pkg/backup"
	"github.com/ssargent/sealink/pkg/config"
)

var backupCmd = &cobra.Command{
	Use:   "backup <archive>",
	Short: "Snapshot the record files into a compressed archive",
	Long: `Write every record file to a zstd-compressed tar archive. Take one
before deleting records from files you cannot afford to repair by hand.

Examples:
  ferry backup ./sealink-2025-08-02.tar.zst`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		names, err := dataFiles(a.cfg)
		if err != nil {
			return err
		}

		out, err := os.OpenFile(args[0], os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create archive: %w", err)
		}

		written, err := backup.Snapshot(out, a.cfg.DataDir, names)
		if cerr := out.Close(); cerr != nil && err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(args[0])
			return fmt.Errorf("backup failed: %w", err)
		}

		level.Info(a.logger).Log("msg", "backup written", "archive", args[0], "files", len(written))
		for _, name := range written {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backed up %d files to %s\n", len(written), args[0])
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <archive>",
	Short: "Restore record files from an archive",
	Long: `Extract an archive written by backup into the data directory,
replacing record files of the same name.

Examples:
  ferry restore ./sealink-2025-08-02.tar.zst --data-dir ./data`,
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}

		in, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		defer in.Close()

		restored, err := backup.Restore(in, a.cfg.DataDir)
		if err != nil {
			return fmt.Errorf("restore failed: %w", err)
		}

		level.Info(a.logger).Log("msg", "backup restored", "archive", args[0], "files", len(restored))
		for _, name := range restored {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Restored %d files into %s\n", len(restored), a.cfg.DataDir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(backupCmd, restoreCmd)
}

// dataFiles returns the record file names relative to the data directory.
// Files configured outside it cannot be archived.
func dataFiles(cfg *config.Config) ([]string, error) {
	var names []string
	for _, entity := range []string{config.Vehicles, config.Vessels, config.Sailings, config.Reservations} {
		rel, err := filepath.Rel(cfg.DataDir, cfg.Path(entity))
		if err != nil || rel != filepath.Base(rel) {
			return nil, fmt.Errorf("%s file %s is not directly inside %s", entity, cfg.Path(entity), cfg.DataDir)
		}
		names = append(names, rel)
	}
	return names, nil
}
