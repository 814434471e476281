/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"io"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
	"github.com/ssargent/sealink/pkg/config"
	"github.com/ssargent/sealink/pkg/ferry"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the config file and empty record files",
	Long: `Initialize a sealink data directory.

This command will:
- Write a default config file (unless one exists)
- Create the data directory
- Create an empty record file for each entity

Existing record files are opened, never truncated.

Examples:
  ferry init --data-dir ./data
  ferry init --config ./sealink.yaml --force`,
	Annotations: map[string]string{skipStore: "true"},
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")

		return initialize(cmd.OutOrStdout(), a, force)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "Overwrite an existing config file")
}

// initialize writes the config (when missing or forced) and creates every
// record file named by it
func initialize(out io.Writer, a *app, force bool) error {
	if !config.ConfigExists(a.configPath) || force {
		if err := config.SaveConfig(a.cfg, a.configPath); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote config: %s\n", a.configPath)
	} else {
		fmt.Fprintf(out, "Config already exists: %s (use --force to overwrite)\n", a.configPath)
	}

	s, err := ferry.Open(a.cfg)
	if err != nil {
		return fmt.Errorf("failed to create record files: %w", err)
	}
	defer s.Close()

	for _, f := range s.Files() {
		stat, err := f.Stat()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "  %s (%d records)\n", stat.Path, stat.Records)
	}

	level.Info(a.logger).Log("msg", "initialized data directory", "data_dir", a.cfg.DataDir)
	return nil
}
