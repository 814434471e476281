/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/ssargent/sealink/pkg/config"
	"github.com/ssargent/sealink/pkg/ferry"
	"github.com/ssargent/sealink/pkg/logging"
	"github.com/ssargent/sealink/pkg/store"
)

type contextKey string

const appKey contextKey = "app"

// skipStore marks commands that manage the data files themselves
const skipStore = "skip-store"

// app is the per-invocation state shared by every command
type app struct {
	cfg        *config.Config
	configPath string
	logger     log.Logger
	registry   *prometheus.Registry
	store      *ferry.Store
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ferry",
	Short: "Sealink - ferry reservation record files",
	Long: `Sealink keeps vehicles, vessels, sailings and reservations in
unsorted fixed-length binary record files, one file per entity.

Examples:
  ferry init --data-dir ./data
  ferry vessel add "Queen of Nanaimo" --hcl 120 --lcl 300
  ferry sailing add --city NANAIMO --date 25-08-02 --time 1430 --vessel "Queen of Nanaimo"
  ferry check`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		logLevel, _ := cmd.Flags().GetString("log-level")

		if configPath == "" {
			configPath = config.GetDefaultConfigPath()
		}
		cfg, err := loadConfig(configPath, dataDir, logLevel)
		if err != nil {
			return err
		}

		logger, err := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level)
		if err != nil {
			return err
		}

		a := &app{
			cfg:        cfg,
			configPath: configPath,
			logger:     logger,
			registry:   prometheus.NewRegistry(),
		}

		if cmd.Annotations[skipStore] == "" {
			withMetrics, _ := cmd.Flags().GetBool("metrics")
			a.store, err = openStore(a, withMetrics || cfg.Metrics.Enabled)
			if err != nil {
				return err
			}
		}

		// Store in command context
		cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeStore(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if _, err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run executes the root command. Cobra skips PersistentPostRunE when RunE
// fails, so the store is closed here on that path.
func run() (*cobra.Command, error) {
	cmd, err := rootCmd.ExecuteC()
	if err != nil && cmd != nil {
		if cerr := closeStore(cmd); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}
	return cmd, err
}

// closeStore closes the store opened for cmd, if any. Closing twice is a no-op.
func closeStore(cmd *cobra.Command) error {
	if cmd.Context() == nil {
		return nil
	}
	a, ok := cmd.Context().Value(appKey).(*app)
	if !ok || a.store == nil {
		return nil
	}
	if err := a.store.Close(); err != nil {
		return fmt.Errorf("failed to close store: %w", err)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default ~/.config/sealink/config.yaml)")
	rootCmd.PersistentFlags().StringP("data-dir", "d", "", "Data directory, overrides the config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// loadConfig reads configPath if it exists, falling back to defaults, then
// applies command line overrides
func loadConfig(configPath, dataDir, logLevel string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if config.ConfigExists(configPath) {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func openStore(a *app, withMetrics bool) (*ferry.Store, error) {
	opts := []store.Option{store.WithLogger(a.logger)}
	if withMetrics {
		opts = append(opts, store.WithMetrics(store.NewMetrics(a.registry)))
	}

	s, err := ferry.Open(a.cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	level.Debug(a.logger).Log("msg", "store opened", "data_dir", a.cfg.DataDir)
	return s, nil
}

func appFrom(cmd *cobra.Command) (*app, error) {
	a, ok := cmd.Context().Value(appKey).(*app)
	if !ok {
		return nil, errors.New("command context not initialized")
	}
	return a, nil
}

func storeFrom(cmd *cobra.Command) (*ferry.Store, error) {
	a, err := appFrom(cmd)
	if err != nil {
		return nil, err
	}
	if a.store == nil {
		return nil, errors.New("store not open")
	}
	return a.store, nil
}
