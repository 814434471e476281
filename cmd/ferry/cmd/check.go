package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"github.com/spf13/cobra"
	"github.com/ssargent/sealink/pkg/ferry"
	"github.com/ssargent/sealink/pkg/store"
)

var errCorrupt = errors.New("record files have trailing bytes")

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report the integrity of every record file",
	Long: `Check that each record file's size is a whole multiple of its record
size. Trailing bytes are reported, never repaired. The command exits non-zero
when any file is corrupt.

Examples:
  ferry check
  ferry check --metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := appFrom(cmd)
		if err != nil {
			return err
		}
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		stats, err := checkFiles(s)
		if err != nil {
			return err
		}
		if err := printStats(cmd.OutOrStdout(), stats); err != nil {
			return err
		}

		if withMetrics, _ := cmd.Flags().GetBool("metrics"); withMetrics {
			fmt.Fprintln(cmd.OutOrStdout())
			if err := printMetrics(cmd.OutOrStdout(), a.registry); err != nil {
				return err
			}
		}

		for _, st := range stats {
			if st.Corrupt() {
				return errCorrupt
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("metrics", false, "Also print the operation counters collected by this run")
}

func checkFiles(s *ferry.Store) ([]store.FileStat, error) {
	files := s.Files()
	stats := make([]store.FileStat, 0, len(files))
	for _, f := range files {
		st, err := f.Stat()
		if err != nil {
			return nil, err
		}
		stats = append(stats, st)
	}
	return stats, nil
}

// printMetrics writes every family gathered from reg in the Prometheus text
// exposition format
func printMetrics(out io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	if len(families) == 0 {
		fmt.Fprintln(out, "No metrics collected")
		return nil
	}

	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("failed to write %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
