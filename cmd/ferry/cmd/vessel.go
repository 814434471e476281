package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/sealink/pkg/codec"
)

var vesselCmd = &cobra.Command{
	Use:   "vessel",
	Short: "Manage vessels",
	Long:  `Add, list and delete vessels and their lane capacities.`,
}

var vesselAddCmd = &cobra.Command{
	Use:   "add <name> [flags]",
	Short: "Add a vessel",
	Long: `Add a vessel with its total high-ceiling and low-ceiling lane length
in metres. Names longer than 25 bytes are truncated.

Examples:
  ferry vessel add "Queen of Nanaimo" --hcl 120 --lcl 300`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		hcl, _ := cmd.Flags().GetInt32("hcl")
		lcl, _ := cmd.Flags().GetInt32("lcl")
		if hcl < 0 || lcl < 0 {
			return fmt.Errorf("lane lengths must not be negative")
		}

		v := codec.Vessel{Name: args[0], HighCeilingLane: hcl, LowCeilingLane: lcl}
		if _, err := s.Vessels.Add(v); err != nil {
			return fmt.Errorf("failed to add vessel: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Added vessel %s\n", v.Normalize().Name)
		return nil
	},
}

var vesselListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all vessels",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		vessels, err := s.Vessels.List()
		if err != nil {
			return err
		}
		return printVessels(cmd.OutOrStdout(), vessels)
	},
}

var vesselDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a vessel",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		_, res, err := s.Vessels.Delete(args[0])
		if err != nil {
			return fmt.Errorf("failed to delete vessel %s: %w", args[0], err)
		}
		printDelete(cmd.OutOrStdout(), "vessel "+args[0], res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vesselCmd)
	vesselCmd.AddCommand(vesselAddCmd, vesselListCmd, vesselDeleteCmd)

	vesselAddCmd.Flags().Int32("hcl", 0, "High-ceiling lane length in metres")
	vesselAddCmd.Flags().Int32("lcl", 0, "Low-ceiling lane length in metres")
}
