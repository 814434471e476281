package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/sealink/pkg/codec"
)

var vehicleCmd = &cobra.Command{
	Use:   "vehicle",
	Short: "Manage vehicles",
	Long:  `Add, look up, list and delete customer vehicles.`,
}

var vehicleAddCmd = &cobra.Command{
	Use:   "add <license> [flags]",
	Short: "Add a vehicle",
	Long: `Add a vehicle keyed by its licence plate. Text longer than the
record field is truncated (licence 10 bytes, phone 14 bytes).

Examples:
  ferry vehicle add ABC123 --phone 6045550001 --length 450 --height 175`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		phone, _ := cmd.Flags().GetString("phone")
		length, _ := cmd.Flags().GetInt32("length")
		height, _ := cmd.Flags().GetInt32("height")
		if length < 0 || height < 0 {
			return fmt.Errorf("length and height must not be negative")
		}

		v := codec.Vehicle{License: args[0], Phone: phone, LengthCM: length, HeightCM: height}
		if _, err := s.Vehicles.Add(v); err != nil {
			return fmt.Errorf("failed to add vehicle: %w", err)
		}

		v = v.Normalize()
		fmt.Fprintf(cmd.OutOrStdout(), "Added vehicle %s\n", v.License)
		return nil
	},
}

var vehicleGetCmd = &cobra.Command{
	Use:   "get <license>",
	Short: "Show a vehicle",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		v, err := s.Vehicles.Get(args[0])
		if err != nil {
			return fmt.Errorf("vehicle %s: %w", args[0], err)
		}
		return printVehicles(cmd.OutOrStdout(), []codec.Vehicle{v})
	},
}

var vehicleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all vehicles",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		vehicles, err := s.Vehicles.List()
		if err != nil {
			return err
		}
		return printVehicles(cmd.OutOrStdout(), vehicles)
	},
}

var vehicleDeleteCmd = &cobra.Command{
	Use:   "delete <license>",
	Short: "Delete a vehicle",
	Long: `Delete a vehicle. The last record in the file is moved into the
freed slot, so record order changes. Reservations are not touched.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		_, res, err := s.Vehicles.Delete(args[0])
		if err != nil {
			return fmt.Errorf("failed to delete vehicle %s: %w", args[0], err)
		}
		printDelete(cmd.OutOrStdout(), "vehicle "+args[0], res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(vehicleCmd)
	vehicleCmd.AddCommand(vehicleAddCmd, vehicleGetCmd, vehicleListCmd, vehicleDeleteCmd)

	vehicleAddCmd.Flags().String("phone", "", "Customer phone number")
	vehicleAddCmd.Flags().Int32("length", 0, "Vehicle length in centimetres")
	vehicleAddCmd.Flags().Int32("height", 0, "Vehicle height in centimetres")
}
