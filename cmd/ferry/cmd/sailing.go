package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/sealink/pkg/codec"
	"github.com/ssargent/sealink/pkg/ferry"
)

var sailingCmd = &cobra.Command{
	Use:   "sailing",
	Short: "Manage sailings",
	Long:  `Schedule, look up, list and delete sailings.`,
}

var sailingAddCmd = &cobra.Command{
	Use:   "add [flags]",
	Short: "Schedule a sailing",
	Long: `Schedule a sailing on an existing vessel. The sailing ID is built as
CITY:DD:HH from the arrival city, the day of the date and the departure hour.
Remaining lane lengths start at the vessel's capacity.

Examples:
  ferry sailing add --city NANAIMO --date 25-08-02 --time 1430 --vessel "Queen of Nanaimo"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		city, _ := cmd.Flags().GetString("city")
		date, _ := cmd.Flags().GetString("date")
		hhmm, _ := cmd.Flags().GetString("time")
		vesselName, _ := cmd.Flags().GetString("vessel")

		sailing, err := scheduleSailing(s, city, date, hhmm, vesselName)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added sailing %s on %s\n", sailing.ID, sailing.Vessel)
		return nil
	},
}

var sailingGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a sailing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		sailing, err := s.Sailings.Get(args[0])
		if err != nil {
			return fmt.Errorf("sailing %s: %w", args[0], err)
		}
		return printSailings(cmd.OutOrStdout(), []codec.Sailing{sailing})
	},
}

var sailingStatusCmd = &cobra.Command{
	Use:   "status <id>",
	Short: "Show remaining lanes and bookings for a sailing",
	Long: `Show a sailing's remaining lane lengths together with how many
vehicles are booked on it and how many have checked in.

Examples:
  ferry sailing status NANAIMO:02:14`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		status, err := s.SailingStatus(args[0])
		if err != nil {
			return fmt.Errorf("sailing %s: %w", args[0], err)
		}
		return printSailingStatus(cmd.OutOrStdout(), status)
	},
}

var sailingListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all sailings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		sailings, err := s.Sailings.List()
		if err != nil {
			return err
		}
		return printSailings(cmd.OutOrStdout(), sailings)
	},
}

var sailingDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a sailing",
	Long:  `Delete a sailing. Reservations on it are not touched.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		_, res, err := s.Sailings.Delete(args[0])
		if err != nil {
			return fmt.Errorf("failed to delete sailing %s: %w", args[0], err)
		}
		printDelete(cmd.OutOrStdout(), "sailing "+args[0], res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sailingCmd)
	sailingCmd.AddCommand(sailingAddCmd, sailingGetCmd, sailingStatusCmd, sailingListCmd, sailingDeleteCmd)

	sailingAddCmd.Flags().String("city", "", "Arrival city")
	sailingAddCmd.Flags().String("date", "", "Departure date as YY-MM-DD")
	sailingAddCmd.Flags().String("time", "", "Departure time as HHMM")
	sailingAddCmd.Flags().String("vessel", "", "Vessel name")
	for _, name := range []string{"city", "date", "time", "vessel"} {
		if err := sailingAddCmd.MarkFlagRequired(name); err != nil {
			panic(err)
		}
	}
}

// scheduleSailing adds a sailing whose remaining lanes are the vessel's full
// capacity
func scheduleSailing(s *ferry.Store, city, date, hhmm, vesselName string) (codec.Sailing, error) {
	id, err := codec.NewSailingID(city, date, hhmm)
	if err != nil {
		return codec.Sailing{}, err
	}

	vessel, err := s.Vessels.Get(vesselName)
	if err != nil {
		return codec.Sailing{}, fmt.Errorf("vessel %s: %w", vesselName, err)
	}

	sailing := codec.Sailing{
		ID:           id,
		Vessel:       vessel.Name,
		RemainingHCL: vessel.HighCeilingLane,
		RemainingLCL: vessel.LowCeilingLane,
	}
	if _, err := s.Sailings.Add(sailing); err != nil {
		return codec.Sailing{}, fmt.Errorf("failed to add sailing: %w", err)
	}
	return sailing, nil
}
