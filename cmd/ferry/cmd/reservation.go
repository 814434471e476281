package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/ssargent/sealink/pkg/codec"
	"github.com/ssargent/sealink/pkg/ferry"
)

var reservationCmd = &cobra.Command{
	Use:     "reservation",
	Aliases: []string{"res"},
	Short:   "Manage reservations",
	Long:    `Book vehicles onto sailings, check them in, list and cancel bookings.`,
}

var reservationAddCmd = &cobra.Command{
	Use:   "add <license> <sailing-id>",
	Short: "Book a vehicle onto a sailing",
	Long: `Book a stored vehicle onto a stored sailing. Each booking gets a
KSUID. Lane capacity is not checked.

Examples:
  ferry reservation add ABC123 NANAIMO:02:14`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		res, err := book(s, args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Booked %s on %s (reservation %s)\n", res.License, res.SailingID, res.ID)
		return nil
	},
}

var reservationCheckInCmd = &cobra.Command{
	Use:   "checkin <license> <sailing-id>",
	Short: "Check a vehicle in for its sailing",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		res, err := s.Reservations.CheckIn(args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to check in %s on %s: %w", args[0], args[1], err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Checked in %s on %s\n", res.License, res.SailingID)
		return nil
	},
}

var reservationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List reservations",
	Long: `List every reservation, or only those on one sailing.

Examples:
  ferry reservation list
  ferry reservation list --sailing NANAIMO:02:14`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		var list []codec.Reservation
		if sailingID, _ := cmd.Flags().GetString("sailing"); sailingID != "" {
			list, err = s.Reservations.ListForSailing(sailingID)
		} else {
			list, err = s.Reservations.List()
		}
		if err != nil {
			return err
		}
		return printReservations(cmd.OutOrStdout(), list)
	},
}

var reservationDeleteCmd = &cobra.Command{
	Use:   "delete <license> <sailing-id>",
	Short: "Cancel a reservation",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := storeFrom(cmd)
		if err != nil {
			return err
		}

		_, res, err := s.Reservations.Delete(args[0], args[1])
		if err != nil {
			return fmt.Errorf("failed to delete reservation %s on %s: %w", args[0], args[1], err)
		}
		printDelete(cmd.OutOrStdout(), "reservation "+args[0]+" on "+args[1], res)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reservationCmd)
	reservationCmd.AddCommand(reservationAddCmd, reservationCheckInCmd, reservationListCmd, reservationDeleteCmd)

	reservationListCmd.Flags().String("sailing", "", "Only list reservations on this sailing")
}

// book adds a reservation after checking that both the vehicle and the
// sailing are on file
func book(s *ferry.Store, license, sailingID string) (codec.Reservation, error) {
	if _, err := s.Vehicles.Get(license); err != nil {
		return codec.Reservation{}, fmt.Errorf("vehicle %s: %w", license, err)
	}
	if _, err := s.Sailings.Get(sailingID); err != nil {
		return codec.Reservation{}, fmt.Errorf("sailing %s: %w", sailingID, err)
	}

	res, err := s.Reservations.Add(license, sailingID)
	if err != nil {
		return codec.Reservation{}, fmt.Errorf("failed to add reservation: %w", err)
	}
	return res, nil
}
