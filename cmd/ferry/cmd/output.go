package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/ssargent/sealink/pkg/codec"
	"github.com/ssargent/sealink/pkg/ferry"
	"github.com/ssargent/sealink/pkg/store"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func printVehicles(out io.Writer, vehicles []codec.Vehicle) error {
	if len(vehicles) == 0 {
		fmt.Fprintln(out, "No vehicles found")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "LICENSE\tPHONE\tLENGTH\tHEIGHT\tSPECIAL")
	for _, v := range vehicles {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", v.License, v.Phone, v.LengthCM, v.HeightCM, yesNo(v.IsSpecial()))
	}
	return w.Flush()
}

func printVessels(out io.Writer, vessels []codec.Vessel) error {
	if len(vessels) == 0 {
		fmt.Fprintln(out, "No vessels found")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "NAME\tHCL\tLCL")
	for _, v := range vessels {
		fmt.Fprintf(w, "%s\t%d\t%d\n", v.Name, v.HighCeilingLane, v.LowCeilingLane)
	}
	return w.Flush()
}

func printSailings(out io.Writer, sailings []codec.Sailing) error {
	if len(sailings) == 0 {
		fmt.Fprintln(out, "No sailings found")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tVESSEL\tREMAINING HCL\tREMAINING LCL")
	for _, s := range sailings {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", s.ID, s.Vessel, s.RemainingHCL, s.RemainingLCL)
	}
	return w.Flush()
}

func printSailingStatus(out io.Writer, st ferry.SailingStatus) error {
	w := newTable(out)
	fmt.Fprintf(w, "Sailing:\t%s\n", st.Sailing.ID)
	fmt.Fprintf(w, "Vessel:\t%s\n", st.Sailing.Vessel)
	fmt.Fprintf(w, "Remaining HCL:\t%d\n", st.Sailing.RemainingHCL)
	fmt.Fprintf(w, "Remaining LCL:\t%d\n", st.Sailing.RemainingLCL)
	fmt.Fprintf(w, "Reservations:\t%d\n", st.Reservations)
	fmt.Fprintf(w, "Checked in:\t%d\n", st.CheckedIn)
	return w.Flush()
}

func printReservations(out io.Writer, reservations []codec.Reservation) error {
	if len(reservations) == 0 {
		fmt.Fprintln(out, "No reservations found")
		return nil
	}

	w := newTable(out)
	fmt.Fprintln(w, "ID\tLICENSE\tSAILING\tCHECKED IN")
	for _, r := range reservations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.License, r.SailingID, yesNo(r.CheckedIn))
	}
	return w.Flush()
}

func printStats(out io.Writer, stats []store.FileStat) error {
	w := newTable(out)
	fmt.Fprintln(w, "FILE\tRECORD SIZE\tBYTES\tRECORDS\tTRAILING\tSTATUS")
	for _, s := range stats {
		status := "ok"
		if s.Corrupt() {
			status = "CORRUPT"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\n", s.Path, s.RecordSize, s.SizeBytes, s.Records, s.TrailingBytes, status)
	}
	return w.Flush()
}

func printDelete(out io.Writer, what string, res store.DeleteResult) {
	if res.Relocated {
		fmt.Fprintf(out, "Deleted %s (record %d moved into slot %d, %d remaining)\n", what, res.From, res.Index, res.Remaining)
		return
	}
	fmt.Fprintf(out, "Deleted %s (%d remaining)\n", what, res.Remaining)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
