package ferry

import (
	"errors"
	"fmt"

	"github.com/segmentio/ksuid"
	"github.com/ssargent/sealink/pkg/codec"
	"github.com/ssargent/sealink/pkg/store"
)

// Reservations is the reservations.dat repository. A reservation is
// identified by its (licence, sailing) pair and also carries a KSUID.
type Reservations struct {
	table *store.Table[codec.Reservation]
	newID func() string
}

func NewReservations(table *store.Table[codec.Reservation]) *Reservations {
	return &Reservations{
		table: table,
		newID: func() string { return ksuid.New().String() },
	}
}

func matchReservation(license, sailingID string) func(codec.Reservation) bool {
	license = codec.FitText(license, codec.ReservationLicenseWidth)
	sailingID = codec.FitText(sailingID, codec.ReservationSailingWidth)
	return func(r codec.Reservation) bool {
		return r.License == license && r.SailingID == sailingID
	}
}

func matchSailing(sailingID string) func(codec.Reservation) bool {
	sailingID = codec.FitText(sailingID, codec.ReservationSailingWidth)
	return func(r codec.Reservation) bool { return r.SailingID == sailingID }
}

// Add books a vehicle onto a sailing and returns the stored reservation
func (r *Reservations) Add(license, sailingID string) (codec.Reservation, error) {
	if codec.FitText(license, codec.ReservationLicenseWidth) == "" ||
		codec.FitText(sailingID, codec.ReservationSailingWidth) == "" {
		return codec.Reservation{}, ErrInvalidKey
	}

	_, _, err := r.table.Find(matchReservation(license, sailingID))
	switch {
	case err == nil:
		return codec.Reservation{}, fmt.Errorf("%w: %s on %s", ErrExists, license, sailingID)
	case !errors.Is(err, store.ErrNotFound):
		return codec.Reservation{}, err
	}

	res := codec.Reservation{License: license, SailingID: sailingID, ID: r.newID()}
	if _, err := r.table.Append(res); err != nil {
		return codec.Reservation{}, err
	}
	return res.Normalize(), nil
}

// Get finds the reservation for a vehicle on a sailing
func (r *Reservations) Get(license, sailingID string) (codec.Reservation, error) {
	_, res, err := r.table.Find(matchReservation(license, sailingID))
	return res, err
}

// GetByID finds a reservation by its KSUID
func (r *Reservations) GetByID(id string) (codec.Reservation, error) {
	_, res, err := r.table.Find(func(res codec.Reservation) bool { return res.ID == id })
	return res, err
}

// CheckIn marks a reservation as checked in. Checking in twice is a no-op.
func (r *Reservations) CheckIn(license, sailingID string) (codec.Reservation, error) {
	index, res, err := r.table.Find(matchReservation(license, sailingID))
	if err != nil {
		return res, err
	}
	if res.CheckedIn {
		return res, nil
	}
	res.CheckedIn = true
	if err := r.table.Put(index, res); err != nil {
		return codec.Reservation{}, err
	}
	return res, nil
}

// Delete removes the reservation for a vehicle on a sailing
func (r *Reservations) Delete(license, sailingID string) (codec.Reservation, store.DeleteResult, error) {
	return r.table.DeleteWhere(matchReservation(license, sailingID))
}

// List returns every reservation in file order
func (r *Reservations) List() ([]codec.Reservation, error) {
	return r.table.All()
}

// ListForSailing returns the reservations on one sailing
func (r *Reservations) ListForSailing(sailingID string) ([]codec.Reservation, error) {
	match := matchSailing(sailingID)
	var out []codec.Reservation
	err := r.table.Scan(func(_ int, res codec.Reservation) error {
		if match(res) {
			out = append(out, res)
		}
		return nil
	})
	return out, err
}

// CountForSailing returns how many reservations a sailing has and how many
// of them are checked in
func (r *Reservations) CountForSailing(sailingID string) (total, checkedIn int, err error) {
	match := matchSailing(sailingID)
	err = r.table.Scan(func(_ int, res codec.Reservation) error {
		if match(res) {
			total++
			if res.CheckedIn {
				checkedIn++
			}
		}
		return nil
	})
	return total, checkedIn, err
}
