// Package ferry stores vehicles, vessels, sailings and reservations in
// unsorted fixed-record files, one file per entity.
//
// Each repository is a thin wrapper over a store.Table: records are added by
// append, found by linear search on a decoded key, updated in place and
// removed by swap-delete. Lookup keys are normalized with the same
// truncation the codec applies, so an over-long key finds the record it was
// stored as. Business rules such as lane allocation and cascading deletes
// belong to callers.
package ferry

import (
	"errors"
	"fmt"

	"github.com/ssargent/sealink/pkg/codec"
	"github.com/ssargent/sealink/pkg/config"
	"github.com/ssargent/sealink/pkg/store"
)

// Errors
var (
	ErrExists     = errors.New("record already exists")
	ErrInvalidKey = errors.New("invalid key")
)

// Store holds the four entity repositories of one data directory
type Store struct {
	Vehicles     *Vehicles
	Vessels      *Vessels
	Sailings     *Sailings
	Reservations *Reservations
}

// Open opens (creating if needed) every entity file named by cfg. opts are
// applied to each file after the storage settings from cfg.
func Open(cfg *config.Config, opts ...store.Option) (*Store, error) {
	mode, err := cfg.Storage.Mode()
	if err != nil {
		return nil, err
	}
	opts = append([]store.Option{
		store.WithSyncWrites(cfg.Storage.SyncWrites),
		store.WithFileMode(mode),
	}, opts...)

	var opened []interface{ Close() error }
	closeAll := func() {
		for _, c := range opened {
			_ = c.Close()
		}
	}

	vehicles, err := store.OpenTable[codec.Vehicle](cfg.Path(config.Vehicles), codec.VehicleCodec{}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open vehicles: %w", err)
	}
	opened = append(opened, vehicles)

	vessels, err := store.OpenTable[codec.Vessel](cfg.Path(config.Vessels), codec.VesselCodec{}, opts...)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("failed to open vessels: %w", err)
	}
	opened = append(opened, vessels)

	sailings, err := store.OpenTable[codec.Sailing](cfg.Path(config.Sailings), codec.SailingCodec{}, opts...)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("failed to open sailings: %w", err)
	}
	opened = append(opened, sailings)

	reservations, err := store.OpenTable[codec.Reservation](cfg.Path(config.Reservations), codec.ReservationCodec{}, opts...)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("failed to open reservations: %w", err)
	}

	return &Store{
		Vehicles:     NewVehicles(vehicles),
		Vessels:      NewVessels(vessels),
		Sailings:     NewSailings(sailings),
		Reservations: NewReservations(reservations),
	}, nil
}

// SailingStatus is a sailing with its remaining lanes and booking counts
type SailingStatus struct {
	Sailing      codec.Sailing
	Reservations int
	CheckedIn    int
}

// SailingStatus looks up a sailing and counts the reservations on it
func (s *Store) SailingStatus(id string) (SailingStatus, error) {
	sailing, err := s.Sailings.Get(id)
	if err != nil {
		return SailingStatus{}, err
	}
	total, checkedIn, err := s.Reservations.CountForSailing(sailing.ID)
	if err != nil {
		return SailingStatus{}, err
	}
	return SailingStatus{Sailing: sailing, Reservations: total, CheckedIn: checkedIn}, nil
}

// Files returns the underlying record files in a fixed order
func (s *Store) Files() []*store.File {
	return []*store.File{
		s.Vehicles.table.File(),
		s.Vessels.table.File(),
		s.Sailings.table.File(),
		s.Reservations.table.File(),
	}
}

// Close closes every file, returning all close errors joined
func (s *Store) Close() error {
	var errs []error
	for _, f := range s.Files() {
		if err := f.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// keyed implements lookup by a single text key shared by the simple entities
type keyed[T any] struct {
	table *store.Table[T]
	key   func(T) string
	width int
}

func (k *keyed[T]) match(id string) func(T) bool {
	id = codec.FitText(id, k.width)
	return func(rec T) bool { return k.key(rec) == id }
}

func (k *keyed[T]) add(rec T) (int, error) {
	id := codec.FitText(k.key(rec), k.width)
	if id == "" {
		return 0, ErrInvalidKey
	}
	exists, err := k.exists(id)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, fmt.Errorf("%w: %s", ErrExists, id)
	}
	return k.table.Append(rec)
}

func (k *keyed[T]) get(id string) (int, T, error) {
	return k.table.Find(k.match(id))
}

func (k *keyed[T]) exists(id string) (bool, error) {
	_, _, err := k.get(id)
	if errors.Is(err, store.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (k *keyed[T]) delete(id string) (T, store.DeleteResult, error) {
	return k.table.DeleteWhere(k.match(id))
}
