package ferry

import (
	"github.com/ssargent/sealink/pkg/codec"
	"github.com/ssargent/sealink/pkg/store"
)

// Vehicles is the vehicles.dat repository, keyed by licence plate
type Vehicles struct {
	keyed[codec.Vehicle]
}

// NewVehicles wraps an open vehicle table
func NewVehicles(table *store.Table[codec.Vehicle]) *Vehicles {
	return &Vehicles{keyed[codec.Vehicle]{
		table: table,
		key:   func(v codec.Vehicle) string { return v.License },
		width: codec.VehicleLicenseWidth,
	}}
}

// Add appends a vehicle. It fails with ErrExists if the licence is taken.
func (r *Vehicles) Add(v codec.Vehicle) (int, error) {
	return r.add(v)
}

// Get finds a vehicle by licence
func (r *Vehicles) Get(license string) (codec.Vehicle, error) {
	_, v, err := r.get(license)
	return v, err
}

// Exists reports whether a vehicle with the licence is stored
func (r *Vehicles) Exists(license string) (bool, error) {
	return r.exists(license)
}

// List returns every vehicle in file order
func (r *Vehicles) List() ([]codec.Vehicle, error) {
	return r.table.All()
}

// Delete removes a vehicle by licence
func (r *Vehicles) Delete(license string) (codec.Vehicle, store.DeleteResult, error) {
	return r.delete(license)
}
