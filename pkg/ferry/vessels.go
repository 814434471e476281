package ferry

import (
	"github.com/ssargent/sealink/pkg/codec"
	"github.com/ssargent/sealink/pkg/store"
)

// Vessels is the vessels.dat repository, keyed by vessel name
type Vessels struct {
	keyed[codec.Vessel]
}

func NewVessels(table *store.Table[codec.Vessel]) *Vessels {
	return &Vessels{keyed[codec.Vessel]{
		table: table,
		key:   func(v codec.Vessel) string { return v.Name },
		width: codec.VesselNameWidth,
	}}
}

func (r *Vessels) Add(v codec.Vessel) (int, error) {
	return r.add(v)
}

func (r *Vessels) Get(name string) (codec.Vessel, error) {
	_, v, err := r.get(name)
	return v, err
}

func (r *Vessels) Exists(name string) (bool, error) {
	return r.exists(name)
}

func (r *Vessels) List() ([]codec.Vessel, error) {
	return r.table.All()
}

func (r *Vessels) Delete(name string) (codec.Vessel, store.DeleteResult, error) {
	return r.delete(name)
}
