package ferry

import (
	"github.com/ssargent/sealink/pkg/codec"
	"github.com/ssargent/sealink/pkg/store"
)

// Sailings is the sailings.dat repository, keyed by sailing ID
type Sailings struct {
	keyed[codec.Sailing]
}

func NewSailings(table *store.Table[codec.Sailing]) *Sailings {
	return &Sailings{keyed[codec.Sailing]{
		table: table,
		key:   func(s codec.Sailing) string { return s.ID },
		width: codec.SailingIDWidth,
	}}
}

func (r *Sailings) Add(s codec.Sailing) (int, error) {
	return r.add(s)
}

func (r *Sailings) Get(id string) (codec.Sailing, error) {
	_, s, err := r.get(id)
	return s, err
}

func (r *Sailings) Exists(id string) (bool, error) {
	return r.exists(id)
}

func (r *Sailings) List() ([]codec.Sailing, error) {
	return r.table.All()
}

// Update overwrites the stored sailing with the same ID in place
func (r *Sailings) Update(s codec.Sailing) error {
	index, _, err := r.get(s.ID)
	if err != nil {
		return err
	}
	return r.table.Put(index, s)
}

func (r *Sailings) Delete(id string) (codec.Sailing, store.DeleteResult, error) {
	return r.delete(id)
}
