package codec

// Vessel layout
const (
	VesselNameWidth = 25
	VesselSize      = 33

	vesselHCLOffset = VesselNameWidth
	vesselLCLOffset = vesselHCLOffset + 4
)

// Vessel is a ferry and its total lane length in metres for each ceiling class
type Vessel struct {
	Name            string
	HighCeilingLane int32
	LowCeilingLane  int32
}

// Normalize returns v as it would read back from disk
func (v Vessel) Normalize() Vessel {
	v.Name = FitText(v.Name, VesselNameWidth)
	return v
}

// Equal compares decoded representations
func (v Vessel) Equal(o Vessel) bool {
	return v.Normalize() == o.Normalize()
}

// VesselCodec encodes vessels into 33 byte blocks
type VesselCodec struct{}

func (VesselCodec) Size() int { return VesselSize }

func (VesselCodec) Encode(v Vessel) []byte {
	buf := make([]byte, VesselSize)
	PutText(buf[:vesselHCLOffset], v.Name)
	PutInt32(buf[vesselHCLOffset:], v.HighCeilingLane)
	PutInt32(buf[vesselLCLOffset:], v.LowCeilingLane)
	return buf
}

func (VesselCodec) Decode(block []byte) Vessel {
	return Vessel{
		Name:            Text(block[:vesselHCLOffset]),
		HighCeilingLane: Int32(block[vesselHCLOffset:vesselLCLOffset]),
		LowCeilingLane:  Int32(block[vesselLCLOffset:VesselSize]),
	}
}
