package codec

// Vehicle layout widths and offsets
const (
	VehicleLicenseWidth = 10
	VehiclePhoneWidth   = 14
	VehicleSize         = 32

	vehiclePhoneOffset  = VehicleLicenseWidth
	vehicleLengthOffset = vehiclePhoneOffset + VehiclePhoneWidth
	vehicleHeightOffset = vehicleLengthOffset + 4
)

// Oversize thresholds in centimetres. A vehicle above either one needs a
// high-ceiling lane.
const (
	SpecialHeightCM = 200
	SpecialLengthCM = 700
)

// Vehicle is a customer vehicle as stored in vehicles.dat
type Vehicle struct {
	License  string
	Phone    string
	LengthCM int32
	HeightCM int32
}

// IsSpecial reports whether the vehicle is oversize. Derived, never stored.
func (v Vehicle) IsSpecial() bool {
	return v.HeightCM > SpecialHeightCM || v.LengthCM > SpecialLengthCM
}

// Normalize returns v as it would read back from disk
func (v Vehicle) Normalize() Vehicle {
	v.License = FitText(v.License, VehicleLicenseWidth)
	v.Phone = FitText(v.Phone, VehiclePhoneWidth)
	return v
}

// Equal compares two vehicles field by field on their decoded representation,
// so padding differences do not matter
func (v Vehicle) Equal(o Vehicle) bool {
	return v.Normalize() == o.Normalize()
}

// VehicleCodec encodes vehicles into 32 byte blocks
type VehicleCodec struct{}

// Size implements Codec
func (VehicleCodec) Size() int { return VehicleSize }

// Encode implements Codec
func (VehicleCodec) Encode(v Vehicle) []byte {
	buf := make([]byte, VehicleSize)
	PutText(buf[:vehiclePhoneOffset], v.License)
	PutText(buf[vehiclePhoneOffset:vehicleLengthOffset], v.Phone)
	PutInt32(buf[vehicleLengthOffset:], v.LengthCM)
	PutInt32(buf[vehicleHeightOffset:], v.HeightCM)
	return buf
}

// Decode implements Codec
func (VehicleCodec) Decode(block []byte) Vehicle {
	return Vehicle{
		License:  Text(block[:vehiclePhoneOffset]),
		Phone:    Text(block[vehiclePhoneOffset:vehicleLengthOffset]),
		LengthCM: Int32(block[vehicleLengthOffset:vehicleHeightOffset]),
		HeightCM: Int32(block[vehicleHeightOffset:VehicleSize]),
	}
}
