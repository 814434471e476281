package codec

import "fmt"

// Sailing layout
const (
	SailingIDWidth     = 16
	SailingVesselWidth = VesselNameWidth
	SailingSize        = 49

	sailingVesselOffset = SailingIDWidth
	sailingHCLOffset    = sailingVesselOffset + SailingVesselWidth
	sailingLCLOffset    = sailingHCLOffset + 4
)

// Sailing is one scheduled departure and the lane length still unreserved
type Sailing struct {
	ID           string
	Vessel       string
	RemainingHCL int32
	RemainingLCL int32
}

// Normalize returns s as it would read back from disk
func (s Sailing) Normalize() Sailing {
	s.ID = FitText(s.ID, SailingIDWidth)
	s.Vessel = FitText(s.Vessel, SailingVesselWidth)
	return s
}

// Equal compares decoded representations
func (s Sailing) Equal(o Sailing) bool {
	return s.Normalize() == o.Normalize()
}

// NewSailingID builds a sailing identifier of the form CITY:DD:HH from an
// arrival city, a YY-MM-DD date and an HHMM departure time
func NewSailingID(city, date, hhmm string) (string, error) {
	if city == "" {
		return "", fmt.Errorf("arrival city is required")
	}
	if len(date) != 8 || date[2] != '-' || date[5] != '-' ||
		!digits(date[0:2]) || !digits(date[3:5]) || !digits(date[6:8]) {
		return "", fmt.Errorf("invalid date %q: want YY-MM-DD", date)
	}
	if month := twoDigit(date[3:5]); month < 1 || month > 12 {
		return "", fmt.Errorf("invalid date %q: month out of range", date)
	}
	if day := twoDigit(date[6:8]); day < 1 || day > 31 {
		return "", fmt.Errorf("invalid date %q: day out of range", date)
	}
	if len(hhmm) != 4 || !digits(hhmm) {
		return "", fmt.Errorf("invalid time %q: want HHMM", hhmm)
	}
	if twoDigit(hhmm[0:2]) > 23 || twoDigit(hhmm[2:4]) > 59 {
		return "", fmt.Errorf("invalid time %q: out of range", hhmm)
	}

	id := city + ":" + date[6:8] + ":" + hhmm[0:2]
	if len(id) > SailingIDWidth {
		return "", fmt.Errorf("sailing id %q exceeds %d bytes", id, SailingIDWidth)
	}
	return id, nil
}

func digits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// twoDigit parses two ASCII digits already checked by digits
func twoDigit(s string) int {
	return int(s[0]-'0')*10 + int(s[1]-'0')
}

// SailingCodec encodes sailings into 49 byte blocks
type SailingCodec struct{}

func (SailingCodec) Size() int { return SailingSize }

func (SailingCodec) Encode(s Sailing) []byte {
	buf := make([]byte, SailingSize)
	PutText(buf[:sailingVesselOffset], s.ID)
	PutText(buf[sailingVesselOffset:sailingHCLOffset], s.Vessel)
	PutInt32(buf[sailingHCLOffset:], s.RemainingHCL)
	PutInt32(buf[sailingLCLOffset:], s.RemainingLCL)
	return buf
}

func (SailingCodec) Decode(block []byte) Sailing {
	return Sailing{
		ID:           Text(block[:sailingVesselOffset]),
		Vessel:       Text(block[sailingVesselOffset:sailingHCLOffset]),
		RemainingHCL: Int32(block[sailingHCLOffset:sailingLCLOffset]),
		RemainingLCL: Int32(block[sailingLCLOffset:SailingSize]),
	}
}
