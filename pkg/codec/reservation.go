package codec

// Reservation layout. The ID field holds a 27 character KSUID.
const (
	ReservationLicenseWidth = VehicleLicenseWidth
	ReservationSailingWidth = SailingIDWidth
	ReservationIDWidth      = 27
	ReservationSize         = 54

	reservationSailingOffset = ReservationLicenseWidth
	reservationCheckinOffset = reservationSailingOffset + ReservationSailingWidth
	reservationIDOffset      = reservationCheckinOffset + 1
)

// Reservation books a vehicle onto a sailing
type Reservation struct {
	License   string
	SailingID string
	CheckedIn bool
	ID        string
}

// Normalize returns r as it would read back from disk
func (r Reservation) Normalize() Reservation {
	r.License = FitText(r.License, ReservationLicenseWidth)
	r.SailingID = FitText(r.SailingID, ReservationSailingWidth)
	r.ID = FitText(r.ID, ReservationIDWidth)
	return r
}

// Equal compares decoded representations
func (r Reservation) Equal(o Reservation) bool {
	return r.Normalize() == o.Normalize()
}

// ReservationCodec encodes reservations into 54 byte blocks
type ReservationCodec struct{}

func (ReservationCodec) Size() int { return ReservationSize }

func (ReservationCodec) Encode(r Reservation) []byte {
	buf := make([]byte, ReservationSize)
	PutText(buf[:reservationSailingOffset], r.License)
	PutText(buf[reservationSailingOffset:reservationCheckinOffset], r.SailingID)
	PutBool(buf[reservationCheckinOffset:], r.CheckedIn)
	PutText(buf[reservationIDOffset:], r.ID)
	return buf
}

func (ReservationCodec) Decode(block []byte) Reservation {
	return Reservation{
		License:   Text(block[:reservationSailingOffset]),
		SailingID: Text(block[reservationSailingOffset:reservationCheckinOffset]),
		CheckedIn: Bool(block[reservationCheckinOffset:reservationIDOffset]),
		ID:        Text(block[reservationIDOffset:ReservationSize]),
	}
}
