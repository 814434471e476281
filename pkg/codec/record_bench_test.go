//go:build bench
// +build bench

package codec

import (
	"testing"
)

func BenchmarkVehicleCodec_Encode(b *testing.B) {
	c := VehicleCodec{}
	v := Vehicle{License: "ABC123", Phone: "6045550001", LengthCM: 450, HeightCM: 175}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Encode(v)
	}
}

func BenchmarkVehicleCodec_Decode(b *testing.B) {
	c := VehicleCodec{}
	block := c.Encode(Vehicle{License: "ABC123", Phone: "6045550001", LengthCM: 450, HeightCM: 175})

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Decode(block)
	}
}

func BenchmarkReservationCodec_RoundTrip(b *testing.B) {
	c := ReservationCodec{}
	r := Reservation{License: "ABC123", SailingID: "NANAIMO:14:09", ID: "2Hn1Ft2ZzW9vpGSc6sZGCRrQ2xv"}

	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = c.Decode(c.Encode(r))
	}
}
