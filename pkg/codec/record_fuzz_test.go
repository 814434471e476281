//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"testing"
)

// FuzzVehicleCodec_RoundTrip checks the truncate/pad policy against random input
func FuzzVehicleCodec_RoundTrip(f *testing.F) {
	c := VehicleCodec{}

	f.Add("", "", int32(0), int32(0))
	f.Add("ABC123", "6045550001", int32(450), int32(175))
	f.Add("ABCDEFGHIJKLMNOP", "+1-604-555-0001-99", int32(-1), int32(2147483647))
	f.Add("  lead", "trail   ", int32(700), int32(200))

	f.Fuzz(func(t *testing.T, license, phone string, length, height int32) {
		v := Vehicle{License: license, Phone: phone, LengthCM: length, HeightCM: height}

		block := c.Encode(v)
		if len(block) != VehicleSize {
			t.Fatalf("Encoded size mismatch: got %d, want %d", len(block), VehicleSize)
		}

		got := c.Decode(block)
		if got != v.Normalize() {
			t.Errorf("Decode mismatch: got %+v, want %+v", got, v.Normalize())
		}

		if !bytes.Equal(c.Encode(got), block) {
			t.Errorf("Re-encoding decoded record changed bytes")
		}

		if got.IsSpecial() != v.IsSpecial() {
			t.Errorf("IsSpecial changed across round trip")
		}
	})
}

// FuzzVehicleCodec_Decode checks arbitrary blocks decode and re-encode stably
func FuzzVehicleCodec_Decode(f *testing.F) {
	c := VehicleCodec{}

	f.Add(bytes.Repeat([]byte{' '}, VehicleSize))
	f.Add(make([]byte, VehicleSize))

	f.Fuzz(func(t *testing.T, block []byte) {
		if len(block) != VehicleSize {
			t.Skip("block must be exactly one record")
		}

		first := c.Decode(block)
		second := c.Decode(c.Encode(first))
		if first != second {
			t.Errorf("Decode not stable: %+v != %+v", first, second)
		}
	})
}
