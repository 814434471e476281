// Package codec packs ferry reservation records into fixed-width binary blocks.
//
// Every entity stored by sealink (vehicles, vessels, sailings and
// reservations) is written as a block of exactly N bytes, where N is fixed per
// entity type. A block is a concatenation of fixed-width sub-fields in a
// defined order; no field is self-delimiting and there is no header.
//
// # Field Encoding
//
// Text fields of width W:
//   - the source string is left-justified
//   - strings longer than W bytes are truncated (silently, not rejected)
//   - shorter strings are padded with ASCII space (0x20)
//
// Decoding strips trailing spaces only. Leading and embedded spaces, and any
// embedded NUL bytes, are preserved.
//
// Numeric fields are fixed-width signed integers in little-endian byte order.
// Boolean fields are a single byte: 0 is false, anything else is true.
//
// # Layouts
//
//	Vehicle      [License(10)][Phone(14)][LengthCM(4)][HeightCM(4)]                  32 bytes
//	Vessel       [Name(25)][HighCeilingLane(4)][LowCeilingLane(4)]                  33 bytes
//	Sailing      [ID(16)][Vessel(25)][RemainingHCL(4)][RemainingLCL(4)]             49 bytes
//	Reservation  [License(10)][SailingID(16)][CheckedIn(1)][ReservationID(27)]      54 bytes
//
// # Usage
//
//	c := codec.VehicleCodec{}
//
//	block := c.Encode(codec.Vehicle{License: "ABC123", Phone: "6045550001", LengthCM: 450, HeightCM: 175})
//	v := c.Decode(block)
//
// Encode never fails and is deterministic: structurally equal records produce
// byte-identical blocks. Decode never fails for a block of the codec's Size;
// passing a shorter block is a caller bug and panics with an index error.
//
// Because decoding normalizes padding, equality between records is defined on
// the decoded representation (see Vehicle.Equal), not on raw bytes.
//
// # Thread Safety
//
// All codecs in this package are stateless values and safe for concurrent use.
package codec
