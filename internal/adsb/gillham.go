package adsb

// decodeGillhamID extracts the 13-bit interleaved Gillham ID field (wire
// order from bit 12 down: C1 A1 C2 A2 C4 A4 M B1 D1 B2 D2 B4 D4; bit 6,
// the M bit, is ignored) into a standard Mode A
// hex-Gillham value where each decade's bits sit at their natural
// position: D at 0x1..0x4, A at 0x1000..0x4000, B at 0x100..0x400, C at
// 0x10..0x40.
func decodeGillhamID(id13 uint16) uint16 {
	var g uint16
	if id13&0x1000 != 0 {
		g |= 0x0010 // C1
	}
	if id13&0x0800 != 0 {
		g |= 0x1000 // A1
	}
	if id13&0x0400 != 0 {
		g |= 0x0020 // C2
	}
	if id13&0x0200 != 0 {
		g |= 0x2000 // A2
	}
	if id13&0x0100 != 0 {
		g |= 0x0040 // C4
	}
	if id13&0x0080 != 0 {
		g |= 0x4000 // A4
	}
	if id13&0x0020 != 0 {
		g |= 0x0100 // B1
	}
	if id13&0x0010 != 0 {
		g |= 0x0001 // D1
	}
	if id13&0x0008 != 0 {
		g |= 0x0200 // B2
	}
	if id13&0x0004 != 0 {
		g |= 0x0002 // D2
	}
	if id13&0x0002 != 0 {
		g |= 0x0400 // B4
	}
	if id13&0x0001 != 0 {
		g |= 0x0004 // D4
	}
	return g
}

// gillhamToAltitude converts a hex-Gillham Mode A value (as produced by
// decodeGillhamID) to a 100-ft-resolution altitude in feet, or ok=false
// if the C digit is zero or an invalid C combination, or any of the D/A/B
// bits indicate an invalid combination.
func gillhamToAltitude(modeA uint16) (int, bool) {
	if modeA&0x8889 != 0 || modeA&0x00f0 == 0 {
		return 0, false
	}

	var hundreds int
	if modeA&0x0010 != 0 {
		hundreds ^= 0x7 // C1
	}
	if modeA&0x0020 != 0 {
		hundreds ^= 0x3 // C2
	}
	if modeA&0x0040 != 0 {
		hundreds ^= 0x1 // C4
	}
	// Swap 7 and 5 so the valid C codes read 1..5; the two C
	// combinations left above 5 are not valid altitude codes.
	if hundreds&5 == 5 {
		hundreds ^= 2
	}
	if hundreds > 5 {
		return 0, false
	}

	var fives int
	if modeA&0x0002 != 0 {
		fives ^= 0xff // D2
	}
	if modeA&0x0004 != 0 {
		fives ^= 0x7f // D4
	}
	if modeA&0x1000 != 0 {
		fives ^= 0x3f // A1
	}
	if modeA&0x2000 != 0 {
		fives ^= 0x1f // A2
	}
	if modeA&0x4000 != 0 {
		fives ^= 0x0f // A4
	}
	if modeA&0x0100 != 0 {
		fives ^= 0x07 // B1
	}
	if modeA&0x0200 != 0 {
		fives ^= 0x03 // B2
	}
	if modeA&0x0400 != 0 {
		fives ^= 0x01 // B4
	}

	if fives&1 != 0 {
		hundreds = 6 - hundreds
	}

	altitude := fives*500 + hundreds*100 - 1300
	if altitude < -1200 || altitude > 126700 {
		return 0, false
	}
	return altitude, true
}

// decodeAC13 decodes the 13-bit altitude field used by DF0/4/16/20 (bits
// spanning byte 2 low 5 bits and all of byte 3). M is bit 6 (0x40 of
// byte 3), Q is bit 4 (0x10 of byte 3).
func decodeAC13(b2, b3 byte) (int, bool) {
	mBit := b3 & 0x40
	qBit := b3 & 0x10

	if mBit == 0 {
		if qBit != 0 {
			n := int(b2&0x1f)<<6 | int(b3&0x80)>>2 | int(b3&0x20)>>1 | int(b3&0x0f)
			return n*25 - 1000, true
		}
		id13 := uint16(b2&0x1f)<<8 | uint16(b3)
		return gillhamToAltitude(decodeGillhamID(id13))
	}

	// M set: altitude carried in meters, 25m granularity.
	n := int(b2&0x1f)<<6 | int(b3&0x80)>>2 | int(b3&0x20)>>1 | int(b3&0x0f)
	meters := float64(n) * 25.0
	return int(meters * 3.28084), true
}

// decodeAC12 decodes the 12-bit altitude field used by DF17 airborne
// position reports (no M bit; Q is bit 4 of the low byte).
func decodeAC12(field uint16) (int, bool) {
	qBit := field & 0x10
	if qBit != 0 {
		n := int(field&0x0fe0)>>1 | int(field&0x000f)
		return n*25 - 1000, true
	}
	id13 := (field&0x0fc0)<<1 | (field & 0x003f)
	return gillhamToAltitude(decodeGillhamID(id13))
}

// gillhamEncodeTable maps a 100-ft-grid altitude to the 13-bit
// interleaved Gillham field that decodes back to it. Built once from
// decodeGillhamID/gillhamToAltitude rather than re-deriving the Gray
// code arithmetic in reverse.
var gillhamEncodeTable = buildGillhamEncodeTable()

func buildGillhamEncodeTable() map[int]uint16 {
	table := make(map[int]uint16, 1360)
	for id13 := uint16(0); id13 < 0x2000; id13++ {
		alt, ok := gillhamToAltitude(decodeGillhamID(id13))
		if !ok {
			continue
		}
		if _, exists := table[alt]; !exists {
			table[alt] = id13
		}
	}
	return table
}

// encodeGillham is the inverse of gillhamToAltitude(decodeGillhamID(_)):
// given an altitude on the 100-ft grid in [-1200, 126700], it returns the
// 13-bit interleaved Gillham field that decodes back to that altitude.
func encodeGillham(altitude int) (uint16, bool) {
	id13, ok := gillhamEncodeTable[altitude]
	return id13, ok
}
