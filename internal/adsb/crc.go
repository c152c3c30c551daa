package adsb

// modesChecksumTable is the bit-indexed Mode S CRC-24 table: entry k is the
// 24-bit accumulator contribution of a 1 bit at position k of a 112-bit
// frame (generator polynomial 0xfff409). For 56-bit frames the first 56
// entries are skipped. The last 24 entries are zero because they fall on
// the CRC field itself.
var modesChecksumTable = [112]uint32{
	0x3935ea, 0x1c9af5, 0xf1b77e, 0x78dbbf, 0xc397db, 0x9e31e9, 0xb0e2f0, 0x587178,
	0x2c38bc, 0x161c5e, 0x0b0e2f, 0xfa7d13, 0x82c48d, 0xbe9842, 0x5f4c21, 0xd05c14,
	0x682e0a, 0x341705, 0xe5f186, 0x72f8c3, 0xc68665, 0x9cb936, 0x4e5c9b, 0xd8d449,
	0x939020, 0x49c810, 0x24e408, 0x127204, 0x093902, 0x049c81, 0xfdb444, 0x7eda22,
	0x3f6d11, 0xe04c8c, 0x702646, 0x381323, 0xe3f395, 0x8e03ce, 0x4701e7, 0xdc7af7,
	0x91c77f, 0xb719bb, 0xa476d9, 0xadc168, 0x56e0b4, 0x2b705a, 0x15b82d, 0xf52612,
	0x7a9309, 0xc2b380, 0x6159c0, 0x30ace0, 0x185670, 0x0c2b38, 0x06159c, 0x030ace,
	0x018567, 0xff38b7, 0x80665f, 0xbfc92b, 0xa01e91, 0xaff54c, 0x57faa6, 0x2bfd53,
	0xea04ad, 0x8af852, 0x457c29, 0xdd4410, 0x6ea208, 0x375104, 0x1ba882, 0x0dd441,
	0xf91024, 0x7c8812, 0x3e4409, 0xe0d800, 0x706c00, 0x383600, 0x1c1b00, 0x0e0d80,
	0x0706c0, 0x038360, 0x01c1b0, 0x00e0d8, 0x00706c, 0x003836, 0x001c1b, 0xfff409,
	0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000,
	0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000,
	0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000,
}

// Checksum computes the 24-bit Mode S checksum over the first bits bits of
// frame (bits is 56 or 112).
func Checksum(frame []byte, bits int) uint32 {
	offset := 0
	if bits == shortFrameBits {
		offset = longFrameBits - shortFrameBits
	}

	var crc uint32
	for j := 0; j < bits; j++ {
		byteIdx := j / 8
		bitIdx := uint(j % 8)
		if frame[byteIdx]&(1<<(7-bitIdx)) != 0 {
			crc ^= modesChecksumTable[j+offset]
		}
	}
	return crc
}

// Extract reads the 24-bit CRC carried in the last 3 bytes of the frame.
func Extract(frame []byte, bits int) uint32 {
	n := bits / 8
	return uint32(frame[n-3])<<16 | uint32(frame[n-2])<<8 | uint32(frame[n-1])
}

// RecoverICAO returns the candidate ICAO address obtained by XORing the
// computed checksum with the transmitted CRC field, as used by downlink
// formats that fold the address into the CRC instead of carrying it
// plainly in bytes 1-3.
func RecoverICAO(frame []byte, bits int) uint32 {
	return Checksum(frame, bits) ^ Extract(frame, bits)
}

// Verify reports whether the frame's transmitted CRC matches its computed
// checksum exactly (the binding used for DF11/17/18).
func Verify(frame []byte, bits int) bool {
	return Checksum(frame, bits) == Extract(frame, bits)
}

// FixSingle tries flipping each bit position of frame in turn; if a flip
// makes the checksum match the transmitted CRC, the flip is committed in
// place and its bit index is returned. Returns (-1, false) if no single
// bit flip repairs the frame.
func FixSingle(frame []byte, bits int) (int, bool) {
	for bit := 0; bit < bits; bit++ {
		flipBit(frame, bit)
		if Verify(frame, bits) {
			return bit, true
		}
		flipBit(frame, bit)
	}
	return -1, false
}

// FixTwo searches all unordered pairs of bit positions for a repair. It is
// O(bits^2) and is only ever invoked under an aggressive-correction policy
// for extended squitter (DF17) frames.
func FixTwo(frame []byte, bits int) (int, int, bool) {
	for i := 0; i < bits; i++ {
		flipBit(frame, i)
		for j := i + 1; j < bits; j++ {
			flipBit(frame, j)
			if Verify(frame, bits) {
				return i, j, true
			}
			flipBit(frame, j)
		}
		flipBit(frame, i)
	}
	return -1, -1, false
}

func flipBit(frame []byte, bit int) {
	byteIdx := bit / 8
	bitIdx := uint(bit % 8)
	frame[byteIdx] ^= 1 << (7 - bitIdx)
}
