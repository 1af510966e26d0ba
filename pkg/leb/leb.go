// Package leb implements the LEB128 variable-length integer codec that
// DWARF uses throughout its debug sections: unsigned (ULEB128) and signed
// (SLEB128) integers, encoded as a little-endian base-128 byte sequence
// where every non-final byte has its high bit set.
//
// See https://en.wikipedia.org/wiki/LEB128 and the DWARF standard at
// dwarfstd.org for the on-disk format.
package leb

// continuationBit marks a byte as non-final: there are more payload bytes
// to come.
const continuationBit = 0x80

// payloadMask extracts the low 7 payload bits of a LEB128 byte.
const payloadMask = 0x7f

// signBit is the sign bit of a 7-bit LEB128 payload group.
const signBit = 0x40

// EncodeUnsigned encodes n as an unsigned LEB128 byte sequence. The output
// has length ceil(bits(n)/7), with length 1 for n == 0.
func EncodeUnsigned(n uint64) []byte {
	out := make([]byte, 0, 10)
	for {
		b := byte(n & payloadMask)
		n >>= 7
		if n != 0 {
			out = append(out, b|continuationBit)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

// DecodeUnsigned decodes an unsigned LEB128 value from the front of bytes.
// It returns the decoded value and the number of bytes consumed.
//
// It fails with ErrTruncated if bytes is exhausted before a terminating
// byte (high bit clear) is found, and with ErrOverflow if the encoded
// value would not fit in 64 bits.
func DecodeUnsigned(bytes []byte) (uint64, int, error) {
	var val uint64
	var shift uint

	for i, b := range bytes {
		if shift >= 64 {
			return 0, 0, makeError(ErrOverflow, "after %d bytes", i)
		}

		// At shift 63 only the lowest payload bit still fits in 64 bits.
		if shift == 63 && b&payloadMask > 1 {
			return 0, 0, makeError(ErrOverflow, "after %d bytes", i+1)
		}

		val |= uint64(b&payloadMask) << shift
		if b&continuationBit == 0 {
			return val, i + 1, nil
		}
		shift += 7
	}

	return 0, 0, makeError(ErrTruncated, "ran out of bytes decoding unsigned LEB128")
}

// EncodeSigned encodes n as a signed LEB128 byte sequence using the same
// framing as EncodeUnsigned. Encoding stops once the remaining value is
// fully represented by the sign bit of the last emitted payload byte: n==0
// with that bit clear, or n==-1 with that bit set.
func EncodeSigned(n int64) []byte {
	out := make([]byte, 0, 10)
	for {
		b := byte(n & payloadMask)
		n >>= 7

		done := (n == 0 && b&signBit == 0) || (n == -1 && b&signBit != 0)
		if !done {
			out = append(out, b|continuationBit)
		} else {
			out = append(out, b)
			break
		}
	}
	return out
}

// DecodeSigned decodes a signed LEB128 value from the front of bytes. It
// returns the decoded value and the number of bytes consumed.
//
// If the sign bit of the final payload byte is set and the accumulated
// shift is less than 64, the result is sign-extended.
func DecodeSigned(bytes []byte) (int64, int, error) {
	var val int64
	var shift uint
	var b byte

	i := 0
	for {
		if i >= len(bytes) {
			return 0, 0, makeError(ErrTruncated, "ran out of bytes decoding signed LEB128")
		}
		if shift >= 64 {
			return 0, 0, makeError(ErrOverflow, "after %d bytes", i)
		}

		b = bytes[i]
		val |= int64(b&payloadMask) << shift
		shift += 7
		i++

		if b&continuationBit == 0 {
			break
		}
	}

	if shift < 64 && b&signBit != 0 {
		val |= -(int64(1) << shift)
	}

	return val, i, nil
}
