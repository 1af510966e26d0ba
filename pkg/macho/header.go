package macho

import "encoding/binary"

const headerSize = 32

const (
	magic32 uint32 = 0xFEEDFACE
	magic64 uint32 = 0xFEEDFACF

	cpuArch64Flag uint32 = 0x01000000
)

// Header is the 32-byte Mach-O file header, decoded field by field from
// little-endian on-disk words. The source reinterpreted these 32 bytes as
// a struct directly; that's a portability hazard (alignment, endianness,
// padding) this decoder avoids by reading explicit little-endian words.
type Header struct {
	Magic       uint32
	CPUFamily   CPUFamily
	CPUSubtype  CPUSubtype
	FileType    FileType
	LoadsCount  uint32
	LoadsSize   uint32
	Flags       uint32
	Reserved    uint32
	is64Bit     bool
}

// Is64Bit reports whether the header's magic/cpu_type identified a 64-bit
// Mach-O file. Only true is supported past header decoding.
func (h *Header) Is64Bit() bool { return h.is64Bit }

func parseHeader(data []byte) (*Header, error) {
	if len(data) < headerSize {
		return nil, makeError(ErrTruncated, "need %d bytes for header, got %d", headerSize, len(data))
	}

	words := make([]uint32, 8)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(data[i*4 : i*4+4])
	}

	magic := words[0]
	cpuType := words[1]
	cpuSubtype := words[2]

	is64Bit := cpuType&cpuArch64Flag != 0
	switch {
	case magic == magic64 && is64Bit:
		// ok
	case magic == magic32 && !is64Bit:
		return nil, makeError(ErrOnly64Bit, "32-bit Mach-O is not supported")
	default:
		return nil, makeError(ErrMagicMismatch, "magic %#x with 64-bit flag=%v", magic, is64Bit)
	}

	family := CPUFamily(cpuType & 0xff)
	subtype, err := decodeCPUSubtype(family, cpuSubtype)
	if err != nil {
		return nil, err
	}

	fileType := FileType(words[3])
	if !isKnownFileType(fileType) {
		return nil, makeError(ErrBadFileType, "file_type %#x", words[3])
	}

	return &Header{
		Magic:      magic,
		CPUFamily:  family,
		CPUSubtype: subtype,
		FileType:   fileType,
		LoadsCount: words[4],
		LoadsSize:  words[5],
		Flags:      words[6],
		Reserved:   words[7],
		is64Bit:    is64Bit,
	}, nil
}

func decodeCPUSubtype(family CPUFamily, raw uint32) (CPUSubtype, error) {
	// The subtype's feature-capability bits (top byte) are masked off;
	// only the base subtype identifies the variant this decoder names.
	base := raw & 0x00ffffff

	switch family {
	case CPUFamilyX86:
		switch CPUSubtype(base) {
		case CPUSubtypeAllX86:
			return CPUSubtypeAllX86, nil
		default:
			return 0, makeError(ErrBadCPUSubtype, "x86 subtype %#x", raw)
		}
	case CPUFamilyARM:
		switch CPUSubtype(base) {
		case CPUSubtypeAllARM:
			return CPUSubtypeAllARM, nil
		default:
			return 0, makeError(ErrBadCPUSubtype, "arm subtype %#x", raw)
		}
	default:
		return 0, makeError(ErrBadCPUType, "cpu family %#x", uint32(family))
	}
}
