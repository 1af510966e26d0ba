package macho

import (
	"encoding/binary"
	"unicode/utf8"
)

const (
	// segment64BodySize is the size of an LC_SEGMENT_64 command's payload
	// after its shared 8-byte (tag, size) prefix: segname, vmaddr, vmsize,
	// fileoff, filesize, maxprot, initprot, nsects, flags.
	segment64BodySize   = 64
	section64RecordSize = 80
	fixedNameSize       = 16
)

// VMProtection is a Mach-O VM protection word (a bitmask of read/write/
// execute bits); this decoder preserves it as a raw value rather than
// enumerating its bits, since nothing downstream interprets them.
type VMProtection uint32

// Segment64 is a materialized LC_SEGMENT_64 load command: its fixed
// 64-byte header plus its inline array of Section64 records.
type Segment64 struct {
	Name     string
	VMAddr   uint64
	VMSize   uint64
	FileOff  uint64
	FileSize uint64
	MaxProt  VMProtection
	InitProt VMProtection
	Flags    uint32
	Sections []Section64
}

// Section64 is one 80-byte section descriptor nested inside a Segment64.
type Section64 struct {
	Name        string
	SegmentName string
	Addr        uint64
	Size        uint64
	Offset      uint32
	Align       uint32
	RelOff      uint32
	RelCount    uint32
	Flags       uint32
	Reserved1   uint32
	Reserved2   uint32
}

// readFixedName NUL-trims a fixed-size name buffer and validates it as
// UTF-8; an invalid sequence is a decode failure, not silently replaced.
func readFixedName(buf []byte) (string, error) {
	end := 0
	for end < len(buf) && buf[end] != 0 {
		end++
	}
	name := buf[:end]
	if !utf8.Valid(name) {
		return "", makeError(ErrBadSegmentName, "name %x is not valid UTF-8", buf)
	}
	return string(name), nil
}

// parseSegment64 decodes an LC_SEGMENT_64 command body (everything after
// the shared (tag, size) prefix) given the full remaining command bytes,
// which must have length size-8.
func parseSegment64(body []byte) (*Segment64, error) {
	if len(body) < segment64BodySize {
		return nil, makeError(ErrTruncated, "segment_64 header needs %d bytes, got %d", segment64BodySize, len(body))
	}

	name, err := readFixedName(body[0:16])
	if err != nil {
		return nil, err
	}

	seg := &Segment64{
		Name:     name,
		VMAddr:   binary.LittleEndian.Uint64(body[16:24]),
		VMSize:   binary.LittleEndian.Uint64(body[24:32]),
		FileOff:  binary.LittleEndian.Uint64(body[32:40]),
		FileSize: binary.LittleEndian.Uint64(body[40:48]),
		MaxProt:  VMProtection(binary.LittleEndian.Uint32(body[48:52])),
		InitProt: VMProtection(binary.LittleEndian.Uint32(body[52:56])),
		Flags:    binary.LittleEndian.Uint32(body[60:64]),
	}

	nsects := binary.LittleEndian.Uint32(body[56:60])

	sectionsStart := segment64BodySize
	needed := sectionsStart + int(nsects)*section64RecordSize
	if len(body) < needed {
		return nil, makeError(ErrTruncated, "segment %q declares %d sections but body is too short", seg.Name, nsects)
	}

	seg.Sections = make([]Section64, nsects)
	for i := 0; i < int(nsects); i++ {
		rec := body[sectionsStart+i*section64RecordSize : sectionsStart+(i+1)*section64RecordSize]
		sect, err := parseSection64(rec)
		if err != nil {
			return nil, err
		}
		seg.Sections[i] = *sect
	}

	return seg, nil
}

func parseSection64(rec []byte) (*Section64, error) {
	name, err := readFixedName(rec[0:16])
	if err != nil {
		return nil, err
	}
	segname, err := readFixedName(rec[16:32])
	if err != nil {
		return nil, err
	}

	return &Section64{
		Name:        name,
		SegmentName: segname,
		Addr:        binary.LittleEndian.Uint64(rec[32:40]),
		Size:        binary.LittleEndian.Uint64(rec[40:48]),
		Offset:      binary.LittleEndian.Uint32(rec[48:52]),
		Align:       binary.LittleEndian.Uint32(rec[52:56]),
		RelOff:      binary.LittleEndian.Uint32(rec[56:60]),
		RelCount:    binary.LittleEndian.Uint32(rec[60:64]),
		Flags:       binary.LittleEndian.Uint32(rec[64:68]),
		Reserved1:   binary.LittleEndian.Uint32(rec[68:72]),
		Reserved2:   binary.LittleEndian.Uint32(rec[72:76]),
		// rec[76:80] is a third reserved word present only in the 64-bit
		// section layout; unused by any consumer here.
	}, nil
}
