package dwarf

import (
	"encoding/binary"

	"github.com/zanesterling/mecha-dwarf/pkg/leb"
)

// cuHeaderSize is the fixed size of a DWARF v4, 32-bit-format compile-unit
// header: unit_length(4) + version(2) + debug_abbrev_offset(4) +
// address_size(1).
const cuHeaderSize = 11

// CUHeader is a compile unit's fixed 11-byte header.
type CUHeader struct {
	UnitLength        uint32
	Version           uint16
	DebugAbbrevOffset uint32
	AddressSize       uint8
}

// CompileUnit is one compile unit's header plus its top-level DIE (whose
// children and siblings extend the tree recursively).
type CompileUnit struct {
	Header CUHeader
	Root   *DIE
}

// DIE is a single Debugging Information Entry: a tag, its attribute
// values in declaration order, and its children. Child references are
// owned (not numeric offsets) since the tree is built bottom-up during a
// single decode pass and never needs to be re-entered out of order; only
// cross-DIE attribute references (form ref1/2/4/8) are numeric offsets.
type DIE struct {
	Tag        Tag
	Attributes []Attribute
	Children   []*DIE
}

func parseCUHeader(data []byte) (*CUHeader, error) {
	if len(data) < cuHeaderSize {
		return nil, makeError(ErrTruncated, "need %d bytes for compile-unit header, got %d", cuHeaderSize, len(data))
	}

	return &CUHeader{
		UnitLength:        binary.LittleEndian.Uint32(data[0:4]),
		Version:           binary.LittleEndian.Uint16(data[4:6]),
		DebugAbbrevOffset: binary.LittleEndian.Uint32(data[6:10]),
		AddressSize:       data[10],
	}, nil
}

// parseDebugInfo parses the sequence of compile units in a __debug_info
// section, each bounded by its own unit_length. abbrevTables holds every
// declaration set found in __debug_abbrev, keyed by the section offset
// each set starts at; each compile unit is resolved against its own set,
// named by its header's debug_abbrev_offset, per the invariant that a
// DIE's abbreviation code only has meaning within its enclosing unit's
// table — a unit with a nonzero debug_abbrev_offset does not share the
// first unit's set. A single section may contain more than one compile
// unit; this loop runs until the section's bytes are exhausted.
func parseDebugInfo(data []byte, abbrevTables map[uint64]AbbrevTable) ([]CompileUnit, error) {
	var units []CompileUnit
	offset := 0

	for offset < len(data) {
		header, err := parseCUHeader(data[offset:])
		if err != nil {
			return nil, err
		}

		abbrevs, ok := abbrevTables[uint64(header.DebugAbbrevOffset)]
		if !ok {
			return nil, makeError(ErrBadAbbrevOffset, "%#x", header.DebugAbbrevOffset)
		}

		// unit_length counts every byte of the unit after the
		// unit_length field itself.
		unitEnd := offset + 4 + int(header.UnitLength)
		if unitEnd > len(data) {
			return nil, makeError(ErrTruncated, "compile unit declares length %d past end of section", header.UnitLength)
		}

		body := data[offset+cuHeaderSize : unitEnd]
		root, _, err := parseDIE(body, abbrevs, header.AddressSize)
		if err != nil {
			return nil, err
		}

		units = append(units, CompileUnit{Header: *header, Root: root})
		offset = unitEnd
	}

	return units, nil
}

// parseDIE parses one DIE and, if it has children, its full sibling
// sequence of descendants, per §4.3.2. It returns nil (not an error) when
// the abbrev code at the front of data is zero, signalling "end of sibling
// sequence" to the caller — callers distinguish that from a real DIE by
// checking the returned pointer.
func parseDIE(data []byte, abbrevs AbbrevTable, addressSize uint8) (*DIE, int, error) {
	code, n, err := leb.DecodeUnsigned(data)
	if err != nil {
		return nil, 0, makeError(ErrTruncated, "reading abbrev code: %v", err)
	}
	offset := n

	if code == 0 {
		return nil, offset, nil
	}

	decl, ok := abbrevs[code]
	if !ok {
		return nil, 0, makeError(ErrUnknownAbbrevCode, "%d", code)
	}

	die := &DIE{Tag: decl.Tag, Attributes: make([]Attribute, 0, len(decl.Specs))}

	for _, spec := range decl.Specs {
		value, consumed, err := parseAttrValue(spec.Form, data[offset:], addressSize)
		if err != nil {
			return nil, 0, err
		}
		offset += consumed
		die.Attributes = append(die.Attributes, Attribute{Name: spec.Name, Value: value})
	}

	if decl.HasChildren {
		for {
			child, consumed, err := parseDIE(data[offset:], abbrevs, addressSize)
			if err != nil {
				return nil, 0, err
			}
			offset += consumed
			if child == nil {
				break
			}
			die.Children = append(die.Children, child)
		}
	}

	return die, offset, nil
}

// parseAttrValue decodes one attribute value according to its form,
// returning the value and the number of bytes it consumed.
//
// Forms not handled here are, by definition, ones this decoder cannot
// determine the length of without interpreting them — rather than record
// a zero-length Unimplemented marker and silently desynchronize the rest
// of the attribute stream, decoding fails with UnsupportedAttrForm.
func parseAttrValue(form AttrForm, data []byte, addressSize uint8) (AttrValue, int, error) {
	switch form {
	case FormAddr:
		n := int(addressSize)
		if n == 0 {
			n = 8
		}
		if len(data) < n {
			return nil, 0, makeError(ErrTruncated, "form addr needs %d bytes", n)
		}
		return Address{Value: readUintLE(data[:n])}, n, nil

	case FormData1:
		return readFixedConstant(data, 1)
	case FormData2:
		return readFixedConstant(data, 2)
	case FormData4:
		return readFixedConstant(data, 4)
	case FormData8:
		return readFixedConstant(data, 8)

	case FormFlag:
		if len(data) < 1 {
			return nil, 0, makeError(ErrTruncated, "form flag needs 1 byte")
		}
		return Flag{Value: data[0] != 0}, 1, nil

	case FormFlagPresent:
		return Flag{Value: true}, 0, nil

	case FormRef1:
		v, n, err := readFixedConstant(data, 1)
		if err != nil {
			return nil, 0, err
		}
		return Reference{Offset: v.(Constant).Value}, n, nil
	case FormRef2:
		v, n, err := readFixedConstant(data, 2)
		if err != nil {
			return nil, 0, err
		}
		return Reference{Offset: v.(Constant).Value}, n, nil
	case FormRef4:
		v, n, err := readFixedConstant(data, 4)
		if err != nil {
			return nil, 0, err
		}
		return Reference{Offset: v.(Constant).Value}, n, nil
	case FormRef8:
		v, n, err := readFixedConstant(data, 8)
		if err != nil {
			return nil, 0, err
		}
		return Reference{Offset: v.(Constant).Value}, n, nil

	case FormSecOffset:
		v, n, err := readFixedConstant(data, 4)
		if err != nil {
			return nil, 0, err
		}
		return SectionOffset{Value: v.(Constant).Value}, n, nil

	case FormStrp:
		v, n, err := readFixedConstant(data, 4)
		if err != nil {
			return nil, 0, err
		}
		return StringTableOffset{Value: v.(Constant).Value}, n, nil

	case FormExprloc:
		length, n, err := leb.DecodeUnsigned(data)
		if err != nil {
			return nil, 0, makeError(ErrTruncated, "reading exprloc length: %v", err)
		}
		total := n + int(length)
		if len(data) < total {
			return nil, 0, makeError(ErrTruncated, "exprloc declares %d bytes past end of section", length)
		}
		block := make([]byte, length)
		copy(block, data[n:total])
		return Block{Bytes: block}, total, nil

	case FormString:
		end := 0
		for end < len(data) && data[end] != 0 {
			end++
		}
		if end >= len(data) {
			return nil, 0, makeError(ErrTruncated, "unterminated inline string")
		}
		return InlineString{Value: string(data[:end])}, end + 1, nil

	default:
		return nil, 0, makeError(ErrUnsupportedAttrForm, "%s", form)
	}
}

// readFixedConstant reads an n-byte little-endian unsigned constant.
func readFixedConstant(data []byte, n int) (AttrValue, int, error) {
	if len(data) < n {
		return nil, 0, makeError(ErrTruncated, "need %d bytes for constant", n)
	}
	return Constant{Value: readUintLE(data[:n])}, n, nil
}

// readUintLE decodes an unsigned little-endian integer from a 1, 2, 4, or
// 8 byte buffer.
func readUintLE(b []byte) uint64 {
	var v uint64
	for i := len(b) - 1; i >= 0; i-- {
		v = (v << 8) | uint64(b[i])
	}
	return v
}
