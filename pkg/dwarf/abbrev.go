package dwarf

import "github.com/zanesterling/mecha-dwarf/pkg/leb"

// AttrSpec is one (attribute name, attribute form) pair within an
// abbreviation declaration's attribute list.
type AttrSpec struct {
	Name AttrName
	Form AttrForm
}

// AbbrevDecl is one declaration from __debug_abbrev: the schema that DIEs
// referencing its code are built from.
type AbbrevDecl struct {
	Code        uint64
	Tag         Tag
	HasChildren bool
	Specs       []AttrSpec
}

// AbbrevTable is the flat set of declarations parsed from one
// __debug_abbrev stream, keyed by code. It is built once, owned, and
// handed to the __debug_info parser as a read-only view — DIEs never hold
// a back-reference into it, only their numeric abbrev_code.
type AbbrevTable map[uint64]AbbrevDecl

// parseAbbrevTable parses one flat declaration set, stopping at (and
// consuming) its terminating zero code, and reports how many bytes of
// data it consumed so callers can locate the next set that follows it.
func parseAbbrevTable(data []byte) (AbbrevTable, int, error) {
	table := make(AbbrevTable)
	offset := 0

	for {
		code, n, err := leb.DecodeUnsigned(data[offset:])
		if err != nil {
			return nil, 0, makeError(ErrTruncated, "reading abbrev code: %v", err)
		}
		offset += n

		if code == 0 {
			return table, offset, nil
		}

		decl, consumed, err := parseAbbrevDecl(code, data[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += consumed

		table[code] = *decl
	}
}

// parseAbbrevTables parses every declaration set in a __debug_abbrev
// section, keyed by the byte offset each set starts at within the
// section — the same offset a compile unit header's debug_abbrev_offset
// names. A real multi-compile-unit binary places one null-terminated
// declaration set per compile unit at distinct offsets; a single table
// shared across every compile unit would resolve the second (and later)
// unit's abbrev codes against the wrong set.
func parseAbbrevTables(data []byte) (map[uint64]AbbrevTable, error) {
	tables := make(map[uint64]AbbrevTable)
	offset := 0

	for offset < len(data) {
		table, consumed, err := parseAbbrevTable(data[offset:])
		if err != nil {
			return nil, err
		}
		tables[uint64(offset)] = table
		offset += consumed
	}

	return tables, nil
}

// parseAbbrevDecl parses one declaration's body (tag, has_children, attr
// spec list) given that its code has already been consumed.
func parseAbbrevDecl(code uint64, data []byte) (*AbbrevDecl, int, error) {
	offset := 0

	rawTag, n, err := leb.DecodeUnsigned(data[offset:])
	if err != nil {
		return nil, 0, makeError(ErrTruncated, "reading tag for abbrev code %d: %v", code, err)
	}
	offset += n

	tag, err := classifyTag(rawTag)
	if err != nil {
		return nil, 0, err
	}

	if offset >= len(data) {
		return nil, 0, makeError(ErrTruncated, "abbrev code %d missing children flag", code)
	}
	childrenByte := data[offset]
	offset++
	if childrenByte != 0 && childrenByte != 1 {
		return nil, 0, makeError(ErrBadChildrenFlag, "abbrev code %d: byte %#x", code, childrenByte)
	}
	hasChildren := childrenByte == 1

	var specs []AttrSpec
	for {
		rawName, n, err := leb.DecodeUnsigned(data[offset:])
		if err != nil {
			return nil, 0, makeError(ErrTruncated, "reading attr name for abbrev code %d: %v", code, err)
		}
		offset += n

		rawForm, n, err := leb.DecodeUnsigned(data[offset:])
		if err != nil {
			return nil, 0, makeError(ErrTruncated, "reading attr form for abbrev code %d: %v", code, err)
		}
		offset += n

		if rawName == 0 && rawForm == 0 {
			break
		}

		specs = append(specs, AttrSpec{Name: AttrName(rawName), Form: AttrForm(rawForm)})
	}

	return &AbbrevDecl{Code: code, Tag: tag, HasChildren: hasChildren, Specs: specs}, offset, nil
}
