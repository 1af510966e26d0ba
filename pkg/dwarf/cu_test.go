package dwarf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var oneAttrAbbrevs = AbbrevTable{
	1: {
		Code:        1,
		Tag:         TagCompileUnit,
		HasChildren: true,
		Specs:       []AttrSpec{{Name: AttrName_, Form: FormString}},
	},
}

func TestParseDIE_OneAttr(t *testing.T) {
	data := []byte{0x01, 'h', 'i', 0x00, 0x00}

	die, consumed, err := parseDIE(data, oneAttrAbbrevs, 8)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)
	assert.Equal(t, TagCompileUnit, die.Tag)
	require.Len(t, die.Attributes, 1)
	assert.Equal(t, AttrName_, die.Attributes[0].Name)
	assert.Equal(t, InlineString{Value: "hi"}, die.Attributes[0].Value)
	assert.Empty(t, die.Children)
}

func TestParseDIE_UnknownAbbrevCode(t *testing.T) {
	data := []byte{0x02}
	_, _, err := parseDIE(data, oneAttrAbbrevs, 8)
	assertIsError(t, err, ErrUnknownAbbrevCode)
}

func TestParseDIE_UnsupportedForm(t *testing.T) {
	abbrevs := AbbrevTable{
		1: {Code: 1, Tag: TagBaseType, Specs: []AttrSpec{{Name: AttrEncoding, Form: FormSdata}}},
	}
	data := []byte{0x01, 0x00}
	_, _, err := parseDIE(data, abbrevs, 8)
	assertIsError(t, err, ErrUnsupportedAttrForm)
}

func TestParseDIE_ChildrenTerminated(t *testing.T) {
	abbrevs := AbbrevTable{
		1: {Code: 1, Tag: TagCompileUnit, HasChildren: true, Specs: nil},
		2: {Code: 2, Tag: TagSubprogram, HasChildren: false, Specs: nil},
	}
	// parent (code 1), one child (code 2), then end-of-children (code 0).
	data := []byte{0x01, 0x02, 0x00}
	die, consumed, err := parseDIE(data, abbrevs, 8)
	require.NoError(t, err)
	assert.Equal(t, len(data), consumed)
	require.Len(t, die.Children, 1)
	assert.Equal(t, TagSubprogram, die.Children[0].Tag)
}

func TestParseCUHeader(t *testing.T) {
	data := []byte{
		0x07, 0x00, 0x00, 0x00, // unit_length
		0x04, 0x00, // version
		0x00, 0x00, 0x00, 0x00, // debug_abbrev_offset
		0x08, // address_size
	}
	header, err := parseCUHeader(data)
	require.NoError(t, err)
	assert.Equal(t, uint32(7), header.UnitLength)
	assert.Equal(t, uint16(4), header.Version)
	assert.Equal(t, uint8(8), header.AddressSize)
}

func TestParseDebugInfo_OneUnit(t *testing.T) {
	cuBody := []byte{0x01, 'h', 'i', 0x00, 0x00}
	header := []byte{
		byte(7), 0x00, 0x00, 0x00, // unit_length = 7 (version+offset+addrsize+body = 2+4+1+5=12? see below)
		0x04, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x08,
	}
	// unit_length must equal bytes after itself: version(2)+abbrev_offset(4)+address_size(1)+body(5) = 12
	header[0] = 12

	data := append(append([]byte{}, header...), cuBody...)

	units, err := parseDebugInfo(data, map[uint64]AbbrevTable{0: oneAttrAbbrevs})
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, TagCompileUnit, units[0].Root.Tag)
	assert.Equal(t, InlineString{Value: "hi"}, units[0].Root.Attributes[0].Value)
}

func TestParseDebugInfo_MultipleUnits(t *testing.T) {
	cuBody := []byte{0x01, 'h', 'i', 0x00, 0x00}
	makeHeader := func() []byte {
		return []byte{12, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x08}
	}

	var data []byte
	data = append(data, makeHeader()...)
	data = append(data, cuBody...)
	data = append(data, makeHeader()...)
	data = append(data, cuBody...)

	units, err := parseDebugInfo(data, map[uint64]AbbrevTable{0: oneAttrAbbrevs})
	require.NoError(t, err)
	assert.Len(t, units, 2)
}

func TestParseDebugInfo_EachUnitUsesItsOwnAbbrevOffset(t *testing.T) {
	cuBody := []byte{0x01, 'h', 'i', 0x00, 0x00}
	makeHeader := func(abbrevOffset uint32) []byte {
		h := []byte{12, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x08}
		h[6] = byte(abbrevOffset)
		h[7] = byte(abbrevOffset >> 8)
		h[8] = byte(abbrevOffset >> 16)
		h[9] = byte(abbrevOffset >> 24)
		return h
	}

	var data []byte
	data = append(data, makeHeader(0)...)
	data = append(data, cuBody...)
	data = append(data, makeHeader(0x99)...)
	data = append(data, cuBody...)

	tables := map[uint64]AbbrevTable{
		0:    oneAttrAbbrevs,
		0x99: oneAttrAbbrevs,
	}

	units, err := parseDebugInfo(data, tables)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, uint32(0), units[0].Header.DebugAbbrevOffset)
	assert.Equal(t, uint32(0x99), units[1].Header.DebugAbbrevOffset)
}

func TestParseDebugInfo_UnknownAbbrevOffset(t *testing.T) {
	cuBody := []byte{0x01, 'h', 'i', 0x00, 0x00}
	header := []byte{12, 0x00, 0x00, 0x00, 0x04, 0x00, 0x05, 0x00, 0x00, 0x00, 0x08}
	data := append(append([]byte{}, header...), cuBody...)

	_, err := parseDebugInfo(data, map[uint64]AbbrevTable{0: oneAttrAbbrevs})
	assertIsError(t, err, ErrBadAbbrevOffset)
}
