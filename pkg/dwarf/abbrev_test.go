package dwarf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAbbrevTable_Minimal(t *testing.T) {
	data := []byte{0x01, 0x11, 0x01, 0x03, 0x08, 0x00, 0x00, 0x00}

	table, consumed, err := parseAbbrevTable(data)
	require.NoError(t, err)
	require.Len(t, table, 1)
	assert.Equal(t, len(data), consumed)

	decl := table[1]
	assert.Equal(t, uint64(1), decl.Code)
	assert.Equal(t, TagCompileUnit, decl.Tag)
	assert.True(t, decl.HasChildren)
	require.Len(t, decl.Specs, 1)
	assert.Equal(t, AttrSpec{Name: AttrName_, Form: FormString}, decl.Specs[0])
}

func TestParseAbbrevTable_EmptyIsValid(t *testing.T) {
	table, consumed, err := parseAbbrevTable([]byte{0x00})
	require.NoError(t, err)
	assert.Empty(t, table)
	assert.Equal(t, 1, consumed)
}

func TestParseAbbrevTable_BadTag(t *testing.T) {
	// code=1, tag=0xff (unrecognized, outside the vendor range), ...
	data := []byte{0x01, 0xff, 0x01}
	_, _, err := parseAbbrevTable(data)
	assertIsError(t, err, ErrBadDieTag)
}

func TestParseAbbrevTable_BadChildrenFlag(t *testing.T) {
	data := []byte{0x01, 0x11, 0x02}
	_, _, err := parseAbbrevTable(data)
	assertIsError(t, err, ErrBadChildrenFlag)
}

func TestParseAbbrevTable_Truncated(t *testing.T) {
	data := []byte{0x01, 0x11}
	_, _, err := parseAbbrevTable(data)
	assertIsError(t, err, ErrTruncated)
}

func TestParseAbbrevTable_VendorTagRange(t *testing.T) {
	data := []byte{0x01, 0x80, 0x81, 0x01, 0x00, 0x00, 0x00, 0x00}
	table, _, err := parseAbbrevTable(data)
	require.NoError(t, err)
	require.Contains(t, table, uint64(1))
	assert.True(t, table[1].Tag >= TagLoUser && table[1].Tag <= TagHiUser)
}

func TestParseAbbrevTables_MultipleSetsAtDistinctOffsets(t *testing.T) {
	first := []byte{0x01, 0x11, 0x01, 0x03, 0x08, 0x00, 0x00, 0x00} // code 1, 8 bytes
	second := []byte{0x01, 0x2e, 0x00, 0x00, 0x00}                  // code 1, 5 bytes, different tag
	data := append(append([]byte{}, first...), second...)

	tables, err := parseAbbrevTables(data)
	require.NoError(t, err)
	require.Len(t, tables, 2)

	require.Contains(t, tables, uint64(0))
	require.Contains(t, tables, uint64(len(first)))

	assert.Equal(t, TagCompileUnit, tables[0][1].Tag)
	assert.Equal(t, TagSubprogram, tables[uint64(len(first))][1].Tag)
}
