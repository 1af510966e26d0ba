package dwarf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zanesterling/mecha-dwarf/pkg/macho"
)

func TestParseDWARF_AbbrevBeforeInfoRegardlessOfOrder(t *testing.T) {
	abbrev := []byte{0x01, 0x11, 0x01, 0x03, 0x08, 0x00, 0x00, 0x00}
	cuBody := []byte{0x01, 'h', 'i', 0x00, 0x00}
	infoHeader := []byte{12, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x08}
	info := append(append([]byte{}, infoHeader...), cuBody...)

	// __debug_info is declared before __debug_abbrev in the segment, which
	// must not matter to decoding.
	image := append(append([]byte{}, info...), abbrev...)

	seg := &macho.Segment64{
		Name: "__DWARF",
		Sections: []macho.Section64{
			{Name: "__debug_info", SegmentName: "__DWARF", Offset: 0, Size: uint64(len(info))},
			{Name: "__debug_abbrev", SegmentName: "__DWARF", Offset: uint32(len(info)), Size: uint64(len(abbrev))},
		},
	}

	file, err := ParseDWARF(seg, image)
	require.NoError(t, err)
	require.Len(t, file.Sections, 2)

	assert.Equal(t, "__debug_info", file.Sections[0].Name)
	infoData, ok := file.Sections[0].Data.(InfoSectionData)
	require.True(t, ok)
	require.Len(t, infoData.Units, 1)
	assert.Equal(t, TagCompileUnit, infoData.Units[0].Root.Tag)

	assert.Equal(t, "__debug_abbrev", file.Sections[1].Name)
	abbrevData, ok := file.Sections[1].Data.(AbbrevSectionData)
	require.True(t, ok)
	require.Contains(t, abbrevData.Tables, uint64(0))
	assert.Contains(t, abbrevData.Tables[0], uint64(1))
}

func TestParseDWARF_MultipleCompileUnitsEachWithOwnAbbrevSet(t *testing.T) {
	firstAbbrev := []byte{0x01, 0x11, 0x01, 0x03, 0x08, 0x00, 0x00, 0x00} // offset 0, tag compile_unit
	secondAbbrev := []byte{0x01, 0x2e, 0x00, 0x00, 0x00}                  // offset 8, tag subprogram
	abbrev := append(append([]byte{}, firstAbbrev...), secondAbbrev...)

	cuBody := []byte{0x01, 'h', 'i', 0x00, 0x00}
	makeInfoHeader := func(abbrevOffset uint32) []byte {
		h := []byte{12, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x08}
		h[6] = byte(abbrevOffset)
		h[7] = byte(abbrevOffset >> 8)
		h[8] = byte(abbrevOffset >> 16)
		h[9] = byte(abbrevOffset >> 24)
		return h
	}

	var info []byte
	info = append(info, makeInfoHeader(0)...)
	info = append(info, cuBody...)
	info = append(info, makeInfoHeader(uint32(len(firstAbbrev)))...)
	info = append(info, cuBody...)

	image := append(append([]byte{}, abbrev...), info...)

	seg := &macho.Segment64{
		Name: "__DWARF",
		Sections: []macho.Section64{
			{Name: "__debug_abbrev", SegmentName: "__DWARF", Offset: 0, Size: uint64(len(abbrev))},
			{Name: "__debug_info", SegmentName: "__DWARF", Offset: uint32(len(abbrev)), Size: uint64(len(info))},
		},
	}

	file, err := ParseDWARF(seg, image)
	require.NoError(t, err)

	infoData, ok := file.Sections[1].Data.(InfoSectionData)
	require.True(t, ok)
	require.Len(t, infoData.Units, 2)
	assert.Equal(t, TagCompileUnit, infoData.Units[0].Root.Tag)
	assert.Equal(t, TagSubprogram, infoData.Units[1].Root.Tag)
}

func TestParseDWARF_MissingAbbrevTable(t *testing.T) {
	infoHeader := []byte{12, 0x00, 0x00, 0x00, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x08}
	cuBody := []byte{0x01, 'h', 'i', 0x00, 0x00}
	info := append(append([]byte{}, infoHeader...), cuBody...)

	seg := &macho.Segment64{
		Name: "__DWARF",
		Sections: []macho.Section64{
			{Name: "__debug_info", SegmentName: "__DWARF", Offset: 0, Size: uint64(len(info))},
		},
	}

	_, err := ParseDWARF(seg, info)
	assertIsError(t, err, ErrMissingAbbrevTable)
}

func TestParseDWARF_UnrecognizedSection(t *testing.T) {
	data := []byte{1, 2, 3, 4}
	seg := &macho.Segment64{
		Name: "__DWARF",
		Sections: []macho.Section64{
			{Name: "__debug_str", SegmentName: "__DWARF", Offset: 0, Size: uint64(len(data))},
		},
	}

	file, err := ParseDWARF(seg, data)
	require.NoError(t, err)
	require.Len(t, file.Sections, 1)
	u, ok := file.Sections[0].Data.(UnrecognizedSectionData)
	require.True(t, ok)
	assert.Equal(t, 4, u.Length)
}
