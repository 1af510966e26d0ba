package present

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zanesterling/mecha-dwarf/pkg/dwarf"
	"github.com/zanesterling/mecha-dwarf/pkg/macho"
)

func TestDumpFile_HeaderAndLoadCommands(t *testing.T) {
	f := &macho.File{
		Header: &macho.Header{
			CPUFamily:  macho.CPUFamilyX86,
			CPUSubtype: macho.CPUSubtypeAllX86,
			FileType:   macho.FileTypeObject,
			LoadsCount: 1,
			LoadsSize:  72,
		},
		LoadCommands: []macho.LoadCommand{
			{
				Tag:  macho.LoadCmdTagSegment64,
				Size: 72,
				Segment64: &macho.Segment64{
					Name:     "__DWARF",
					FileSize: 100,
					Sections: []macho.Section64{{Name: "__debug_abbrev"}},
				},
			},
		},
	}

	var buf bytes.Buffer
	err := DumpFile(&buf, f, nil, false)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "=== Mach-O Header ===")
	assert.Contains(t, output, "CPU: x86 / AllX86")
	assert.Contains(t, output, "File Type: Object")
	assert.Contains(t, output, "=== Load Commands (1) ===")
	assert.Contains(t, output, `LC_SEGMENT_64 "__DWARF" (1 sections, 100 bytes)`)
}

func TestDumpFile_AbbrevSection(t *testing.T) {
	f := &macho.File{Header: &macho.Header{}}
	df := &dwarf.File{
		Sections: []dwarf.Section{
			{
				Name: "__debug_abbrev",
				Data: dwarf.AbbrevSectionData{
					Tables: map[uint64]dwarf.AbbrevTable{
						0: {
							1: {
								Code:        1,
								Tag:         dwarf.TagCompileUnit,
								HasChildren: true,
								Specs:       []dwarf.AttrSpec{{Name: dwarf.AttrName_, Form: dwarf.FormString}},
							},
						},
					},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, DumpFile(&buf, f, df, false))

	output := buf.String()
	assert.Contains(t, output, "--- __debug_abbrev ---")
	assert.Contains(t, output, "Abbrev Set @0x0:")
	assert.Contains(t, output, "[1] DW_TAG_compile_unit DW_CHILDREN=true")
	assert.Contains(t, output, "DW_AT_name DW_FORM_string")
}

func TestDumpFile_DebugInfoSection(t *testing.T) {
	f := &macho.File{Header: &macho.Header{}}
	root := &dwarf.DIE{
		Tag: dwarf.TagCompileUnit,
		Attributes: []dwarf.Attribute{
			{Name: dwarf.AttrName_, Value: dwarf.InlineString{Value: "hi"}},
		},
	}
	df := &dwarf.File{
		Sections: []dwarf.Section{
			{
				Name: "__debug_info",
				Data: dwarf.InfoSectionData{
					Units: []dwarf.CompileUnit{{
						Header: dwarf.CUHeader{Version: 4, AddressSize: 8},
						Root:   root,
					}},
				},
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, DumpFile(&buf, f, df, false))

	output := buf.String()
	assert.Contains(t, output, "Compile Unit 0: version=4 address_size=8")
	assert.Contains(t, output, "DW_TAG_compile_unit")
	assert.Contains(t, output, "DW_AT_name hi")
}

func TestDumpFile_UnrecognizedSection(t *testing.T) {
	f := &macho.File{Header: &macho.Header{}}
	df := &dwarf.File{
		Sections: []dwarf.Section{
			{Name: "__debug_str", Data: dwarf.UnrecognizedSectionData{Length: 42}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, DumpFile(&buf, f, df, false))
	assert.Contains(t, buf.String(), "(42 bytes, not decoded)")
}

func TestDumpFile_VerboseShowsFormTag(t *testing.T) {
	f := &macho.File{Header: &macho.Header{}}
	root := &dwarf.DIE{
		Tag: dwarf.TagBaseType,
		Attributes: []dwarf.Attribute{
			{Name: dwarf.AttrEncoding, Value: dwarf.Unimplemented{Form: dwarf.FormSdata}},
		},
	}
	df := &dwarf.File{
		Sections: []dwarf.Section{
			{Name: "__debug_info", Data: dwarf.InfoSectionData{Units: []dwarf.CompileUnit{{Root: root}}}},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, DumpFile(&buf, f, df, true))
	assert.Contains(t, buf.String(), "form=0xd")
}
