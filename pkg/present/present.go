// Package present renders a decoded Mach-O file and its DWARF debug
// sections as a human-readable text dump.
package present

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/zanesterling/mecha-dwarf/pkg/dwarf"
	"github.com/zanesterling/mecha-dwarf/pkg/macho"
	"github.com/zanesterling/mecha-dwarf/pkg/utils"
)

// DumpFile writes a textual dump of machoFile's load commands and, if
// dwarfFile is non-nil, its decoded DWARF sections. When verbose is true,
// the Mach-O header is additionally drawn as a word-by-word diagram, and
// unimplemented attribute values report their numeric form tag. Section
// offsets and lengths are not reported in either mode.
func DumpFile(w io.Writer, machoFile *macho.File, dwarfFile *dwarf.File, verbose bool) error {
	d := &dumper{w: w, verbose: verbose}
	d.dumpHeader(machoFile)
	d.dumpLoadCommands(machoFile)
	if dwarfFile != nil {
		d.dumpDWARF(dwarfFile)
	}
	return nil
}

type dumper struct {
	w       io.Writer
	verbose bool
}

func (d *dumper) dumpHeader(f *macho.File) {
	fmt.Fprintln(d.w, "=== Mach-O Header ===")
	fmt.Fprintf(d.w, "CPU: %s / %s\n", f.Header.CPUFamily, f.Header.CPUSubtype)
	fmt.Fprintf(d.w, "File Type: %s\n", f.Header.FileType)
	fmt.Fprintf(d.w, "Load Commands: %d (%d bytes)\n", f.Header.LoadsCount, f.Header.LoadsSize)
	if d.verbose {
		fmt.Fprintln(d.w, headerFrame(*f.Header))
	}
	fmt.Fprintln(d.w)
}

// headerFrame draws the 8 little-endian words of the Mach-O header as an
// ASCII bit-field diagram, one field per word.
func headerFrame(h macho.Header) string {
	words := []string{
		fmt.Sprintf("magic %s", utils.FormatUintHex(uint64(h.Magic), 8)),
		fmt.Sprintf("cputype %s", h.CPUFamily),
		fmt.Sprintf("cpusubtype %s", h.CPUSubtype),
		fmt.Sprintf("filetype %s", h.FileType),
		fmt.Sprintf("ncmds %d", h.LoadsCount),
		fmt.Sprintf("sizeofcmds %d", h.LoadsSize),
		fmt.Sprintf("flags %s", utils.FormatUintHex(uint64(h.Flags), 8)),
		"reserved",
	}
	fields := make([]utils.AsciiFrameField, len(words))
	for i, name := range words {
		fields[i] = utils.AsciiFrameField{Name: name, Begin: i * 32, Width: 32}
	}
	return utils.AsciiFrame(fields, len(words)*32, "bits", utils.AsciiFrameUnitLayout_LeftToRight, 2)
}

func (d *dumper) dumpLoadCommands(f *macho.File) {
	fmt.Fprintf(d.w, "=== Load Commands (%d) ===\n", len(f.LoadCommands))
	for i, lc := range f.LoadCommands {
		fmt.Fprintf(d.w, "  [%d] %s\n", i, d.summarizeLoadCommand(lc))
	}
	fmt.Fprintln(d.w)
}

func (d *dumper) summarizeLoadCommand(lc macho.LoadCommand) string {
	switch {
	case lc.Segment64 != nil:
		s := lc.Segment64
		return fmt.Sprintf("LC_SEGMENT_64 %q (%d sections, %d bytes)", s.Name, len(s.Sections), s.FileSize)
	case lc.Symtab != nil:
		return fmt.Sprintf("LC_SYMTAB nsyms=%d stroff=%#x strsize=%d", lc.Symtab.NSyms, lc.Symtab.StrOff, lc.Symtab.StrSize)
	case lc.UUID != nil:
		return fmt.Sprintf("LC_UUID %x", lc.UUID.UUID)
	case lc.BuildVersion != nil:
		bv := lc.BuildVersion
		return fmt.Sprintf("LC_BUILD_VERSION platform=%s minos=%#x sdk=%#x tools=%d", macho.PlatformString(bv.Platform), bv.MinOS, bv.SDK, len(bv.Tools))
	case lc.Unrecognized != nil:
		return fmt.Sprintf("LC_UNKNOWN tag=%#x size=%d", lc.Unrecognized.RawTag, lc.Size)
	default:
		return fmt.Sprintf("(tag %#x, size %d)", lc.Tag, lc.Size)
	}
}

func (d *dumper) dumpDWARF(f *dwarf.File) {
	fmt.Fprintln(d.w, "=== DWARF Sections ===")
	for _, s := range f.Sections {
		d.dumpSection(s)
	}
}

func (d *dumper) dumpSection(s dwarf.Section) {
	fmt.Fprintf(d.w, "--- %s ---\n", s.Name)

	switch data := s.Data.(type) {
	case dwarf.AbbrevSectionData:
		d.dumpAbbrevTables(data.Tables)
	case dwarf.InfoSectionData:
		d.dumpCompileUnits(data.Units)
	case dwarf.LineSectionData:
		d.dumpLineHeader(data.Header)
	case dwarf.UnrecognizedSectionData:
		fmt.Fprintf(d.w, "(%d bytes, not decoded)\n", data.Length)
	}

	fmt.Fprintln(d.w)
}

// dumpAbbrevTables prints every declaration set found in a __debug_abbrev
// section, in ascending offset order, each with its declarations in
// ascending code order — both map iterations are otherwise nondeterministic
// and would make dump output vary run to run.
func (d *dumper) dumpAbbrevTables(tables map[uint64]dwarf.AbbrevTable) {
	offsets := make([]uint64, 0, len(tables))
	for offset := range tables {
		offsets = append(offsets, offset)
	}
	sort.Slice(offsets, func(i, j int) bool { return offsets[i] < offsets[j] })

	for _, offset := range offsets {
		fmt.Fprintf(d.w, "Abbrev Set @%#x:\n", offset)
		d.dumpAbbrevTable(tables[offset])
	}
}

func (d *dumper) dumpAbbrevTable(table dwarf.AbbrevTable) {
	codes := make([]uint64, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })

	for _, code := range codes {
		decl := table[code]
		fmt.Fprintf(d.w, "[%d] %s DW_CHILDREN=%v\n", code, decl.Tag, decl.HasChildren)
		for _, spec := range decl.Specs {
			fmt.Fprintf(d.w, "    %s %s\n", spec.Name, spec.Form)
		}
	}
}

func (d *dumper) dumpCompileUnits(units []dwarf.CompileUnit) {
	for i, cu := range units {
		fmt.Fprintf(d.w, "Compile Unit %d: version=%d address_size=%d abbrev_offset=%#x\n",
			i, cu.Header.Version, cu.Header.AddressSize, cu.Header.DebugAbbrevOffset)
		if cu.Root != nil {
			d.dumpDIE(cu.Root, 1)
		}
	}
}

func (d *dumper) dumpDIE(die *dwarf.DIE, depth int) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(d.w, "%s%s\n", indent, die.Tag)
	for _, attr := range die.Attributes {
		fmt.Fprintf(d.w, "%s  %s %s\n", indent, attr.Name, d.formatAttrValue(attr.Value))
	}
	for _, child := range die.Children {
		d.dumpDIE(child, depth+1)
	}
}

func (d *dumper) formatAttrValue(v dwarf.AttrValue) string {
	if u, ok := v.(dwarf.Unimplemented); ok && d.verbose {
		return fmt.Sprintf("%s (form=%#x)", u.String(), uint32(u.Form))
	}
	return v.String()
}

func (d *dumper) dumpLineHeader(h *dwarf.LineProgramHeader) {
	if h == nil {
		fmt.Fprintln(d.w, "(empty)")
		return
	}
	fmt.Fprintf(d.w, "version=%d header_length=%d min_instruction_length=%d max_ops_per_instruction=%d default_is_stmt=%v line_base=%d line_range=%d opcode_base=%d\n",
		h.Version, h.HeaderLength, h.MinimumInstructionLength, h.MaximumOperationsPerInstruction, h.DefaultIsStmt, h.LineBase, h.LineRange, h.OpcodeBase)

	for i, dir := range h.IncludeDirectories {
		fmt.Fprintf(d.w, "  include_directory[%d] %s\n", i+1, dir)
	}
	for i, file := range h.FileNames {
		fmt.Fprintf(d.w, "  file_name[%d] %s (dir=%d)\n", i+1, file.Name, file.DirectoryIndex)
	}
}
