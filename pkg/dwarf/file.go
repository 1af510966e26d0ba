package dwarf

import "github.com/zanesterling/mecha-dwarf/pkg/macho"

const (
	sectionDebugAbbrev = "__debug_abbrev"
	sectionDebugInfo   = "__debug_info"
	sectionDebugLine   = "__debug_line"
)

// SectionData is the tagged union of what a DWARF section decodes to.
type SectionData interface {
	isSectionData()
}

// AbbrevSectionData is the decoded content of a __debug_abbrev section:
// every declaration set it contains, keyed by the byte offset each set
// starts at (the same offset a compile unit's debug_abbrev_offset
// names). A section commonly holds one set per compile unit.
type AbbrevSectionData struct{ Tables map[uint64]AbbrevTable }

func (AbbrevSectionData) isSectionData() {}

// InfoSectionData is the decoded content of a __debug_info section: one
// or more compile units, parsed against the abbreviation table found in
// the same segment's __debug_abbrev section.
type InfoSectionData struct{ Units []CompileUnit }

func (InfoSectionData) isSectionData() {}

// LineSectionData is the decoded prologue of a __debug_line section.
type LineSectionData struct{ Header *LineProgramHeader }

func (LineSectionData) isSectionData() {}

// UnrecognizedSectionData is a DWARF section this decoder doesn't parse.
// Its raw length is preserved for display; its bytes are not retained.
type UnrecognizedSectionData struct{ Length int }

func (UnrecognizedSectionData) isSectionData() {}

// Section is one section found in a __DWARF segment, in the order the
// Mach-O segment declares it.
type Section struct {
	Name string
	Data SectionData
}

// File is the decoded result of every DWARF section in a __DWARF segment.
type File struct {
	Sections []Section
}

// ParseDWARF decodes every section of segment, whose bytes live within
// image. __debug_abbrev is always parsed before __debug_info regardless
// of the order sections appear in the segment, since __debug_info can't
// be decoded without it; ParseDWARF fails with ErrMissingAbbrevTable if
// __debug_info is present without a corresponding __debug_abbrev.
func ParseDWARF(segment *macho.Segment64, image []byte) (*File, error) {
	sectionBytes := func(s macho.Section64) ([]byte, error) {
		start := uint64(s.Offset)
		end := start + s.Size
		if uint64(len(image)) < end {
			return nil, makeError(ErrTruncated, "section %q declares bytes past end of file", s.Name)
		}
		return image[start:end], nil
	}

	var abbrevTables map[uint64]AbbrevTable
	haveAbbrev := false
	haveInfo := false

	for _, s := range segment.Sections {
		switch s.Name {
		case sectionDebugAbbrev:
			raw, err := sectionBytes(s)
			if err != nil {
				return nil, err
			}
			tables, err := parseAbbrevTables(raw)
			if err != nil {
				return nil, err
			}
			abbrevTables = tables
			haveAbbrev = true
		case sectionDebugInfo:
			haveInfo = true
		}
	}

	if haveInfo && !haveAbbrev {
		return nil, ErrMissingAbbrevTable
	}

	file := &File{}
	for _, s := range segment.Sections {
		raw, err := sectionBytes(s)
		if err != nil {
			return nil, err
		}

		var data SectionData
		switch s.Name {
		case sectionDebugAbbrev:
			data = AbbrevSectionData{Tables: abbrevTables}
		case sectionDebugInfo:
			units, err := parseDebugInfo(raw, abbrevTables)
			if err != nil {
				return nil, err
			}
			data = InfoSectionData{Units: units}
		case sectionDebugLine:
			header, err := parseLineProgramHeader(raw)
			if err != nil {
				return nil, err
			}
			data = LineSectionData{Header: header}
		default:
			data = UnrecognizedSectionData{Length: len(raw)}
		}

		file.Sections = append(file.Sections, Section{Name: s.Name, Data: data})
	}

	return file, nil
}
