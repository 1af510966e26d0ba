// Package macho decodes 64-bit, non-fat Mach-O object files: the file
// header, its load commands, and for LC_SEGMENT_64 commands the segment
// record including its inline array of section descriptors.
//
// It performs no encoding, relocation, or linking, and does not support
// 32-bit or fat/universal Mach-O.
package macho

// File is a decoded Mach-O file: its header plus an ordered sequence of
// load commands.
type File struct {
	Header       *Header
	LoadCommands []LoadCommand
}

// ParseFile decodes a Mach-O file from a full in-memory image. The input
// is treated as a read-only byte slice; nothing in the returned File
// retains a reference into it.
func ParseFile(data []byte) (*File, error) {
	header, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	cmds, err := parseLoadCommands(data, header)
	if err != nil {
		return nil, err
	}

	return &File{Header: header, LoadCommands: cmds}, nil
}

// Segments returns every LC_SEGMENT_64 command's Segment64 record, in
// load-command order.
func (f *File) Segments() []*Segment64 {
	var segs []*Segment64
	for i := range f.LoadCommands {
		if s := f.LoadCommands[i].Segment64; s != nil {
			segs = append(segs, s)
		}
	}
	return segs
}

// SegmentNamed looks up a segment by its segname. This is a driver-level
// convenience, not a core decode operation: a well-formed Mach-O file
// simply lacking a segment by that name is not a decode failure, so it is
// reported as ErrSegmentNotFound rather than one of the structured decode
// errors.
func (f *File) SegmentNamed(name string) (*Segment64, error) {
	for _, seg := range f.Segments() {
		if seg.Name == name {
			return seg, nil
		}
	}
	return nil, makeError(ErrSegmentNotFound, "%q", name)
}
