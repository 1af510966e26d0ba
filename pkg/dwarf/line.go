package dwarf

import (
	"encoding/binary"

	"github.com/zanesterling/mecha-dwarf/pkg/leb"
)

// lineHeaderFixedSize is the size of the __debug_line prologue fields
// that precede opcode_base (which is read separately, since it sizes the
// standard_opcode_lengths table after it): unit_length(4) + version(2) +
// header_length(4) + minimum_instruction_length(1) +
// maximum_operations_per_instruction(1) + default_is_stmt(1) +
// line_base(1) + line_range(1).
const lineHeaderFixedSize = 15

// FileEntry is one entry of a __debug_line program's file_names list: a
// source file name plus the index of its include directory (0 means "the
// compilation directory", matching DWARF's own convention) and the
// file's modification time/length, which this decoder does not interpret.
type FileEntry struct {
	Name             string
	DirectoryIndex   uint64
	ModificationTime uint64
	Length           uint64
}

// LineProgramHeader is the prologue of a __debug_line program: everything
// up to (but not including) the line-number program's own opcode stream.
// This decoder reads the prologue only; it does not run the line-number
// state machine that follows it (that belongs to a source-level
// debugger, not a binary decoder).
type LineProgramHeader struct {
	UnitLength                      uint32
	Version                         uint16
	HeaderLength                    uint32
	MinimumInstructionLength        uint8
	MaximumOperationsPerInstruction uint8
	DefaultIsStmt                   bool
	LineBase                        int8
	LineRange                       uint8
	OpcodeBase                      uint8

	// StandardOpcodeLengths has OpcodeBase-1 entries, one per standard
	// opcode the program may use.
	StandardOpcodeLengths []uint8

	// IncludeDirectories is the list of include-directory paths the
	// program's file_names entries index into, in declaration order.
	IncludeDirectories []string

	// FileNames is the program's file_names list, in declaration order.
	FileNames []FileEntry
}

// parseLineProgramHeader reads a __debug_line section's prologue: its
// fixed fields, the standard opcode length table, and the
// include_directories and file_names lists per §4.3.3's data model.
func parseLineProgramHeader(data []byte) (*LineProgramHeader, error) {
	if len(data) < lineHeaderFixedSize {
		return nil, makeError(ErrTruncated, "need %d bytes for line program header, got %d", lineHeaderFixedSize, len(data))
	}

	h := &LineProgramHeader{
		UnitLength:                      binary.LittleEndian.Uint32(data[0:4]),
		Version:                         binary.LittleEndian.Uint16(data[4:6]),
		HeaderLength:                    binary.LittleEndian.Uint32(data[6:10]),
		MinimumInstructionLength:        data[10],
		MaximumOperationsPerInstruction: data[11],
		DefaultIsStmt:                   data[12] != 0,
		LineBase:                        int8(data[13]),
		LineRange:                       data[14],
	}

	offset := lineHeaderFixedSize
	if offset >= len(data) {
		return nil, makeError(ErrTruncated, "missing opcode_base")
	}
	h.OpcodeBase = data[offset]
	offset++

	n := int(h.OpcodeBase) - 1
	if n < 0 {
		n = 0
	}
	if len(data) < offset+n {
		return nil, makeError(ErrTruncated, "missing standard_opcode_lengths")
	}
	h.StandardOpcodeLengths = append([]uint8(nil), data[offset:offset+n]...)
	offset += n

	includeDirs, consumed, err := parseNulTerminatedStringList(data[offset:])
	if err != nil {
		return nil, makeError(ErrTruncated, "reading include_directories: %v", err)
	}
	h.IncludeDirectories = includeDirs
	offset += consumed

	fileNames, consumed, err := parseFileNameList(data[offset:])
	if err != nil {
		return nil, err
	}
	h.FileNames = fileNames

	return h, nil
}

// parseNulTerminatedStringList reads a sequence of NUL-terminated
// strings terminated by an empty string (a lone NUL byte), the format
// __debug_line uses for include_directories.
func parseNulTerminatedStringList(data []byte) ([]string, int, error) {
	var list []string
	offset := 0

	for {
		s, n, err := readNulTerminatedString(data[offset:])
		if err != nil {
			return nil, 0, err
		}
		offset += n

		if s == "" {
			return list, offset, nil
		}
		list = append(list, s)
	}
}

// parseFileNameList reads __debug_line's file_names list: NUL-terminated
// name, then directory index / modification time / length as ULEB128
// values, terminated by an empty name.
func parseFileNameList(data []byte) ([]FileEntry, int, error) {
	var entries []FileEntry
	offset := 0

	for {
		name, n, err := readNulTerminatedString(data[offset:])
		if err != nil {
			return nil, 0, makeError(ErrTruncated, "reading file_names entry name: %v", err)
		}
		offset += n

		if name == "" {
			return entries, offset, nil
		}

		dirIndex, n, err := leb.DecodeUnsigned(data[offset:])
		if err != nil {
			return nil, 0, makeError(ErrTruncated, "reading file_names directory index: %v", err)
		}
		offset += n

		modTime, n, err := leb.DecodeUnsigned(data[offset:])
		if err != nil {
			return nil, 0, makeError(ErrTruncated, "reading file_names modification time: %v", err)
		}
		offset += n

		length, n, err := leb.DecodeUnsigned(data[offset:])
		if err != nil {
			return nil, 0, makeError(ErrTruncated, "reading file_names length: %v", err)
		}
		offset += n

		entries = append(entries, FileEntry{
			Name:             name,
			DirectoryIndex:   dirIndex,
			ModificationTime: modTime,
			Length:           length,
		})
	}
}

func readNulTerminatedString(data []byte) (string, int, error) {
	end := 0
	for end < len(data) && data[end] != 0 {
		end++
	}
	if end >= len(data) {
		return "", 0, makeError(ErrTruncated, "unterminated string")
	}
	return string(data[:end]), end + 1, nil
}
