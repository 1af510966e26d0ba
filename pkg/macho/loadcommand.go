package macho

import "encoding/binary"

const loadCmdPrefixSize = 8

// LoadCommand is a single Mach-O load command: the shared (tag, size)
// prefix plus one recognized variant payload, or an Unrecognized fallback
// that preserves the tag for diagnostics.
type LoadCommand struct {
	Tag  LoadCmdTag
	Size uint32

	Symtab       *SymtabCommand
	Segment64    *Segment64
	UUID         *UUIDCommand
	BuildVersion *BuildVersionCommand
	Unrecognized *UnrecognizedCommand
}

// SymtabCommand is an LC_SYMTAB load command.
type SymtabCommand struct {
	SymOff  uint32
	NSyms   uint32
	StrOff  uint32
	StrSize uint32
}

// UUIDCommand is an LC_UUID load command.
type UUIDCommand struct {
	UUID [16]byte
}

// ToolEntry is one build-tool record within an LC_BUILD_VERSION command.
type ToolEntry struct {
	Tool    uint32
	Version uint32
}

// BuildVersionCommand is an LC_BUILD_VERSION load command.
type BuildVersionCommand struct {
	Platform Platform
	MinOS    uint32
	SDK      uint32
	Tools    []ToolEntry
}

// UnrecognizedCommand preserves the tag of a load command this decoder
// doesn't model in detail. Its declared size is kept in the enclosing
// LoadCommand's Size, which the parser still uses to advance correctly.
type UnrecognizedCommand struct {
	RawTag uint32
}

// parseLoadCommands reads exactly header.LoadsCount load commands
// starting at data[headerSize:], enforcing that their sizes sum to
// header.LoadsSize.
func parseLoadCommands(data []byte, header *Header) ([]LoadCommand, error) {
	offset := headerSize
	var cmds []LoadCommand
	var totalSize uint32

	for i := uint32(0); i < header.LoadsCount; i++ {
		if offset+loadCmdPrefixSize > len(data) {
			return nil, makeError(ErrTruncated, "load command %d prefix runs off end of file", i)
		}

		rawTag := binary.LittleEndian.Uint32(data[offset : offset+4])
		size := binary.LittleEndian.Uint32(data[offset+4 : offset+8])

		if offset+int(size) > len(data) {
			return nil, makeError(ErrTruncated, "load command %d declares size %d past end of file", i, size)
		}
		if size < loadCmdPrefixSize {
			return nil, makeError(ErrTruncated, "load command %d size %d smaller than its own prefix", i, size)
		}

		body := data[offset+loadCmdPrefixSize : offset+int(size)]

		cmd, err := parseLoadCommand(LoadCmdTag(rawTag), size, body)
		if err != nil {
			return nil, err
		}

		cmds = append(cmds, *cmd)
		totalSize += size
		offset += int(size)
	}

	if totalSize != header.LoadsSize {
		return nil, makeError(ErrLoadsSizeMismatch, "commands sum to %d bytes, header declares %d", totalSize, header.LoadsSize)
	}

	return cmds, nil
}

func parseLoadCommand(tag LoadCmdTag, size uint32, body []byte) (*LoadCommand, error) {
	switch tag {
	case LoadCmdTagSymtab:
		if len(body) < 16 {
			return nil, makeError(ErrTruncated, "symtab command body too short")
		}
		return &LoadCommand{Tag: tag, Size: size, Symtab: &SymtabCommand{
			SymOff:  binary.LittleEndian.Uint32(body[0:4]),
			NSyms:   binary.LittleEndian.Uint32(body[4:8]),
			StrOff:  binary.LittleEndian.Uint32(body[8:12]),
			StrSize: binary.LittleEndian.Uint32(body[12:16]),
		}}, nil

	case LoadCmdTagSegment64:
		seg, err := parseSegment64(body)
		if err != nil {
			return nil, err
		}
		return &LoadCommand{Tag: tag, Size: size, Segment64: seg}, nil

	case LoadCmdTagUUID:
		if len(body) < 16 {
			return nil, makeError(ErrTruncated, "uuid command body too short")
		}
		var uuid [16]byte
		copy(uuid[:], body[0:16])
		return &LoadCommand{Tag: tag, Size: size, UUID: &UUIDCommand{UUID: uuid}}, nil

	case LoadCmdTagBuildVersion:
		bv, err := parseBuildVersion(size, body)
		if err != nil {
			return nil, err
		}
		return &LoadCommand{Tag: tag, Size: size, BuildVersion: bv}, nil

	default:
		return &LoadCommand{Tag: tag, Size: size, Unrecognized: &UnrecognizedCommand{RawTag: uint32(tag)}}, nil
	}
}

func parseBuildVersion(size uint32, body []byte) (*BuildVersionCommand, error) {
	const fixedSize = 0x18 - loadCmdPrefixSize // platform, minos, sdk, ntools
	if len(body) < fixedSize {
		return nil, makeError(ErrTruncated, "build_version command body too short")
	}

	platform := Platform(binary.LittleEndian.Uint32(body[0:4]))
	minOS := binary.LittleEndian.Uint32(body[4:8])
	sdk := binary.LittleEndian.Uint32(body[8:12])
	ntools := binary.LittleEndian.Uint32(body[12:16])

	if size != 0x18+8*ntools {
		return nil, makeError(ErrBadBuildCommandSize, "size=%d ntools=%d", size, ntools)
	}

	tools := make([]ToolEntry, ntools)
	for i := uint32(0); i < ntools; i++ {
		rec := body[fixedSize+int(i)*8 : fixedSize+int(i)*8+8]
		tools[i] = ToolEntry{
			Tool:    binary.LittleEndian.Uint32(rec[0:4]),
			Version: binary.LittleEndian.Uint32(rec[4:8]),
		}
	}

	return &BuildVersionCommand{Platform: platform, MinOS: minOS, SDK: sdk, Tools: tools}, nil
}
