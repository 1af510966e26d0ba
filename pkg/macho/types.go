package macho

import "fmt"

// CPUFamily identifies the broad processor architecture a Mach-O file
// targets, decoded from the low byte of the header's cpu_type field.
type CPUFamily uint32

const (
	CPUFamilyX86 CPUFamily = 7
	CPUFamilyARM CPUFamily = 12
)

func (f CPUFamily) String() string {
	switch f {
	case CPUFamilyX86:
		return "x86"
	case CPUFamilyARM:
		return "arm"
	default:
		return "unknown"
	}
}

// CPUSubtype is a family-specific processor variant, decoded from
// cpu_subtype. Only the families this decoder recognizes (x86, ARM) map
// to a concrete CPUSubtype; any other family is BadCpuType, and an
// unrecognized subtype within x86 or ARM is BadCpuSubtype.
type CPUSubtype uint32

const (
	CPUSubtypeAllX86 CPUSubtype = 3
	CPUSubtypeAllARM CPUSubtype = 0
	CPUSubtypeARM64All CPUSubtype = 0
)

func (s CPUSubtype) String() string {
	switch s {
	case CPUSubtypeAllX86:
		return "AllX86"
	default:
		return "unknown"
	}
}

// FileType enumerates the Mach-O header's file_type field.
type FileType uint32

const (
	FileTypeObject        FileType = 0x1
	FileTypeExecute       FileType = 0x2
	FileTypeFvmLib        FileType = 0x3
	FileTypeCore          FileType = 0x4
	FileTypePreload       FileType = 0x5
	FileTypeDylib         FileType = 0x6
	FileTypeDylinker      FileType = 0x7
	FileTypeBundle        FileType = 0x8
	FileTypeDylibStub     FileType = 0x9
	FileTypeDsym          FileType = 0xa
	FileTypeKextBundle    FileType = 0xb
	FileTypeFileset       FileType = 0xc
	FileTypeDemandPagedExe FileType = FileTypeExecute
)

func (t FileType) String() string {
	switch t {
	case FileTypeObject:
		return "Object"
	case FileTypeExecute:
		return "DemandPagedExe"
	case FileTypeFvmLib:
		return "FvmLib"
	case FileTypeCore:
		return "Core"
	case FileTypePreload:
		return "Preload"
	case FileTypeDylib:
		return "Dylib"
	case FileTypeDylinker:
		return "Dylinker"
	case FileTypeBundle:
		return "Bundle"
	case FileTypeDylibStub:
		return "DylibStub"
	case FileTypeDsym:
		return "Dsym"
	case FileTypeKextBundle:
		return "KextBundle"
	case FileTypeFileset:
		return "Fileset"
	default:
		return "unknown"
	}
}

// isKnownFileType reports whether t is one of the recognized file types.
func isKnownFileType(t FileType) bool {
	switch t {
	case FileTypeObject, FileTypeExecute, FileTypeFvmLib, FileTypeCore,
		FileTypePreload, FileTypeDylib, FileTypeDylinker, FileTypeBundle,
		FileTypeDylibStub, FileTypeDsym, FileTypeKextBundle, FileTypeFileset:
		return true
	default:
		return false
	}
}

// LoadCmdTag identifies the variant of a load command.
type LoadCmdTag uint32

const (
	LoadCmdTagSymtab       LoadCmdTag = 0x02
	LoadCmdTagSegment64    LoadCmdTag = 0x19
	LoadCmdTagUUID         LoadCmdTag = 0x1B
	LoadCmdTagBuildVersion LoadCmdTag = 0x32
)

// Platform enumerates the platform field of an LC_BUILD_VERSION command.
type Platform uint32

const (
	PlatformMacOS   Platform = 1
	PlatformIOS     Platform = 2
	PlatformTvOS    Platform = 3
	PlatformWatchOS Platform = 4
)

// PlatformString renders a Platform, falling back to Other(n) for values
// this decoder doesn't name.
func PlatformString(p Platform) string {
	switch p {
	case PlatformMacOS:
		return "MacOS"
	case PlatformIOS:
		return "iOS"
	case PlatformTvOS:
		return "tvOS"
	case PlatformWatchOS:
		return "watchOS"
	default:
		return fmt.Sprintf("Other(%d)", uint32(p))
	}
}
