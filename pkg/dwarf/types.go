package dwarf

import "fmt"

// Tag identifies the kind of a DIE (and the abbreviation declaration it's
// built from), per DWARF v4 §7.5.4.
type Tag uint32

const (
	TagArrayType           Tag = 0x01
	TagClassType           Tag = 0x02
	TagEntryPoint          Tag = 0x03
	TagEnumerationType     Tag = 0x04
	TagFormalParameter     Tag = 0x05
	TagImportedDeclaration Tag = 0x08
	TagLabel               Tag = 0x0a
	TagLexicalBlock        Tag = 0x0b
	TagMember              Tag = 0x0d
	TagPointerType         Tag = 0x0f
	TagReferenceType       Tag = 0x10
	TagCompileUnit         Tag = 0x11
	TagStringType          Tag = 0x12
	TagStructureType       Tag = 0x13
	TagSubroutineType      Tag = 0x15
	TagTypedef             Tag = 0x16
	TagUnionType           Tag = 0x17
	TagUnspecifiedParams   Tag = 0x18
	TagVariant             Tag = 0x19
	TagCommonBlock         Tag = 0x1a
	TagCommonInclusion     Tag = 0x1b
	TagInheritance         Tag = 0x1c
	TagInlinedSubroutine   Tag = 0x1d
	TagModule              Tag = 0x1e
	TagPtrToMemberType     Tag = 0x1f
	TagSetType             Tag = 0x20
	TagSubrangeType        Tag = 0x21
	TagWithStmt            Tag = 0x22
	TagAccessDeclaration   Tag = 0x23
	TagBaseType            Tag = 0x24
	TagCatchBlock          Tag = 0x25
	TagConstType           Tag = 0x26
	TagConstant            Tag = 0x27
	TagEnumerator          Tag = 0x28
	TagFileType            Tag = 0x29
	TagFriend              Tag = 0x2a
	TagNamelist            Tag = 0x2b
	TagNamelistItem        Tag = 0x2c
	TagPackedType          Tag = 0x2d
	TagSubprogram          Tag = 0x2e
	TagTemplateTypeParam   Tag = 0x2f
	TagTemplateValueParam  Tag = 0x30
	TagThrownType          Tag = 0x31
	TagTryBlock            Tag = 0x32
	TagVariantPart         Tag = 0x33
	TagVariable            Tag = 0x34
	TagVolatileType        Tag = 0x35
	TagDwarfProcedure      Tag = 0x36
	TagRestrictType        Tag = 0x37
	TagInterfaceType       Tag = 0x38
	TagNamespace           Tag = 0x39
	TagImportedModule      Tag = 0x3a
	TagUnspecifiedType     Tag = 0x3b
	TagPartialUnit         Tag = 0x3c
	TagImportedUnit        Tag = 0x3d
	TagCondition           Tag = 0x3f
	TagSharedType          Tag = 0x40
	TagTypeUnit            Tag = 0x41
	TagRvalueRefType       Tag = 0x42
	TagTemplateAlias       Tag = 0x43

	// TagLoUser and TagHiUser bound the vendor-defined tag range. Per
	// §9 these are range markers, not concrete tags: any value in
	// [TagLoUser, TagHiUser] is accepted as vendor-defined, preserving
	// its raw numeric value, rather than being coerced to one of these
	// two bounds.
	TagLoUser Tag = 0x4080
	TagHiUser Tag = 0xffff
)

var knownTags = map[Tag]string{
	TagArrayType: "array_type", TagClassType: "class_type",
	TagEntryPoint: "entry_point", TagEnumerationType: "enumeration_type",
	TagFormalParameter: "formal_parameter", TagImportedDeclaration: "imported_declaration",
	TagLabel: "label", TagLexicalBlock: "lexical_block", TagMember: "member",
	TagPointerType: "pointer_type", TagReferenceType: "reference_type",
	TagCompileUnit: "compile_unit", TagStringType: "string_type",
	TagStructureType: "structure_type", TagSubroutineType: "subroutine_type",
	TagTypedef: "typedef", TagUnionType: "union_type",
	TagUnspecifiedParams: "unspecified_parameters", TagVariant: "variant",
	TagCommonBlock: "common_block", TagCommonInclusion: "common_inclusion",
	TagInheritance: "inheritance", TagInlinedSubroutine: "inlined_subroutine",
	TagModule: "module", TagPtrToMemberType: "ptr_to_member_type",
	TagSetType: "set_type", TagSubrangeType: "subrange_type",
	TagWithStmt: "with_stmt", TagAccessDeclaration: "access_declaration",
	TagBaseType: "base_type", TagCatchBlock: "catch_block",
	TagConstType: "const_type", TagConstant: "constant",
	TagEnumerator: "enumerator", TagFileType: "file_type", TagFriend: "friend",
	TagNamelist: "namelist", TagNamelistItem: "namelist_item",
	TagPackedType: "packed_type", TagSubprogram: "subprogram",
	TagTemplateTypeParam: "template_type_parameter", TagTemplateValueParam: "template_value_parameter",
	TagThrownType: "thrown_type", TagTryBlock: "try_block",
	TagVariantPart: "variant_part", TagVariable: "variable",
	TagVolatileType: "volatile_type", TagDwarfProcedure: "dwarf_procedure",
	TagRestrictType: "restrict_type", TagInterfaceType: "interface_type",
	TagNamespace: "namespace", TagImportedModule: "imported_module",
	TagUnspecifiedType: "unspecified_type", TagPartialUnit: "partial_unit",
	TagImportedUnit: "imported_unit", TagCondition: "condition",
	TagSharedType: "shared_type", TagTypeUnit: "type_unit",
	TagRvalueRefType: "rvalue_reference_type", TagTemplateAlias: "template_alias",
}

// String renders a Tag as DW_TAG_<name>, or a generic vendor/unknown form.
func (t Tag) String() string {
	if name, ok := knownTags[t]; ok {
		return "DW_TAG_" + name
	}
	if t >= TagLoUser && t <= TagHiUser {
		return fmt.Sprintf("DW_TAG_user_%#x", uint32(t))
	}
	return "DW_TAG_unknown"
}

// KnownTags returns every DIE tag this decoder recognizes by name (the
// vendor range [TagLoUser, TagHiUser] is not enumerated here, since it
// isn't a fixed set of values).
func KnownTags() []Tag {
	tags := make([]Tag, 0, len(knownTags))
	for t := range knownTags {
		tags = append(tags, t)
	}
	return tags
}

// KnownForms returns every attribute form this decoder can parse in
// place (see parseAttrValue); forms outside this set fail with
// ErrUnsupportedAttrForm.
func KnownForms() []AttrForm {
	forms := []AttrForm{
		FormAddr, FormData1, FormData2, FormData4, FormData8,
		FormFlag, FormFlagPresent, FormRef1, FormRef2, FormRef4, FormRef8,
		FormSecOffset, FormStrp, FormExprloc, FormString,
	}
	return forms
}

// classifyTag validates a raw LEB-decoded tag value read from an
// abbreviation declaration. Known tags and any value in the vendor range
// [TagLoUser, TagHiUser] are accepted; anything else is BadDieTag.
func classifyTag(raw uint64) (Tag, error) {
	tag := Tag(raw)
	if raw > 0xffffffff {
		return 0, makeError(ErrBadDieTag, "%#x", raw)
	}
	if _, ok := knownTags[tag]; ok {
		return tag, nil
	}
	if tag >= TagLoUser && tag <= TagHiUser {
		return tag, nil
	}
	return 0, makeError(ErrBadDieTag, "%#x", raw)
}

// AttrName identifies a DWARF attribute. Unknown values are preserved
// as-is (their String() falls back to a generic rendering) rather than
// failing the parse — attribute names are forward-compatible.
type AttrName uint32

const (
	AttrSibling            AttrName = 0x01
	AttrLocation           AttrName = 0x02
	AttrName_              AttrName = 0x03
	AttrByteSize           AttrName = 0x0b
	AttrBitOffset          AttrName = 0x0c
	AttrBitSize            AttrName = 0x0d
	AttrStmtList           AttrName = 0x10
	AttrLowPC              AttrName = 0x11
	AttrHighPC             AttrName = 0x12
	AttrLanguage           AttrName = 0x13
	AttrDiscr              AttrName = 0x15
	AttrDiscrValue         AttrName = 0x16
	AttrVisibility         AttrName = 0x17
	AttrImport             AttrName = 0x18
	AttrStringLength       AttrName = 0x19
	AttrCommonReference    AttrName = 0x1a
	AttrCompDir            AttrName = 0x1b
	AttrConstValue         AttrName = 0x1c
	AttrContainingType     AttrName = 0x1d
	AttrDefaultValue       AttrName = 0x1e
	AttrInline             AttrName = 0x20
	AttrIsOptional         AttrName = 0x21
	AttrLowerBound         AttrName = 0x22
	AttrProducer           AttrName = 0x25
	AttrPrototyped         AttrName = 0x27
	AttrReturnAddr         AttrName = 0x2a
	AttrStartScope         AttrName = 0x2c
	AttrBitStride          AttrName = 0x2e
	AttrUpperBound         AttrName = 0x2f
	AttrAbstractOrigin     AttrName = 0x31
	AttrAccessibility      AttrName = 0x32
	AttrAddressClass       AttrName = 0x33
	AttrArtificial         AttrName = 0x34
	AttrBaseTypes          AttrName = 0x35
	AttrCallingConvention  AttrName = 0x36
	AttrCount              AttrName = 0x37
	AttrDataMemberLocation AttrName = 0x38
	AttrDeclColumn         AttrName = 0x39
	AttrDeclFile           AttrName = 0x3a
	AttrDeclLine           AttrName = 0x3b
	AttrDeclaration        AttrName = 0x3c
	AttrDiscrList          AttrName = 0x3d
	AttrEncoding           AttrName = 0x3e
	AttrExternal           AttrName = 0x3f
	AttrFrameBase          AttrName = 0x40
	AttrFriend             AttrName = 0x41
	AttrIdentifierCase     AttrName = 0x42
	AttrMacroInfo          AttrName = 0x43
	AttrNamelistItem       AttrName = 0x44
	AttrPriority           AttrName = 0x45
	AttrSegment            AttrName = 0x46
	AttrSpecification      AttrName = 0x47
	AttrStaticLink         AttrName = 0x48
	AttrType               AttrName = 0x49
	AttrUseLocation        AttrName = 0x4a
	AttrVariableParameter  AttrName = 0x4b
	AttrVirtuality         AttrName = 0x4c
	AttrVtableElemLocation AttrName = 0x4d
	AttrAllocated          AttrName = 0x4e
	AttrAssociated         AttrName = 0x4f
	AttrDataLocation       AttrName = 0x50
	AttrByteStride         AttrName = 0x51
	AttrEntryPC            AttrName = 0x52
	AttrUseUTF8            AttrName = 0x53
	AttrExtension          AttrName = 0x54
	AttrRanges             AttrName = 0x55
	AttrTrampoline         AttrName = 0x56
	AttrCallColumn         AttrName = 0x57
	AttrCallFile           AttrName = 0x58
	AttrCallLine           AttrName = 0x59
	AttrDescription        AttrName = 0x5a
	AttrLinkageName        AttrName = 0x6e

	AttrLoUser AttrName = 0x2000
	AttrHiUser AttrName = 0x3fff
)

var knownAttrNames = map[AttrName]string{
	AttrSibling: "sibling", AttrLocation: "location", AttrName_: "name",
	AttrByteSize: "byte_size", AttrBitOffset: "bit_offset", AttrBitSize: "bit_size",
	AttrStmtList: "stmt_list", AttrLowPC: "low_pc", AttrHighPC: "high_pc",
	AttrLanguage: "language", AttrDiscr: "discr", AttrDiscrValue: "discr_value",
	AttrVisibility: "visibility", AttrImport: "import", AttrStringLength: "string_length",
	AttrCommonReference: "common_reference", AttrCompDir: "comp_dir",
	AttrConstValue: "const_value", AttrContainingType: "containing_type",
	AttrDefaultValue: "default_value", AttrInline: "inline", AttrIsOptional: "is_optional",
	AttrLowerBound: "lower_bound", AttrProducer: "producer", AttrPrototyped: "prototyped",
	AttrReturnAddr: "return_addr", AttrStartScope: "start_scope", AttrBitStride: "bit_stride",
	AttrUpperBound: "upper_bound", AttrAbstractOrigin: "abstract_origin",
	AttrAccessibility: "accessibility", AttrAddressClass: "address_class",
	AttrArtificial: "artificial", AttrBaseTypes: "base_types",
	AttrCallingConvention: "calling_convention", AttrCount: "count",
	AttrDataMemberLocation: "data_member_location", AttrDeclColumn: "decl_column",
	AttrDeclFile: "decl_file", AttrDeclLine: "decl_line", AttrDeclaration: "declaration",
	AttrDiscrList: "discr_list", AttrEncoding: "encoding", AttrExternal: "external",
	AttrFrameBase: "frame_base", AttrFriend: "friend", AttrIdentifierCase: "identifier_case",
	AttrMacroInfo: "macro_info", AttrNamelistItem: "namelist_item", AttrPriority: "priority",
	AttrSegment: "segment", AttrSpecification: "specification", AttrStaticLink: "static_link",
	AttrType: "type", AttrUseLocation: "use_location", AttrVariableParameter: "variable_parameter",
	AttrVirtuality: "virtuality", AttrVtableElemLocation: "vtable_elem_location",
	AttrAllocated: "allocated", AttrAssociated: "associated", AttrDataLocation: "data_location",
	AttrByteStride: "byte_stride", AttrEntryPC: "entry_pc", AttrUseUTF8: "use_UTF8",
	AttrExtension: "extension", AttrRanges: "ranges", AttrTrampoline: "trampoline",
	AttrCallColumn: "call_column", AttrCallFile: "call_file", AttrCallLine: "call_line",
	AttrDescription: "description", AttrLinkageName: "linkage_name",
}

// String renders an AttrName as DW_AT_<name>, falling back to
// DW_AT_unknown_<n> for values this decoder doesn't name — these are
// preserved, not rejected.
func (a AttrName) String() string {
	if name, ok := knownAttrNames[a]; ok {
		return "DW_AT_" + name
	}
	return fmt.Sprintf("DW_AT_unknown_%#x", uint32(a))
}

// AttrForm identifies how an attribute's value is encoded on disk.
type AttrForm uint32

const (
	FormAddr        AttrForm = 0x01
	FormBlock2      AttrForm = 0x03
	FormBlock4      AttrForm = 0x04
	FormData2       AttrForm = 0x05
	FormData4       AttrForm = 0x06
	FormData8       AttrForm = 0x07
	FormString      AttrForm = 0x08
	FormBlock       AttrForm = 0x09
	FormBlock1      AttrForm = 0x0a
	FormData1       AttrForm = 0x0b
	FormFlag        AttrForm = 0x0c
	FormSdata       AttrForm = 0x0d
	FormStrp        AttrForm = 0x0e
	FormUdata       AttrForm = 0x0f
	FormRefAddr     AttrForm = 0x10
	FormRef1        AttrForm = 0x11
	FormRef2        AttrForm = 0x12
	FormRef4        AttrForm = 0x13
	FormRef8        AttrForm = 0x14
	FormRefUdata    AttrForm = 0x15
	FormIndirect    AttrForm = 0x16
	FormSecOffset   AttrForm = 0x17
	FormExprloc     AttrForm = 0x18
	FormFlagPresent AttrForm = 0x19
	FormRefSig8     AttrForm = 0x20
)

var knownAttrForms = map[AttrForm]string{
	FormAddr: "addr", FormBlock2: "block2", FormBlock4: "block4",
	FormData2: "data2", FormData4: "data4", FormData8: "data8",
	FormString: "string", FormBlock: "block", FormBlock1: "block1",
	FormData1: "data1", FormFlag: "flag", FormSdata: "sdata", FormStrp: "strp",
	FormUdata: "udata", FormRefAddr: "ref_addr", FormRef1: "ref1", FormRef2: "ref2",
	FormRef4: "ref4", FormRef8: "ref8", FormRefUdata: "ref_udata",
	FormIndirect: "indirect", FormSecOffset: "sec_offset", FormExprloc: "exprloc",
	FormFlagPresent: "flag_present", FormRefSig8: "ref_sig8",
}

// String renders an AttrForm as DW_FORM_<name>, falling back to a generic
// rendering for values this decoder doesn't name.
func (f AttrForm) String() string {
	if name, ok := knownAttrForms[f]; ok {
		return "DW_FORM_" + name
	}
	return fmt.Sprintf("DW_FORM_unknown_%#x", uint32(f))
}
