package dwarf

import (
	"fmt"

	"github.com/zanesterling/mecha-dwarf/pkg/utils"
)

// AttrValue is the tagged union of everything an attribute's on-disk form
// can decode to. Concrete kinds implement the unexported marker method so
// the set of variants is closed to this package, the same pattern the
// teacher repo uses for its own small tagged unions.
type AttrValue interface {
	isAttrValue()
	String() string
}

// Address is the value of form addr: a program address, sized per the
// compile unit's address_size.
type Address struct{ Value uint64 }

func (Address) isAttrValue()    {}
func (v Address) String() string { return utils.FormatUintHex(v.Value, 8) }

// Constant is the value of forms data1/data2/data4/data8.
type Constant struct{ Value uint64 }

func (Constant) isAttrValue()    {}
func (v Constant) String() string { return fmt.Sprintf("%d", v.Value) }

// Block is the value of form exprloc: an uninterpreted expression/location
// byte sequence. This decoder doesn't evaluate DWARF expressions — it only
// captures the bytes.
type Block struct{ Bytes []byte }

func (Block) isAttrValue()    {}
func (v Block) String() string { return fmt.Sprintf("<%d bytes>", len(v.Bytes)) }

// Flag is the value of forms flag and flag_present.
type Flag struct{ Value bool }

func (Flag) isAttrValue()    {}
func (v Flag) String() string { return fmt.Sprintf("%v", v.Value) }

// SectionOffset is the value of form sec_offset: an offset into another
// section (e.g. __debug_line).
type SectionOffset struct{ Value uint64 }

func (SectionOffset) isAttrValue()    {}
func (v SectionOffset) String() string { return utils.FormatUintHex(v.Value, 8) }

// StringTableOffset is the value of form strp: an offset into __debug_str.
// This decoder does not resolve it against the string table.
type StringTableOffset struct{ Value uint64 }

func (StringTableOffset) isAttrValue()    {}
func (v StringTableOffset) String() string {
	return fmt.Sprintf("(indirect string, offset: %s)", utils.FormatUintHex(v.Value, 8))
}

// Reference is the value of forms ref1/ref2/ref4/ref8: an offset to
// another DIE within the same compile unit, carried as a numeric offset
// rather than a pointer — DIEs never hold back-references into the tree.
type Reference struct{ Offset uint64 }

func (Reference) isAttrValue()    {}
func (v Reference) String() string { return fmt.Sprintf("<%#x>", v.Offset) }

// InlineString is the value of form string: a NUL-terminated string
// embedded directly in the attribute stream (as opposed to strp's
// indirection through __debug_str).
type InlineString struct{ Value string }

func (InlineString) isAttrValue()    {}
func (v InlineString) String() string { return v.Value }

// Unimplemented marks an attribute value whose form this decoder
// recognizes by name but does not decode. It carries the form tag for
// diagnostics. parseAttrValue never produces it: a form whose length it
// cannot determine fails with ErrUnsupportedAttrForm instead.
type Unimplemented struct{ Form AttrForm }

func (Unimplemented) isAttrValue()    {}
func (v Unimplemented) String() string { return fmt.Sprintf("<unimplemented %s>", v.Form) }

// Attribute pairs a decoded value with the attribute name from the schema
// that produced it.
type Attribute struct {
	Name  AttrName
	Value AttrValue
}
