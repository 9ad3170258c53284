// Package model implements the tagged-value data system ("data items") that
// flows between the inspect parser and the template evaluator: a dynamic
// union over {String, Int, Bool, Void, Dict, List, Procedure}, dictionaries
// with parent chains for lexical scoping, and user-defined attributes.
//
// Unlike the original C++ implementation this package targets Go's garbage
// collector for memory management: there is no FreeDataItem. The ownership
// bookkeeping the spec describes (owner, is_reference, temporary frames) is
// kept anyway, not to free memory, but because it is what makes assignment,
// ++/--, and define's ownership transfer well-defined and testable.
package model

import "sync/atomic"

// Tag identifies which payload an Item carries.
type Tag int

const (
	TagString Tag = iota
	TagInt
	TagBool
	TagVoid
	TagDict
	TagList
	TagProcedure
)

func (t Tag) String() string {
	switch t {
	case TagString:
		return "String"
	case TagInt:
		return "Int"
	case TagBool:
		return "Bool"
	case TagVoid:
		return "Void"
	case TagDict:
		return "Dict"
	case TagList:
		return "List"
	case TagProcedure:
		return "Procedure"
	default:
		return "Unknown"
	}
}

var nextUID uint64

func allocUID() uint64 {
	return atomic.AddUint64(&nextUID, 1)
}

// SourcePos is the minimal source-location info an Item remembers for
// diagnostics; it is independent of which lexer produced the token.
type SourcePos struct {
	File   string
	Line   int
	Column int
}

// Item is the universal tagged value. Exactly one of the payload fields is
// meaningful, selected by Tag (Void has no payload).
//
// Owner/OwnerKey together form the "cursor" the design notes recommend in
// place of a reverse UID scan: when a reference chain resolves to a
// dictionary entry, Owner/OwnerKey are set so a following assignment, ++, or
// -- can write back directly.
type Item struct {
	Tag Tag

	Str  string
	Int  int
	Bool bool
	Dict *Dict
	List *List
	Proc *Procedure

	Owner    *Dict
	OwnerKey string

	// IsReference marks a borrowed value (returned from a lookup) as
	// opposed to one freshly constructed by a literal or an operator.
	IsReference bool

	UID uint64

	Attributes *AttributeList

	SourcePos SourcePos
}

// Void is the canonical Void-tagged item.
func Void() Item {
	return Item{Tag: TagVoid, UID: allocUID()}
}

// NewString builds an owned String item.
func NewString(s string) Item {
	return Item{Tag: TagString, Str: s, UID: allocUID()}
}

// NewInt builds an owned Int item.
func NewInt(i int) Item {
	return Item{Tag: TagInt, Int: i, UID: allocUID()}
}

// NewBool builds an owned Bool item.
func NewBool(b bool) Item {
	return Item{Tag: TagBool, Bool: b, UID: allocUID()}
}

// NewDict builds an owned Dict item wrapping a freshly allocated Dict.
func NewDict() Item {
	return Item{Tag: TagDict, Dict: NewEmptyDict(), UID: allocUID()}
}

// NewList builds an owned List item wrapping a freshly allocated List.
func NewList() Item {
	return Item{Tag: TagList, List: &List{}, UID: allocUID()}
}

// NewProcedure builds an owned Procedure item wrapping p.
func NewProcedure(p *Procedure) Item {
	return Item{Tag: TagProcedure, Proc: p, UID: allocUID()}
}

// WrapDict wraps an existing *Dict as a reference item (used for injecting
// an already-owned dictionary, e.g. the global scope, without re-parenting
// it).
func WrapDict(d *Dict) Item {
	return Item{Tag: TagDict, Dict: d, IsReference: true, UID: allocUID()}
}

// AsReferenceCopy returns a shallow copy of item suitable for re-reading
// without transferring ownership: String/Dict/List copies are marked as
// references (borrows), matching CreateCopyOrReference in the original
// source. Int/Bool/Void/Procedure copies carry no ownership semantics so
// they pass through unchanged.
func AsReferenceCopy(item Item) Item {
	result := item
	result.UID = allocUID()
	result.Owner = nil
	result.OwnerKey = ""
	switch item.Tag {
	case TagString, TagDict, TagList:
		result.IsReference = true
	}
	return result
}
