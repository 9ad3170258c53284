package parser

import ilex "github.com/inspectgen/inspectgen/internal/inspect/lexer"

// typeRef is an intermediate parse of a type expression: a base name plus
// any number of pointer/reference wrappers and (on the base) optional type
// arguments. Grounded on "type" in original_source/src/codegen_inspect_data.h.
type typeRef struct {
	Name        string
	NameTok     ilex.Token
	IsPointer   bool
	IsReference bool
	Inner       *typeRef
	Args        []*typeRef
}

type typedArgDecl struct {
	Name string
	Type *typeRef
}

type fieldDecl struct {
	NameTok         ilex.Token
	Type            *typeRef
	HasInitializer  bool
	InitializerText string
	IsMethod        bool
	MethodArgs      []typedArgDecl
	Attributes      *attrListNode
}

type structDecl struct {
	NameTok    ilex.Token
	Fields     []*fieldDecl
	Attributes *attrListNode
	// FromImport is true when this struct was declared in an imported file
	// rather than the root file: its type info is still registered so other
	// structs can reference it, but no code is generated for it (§6.3).
	FromImport bool
}

type typeDeclNode struct {
	NameTok       ilex.Token
	DescriptorTok ilex.Token
	Attributes    *attrListNode
}

type argItem struct {
	Named bool
	Name  string
	Value string
	Pos   ilex.Token
}

type attrInstanceNode struct {
	IsAlias bool
	NameTok ilex.Token
	Args    []argItem
}

type attrListNode struct {
	Instances []*attrInstanceNode
}

type aliasNode struct {
	AliasTok ilex.Token
	Target   *attrInstanceNode
}

type attrDeclNode struct {
	NameTok ilex.Token
	Params  []string
}
