package model

// AttributeParam is one declared parameter of an attribute declaration.
type AttributeParam struct {
	Name string
}

// AttributeDecl is a `declare_attribute Name(p1, p2, ...)` declaration.
type AttributeDecl struct {
	Name   string
	Params []AttributeParam
}

// AttributeAlias is an `alias_attribute Alias [Target(args)];` declaration: a
// shorthand identifier that resolves to a fully-specified instance.
type AttributeAlias struct {
	Name   string
	Target *AttributeInstance
}

// AttributeArg is one argument supplied to an attribute instance, either
// positional (Name == "") or named.
type AttributeArg struct {
	Name  string
	Value string
	Pos   SourcePos
}

// AttributeInstance is either a direct reference to a declaration plus
// arguments, or an alias reference resolved to its target.
type AttributeInstance struct {
	Name    string // identifier as written in source ([Name(...)] or bare alias)
	Args    []AttributeArg
	Decl    *AttributeDecl // resolved declaration (direct or via alias target)
	IsAlias bool
	Alias   *AttributeAlias
	Pos     SourcePos
}

// EffectiveName returns the name the instance is known by for
// has_attribute() comparisons: the alias target's name when aliased,
// otherwise the instance's direct name.
func (a *AttributeInstance) EffectiveName() string {
	if a.IsAlias && a.Alias != nil {
		return a.Alias.Target.Name
	}
	return a.Name
}

// AttributeList is the vector of attribute instances attached to a struct
// or field, plus its lazily populated AttributeData dictionary (§3.4):
// AttributeData[declName] -> Dict{paramName: String(argText)}.
type AttributeList struct {
	Instances     []*AttributeInstance
	AttributeData *Dict
}

// NewAttributeList allocates an empty attribute list with its AttributeData
// dictionary ready for population during the resolution pass.
func NewAttributeList() *AttributeList {
	return &AttributeList{AttributeData: NewEmptyDict()}
}

// HasAttribute reports whether name matches any instance's effective name.
func (al *AttributeList) HasAttribute(name string) bool {
	if al == nil {
		return false
	}
	for _, inst := range al.Instances {
		if inst.EffectiveName() == name {
			return true
		}
	}
	return false
}
