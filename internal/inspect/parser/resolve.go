package parser

import (
	"fmt"

	"github.com/inspectgen/inspectgen/internal/model"
)

// GlobalScope is P1's output: the dictionary P2 receives as the root
// template scope, holding "Structs" and "Types" (§4's GlobalScope).
type GlobalScope struct {
	Dict *model.Dict
}

// pointerSentinelName is the name of the synthetic type-info entry every
// pointer and reference type resolves to (§6.3's "Pointers/references all
// resolve to a synthetic Pointer type info that is the first entry in the
// type list").
const pointerSentinelName = "Pointer"
const pointerSentinelDescriptor = "TD_PTR"

// builtinPrimitiveTypes are seeded into the type registry ahead of any
// declare_type so that a struct field can name them with no declaration of
// its own ("struct Foo { Int x; };"). The original inspect tool requires a
// declare_type for every type name, Int and String included; this tool
// pre-registers the four primitives every inspect source is expected to use
// so the common case needs no boilerplate declare_type line.
var builtinPrimitiveTypes = []struct{ name, descriptor string }{
	{"Int", "TD_INT"},
	{"String", "TD_STRING"},
	{"Bool", "TD_BOOL"},
	{"Void", "TD_VOID"},
}

// resolve runs the two fix-up passes (type resolution, then attribute
// resolution) and assembles the final GlobalScope. Mirrors ParseInspect's
// tail: ResolveTypes, ResolveAttributes, then inserting Structs/Types.
func (p *Parser) resolve() (*GlobalScope, error) {
	typeInfoList := model.NewList()
	pointerInfo := buildTypeInfoItem(pointerSentinelName, pointerSentinelDescriptor, nil)
	typeInfoList.List.Append(pointerInfo)

	byName := map[string]model.Item{pointerSentinelName: pointerInfo}

	for _, prim := range builtinPrimitiveTypes {
		info := buildTypeInfoItem(prim.name, prim.descriptor, nil)
		typeInfoList.List.Append(info)
		byName[prim.name] = info
	}

	for _, decl := range p.typeDecls {
		info := buildTypeInfoItem(decl.NameTok.Text, decl.DescriptorTok.Text, nil)
		typeInfoList.List.Append(info)
		byName[decl.NameTok.Text] = info
	}

	structItems := make([]model.Item, 0, len(p.structs))
	for _, sd := range p.structs {
		descriptor := sd.NameTok.Text + "TD"
		info := buildTypeInfoItem(sd.NameTok.Text, descriptor, nil)
		typeInfoList.List.Append(info)
		byName[sd.NameTok.Text] = info

		structItem := buildStructItem(sd, info)
		structItems = append(structItems, structItem)
	}

	for _, item := range structItems {
		if err := resolveFieldsInStruct(item, byName); err != nil {
			return nil, err
		}
	}

	aliasDecls := map[string]*aliasNode{}
	for _, a := range p.aliases {
		aliasDecls[a.AliasTok.Text] = a
	}
	attrDeclsByName := map[string]*attrDeclNode{}
	for _, d := range p.attrDecls {
		attrDeclsByName[d.NameTok.Text] = d
	}

	for _, a := range p.aliases {
		if _, ok := attrDeclsByName[a.Target.NameTok.Text]; !ok {
			return nil, fmt.Errorf("unrecognized attribute %q", a.Target.NameTok.Text)
		}
	}

	resolveAttrList := func(list *attrListNode) (*model.AttributeList, error) {
		return buildAttributeList(list, attrDeclsByName, aliasDecls)
	}

	if err := attachStructAttributes(structItems, p.structs, resolveAttrList); err != nil {
		return nil, err
	}
	if err := attachFieldAttributes(structItems, p.structs, resolveAttrList); err != nil {
		return nil, err
	}

	structsItem := model.NewList()
	for i, item := range structItems {
		if p.structs[i].FromImport {
			continue
		}
		structsItem.List.Append(item)
	}

	scope := model.NewEmptyDict()
	scope.Insert("Structs", structsItem)
	scope.Insert("Types", typeInfoList)

	return &GlobalScope{Dict: scope}, nil
}

// buildTypeInfoItem constructs a type-info Dict item in the shape
// CreateTypeInfoItemInternal produces: Name, CamelCaseName, Descriptor.
func buildTypeInfoItem(name, descriptor string, attrs *model.AttributeList) model.Item {
	item := model.NewDict()
	item.Dict.Insert("Name", model.NewString(name))
	item.Dict.Insert("CamelCaseName", model.NewString(camelCase(name)))
	item.Dict.Insert("Descriptor", model.NewString(descriptor))
	item.Attributes = attrs
	return item
}

func camelCase(name string) string {
	if name == "" {
		return name
	}
	r := []rune(name)
	if r[0] >= 'a' && r[0] <= 'z' {
		r[0] = r[0] - ('a' - 'A')
	}
	return string(r)
}

// buildStructItem constructs a struct Dict item: Name, Fields, FieldCount,
// TypeInfo (a reference to its own type-info dict). Mirrors CreateStructItem.
func buildStructItem(sd *structDecl, typeInfo model.Item) model.Item {
	item := model.NewDict()
	item.Dict.Insert("Name", model.NewString(sd.NameTok.Text))

	fields := model.NewList()
	for _, f := range sd.Fields {
		fields.List.Append(buildFieldItem(f))
	}
	item.Dict.Insert("Fields", fields)
	item.Dict.Insert("FieldCount", model.NewInt(len(sd.Fields)))
	item.Dict.Insert("TypeInfo", model.AsReferenceCopy(typeInfo))
	return item
}

// buildFieldItem constructs a field Dict item: Type, Name, HasInitializer,
// Initializer, IsMethod, MethodArguments. Mirrors CreateFieldItem.
func buildFieldItem(f *fieldDecl) model.Item {
	item := model.NewDict()
	item.Dict.Insert("Type", buildTypeItem(f.Type))
	item.Dict.Insert("Name", model.NewString(f.NameTok.Text))
	item.Dict.Insert("HasInitializer", model.NewBool(f.HasInitializer))
	if f.HasInitializer {
		item.Dict.Insert("Initializer", model.NewString(f.InitializerText))
	} else {
		item.Dict.Insert("Initializer", model.NewString(""))
	}
	item.Dict.Insert("IsMethod", model.NewBool(f.IsMethod))
	if f.IsMethod {
		args := model.NewList()
		for _, a := range f.MethodArgs {
			argItem := model.NewDict()
			argItem.Dict.Insert("Name", model.NewString(a.Name))
			argItem.Dict.Insert("Type", buildTypeItem(a.Type))
			args.List.Append(argItem)
		}
		item.Dict.Insert("MethodArguments", args)
	}
	return item
}

// buildTypeItem constructs a type-reference Dict item: Name, IsPointer,
// IsReference, HasInnerType, InnerType, Args. Mirrors NewTypeItem.
func buildTypeItem(t *typeRef) model.Item {
	item := model.NewDict()

	if t.IsPointer || t.IsReference {
		item.Dict.Insert("Name", model.NewString(fullPointerTypeName(t)))
	} else {
		item.Dict.Insert("Name", model.NewString(t.Name))
	}
	item.Dict.Insert("IsPointer", model.NewBool(t.IsPointer))
	item.Dict.Insert("IsReference", model.NewBool(t.IsReference))

	if t.Inner != nil {
		item.Dict.Insert("HasInnerType", model.NewBool(true))
		item.Dict.Insert("InnerType", buildTypeItem(t.Inner))
	} else {
		item.Dict.Insert("HasInnerType", model.NewBool(false))
	}

	argsItem := model.NewList()
	for _, a := range t.Args {
		argsItem.List.Append(buildTypeItem(a))
	}
	item.Dict.Insert("Args", argsItem)

	return item
}

// fullPointerTypeName renders "*Foo" / "&Foo" (and chains thereof), the
// textual type name used for pointer/reference types. Mirrors
// GetFullTypeNameForPointer.
func fullPointerTypeName(t *typeRef) string {
	prefix := ""
	cur := t
	for {
		if cur.IsPointer {
			prefix = "*" + prefix
		} else if cur.IsReference {
			prefix = "&" + prefix
		} else {
			return prefix + cur.Name
		}
		cur = cur.Inner
	}
}

// resolveFieldsInStruct sets "Info" on every field type (and method
// argument type) dict in structItem, recursively through Args and the
// pointer/reference Inner chain. Mirrors ResolveType/ResolveTypes.
func resolveFieldsInStruct(structItem model.Item, byName map[string]model.Item) error {
	fieldsItem, _ := structItem.Dict.Get("Fields")
	for _, fieldItem := range fieldsItem.List.Items {
		typeItem, _ := fieldItem.Dict.Get("Type")
		if err := resolveType(typeItem, byName); err != nil {
			return err
		}

		isMethod, _ := fieldItem.Dict.Get("IsMethod")
		if isMethod.Bool {
			argsItem, _ := fieldItem.Dict.Get("MethodArguments")
			for _, arg := range argsItem.List.Items {
				argType, _ := arg.Dict.Get("Type")
				if err := resolveType(argType, byName); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// resolveType sets typeItem.Dict's "Info" key. Pointer/reference type dicts
// get the Pointer sentinel and recurse into InnerType; the base name dict
// gets the actual looked-up type-info, and its Args are resolved
// recursively. Mirrors ResolveType.
func resolveType(typeItem model.Item, byName map[string]model.Item) error {
	current := typeItem
	for {
		isPointer, _ := current.Dict.Get("IsPointer")
		isReference, _ := current.Dict.Get("IsReference")
		if !isPointer.Bool && !isReference.Bool {
			break
		}

		pointerInfo := byName[pointerSentinelName]
		current.Dict.Insert("Info", model.AsReferenceCopy(pointerInfo))
		inner, _ := current.Dict.Get("InnerType")
		current = inner
	}

	nameItem, _ := current.Dict.Get("Name")
	info, ok := byName[nameItem.Str]
	if !ok {
		return fmt.Errorf("unrecognized type %q", nameItem.Str)
	}
	current.Dict.Insert("Info", model.AsReferenceCopy(info))

	argsItem, _ := current.Dict.Get("Args")
	for _, arg := range argsItem.List.Items {
		if err := resolveType(arg, byName); err != nil {
			return err
		}
	}
	return nil
}

// buildAttributeList resolves alias/declaration references for list and
// populates its AttributeData dictionary. Mirrors ResolveAttributes +
// BuildAttributeData, folded into a single pass since inspectgen resolves
// each attribute list as soon as it is built rather than deferring all of
// them to one global pass.
func buildAttributeList(list *attrListNode, decls map[string]*attrDeclNode, aliases map[string]*aliasNode) (*model.AttributeList, error) {
	if list == nil {
		return nil, nil
	}

	result := model.NewAttributeList()
	result.AttributeData = model.NewEmptyDict()

	for _, inst := range list.Instances {
		effectiveName := inst.NameTok.Text
		args := inst.Args

		var aliasTarget *model.AttributeInstance
		if inst.IsAlias {
			alias, ok := aliases[inst.NameTok.Text]
			if !ok {
				return nil, fmt.Errorf("could not resolve attribute alias %q", inst.NameTok.Text)
			}
			effectiveName = alias.Target.NameTok.Text
			args = alias.Target.Args
		}

		decl, ok := decls[effectiveName]
		if !ok {
			return nil, fmt.Errorf("unrecognized attribute %q", effectiveName)
		}
		if len(decl.Params) != len(args) {
			return nil, fmt.Errorf("attribute %q expects %d arguments, found %d", effectiveName, len(decl.Params), len(args))
		}

		modelDecl := &model.AttributeDecl{Name: decl.NameTok.Text}
		argsDict := model.NewEmptyDict()
		var modelArgs []model.AttributeArg
		for i, param := range decl.Params {
			arg := args[i]
			if arg.Named && arg.Name != param {
				return nil, fmt.Errorf("argument name %q does not match parameter %q", arg.Name, param)
			}
			modelDecl.Params = append(modelDecl.Params, model.AttributeParam{Name: param})
			argsDict.Insert(param, model.NewString(arg.Value))
			modelArgs = append(modelArgs, model.AttributeArg{
				Name:  param,
				Value: arg.Value,
				Pos:   model.SourcePos{Line: arg.Pos.Line, Column: arg.Pos.Column},
			})
		}

		var modelInst *model.AttributeInstance
		if inst.IsAlias {
			aliasTarget = &model.AttributeInstance{Name: effectiveName, Args: modelArgs, Decl: modelDecl}
			modelInst = &model.AttributeInstance{
				Name:    inst.NameTok.Text,
				IsAlias: true,
				Alias:   &model.AttributeAlias{Name: inst.NameTok.Text, Target: aliasTarget},
			}
		} else {
			modelInst = &model.AttributeInstance{Name: effectiveName, Args: modelArgs, Decl: modelDecl}
		}

		result.Instances = append(result.Instances, modelInst)
		result.AttributeData.Insert(effectiveName, model.WrapDict(argsDict))
	}

	return result, nil
}

func attachStructAttributes(items []model.Item, decls []*structDecl, resolve func(*attrListNode) (*model.AttributeList, error)) error {
	for i, sd := range decls {
		if sd.Attributes == nil {
			continue
		}
		attrs, err := resolve(sd.Attributes)
		if err != nil {
			return err
		}
		items[i].Attributes = attrs
	}
	return nil
}

func attachFieldAttributes(structItems []model.Item, decls []*structDecl, resolve func(*attrListNode) (*model.AttributeList, error)) error {
	for si, sd := range decls {
		fieldsItem, _ := structItems[si].Dict.Get("Fields")
		for fi, f := range sd.Fields {
			if f.Attributes == nil {
				continue
			}
			attrs, err := resolve(f.Attributes)
			if err != nil {
				return err
			}
			fieldsItem.List.Items[fi].Attributes = attrs
		}
	}
	return nil
}
