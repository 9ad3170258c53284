package parser

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inspectgen/inspectgen/internal/errors"
)

func parseString(t *testing.T, src string) *GlobalScope {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "root.ins")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	var reporter errors.Reporter
	scope, err := ParseFile(path, &reporter)
	if err != nil {
		t.Fatalf("unexpected parse error: %v (diagnostic: %v)", err, reporter.Err())
	}
	return scope
}

func TestParseSimpleStruct(t *testing.T) {
	scope := parseString(t, `struct Foo { Int x; };`)

	structs, ok := scope.Dict.Get("Structs")
	if !ok || structs.List.Size() != 1 {
		t.Fatalf("expected one struct, got %+v", structs)
	}

	foo := structs.List.At(0)
	name, _ := foo.Dict.Get("Name")
	if name.Str != "Foo" {
		t.Fatalf("expected struct named Foo, got %q", name.Str)
	}

	fields, _ := foo.Dict.Get("Fields")
	if fields.List.Size() != 1 {
		t.Fatalf("expected 1 field, got %d", fields.List.Size())
	}

	field := fields.List.At(0)
	fieldName, _ := field.Dict.Get("Name")
	if fieldName.Str != "x" {
		t.Fatalf("expected field named x, got %q", fieldName.Str)
	}

	fieldType, _ := field.Dict.Get("Type")
	info, ok := fieldType.Dict.Get("Info")
	if !ok {
		t.Fatalf("expected field type to carry resolved Info")
	}
	infoName, _ := info.Dict.Get("Name")
	if infoName.Str != "Int" {
		t.Fatalf("expected Int type info, got %q", infoName.Str)
	}
}

func TestTypesListStartsWithPointerSentinel(t *testing.T) {
	scope := parseString(t, `struct Foo { Int x; };`)
	types, _ := scope.Dict.Get("Types")
	if types.List.Size() == 0 {
		t.Fatalf("expected non-empty Types list")
	}
	first := types.List.At(0)
	name, _ := first.Dict.Get("Name")
	if name.Str != "Pointer" {
		t.Fatalf("expected first type info to be Pointer, got %q", name.Str)
	}
}

func TestPointerFieldResolvesToPointerSentinel(t *testing.T) {
	scope := parseString(t, `declare_type Handle HandleTD; struct Foo { Handle* x; };`)
	structs, _ := scope.Dict.Get("Structs")
	field := structs.List.At(0)
	fields, _ := field.Dict.Get("Fields")
	typ, _ := fields.List.At(0).Dict.Get("Type")

	isPointer, _ := typ.Dict.Get("IsPointer")
	if !isPointer.Bool {
		t.Fatalf("expected IsPointer true")
	}
	info, _ := typ.Dict.Get("Info")
	infoName, _ := info.Dict.Get("Name")
	if infoName.Str != "Pointer" {
		t.Fatalf("expected pointer field's Info to be the Pointer sentinel, got %q", infoName.Str)
	}

	name, _ := typ.Dict.Get("Name")
	if name.Str != "*Handle" {
		t.Fatalf("expected rendered pointer type name *Handle, got %q", name.Str)
	}
}

func TestHasAttributeOnField(t *testing.T) {
	scope := parseString(t, `declare_attribute Pub(); struct A { [Pub()] Int x; };`)
	structs, _ := scope.Dict.Get("Structs")
	fields, _ := structs.List.At(0).Dict.Get("Fields")
	field := fields.List.At(0)

	if field.Attributes == nil || !field.Attributes.HasAttribute("Pub") {
		t.Fatalf("expected field to carry the Pub attribute")
	}
}

func TestAliasAttributeResolution(t *testing.T) {
	src := `declare_attribute Serialize(format); alias_attribute JSON [Serialize(format: "json")]; struct A { JSON Int x; };`
	scope := parseString(t, src)
	structs, _ := scope.Dict.Get("Structs")
	fields, _ := structs.List.At(0).Dict.Get("Fields")
	field := fields.List.At(0)

	if field.Attributes == nil || !field.Attributes.HasAttribute("Serialize") {
		t.Fatalf("expected alias to resolve to its target attribute Serialize")
	}
}

func TestUnrecognizedTypeIsReported(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "root.ins")
	_ = os.WriteFile(path, []byte(`struct Foo { Bogus x; };`), 0o644)

	var reporter errors.Reporter
	_, err := ParseFile(path, &reporter)
	if err == nil {
		t.Fatalf("expected an error for an unrecognized type")
	}
}

func TestFieldWithInitializer(t *testing.T) {
	scope := parseString(t, `struct Foo { Int x = 42; };`)
	structs, _ := scope.Dict.Get("Structs")
	fields, _ := structs.List.At(0).Dict.Get("Fields")
	field := fields.List.At(0)

	hasInit, _ := field.Dict.Get("HasInitializer")
	if !hasInit.Bool {
		t.Fatalf("expected HasInitializer true")
	}
	init, _ := field.Dict.Get("Initializer")
	if init.Str != "42" {
		t.Fatalf("expected initializer text 42, got %q", init.Str)
	}
}

func TestMethodField(t *testing.T) {
	scope := parseString(t, `struct Foo { Void DoThing(Int a, String b); };`)
	structs, _ := scope.Dict.Get("Structs")
	fields, _ := structs.List.At(0).Dict.Get("Fields")
	field := fields.List.At(0)

	isMethod, _ := field.Dict.Get("IsMethod")
	if !isMethod.Bool {
		t.Fatalf("expected IsMethod true")
	}
	args, _ := field.Dict.Get("MethodArguments")
	if args.List.Size() != 2 {
		t.Fatalf("expected 2 method arguments, got %d", args.List.Size())
	}
	firstArgName, _ := args.List.At(0).Dict.Get("Name")
	if firstArgName.Str != "a" {
		t.Fatalf("expected first argument named a, got %q", firstArgName.Str)
	}
}

func TestImportBringsInStructTypeInfoButNotStructItem(t *testing.T) {
	dir := t.TempDir()
	importedPath := filepath.Join(dir, "imported.ins")
	if err := os.WriteFile(importedPath, []byte(`struct Imported { Int x; };`), 0o644); err != nil {
		t.Fatalf("writing import fixture: %v", err)
	}

	rootPath := filepath.Join(dir, "root.ins")
	src := `import "imported.ins"; struct Foo { Imported* x; };`
	if err := os.WriteFile(rootPath, []byte(src), 0o644); err != nil {
		t.Fatalf("writing root fixture: %v", err)
	}

	var reporter errors.Reporter
	scope, err := ParseFile(rootPath, &reporter)
	if err != nil {
		t.Fatalf("unexpected parse error: %v (diagnostic: %v)", err, reporter.Err())
	}

	structs, _ := scope.Dict.Get("Structs")
	if structs.List.Size() != 1 {
		t.Fatalf("expected only the root struct to be generated, got %d", structs.List.Size())
	}

	types, _ := scope.Dict.Get("Types")
	found := false
	for _, item := range types.List.Items {
		name, _ := item.Dict.Get("Name")
		if name.Str == "Imported" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected Imported's type info to be registered")
	}
}
