package model

import "testing"

func TestDictInsertLookupRoundTrip(t *testing.T) {
	d := NewEmptyDict()
	d.Insert("x", NewInt(42))

	got, ok := d.Get("x")
	if !ok {
		t.Fatalf("expected key x to be found")
	}
	if got.Int != 42 {
		t.Fatalf("expected 42, got %d", got.Int)
	}
	if got.Owner != d || got.OwnerKey != "x" {
		t.Fatalf("expected item to carry its owner cursor after insert")
	}
}

func TestDictInsertReplacesPriorValue(t *testing.T) {
	d := NewEmptyDict()
	d.Insert("x", NewInt(1))
	d.Insert("x", NewInt(2))

	got, _ := d.Get("x")
	if got.Int != 2 {
		t.Fatalf("expected replacement value 2, got %d", got.Int)
	}
	if d.Len() != 1 {
		t.Fatalf("expected exactly one entry, got %d", d.Len())
	}
}

func TestLookupWalksParentChain(t *testing.T) {
	root := NewEmptyDict()
	root.Insert("shared", NewString("from-root"))

	child := NewChildDict(root)
	child.Insert("local", NewString("from-child"))

	if _, ok := child.Get("shared"); ok {
		t.Fatalf("Get should not see parent entries")
	}

	item, ok := Lookup(child, "shared")
	if !ok || item.Str != "from-root" {
		t.Fatalf("expected Lookup to walk to parent, got %+v ok=%v", item, ok)
	}

	item, ok = Lookup(child, "local")
	if !ok || item.Str != "from-child" {
		t.Fatalf("expected local lookup to resolve in child scope")
	}

	if _, ok := Lookup(child, "missing"); ok {
		t.Fatalf("expected missing key to fail lookup")
	}
}

func TestNewItemOwnerNilUntilInserted(t *testing.T) {
	item := NewInt(7)
	if item.Owner != nil {
		t.Fatalf("freshly constructed item must have nil owner")
	}

	d := NewEmptyDict()
	d.Insert("k", item)
	stored, _ := d.Get("k")
	if stored.Owner != d {
		t.Fatalf("expected owner to be set to containing dict after insert")
	}
}

func TestListSize(t *testing.T) {
	l := &List{}
	l.Append(NewInt(1))
	l.Append(NewInt(2))
	if l.Size() != 2 {
		t.Fatalf("expected size 2, got %d", l.Size())
	}
}

func TestAttributeListHasAttribute(t *testing.T) {
	decl := &AttributeDecl{Name: "Pub"}
	al := NewAttributeList()
	al.Instances = append(al.Instances, &AttributeInstance{Name: "Pub", Decl: decl})

	if !al.HasAttribute("Pub") {
		t.Fatalf("expected HasAttribute(Pub) to be true")
	}
	if al.HasAttribute("Missing") {
		t.Fatalf("expected HasAttribute(Missing) to be false")
	}
}

func TestFrameStackReleaseRemovesTrackedItem(t *testing.T) {
	var fs FrameStack
	fs.Push()
	item := NewInt(5)
	fs.Track(item)
	fs.Release(item)
	fs.Pop()

	if fs.Depth() != 0 {
		t.Fatalf("expected frame depth 0 after pop, got %d", fs.Depth())
	}
}
