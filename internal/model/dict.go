package model

// Dict is a mapping from key strings to Items with a parent reference
// forming a lexical scope chain (§3.2). Keys are case-sensitive and
// compared byte-for-byte — see SPEC_FULL.md §12 on why this diverges from
// the teacher's case-insensitive ident.Map.
type Dict struct {
	Parent  *Dict
	entries map[string]*Item
}

// NewEmptyDict allocates a Dict with no parent.
func NewEmptyDict() *Dict {
	return &Dict{entries: make(map[string]*Item)}
}

// NewChildDict allocates a Dict whose parent is parent, establishing one
// level of lexical nesting.
func NewChildDict(parent *Dict) *Dict {
	return &Dict{entries: make(map[string]*Item), Parent: parent}
}

// Insert stores value under key, setting its Owner/OwnerKey so it can later
// be resolved as an L-value. Any prior value under key is simply replaced
// (Go's GC reclaims it; there is no explicit free).
func (d *Dict) Insert(key string, value Item) {
	value.Owner = d
	value.OwnerKey = key
	stored := value
	d.entries[key] = &stored
}

// Get looks up key in this dictionary only (no parent walk).
func (d *Dict) Get(key string) (Item, bool) {
	item, ok := d.entries[key]
	if !ok {
		return Item{}, false
	}
	return *item, true
}

// Lookup walks the parent chain starting at d until key is found or the
// chain is exhausted.
func Lookup(d *Dict, key string) (Item, bool) {
	for cur := d; cur != nil; cur = cur.Parent {
		if item, ok := cur.entries[key]; ok {
			return *item, true
		}
	}
	return Item{}, false
}

// Has reports whether key exists in this dictionary only.
func (d *Dict) Has(key string) bool {
	_, ok := d.entries[key]
	return ok
}

// Delete removes key from this dictionary if present.
func (d *Dict) Delete(key string) {
	delete(d.entries, key)
}

// Len returns the number of entries stored directly in d.
func (d *Dict) Len() int {
	return len(d.entries)
}

// Keys returns the dictionary's keys in no particular order.
func (d *Dict) Keys() []string {
	keys := make([]string, 0, len(d.entries))
	for k := range d.entries {
		keys = append(keys, k)
	}
	return keys
}
