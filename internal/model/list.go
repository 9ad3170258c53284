package model

// ListSizeKeyword is the synthetic read-only property name exposed by every
// List (§3.3): `someList.Size` yields an Int without a dictionary lookup.
const ListSizeKeyword = "Size"

// List is an ordered sequence of Items.
type List struct {
	Items []Item
}

// Append adds item to the end of the list.
func (l *List) Append(item Item) {
	l.Items = append(l.Items, item)
}

// At returns the item at index i. Callers must range-check first (the
// evaluator reports an indexer error with source position instead of
// panicking — see template/eval/reference.go).
func (l *List) At(i int) Item {
	return l.Items[i]
}

// Size returns the number of items in the list.
func (l *List) Size() int {
	return len(l.Items)
}
