package model

// TabState records the indentation deltas in effect when a procedure was
// defined, so a later call can temporarily re-apply them (§4.3.5/§4.3.6).
type TabState struct {
	TabsToAdd    int
	TabsToRemove int
}

// Procedure is a first-class, template-defined value (§3.5). BodyPos is an
// opaque location in the template evaluator's token stream — model does not
// interpret it, the evaluator does (it is typed as int rather than a richer
// type to keep this package independent of the token stream).
type Procedure struct {
	Params      []string
	ParentScope *Dict
	BodyPos     int
	TabState    TabState
}
