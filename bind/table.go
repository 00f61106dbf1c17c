package bind

// SingleBinding ties one requested resource to one field of the owner.
type SingleBinding struct {
	Request Request
	// Field is the dotted field path, used in diagnostics.
	Field string
	// Index is the reflect field index path from the owner struct.
	Index         []int
	SkipTypeCheck bool
}

// CollectionBinding ties a whole scene bundle to one map[string]R field.
type CollectionBinding struct {
	Scene string
	Field string
	Index []int
}

// InitializerMethod is a zero-argument method on the owner's pointer type.
type InitializerMethod struct {
	Name string
	// Index is the method index in the owner's pointer method set.
	Index        int
	ReturnsError bool
}

// Table is the per-component binding table produced by Scan. It lives from
// Bind until the end of the component's injection pass and is then cleared.
type Table struct {
	Singles      []SingleBinding
	Collections  []CollectionBinding
	Initializers []InitializerMethod
}

// Requests returns the single-binding requests in declaration order.
func (t Table) Requests() []Request {
	if len(t.Singles) == 0 {
		return nil
	}
	out := make([]Request, 0, len(t.Singles))
	for _, b := range t.Singles {
		out = append(out, b.Request)
	}
	return out
}

// Len returns the total number of descriptors held.
func (t Table) Len() int {
	return len(t.Singles) + len(t.Collections) + len(t.Initializers)
}

// Clone returns a copy whose slices do not alias t.
func (t Table) Clone() Table {
	return Table{
		Singles:      append([]SingleBinding(nil), t.Singles...),
		Collections:  append([]CollectionBinding(nil), t.Collections...),
		Initializers: append([]InitializerMethod(nil), t.Initializers...),
	}
}

// Clear drops every descriptor so the backing arrays can be collected.
func (t *Table) Clear() {
	t.Singles = nil
	t.Collections = nil
	t.Initializers = nil
}
