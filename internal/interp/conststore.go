package interp

// ConstStore is the write-once global mapping for `const const const`
// declarations (spec.md §4.4). Define always succeeds — later
// definitions overwrite, and the store is global and not rolled back
// by scopes. The evaluator is responsible for rejecting any assignment
// to a name that is present here, which is how "write-once" is actually
// enforced (spec.md §4.4: "at the evaluator boundary, not inside the
// store").
type ConstStore struct {
	values map[string]Value
}

func NewConstStore() *ConstStore {
	return &ConstStore{values: make(map[string]Value)}
}

func (c *ConstStore) Define(name string, value Value) {
	c.values[name] = value
}

func (c *ConstStore) TryGet(name string) (Value, bool) {
	v, ok := c.values[name]
	return v, ok
}

func (c *ConstStore) Has(name string) bool {
	_, ok := c.values[name]
	return ok
}
