package interp

import "github.com/dreamberd-lang/dreamberd/internal/ast"

// MethodDefinition is a class's stored method body, partitioned static
// vs instance by the registry that holds it (spec.md §3's
// ClassDefinition).
type MethodDefinition struct {
	Name   string
	Static bool
	Params []string
	Body   *ast.BlockStatement
}

// PropertyDefinition is a declared property descriptor: name, default
// initializer expression, static/fallback flags (spec.md §3).
type PropertyDefinition struct {
	Name     string
	Static   bool
	Fallback bool
	Default  ast.Expression
}

// ClassDefinition is the compile-time shape of a `NAME is a class { }`
// declaration (spec.md §3, §4.5): instance methods, static methods,
// static field values (shared across every instance), and the declared
// property list.
type ClassDefinition struct {
	Name            string
	InstanceMethods map[string]*MethodDefinition
	StaticMethods   map[string]*MethodDefinition
	StaticFields    map[string]Value
	Properties      []*PropertyDefinition
	InstanceFallback string
	StaticFallback   string
}

func newClassDefinition(name string) *ClassDefinition {
	return &ClassDefinition{
		Name:            name,
		InstanceMethods: make(map[string]*MethodDefinition),
		StaticMethods:   make(map[string]*MethodDefinition),
		StaticFields:    make(map[string]Value),
	}
}

// ClassRegistry owns every declared ClassDefinition plus the singleton
// ClassInstance map of spec.md §3: "referencing a class name yields the
// same instance every time; the instance is discarded when the class is
// redeclared."
type ClassRegistry struct {
	definitions map[string]*ClassDefinition
	instances   map[string]*Object
}

func NewClassRegistry() *ClassRegistry {
	return &ClassRegistry{
		definitions: make(map[string]*ClassDefinition),
		instances:   make(map[string]*Object),
	}
}

// Define replaces any existing definition and discards the previous
// singleton instance, per the redeclaration rule above.
func (r *ClassRegistry) Define(def *ClassDefinition) {
	r.definitions[def.Name] = def
	delete(r.instances, def.Name)
}

func (r *ClassRegistry) Lookup(name string) (*ClassDefinition, bool) {
	d, ok := r.definitions[name]
	return d, ok
}

// Instance returns the singleton instance for name, or false if the
// name is not a declared class.
func (r *ClassRegistry) Instance(name string) (*Object, bool) {
	inst, ok := r.instances[name]
	return inst, ok
}

// SetInstance records the lazily-created singleton for name.
func (r *ClassRegistry) SetInstance(name string, obj *Object) {
	r.instances[name] = obj
}
