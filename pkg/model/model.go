package model

import (
	"fmt"

	"github.com/genusP/pailingual-odata-model-generator/pkg/edm"
)

// Model owns every declaration produced for one generation run: the raw
// import statements, the api-context declaration, and the registry of type
// declarations in registration order. A Model is built once, optionally
// mutated by the post-build hook, rendered, and discarded.
type Model struct {
	imports []string
	context *StructuralDeclaration

	decls []TypeDeclaration
	byKey map[string]TypeDeclaration
}

func New() *Model {
	return &Model{byKey: make(map[string]TypeDeclaration)}
}

// AddImport appends a raw import statement emitted verbatim before the
// declarations.
func (m *Model) AddImport(statement string) {
	m.imports = append(m.imports, statement)
}

func (m *Model) Imports() []string { return m.imports }

// Context returns the api-context declaration, nil before SetContext.
func (m *Model) Context() *StructuralDeclaration { return m.context }

// SetContext installs the root api-context declaration and reserves its name
// in the registry so no synthesized declaration can collide with it. The
// context itself is not part of the flat declaration list; it renders
// separately.
func (m *Model) SetContext(decl *StructuralDeclaration) error {
	if err := m.reserve(decl.Name, decl); err != nil {
		return err
	}
	m.context = decl
	return nil
}

// Declarations returns every registered declaration in registration order.
func (m *Model) Declarations() []TypeDeclaration { return m.decls }

// Lookup finds a declaration by registry key (a metadata qualified name, or a
// synthesized short name).
func (m *Model) Lookup(key string) (TypeDeclaration, bool) {
	d, ok := m.byKey[key]
	return d, ok
}

// Remove drops a declaration from the registry and the ordered list. It
// exists for the post-build hook; construction never removes.
func (m *Model) Remove(key string) {
	d, ok := m.byKey[key]
	if !ok {
		return
	}
	delete(m.byKey, key)
	for i, existing := range m.decls {
		if existing == d {
			m.decls = append(m.decls[:i], m.decls[i+1:]...)
			break
		}
	}
}

// GetOrAdd returns the declaration registered for the metadata type, creating
// it on first use. The empty declaration is registered under the qualified
// name BEFORE init runs, so a re-entrant lookup from within init (a cyclic
// navigation property, a self-referencing operation binding) observes the
// placeholder and terminates instead of recursing forever. On a registry hit
// init is not invoked.
func (m *Model) GetOrAdd(t *edm.TypeInfo, init func(TypeDeclaration) error) (TypeDeclaration, error) {
	key := t.QualifiedName()
	if existing, ok := m.byKey[key]; ok {
		return existing, nil
	}
	var decl TypeDeclaration
	switch t.Kind() {
	case edm.KindEnum:
		decl = &EnumDeclaration{Name: t.ShortName()}
	case edm.KindEntity:
		decl = &StructuralDeclaration{Name: t.ShortName(), Base: BaseEntity}
	case edm.KindComplex:
		decl = &StructuralDeclaration{Name: t.ShortName(), Base: BaseComplex}
	default:
		return nil, fmt.Errorf("register %s: unsupported kind %s", key, t.Kind())
	}
	if err := m.register(key, decl); err != nil {
		return nil, err
	}
	if init != nil {
		if err := init(decl); err != nil {
			return nil, err
		}
	}
	return decl, nil
}

// AddOperationsInterface registers a synthesized operations interface under
// its own name. Two binding targets producing the same synthesized name is a
// construction error, not a merge.
func (m *Model) AddOperationsInterface(decl *OperationsInterfaceDeclaration) error {
	return m.register(decl.Name, decl)
}

func (m *Model) register(key string, decl TypeDeclaration) error {
	if err := m.reserve(key, decl); err != nil {
		return err
	}
	m.decls = append(m.decls, decl)
	return nil
}

func (m *Model) reserve(key string, decl TypeDeclaration) error {
	if key == "" {
		return fmt.Errorf("register declaration %T with empty key", decl)
	}
	if _, ok := m.byKey[key]; ok {
		return fmt.Errorf("duplicate declaration key %q", key)
	}
	m.byKey[key] = decl
	return nil
}
