package model

import "fmt"

// BaseKind identifies what a structural declaration derives from.
type BaseKind int

const (
	// BaseEntity marks a declaration generated from an entity type.
	BaseEntity BaseKind = iota
	// BaseComplex marks a declaration generated from a complex type.
	BaseComplex
	// BaseAPIContext marks the root api-context declaration.
	BaseAPIContext
	// BaseDeclared marks a declaration inheriting from another generated
	// structural declaration.
	BaseDeclared
)

// TypeDeclaration is any node owned by the Model registry.
type TypeDeclaration interface {
	DeclName() string
	Exported() bool
}

// TypeReference names a type without owning it: either a built-in Edm scalar
// or a declaration in the registry. A reference to a filtered-out type carries
// only the bare short name with a nil Decl.
type TypeReference struct {
	Name       string
	Primitive  bool
	Collection bool
	Decl       TypeDeclaration
}

// Property is one structural property of a generated declaration.
type Property struct {
	Name     string
	Type     TypeReference
	Nullable bool
}

// NavProperty is a navigation property. Navigation is lazily resolved by the
// consuming client, so a navigation property is always optional regardless of
// what the metadata says about nullability.
type NavProperty struct {
	Name    string
	Type    TypeReference
	Comment string
}

// OperationsRef holds the four optional operations-interface slots of a
// structural declaration.
type OperationsRef struct {
	InstanceActions     *OperationsInterfaceDeclaration
	InstanceFunctions   *OperationsInterfaceDeclaration
	CollectionActions   *OperationsInterfaceDeclaration
	CollectionFunctions *OperationsInterfaceDeclaration
}

// StructuralDeclaration is the generated form of an entity or complex type,
// and of the api-context.
type StructuralDeclaration struct {
	Name          string
	Base          BaseKind
	BaseDecl      *StructuralDeclaration
	BaseName      string // overrides the built-in base marker when set
	Properties    []Property
	NavProperties []NavProperty
	Key           []string
	Operations    *OperationsRef
	Comment       string
}

func (d *StructuralDeclaration) DeclName() string { return d.Name }
func (d *StructuralDeclaration) Exported() bool   { return true }

// EnumDeclaration is the generated form of an enum type.
type EnumDeclaration struct {
	Name    string
	Members []EnumMember

	names  map[string]struct{}
	values map[int64]struct{}
}

type EnumMember struct {
	Name  string
	Value int64
}

func (d *EnumDeclaration) DeclName() string { return d.Name }
func (d *EnumDeclaration) Exported() bool   { return true }

// AddMember appends a member. An empty name, a zero value, or a duplicate of
// either is a construction error.
func (d *EnumDeclaration) AddMember(name string, value int64) error {
	if name == "" {
		return fmt.Errorf("enum %s: member name is empty", d.Name)
	}
	if value == 0 {
		return fmt.Errorf("enum %s: member %s has no usable value", d.Name, name)
	}
	if d.names == nil {
		d.names = make(map[string]struct{})
		d.values = make(map[int64]struct{})
	}
	if _, ok := d.names[name]; ok {
		return fmt.Errorf("enum %s: duplicate member name %s", d.Name, name)
	}
	if _, ok := d.values[value]; ok {
		return fmt.Errorf("enum %s: duplicate member value %d (member %s)", d.Name, value, name)
	}
	d.names[name] = struct{}{}
	d.values[value] = struct{}{}
	d.Members = append(d.Members, EnumMember{Name: name, Value: value})
	return nil
}

// OperationsInterfaceDeclaration collects the method signatures bound to one
// target and bucket, e.g. the instance actions of one entity type.
type OperationsInterfaceDeclaration struct {
	Name    string
	Methods []MethodSignature
}

func (d *OperationsInterfaceDeclaration) DeclName() string { return d.Name }
func (d *OperationsInterfaceDeclaration) Exported() bool   { return false }

// MethodSignature is one operation overload. Parameter optionality lives in
// the parameter type, never in arity, so overloads sharing one interface
// cannot collide.
type MethodSignature struct {
	Name   string
	Return *TypeReference
	Params []MethodParam
}

type MethodParam struct {
	Name     string
	Type     TypeReference
	Nullable bool
}
