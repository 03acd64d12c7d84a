package edm

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parser collects one or more CSDL readers and produces a single Document.
// Readers are parsed in the order they were added so schema iteration order is
// stable across runs.
type Parser struct {
	files []namedReader
}

type namedReader struct {
	name   string
	reader io.ReadCloser
}

func NewParser() *Parser {
	return &Parser{}
}

// AddFile queues a named CSDL reader. The reader is closed by Close.
func (p *Parser) AddFile(name string, file io.ReadCloser) {
	name = strings.TrimSuffix(name, ".xml")
	p.files = append(p.files, namedReader{name: name, reader: file})
}

func (p *Parser) Close() error {
	for _, f := range p.files {
		_ = f.reader.Close()
	}
	return nil
}

// Parse decodes every queued reader and indexes the combined schemas.
func (p *Parser) Parse() (*Document, error) {
	doc := &Document{
		aliases:      make(map[string]string),
		replacements: make(map[string]string),
		types:        make(map[string]*TypeInfo),
	}
	for _, f := range p.files {
		dec := xml.NewDecoder(f.reader)
		edmx := Edmx{}
		if err := dec.Decode(&edmx); err != nil {
			return nil, fmt.Errorf("decode %s: %w", f.name, err)
		}
		for _, ref := range edmx.Reference {
			for _, inc := range ref.Include {
				if inc.Alias != "" {
					doc.aliases[inc.Alias] = inc.Namespace
				}
			}
		}
		doc.Schemas = append(doc.Schemas, edmx.DataServices.Schema...)
	}
	doc.index()
	return doc, nil
}

// ParseString parses a single in-memory CSDL document.
func ParseString(data string) (*Document, error) {
	p := NewParser()
	p.AddFile("metadata", io.NopCloser(strings.NewReader(data)))
	defer p.Close()
	return p.Parse()
}

// Document is the combined, indexed view over all parsed schemas. It is the
// input the model builder consumes; lookups resolve namespace aliases and
// TypeDefinition indirections transparently.
type Document struct {
	Schemas []Schema

	aliases      map[string]string
	replacements map[string]string
	types        map[string]*TypeInfo
}

func (d *Document) index() {
	for i := range d.Schemas {
		schema := &d.Schemas[i]
		if schema.Alias != "" {
			d.aliases[schema.Alias] = schema.Namespace
		}
		for j := range schema.EntityType {
			et := &schema.EntityType[j]
			d.types[schema.Namespace+"."+et.Name] = &TypeInfo{
				Namespace: schema.Namespace,
				Name:      et.Name,
				kind:      KindEntity,
				entity:    et,
			}
		}
		for j := range schema.ComplexType {
			ct := &schema.ComplexType[j]
			d.types[schema.Namespace+"."+ct.Name] = &TypeInfo{
				Namespace: schema.Namespace,
				Name:      ct.Name,
				kind:      KindComplex,
				complex:   ct,
			}
		}
		for j := range schema.EnumType {
			et := &schema.EnumType[j]
			d.types[schema.Namespace+"."+et.Name] = &TypeInfo{
				Namespace: schema.Namespace,
				Name:      et.Name,
				kind:      KindEnum,
				enum:      et,
			}
		}
		for _, td := range schema.TypeDefinition {
			d.replacements[schema.Namespace+"."+td.Name] = td.UnderlyingType
		}
	}
}

// Canonical rewrites a type reference into its namespace-qualified form:
// aliases expand to their namespace and TypeDefinition names collapse to their
// underlying type. Collection wrappers are preserved.
func (d *Document) Canonical(typeRef string) string {
	inner, collection := SplitCollection(typeRef)
	ns, name := SplitQualifiedName(inner)
	if full, ok := d.aliases[ns]; ok {
		inner = full + "." + name
	}
	if underlying, ok := d.replacements[inner]; ok {
		inner = underlying
	}
	if collection {
		return "Collection(" + inner + ")"
	}
	return inner
}

// Lookup finds a declared type by its (possibly alias-qualified) name.
func (d *Document) Lookup(typeRef string) (*TypeInfo, bool) {
	inner, _ := SplitCollection(d.Canonical(typeRef))
	ti, ok := d.types[inner]
	return ti, ok
}

// Container returns the first entity container declared in the document, with
// its schema namespace, or nil when the document declares none.
func (d *Document) Container() *ContainerInfo {
	for i := range d.Schemas {
		schema := &d.Schemas[i]
		if len(schema.EntityContainer) > 0 {
			return &ContainerInfo{
				Namespace:       schema.Namespace,
				EntityContainer: &schema.EntityContainer[0],
			}
		}
	}
	return nil
}

// Operations enumerates every action and function overload across all schemas
// in declaration order, actions before functions within a schema.
func (d *Document) Operations() []Operation {
	var ops []Operation
	for i := range d.Schemas {
		schema := &d.Schemas[i]
		for j := range schema.Action {
			a := &schema.Action[j]
			ops = append(ops, newOperation(schema.Namespace, a.Name, true, a.IsBound, a.Parameter, a.ReturnTypeOption))
		}
		for j := range schema.Function {
			f := &schema.Function[j]
			ops = append(ops, newOperation(schema.Namespace, f.Name, false, f.IsBound, f.Parameter, f.ReturnTypeOption))
		}
	}
	return ops
}

// TypeInfo is the namespace-aware handle over a declared entity, complex, or
// enum type.
type TypeInfo struct {
	Namespace string
	Name      string

	kind    Kind
	entity  *EntityType
	complex *ComplexType
	enum    *EnumType
}

func (t *TypeInfo) Kind() Kind            { return t.kind }
func (t *TypeInfo) QualifiedName() string { return t.Namespace + "." + t.Name }
func (t *TypeInfo) ShortName() string     { return t.Name }

// BaseType returns the declared base type reference, empty when the type has
// none. Enums never have one.
func (t *TypeInfo) BaseType() string {
	switch t.kind {
	case KindEntity:
		return t.entity.BaseType
	case KindComplex:
		return t.complex.BaseType
	default:
		return ""
	}
}

// Properties returns the type's own declared structural properties in order.
func (t *TypeInfo) Properties() []Property {
	switch t.kind {
	case KindEntity:
		return t.entity.Property
	case KindComplex:
		return t.complex.Property
	default:
		return nil
	}
}

// NavigationProperties returns the type's own navigation properties in order.
func (t *TypeInfo) NavigationProperties() []NavigationProperty {
	switch t.kind {
	case KindEntity:
		return t.entity.NavigationProperty
	case KindComplex:
		return t.complex.NavigationProperty
	default:
		return nil
	}
}

// Key returns the declared key property names in order, nil when the type
// declares no key.
func (t *TypeInfo) Key() []string {
	if t.kind != KindEntity || len(t.entity.Key) == 0 {
		return nil
	}
	names := make([]string, 0, len(t.entity.Key))
	for _, ref := range t.entity.Key {
		names = append(names, ref.Name)
	}
	return names
}

// EnumMemberInfo is an enum member with its resolved integral value.
type EnumMemberInfo struct {
	Name  string
	Value int64
}

// EnumMembers returns the members in declared order. Members without an
// explicit Value continue numbering from the previous member, the same way
// consuming services assign implicit enum values.
func (t *TypeInfo) EnumMembers() ([]EnumMemberInfo, error) {
	if t.kind != KindEnum {
		return nil, nil
	}
	members := make([]EnumMemberInfo, 0, len(t.enum.Member))
	next := int64(0)
	for _, m := range t.enum.Member {
		value := next
		if m.Value != nil {
			parsed, err := strconv.ParseInt(*m.Value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("enum %s member %s: invalid value %q", t.QualifiedName(), m.Name, *m.Value)
			}
			value = parsed
		}
		members = append(members, EnumMemberInfo{Name: m.Name, Value: value})
		next = value + 1
	}
	return members, nil
}

// ContainerInfo pairs an entity container with the namespace that declares it.
type ContainerInfo struct {
	Namespace       string
	EntityContainer *EntityContainer
}

func (c *ContainerInfo) Name() string          { return c.EntityContainer.Name }
func (c *ContainerInfo) QualifiedName() string { return c.Namespace + "." + c.EntityContainer.Name }

// Operation is one action or function overload, normalized so the binding
// parameter is separated from the regular parameter list.
type Operation struct {
	Namespace  string
	Name       string
	IsAction   bool
	IsBound    bool
	Binding    *Parameter
	Parameters []Parameter
	ReturnType *ReturnType
}

func newOperation(namespace, name string, isAction, isBound bool, params []Parameter, ret *ReturnType) Operation {
	op := Operation{
		Namespace:  namespace,
		Name:       name,
		IsAction:   isAction,
		IsBound:    isBound,
		Parameters: params,
		ReturnType: ret,
	}
	if isBound && len(params) > 0 {
		op.Binding = &params[0]
		op.Parameters = params[1:]
	}
	return op
}

func (op *Operation) QualifiedName() string { return op.Namespace + "." + op.Name }

// BindingType returns the binding parameter's type with any Collection
// wrapper removed, plus whether the binding is collection-valued. Both are
// zero for unbound overloads.
func (op *Operation) BindingType() (string, bool) {
	if op.Binding == nil {
		return "", false
	}
	return SplitCollection(op.Binding.Type)
}
