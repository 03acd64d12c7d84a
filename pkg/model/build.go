package model

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/genusP/pailingual-odata-model-generator/pkg/edm"
)

// Options configures one generation run.
type Options struct {
	// Imports are raw import statements appended verbatim to the model.
	Imports []string
	// Include and Exclude gate which metadata elements enter the model.
	// Exclude wins over include; an empty include list admits everything.
	Include []Pattern
	Exclude []Pattern
	// APIContextName overrides the generated context type name
	// (default: "<ContainerName>Context", or "OdataContext" when the
	// document has no container).
	APIContextName string
	// APIContextBase overrides the context declaration's base type.
	APIContextBase string
	// AfterBuildModel is invoked exactly once, after the graph is fully
	// built and before rendering, with a mutable handle to the Model. Its
	// error aborts the run unchanged.
	AfterBuildModel func(ctx context.Context, m *Model, doc *edm.Document) error
	// Logger receives build-phase diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Builder performs the single construction pass over a metadata document.
// Construction is synchronous and depth-first; the registry's memoization
// bounds the traversal over cyclic entity graphs.
type Builder struct {
	doc    *edm.Document
	model  *Model
	filter *Filter
	opts   Options
	log    *zap.Logger
}

// Build constructs the declaration graph for the document: the api-context
// with its entity-set and singleton navigation properties, every included
// declared type, and the operations interfaces for every included overload.
// The returned Model has already been through the AfterBuildModel hook.
func Build(ctx context.Context, doc *edm.Document, opts Options) (*Model, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	b := &Builder{
		doc:    doc,
		model:  New(),
		filter: NewFilter(opts.Include, opts.Exclude),
		opts:   opts,
		log:    log,
	}
	for _, imp := range opts.Imports {
		b.model.AddImport(imp)
	}
	if err := b.buildContext(); err != nil {
		return nil, err
	}
	if err := b.bindOperations(); err != nil {
		return nil, err
	}
	if err := b.expandDeclaredTypes(); err != nil {
		return nil, err
	}
	if opts.AfterBuildModel != nil {
		if err := opts.AfterBuildModel(ctx, b.model, doc); err != nil {
			return nil, err
		}
	}
	return b.model, nil
}

// buildContext creates the root api-context declaration and populates it with
// one navigation property per included entity set and singleton, sets first,
// in declaration order. A set whose own name passes the filter is always
// emitted, with a bare-name type reference when its entity type is excluded.
func (b *Builder) buildContext() error {
	container := b.doc.Container()

	name := b.opts.APIContextName
	if name == "" {
		if container != nil {
			name = container.Name() + "Context"
		} else {
			name = "OdataContext"
		}
	}
	decl := &StructuralDeclaration{
		Name:     name,
		Base:     BaseAPIContext,
		BaseName: b.opts.APIContextBase,
	}
	if container != nil {
		decl.Comment = container.QualifiedName()
	}
	if err := b.model.SetContext(decl); err != nil {
		return err
	}
	if container == nil {
		b.log.Debug("metadata declares no entity container")
		return nil
	}

	for _, set := range container.EntityContainer.EntitySet {
		if err := b.addContextProperty(container, set.Name, set.EntityType, true); err != nil {
			return err
		}
	}
	for _, single := range container.EntityContainer.Singleton {
		if err := b.addContextProperty(container, single.Name, single.Type, false); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) addContextProperty(container *edm.ContainerInfo, name, entityType string, collection bool) error {
	qualified := container.Name() + "." + name
	if !b.filter.Included(qualified) {
		b.log.Debug("entity set filtered out", zap.String("name", qualified))
		return nil
	}
	ref, ok, err := b.resolve(entityType, collection)
	if err != nil {
		return err
	}
	if !ok {
		b.log.Warn("entity set references an undeclared type",
			zap.String("name", qualified), zapType(entityType))
		return nil
	}
	b.model.Context().NavProperties = append(b.model.Context().NavProperties, NavProperty{
		Name:    name,
		Type:    ref,
		Comment: container.Namespace + "." + qualified,
	})
	return nil
}

// initStructural returns the initializer populating a freshly registered
// entity/complex declaration from its metadata type. Only the type's own
// declared members are copied; inherited members stay on the base
// declaration, which is resolved like any other reference.
func (b *Builder) initStructural(info *edm.TypeInfo) func(TypeDeclaration) error {
	return func(d TypeDeclaration) error {
		decl := d.(*StructuralDeclaration)
		decl.Comment = info.QualifiedName()
		decl.Key = info.Key()

		if base := info.BaseType(); base != "" {
			ref, ok, err := b.resolve(base, false)
			if err != nil {
				return err
			}
			if ok {
				if baseDecl, isStruct := ref.Decl.(*StructuralDeclaration); isStruct {
					decl.Base = BaseDeclared
					decl.BaseDecl = baseDecl
				} else if ref.Decl == nil {
					decl.Base = BaseDeclared
					decl.BaseName = ref.Name
				}
			}
		}

		for _, prop := range info.Properties() {
			if !b.filter.Included(info.QualifiedName() + "." + prop.Name) {
				continue
			}
			ref, ok, err := b.resolve(prop.Type, false)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			decl.Properties = append(decl.Properties, Property{
				Name:     prop.Name,
				Type:     ref,
				Nullable: edm.NullableOrDefault(prop.Nullable),
			})
		}

		for _, nav := range info.NavigationProperties() {
			if !b.filter.Included(info.QualifiedName() + "." + nav.Name) {
				continue
			}
			ref, ok, err := b.resolve(nav.Type, false)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}
			decl.NavProperties = append(decl.NavProperties, NavProperty{
				Name: nav.Name,
				Type: ref,
			})
		}
		return nil
	}
}

// initEnum returns the initializer populating a freshly registered enum
// declaration. Duplicate names or values surface as construction errors.
func (b *Builder) initEnum(info *edm.TypeInfo) func(TypeDeclaration) error {
	return func(d TypeDeclaration) error {
		decl := d.(*EnumDeclaration)
		members, err := info.EnumMembers()
		if err != nil {
			return err
		}
		for _, m := range members {
			if err := decl.AddMember(m.Name, m.Value); err != nil {
				return err
			}
		}
		return nil
	}
}

// expandDeclaredTypes materializes every declared type that passes the
// filter, whether or not the container or an operation already reached it.
// The registry makes revisits free.
func (b *Builder) expandDeclaredTypes() error {
	for i := range b.doc.Schemas {
		schema := &b.doc.Schemas[i]
		for _, et := range schema.EntityType {
			if err := b.expandDeclared(schema.Namespace + "." + et.Name); err != nil {
				return err
			}
		}
		for _, ct := range schema.ComplexType {
			if err := b.expandDeclared(schema.Namespace + "." + ct.Name); err != nil {
				return err
			}
		}
		for _, en := range schema.EnumType {
			if err := b.expandDeclared(schema.Namespace + "." + en.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

func (b *Builder) expandDeclared(qualifiedName string) error {
	if !b.filter.Included(qualifiedName) {
		return nil
	}
	_, _, err := b.resolve(qualifiedName, false)
	return err
}

// bindOperations routes every action/function overload to its binding target:
// the api-context for unbound overloads, the binding parameter's declaration
// otherwise. The per-bucket operations interface is created lazily on first
// use and registered under its synthesized name.
func (b *Builder) bindOperations() error {
	for _, op := range b.doc.Operations() {
		if !b.filter.Included(op.QualifiedName()) {
			continue
		}
		target, collection, ok, err := b.bindingTarget(&op)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		iface, err := b.operationsBucket(target, op.IsAction, collection)
		if err != nil {
			return err
		}
		method, ok, err := b.methodSignature(&op)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		iface.Methods = append(iface.Methods, method)
	}
	return nil
}

// bindingTarget resolves where an overload's methods belong. A bound overload
// whose binding type is filtered out or undeclared drops the whole overload.
func (b *Builder) bindingTarget(op *edm.Operation) (*StructuralDeclaration, bool, bool, error) {
	if !op.IsBound {
		return b.model.Context(), false, true, nil
	}
	bindingType, collection := op.BindingType()
	if bindingType == "" {
		b.log.Warn("bound operation has no binding parameter", zap.String("operation", op.QualifiedName()))
		return nil, false, false, nil
	}
	canonical := b.doc.Canonical(bindingType)
	if !b.filter.Included(canonical) {
		b.log.Debug("operation dropped with its filtered binding target",
			zap.String("operation", op.QualifiedName()), zapType(canonical))
		return nil, false, false, nil
	}
	info, found := b.doc.Lookup(canonical)
	if !found {
		b.log.Warn("operation bound to an undeclared type",
			zap.String("operation", op.QualifiedName()), zapType(canonical))
		return nil, false, false, nil
	}
	decl, err := b.model.GetOrAdd(info, b.initStructural(info))
	if err != nil {
		return nil, false, false, err
	}
	target, isStruct := decl.(*StructuralDeclaration)
	if !isStruct {
		b.log.Warn("operation bound to a non-structural type",
			zap.String("operation", op.QualifiedName()), zapType(canonical))
		return nil, false, false, nil
	}
	return target, collection, true, nil
}

// operationsBucket returns the target's operations interface for one of the
// four buckets, creating and registering it on first use. The synthesized
// name concatenates "_", the target's short name, "EntitySet" when
// collection-bound, and "Actions" or "Functions". A name collision between
// two targets is fatal.
func (b *Builder) operationsBucket(target *StructuralDeclaration, isAction, collection bool) (*OperationsInterfaceDeclaration, error) {
	if target.Operations == nil {
		target.Operations = &OperationsRef{}
	}
	var slot **OperationsInterfaceDeclaration
	switch {
	case isAction && collection:
		slot = &target.Operations.CollectionActions
	case isAction:
		slot = &target.Operations.InstanceActions
	case collection:
		slot = &target.Operations.CollectionFunctions
	default:
		slot = &target.Operations.InstanceFunctions
	}
	if *slot != nil {
		return *slot, nil
	}

	name := "_" + target.Name
	if collection {
		name += "EntitySet"
	}
	if isAction {
		name += "Actions"
	} else {
		name += "Functions"
	}
	iface := &OperationsInterfaceDeclaration{Name: name}
	if err := b.model.AddOperationsInterface(iface); err != nil {
		return nil, fmt.Errorf("operations interface for %s: %w", target.Name, err)
	}
	*slot = iface
	return iface, nil
}

// methodSignature builds one overload's signature. A parameter whose type
// cannot be resolved is dropped; an unresolvable return type degrades to no
// return.
func (b *Builder) methodSignature(op *edm.Operation) (MethodSignature, bool, error) {
	method := MethodSignature{Name: op.Name}
	if op.ReturnType != nil {
		ref, ok, err := b.resolve(op.ReturnType.Type, false)
		if err != nil {
			return MethodSignature{}, false, err
		}
		if ok {
			method.Return = &ref
		}
	}
	for _, param := range op.Parameters {
		ref, ok, err := b.resolve(param.Type, false)
		if err != nil {
			return MethodSignature{}, false, err
		}
		if !ok {
			b.log.Debug("operation parameter dropped",
				zap.String("operation", op.QualifiedName()), zap.String("parameter", param.Name))
			continue
		}
		method.Params = append(method.Params, MethodParam{
			Name:     param.Name,
			Type:     ref,
			Nullable: edm.NullableOrDefault(param.Nullable),
		})
	}
	return method, true, nil
}

func zapType(name string) zap.Field { return zap.String("type", name) }
