package model

import "github.com/genusP/pailingual-odata-model-generator/pkg/edm"

// primitiveGoTypes maps Edm scalars to the Go type the renderer emits. The
// non-native entries (Date, DateTimeOffset, Duration, TimeOfDay, UUID) are
// declared by the support prelude.
var primitiveGoTypes = map[string]string{
	"Edm.Boolean":        "bool",
	"Edm.Byte":           "byte",
	"Edm.SByte":          "int8",
	"Edm.Int16":          "int16",
	"Edm.Int32":          "int32",
	"Edm.Int64":          "int64",
	"Edm.Single":         "float32",
	"Edm.Double":         "float64",
	"Edm.Decimal":        "float64",
	"Edm.String":         "string",
	"Edm.Binary":         "[]byte",
	"Edm.Stream":         "[]byte",
	"Edm.Date":           "Date",
	"Edm.DateTimeOffset": "DateTimeOffset",
	"Edm.TimeOfDay":      "TimeOfDay",
	"Edm.Duration":       "Duration",
	"Edm.Guid":           "UUID",
	"Edm.PrimitiveType":  "any",
	"Edm.Untyped":        "any",
}

// resolve maps a metadata type reference to a declaration-graph reference,
// materializing the referenced declaration on first use. The second return is
// false when the reference cannot be expressed at all (unknown primitive,
// undeclared named type); the caller drops the member or parameter instead of
// emitting a malformed reference. A type excluded by the filter still
// resolves, to its bare short name, so filtered types stay referenceable
// without being expanded.
func (b *Builder) resolve(typeRef string, collection bool) (TypeReference, bool, error) {
	canonical := b.doc.Canonical(typeRef)
	inner, isColl := edm.SplitCollection(canonical)
	collection = collection || isColl

	if edm.IsPrimitive(inner) {
		goType, ok := primitiveGoTypes[inner]
		if !ok {
			b.log.Debug("dropping reference to unknown primitive", zapType(inner))
			return TypeReference{}, false, nil
		}
		return TypeReference{Name: goType, Primitive: true, Collection: collection}, true, nil
	}

	if !b.filter.Included(inner) {
		return TypeReference{Name: edm.ShortName(inner), Collection: collection}, true, nil
	}

	info, ok := b.doc.Lookup(inner)
	if !ok {
		b.log.Debug("dropping reference to undeclared type", zapType(inner))
		return TypeReference{}, false, nil
	}

	var decl TypeDeclaration
	var err error
	switch info.Kind() {
	case edm.KindEntity, edm.KindComplex:
		decl, err = b.model.GetOrAdd(info, b.initStructural(info))
	case edm.KindEnum:
		decl, err = b.model.GetOrAdd(info, b.initEnum(info))
	default:
		b.log.Debug("dropping reference to unrecognized kind", zapType(inner))
		return TypeReference{}, false, nil
	}
	if err != nil {
		return TypeReference{}, false, err
	}
	return TypeReference{Name: decl.DeclName(), Collection: collection, Decl: decl}, true, nil
}
