package edm

import "strings"

// Kind discriminates the metadata types a reference can point at.
type Kind int

const (
	KindUnknown Kind = iota
	KindPrimitive
	KindEntity
	KindComplex
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindEntity:
		return "entity"
	case KindComplex:
		return "complex"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// SplitCollection unwraps a Collection(...) type reference. The second return
// is true when the reference was collection-valued.
func SplitCollection(typeRef string) (string, bool) {
	if strings.HasPrefix(typeRef, "Collection(") && strings.HasSuffix(typeRef, ")") {
		return typeRef[len("Collection(") : len(typeRef)-1], true
	}
	return typeRef, false
}

// SplitQualifiedName splits "My.Name.Space.Type" into the namespace and the
// short type name. A name with no dot has an empty namespace.
func SplitQualifiedName(qualifiedName string) (string, string) {
	index := strings.LastIndex(qualifiedName, ".")
	if index == -1 {
		return "", qualifiedName
	}
	return qualifiedName[:index], qualifiedName[index+1:]
}

// ShortName returns the last segment of a qualified name.
func ShortName(qualifiedName string) string {
	_, name := SplitQualifiedName(qualifiedName)
	return name
}

// IsPrimitive reports whether a type reference names a built-in Edm scalar.
func IsPrimitive(typeRef string) bool {
	return strings.HasPrefix(typeRef, "Edm.")
}
