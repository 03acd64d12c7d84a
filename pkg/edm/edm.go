// Package edm provides the typed view of an OData v4 CSDL metadata document.
// The XML binding covers the subset of EDMX the generator consumes: structural
// types, enums, the entity container, and action/function overloads. Everything
// else is carried through untyped so unknown elements never break a parse.
package edm

import "encoding/xml"

type Edmx struct {
	XMLName      xml.Name     `xml:"http://docs.oasis-open.org/odata/ns/edmx Edmx"`
	Version      string       `xml:"Version,attr"`
	Reference    []Reference  `xml:"http://docs.oasis-open.org/odata/ns/edmx Reference"`
	DataServices DataServices `xml:"http://docs.oasis-open.org/odata/ns/edmx DataServices"`
}

type Reference struct {
	URI     string    `xml:"Uri,attr"`
	Include []Include `xml:"http://docs.oasis-open.org/odata/ns/edmx Include"`
}

type Include struct {
	Namespace string `xml:"Namespace,attr"`
	Alias     string `xml:"Alias,attr"`
}

type DataServices struct {
	Schema []Schema `xml:"http://docs.oasis-open.org/odata/ns/edm Schema"`
}

type Schema struct {
	Namespace       string            `xml:"Namespace,attr"`
	Alias           string            `xml:"Alias,attr"`
	EntityType      []EntityType      `xml:"http://docs.oasis-open.org/odata/ns/edm EntityType"`
	ComplexType     []ComplexType     `xml:"http://docs.oasis-open.org/odata/ns/edm ComplexType"`
	EnumType        []EnumType        `xml:"http://docs.oasis-open.org/odata/ns/edm EnumType"`
	TypeDefinition  []TypeDefinition  `xml:"http://docs.oasis-open.org/odata/ns/edm TypeDefinition"`
	Action          []Action          `xml:"http://docs.oasis-open.org/odata/ns/edm Action"`
	Function        []Function        `xml:"http://docs.oasis-open.org/odata/ns/edm Function"`
	EntityContainer []EntityContainer `xml:"http://docs.oasis-open.org/odata/ns/edm EntityContainer"`
	Other           []any             `xml:",any"`
}

type EntityType struct {
	Name               string               `xml:"Name,attr"`
	BaseType           string               `xml:"BaseType,attr"`
	Abstract           bool                 `xml:"Abstract,attr"`
	OpenType           bool                 `xml:"OpenType,attr"`
	HasStream          bool                 `xml:"HasStream,attr"`
	Key                []PropertyRef        `xml:"http://docs.oasis-open.org/odata/ns/edm Key>PropertyRef"`
	Property           []Property           `xml:"http://docs.oasis-open.org/odata/ns/edm Property"`
	NavigationProperty []NavigationProperty `xml:"http://docs.oasis-open.org/odata/ns/edm NavigationProperty"`
}

type ComplexType struct {
	Name               string               `xml:"Name,attr"`
	BaseType           string               `xml:"BaseType,attr"`
	Abstract           bool                 `xml:"Abstract,attr"`
	OpenType           bool                 `xml:"OpenType,attr"`
	Property           []Property           `xml:"http://docs.oasis-open.org/odata/ns/edm Property"`
	NavigationProperty []NavigationProperty `xml:"http://docs.oasis-open.org/odata/ns/edm NavigationProperty"`
}

type EnumType struct {
	Name           string   `xml:"Name,attr"`
	UnderlyingType string   `xml:"UnderlyingType,attr"`
	IsFlags        bool     `xml:"IsFlags,attr"`
	Member         []Member `xml:"http://docs.oasis-open.org/odata/ns/edm Member"`
}

type Member struct {
	Name  string  `xml:"Name,attr"`
	Value *string `xml:"Value,attr"`
}

type TypeDefinition struct {
	Name           string `xml:"Name,attr"`
	UnderlyingType string `xml:"UnderlyingType,attr"`
}

type PropertyRef struct {
	Name  string `xml:"Name,attr"`
	Alias string `xml:"Alias,attr"`
}

type Property struct {
	Name         string `xml:"Name,attr"`
	Type         string `xml:"Type,attr"`
	Nullable     *bool  `xml:"Nullable,attr"`
	MaxLength    int    `xml:"MaxLength,attr"`
	Precision    int    `xml:"Precision,attr"`
	Scale        int    `xml:"Scale,attr"`
	DefaultValue string `xml:"DefaultValue,attr"`
}

type NavigationProperty struct {
	Name           string `xml:"Name,attr"`
	Type           string `xml:"Type,attr"`
	Nullable       *bool  `xml:"Nullable,attr"`
	Partner        string `xml:"Partner,attr"`
	ContainsTarget bool   `xml:"ContainsTarget,attr"`
}

type Action struct {
	Name             string      `xml:"Name,attr"`
	IsBound          bool        `xml:"IsBound,attr"`
	EntitySetPath    string      `xml:"EntitySetPath,attr"`
	Parameter        []Parameter `xml:"http://docs.oasis-open.org/odata/ns/edm Parameter"`
	ReturnTypeOption *ReturnType `xml:"http://docs.oasis-open.org/odata/ns/edm ReturnType"`
}

type Function struct {
	Name             string      `xml:"Name,attr"`
	IsBound          bool        `xml:"IsBound,attr"`
	IsComposable     bool        `xml:"IsComposable,attr"`
	EntitySetPath    string      `xml:"EntitySetPath,attr"`
	Parameter        []Parameter `xml:"http://docs.oasis-open.org/odata/ns/edm Parameter"`
	ReturnTypeOption *ReturnType `xml:"http://docs.oasis-open.org/odata/ns/edm ReturnType"`
}

type Parameter struct {
	Name      string `xml:"Name,attr"`
	Type      string `xml:"Type,attr"`
	Nullable  *bool  `xml:"Nullable,attr"`
	MaxLength int    `xml:"MaxLength,attr"`
	Precision int    `xml:"Precision,attr"`
	Scale     int    `xml:"Scale,attr"`
}

type ReturnType struct {
	Type     string `xml:"Type,attr"`
	Nullable *bool  `xml:"Nullable,attr"`
}

type EntityContainer struct {
	Name           string           `xml:"Name,attr"`
	Extends        string           `xml:"Extends,attr"`
	EntitySet      []EntitySet      `xml:"http://docs.oasis-open.org/odata/ns/edm EntitySet"`
	Singleton      []Singleton      `xml:"http://docs.oasis-open.org/odata/ns/edm Singleton"`
	ActionImport   []ActionImport   `xml:"http://docs.oasis-open.org/odata/ns/edm ActionImport"`
	FunctionImport []FunctionImport `xml:"http://docs.oasis-open.org/odata/ns/edm FunctionImport"`
}

type EntitySet struct {
	Name              string `xml:"Name,attr"`
	EntityType        string `xml:"EntityType,attr"`
	IncludeInServices *bool  `xml:"IncludeInServiceDocument,attr"`
}

type Singleton struct {
	Name string `xml:"Name,attr"`
	Type string `xml:"Type,attr"`
}

type ActionImport struct {
	Name      string `xml:"Name,attr"`
	Action    string `xml:"Action,attr"`
	EntitySet string `xml:"EntitySet,attr"`
}

type FunctionImport struct {
	Name              string `xml:"Name,attr"`
	Function          string `xml:"Function,attr"`
	EntitySet         string `xml:"EntitySet,attr"`
	IncludeInServices *bool  `xml:"IncludeInServiceDocument,attr"`
}

// NullableOrDefault returns the value of an optional Nullable attribute.
// CSDL defaults Nullable to true when the attribute is absent.
func NullableOrDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}
