package edm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleMetadata = `<?xml version="1.0" encoding="utf-8"?>
<edmx:Edmx xmlns:edmx="http://docs.oasis-open.org/odata/ns/edmx" Version="4.0">
  <edmx:DataServices>
    <Schema xmlns="http://docs.oasis-open.org/odata/ns/edm" Namespace="Sample.NS" Alias="Self">
      <EntityType Name="Customer">
        <Key>
          <PropertyRef Name="Id"/>
        </Key>
        <Property Name="Id" Type="Edm.Int32" Nullable="false"/>
        <Property Name="Name" Type="Edm.String"/>
        <Property Name="Address" Type="Sample.NS.Address"/>
        <NavigationProperty Name="Orders" Type="Collection(Sample.NS.Order)"/>
      </EntityType>
      <EntityType Name="Order" BaseType="Sample.NS.Document">
        <Key>
          <PropertyRef Name="Id"/>
        </Key>
        <Property Name="Id" Type="Edm.Int32" Nullable="false"/>
        <Property Name="Total" Type="Sample.NS.Money"/>
        <NavigationProperty Name="Customer" Type="Self.Customer"/>
      </EntityType>
      <EntityType Name="Document" Abstract="true">
        <Property Name="CreatedAt" Type="Edm.DateTimeOffset"/>
      </EntityType>
      <ComplexType Name="Address">
        <Property Name="Street" Type="Edm.String"/>
        <Property Name="City" Type="Edm.String"/>
      </ComplexType>
      <EnumType Name="OrderStatus">
        <Member Name="Draft" Value="1"/>
        <Member Name="Open"/>
        <Member Name="Closed" Value="9"/>
      </EnumType>
      <TypeDefinition Name="Money" UnderlyingType="Edm.Decimal"/>
      <Action Name="Approve" IsBound="true">
        <Parameter Name="bindingParameter" Type="Sample.NS.Order"/>
        <Parameter Name="comment" Type="Edm.String"/>
      </Action>
      <Function Name="TopCustomers" IsBound="false">
        <Parameter Name="count" Type="Edm.Int32" Nullable="false"/>
        <ReturnType Type="Collection(Sample.NS.Customer)"/>
      </Function>
      <EntityContainer Name="Demo">
        <EntitySet Name="Customers" EntityType="Sample.NS.Customer"/>
        <EntitySet Name="Orders" EntityType="Sample.NS.Order"/>
        <Singleton Name="Me" Type="Sample.NS.Customer"/>
      </EntityContainer>
    </Schema>
  </edmx:DataServices>
</edmx:Edmx>`

func TestParseIndexesDeclaredTypes(t *testing.T) {
	doc, err := ParseString(sampleMetadata)
	require.NoError(t, err)
	require.Len(t, doc.Schemas, 1)

	customer, ok := doc.Lookup("Sample.NS.Customer")
	require.True(t, ok)
	assert.Equal(t, KindEntity, customer.Kind())
	assert.Equal(t, "Sample.NS.Customer", customer.QualifiedName())
	assert.Equal(t, "Customer", customer.ShortName())

	address, ok := doc.Lookup("Sample.NS.Address")
	require.True(t, ok)
	assert.Equal(t, KindComplex, address.Kind())

	status, ok := doc.Lookup("Sample.NS.OrderStatus")
	require.True(t, ok)
	assert.Equal(t, KindEnum, status.Kind())

	_, ok = doc.Lookup("Sample.NS.Missing")
	assert.False(t, ok)
}

func TestParseAliasResolution(t *testing.T) {
	doc, err := ParseString(sampleMetadata)
	require.NoError(t, err)

	assert.Equal(t, "Sample.NS.Customer", doc.Canonical("Self.Customer"))
	assert.Equal(t, "Collection(Sample.NS.Customer)", doc.Canonical("Collection(Self.Customer)"))

	info, ok := doc.Lookup("Self.Customer")
	require.True(t, ok)
	assert.Equal(t, "Sample.NS.Customer", info.QualifiedName())
}

func TestParseTypeDefinitionCollapses(t *testing.T) {
	doc, err := ParseString(sampleMetadata)
	require.NoError(t, err)

	assert.Equal(t, "Edm.Decimal", doc.Canonical("Sample.NS.Money"))
	assert.Equal(t, "Edm.Decimal", doc.Canonical("Self.Money"))
}

func TestEntityTypeAccessors(t *testing.T) {
	doc, err := ParseString(sampleMetadata)
	require.NoError(t, err)

	customer, ok := doc.Lookup("Sample.NS.Customer")
	require.True(t, ok)

	props := customer.Properties()
	require.Len(t, props, 3)
	assert.Equal(t, "Id", props[0].Name)
	assert.Equal(t, "Name", props[1].Name)
	assert.Equal(t, "Address", props[2].Name)
	assert.False(t, NullableOrDefault(props[0].Nullable))
	assert.True(t, NullableOrDefault(props[1].Nullable))

	navs := customer.NavigationProperties()
	require.Len(t, navs, 1)
	assert.Equal(t, "Orders", navs[0].Name)
	assert.Equal(t, "Collection(Sample.NS.Order)", navs[0].Type)

	assert.Equal(t, []string{"Id"}, customer.Key())

	order, ok := doc.Lookup("Sample.NS.Order")
	require.True(t, ok)
	assert.Equal(t, "Sample.NS.Document", order.BaseType())
}

func TestEnumMembersImplicitValues(t *testing.T) {
	doc, err := ParseString(sampleMetadata)
	require.NoError(t, err)

	status, ok := doc.Lookup("Sample.NS.OrderStatus")
	require.True(t, ok)

	members, err := status.EnumMembers()
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, EnumMemberInfo{Name: "Draft", Value: 1}, members[0])
	assert.Equal(t, EnumMemberInfo{Name: "Open", Value: 2}, members[1])
	assert.Equal(t, EnumMemberInfo{Name: "Closed", Value: 9}, members[2])
}

func TestOperationsEnumeration(t *testing.T) {
	doc, err := ParseString(sampleMetadata)
	require.NoError(t, err)

	ops := doc.Operations()
	require.Len(t, ops, 2)

	approve := ops[0]
	assert.Equal(t, "Approve", approve.Name)
	assert.Equal(t, "Sample.NS.Approve", approve.QualifiedName())
	assert.True(t, approve.IsAction)
	assert.True(t, approve.IsBound)
	require.NotNil(t, approve.Binding)
	bindingType, collection := approve.BindingType()
	assert.Equal(t, "Sample.NS.Order", bindingType)
	assert.False(t, collection)
	require.Len(t, approve.Parameters, 1)
	assert.Equal(t, "comment", approve.Parameters[0].Name)

	top := ops[1]
	assert.Equal(t, "TopCustomers", top.Name)
	assert.False(t, top.IsAction)
	assert.False(t, top.IsBound)
	assert.Nil(t, top.Binding)
	require.NotNil(t, top.ReturnType)
	assert.Equal(t, "Collection(Sample.NS.Customer)", top.ReturnType.Type)
}

func TestContainer(t *testing.T) {
	doc, err := ParseString(sampleMetadata)
	require.NoError(t, err)

	container := doc.Container()
	require.NotNil(t, container)
	assert.Equal(t, "Demo", container.Name())
	assert.Equal(t, "Sample.NS.Demo", container.QualifiedName())
	require.Len(t, container.EntityContainer.EntitySet, 2)
	assert.Equal(t, "Customers", container.EntityContainer.EntitySet[0].Name)
	require.Len(t, container.EntityContainer.Singleton, 1)
	assert.Equal(t, "Me", container.EntityContainer.Singleton[0].Name)
}

func TestSplitCollection(t *testing.T) {
	inner, collection := SplitCollection("Collection(Edm.String)")
	assert.True(t, collection)
	assert.Equal(t, "Edm.String", inner)

	inner, collection = SplitCollection("Edm.String")
	assert.False(t, collection)
	assert.Equal(t, "Edm.String", inner)
}

func TestSplitQualifiedName(t *testing.T) {
	tests := []struct {
		input string
		ns    string
		name  string
	}{
		{"Sample.NS.Customer", "Sample.NS", "Customer"},
		{"Edm.String", "Edm", "String"},
		{"Bare", "", "Bare"},
	}
	for _, tc := range tests {
		ns, name := SplitQualifiedName(tc.input)
		assert.Equal(t, tc.ns, ns, tc.input)
		assert.Equal(t, tc.name, name, tc.input)
	}
}

func TestParseInvalidXML(t *testing.T) {
	_, err := ParseString("<not-edmx")
	assert.Error(t, err)
}
