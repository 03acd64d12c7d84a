package model

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/format"
	"go/token"
	"strconv"
	"strings"
)

// Render serializes a finished Model to formatted Go source: the package
// clause, the verbatim import statements, the exported context alias, the
// context declaration, then every registered declaration in registration
// order. Declarations are printed node by node and the whole buffer runs
// through the formatter once at the end.
func Render(m *Model, packageName string) ([]byte, error) {
	r := &renderer{
		w:       bytes.NewBuffer(nil),
		fileSet: token.NewFileSet(),
	}
	if err := r.node(&ast.File{Name: ast.NewIdent(packageName)}); err != nil {
		return nil, err
	}
	r.line("")
	for _, imp := range m.Imports() {
		r.line(imp)
	}
	if len(m.Imports()) > 0 {
		r.line("")
	}

	if context := m.Context(); context != nil {
		if context.Name != "ApiContext" {
			if err := r.node(aliasDecl("ApiContext", context.Name)); err != nil {
				return nil, err
			}
			r.line("")
		}
		if err := r.structural(context); err != nil {
			return nil, err
		}
	}

	for _, decl := range m.Declarations() {
		var err error
		switch d := decl.(type) {
		case *StructuralDeclaration:
			err = r.structural(d)
		case *EnumDeclaration:
			err = r.enum(d)
		case *OperationsInterfaceDeclaration:
			err = r.operations(d)
		default:
			err = fmt.Errorf("render: unsupported declaration %T", decl)
		}
		if err != nil {
			return nil, err
		}
	}
	return format.Source(r.w.Bytes())
}

type renderer struct {
	w       *bytes.Buffer
	fileSet *token.FileSet
}

func (r *renderer) line(s string) {
	r.w.WriteString(s)
	r.w.WriteString("\n")
}

func (r *renderer) node(n ast.Node) error {
	if err := format.Node(r.w, r.fileSet, n); err != nil {
		return err
	}
	r.line("")
	return nil
}

func (r *renderer) comment(text string) {
	if text != "" {
		r.line("// " + text)
	}
}

func (r *renderer) structural(d *StructuralDeclaration) error {
	structType := &ast.StructType{
		Fields: &ast.FieldList{
			List: make([]*ast.Field, 0, 1+len(d.Properties)+len(d.NavProperties)),
		},
	}
	structType.Fields.List = append(structType.Fields.List, &ast.Field{
		Type: ast.NewIdent(baseName(d)),
	})

	keys := make(map[string]bool, len(d.Key))
	for _, k := range d.Key {
		keys[k] = true
	}

	for _, prop := range d.Properties {
		tag := "json:\"" + prop.Name
		if prop.Nullable {
			tag += ",omitempty"
		}
		tag += "\""
		if keys[prop.Name] {
			tag += " odata:\"key\""
		}
		structType.Fields.List = append(structType.Fields.List, &ast.Field{
			Names: []*ast.Ident{ast.NewIdent(prop.Name)},
			Type:  typeExpr(prop.Type, prop.Nullable),
			Tag:   &ast.BasicLit{Kind: token.STRING, Value: "`" + tag + "`"},
		})
	}
	for _, nav := range d.NavProperties {
		tag := "json:\"" + nav.Name + ",omitempty\""
		if nav.Comment != "" {
			tag += " odata:\"" + nav.Comment + "\""
		}
		structType.Fields.List = append(structType.Fields.List, &ast.Field{
			Names: []*ast.Ident{ast.NewIdent(nav.Name)},
			Type:  typeExpr(nav.Type, true),
			Tag:   &ast.BasicLit{Kind: token.STRING, Value: "`" + tag + "`"},
		})
	}

	r.comment(d.Comment)
	if err := r.node(typeDecl(d.Name, structType)); err != nil {
		return err
	}
	return r.operationsRef(d)
}

// operationsRef emits the accessor methods tying a declaration to its
// synthesized operations interfaces, so consuming code reaches bound
// operations through the owning type.
func (r *renderer) operationsRef(d *StructuralDeclaration) error {
	if d.Operations == nil {
		return nil
	}
	slots := []struct {
		method string
		iface  *OperationsInterfaceDeclaration
	}{
		{"Actions", d.Operations.InstanceActions},
		{"Functions", d.Operations.InstanceFunctions},
		{"CollectionActions", d.Operations.CollectionActions},
		{"CollectionFunctions", d.Operations.CollectionFunctions},
	}
	for _, slot := range slots {
		if slot.iface == nil {
			continue
		}
		decl := &ast.FuncDecl{
			Recv: &ast.FieldList{List: []*ast.Field{{
				Type: ast.NewIdent(d.Name),
			}}},
			Name: ast.NewIdent(slot.method),
			Type: &ast.FuncType{
				Params: &ast.FieldList{},
				Results: &ast.FieldList{List: []*ast.Field{{
					Type: ast.NewIdent(slot.iface.Name),
				}}},
			},
			Body: &ast.BlockStmt{List: []ast.Stmt{
				&ast.ReturnStmt{Results: []ast.Expr{ast.NewIdent("nil")}},
			}},
		}
		if err := r.node(decl); err != nil {
			return err
		}
	}
	return nil
}

func (r *renderer) enum(d *EnumDeclaration) error {
	if err := r.node(typeDecl(d.Name, ast.NewIdent("int64"))); err != nil {
		return err
	}
	constBlock := &ast.GenDecl{
		Tok:    token.CONST,
		Lparen: 1,
		Specs:  make([]ast.Spec, 0, len(d.Members)),
	}
	for _, member := range d.Members {
		constBlock.Specs = append(constBlock.Specs, &ast.ValueSpec{
			Names: []*ast.Ident{ast.NewIdent(d.Name + member.Name)},
			Type:  ast.NewIdent(d.Name),
			Values: []ast.Expr{&ast.BasicLit{
				Kind:  token.INT,
				Value: strconv.FormatInt(member.Value, 10),
			}},
		})
	}
	return r.node(constBlock)
}

func (r *renderer) operations(d *OperationsInterfaceDeclaration) error {
	ifaceType := &ast.InterfaceType{
		Methods: &ast.FieldList{List: make([]*ast.Field, 0, len(d.Methods))},
	}
	for _, method := range d.Methods {
		funcType := &ast.FuncType{Params: &ast.FieldList{}}
		for _, param := range method.Params {
			funcType.Params.List = append(funcType.Params.List, &ast.Field{
				Names: []*ast.Ident{ast.NewIdent(param.Name)},
				Type:  typeExpr(param.Type, param.Nullable),
			})
		}
		if method.Return != nil {
			funcType.Results = &ast.FieldList{List: []*ast.Field{{
				Type: typeExpr(*method.Return, false),
			}}}
		}
		ifaceType.Methods.List = append(ifaceType.Methods.List, &ast.Field{
			Names: []*ast.Ident{ast.NewIdent(method.Name)},
			Type:  funcType,
		})
	}
	return r.node(typeDecl(d.Name, ifaceType))
}

func typeDecl(name string, typ ast.Expr) *ast.GenDecl {
	return &ast.GenDecl{
		Tok: token.TYPE,
		Specs: []ast.Spec{&ast.TypeSpec{
			Name: ast.NewIdent(name),
			Type: typ,
		}},
	}
}

func aliasDecl(name, target string) *ast.GenDecl {
	return &ast.GenDecl{
		Tok: token.TYPE,
		Specs: []ast.Spec{&ast.TypeSpec{
			Name:   ast.NewIdent(name),
			Assign: 1,
			Type:   ast.NewIdent(target),
		}},
	}
}

func baseName(d *StructuralDeclaration) string {
	if d.BaseName != "" {
		return d.BaseName
	}
	switch d.Base {
	case BaseDeclared:
		if d.BaseDecl != nil {
			return d.BaseDecl.Name
		}
		return "Entity"
	case BaseComplex:
		return "ComplexType"
	case BaseAPIContext:
		return "APIContext"
	default:
		return "Entity"
	}
}

// typeExpr maps a reference to the emitted Go type. Collections become
// slices; a nullable scalar becomes a pointer unless the underlying type is
// already a slice or any.
func typeExpr(ref TypeReference, nullable bool) ast.Expr {
	name := ref.Name
	prefix := ""
	switch {
	case ref.Collection:
		prefix = "[]"
	case nullable && !strings.HasPrefix(name, "[]") && name != "any":
		prefix = "*"
	}
	return &ast.Ident{Name: prefix + name}
}
