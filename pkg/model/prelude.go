package model

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/token"
)

// PreludeFilename is the conventional name of the support file emitted next
// to the generated model.
const PreludeFilename = "odata.go"

const dateMarshalText = `
	func (d Date) MarshalJSON() ([]byte, error) {
		return []byte(strconv.Quote(d.Time.Format("2006-01-02"))), nil
	}

	func (d *Date) UnmarshalJSON(b []byte) error {
		str, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		t, err := time.Parse("2006-01-02", str)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	}
`

const dateTimeOffsetMarshalText = `
	func (d DateTimeOffset) MarshalJSON() ([]byte, error) {
		return []byte(strconv.Quote(d.Time.Format(time.RFC3339))), nil
	}

	func (d *DateTimeOffset) UnmarshalJSON(b []byte) error {
		str, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		t, err := time.Parse(time.RFC3339, str)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	}
`

const timeOfDayMarshalText = `
	func (d TimeOfDay) MarshalJSON() ([]byte, error) {
		return []byte(strconv.Quote(d.Time.Format("15:04:05"))), nil
	}

	func (d *TimeOfDay) UnmarshalJSON(b []byte) error {
		str, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		t, err := time.Parse("15:04:05", str)
		if err != nil {
			return err
		}
		d.Time = t
		return nil
	}
`

const durationMarshalText = `
	// ISO 8601 durations, the only duration form OData v4 payloads carry.
	var iso8601Duration = regexp.MustCompile(` + "`" + `^(-)?P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$` + "`" + `)

	func (d Duration) MarshalJSON() ([]byte, error) {
		buf := bytes.NewBufferString("\"")
		v := d.Duration
		if v < 0 {
			buf.WriteString("-")
			v = -v
		}
		buf.WriteString("P")
		if days := int64(v / (24 * time.Hour)); days > 0 {
			fmt.Fprintf(buf, "%dD", days)
			v -= time.Duration(days) * 24 * time.Hour
		}
		if v > 0 {
			buf.WriteString("T")
			if hours := int64(v / time.Hour); hours > 0 {
				fmt.Fprintf(buf, "%dH", hours)
				v -= time.Duration(hours) * time.Hour
			}
			if mins := int64(v / time.Minute); mins > 0 {
				fmt.Fprintf(buf, "%dM", mins)
				v -= time.Duration(mins) * time.Minute
			}
			if v > 0 {
				fmt.Fprintf(buf, "%gS", v.Seconds())
			}
		}
		buf.WriteString("\"")
		return buf.Bytes(), nil
	}

	func (d *Duration) UnmarshalJSON(b []byte) error {
		if bytes.Equal(b, []byte("null")) {
			return nil
		}
		str, err := strconv.Unquote(string(b))
		if err != nil {
			return err
		}
		parts := iso8601Duration.FindStringSubmatch(str)
		if parts == nil {
			return fmt.Errorf("invalid duration %q", str)
		}
		var v time.Duration
		if parts[2] != "" {
			days, _ := strconv.Atoi(parts[2])
			v += time.Duration(days) * 24 * time.Hour
		}
		if parts[3] != "" {
			hours, _ := strconv.Atoi(parts[3])
			v += time.Duration(hours) * time.Hour
		}
		if parts[4] != "" {
			mins, _ := strconv.Atoi(parts[4])
			v += time.Duration(mins) * time.Minute
		}
		if parts[5] != "" {
			secs, _ := strconv.ParseFloat(parts[5], 64)
			v += time.Duration(secs * float64(time.Second))
		}
		if parts[1] == "-" {
			v = -v
		}
		d.Duration = v
		return nil
	}
`

// Prelude renders the support file the generated model depends on: the base
// markers embedded by every generated declaration and the Edm scalar wrapper
// types with their JSON codecs.
func Prelude(packageName string) ([]byte, error) {
	fileNode := &ast.File{
		Name: ast.NewIdent(packageName),
		Decls: []ast.Decl{
			&ast.GenDecl{
				Tok: token.IMPORT,
				Specs: []ast.Spec{
					importSpec("bytes"),
					importSpec("fmt"),
					importSpec("regexp"),
					importSpec("strconv"),
					importSpec("time"),
				},
			},
			&ast.GenDecl{
				Tok: token.TYPE,
				Specs: []ast.Spec{
					markerSpec("Entity"),
					markerSpec("ComplexType"),
					markerSpec("APIContext"),
					wrapperSpec("Date", "Time", "time.Time"),
					wrapperSpec("DateTimeOffset", "Time", "time.Time"),
					wrapperSpec("TimeOfDay", "Time", "time.Time"),
					wrapperSpec("Duration", "Duration", "time.Duration"),
					&ast.TypeSpec{
						Name: ast.NewIdent("UUID"),
						Type: ast.NewIdent("string"),
					},
				},
			},
		},
	}
	buf := bytes.NewBuffer(nil)
	fileSet := token.NewFileSet()
	if err := format.Node(buf, fileSet, fileNode); err != nil {
		return nil, err
	}
	buf.WriteString(dateMarshalText)
	buf.WriteString(dateTimeOffsetMarshalText)
	buf.WriteString(timeOfDayMarshalText)
	buf.WriteString(durationMarshalText)
	return format.Source(buf.Bytes())
}

func importSpec(path string) *ast.ImportSpec {
	return &ast.ImportSpec{
		Path: &ast.BasicLit{Kind: token.STRING, Value: `"` + path + `"`},
	}
}

func markerSpec(name string) *ast.TypeSpec {
	return &ast.TypeSpec{
		Name: ast.NewIdent(name),
		Type: &ast.StructType{Fields: &ast.FieldList{}},
	}
}

func wrapperSpec(name, field, fieldType string) *ast.TypeSpec {
	return &ast.TypeSpec{
		Name: ast.NewIdent(name),
		Type: &ast.StructType{
			Fields: &ast.FieldList{
				List: []*ast.Field{{
					Names: []*ast.Ident{ast.NewIdent(field)},
					Type:  ast.NewIdent(fieldType),
				}},
			},
		},
	}
}
