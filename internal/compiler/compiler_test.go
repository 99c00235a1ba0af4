package compiler_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	internalcompiler "github.com/goliatone/go-schemagen/internal/compiler"
	"github.com/goliatone/go-schemagen/internal/schema/parser"
	pkgcompiler "github.com/goliatone/go-schemagen/pkg/compiler"
	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

func compileString(t *testing.T, raw string) (*typegraph.Graph, error) {
	t.Helper()

	doc := schema.MustNewDocument(schema.SourceFromBytes("test.yaml", []byte(raw)), []byte(raw))
	root, err := parser.New().Parse(context.Background(), doc)
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	return internalcompiler.New(pkgcompiler.NewOptions()).Compile(context.Background(), root)
}

func mustCompile(t *testing.T, raw string) *typegraph.Graph {
	t.Helper()

	graph, err := compileString(t, raw)
	if err != nil {
		t.Fatalf("Compile returned error: %v", err)
	}
	return graph
}

const employeeDocument = `
definitions:
  Department:
    type: string
    description: Organizational unit.
    enum:
      - SALES
      - ENGINEERING
      - HR
  Email:
    type: string
    description: RFC 5322 address.
  Employee:
    type: object
    properties:
      firstName:
        type: string
        required: true
        validate:
          - pattern: isLetter
      email:
        $ref: "#/definitions/Email"
      departmentName:
        $ref: "#/definitions/Department"
`

func TestCompileEmployeeDocument(t *testing.T) {
	graph := mustCompile(t, employeeDocument)

	if got, want := graph.Len(), 3; got != want {
		t.Fatalf("graph holds %d types, want %d", got, want)
	}

	types := graph.Types()
	department, ok := types[0].(*typegraph.Enum)
	if !ok {
		t.Fatalf("first type is %T, want *typegraph.Enum", types[0])
	}
	if diff := cmp.Diff([]string{"SALES", "ENGINEERING", "HR"}, department.Values); diff != "" {
		t.Fatalf("Department values mismatch (-want +got):\n%s", diff)
	}

	email, ok := types[1].(*typegraph.Alias)
	if !ok {
		t.Fatalf("second type is %T, want *typegraph.Alias", types[1])
	}
	scalar, ok := email.Target.(*typegraph.Scalar)
	if !ok || scalar.Primitive != typegraph.ScalarString {
		t.Fatalf("Email target = %#v, want string scalar", email.Target)
	}

	employee, ok := types[2].(*typegraph.Object)
	if !ok {
		t.Fatalf("third type is %T, want *typegraph.Object", types[2])
	}
	if got, want := len(employee.Fields), 3; got != want {
		t.Fatalf("Employee has %d fields, want %d", got, want)
	}

	first := employee.Fields[0]
	if first.Name != "firstName" || !first.Required {
		t.Fatalf("field[0] = %q required=%v, want firstName required=true", first.Name, first.Required)
	}
	wantConstraints := []typegraph.ConstraintDirective{{Predicate: typegraph.PredicateIsAlpha}}
	if diff := cmp.Diff(wantConstraints, first.Constraints); diff != "" {
		t.Fatalf("firstName constraints mismatch (-want +got):\n%s", diff)
	}

	// References resolve to the declared descriptors themselves, not copies.
	if employee.Fields[1].Type != typegraph.TypeDescriptor(email) {
		t.Fatal("email field does not share the Email alias descriptor")
	}
	if employee.Fields[1].Required {
		t.Fatal("email field defaulted to required")
	}
	if employee.Fields[2].Type != typegraph.TypeDescriptor(department) {
		t.Fatal("departmentName field does not share the Department descriptor")
	}
}

func TestCompileResolvesForwardReferences(t *testing.T) {
	raw := `
definitions:
  Employee:
    type: object
    properties:
      department:
        $ref: "#/definitions/Department"
  Department:
    type: string
    enum: [SALES, HR]
`
	graph := mustCompile(t, raw)

	employee, _ := graph.Named("Employee")
	department, _ := graph.Named("Department")
	if employee.(*typegraph.Object).Fields[0].Type != department {
		t.Fatal("forward reference did not resolve to the later declaration")
	}
}

func TestCompileResolvesBareTypeNames(t *testing.T) {
	raw := `
definitions:
  Employee:
    type: object
    properties:
      department:
        type: Department
  Department:
    type: string
    enum: [SALES]
`
	graph := mustCompile(t, raw)

	employee, _ := graph.Named("Employee")
	field := employee.(*typegraph.Object).Fields[0]
	if _, ok := field.Type.(*typegraph.Enum); !ok {
		t.Fatalf("bare type name resolved to %T, want *typegraph.Enum", field.Type)
	}
}

func TestCompileAliasChains(t *testing.T) {
	raw := `
definitions:
  PrimaryContact:
    type: ContactEmail
  ContactEmail:
    type: Email
  Email:
    type: string
`
	graph := mustCompile(t, raw)

	primary, _ := graph.Named("PrimaryContact")
	target := primary.(*typegraph.Alias).Target
	contact, ok := target.(*typegraph.Alias)
	if !ok || contact.Name != "ContactEmail" {
		t.Fatalf("PrimaryContact target = %#v, want ContactEmail alias", target)
	}
	email, ok := contact.Target.(*typegraph.Alias)
	if !ok || email.Name != "Email" {
		t.Fatalf("ContactEmail target = %#v, want Email alias", contact.Target)
	}
	if _, ok := email.Target.(*typegraph.Scalar); !ok {
		t.Fatalf("Email target = %#v, want scalar", email.Target)
	}
}

func TestCompileRejectsAliasCycles(t *testing.T) {
	raw := `
definitions:
  A:
    type: B
  B:
    type: A
`
	_, err := compileString(t, raw)
	var malformed *schema.MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %T (%v), want *schema.MalformedDocumentError", err, err)
	}
}

func TestCompileRejectsUnknownAliasTarget(t *testing.T) {
	raw := `
definitions:
  Staff:
    type: Persona
`
	_, err := compileString(t, raw)
	var unknown *typegraph.UnknownReferenceError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %T (%v), want *typegraph.UnknownReferenceError", err, err)
	}
	if unknown.Declaration != "Staff" || unknown.Name != "Persona" {
		t.Fatalf("error = %v, want Staff -> Persona", unknown)
	}
}

func TestCompileRejectsUnknownFieldReference(t *testing.T) {
	raw := `
definitions:
  Employee:
    type: object
    properties:
      department:
        $ref: "#/definitions/Department"
`
	_, err := compileString(t, raw)
	var unknown *typegraph.UnknownReferenceError
	if !errors.As(err, &unknown) {
		t.Fatalf("error = %T (%v), want *typegraph.UnknownReferenceError", err, err)
	}
	if unknown.Declaration != "Employee" || unknown.Field != "department" || unknown.Name != "Department" {
		t.Fatalf("error = %v, want Employee.department -> Department", unknown)
	}
}

func TestCompileRejectsDuplicateDeclarations(t *testing.T) {
	raw := `
definitions:
  Employee:
    type: object
  Employee:
    type: string
`
	_, err := compileString(t, raw)
	var dup *typegraph.DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %T (%v), want *typegraph.DuplicateNameError", err, err)
	}
	if dup.Name != "Employee" {
		t.Fatalf("DuplicateNameError.Name = %q, want Employee", dup.Name)
	}
}

func TestCompileRejectsConvertedNameCollisions(t *testing.T) {
	raw := `
definitions:
  employee_record:
    type: object
  EmployeeRecord:
    type: object
`
	_, err := compileString(t, raw)
	var dup *typegraph.DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %T (%v), want *typegraph.DuplicateNameError", err, err)
	}
	if dup.TypeName != "EmployeeRecord" {
		t.Fatalf("DuplicateNameError.TypeName = %q, want EmployeeRecord", dup.TypeName)
	}
}

func TestCompileEnumCanonicalization(t *testing.T) {
	raw := `
definitions:
  Status:
    type: string
    enum:
      - active
      - onHold
      - " retired "
`
	graph := mustCompile(t, raw)

	status, _ := graph.Named("Status")
	want := []string{"ACTIVE", "ON_HOLD", "RETIRED"}
	if diff := cmp.Diff(want, status.(*typegraph.Enum).Values); diff != "" {
		t.Fatalf("canonical values mismatch (-want +got):\n%s", diff)
	}
}

func TestCompileRejectsEmptyEnumerations(t *testing.T) {
	raw := `
definitions:
  Status:
    type: string
    enum: []
`
	_, err := compileString(t, raw)
	var empty *typegraph.EmptyEnumerationError
	if !errors.As(err, &empty) {
		t.Fatalf("error = %T (%v), want *typegraph.EmptyEnumerationError", err, err)
	}
}

func TestCompileRejectsDuplicateEnumerationValues(t *testing.T) {
	raw := `
definitions:
  Status:
    type: string
    enum:
      - on-hold
      - ON_HOLD
`
	_, err := compileString(t, raw)
	var dup *typegraph.DuplicateEnumerationValueError
	if !errors.As(err, &dup) {
		t.Fatalf("error = %T (%v), want *typegraph.DuplicateEnumerationValueError", err, err)
	}
	if dup.Value != "ON_HOLD" {
		t.Fatalf("duplicate canonical value = %q, want ON_HOLD", dup.Value)
	}
}

func TestCompileSynthesizesNestedObjects(t *testing.T) {
	raw := `
definitions:
  Employee:
    type: object
    properties:
      homeAddress:
        type: object
        properties:
          street:
            type: string
          city:
            type: string
            required: true
`
	graph := mustCompile(t, raw)

	if got, want := graph.Len(), 2; got != want {
		t.Fatalf("graph holds %d types, want %d", got, want)
	}

	nested, ok := graph.Named("HomeAddress")
	if !ok {
		t.Fatal("synthesized HomeAddress type is missing from the graph")
	}
	obj := nested.(*typegraph.Object)
	if len(obj.Fields) != 2 || obj.Fields[1].Name != "city" || !obj.Fields[1].Required {
		t.Fatalf("HomeAddress fields = %+v", obj.Fields)
	}

	employee, _ := graph.Named("Employee")
	if employee.(*typegraph.Object).Fields[0].Type != nested {
		t.Fatal("homeAddress field does not use the synthesized type")
	}
}

func TestCompileSynthesizedNameCollisionsPickSuffix(t *testing.T) {
	raw := `
definitions:
  Contact:
    type: object
    properties:
      address:
        type: object
        properties:
          street:
            type: string
  Supplier:
    type: object
    properties:
      address:
        type: object
        properties:
          city:
            type: string
`
	graph := mustCompile(t, raw)

	if _, ok := graph.Named("Address"); !ok {
		t.Fatal("first synthesized type Address is missing")
	}
	second, ok := graph.Named("Address2")
	if !ok {
		t.Fatal("second synthesized type Address2 is missing")
	}
	if fields := second.(*typegraph.Object).Fields; len(fields) != 1 || fields[0].Name != "city" {
		t.Fatalf("Address2 fields = %+v", fields)
	}
}

func TestCompileCollections(t *testing.T) {
	raw := `
definitions:
  Department:
    type: string
    enum: [SALES]
  Roster:
    type: object
    properties:
      departments:
        type: array
        items:
          $ref: "#/definitions/Department"
      tags:
        type: array
        items:
          type: string
      misc:
        type: array
`
	graph := mustCompile(t, raw)

	roster, _ := graph.Named("Roster")
	fields := roster.(*typegraph.Object).Fields

	departments := fields[0].Type.(*typegraph.List)
	if _, ok := departments.Elem.(*typegraph.Enum); !ok {
		t.Fatalf("departments elem = %T, want *typegraph.Enum", departments.Elem)
	}

	tags := fields[1].Type.(*typegraph.List)
	if scalar, ok := tags.Elem.(*typegraph.Scalar); !ok || scalar.Primitive != typegraph.ScalarString {
		t.Fatalf("tags elem = %#v, want string scalar", tags.Elem)
	}

	misc := fields[2].Type.(*typegraph.List)
	if _, ok := misc.Elem.(*typegraph.Any); !ok {
		t.Fatalf("misc elem = %T, want *typegraph.Any", misc.Elem)
	}
}

func TestCompileRequiredFlag(t *testing.T) {
	raw := `
definitions:
  Employee:
    type: object
    properties:
      id:
        type: integer
        required: true
      nickname:
        type: string
`
	graph := mustCompile(t, raw)

	fields := mustObject(t, graph, "Employee").Fields
	if !fields[0].Required {
		t.Fatal("id should be required")
	}
	if fields[1].Required {
		t.Fatal("nickname should default to optional")
	}
}

func TestCompileRejectsNonBooleanRequired(t *testing.T) {
	raw := `
definitions:
  Employee:
    type: object
    properties:
      id:
        type: integer
        required: "yes"
`
	_, err := compileString(t, raw)
	var malformed *schema.MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %T (%v), want *schema.MalformedDocumentError", err, err)
	}
}

func TestCompileRejectsCollidingFields(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{
			name: "repeated property key",
			raw: `
definitions:
  Employee:
    type: object
    properties:
      name:
        type: string
      name:
        type: string
`,
		},
		{
			name: "collision after conversion",
			raw: `
definitions:
  Employee:
    type: object
    properties:
      first_name:
        type: string
      firstName:
        type: string
`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := compileString(t, tc.raw)
			var malformed *schema.MalformedDocumentError
			if !errors.As(err, &malformed) {
				t.Fatalf("error = %T (%v), want *schema.MalformedDocumentError", err, err)
			}
			if !strings.Contains(malformed.Reason, "collides") {
				t.Errorf("reason %q does not mention the collision", malformed.Reason)
			}
		})
	}
}

func TestCompileUnsupportedShapes(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		field string
		token string
	}{
		{
			name: "unknown field token",
			raw: `
definitions:
  Employee:
    type: object
    properties:
      when:
        type: datetime
`,
			field: "when",
			token: "datetime",
		},
		{
			name: "sequence property body",
			raw: `
definitions:
  Employee:
    type: object
    properties:
      tags:
        - one
`,
			field: "tags",
			token: "sequence",
		},
		{
			name: "sequence items",
			raw: `
definitions:
  Employee:
    type: object
    properties:
      tags:
        type: array
        items:
          - type: string
`,
			field: "tags",
			token: "sequence",
		},
		{
			name: "top-level array",
			raw: `
definitions:
  Departments:
    type: array
`,
			token: "array",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := compileString(t, tc.raw)
			var unsupported *typegraph.UnsupportedTypeError
			if !errors.As(err, &unsupported) {
				t.Fatalf("error = %T (%v), want *typegraph.UnsupportedTypeError", err, err)
			}
			if unsupported.Field != tc.field || unsupported.Token != tc.token {
				t.Fatalf("error = %v, want field %q token %q", unsupported, tc.field, tc.token)
			}
		})
	}
}

func TestCompileMissingTypeIsMalformed(t *testing.T) {
	raw := `
definitions:
  Employee:
    properties:
      id:
        type: integer
`
	_, err := compileString(t, raw)
	var malformed *schema.MalformedDocumentError
	if !errors.As(err, &malformed) {
		t.Fatalf("error = %T (%v), want *schema.MalformedDocumentError", err, err)
	}
}

func TestCompileSectionHandling(t *testing.T) {
	t.Run("missing section", func(t *testing.T) {
		_, err := compileString(t, "other: {}\n")
		var malformed *schema.MalformedDocumentError
		if !errors.As(err, &malformed) {
			t.Fatalf("error = %T (%v), want *schema.MalformedDocumentError", err, err)
		}
	})

	t.Run("section is not a mapping", func(t *testing.T) {
		_, err := compileString(t, "definitions: [one]\n")
		var malformed *schema.MalformedDocumentError
		if !errors.As(err, &malformed) {
			t.Fatalf("error = %T (%v), want *schema.MalformedDocumentError", err, err)
		}
	})

	t.Run("custom section key", func(t *testing.T) {
		raw := []byte("types:\n  Email:\n    type: string\n")
		doc := schema.MustNewDocument(schema.SourceFromBytes("custom.yaml", raw), raw)
		root, err := parser.New().Parse(context.Background(), doc)
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}

		c := internalcompiler.New(pkgcompiler.NewOptions(pkgcompiler.WithSectionKey("types")))
		graph, err := c.Compile(context.Background(), root)
		if err != nil {
			t.Fatalf("Compile returned error: %v", err)
		}
		if _, ok := graph.Named("Email"); !ok {
			t.Fatal("custom section declaration missing from graph")
		}
	})

	t.Run("nil root", func(t *testing.T) {
		c := internalcompiler.New(pkgcompiler.NewOptions())
		_, err := c.Compile(context.Background(), nil)
		var malformed *schema.MalformedDocumentError
		if !errors.As(err, &malformed) {
			t.Fatalf("error = %T (%v), want *schema.MalformedDocumentError", err, err)
		}
	})
}

func TestCompileFailuresAreAtomic(t *testing.T) {
	raw := `
definitions:
  Department:
    type: string
    enum: [SALES]
  Employee:
    type: object
    properties:
      manager:
        $ref: "#/definitions/Manager"
`
	graph, err := compileString(t, raw)
	if err == nil {
		t.Fatal("Compile accepted a document with an unknown reference")
	}
	if graph != nil {
		t.Fatal("Compile returned a partial graph alongside an error")
	}
}

func TestCompileDocumentsAreIndependent(t *testing.T) {
	c := internalcompiler.New(pkgcompiler.NewOptions())

	parse := func(raw string) schema.Node {
		doc := schema.MustNewDocument(schema.SourceFromBytes("doc.yaml", []byte(raw)), []byte(raw))
		root, err := parser.New().Parse(context.Background(), doc)
		if err != nil {
			t.Fatalf("Parse returned error: %v", err)
		}
		return root
	}

	// A failing document must not poison a later compilation on the same
	// compiler instance.
	if _, err := c.Compile(context.Background(), parse("definitions:\n  A:\n    type: Missing\n")); err == nil {
		t.Fatal("first Compile should have failed")
	}

	good := "definitions:\n  Email:\n    type: string\n"
	first, err := c.Compile(context.Background(), parse(good))
	if err != nil {
		t.Fatalf("second Compile returned error: %v", err)
	}
	second, err := c.Compile(context.Background(), parse(good))
	if err != nil {
		t.Fatalf("third Compile returned error: %v", err)
	}
	if first == second {
		t.Fatal("compilations shared a graph instance")
	}
}

func TestCompileHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := internalcompiler.New(pkgcompiler.NewOptions())
	if _, err := c.Compile(ctx, schema.NewMapping()); !errors.Is(err, context.Canceled) {
		t.Fatalf("Compile error = %v, want context.Canceled", err)
	}
}

func mustObject(t *testing.T, graph *typegraph.Graph, name string) *typegraph.Object {
	t.Helper()

	td, ok := graph.Named(name)
	if !ok {
		t.Fatalf("type %q missing from graph", name)
	}
	obj, ok := td.(*typegraph.Object)
	if !ok {
		t.Fatalf("type %q is %T, want *typegraph.Object", name, td)
	}
	return obj
}
