package typegraph

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestNewGraphSealsDeclarationOrder(t *testing.T) {
	table := NewSymbolTable()
	mustDeclare(t, table, "Department", &Enum{Name: "Department", Values: []string{"SALES"}})
	mustDeclare(t, table, "Email", &Alias{Name: "Email", Target: &Scalar{Primitive: ScalarString}})
	mustDeclare(t, table, "Employee", &Object{Name: "Employee", Fields: []Field{
		{Name: "firstName", Type: &Scalar{Primitive: ScalarString}, Required: true},
	}})

	graph, err := NewGraph(table)
	if err != nil {
		t.Fatalf("NewGraph returned error: %v", err)
	}

	var names []string
	for _, td := range graph.Types() {
		names = append(names, DeclaredName(td))
	}
	want := []string{"Department", "Email", "Employee"}
	for i, name := range want {
		if names[i] != name {
			t.Fatalf("Types()[%d] = %q, want %q (full order %v)", i, names[i], name, names)
		}
	}

	if _, ok := graph.Named("Employee"); !ok {
		t.Fatal("Named(Employee) missed a sealed type")
	}
}

func TestNewGraphRejectsResidualReferences(t *testing.T) {
	table := NewSymbolTable()
	mustDeclare(t, table, "Employee", &Object{Name: "Employee", Fields: []Field{
		{Name: "department", Type: &Reference{Name: "Department"}},
	}})

	_, err := NewGraph(table)
	var unknown *UnknownReferenceError
	if !errors.As(err, &unknown) {
		t.Fatalf("NewGraph error = %T (%v), want *UnknownReferenceError", err, err)
	}
	if unknown.Declaration != "Employee" || unknown.Field != "department" {
		t.Fatalf("error location = %q/%q, want Employee/department", unknown.Declaration, unknown.Field)
	}
}

func TestNewGraphRejectsAliasCycles(t *testing.T) {
	a := &Alias{Name: "A"}
	b := &Alias{Name: "B", Target: a}
	a.Target = b

	table := NewSymbolTable()
	mustDeclare(t, table, "A", a)
	mustDeclare(t, table, "B", b)

	if _, err := NewGraph(table); err == nil || !strings.Contains(err.Error(), "alias cycle") {
		t.Fatalf("NewGraph error = %v, want alias cycle", err)
	}
}

func TestNewGraphAllowsObjectCycles(t *testing.T) {
	employee := &Object{Name: "Employee"}
	manager := &Object{Name: "Manager", Fields: []Field{
		{Name: "reports", Type: &List{Elem: employee}},
	}}
	employee.Fields = []Field{{Name: "manager", Type: manager}}

	table := NewSymbolTable()
	mustDeclare(t, table, "Employee", employee)
	mustDeclare(t, table, "Manager", manager)

	if _, err := NewGraph(table); err != nil {
		t.Fatalf("NewGraph rejected a legal object cycle: %v", err)
	}
}

func TestGraphMarshalJSON(t *testing.T) {
	table := NewSymbolTable()
	mustDeclare(t, table, "Department", &Enum{Name: "Department", Values: []string{"SALES", "HR"}})
	mustDeclare(t, table, "Employee", &Object{Name: "Employee", Fields: []Field{
		{
			Name:     "firstName",
			Type:     &Scalar{Primitive: ScalarString},
			Required: true,
			Constraints: []ConstraintDirective{
				{Predicate: PredicateIsAlpha},
				{Predicate: PredicateMinLength, IntArg: 2},
			},
		},
		{Name: "tags", Type: &List{Elem: &Scalar{Primitive: ScalarString}}},
	}})

	graph, err := NewGraph(table)
	if err != nil {
		t.Fatalf("NewGraph returned error: %v", err)
	}

	payload, err := json.Marshal(graph)
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}

	var decoded []map[string]any
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("round-trip decode failed: %v", err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d types, want 2", len(decoded))
	}
	if decoded[0]["name"] != "Department" || decoded[1]["name"] != "Employee" {
		t.Fatalf("type order = %v, %v", decoded[0]["name"], decoded[1]["name"])
	}

	text := string(payload)
	for _, fragment := range []string{`"type":"string[]"`, `"predicate":"isAlpha"`, `"intArg":2`} {
		if !strings.Contains(text, fragment) {
			t.Fatalf("payload missing %s:\n%s", fragment, text)
		}
	}
}

func mustDeclare(t *testing.T, table *SymbolTable, key string, td TypeDescriptor) {
	t.Helper()
	if err := table.Declare(key, td); err != nil {
		t.Fatalf("Declare(%s) returned error: %v", key, err)
	}
}
