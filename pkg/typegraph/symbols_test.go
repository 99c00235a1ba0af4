package typegraph

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSymbolTableDeclareAndLookup(t *testing.T) {
	table := NewSymbolTable()

	if err := table.Declare("Employee", &Object{Name: "Employee"}); err != nil {
		t.Fatalf("Declare(Employee) returned error: %v", err)
	}
	if err := table.Declare("Department", &Enum{Name: "Department", Values: []string{"SALES"}}); err != nil {
		t.Fatalf("Declare(Department) returned error: %v", err)
	}

	td, ok := table.Lookup("Employee")
	if !ok {
		t.Fatal("Lookup(Employee) missed a declared key")
	}
	if _, ok := td.(*Object); !ok {
		t.Fatalf("Lookup(Employee) returned %T, want *Object", td)
	}

	if diff := cmp.Diff([]string{"Employee", "Department"}, table.Keys()); diff != "" {
		t.Fatalf("Keys() order mismatch (-want +got):\n%s", diff)
	}
	if !table.HasTypeName("Department") {
		t.Fatal("HasTypeName(Department) = false")
	}
	if table.HasTypeName("Missing") {
		t.Fatal("HasTypeName(Missing) = true for absent type")
	}
}

func TestSymbolTableRejectsDuplicateKeys(t *testing.T) {
	table := NewSymbolTable()
	if err := table.Declare("Employee", &Object{Name: "Employee"}); err != nil {
		t.Fatalf("first Declare returned error: %v", err)
	}

	err := table.Declare("Employee", &Object{Name: "Employee2"})
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("second Declare error = %T (%v), want *DuplicateNameError", err, err)
	}
	if dup.Name != "Employee" {
		t.Fatalf("DuplicateNameError.Name = %q, want %q", dup.Name, "Employee")
	}
}

func TestSymbolTableRejectsConvertedNameCollisions(t *testing.T) {
	table := NewSymbolTable()
	if err := table.Declare("employee_record", &Object{Name: TypeName("employee_record")}); err != nil {
		t.Fatalf("first Declare returned error: %v", err)
	}

	err := table.Declare("EmployeeRecord", &Object{Name: TypeName("EmployeeRecord")})
	var dup *DuplicateNameError
	if !errors.As(err, &dup) {
		t.Fatalf("Declare error = %T (%v), want *DuplicateNameError", err, err)
	}
	if dup.TypeName != "EmployeeRecord" {
		t.Fatalf("DuplicateNameError.TypeName = %q, want %q", dup.TypeName, "EmployeeRecord")
	}
}

func TestSymbolTableRejectsEmptyKeyAndNilDescriptor(t *testing.T) {
	table := NewSymbolTable()
	if err := table.Declare("", &Object{Name: "X"}); err == nil {
		t.Fatal("Declare accepted an empty key")
	}
	if err := table.Declare("X", nil); err == nil {
		t.Fatal("Declare accepted a nil descriptor")
	}
}
