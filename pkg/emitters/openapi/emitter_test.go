package openapi_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ghodss/yaml"
	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/emitters/openapi"
	"github.com/goliatone/go-schemagen/pkg/testsupport"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

func buildGraph(t *testing.T, declare func(table *typegraph.SymbolTable)) *typegraph.Graph {
	t.Helper()

	table := typegraph.NewSymbolTable()
	declare(table)
	graph, err := typegraph.NewGraph(table)
	if err != nil {
		t.Fatalf("new graph: %v", err)
	}
	return graph
}

func mustDeclare(t *testing.T, table *typegraph.SymbolTable, key string, td typegraph.TypeDescriptor) {
	t.Helper()
	if err := table.Declare(key, td); err != nil {
		t.Fatalf("declare %s: %v", key, err)
	}
}

func employeeGraph(t *testing.T) *typegraph.Graph {
	t.Helper()

	stringScalar := &typegraph.Scalar{Primitive: typegraph.ScalarString}
	department := &typegraph.Enum{
		Name:   "Department",
		Values: []string{"SALES", "MARKETING", "HR", "IT", "FINANCE"},
	}
	email := &typegraph.Alias{
		Name:        "Email",
		Description: "Primary contact address.",
		Target:      stringScalar,
	}

	return buildGraph(t, func(table *typegraph.SymbolTable) {
		mustDeclare(t, table, "Department", department)
		mustDeclare(t, table, "Email", email)
		mustDeclare(t, table, "Employee", &typegraph.Object{
			Name: "Employee",
			Fields: []typegraph.Field{
				{
					Name:     "firstName",
					Type:     stringScalar,
					Required: true,
					Constraints: []typegraph.ConstraintDirective{
						{Predicate: typegraph.PredicateIsAlpha},
						{Predicate: typegraph.PredicateMinLength, IntArg: 2},
					},
				},
				{Name: "email", Type: email},
				{Name: "departmentName", Type: department},
			},
		})
	})
}

func emitDocument(t *testing.T, graph *typegraph.Graph, options emit.Options) map[string]any {
	t.Helper()

	emitter := openapi.New()
	units, err := emitter.Emit(testsupport.Context(), graph, options)
	if err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(units) != 1 || units[0].Name != "components" {
		t.Fatalf("expected a single components unit, got %v", units)
	}

	var doc map[string]any
	if err := yaml.Unmarshal(units[0].Body, &doc); err != nil {
		t.Fatalf("unmarshal emitted document: %v", err)
	}
	return doc
}

func TestEmitter_Metadata(t *testing.T) {
	emitter := openapi.New()

	if got := emitter.Name(); got != "openapi" {
		t.Errorf("Name() = %q", got)
	}
	if got := emitter.ContentType(); got != "application/yaml" {
		t.Errorf("ContentType() = %q", got)
	}
	if got := emitter.FileExtension(); got != ".yaml" {
		t.Errorf("FileExtension() = %q", got)
	}
}

func TestEmitter_EmployeeScenario(t *testing.T) {
	doc := emitDocument(t, employeeGraph(t), emit.Options{Title: "Employee Directory"})

	want := map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "Employee Directory",
			"version": "0.1.0",
		},
		"paths": map[string]any{},
		"components": map[string]any{
			"schemas": map[string]any{
				"Department": map[string]any{
					"type": "string",
					"enum": []any{"SALES", "MARKETING", "HR", "IT", "FINANCE"},
				},
				"Email": map[string]any{
					"type":        "string",
					"description": "Primary contact address.",
				},
				"Employee": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"firstName": map[string]any{
							"type":      "string",
							"pattern":   "^[A-Za-z]+$",
							"minLength": float64(2),
						},
						"email": map[string]any{
							"$ref": "#/components/schemas/Email",
						},
						"departmentName": map[string]any{
							"$ref": "#/components/schemas/Department",
						},
					},
					"required": []any{"firstName"},
				},
			},
		},
	}

	if diff := cmp.Diff(want, doc); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitter_DefaultTitle(t *testing.T) {
	doc := emitDocument(t, employeeGraph(t), emit.Options{})

	info, ok := doc["info"].(map[string]any)
	if !ok {
		t.Fatalf("info block missing: %v", doc)
	}
	if got := info["title"]; got != "Generated Schema" {
		t.Errorf("default title = %v", got)
	}
}

func TestEmitter_ConstraintsOnReferencesWrapInAllOf(t *testing.T) {
	email := &typegraph.Alias{
		Name:   "Email",
		Target: &typegraph.Scalar{Primitive: typegraph.ScalarString},
	}
	graph := buildGraph(t, func(table *typegraph.SymbolTable) {
		mustDeclare(t, table, "Email", email)
		mustDeclare(t, table, "Contact", &typegraph.Object{
			Name: "Contact",
			Fields: []typegraph.Field{
				{
					Name: "primary",
					Type: email,
					Constraints: []typegraph.ConstraintDirective{
						{Predicate: typegraph.PredicateMaxLength, IntArg: 120},
					},
				},
			},
		})
	})

	doc := emitDocument(t, graph, emit.Options{})

	want := map[string]any{
		"maxLength": float64(120),
		"allOf": []any{
			map[string]any{"$ref": "#/components/schemas/Email"},
		},
	}
	got := lookup(t, doc, "components", "schemas", "Contact", "properties", "primary")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("primary property mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitter_CollectionsAndRawPatterns(t *testing.T) {
	graph := buildGraph(t, func(table *typegraph.SymbolTable) {
		mustDeclare(t, table, "Inventory", &typegraph.Object{
			Name: "Inventory",
			Fields: []typegraph.Field{
				{Name: "tags", Type: &typegraph.List{Elem: &typegraph.Scalar{Primitive: typegraph.ScalarString}}},
				{Name: "attachments", Type: &typegraph.List{Elem: &typegraph.Any{}}},
				{
					Name: "sku",
					Type: &typegraph.Scalar{Primitive: typegraph.ScalarString},
					Constraints: []typegraph.ConstraintDirective{
						{Predicate: typegraph.PredicateRegex, StringArg: `^[0-9]{10}$`},
					},
				},
			},
		})
	})

	doc := emitDocument(t, graph, emit.Options{})
	properties := lookup(t, doc, "components", "schemas", "Inventory", "properties")

	want := map[string]any{
		"tags": map[string]any{
			"type":  "array",
			"items": map[string]any{"type": "string"},
		},
		"attachments": map[string]any{
			"type":  "array",
			"items": map[string]any{},
		},
		"sku": map[string]any{
			"type":    "string",
			"pattern": "^[0-9]{10}$",
		},
	}
	if diff := cmp.Diff(want, properties); diff != "" {
		t.Fatalf("properties mismatch (-want +got):\n%s", diff)
	}
}

func TestEmitter_Determinism(t *testing.T) {
	emitter := openapi.New()
	graph := employeeGraph(t)

	first, err := emitter.Emit(testsupport.Context(), graph, emit.Options{})
	if err != nil {
		t.Fatalf("first emit: %v", err)
	}
	second, err := emitter.Emit(testsupport.Context(), graph, emit.Options{})
	if err != nil {
		t.Fatalf("second emit: %v", err)
	}

	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("repeated emission differs (-first +second):\n%s", diff)
	}
}

func TestEmitter_NilGraph(t *testing.T) {
	if _, err := openapi.New().Emit(testsupport.Context(), nil, emit.Options{}); err == nil {
		t.Fatal("emit succeeded, want nil graph error")
	}
}

func TestEmitter_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := openapi.New().Emit(ctx, employeeGraph(t), emit.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("emit error = %v, want context.Canceled", err)
	}
}

// lookup digs through nested maps, failing the test when a step is missing.
func lookup(t *testing.T, doc map[string]any, path ...string) map[string]any {
	t.Helper()

	current := doc
	for _, key := range path {
		next, ok := current[key].(map[string]any)
		if !ok {
			t.Fatalf("path %v: %q is not a mapping (%T)", path, key, current[key])
		}
		current = next
	}
	return current
}
