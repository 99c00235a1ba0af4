package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-schemagen/pkg/emit"
	"github.com/goliatone/go-schemagen/pkg/orchestrator"
	"github.com/goliatone/go-schemagen/pkg/schema"
	"github.com/goliatone/go-schemagen/pkg/typegraph"
)

const snapshotEmitterName = "graph-snapshot"

// snapshotEmitter serializes the resolved type graph instead of generating
// code, which makes compiler changes easy to diff.
type snapshotEmitter struct {
	path string
}

func (e *snapshotEmitter) Name() string {
	return snapshotEmitterName
}

func (e *snapshotEmitter) ContentType() string {
	return "application/json"
}

func (e *snapshotEmitter) FileExtension() string {
	return ".json"
}

func (e *snapshotEmitter) Emit(_ context.Context, graph *typegraph.Graph, _ emit.Options) ([]emit.Unit, error) {
	payload, err := json.MarshalIndent(graph, "", "  ")
	if err != nil {
		return nil, err
	}
	payload = append(payload, '\n')
	if err := os.WriteFile(e.path, payload, 0o644); err != nil {
		return nil, err
	}
	return []emit.Unit{{Name: "graph", Body: payload}}, nil
}

func main() {
	var (
		schemaPath = flag.String("schema", "examples/employee.yaml", "schema document path")
		outputPath = flag.String("output", "gen/employee-graph.json", "output path for the serialized type graph")
	)
	flag.Parse()

	ctx := context.Background()

	if err := os.MkdirAll(filepath.Dir(*outputPath), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to prepare output directory: %v\n", err)
		os.Exit(1)
	}

	registry := emit.NewRegistry()
	registry.MustRegister(&snapshotEmitter{path: *outputPath})

	orch := orchestrator.New(
		orchestrator.WithRegistry(registry),
		orchestrator.WithDefaultEmitter(snapshotEmitterName),
	)

	_, err := orch.Generate(ctx, orchestrator.Request{
		Source: schema.SourceFromFile(*schemaPath),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to snapshot type graph: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✓ Snapshot written → %s\n", *outputPath)
}
