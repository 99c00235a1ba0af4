package main

import (
	"context"
	"fmt"
	"os"

	schemagen "github.com/goliatone/go-schemagen"
	"github.com/goliatone/go-schemagen/internal/sink"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

func main() {
	ctx := context.Background()

	const (
		schemaPath = "examples/employee.yaml"
		outputDir  = "gen/employee"
	)

	units, err := schemagen.Generate(ctx, schema.SourceFromFile(schemaPath), "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to generate model: %v\n", err)
		os.Exit(1)
	}

	out, err := sink.NewDirectory(outputDir,
		sink.WithExtension(".dart"),
		sink.WithOverwrite(true),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open output directory: %v\n", err)
		os.Exit(1)
	}
	for _, unit := range units {
		if err := out.Write(ctx, unit); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write output: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Printf("✓ Generated %d Dart files → %s\n", len(units), outputDir)
}
