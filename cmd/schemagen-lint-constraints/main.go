package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	schemagen "github.com/goliatone/go-schemagen"
	internalcompiler "github.com/goliatone/go-schemagen/internal/compiler"
	"github.com/goliatone/go-schemagen/pkg/schema"
)

// The compiler drops validation patterns outside its vocabulary instead of
// failing the document, so a typo silently loses the constraint. This linter
// surfaces every directive the compiler would drop.

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	section := flag.String("section", "definitions", "declarations section key")
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint schema documents for validation patterns the compiler would drop.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{
			"examples/employee.yaml",
			"examples/inventory.yaml",
		}
	}

	ctx := context.Background()
	parser := schemagen.NewParser()

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, parser, *section, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, parser schema.Parser, sectionKey, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	doc, err := schema.NewDocument(schema.SourceFromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}

	root, err := parser.Parse(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	mapping, ok := root.(*schema.Mapping)
	if !ok {
		return nil, nil
	}
	node, ok := mapping.Get(sectionKey)
	if !ok {
		return nil, nil
	}
	declarations, ok := node.(*schema.Mapping)
	if !ok {
		return nil, nil
	}

	var result []violation
	for _, entry := range declarations.Entries() {
		body, ok := entry.Value.(*schema.Mapping)
		if !ok {
			continue
		}
		result = append(result, lintProperties(path, []string{entry.Key}, body)...)
	}
	return result, nil
}

// lintProperties walks one declaration body, descending into inline objects
// and array items the same way the resolver does.
func lintProperties(file string, path []string, body *schema.Mapping) []violation {
	node, ok := body.Get("properties")
	if !ok {
		return nil
	}
	props, ok := node.(*schema.Mapping)
	if !ok {
		return nil
	}

	var result []violation
	for _, entry := range props.Entries() {
		fieldBody, ok := entry.Value.(*schema.Mapping)
		if !ok {
			continue
		}
		result = append(result, lintField(file, appendPath(path, entry.Key), fieldBody)...)
	}
	return result
}

func lintField(file string, path []string, body *schema.Mapping) []violation {
	var result []violation

	if node, ok := body.Get("validate"); ok {
		result = append(result, lintValidate(file, path, node)...)
	}

	result = append(result, lintProperties(file, path, body)...)

	if node, ok := body.Get("items"); ok {
		if items, ok := node.(*schema.Mapping); ok {
			result = append(result, lintField(file, appendPath(path, "items"), items)...)
		}
	}
	return result
}

func lintValidate(file string, path []string, node schema.Node) []violation {
	seq, ok := node.(*schema.Sequence)
	if !ok {
		return []violation{{
			file:     file,
			location: formatLocation(path),
			message:  "validate must be a sequence",
		}}
	}

	var result []violation
	for i, item := range seq.Items() {
		location := formatLocation(appendPath(path, fmt.Sprintf("validate[%d]", i)))
		entry, ok := item.(*schema.Mapping)
		if !ok {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  "validate entry must be a mapping",
			})
			continue
		}

		patternNode, ok := entry.Get("pattern")
		if !ok {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  "validate entry is missing a pattern",
			})
			continue
		}
		scalar, ok := patternNode.(*schema.Scalar)
		pattern := ""
		if ok {
			pattern, ok = scalar.AsString()
		}
		if !ok {
			result = append(result, violation{
				file:     file,
				location: location,
				message:  "pattern must be a string",
			})
			continue
		}

		if !internalcompiler.IsKnownPattern(pattern) {
			result = append(result, violation{
				file:     file,
				location: location,
				message: fmt.Sprintf("unknown validation pattern %q (known: %s)",
					pattern, strings.Join(internalcompiler.KnownPatterns(), ", ")),
			})
		}
	}
	return result
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
