// Package parser decodes YAML schema documents into the schema.Node tree.
// It implements the schema.Parser contract on top of gopkg.in/yaml.v3.
package parser

import (
	"context"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-schemagen/pkg/schema"
)

// Parser converts raw YAML into the closed node set consumed by the compiler.
type Parser struct{}

var _ schema.Parser = (*Parser)(nil)

// New constructs a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse decodes doc into a node tree. The top level must be a mapping; any
// decode failure or other top-level shape is a MalformedDocumentError.
func (p *Parser) Parse(ctx context.Context, doc schema.Document) (schema.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var root yaml.Node
	if err := yaml.Unmarshal(doc.Raw(), &root); err != nil {
		return nil, &schema.MalformedDocumentError{
			Location: doc.Location(),
			Reason:   "invalid YAML: " + err.Error(),
			Err:      err,
		}
	}

	body := documentBody(&root)
	if body == nil {
		return nil, &schema.MalformedDocumentError{
			Location: doc.Location(),
			Reason:   "document is empty",
		}
	}

	node, err := convert(body)
	if err != nil {
		return nil, &schema.MalformedDocumentError{
			Location: doc.Location(),
			Reason:   err.Error(),
		}
	}

	if _, ok := node.(*schema.Mapping); !ok {
		return nil, &schema.MalformedDocumentError{
			Location: doc.Location(),
			Reason:   "top-level node is not a mapping",
		}
	}
	return node, nil
}

// documentBody unwraps the yaml document wrapper and follows top-level
// aliases. It returns nil for empty documents.
func documentBody(root *yaml.Node) *yaml.Node {
	node := root
	for node != nil {
		switch node.Kind {
		case yaml.DocumentNode:
			if len(node.Content) == 0 {
				return nil
			}
			node = node.Content[0]
		case yaml.AliasNode:
			node = node.Alias
		case 0:
			return nil
		default:
			return node
		}
	}
	return nil
}

func convert(node *yaml.Node) (schema.Node, error) {
	switch node.Kind {
	case yaml.AliasNode:
		if node.Alias == nil {
			return nil, fmt.Errorf("alias node %q has no anchor target", node.Value)
		}
		return convert(node.Alias)
	case yaml.MappingNode:
		return convertMapping(node)
	case yaml.SequenceNode:
		return convertSequence(node)
	case yaml.ScalarNode:
		return convertScalar(node), nil
	default:
		return nil, fmt.Errorf("unsupported YAML node kind %d at line %d", node.Kind, node.Line)
	}
}

func convertMapping(node *yaml.Node) (schema.Node, error) {
	entries := make([]schema.MappingEntry, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode := node.Content[i]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("non-scalar mapping key at line %d", keyNode.Line)
		}

		value, err := convert(node.Content[i+1])
		if err != nil {
			return nil, err
		}
		entries = append(entries, schema.MappingEntry{Key: keyNode.Value, Value: value})
	}
	return schema.NewMapping(entries...), nil
}

func convertSequence(node *yaml.Node) (schema.Node, error) {
	items := make([]schema.Node, 0, len(node.Content))
	for _, child := range node.Content {
		item, err := convert(child)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return schema.NewSequence(items...), nil
}

// convertScalar types a YAML scalar by its resolved tag, falling back to the
// raw string when a tagged value does not parse.
func convertScalar(node *yaml.Node) *schema.Scalar {
	switch node.Tag {
	case "!!null":
		return schema.NullScalar()
	case "!!bool":
		if v, err := strconv.ParseBool(node.Value); err == nil {
			return schema.BoolScalar(v)
		}
	case "!!int":
		if v, err := strconv.ParseInt(node.Value, 0, 64); err == nil {
			return schema.IntScalar(v)
		}
		if v, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return schema.FloatScalar(v)
		}
	case "!!float":
		if v, err := strconv.ParseFloat(node.Value, 64); err == nil {
			return schema.FloatScalar(v)
		}
	}
	return schema.StringScalar(node.Value)
}
