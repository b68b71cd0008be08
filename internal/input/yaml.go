package input

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/bjaus/termtable"
)

// decodeYAML reads every document of a YAML stream. A single document
// holding a sequence is flattened into its elements.
func decodeYAML(r io.Reader) ([]any, error) {
	dec := yaml.NewDecoder(r)
	var docs []any
	for {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		v, err := yamlValue(&doc, map[*yaml.Node]bool{})
		if err != nil {
			return nil, err
		}
		docs = append(docs, v)
	}
	if len(docs) == 1 {
		if arr, ok := docs[0].([]any); ok {
			return arr, nil
		}
	}
	return docs, nil
}

func yamlValue(n *yaml.Node, expanding map[*yaml.Node]bool) (any, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return yamlValue(n.Content[0], expanding)
	case yaml.MappingNode:
		rec := make(termtable.Record, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			v, err := yamlValue(n.Content[i+1], expanding)
			if err != nil {
				return nil, err
			}
			rec = setField(rec, n.Content[i].Value, v)
		}
		return rec, nil
	case yaml.SequenceNode:
		arr := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := yamlValue(c, expanding)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.AliasNode:
		if expanding[n] {
			return nil, fmt.Errorf("line %d: alias *%s refers to itself", n.Line, n.Value)
		}
		expanding[n] = true
		defer delete(expanding, n)
		return yamlValue(n.Alias, expanding)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return v, nil
	default:
		return nil, fmt.Errorf("line %d: unsupported node kind %d", n.Line, n.Kind)
	}
}
