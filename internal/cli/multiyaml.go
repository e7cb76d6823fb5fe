package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseMultiYAML parses a file containing multiple YAML documents
// Returns a slice of maps containing the parsed YAML documents
func ParseMultiYAML(filename string) ([]map[string]any, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	data = replaceTabsWithSpaces(data)

	data, err = PreprocessYAML(data)
	if err != nil {
		return nil, err
	}

	return ParseMultiYAMLFromBytes(data)
}

// ParseMultiYAMLFromBytes parses byte data containing multiple YAML documents
func ParseMultiYAMLFromBytes(data []byte) ([]map[string]any, error) {
	content := strings.TrimSpace(string(data))
	if len(content) == 0 || strings.Trim(content, "- \n\t") == "" {
		return []map[string]any{}, nil
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	var result []map[string]any

	for {
		var doc map[string]any
		if err := decoder.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("failed to decode YAML: %w", err)
		}
		// trailing --- yields an empty document
		if len(doc) > 0 {
			result = append(result, doc)
		}
	}

	return result, nil
}

// LoadResourcesFromFile reads a bulk file and groups its documents by kind.
// Every document needs a known kind and a spec mapping.
func LoadResourcesFromFile(filename string) (map[string]ResourceList, error) {
	docs, err := ParseMultiYAML(filename)
	if err != nil {
		return nil, err
	}
	return groupResources(docs)
}

func groupResources(docs []map[string]any) (map[string]ResourceList, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("no documents found")
	}
	result := make(map[string]ResourceList)
	for i, doc := range docs {
		kind, ok := doc["kind"].(string)
		if !ok {
			return nil, fmt.Errorf("document %d: kind is missing or not a string", i+1)
		}
		if !ValidateResourceKind(kind) {
			return nil, fmt.Errorf("document %d: invalid resource kind: %s", i+1, kind)
		}
		spec, ok := doc["spec"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("document %d: spec is missing or not a mapping", i+1)
		}
		raw, err := json.Marshal(spec)
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i+1, err)
		}
		result[kind] = append(result[kind], Resource{Kind: kind, Spec: raw, Index: i + 1})
	}
	return result, nil
}

func replaceTabsWithSpaces(b []byte) []byte {
	return bytes.ReplaceAll(b, []byte("\t"), []byte("    "))
}
