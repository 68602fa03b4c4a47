// Package datafile loads data trees and command line assignments.
package datafile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML or JSON document whose top level is a mapping.
func Load(path string) (map[string]any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read data file: %w", err)
	}
	return Parse(b)
}

func Parse(b []byte) (map[string]any, error) {
	var data map[string]any
	if err := yaml.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("parse data: %w", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	return normalize(data).(map[string]any), nil
}

// normalize rewrites the map[any]any yaml produces for non-string keys so
// every nested mapping is observable.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, child := range v {
			v[k] = normalize(child)
		}
		return v
	case map[any]any:
		m := make(map[string]any, len(v))
		for k, child := range v {
			m[fmt.Sprint(k)] = normalize(child)
		}
		return m
	case []any:
		for i, child := range v {
			v[i] = normalize(child)
		}
		return v
	default:
		return v
	}
}

// ParseValue decodes s as a YAML scalar or flow value, so "31" is an int,
// "true" a bool and "{a: 1}" a map. An empty string stays a string.
func ParseValue(s string) (any, error) {
	if strings.TrimSpace(s) == "" {
		return s, nil
	}
	var v any
	if err := yaml.Unmarshal([]byte(s), &v); err != nil {
		return nil, fmt.Errorf("parse value %q: %w", s, err)
	}
	return normalize(v), nil
}

// ParseAssignment splits "path=value" and decodes the value.
func ParseAssignment(s string) (string, any, error) {
	path, raw, ok := strings.Cut(s, "=")
	path = strings.TrimSpace(path)
	if !ok || path == "" {
		return "", nil, fmt.Errorf("assignment %q: want path=value", s)
	}
	v, err := ParseValue(raw)
	if err != nil {
		return "", nil, err
	}
	return path, v, nil
}
