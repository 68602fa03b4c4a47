package datafile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/delaneyj/tether/internal/datafile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLAndJSON(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "data.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("user:\n  name: A\n  age: 30\n  1: one\n"), 0644))
	data, err := datafile.Load(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"user": map[string]any{"name": "A", "age": 30, "1": "one"},
	}, data)

	jsonPath := filepath.Join(dir, "data.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"user": {"name": "A", "tags": ["x"]}}`), 0644))
	data, err = datafile.Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"user": map[string]any{"name": "A", "tags": []any{"x"}},
	}, data)

	_, err = datafile.Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestParseEmptyAndInvalid(t *testing.T) {
	data, err := datafile.Parse(nil)
	require.NoError(t, err)
	assert.Empty(t, data)

	_, err = datafile.Parse([]byte("- a\n- b\n"))
	assert.Error(t, err)
}

func TestParseAssignment(t *testing.T) {
	cases := []struct {
		in    string
		path  string
		value any
	}{
		{"user.name=B", "user.name", "B"},
		{"user.age=31", "user.age", 31},
		{"flag = true", "flag", true},
		{"empty=", "empty", ""},
		{"obj={a: 1}", "obj", map[string]any{"a": 1}},
		{"eq=a=b", "eq", "a=b"},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			path, v, err := datafile.ParseAssignment(c.in)
			require.NoError(t, err)
			assert.Equal(t, c.path, path)
			assert.Equal(t, c.value, v)
		})
	}

	_, _, err := datafile.ParseAssignment("novalue")
	assert.Error(t, err)
	_, _, err = datafile.ParseAssignment("=1")
	assert.Error(t, err)
}
