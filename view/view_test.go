package view_test

import (
	"testing"

	"github.com/delaneyj/tether/bind"
	"github.com/delaneyj/tether/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindText(t *testing.T) {
	rs := bind.CreateReactiveSystem(map[string]any{
		"user": map[string]any{"name": "A", "age": 30},
	})

	var seen []string
	text, err := view.BindText(rs, "Hello {{ user.name }} ({{user.age}}), bye {{ user.name }}", func(s string) {
		seen = append(seen, s)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"user.age", "user.name"}, text.Paths())
	assert.Equal(t, []string{"Hello A (30), bye A"}, seen)

	require.NoError(t, rs.Assign("user.name", "B"))
	assert.Equal(t, "Hello B (30), bye B", text.String())
	assert.Len(t, seen, 2)

	require.NoError(t, rs.Assign("user.age", 31))
	assert.Equal(t, "Hello B (31), bye B", seen[len(seen)-1])
	assert.Equal(t, 3, text.Renders())
}

func TestBindTextSkipsUnchangedRenders(t *testing.T) {
	rs := bind.CreateReactiveSystem(map[string]any{
		"a": map[string]any{"b": 1, "c": 2},
	})

	var seen []string
	_, err := view.BindText(rs, "{{a.b}}-{{a.c}}", func(s string) {
		seen = append(seen, s)
	})
	require.NoError(t, err)

	// both watchers read "a", the second render is identical and is dropped
	require.NoError(t, rs.Assign("a", map[string]any{"b": 3, "c": 4}))
	assert.Equal(t, []string{"1-2", "3-4"}, seen)
}

func TestBindTextAdjacentMarkers(t *testing.T) {
	rs := bind.CreateReactiveSystem(map[string]any{"a": "x", "b": "y"})

	var seen []string
	text, err := view.BindText(rs, "{{a}}{{b}}|{{{a}}}", func(s string) {
		seen = append(seen, s)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, text.Paths())
	assert.Equal(t, []string{"xy|{x}"}, seen)

	require.NoError(t, rs.Assign("b", "z"))
	assert.Equal(t, "xz|{x}", text.String())
}

func TestBindTextNoMarkers(t *testing.T) {
	rs := bind.CreateReactiveSystem(nil)
	var seen []string
	text, err := view.BindText(rs, "static", func(s string) {
		seen = append(seen, s)
	})
	require.NoError(t, err)
	assert.Empty(t, text.Paths())
	assert.Equal(t, []string{"static"}, seen)
}

func TestBindTextErrors(t *testing.T) {
	rs := bind.CreateReactiveSystem(map[string]any{"n": 1})

	_, err := view.BindText(rs, "{{ a..b }}", nil)
	assert.ErrorIs(t, err, bind.ErrInvalidPath)

	_, err = view.BindText(rs, "{{ n.x.y }}", nil)
	assert.ErrorIs(t, err, bind.ErrPathResolution)
}

func TestFormat(t *testing.T) {
	rs := bind.CreateReactiveSystem(map[string]any{"o": map[string]any{"k": "v"}})
	o, _ := rs.Root().Peek("o")

	assert.Equal(t, "", view.Format(nil))
	assert.Equal(t, "s", view.Format("s"))
	assert.Equal(t, "1.5", view.Format(1.5))
	assert.Equal(t, "true", view.Format(true))
	assert.Equal(t, `{"k":"v"}`, view.Format(o))
}

func TestBindModel(t *testing.T) {
	rs := bind.CreateReactiveSystem(map[string]any{
		"form": map[string]any{"email": "a@example.com"},
	})

	var input any
	m, err := view.BindModel(rs, "form.email", func(v any) {
		input = v
	})
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", input)
	assert.Equal(t, "form.email", m.Path())

	var rendered string
	_, err = view.BindText(rs, "email: {{ form.email }}", func(s string) {
		rendered = s
	})
	require.NoError(t, err)

	require.NoError(t, m.Input("b@example.com"))
	assert.Equal(t, "b@example.com", input)
	assert.Equal(t, "email: b@example.com", rendered)

	require.NoError(t, rs.Assign("form.email", "c@example.com"))
	assert.Equal(t, "c@example.com", input)
}

func TestBindModelErrors(t *testing.T) {
	rs := bind.CreateReactiveSystem(map[string]any{"n": 1})

	_, err := view.BindModel(rs, "n", nil)
	assert.Error(t, err)

	_, err = view.BindModel(rs, "n.x.y", func(any) {})
	assert.ErrorIs(t, err, bind.ErrPathResolution)
}
