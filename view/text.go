package view

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/delaneyj/tether/bind"
)

// markerPattern matches {{ path }}. Paths never contain braces, so adjacent
// markers stay separate.
var markerPattern = regexp.MustCompile(`\{\{\s*([^\s{}]+)\s*\}\}`)

type segment struct {
	literal string
	path    string
}

// Text is a string template with {{ path }} markers kept in sync with the
// data. The sink only sees renders whose content changed.
type Text struct {
	rs       *bind.ReactiveSystem
	segments []segment
	paths    mapset.Set[string]
	sink     func(string)

	last     string
	lastHash uint64 // xxhash of last; a render with the same hash is dropped
	renders  int
}

// BindText renders template once, hands the result to sink and then watches
// every distinct path the template references.
func BindText(rs *bind.ReactiveSystem, template string, sink func(string)) (*Text, error) {
	t := &Text{
		rs:    rs,
		paths: mapset.NewThreadUnsafeSet[string](),
		sink:  sink,
	}

	prev := 0
	for _, m := range markerPattern.FindAllStringSubmatchIndex(template, -1) {
		if m[0] > prev {
			t.segments = append(t.segments, segment{literal: template[prev:m[0]]})
		}
		path := template[m[2]:m[3]]
		if _, err := bind.ParsePath(path); err != nil {
			return nil, fmt.Errorf("view: marker %q: %w", template[m[0]:m[1]], err)
		}
		t.segments = append(t.segments, segment{path: path})
		t.paths.Add(path)
		prev = m[1]
	}
	if prev < len(template) {
		t.segments = append(t.segments, segment{literal: template[prev:]})
	}

	if err := t.render(); err != nil {
		return nil, err
	}

	for _, path := range t.Paths() {
		if _, _, err := bind.Watch(rs, path, func(any) error {
			return t.render()
		}); err != nil {
			return nil, fmt.Errorf("view: watch %q: %w", path, err)
		}
	}
	return t, nil
}

// Paths lists the distinct paths referenced by the template, sorted.
func (t *Text) Paths() []string {
	paths := t.paths.ToSlice()
	sort.Strings(paths)
	return paths
}

func (t *Text) String() string {
	return t.last
}

// Renders counts how many times the sink received new content.
func (t *Text) Renders() int {
	return t.renders
}

func (t *Text) render() error {
	var sb strings.Builder
	for _, seg := range t.segments {
		if seg.path == "" {
			sb.WriteString(seg.literal)
			continue
		}
		v, err := t.rs.Lookup(seg.path)
		if err != nil {
			return err
		}
		sb.WriteString(Format(v))
	}

	out := sb.String()
	h := xxhash.Sum64String(out)
	if t.renders > 0 && h == t.lastHash {
		return nil
	}
	t.last, t.lastHash = out, h
	t.renders++
	if t.sink != nil {
		t.sink(out)
	}
	return nil
}

// Format turns a bound value into text. Undefined values render empty.
func Format(v any) string {
	switch v := v.(type) {
	case nil:
		return ""
	case string:
		return v
	case *bind.Object:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
