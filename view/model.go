package view

import (
	"fmt"

	"github.com/delaneyj/tether/bind"
)

// Model is a two way binding between one path and an input-like consumer.
// Data changes are pushed into the sink, Input writes consumer changes back.
type Model struct {
	rs   *bind.ReactiveSystem
	path string
}

func BindModel(rs *bind.ReactiveSystem, path string, sink func(any)) (*Model, error) {
	if sink == nil {
		return nil, fmt.Errorf("view: model %q: nil sink", path)
	}
	initial, err := rs.Lookup(path)
	if err != nil {
		return nil, fmt.Errorf("view: model %q: %w", path, err)
	}
	sink(initial)

	if _, _, err := bind.Watch(rs, path, func(v any) error {
		sink(v)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("view: model %q: %w", path, err)
	}
	return &Model{rs: rs, path: path}, nil
}

func (m *Model) Path() string {
	return m.path
}

// Input assigns v at the bound path, the way an input event would.
func (m *Model) Input(v any) error {
	return m.rs.Assign(m.path, v)
}
