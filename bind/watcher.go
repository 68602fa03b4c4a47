package bind

import "fmt"

// Callback receives the freshly resolved value of a watched path.
type Callback func(value any) error

// Watcher binds one path to a callback. It is registered into the dependency of
// every property on the path when it is created and lives as long as the data.
type Watcher struct {
	rs       *ReactiveSystem
	path     Path
	callback Callback
}

// Watch parses path, reads it once to register the watcher and returns the
// value read. If the path cannot be resolved nothing is registered.
func Watch(rs *ReactiveSystem, path string, cb Callback) (*Watcher, any, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, nil, err
	}
	if cb == nil {
		return nil, nil, fmt.Errorf("bind: watch %q: nil callback", path)
	}

	w := &Watcher{rs: rs, path: p, callback: cb}

	var touched []*Property
	value, err := resolve(rs.root, p, func(prop *Property) {
		touched = append(touched, prop)
	})
	if err != nil {
		return nil, nil, err
	}
	for _, prop := range touched {
		prop.Get(w)
	}
	rs.logger.Debug("watcher registered", "path", p.String(), "properties", len(touched))

	return w, value, nil
}

func (w *Watcher) Path() Path {
	return w.path
}

// Update re-resolves the path and runs the callback, even when the value is
// the same as last time.
func (w *Watcher) Update() error {
	value, err := resolve(w.rs.root, w.path, nil)
	if err != nil {
		w.rs.logger.Debug("update failed", "path", w.path.String(), "err", err)
		return err
	}
	if w.rs.hooks.OnUpdate != nil {
		w.rs.hooks.OnUpdate(w.path, value)
	}
	return w.callback(value)
}
