package bind

import (
	"io"
	"log/slog"
	"reflect"
)

const DefaultMaxNotifyDepth = 64

// Hooks observe the system's fan-out. Nil fields are skipped.
type Hooks struct {
	OnNotify        func(key string, subscribers int)
	OnUpdate        func(path Path, value any)
	OnDepthExceeded func(key string, depth int)
}

type Option func(*ReactiveSystem)

func WithLogger(logger *slog.Logger) Option {
	return func(rs *ReactiveSystem) {
		rs.logger = logger
	}
}

func WithHooks(hooks Hooks) Option {
	return func(rs *ReactiveSystem) {
		rs.hooks = hooks
	}
}

// WithMaxNotifyDepth bounds how deeply notifications may nest when callbacks
// write back into the data. Zero or less removes the bound.
func WithMaxNotifyDepth(depth int) Option {
	return func(rs *ReactiveSystem) {
		rs.maxDepth = depth
	}
}

// ReactiveSystem owns one observed data tree. It is not safe for concurrent
// use; every read, write and notification runs on the caller's stack.
type ReactiveSystem struct {
	root     *Object
	logger   *slog.Logger
	hooks    Hooks
	maxDepth int
	depth    int

	// observed maps each source map to its object so a map reachable from
	// several keys, or assigned twice, stays one reactive object.
	observed map[uintptr]*Object
}

// CreateReactiveSystem observes data once and returns the system bound to it.
// The map is taken over by the system and should not be written directly.
func CreateReactiveSystem(data map[string]any, opts ...Option) *ReactiveSystem {
	rs := &ReactiveSystem{
		maxDepth: DefaultMaxNotifyDepth,
		observed: map[uintptr]*Object{},
	}
	for _, opt := range opts {
		opt(rs)
	}
	if rs.logger == nil {
		rs.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if data == nil {
		data = map[string]any{}
	}
	rs.root = rs.Observe(data).(*Object)
	return rs
}

// Root is the observed root object.
func (rs *ReactiveSystem) Root() *Object {
	return rs.root
}

// Observe converts plain maps, recursively, into reactive objects owned by rs.
// A map observed before comes back as the same object. Objects and every
// non-map value are returned unchanged.
func (rs *ReactiveSystem) Observe(value any) any {
	m, ok := value.(map[string]any)
	if !ok || m == nil {
		return value
	}
	ptr := reflect.ValueOf(m).Pointer()
	if o, ok := rs.observed[ptr]; ok {
		return o
	}
	return newObject(rs, m)
}

// Lookup resolves path without registering anything.
func (rs *ReactiveSystem) Lookup(path string) (any, error) {
	p, err := ParsePath(path)
	if err != nil {
		return nil, err
	}
	return resolve(rs.root, p, nil)
}

// Assign writes v at path. The parent must resolve to an object or plain map.
func (rs *ReactiveSystem) Assign(path string, v any) error {
	p, err := ParsePath(path)
	if err != nil {
		return err
	}
	parent, err := resolve(rs.root, p.Parent(), nil)
	if err != nil {
		return err
	}
	switch c := parent.(type) {
	case *Object:
		return c.Set(p.Last(), v)
	case map[string]any:
		c[p.Last()] = v
		return nil
	case nil:
		return &PathResolutionError{Path: p, Segment: len(p) - 1, Reason: "parent is undefined"}
	default:
		return &PathResolutionError{Path: p, Segment: len(p) - 1, Reason: "parent is not an object"}
	}
}

func (rs *ReactiveSystem) notify(p *Property) error {
	if rs.maxDepth > 0 && rs.depth >= rs.maxDepth {
		rs.logger.Warn("notify depth exceeded", "key", p.key, "depth", rs.depth)
		if rs.hooks.OnDepthExceeded != nil {
			rs.hooks.OnDepthExceeded(p.key, rs.depth)
		}
		return &DepthError{Key: p.key, Depth: rs.depth}
	}

	rs.depth++
	defer func() { rs.depth-- }()

	n := p.dep.Len()
	rs.logger.Debug("notify", "key", p.key, "subscribers", n, "depth", rs.depth)
	if rs.hooks.OnNotify != nil {
		rs.hooks.OnNotify(p.key, n)
	}
	return p.dep.Notify()
}
