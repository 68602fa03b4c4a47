package bind

import (
	"encoding/json"
	"reflect"
	"sort"
)

// Object is an observed map. Keys present when it was observed are reactive
// properties; keys added later live in a plain side table and never notify.
type Object struct {
	rs    *ReactiveSystem
	keys  []string
	props map[string]*Property
	extra map[string]any

	// source is the map the object was observed from. Holding it keeps its
	// address from being reused while it sits in the identity cache.
	source map[string]any
}

func newObject(rs *ReactiveSystem, m map[string]any) *Object {
	o := &Object{
		rs:     rs,
		source: m,
		keys:   make([]string, 0, len(m)),
		props:  make(map[string]*Property, len(m)),
	}
	// cached before the children so self-referencing maps terminate
	rs.observed[reflect.ValueOf(m).Pointer()] = o
	for k := range m {
		o.keys = append(o.keys, k)
	}
	sort.Strings(o.keys)
	for _, k := range o.keys {
		o.defineReactive(k, m[k])
	}
	return o
}

func (o *Object) defineReactive(key string, initial any) {
	o.props[key] = &Property{
		rs:    o.rs,
		key:   key,
		value: o.rs.Observe(initial),
		dep:   NewDependency(),
	}
}

// Get reads key, registering sub when key is reactive. Late-added keys are
// readable but cannot be subscribed to.
func (o *Object) Get(key string, sub Subscriber) (any, bool) {
	if p, ok := o.props[key]; ok {
		return p.Get(sub), true
	}
	v, ok := o.extra[key]
	return v, ok
}

// Peek reads key without registering anything.
func (o *Object) Peek(key string) (any, bool) {
	return o.Get(key, nil)
}

// Set writes key. Reactive keys go through Property.Set; any other key is
// stored as is without observing or notifying.
func (o *Object) Set(key string, v any) error {
	if p, ok := o.props[key]; ok {
		return p.Set(v)
	}
	if o.extra == nil {
		o.extra = map[string]any{}
	}
	o.extra[key] = v
	return nil
}

// Property returns the reactive property behind key, if key was present when
// the object was observed.
func (o *Object) Property(key string) (*Property, bool) {
	p, ok := o.props[key]
	return p, ok
}

// IsReactive reports whether writes to key notify.
func (o *Object) IsReactive(key string) bool {
	_, ok := o.props[key]
	return ok
}

// Keys lists reactive keys in observation order followed by late-added keys
// sorted.
func (o *Object) Keys() []string {
	keys := make([]string, 0, len(o.keys)+len(o.extra))
	keys = append(keys, o.keys...)
	extra := make([]string, 0, len(o.extra))
	for k := range o.extra {
		extra = append(extra, k)
	}
	sort.Strings(extra)
	return append(keys, extra...)
}

// Len counts reactive and late-added keys.
func (o *Object) Len() int {
	return len(o.keys) + len(o.extra)
}

// Snapshot returns a deep plain copy of the object without registering.
// Late-added maps and slices are copied too.
func (o *Object) Snapshot() map[string]any {
	return o.snapshot(map[*Object]bool{})
}

func (o *Object) snapshot(seen map[*Object]bool) map[string]any {
	seen[o] = true
	defer delete(seen, o)

	out := make(map[string]any, o.Len())
	for _, k := range o.keys {
		out[k] = plainCopy(o.props[k].value, seen)
	}
	for k, v := range o.extra {
		out[k] = plainCopy(v, seen)
	}
	return out
}

// plainCopy copies maps, slices and objects so a snapshot shares nothing with
// the live tree. A reference back to an object on the current branch is
// cut to nil.
func plainCopy(v any, seen map[*Object]bool) any {
	switch v := v.(type) {
	case *Object:
		if seen[v] {
			return nil
		}
		return v.snapshot(seen)
	case map[string]any:
		m := make(map[string]any, len(v))
		for k, child := range v {
			m[k] = plainCopy(child, seen)
		}
		return m
	case []any:
		s := make([]any, len(v))
		for i, child := range v {
			s[i] = plainCopy(child, seen)
		}
		return s
	default:
		return v
	}
}

// MarshalJSON encodes the snapshot.
func (o *Object) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.Snapshot())
}

// String is the JSON form of the snapshot. Values JSON cannot encode are
// logged and the object renders as {}.
func (o *Object) String() string {
	b, err := o.MarshalJSON()
	if err != nil {
		o.rs.logger.Warn("object not encodable", "err", err)
		return "{}"
	}
	return string(b)
}
