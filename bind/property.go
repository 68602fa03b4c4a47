package bind

import "reflect"

// Property is one reactive field. Reads can register a subscriber into the
// property's dependency and writes that change the value notify it.
type Property struct {
	rs    *ReactiveSystem
	key   string
	value any
	dep   *Dependency
}

// Key is the name the property was defined under.
func (p *Property) Key() string {
	return p.key
}

// Get returns the current value. A non-nil sub is registered first.
func (p *Property) Get(sub Subscriber) any {
	if sub != nil {
		p.dep.AddSub(sub)
	}
	return p.value
}

// Peek reads without registering anything.
func (p *Property) Peek() any {
	return p.value
}

// Subscribers is the number of registrations on this property.
func (p *Property) Subscribers() int {
	return p.dep.Len()
}

// Set stores v and notifies subscribers, unless v is strictly equal to the
// current value. Maps are observed first, so a replaced subtree stays reactive
// and writing the same map again is a no-op.
func (p *Property) Set(v any) error {
	next := p.rs.Observe(v)
	if strictEqual(p.value, next) {
		return nil
	}
	p.value = next
	return p.rs.notify(p)
}

// strictEqual compares the way a reference-semantics language would:
// same dynamic type, then == for comparable values and identity for
// maps, slices, funcs, chans and pointers.
func strictEqual(a, b any) (equal bool) {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return false
	}

	switch ta.Kind() {
	case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Pointer, reflect.UnsafePointer:
		va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
		if ta.Kind() == reflect.Slice {
			if va.IsNil() || vb.IsNil() {
				return va.IsNil() && vb.IsNil()
			}
			// empty slices share one backing address, so they have no identity
			if va.Len() != vb.Len() || va.Len() == 0 {
				return false
			}
		}
		return va.Pointer() == vb.Pointer()
	}

	if !ta.Comparable() {
		return false
	}
	// structs holding uncomparable values in interface fields still panic on ==
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}
