package bind

import "errors"

// Subscriber is anything a Dependency can notify.
type Subscriber interface {
	Update() error
}

// Dependency is the per-property list of subscribers interested in changes.
// Registrations are kept in insertion order and never deduplicated, so a
// subscriber added twice is updated twice.
type Dependency struct {
	subs []Subscriber
}

// NewDependency returns an empty dependency.
func NewDependency() *Dependency {
	return &Dependency{}
}

// AddSub appends sub, even when it is already registered.
func (d *Dependency) AddSub(sub Subscriber) {
	d.subs = append(d.subs, sub)
}

// Len is the number of registrations, duplicates included.
func (d *Dependency) Len() int {
	return len(d.subs)
}

// Notify updates every subscriber registered when the call started, in order.
// A subscriber that writes into reactive data runs the nested notification to
// completion before the next subscriber here is updated. All subscribers run
// even if some fail; their errors are joined.
func (d *Dependency) Notify() error {
	subs := make([]Subscriber, len(d.subs))
	copy(subs, d.subs)

	var errs []error
	for _, sub := range subs {
		if err := sub.Update(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
