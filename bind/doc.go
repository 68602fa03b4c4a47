// Package bind is a small dependency tracking core. Plain data maps are
// observed into reactive objects, watchers registered against dotted paths are
// updated synchronously whenever a write changes a property they read.
package bind
