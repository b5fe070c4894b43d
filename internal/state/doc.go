// Package state owns the client-side snapshot of the course hierarchy.
//
// The store is the single mutable source of truth: three flat
// collections (courses, subjects, contents), the selection pointers, and
// the dark-mode flag. Every mutation flows through one of its
// operations, each of which calls the backend and then reconciles local
// state. Creates and updates re-fetch the owning collection because the
// server answers them with opaque text rather than the created record,
// so the store never fabricates an entity it would later collide with.
package state
