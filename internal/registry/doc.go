// Package registry stores every card collection of a session (the draw deck,
// player hands and table piles) behind opaque handles.
//
// Other packages never hold a collection directly. They keep a Handle and go
// through the Registry for every read or mutation, which lets the renderer
// refer to a pile by identity while the game logic moves cards around.
//
// # Locking
//
// The handle map is guarded by one RWMutex and each collection carries its
// own RWMutex. Single-collection operations (Draw, Append, queries) take the
// collection lock only. Move and MoveCard lock both collections in canonical
// handle order, so two transfers running in opposite directions cannot
// deadlock and no card is ever observable in both or neither collection.
//
// # Handles
//
// Handles are UUIDs minted by Create. They are never reused and collections
// are never deleted, so looking up a handle this registry did not mint is a
// programming error: the registry panics with an error wrapping
// ErrUnknownHandle rather than returning it.
package registry
