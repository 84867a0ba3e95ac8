// Package rbtree manage instances of an in-memory sorted index using
// a red-black tree, associating caller defined keys with fixed size
// objects.
//
// Every entry is a single block from a fixed-block pool, the node
// header colocated with the application's object. The object's bytes
// are owned by the application between Insert and Delete, except for
// the fields inspected by the comparison function, which must stay
// stable while the object is in the tree.
//
// Locking discipline is split by operation. Get(), Insert() and
// Delete() expect the caller to hold the tree lock, via Lock() and
// Unlock(), for the call and across any compound sequence that must
// appear atomic. Enumerate(), Destroy() and the diagnostic routines
// acquire and release the lock on their own, the lock is not
// reentrant, do not call them while holding it.
package rbtree
