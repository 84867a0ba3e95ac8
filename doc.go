// Package rbstore provide a concurrent, in-memory ordered map for
// fixed size records, built as a red-black tree over a fixed-block
// memory pool.
//
// Repository layout:
//
//	api    types, interfaces and errors shared across packages.
//	lib    utility functions and types.
//	malloc fixed-block memory pool.
//	rbtree the ordered map, traversal and diagnostics.
//
// Applications create a tree with a comparison function and an object
// size, then operate on it under the tree's lock. Refer to package
// rbtree for the locking discipline.
package rbstore
