package api

// Compare is the caller supplied ordering between a lookup key and an
// object stored in the tree. Return value follows the bytes.Compare
// convention: negative when key sorts before object, zero when they
// are equal, positive when key sorts after object.
//
// The ordering must define a strict weak order and remain stable for
// as long as the object is a member of the tree. Fields inspected by
// the comparison shall not be mutated while the object is stored,
// doing so corrupts the ordering silently.
type Compare func(key interface{}, object []byte) int
