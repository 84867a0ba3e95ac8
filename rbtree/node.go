package rbtree

import "fmt"
import "unsafe"

import "github.com/kvlabs/rbstore/api"

// rbnode is the header preceding every stored object. Header and
// object together make up a single pool block, the object's bytes
// begin at objmarker. Parent is a non-owning back reference, left
// and right are the owning links of the tree.
type rbnode struct {
	left      *rbnode
	right     *rbnode
	parent    *rbnode
	pool      api.MemoryPool
	hdr       uint64
	objmarker unsafe.Pointer
}

// nodesize is the header portion of a node block, object bytes
// overlay the block from objmarker onwards.
const nodesize = int64(unsafe.Offsetof(rbnode{}.objmarker))

const hdrblack = uint64(0x1)

func (nd *rbnode) isblack() bool {
	return (nd.hdr & hdrblack) != 0
}

func (nd *rbnode) setblack() *rbnode {
	nd.hdr = nd.hdr | hdrblack
	return nd
}

func (nd *rbnode) setred() *rbnode {
	nd.hdr = nd.hdr & (^hdrblack)
	return nd
}

func (nd *rbnode) setcolour(black bool) *rbnode {
	if black {
		return nd.setblack()
	}
	return nd.setred()
}

func (nd *rbnode) object(objsize int64) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&nd.objmarker)), objsize)
}

//---- maintenance methods.

func (nd *rbnode) repr(objsize int64) string {
	colour := "red"
	if nd.isblack() {
		colour = "black"
	}
	obj := nd.object(objsize)
	if len(obj) > 8 {
		obj = obj[:8]
	}
	return fmt.Sprintf("%x %v", obj, colour)
}

// isred conceptually treat absent nodes as black.
func isred(nd *rbnode) bool {
	if nd == nil {
		return false
	}
	return nd.isblack() == false
}

func isblack(nd *rbnode) bool {
	return !isred(nd)
}
