package rbtree

import "fmt"
import "sync"
import "sync/atomic"
import "unsafe"

import s "github.com/bnclabs/gosettings"
import "github.com/bnclabs/golog"
import "github.com/kvlabs/rbstore/api"
import "github.com/kvlabs/rbstore/lib"
import "github.com/kvlabs/rbstore/malloc"

// Tree manage a single instance of in-memory sorted index using a
// red-black tree. The tree owns its node pool and every node
// transitively reachable from root.
type Tree struct { // tree container
	// 64-bit aligned stats
	treestats

	name    string
	compare api.Compare
	pool    api.BlockAllocator
	root    unsafe.Pointer // *rbnode
	objsize int64
	dead    bool
	mu      sync.Mutex

	h_insertdepth *lib.HistogramInt64
	setts         s.Settings
	logprefix     string
}

// New create a tree for objects of objsize bytes, ordered by compare.
// Returns api.ErrorInvalidArgument when compare is nil or objsize is
// not positive, api.ErrorOutofMemory when the node pool cannot be
// registered with the configured capacity.
func New(name string, compare api.Compare, objsize int64, setts s.Settings) (*Tree, error) {
	if compare == nil || objsize <= 0 {
		return nil, api.ErrorInvalidArgument
	}
	t := &Tree{name: name, compare: compare, objsize: objsize}
	t.logprefix = fmt.Sprintf("RBT [%s]", name)

	setts = make(s.Settings).Mixin(Defaultsettings(), setts)
	poolsetts := setts.Section("pool.").Trim("pool.")
	pool, err := malloc.NewPool(nodesize+objsize, poolsetts)
	if err != nil {
		log.Errorf("%v node pool: %v\n", t.logprefix, err)
		return nil, err
	}
	t.pool = pool
	t.h_insertdepth = lib.NewhistorgramInt64(1, 256, 4)
	t.setts = setts

	log.Infof("%v started, blocksize %v ...\n", t.logprefix, pool.Blocksize())
	return t, nil
}

func (t *Tree) getroot() *rbnode {
	return (*rbnode)(atomic.LoadPointer(&t.root))
}

func (t *Tree) setroot(root *rbnode) {
	atomic.StorePointer(&t.root, unsafe.Pointer(root))
}

// ID return the name supplied to New().
func (t *Tree) ID() string {
	return t.name
}

// Count return the number of entries in the tree.
func (t *Tree) Count() int64 {
	return atomic.LoadInt64(&t.n_count)
}

// Isactive return false once the tree is destroyed.
func (t *Tree) Isactive() bool {
	return t.dead == false
}

// Lock acquire the tree lock. The lock is not reentrant. Hold it for
// every Get, Insert, Delete call and across any compound sequence of
// them that must appear atomic.
func (t *Tree) Lock() {
	t.mu.Lock()
}

// Unlock release the tree lock.
func (t *Tree) Unlock() {
	t.mu.Unlock()
}

// Get return the object stored for key, nil when key is absent.
// Expects the tree lock to be held by the caller.
func (t *Tree) Get(key interface{}) []byte {
	atomic.AddInt64(&t.n_lookups, 1)
	if nd := t.getnode(key); nd != nil {
		return nd.object(t.objsize)
	}
	return nil
}

func (t *Tree) getnode(key interface{}) *rbnode {
	nd := t.getroot()
	for nd != nil {
		cmp := t.compare(key, nd.object(t.objsize))
		if cmp == 0 {
			return nd
		} else if cmp < 0 {
			nd = nd.left
		} else {
			nd = nd.right
		}
	}
	return nil
}

// Insert the key if absent and return its zeroed object block for the
// caller to populate, under the same held lock, with the record - at
// least the fields inspected by the comparison function. If the key
// is already present the existing object is returned unchanged, no
// counter moves. Returns api.ErrorOutofMemory when the node pool is
// exhausted, the tree is untouched. Expects the tree lock to be held
// by the caller.
func (t *Tree) Insert(key interface{}) ([]byte, error) {
	var parent *rbnode

	cmp, depth := 0, int64(1)
	nd := t.getroot()
	for nd != nil {
		parent = nd
		cmp = t.compare(key, nd.object(t.objsize))
		if cmp == 0 {
			return nd.object(t.objsize), nil
		} else if cmp < 0 {
			nd = nd.left
		} else {
			nd = nd.right
		}
		depth++
	}

	nd = t.newnode()
	if nd == nil {
		return nil, api.ErrorOutofMemory
	}
	nd.parent = parent
	if parent == nil {
		t.setroot(nd)
	} else if cmp < 0 {
		parent.left = nd
	} else {
		parent.right = nd
	}
	t.insertfixup(nd)

	t.h_insertdepth.Add(depth)
	atomic.AddInt64(&t.n_inserts, 1)
	atomic.AddInt64(&t.n_count, 1)
	return nd.object(t.objsize), nil
}

// Delete the entry for key, silent no-op when key is absent. The
// entry's block goes back to the node pool, any object slice obtained
// for it earlier must not be used afterwards. Expects the tree lock
// to be held by the caller.
func (t *Tree) Delete(key interface{}) {
	target := t.getnode(key)
	if target == nil {
		return
	}
	t.deletenode(target)
	t.freenode(target)
	atomic.AddInt64(&t.n_deletes, 1)
	atomic.AddInt64(&t.n_count, -1)
}

// Enumerate visit every entry in ascending key order until callb
// returns false. Acquires the tree lock for the whole traversal, the
// callback must neither mutate the tree nor touch the lock. An empty
// tree returns without touching the lock.
func (t *Tree) Enumerate(callb func(object []byte) bool) {
	if t.getroot() == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	stack := make([]*rbnode, 0, 64)
	nd := t.getroot()
	for nd != nil || len(stack) > 0 {
		for nd != nil {
			stack = append(stack, nd)
			nd = nd.left
		}
		nd = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if callb(nd.object(t.objsize)) == false {
			return
		}
		nd = nd.right
	}
}

// Destroy tear down the tree: mark it inactive, free every node back
// to the pool and release the pool. Acquires the tree lock for the
// whole teardown, the handle must not be used afterwards.
func (t *Tree) Destroy() {
	if t.dead {
		panic("Destroy(): already dead tree")
	}
	t.dead = true

	t.mu.Lock()
	defer t.mu.Unlock()

	stack := make([]*rbnode, 0, 64)
	if root := t.getroot(); root != nil {
		stack = append(stack, root)
	}
	for len(stack) > 0 {
		nd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		left, right := nd.left, nd.right
		if left != nil {
			stack = append(stack, left)
		}
		if right != nil {
			stack = append(stack, right)
		}
		t.freenode(nd)
	}
	t.setroot(nil)
	atomic.StoreInt64(&t.n_count, 0)
	t.pool.Release()
	t.setts = nil
	log.Infof("%v destroyed\n", t.logprefix)
}

//---- local functions

func (t *Tree) newnode() *rbnode {
	ptr, mpool, ok := t.pool.Alloc()
	if ok == false {
		return nil
	}
	nd := (*rbnode)(ptr)
	nd.left, nd.right, nd.parent = nil, nil, nil
	nd.pool = mpool
	nd.hdr = 0 // fresh nodes are red
	obj := nd.object(t.objsize)
	for i := range obj {
		obj[i] = 0
	}
	atomic.AddInt64(&t.n_nodes, 1)
	return nd
}

func (t *Tree) freenode(nd *rbnode) {
	if nd != nil {
		nd.pool.Free(unsafe.Pointer(nd))
		atomic.AddInt64(&t.n_frees, 1)
	}
}
