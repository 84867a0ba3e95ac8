package malloc

import "fmt"
import "unsafe"

// slab is a contiguous memory run sliced up into equal sized blocks,
// implements api.MemoryPool{} interface. Internal methods expect the
// owning pool's mutex to be held.
type slab struct {
	allocated int64
	size      int64 // fixed size blocks in this slab
	capacity  int64 // memory managed by this slab
	base      []byte
	freelist  []uint16
	pool      *Pool
	prev      **slab
	next      *slab
}

// size of each block and no. of blocks in the slab.
func newslab(pool *Pool, size, n int64) *slab {
	sl := &slab{
		size:     size,
		capacity: size * n,
		base:     make([]byte, size*n),
		freelist: make([]uint16, 0, n),
		pool:     pool,
	}
	for i := n - 1; i >= 0; i-- {
		sl.freelist = append(sl.freelist, uint16(i))
	}
	mask := uintptr(Alignment - 1)
	if (uintptr(unsafe.Pointer(&sl.base[0])) & mask) != 0 {
		panicerr("slab base is not %v byte aligned", Alignment)
	}
	return sl
}

func (sl *slab) allocblock() (unsafe.Pointer, bool) {
	if len(sl.freelist) == 0 {
		return nil, false
	}
	nthblock := int64(sl.freelist[len(sl.freelist)-1])
	sl.freelist = sl.freelist[:len(sl.freelist)-1]
	sl.allocated += sl.size
	return unsafe.Pointer(&sl.base[nthblock*sl.size]), true
}

func (sl *slab) overhead() int64 {
	self := int64(unsafe.Sizeof(*sl))
	slicesz := int64(cap(sl.freelist)) * 2
	return self + slicesz
}

func (sl *slab) release() {
	sl.base, sl.freelist = nil, nil
	sl.capacity, sl.allocated = 0, 0
}

//---- api.MemoryPool{} interface

// Slabsize implement api.MemoryPool{} interface.
func (sl *slab) Slabsize() int64 {
	return sl.size
}

// Free implement api.MemoryPool{} interface.
func (sl *slab) Free(ptr unsafe.Pointer) {
	if ptr == nil {
		panic("slab.free(): nil pointer")
	}
	pool := sl.pool
	pool.mu.Lock()
	defer pool.mu.Unlock()

	diffptr := uint64(uintptr(ptr) - uintptr(unsafe.Pointer(&sl.base[0])))
	if diffptr >= uint64(sl.capacity) {
		panic(fmt.Errorf("slab.free(): foreign pointer: %x", diffptr))
	} else if (diffptr % uint64(sl.size)) != 0 {
		fmsg := "slab.free(): unaligned pointer: %x,%v"
		panic(fmt.Errorf(fmsg, diffptr, sl.size))
	}
	sl.freelist = append(sl.freelist, uint16(diffptr/uint64(sl.size)))
	sl.allocated -= sl.size
	pool.allocated -= sl.size
	// an exhausted slab can supply blocks again, relink.
	pool.unlink(sl)
	pool.toheadfree(sl)
}

// Info implement api.MemoryPool{} interface.
func (sl *slab) Info() (capacity, heap, alloc, overhead int64) {
	pool := sl.pool
	pool.mu.Lock()
	defer pool.mu.Unlock()
	return sl.capacity, sl.capacity, sl.allocated, sl.overhead()
}
