package malloc

import "sync"
import "unsafe"

import s "github.com/bnclabs/gosettings"
import "github.com/kvlabs/rbstore/api"

// Pool supplies fixed size memory blocks carved out of larger slabs
// and recycles them through per-slab free lists. Implements
// api.BlockAllocator{} interface. All methods are safe to call
// concurrently.
type Pool struct {
	// 64-bit aligned stats
	allocated int64 // handed out to the application
	heap      int64 // obtained for slabs

	mu         sync.Mutex
	blocksize  int64
	capacity   int64
	slabchunks int64
	free       *slab // slabs with at least one free block
	full       *slab // exhausted slabs
	nslabs     int64
}

// NewPool create a pool bound to blocksize for its whole lifetime,
// blocksize is rounded up to a multiple of Alignment. Returns
// api.ErrorInvalidArgument for a non-positive blocksize and
// api.ErrorOutofMemory when the configured capacity cannot supply
// even a single block.
func NewPool(blocksize int64, setts s.Settings) (*Pool, error) {
	if blocksize <= 0 {
		return nil, api.ErrorInvalidArgument
	}
	if mod := blocksize % Alignment; mod != 0 {
		blocksize += Alignment - mod
	}
	pool := &Pool{
		blocksize:  blocksize,
		capacity:   setts.Int64("capacity"),
		slabchunks: setts.Int64("slab.chunks"),
	}
	if pool.capacity > Maxcapacity {
		panicerr("capacity %v exceeds %v", pool.capacity, Maxcapacity)
	} else if pool.slabchunks <= 0 || pool.slabchunks > Maxchunks {
		panicerr("slab.chunks %v out of range (0,%v]", pool.slabchunks, Maxchunks)
	}
	if pool.capacity < blocksize {
		return nil, api.ErrorOutofMemory
	}
	return pool, nil
}

//---- operations

// Blocksize implement api.BlockAllocator{} interface.
func (pool *Pool) Blocksize() int64 {
	return pool.blocksize
}

// Alloc implement api.BlockAllocator{} interface.
func (pool *Pool) Alloc() (unsafe.Pointer, api.MemoryPool, bool) {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	return pool.doalloc()
}

func (pool *Pool) doalloc() (unsafe.Pointer, api.MemoryPool, bool) {
	if (pool.allocated + pool.blocksize) > pool.capacity {
		return nil, nil, false
	}
	if pool.free == nil {
		chunks := pool.slabchunks
		if max := (pool.capacity - pool.heap) / pool.blocksize; chunks > max {
			chunks = max
		}
		if chunks <= 0 { // heap fully carved and every block is live
			return nil, nil, false
		}
		sl := newslab(pool, pool.blocksize, chunks)
		pool.toheadfree(sl)
		pool.heap += sl.capacity
		pool.nslabs++
	}
	sl := pool.free
	ptr, ok := sl.allocblock()
	if ok == false { // head of the free list is exhausted
		pool.movetofull()
		return pool.doalloc()
	}
	pool.allocated += pool.blocksize
	return ptr, sl, true
}

// Info implement api.BlockAllocator{} interface.
func (pool *Pool) Info() (capacity, heap, alloc, overhead int64) {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	capacity, heap, alloc = pool.capacity, pool.heap, pool.allocated
	overhead = int64(unsafe.Sizeof(*pool))
	for sl := pool.free; sl != nil; sl = sl.next {
		overhead += sl.overhead()
	}
	for sl := pool.full; sl != nil; sl = sl.next {
		overhead += sl.overhead()
	}
	return
}

// Utilization implement api.BlockAllocator{} interface.
func (pool *Pool) Utilization() ([]int, []float64) {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	if pool.heap == 0 {
		return nil, nil
	}
	utilz := (float64(pool.allocated) / float64(pool.heap)) * 100
	return []int{int(pool.blocksize)}, []float64{utilz}
}

// Release implement api.BlockAllocator{} interface.
func (pool *Pool) Release() {
	pool.mu.Lock()
	defer pool.mu.Unlock()
	for sl := pool.free; sl != nil; sl = sl.next {
		sl.release()
	}
	for sl := pool.full; sl != nil; sl = sl.next {
		sl.release()
	}
	pool.free, pool.full, pool.nslabs = nil, nil, 0
	pool.heap, pool.allocated = 0, 0
	pool.capacity = 0 // subsequent Alloc calls report exhaustion
}

//---- slab management, all of it under Pool.mu.

// shift the head of the free list to the head of the full list.
func (pool *Pool) movetofull() {
	sl := pool.free
	pool.free = sl.next
	if pool.free != nil {
		pool.free.prev = &pool.free
	}
	sl.prev, sl.next = &pool.full, pool.full
	if pool.full != nil {
		pool.full.prev = &sl.next
	}
	pool.full = sl
}

// unlink slab from whichever list it is on.
func (pool *Pool) unlink(sl *slab) {
	if sl.prev != nil {
		(*(sl.prev)) = sl.next
	}
	if sl.next != nil {
		sl.next.prev = sl.prev
	}
	sl.prev, sl.next = nil, nil
}

// insert slab at the head of the free list.
func (pool *Pool) toheadfree(sl *slab) {
	sl.next = pool.free
	sl.prev = &pool.free
	if sl.next != nil {
		sl.next.prev = &sl.next
	}
	pool.free = sl
}
