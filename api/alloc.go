package api

import "unsafe"

// MemoryPool is a single run of memory sliced up into equal sized
// blocks. Blocks allocated from a pool shall be freed back to the
// same pool.
type MemoryPool interface {
	// Slabsize return the size of blocks supplied by this pool.
	Slabsize() int64

	// Free a previously allocated block back to this pool. Freeing
	// a pointer foreign to the pool panics, double free is not
	// detected.
	Free(ptr unsafe.Pointer)

	// Info return memory accounting for this pool.
	Info() (capacity, heap, alloc, overhead int64)
}

// BlockAllocator supplies fixed size memory blocks and reclaims them
// at amortized O(1) cost. Individual Alloc and Free calls are safe
// under concurrency, that does not substitute for structural locking
// of whatever graph is built over the blocks.
type BlockAllocator interface {
	// Blocksize supplied by this allocator, immutable after creation.
	Blocksize() int64

	// Alloc a block, along with the memory-pool that supplied it,
	// free the block back to that pool. Returned pointer is always
	// 8-byte aligned. ok is false when capacity is exhausted, in
	// which case the allocator remains usable.
	Alloc() (ptr unsafe.Pointer, pool MemoryPool, ok bool)

	// Info return memory accounting for this allocator.
	Info() (capacity, heap, alloc, overhead int64)

	// Utilization return slab size and percent of heap handed out
	// to the application.
	Utilization() ([]int, []float64)

	// Release the allocator and all its pools. Must be called only
	// after every outstanding block has been freed.
	Release()
}
