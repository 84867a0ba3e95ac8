// Package malloc supplies a fixed-block memory pool for in-memory
// data structures that colocate a node header with an application
// payload, with a limited scope:
//
//   - A Pool is bound to a single block size at creation time and
//     supplies blocks of that exact size for its whole lifetime.
//   - Blocks are carved out of larger slabs. Once a slab is obtained
//     it is held until the entire pool is Released, reclaimed blocks
//     are recycled through a free list.
//   - There is no pointer re-write. Applications own the content of
//     a block between Alloc and Free.
//   - Blocks supplied by this package are always 8-byte aligned.
//   - Alloc and Free calls are individually safe under concurrency.
//
// Pools are created with settings from Defaultsettings():
//
//	capacity    : maximum memory, in bytes, handed to the application.
//	slab.chunks : number of blocks to carve per slab.
package malloc
