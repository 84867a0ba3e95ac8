package malloc

import s "github.com/bnclabs/gosettings"

// Alignment block sizes, and the pointers handed out by a pool, are
// multiples of Alignment.
const Alignment = int64(8)

// Maxcapacity maximum memory a single pool can manage. Can be used
// as default for settings-parameter `capacity`.
const Maxcapacity = int64(1024 * 1024 * 1024 * 1024) // 1TB

// Maxchunks maximum number of blocks allowed in a single slab. Can be
// used as default for settings-parameter `slab.chunks`.
const Maxchunks = int64(65536)

// Defaultsettings for creating a block pool.
//
// "capacity" (int64, default: 64MB)
//	Maximum memory, in bytes, that this pool can hand out to the
//	application. Alloc fails once the capacity is reached, until
//	blocks are freed back.
//
// "slab.chunks" (int64, default: 1024)
//	Number of blocks to carve per slab. Slabs are obtained from the
//	Go heap in one shot, larger values amortize allocation cost,
//	smaller values keep the footprint of sparse pools low.
func Defaultsettings() s.Settings {
	return s.Settings{
		"capacity":    int64(64 * 1024 * 1024),
		"slab.chunks": int64(1024),
	}
}
