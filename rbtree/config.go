package rbtree

import s "github.com/bnclabs/gosettings"
import "github.com/cloudfoundry/gosigar"

// Defaultsettings for rbtree instance and its node pool.
//
// "pool.capacity" (int64, default: half of free system memory)
//	Maximum memory, in bytes, for nodes. Insert fails once the
//	capacity is exhausted, until entries are deleted.
//
// "pool.slab.chunks" (int64, default: 1024)
//	Number of node blocks to carve per pool slab.
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	return s.Settings{
		"pool.capacity":    int64(free / 2),
		"pool.slab.chunks": int64(1024),
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
