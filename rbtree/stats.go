package rbtree

import "encoding/json"
import "fmt"
import "sync/atomic"

import "github.com/bnclabs/golog"
import humanize "github.com/dustin/go-humanize"

// treestats is purely observational, no correctness path depends on
// these counters. Mutated with atomic arithmetic.
type treestats struct {
	n_count   int64 // live entries reachable from root
	n_inserts int64 // cumulative successful, non-duplicate inserts
	n_deletes int64 // cumulative successful deletes
	n_lookups int64
	n_nodes   int64 // blocks taken from the pool
	n_frees   int64 // blocks given back to the pool
}

// Insertions return the cumulative count of successful inserts,
// duplicates don't count.
func (t *Tree) Insertions() int64 {
	return atomic.LoadInt64(&t.n_inserts)
}

// Deletions return the cumulative count of successful deletes.
func (t *Tree) Deletions() int64 {
	return atomic.LoadInt64(&t.n_deletes)
}

// Stats return a snapshot of tree counters, pool accounting and the
// insert-depth histogram. Acquires the tree lock.
func (t *Tree) Stats() map[string]interface{} {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stats()
}

func (t *Tree) stats() map[string]interface{} {
	stats := make(map[string]interface{})
	stats["n_count"] = atomic.LoadInt64(&t.n_count)
	stats["n_inserts"] = atomic.LoadInt64(&t.n_inserts)
	stats["n_deletes"] = atomic.LoadInt64(&t.n_deletes)
	stats["n_lookups"] = atomic.LoadInt64(&t.n_lookups)
	stats["n_nodes"] = atomic.LoadInt64(&t.n_nodes)
	stats["n_frees"] = atomic.LoadInt64(&t.n_frees)

	capacity, heap, alloc, overhead := t.pool.Info()
	stats["node.capacity"] = capacity
	stats["node.heap"] = heap
	stats["node.alloc"] = alloc
	stats["node.overhead"] = overhead
	stats["node.blocksize"] = t.pool.Blocksize()

	stats["h_insertdepth"] = t.h_insertdepth.Fullstats()
	return stats
}

// Log tree statistics via the logging collaborator, with dohumanize
// byte sizes are humanized. Acquires the tree lock.
func (t *Tree) Log(dohumanize bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	stats := t.stats()
	if dohumanize {
		heap := humanize.Bytes(uint64(stats["node.heap"].(int64)))
		alloc := humanize.Bytes(uint64(stats["node.alloc"].(int64)))
		overh := humanize.Bytes(uint64(stats["node.overhead"].(int64)))
		fmsg := "%v pool: %v heap, %v allocated, %v overhead\n"
		log.Infof(fmsg, t.logprefix, heap, alloc, overh)

		sizes, zs := t.pool.Utilization()
		for i, size := range sizes {
			fmsg := "%v %4v blocksize, utilz: %2.2f%%\n"
			log.Infof(fmsg, t.logprefix, size, zs[i])
		}
	}
	text, err := json.Marshal(stats)
	if err != nil {
		panic(fmt.Errorf("log(): %v", err))
	}
	log.Infof("%v stats %v\n", t.logprefix, string(text))
}
