package rbtree

import "errors"
import "fmt"
import "math"
import "sync/atomic"

import "github.com/kvlabs/rbstore/lib"

// height of the tree cannot exceed a certain limit. For example if
// the tree holds 1-million entries, a fully balanced tree shall have
// a height of 20 levels. maxheight provide some breathing space on
// top of the ideal height.
func maxheight(entries int64) float64 {
	if entries < 5 {
		return (3 * (math.Log2(float64(entries)) + 1)) // 3x breathing space.
	}
	return 2 * math.Log2(float64(entries)) // 2x breathing space
}

var redafterred = errors.New("consecutive red spotted")

func unbalancedblacks(lblacks, rblacks int64) error {
	return fmt.Errorf("unbalancedblacks {%v,%v}", lblacks, rblacks)
}

// Validate walk the full tree and confirm the colouring invariants,
// counter coherence and pool accounting, panics on violation.
// Acquires the tree lock.
func (t *Tree) Validate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	root := t.getroot()
	if isred(root) {
		panic(errors.New("root is red"))
	}

	h := lib.NewhistorgramInt64(1, 256, 1)
	_, count := t.validatetree(root, isred(root), 0 /*blacks*/, 1 /*depth*/, h)

	if n_count := atomic.LoadInt64(&t.n_count); n_count != count {
		fmsg := "validate(): n_count:%v != tree:%v"
		panic(fmt.Errorf(fmsg, n_count, count))
	}
	if count > 8 && float64(h.Max()) > maxheight(count) {
		fmsg := "validate(): max height %v exceeds log2(%v)"
		panic(fmt.Errorf(fmsg, h.Max(), count))
	}
	t.validatestats(count)
}

// validatetree check per node: no red node has a red parent and every
// path to a null descendant crosses the same number of black nodes.
func (t *Tree) validatetree(
	nd *rbnode, fromred bool, blacks, depth int64,
	h *lib.HistogramInt64) (nblacks, count int64) {

	if nd == nil {
		return blacks, 0
	}
	h.Add(depth)
	if fromred && isred(nd) {
		panic(redafterred)
	}
	if nd.parent != nil && nd != nd.parent.left && nd != nd.parent.right {
		panic(errors.New("broken parent link"))
	}
	if isblack(nd) {
		blacks++
	}

	lblacks, lcount := t.validatetree(nd.left, isred(nd), blacks, depth+1, h)
	rblacks, rcount := t.validatetree(nd.right, isred(nd), blacks, depth+1, h)
	if lblacks != rblacks {
		panic(unbalancedblacks(lblacks, rblacks))
	}
	return lblacks, lcount + rcount + 1
}

func (t *Tree) validatestats(count int64) {
	// n_count should match (n_inserts - n_deletes)
	n_count := atomic.LoadInt64(&t.n_count)
	n_inserts := atomic.LoadInt64(&t.n_inserts)
	n_deletes := atomic.LoadInt64(&t.n_deletes)
	if n_count != (n_inserts - n_deletes) {
		fmsg := "validatestats(): n_count:%v != (n_inserts:%v - n_deletes:%v)"
		panic(fmt.Errorf(fmsg, n_count, n_inserts, n_deletes))
	}
	// every block taken from the pool is either live or freed
	n_nodes := atomic.LoadInt64(&t.n_nodes)
	n_frees := atomic.LoadInt64(&t.n_frees)
	if n_nodes != (n_count + n_frees) {
		fmsg := "validatestats(): n_nodes:%v != (n_count:%v + n_frees:%v)"
		panic(fmt.Errorf(fmsg, n_nodes, n_count, n_frees))
	}
	// and the pool accounts for exactly the live ones
	_, _, alloc, _ := t.pool.Info()
	if expected := count * t.pool.Blocksize(); alloc != expected {
		fmsg := "validatestats(): pool alloc:%v != expected:%v"
		panic(fmt.Errorf(fmsg, alloc, expected))
	}
}
