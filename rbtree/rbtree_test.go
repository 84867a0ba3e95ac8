package rbtree

import "bytes"
import "encoding/binary"
import "sync"
import "testing"

import s "github.com/bnclabs/gosettings"

import "github.com/kvlabs/rbstore/api"

const testobjsize = int64(16)

// test objects carry their key in the first 8 bytes, big-endian.
func testcompare(key interface{}, object []byte) int {
	k := key.(uint64)
	o := binary.BigEndian.Uint64(object)
	if k < o {
		return -1
	} else if k > o {
		return 1
	}
	return 0
}

func testsettings() s.Settings {
	return s.Settings{
		"pool.capacity":    int64(1024 * 1024),
		"pool.slab.chunks": int64(64),
	}
}

func testinsert(t *testing.T, tree *Tree, key uint64) []byte {
	t.Helper()
	obj, err := tree.Insert(key)
	if err != nil {
		t.Fatalf("Insert(%v): unexpected %v", key, err)
	}
	binary.BigEndian.PutUint64(obj, key)
	return obj
}

func TestNewArguments(t *testing.T) {
	if _, err := New("t", nil, 8, testsettings()); err != api.ErrorInvalidArgument {
		t.Errorf("expected %v, got %v", api.ErrorInvalidArgument, err)
	}
	if _, err := New("t", testcompare, 0, testsettings()); err != api.ErrorInvalidArgument {
		t.Errorf("expected %v, got %v", api.ErrorInvalidArgument, err)
	}

	// pool registration failure.
	setts := testsettings()
	setts["pool.capacity"] = int64(8)
	if _, err := New("t", testcompare, 8, setts); err != api.ErrorOutofMemory {
		t.Errorf("expected %v, got %v", api.ErrorOutofMemory, err)
	}
}

func TestEmptyTree(t *testing.T) {
	tree, err := New("empty", testcompare, testobjsize, testsettings())
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	defer tree.Destroy()

	if tree.ID() != "empty" {
		t.Errorf("unexpected %v", tree.ID())
	} else if tree.Count() != 0 {
		t.Errorf("unexpected %v", tree.Count())
	} else if tree.Isactive() == false {
		t.Errorf("expected active tree")
	}

	tree.Lock()
	if obj := tree.Get(uint64(10)); obj != nil {
		t.Errorf("unexpected %v", obj)
	}
	tree.Delete(uint64(10)) // no-op
	tree.Unlock()

	n := 0
	tree.Enumerate(func(object []byte) bool {
		n++
		return true
	})
	if n != 0 {
		t.Errorf("expected %v, got %v", 0, n)
	}

	tree.Validate()
	stats := tree.Stats()
	if x := stats["n_count"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_inserts"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	} else if x := stats["n_deletes"].(int64); x != 0 {
		t.Errorf("unexpected %v", x)
	}
}

func TestInsertGetDelete(t *testing.T) {
	tree, err := New("basic", testcompare, testobjsize, testsettings())
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	defer tree.Destroy()

	keys := []uint64{52, 11, 90, 3, 67, 24, 81, 38, 75, 16}

	tree.Lock()
	for _, key := range keys {
		testinsert(t, tree, key)
	}
	for _, key := range keys {
		obj := tree.Get(key)
		if obj == nil {
			t.Fatalf("expected key %v", key)
		} else if x := binary.BigEndian.Uint64(obj); x != key {
			t.Errorf("expected %v, got %v", key, x)
		}
	}
	tree.Unlock()

	if tree.Count() != int64(len(keys)) {
		t.Errorf("expected %v, got %v", len(keys), tree.Count())
	}
	tree.Validate()

	tree.Lock()
	for _, key := range keys[:5] {
		tree.Delete(key)
	}
	for _, key := range keys[:5] {
		if obj := tree.Get(key); obj != nil {
			t.Errorf("unexpected key %v", key)
		}
	}
	for _, key := range keys[5:] {
		if obj := tree.Get(key); obj == nil {
			t.Errorf("expected key %v", key)
		}
	}
	tree.Unlock()

	if tree.Count() != 5 {
		t.Errorf("expected %v, got %v", 5, tree.Count())
	} else if tree.Deletions() != 5 {
		t.Errorf("expected %v, got %v", 5, tree.Deletions())
	}
	tree.Validate()
}

func TestInsertDuplicate(t *testing.T) {
	tree, err := New("dup", testcompare, testobjsize, testsettings())
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	defer tree.Destroy()

	tree.Lock()
	defer tree.Unlock()

	obj := testinsert(t, tree, 10)
	binary.BigEndian.PutUint64(obj[8:], 0xdead)

	// second insert of the same key returns the same object,
	// unchanged, and moves no counter.
	again, err := tree.Insert(uint64(10))
	if err != nil {
		t.Fatalf("unexpected %v", err)
	} else if &again[0] != &obj[0] {
		t.Errorf("expected same object identity")
	} else if x := binary.BigEndian.Uint64(again[8:]); x != 0xdead {
		t.Errorf("expected %v, got %v", 0xdead, x)
	}
	if tree.Count() != 1 {
		t.Errorf("expected %v, got %v", 1, tree.Count())
	} else if tree.Insertions() != 1 {
		t.Errorf("expected %v, got %v", 1, tree.Insertions())
	}
}

func TestDeleteAbsent(t *testing.T) {
	tree, err := New("absent", testcompare, testobjsize, testsettings())
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	defer tree.Destroy()

	tree.Lock()
	for _, key := range []uint64{10, 20, 30} {
		testinsert(t, tree, key)
	}
	tree.Delete(uint64(99))
	tree.Unlock()

	if tree.Count() != 3 {
		t.Errorf("expected %v, got %v", 3, tree.Count())
	} else if tree.Deletions() != 0 {
		t.Errorf("expected %v, got %v", 0, tree.Deletions())
	}
	tree.Validate()
}

func TestInsertExhaustion(t *testing.T) {
	setts := testsettings()
	setts["pool.capacity"] = (nodesize + testobjsize) * 4
	setts["pool.slab.chunks"] = int64(4)
	tree, err := New("exhaust", testcompare, testobjsize, setts)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	defer tree.Destroy()

	tree.Lock()
	for _, key := range []uint64{1, 2, 3, 4} {
		testinsert(t, tree, key)
	}
	if _, err := tree.Insert(uint64(5)); err != api.ErrorOutofMemory {
		t.Errorf("expected %v, got %v", api.ErrorOutofMemory, err)
	}
	// the failed insert left no trace.
	if obj := tree.Get(uint64(5)); obj != nil {
		t.Errorf("unexpected %v", obj)
	}
	tree.Unlock()

	if tree.Count() != 4 {
		t.Errorf("expected %v, got %v", 4, tree.Count())
	}
	tree.Validate()

	// deleting an entry makes room again.
	tree.Lock()
	tree.Delete(uint64(1))
	testinsert(t, tree, 5)
	tree.Unlock()
	tree.Validate()
}

func TestEnumerate(t *testing.T) {
	tree, err := New("enum", testcompare, testobjsize, testsettings())
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	defer tree.Destroy()

	keys := []uint64{52, 11, 90, 3, 67, 24, 81, 38, 75, 16}
	tree.Lock()
	for _, key := range keys {
		testinsert(t, tree, key)
	}
	tree.Unlock()

	outs := []uint64{}
	tree.Enumerate(func(object []byte) bool {
		outs = append(outs, binary.BigEndian.Uint64(object))
		return true
	})
	if int64(len(outs)) != tree.Count() {
		t.Errorf("expected %v, got %v", tree.Count(), len(outs))
	}
	for i := 1; i < len(outs); i++ {
		if outs[i-1] >= outs[i] {
			t.Errorf("not ascending at %v: %v", i, outs)
		}
	}

	// early stop.
	outs = outs[:0]
	tree.Enumerate(func(object []byte) bool {
		outs = append(outs, binary.BigEndian.Uint64(object))
		return len(outs) < 3
	})
	if len(outs) != 3 {
		t.Errorf("expected %v, got %v", 3, len(outs))
	}
}

func TestConcurrentMutators(t *testing.T) {
	tree, err := New("concur", testcompare, testobjsize, testsettings())
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	defer tree.Destroy()

	var wg sync.WaitGroup
	nroutines, span := 8, uint64(500)
	wg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go func(base uint64) {
			defer wg.Done()
			for key := base; key < base+span; key++ {
				tree.Lock()
				obj, err := tree.Insert(key)
				if err == nil {
					binary.BigEndian.PutUint64(obj, key)
				}
				tree.Unlock()
			}
			for key := base; key < base+span; key += 2 {
				tree.Lock()
				tree.Delete(key)
				tree.Unlock()
			}
		}(uint64(n) * span)
	}
	wg.Wait()

	if x := int64(nroutines) * int64(span) / 2; tree.Count() != x {
		t.Errorf("expected %v, got %v", x, tree.Count())
	}
	tree.Validate()
}

func TestDump(t *testing.T) {
	tree, err := New("dump", testcompare, testobjsize, testsettings())
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}
	defer tree.Destroy()

	tree.Lock()
	for _, key := range []uint64{10, 20, 30, 40, 50} {
		testinsert(t, tree, key)
	}
	tree.Unlock()

	buf := bytes.NewBuffer(nil)
	tree.Dotdump(buf)
	out := buf.String()
	if !bytes.HasPrefix(buf.Bytes(), []byte("digraph rbtree {")) {
		t.Errorf("unexpected %v", out)
	}

	tree.LogInorder()
	tree.Log(true /*humanize*/)
}

func TestDestroy(t *testing.T) {
	tree, err := New("destroy", testcompare, testobjsize, testsettings())
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}

	tree.Lock()
	for _, key := range []uint64{10, 20, 30, 40, 50} {
		testinsert(t, tree, key)
	}
	tree.Unlock()

	tree.Destroy()
	if tree.Isactive() {
		t.Errorf("expected dead tree")
	}

	func() {
		defer func() {
			if recover() == nil {
				t.Errorf("expected panic on double destroy")
			}
		}()
		tree.Destroy()
	}()
}
