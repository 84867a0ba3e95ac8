package malloc

import "fmt"
import "math/rand"
import "sync"
import "sync/atomic"
import "testing"
import "unsafe"

import "github.com/kvlabs/rbstore/api"

type testalloc struct {
	n     byte
	ptr   unsafe.Pointer
	mpool api.MemoryPool
}

var ccallocated, ccfreed int64

func TestConcur(t *testing.T) {
	var awg, fwg sync.WaitGroup

	blocksize := int64(96)
	nroutines, repeat := 8, 10000

	chans := make([]chan testalloc, 0, nroutines)
	for n := 0; n < nroutines; n++ {
		chans = append(chans, make(chan testalloc, 1000))
	}

	setts := Defaultsettings()
	setts["capacity"] = int64(64 * 1024 * 1024)
	pool, err := NewPool(blocksize, setts)
	if err != nil {
		t.Fatalf("unexpected %v", err)
	}

	awg.Add(nroutines)
	fwg.Add(nroutines)
	for n := 0; n < nroutines; n++ {
		go testallocator(pool, byte(n), repeat, chans, &awg)
		go testfree(pool, chans[n], &fwg)
	}

	awg.Wait()
	for _, ch := range chans {
		close(ch)
	}
	fwg.Wait()

	t.Logf("ccallocated:%v ccfreed:%v", ccallocated, ccfreed)
	if ccallocated != ccfreed {
		t.Errorf("expected %v, got %v", ccallocated, ccfreed)
	}
	if _, _, alloc, _ := pool.Info(); alloc != 0 {
		t.Errorf("expected %v, got %v", 0, alloc)
	}
	pool.Release()
}

func testallocator(
	pool *Pool, n byte, repeat int,
	chans []chan testalloc, wg *sync.WaitGroup) {

	defer wg.Done()

	for i := 0; i < repeat; i++ {
		ptr, mpool, ok := pool.Alloc()
		if ok == false {
			panic(fmt.Errorf("unexpected exhaustion"))
		}
		block := unsafe.Slice((*byte)(ptr), pool.Blocksize())
		for j := range block {
			block[j] = n
		}
		chans[rand.Intn(len(chans))] <- testalloc{n: n, ptr: ptr, mpool: mpool}
		atomic.AddInt64(&ccallocated, pool.Blocksize())
	}
}

func testfree(pool *Pool, ch chan testalloc, wg *sync.WaitGroup) {
	defer wg.Done()

	for msg := range ch {
		block := unsafe.Slice((*byte)(msg.ptr), pool.Blocksize())
		for _, c := range block {
			if c != msg.n {
				panic(fmt.Errorf("expected %v, got %v", msg.n, c))
			}
		}
		msg.mpool.Free(msg.ptr)
		atomic.AddInt64(&ccfreed, pool.Blocksize())
	}
}
