package pool

import (
	"sync"
	"testing"
)

type scratch struct {
	data []byte
}

func TestPoolGetPut(t *testing.T) {
	p := New(
		func() *scratch { return &scratch{data: make([]byte, 0, 16)} },
		func(s *scratch) { s.data = s.data[:0] },
	)

	s := p.Get()
	s.data = append(s.data, 1, 2, 3)
	p.Put(s)

	s2 := p.Get()
	if len(s2.data) != 0 {
		t.Errorf("expected reset object, got len %d", len(s2.data))
	}

	allocated, gets := p.Stats()
	if allocated < 1 || gets != 2 {
		t.Errorf("unexpected stats: allocated=%d gets=%d", allocated, gets)
	}
}

func TestPoolConcurrent(t *testing.T) {
	p := New(func() *scratch { return &scratch{} }, nil)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				s := p.Get()
				p.Put(s)
			}
		}()
	}
	wg.Wait()
}

func TestBufferPool(t *testing.T) {
	b := GetBuffer()
	if len(*b) < 64*1024 {
		t.Fatalf("buffer too small: %d", len(*b))
	}
	PutBuffer(b)

	// undersized buffers must not re-enter the pool
	small := make([]byte, 8)
	PutBuffer(&small)
	b2 := GetBuffer()
	if len(*b2) < 64*1024 {
		t.Errorf("pool returned undersized buffer: %d", len(*b2))
	}
	PutBuffer(b2)
}
