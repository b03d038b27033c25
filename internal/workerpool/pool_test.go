package workerpool

import (
	"sync"
	"testing"
	"time"
)

func TestPoolExecutesJobs(t *testing.T) {
	p := New(3)
	var mu sync.Mutex
	sum := 0
	var wg sync.WaitGroup
	for i := 1; i <= 10; i++ {
		wg.Add(1)
		i := i
		p.Submit(func() {
			defer wg.Done()
			mu.Lock()
			sum += i
			mu.Unlock()
		})
	}
	wg.Wait()
	if sum != 55 {
		t.Fatalf("sum = %d, want 55", sum)
	}
	p.Shutdown()
}

func TestPoolShutdownJoinsAllWorkers(t *testing.T) {
	p := New(4)
	done := make(chan struct{})
	go func() {
		p.Shutdown()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Shutdown did not return: a worker leaked")
	}
}

func TestPoolShutdownIdempotent(t *testing.T) {
	p := New(2)
	p.Shutdown()
	p.Shutdown() // must not panic or block
}

func TestSubmitAfterShutdownDropped(t *testing.T) {
	p := New(1)
	p.Shutdown()
	done := make(chan struct{})
	go func() {
		p.Submit(func() {})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Submit after Shutdown blocked")
	}
}
