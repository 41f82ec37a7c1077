package sequence

import (
	"sync"
	"testing"
)

func TestAtomic_StartsAtStart(t *testing.T) {
	g := NewAtomic(1)
	if got := g.Next(); got != 1 {
		t.Fatalf("expected first value 1, got %d", got)
	}
	if got := g.Next(); got != 2 {
		t.Fatalf("expected second value 2, got %d", got)
	}
}

func TestAtomic_ConcurrentValuesAreUnique(t *testing.T) {
	g := NewAtomic(1)
	const workers, perWorker = 16, 500

	var mu sync.Mutex
	seen := make(map[int64]bool, workers*perWorker)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local := make([]int64, 0, perWorker)
			for j := 0; j < perWorker; j++ {
				local = append(local, g.Next())
			}
			mu.Lock()
			defer mu.Unlock()
			for _, v := range local {
				if seen[v] {
					t.Errorf("duplicate value %d", v)
				}
				seen[v] = true
			}
		}()
	}
	wg.Wait()

	if len(seen) != workers*perWorker {
		t.Fatalf("expected %d unique values, got %d", workers*perWorker, len(seen))
	}
	if g.Current() != workers*perWorker {
		t.Fatalf("expected current %d, got %d", workers*perWorker, g.Current())
	}
}

func TestAtomic_Advance(t *testing.T) {
	g := NewAtomic(1)
	g.Advance(41)
	if got := g.Next(); got != 42 {
		t.Fatalf("expected 42 after advancing to 41, got %d", got)
	}

	g.Advance(10)
	if got := g.Next(); got != 43 {
		t.Fatalf("advance below current must be a no-op, got %d", got)
	}
}
