package common

import (
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNonceSourceStrictlyIncreasing(t *testing.T) {
	source := NewNonceSource()
	prev := source.Next()
	for i := 0; i < 10000; i++ {
		next := source.Next()
		assert.Greater(t, next, prev)
		prev = next
	}
}

func TestNonceSourceConcurrentUniqueness(t *testing.T) {
	source := NewNonceSource()
	const workers = 8
	const perWorker = 2000

	results := make([][]int64, workers)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			out := make([]int64, 0, perWorker)
			for i := 0; i < perWorker; i++ {
				out = append(out, source.Next())
			}
			results[w] = out
		}(w)
	}
	wg.Wait()

	all := make([]int64, 0, workers*perWorker)
	for _, chunk := range results {
		all = append(all, chunk...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	for i := 1; i < len(all); i++ {
		if all[i] == all[i-1] {
			t.Fatalf("duplicate nonce %d issued", all[i])
		}
	}
}
