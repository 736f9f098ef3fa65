package producttree

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/ncw/gmp"
)

// BuildProductTree folds inputs into a balanced pairwise-product tree,
// persisting every level to store as it goes, and returns the number of
// levels written plus the manifest describing how many elements live at
// each one.
//
// inputs is consumed: ownership passes to this function, which is free to
// drop the caller's backing slice once level 0 is safely on disk. Callers
// must not read or write inputs after this returns.
func BuildProductTree(store *LevelStore, inputs []*gmp.Int) (int, Manifest, error) {
	if len(inputs) == 0 {
		return 0, Manifest{}, fmt.Errorf("empty input: %w", ErrInvariant)
	}
	for i, n := range inputs {
		if n.Sign() == 0 {
			return 0, Manifest{}, fmt.Errorf("modulus at index %d is zero: %w", i, ErrInvariant)
		}
	}

	var manifest Manifest
	current := inputs
	level := 0

	for len(current) > 1 {
		manifest.FloorSizes = append(manifest.FloorSizes, len(current))
		if err := store.WriteLevel(level, current); err != nil {
			return 0, Manifest{}, fmt.Errorf("persisting level %d: %w", level, err)
		}

		next := multiplyPairs(current)

		if level == 0 {
			// Leaves are safely on disk and level 1's products are
			// already built; reclaim the caller's slice now.
			current = nil
			inputs = nil
		}
		current = next
		level++
		log.Printf("product tree: level %d has %d elements", level, len(current))
	}

	manifest.FloorSizes = append(manifest.FloorSizes, len(current))
	if err := store.WriteLevel(level, current); err != nil {
		return 0, Manifest{}, fmt.Errorf("persisting root level %d: %w", level, err)
	}

	return level + 1, manifest, nil
}

// multiplyPairs builds the next tree level from current: pairs of adjacent
// elements are multiplied together, and a trailing unpaired element (the
// orphan carry) is promoted unchanged. Position |next|-1 always receives
// the orphan, which keeps parent(i) = i/2 valid at every level, orphans
// included — ComputeRemaindersFast depends on that.
//
// The loop has no inter-iteration data dependency, so it's striped across
// runtime.NumCPU() goroutines the same way smootherparts.go stripes its
// in-memory product-tree level, rather than being parallelized with a
// worker pool.
func multiplyPairs(current []*gmp.Int) []*gmp.Int {
	pairs := len(current) / 2
	odd := len(current)%2 == 1
	next := make([]*gmp.Int, pairs+boolToInt(odd))

	nThreads := runtime.NumCPU()
	if nThreads > pairs {
		nThreads = pairs
	}
	if nThreads < 1 {
		nThreads = 1
	}

	var wg sync.WaitGroup
	wg.Add(nThreads)
	for t := 0; t < nThreads; t++ {
		go func(start int) {
			defer wg.Done()
			for i := start; i < pairs; i += nThreads {
				next[i] = new(gmp.Int).Mul(current[2*i], current[2*i+1])
			}
		}(t)
	}
	wg.Wait()

	if odd {
		next[len(next)-1] = current[len(current)-1]
	}
	return next
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
