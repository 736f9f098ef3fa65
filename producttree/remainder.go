package producttree

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"github.com/ncw/gmp"
)

// ComputeRemaindersFrugal is the memory-frugal variant of the remainder
// tree descent: it reads only the leaves and the root and reduces the root
// against each leaf's square directly. It is the safe default — minimum
// memory, at the cost of k reductions against the full-size root Z.
func ComputeRemaindersFrugal(store *LevelStore, levels int, manifest Manifest) ([]*gmp.Int, error) {
	k := manifest.FloorSizes[0]
	leaves, err := store.ReadLevel(0, k)
	if err != nil {
		return nil, fmt.Errorf("reading leaves: %w", err)
	}
	z, err := store.ReadOne(levels-1, 0)
	if err != nil {
		return nil, fmt.Errorf("reading root: %w", err)
	}

	r := make([]*gmp.Int, k)
	nThreads := runtime.NumCPU()
	if nThreads > k {
		nThreads = k
	}
	if nThreads < 1 {
		nThreads = 1
	}

	var wg sync.WaitGroup
	wg.Add(nThreads)
	for t := 0; t < nThreads; t++ {
		go func(start int) {
			defer wg.Done()
			sq := new(gmp.Int)
			for i := start; i < k; i += nThreads {
				sq.Mul(leaves[i], leaves[i])
				r[i] = new(gmp.Int).Rem(z, sq)
			}
		}(t)
	}
	wg.Wait()

	return r, nil
}

// ComputeRemaindersFast is the true remainder-tree descent: starting from
// the root, it walks down one level at a time, at each step reducing the
// parent's remainder modulo the square of the corresponding node on this
// level. parent(i) = i/2 holds even where level ℓ carries an orphan,
// because the orphan was promoted to the next level unchanged.
func ComputeRemaindersFast(store *LevelStore, levels int, manifest Manifest) ([]*gmp.Int, error) {
	root, err := store.ReadOne(levels-1, 0)
	if err != nil {
		return nil, fmt.Errorf("reading root: %w", err)
	}
	if manifest.Root() != 1 {
		return nil, fmt.Errorf("root level has %d elements, want 1: %w", manifest.Root(), ErrInvariant)
	}

	r := []*gmp.Int{root}

	for level := levels - 2; level >= 0; level-- {
		m := manifest.FloorSizes[level]
		log.Printf("remainder tree: descending into level %d (%d elements)", level, m)

		newR := make([]*gmp.Int, m)
		nThreads := runtime.NumCPU()
		if nThreads > m {
			nThreads = m
		}
		if nThreads < 1 {
			nThreads = 1
		}

		errs := make([]error, nThreads)
		var wg sync.WaitGroup
		wg.Add(nThreads)
		for t := 0; t < nThreads; t++ {
			go func(start int) {
				defer wg.Done()
				sq := new(gmp.Int)
				for i := start; i < m; i += nThreads {
					// Fetch this level's node at use time rather than
					// bulk-loading the whole level: per §5, at most one
					// leaf per in-flight goroutine may be resident here.
					y, err := store.ReadOne(level, i)
					if err != nil {
						errs[start] = fmt.Errorf("reading level %d element %d: %w", level, i, err)
						return
					}
					sq.Mul(y, y)
					newR[i] = new(gmp.Int).Rem(r[i/2], sq)
				}
			}(t)
		}
		wg.Wait()
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}

		r = newR
	}

	return r, nil
}
