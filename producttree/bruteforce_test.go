package producttree

import "github.com/ncw/gmp"

// bruteForceGCD cross-checks ExtractGCDs against the naive O(k^2) approach
// the spec calls infeasible at scale but which is exactly right as an
// oracle for the small fixtures the tests use. Adapted from the reference's
// BasicPairwiseGCD (basic_pairwise.go): same pairwise GCD scan, single
// threaded since test fixtures are tiny and determinism matters more than
// speed here.
func bruteForceGCD(ids []int64, moduli []*gmp.Int) map[int64]*gmp.Int {
	factors := make(map[int64]*gmp.Int)
	for i := 0; i < len(moduli); i++ {
		for j := i + 1; j < len(moduli); j++ {
			g := new(gmp.Int).GCD(nil, nil, moduli[i], moduli[j])
			if g.Cmp(gmp.NewInt(1)) == 0 {
				continue
			}
			if _, ok := factors[ids[i]]; !ok {
				factors[ids[i]] = g
			}
			if _, ok := factors[ids[j]]; !ok {
				factors[ids[j]] = g
			}
		}
	}
	return factors
}
