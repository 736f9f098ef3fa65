package producttree

import (
	"fmt"

	"github.com/ncw/gmp"
)

// Factor is one compromised modulus: N shares the factor P with some other
// modulus in the batch, so Q = N/P is its other factor and N's private key
// is recoverable. ID is the opaque identifier the caller attached to N on
// the way in (see the moduli package); it travels through the tree
// untouched, same as the spec's data model requires.
type Factor struct {
	ID int64
	N  *gmp.Int
	P  *gmp.Int
}

// ExtractGCDs consumes the original moduli and the remainders vector R
// produced by either variant of the remainder-tree descent, and returns the
// compromised moduli: those i for which gcd(Nᵢ, ∏_{j≠i} Nⱼ) > 1.
func ExtractGCDs(ids []int64, moduli, r []*gmp.Int) ([]Factor, error) {
	if len(moduli) != len(r) || len(ids) != len(moduli) {
		return nil, fmt.Errorf("ids/moduli/remainders length mismatch (%d/%d/%d): %w", len(ids), len(moduli), len(r), ErrInvariant)
	}

	var factors []Factor
	for i := range moduli {
		n := moduli[i]
		q := new(gmp.Int).Quo(r[i], n)
		if rem := new(gmp.Int).Rem(r[i], n); rem.Sign() != 0 {
			return nil, fmt.Errorf("modulus %d does not divide its remainder: %w", ids[i], ErrArithmetic)
		}
		p := new(gmp.Int).GCD(nil, nil, q, n)
		if p.Cmp(gmp.NewInt(1)) != 0 {
			factors = append(factors, Factor{ID: ids[i], N: n, P: p})
		}
	}
	return factors, nil
}
