// Package moduli loads the batch's input moduli table. This is the
// component the core spec treats as an external collaborator: the
// product-tree builder only ever sees IDs and *gmp.Int values, never a CSV
// row.
package moduli

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ncw/gmp"
	"github.com/zugzwang/c-batchgcd/producttree"
)

// Base is the number base modulus_decimal is parsed in.
const Base = 10

// ErrFormat wraps any malformed-row failure: wrong column count, a
// non-numeric id, or a modulus that doesn't parse in base 10. It is the
// same sentinel as producttree.ErrInputFormat.
var ErrFormat = producttree.ErrInputFormat

// Load reads a CSV file of `id, <ignored>, modulus_decimal` rows and
// returns the IDs and moduli in file order. Only columns 0 and 2 are
// consumed; column 1 is tolerated and ignored, matching the external
// interface contract. A malformed row (wrong column count, non-numeric id,
// non-numeric modulus) is an input-format error naming the offending line.
func Load(path string) (ids []int64, values []*gmp.Int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != 3 {
			return nil, nil, fmt.Errorf("%s:%d: expected 3 comma-separated fields, got %d: %w", path, lineNo, len(fields), ErrFormat)
		}

		id, perr := strconv.ParseInt(strings.TrimSpace(fields[0]), 10, 64)
		if perr != nil {
			return nil, nil, fmt.Errorf("%s:%d: invalid id %q: %w", path, lineNo, fields[0], ErrFormat)
		}

		n := new(gmp.Int)
		if _, ok := n.SetString(strings.TrimSpace(fields[2]), Base); !ok {
			return nil, nil, fmt.Errorf("%s:%d: invalid modulus %q: %w", path, lineNo, fields[2], ErrFormat)
		}

		ids = append(ids, id)
		values = append(values, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading %s: %w", path, err)
	}

	return ids, values, nil
}
