// genmoduli writes a moduli.csv fixture in the `id, <ignored>,
// modulus_decimal` format the batchgcd CLI consumes, periodically reusing a
// prime between two moduli so a downstream run has compromised keys to find.
// Adapted from the reference generator (mkmoduli/main.go), which produced
// plain hex moduli with no ID column and no CSV framing.
package main

import (
	cryptorand "crypto/rand"
	"flag"
	"fmt"
	"log"
	"math/big"
	"os"
)

var (
	dupeProb  = flag.Int("prob", 1000, "1/n moduli will reuse a prime from a previous modulus")
	numModuli = flag.Int("num", 1000, "how many moduli to generate")
	bits      = flag.Int("bits", 2048, "bits per RSA modulus")
	outPath   = flag.String("out", "data/moduli.csv", "output CSV path")
)

func main() {
	log.SetOutput(os.Stderr)
	flag.Parse()

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	var pending *big.Int
	for i := 0; i < *numModuli; i++ {
		p1, err := cryptorand.Prime(cryptorand.Reader, (*bits+1)/2)
		if err != nil {
			log.Fatal("unable to generate random prime: ", err)
		}

		var p2 *big.Int
		if pending != nil && i%(*dupeProb) == 1 {
			p2 = pending
			pending = nil
		} else {
			p2, err = cryptorand.Prime(cryptorand.Reader, (*bits)/2)
			if err != nil {
				log.Fatal("unable to generate random prime: ", err)
			}
			if i%(*dupeProb) == 0 {
				pending = p1
			}
		}

		n := new(big.Int).Mul(p1, p2)
		if _, err := fmt.Fprintf(f, "%d,,%s\n", i, n.String()); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("Wrote %d moduli to %s", *numModuli, *outPath)
}
