package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/ncw/gmp"
	"github.com/zugzwang/c-batchgcd/moduli"
	"github.com/zugzwang/c-batchgcd/producttree"
)

var (
	csvPath    = flag.String("csv", "data/moduli.csv", "path to the input moduli CSV")
	treeDir    = flag.String("treedir", "data/product_tree", "root directory for the on-disk product tree")
	ext        = flag.String("ext", producttree.DefaultExt, "file extension for persisted level files")
	variant    = flag.String("variant", "frugal", "remainder-tree variant: frugal|fast")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

func main() {
	log.SetOutput(os.Stderr)
	flag.Parse()

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	log.Print("Reading moduli from ", *csvPath)
	ids, values, err := moduli.Load(*csvPath)
	if err != nil {
		return fmt.Errorf("moduli: %w", err)
	}
	log.Printf("Done. Read %d moduli", len(values))

	store := producttree.NewLevelStore(*treeDir, *ext)

	log.Print("-----------------------------------------------")
	log.Print("Part (A) - Computing product tree of all moduli")
	log.Print("-----------------------------------------------")
	start := time.Now()
	levels, manifest, err := producttree.BuildProductTree(store, values)
	if err != nil {
		return fmt.Errorf("product tree: %w", err)
	}
	// Ownership of the leaves passed to BuildProductTree; they're on disk
	// at level 0 now, so drop this reference too instead of holding the
	// whole input set in RAM for the rest of the run.
	values = nil
	log.Print("End Part (A)")
	log.Printf("Time elapsed (s): %.3f", time.Since(start).Seconds())

	log.Print("------------------------------------------------")
	log.Print("Part (B) - Computing the remainders of Z mod Ni^2")
	log.Print("------------------------------------------------")
	start = time.Now()
	var r []*gmp.Int
	switch *variant {
	case "frugal":
		r, err = producttree.ComputeRemaindersFrugal(store, levels, manifest)
	case "fast":
		r, err = producttree.ComputeRemaindersFast(store, levels, manifest)
	default:
		return fmt.Errorf("unknown variant %q, want frugal|fast", *variant)
	}
	if err != nil {
		return fmt.Errorf("remainders: %w", err)
	}
	log.Print("End Part (B)")
	log.Printf("Time elapsed (s): %.3f", time.Since(start).Seconds())

	log.Print("-----------------------")
	log.Print(" - Computing final GCDs")
	log.Print("-----------------------")
	log.Printf("Sanity check: %d input moduli.", len(ids))
	leaves, err := store.ReadLevel(0, manifest.FloorSizes[0])
	if err != nil {
		return fmt.Errorf("reloading leaves for gcd stage: %w", err)
	}
	start = time.Now()
	factors, err := producttree.ExtractGCDs(ids, leaves, r)
	if err != nil {
		return fmt.Errorf("gcd: %w", err)
	}
	log.Print("Done. Compromised keys (ID,factor in hex):")
	for _, fac := range factors {
		fmt.Printf("%d,%x\n", fac.ID, fac.P)
	}
	fmt.Println(len(factors))
	log.Printf("Time elapsed (s): %.3f", time.Since(start).Seconds())

	return nil
}
