// Command squeeze is a zopfli-style optimal-parsing DEFLATE compressor: a
// thin main() that logs and exits non-zero on error, flag-driven options,
// optional CPU profiling.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/zopfligo/squeeze"
)

func usage() {
	fmt.Println("squeeze - zopfli-style optimal LZ77/DEFLATE compressor")
	fmt.Println("Usage: squeeze [-n iterations] [-q] [-verify] infile outfile")
	fmt.Println(" -n N      : number of statistics-driven iterations (default 15, 0 = fixed tree only)")
	fmt.Println(" -q        : quiet mode")
	fmt.Println(" -verbose  : log every iteration's true cost")
	fmt.Println(" -verify   : decompress the output and diff it against the input")
	fmt.Println(" -seed N   : RNG seed for the stagnation-escape randomizer")
}

func main() {
	if err := run(); err != nil {
		log.Printf("error: %v\n", err)
		usage()
		os.Exit(1)
	}
}

func run() error {
	t0 := time.Now()

	opts := squeeze.Options{Iterations: 15}
	var cpuProfile string
	var quiet, verify bool
	flag.StringVar(&cpuProfile, "cpuprofile", "", "write cpu profile to `file`")
	flag.IntVar(&opts.Iterations, "n", 15, "")
	flag.BoolVar(&quiet, "q", false, "")
	flag.BoolVar(&opts.VerboseMore, "verbose", false, "")
	flag.BoolVar(&verify, "verify", false, "")
	flag.Int64Var(&opts.Seed, "seed", 0, "")
	flag.Usage = usage
	flag.Parse()
	opts.Verbose = !quiet

	if flag.NArg() != 2 {
		return fmt.Errorf("not enough args")
	}

	inFilename, outFilename := flag.Args()[0], flag.Args()[1]
	in, err := os.Open(inFilename)
	if err != nil {
		return err
	}
	defer in.Close()

	if cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			return fmt.Errorf("could not create CPU profile %q: %w", cpuProfile, err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("could not start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	c, err := squeeze.New(in, opts)
	if err != nil {
		return err
	}

	out, err := os.Create(outFilename)
	if err != nil {
		return err
	}
	defer out.Close()

	n, err := c.WriteTo(out)
	if err != nil {
		return err
	}

	if verify {
		compressed, err := os.ReadFile(outFilename)
		if err != nil {
			return err
		}
		original, err := os.ReadFile(inFilename)
		if err != nil {
			return err
		}
		decoded, err := squeeze.Decompress(compressed)
		if err != nil {
			return fmt.Errorf("verify: %w", err)
		}
		if string(decoded) != string(original) {
			return fmt.Errorf("verify: round-trip mismatch (%d vs %d bytes)", len(decoded), len(original))
		}
		if !quiet {
			fmt.Println("verify: round-trip OK")
		}
	}

	if !quiet {
		fmt.Printf("wrote %d bytes, elapsed %s\n", n, time.Since(t0))
	}
	return nil
}
