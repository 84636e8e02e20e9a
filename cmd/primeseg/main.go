// Command primeseg counts, prints and stores primes and prime k-tuplets
// within [START, STOP] using the segmented sieve of Eratosthenes.
//
// Usage:
//
//	primeseg [options] START STOP
//
// Examples:
//
//	primeseg 0 1000000                  count primes
//	primeseg -c 12 0 1000000            count primes and twin primes
//	primeseg -p 1 100 200               print primes in [100, 200]
//	primeseg -o primes.zst -z zstd 0 1e8  store primes compressed
//	primeseg -db primes.db 0 1e8        store primes into SQLite
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/arloliu/primeseg/sieve"
	"github.com/arloliu/primeseg/store"
)

var tupletNames = [7]string{
	"Primes", "Twin primes", "Prime triplets", "Prime quadruplets",
	"Prime quintuplets", "Prime sextuplets", "Prime septuplets",
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("primeseg: ")

	var (
		countArities = flag.String("c", "1", "count tuplet arities, e.g. \"1\" for primes, \"12\" for primes and twins")
		printArities = flag.String("p", "", "print tuplet arities, e.g. \"1\" for primes")
		sieveSize    = flag.Int("s", 0, "sieve size in kilobytes (default: L1 data cache size)")
		preSieve     = flag.Int("l", 19, "pre-sieve limit, 13..23")
		threads      = flag.Int("t", 0, "worker count for counting (default: number of CPUs)")
		outFile      = flag.String("o", "", "store primes to file (text format)")
		binFile      = flag.String("b", "", "store primes to file (binary format with checksum)")
		compression  = flag.String("z", "none", "output compression: none, zstd, s2, lz4")
		dbFile       = flag.String("db", "", "store primes into a SQLite database")
		showStatus   = flag.Bool("status", false, "print sieving progress")
		showTime     = flag.Bool("time", false, "print elapsed time")
		quiet        = flag.Bool("q", false, "suppress result output")
	)
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: primeseg [options] START STOP")
		flag.PrintDefaults()
		os.Exit(2)
	}
	start, err := parseBound(flag.Arg(0))
	if err != nil {
		log.Fatalf("invalid START: %v", err)
	}
	stop, err := parseBound(flag.Arg(1))
	if err != nil {
		log.Fatalf("invalid STOP: %v", err)
	}

	flags, err := parseArities(*countArities, *printArities)
	if err != nil {
		log.Fatal(err)
	}
	if *showStatus {
		flags |= sieve.FlagPrintStatus
	}

	sink, err := openSink(*outFile, *binFile, *dbFile, *compression)
	if err != nil {
		log.Fatal(err)
	}

	opts := []sieve.Option{
		sieve.WithStart(start),
		sieve.WithStop(stop),
		sieve.WithFlags(flags),
		sieve.WithPreSieveLimit(*preSieve),
	}
	if *sieveSize > 0 {
		opts = append(opts, sieve.WithSieveSize(*sieveSize))
	}

	if sink != nil {
		if err := runStore(sink, start, stop, opts); err != nil {
			log.Fatal(err)
		}
		return
	}

	pps, err := sieve.NewParallel(opts...)
	if err != nil {
		log.Fatal(err)
	}
	if *threads > 0 {
		pps.SetNumThreads(*threads)
	}
	if flags&(sieve.FlagPrintPrimes|sieve.FlagPrintTwins|sieve.FlagPrintTriplets|
		sieve.FlagPrintQuadruplets|sieve.FlagPrintQuintuplets|
		sieve.FlagPrintSextuplets|sieve.FlagPrintSeptuplets) != 0 {
		// printing in ascending order requires the serial sieve
		pps.SetNumThreads(1)
	}

	if err := pps.Sieve(); err != nil {
		log.Fatal(err)
	}
	if *showStatus {
		fmt.Println()
	}

	if !*quiet {
		for i := 0; i < 7; i++ {
			if flags&(sieve.FlagCountPrimes<<i) == 0 {
				continue
			}
			count, err := pps.Count(i)
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("%s: %d\n", tupletNames[i], count)
		}
	}
	if *showTime {
		fmt.Printf("Seconds: %.3f\n", pps.Seconds())
	}
}

func parseBound(s string) (uint64, error) {
	// accept scientific notation like 1e9
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, err
		}
		if f < 0 {
			return 0, fmt.Errorf("negative bound %q", s)
		}
		return uint64(f), nil
	}

	return strconv.ParseUint(s, 10, 64)
}

func parseArities(count, print string) (uint32, error) {
	var flags uint32
	for _, c := range count {
		if c < '1' || c > '7' {
			return 0, fmt.Errorf("invalid count arity %q", string(c))
		}
		flags |= sieve.FlagCountPrimes << (c - '1')
	}
	for _, c := range print {
		if c < '1' || c > '7' {
			return 0, fmt.Errorf("invalid print arity %q", string(c))
		}
		flags |= sieve.FlagPrintPrimes << (c - '1')
	}

	return flags, nil
}

// fileSink closes the backing file after the store sink; store writers
// leave the underlying writer open by design.
type fileSink struct {
	store.Sink
	f *os.File
}

func (fs fileSink) Close() error {
	if err := fs.Sink.Close(); err != nil {
		fs.f.Close()
		return err
	}

	return fs.f.Close()
}

func openSink(textFile, binFile, dbFile, compression string) (store.Sink, error) {
	comp, err := store.ParseCompression(compression)
	if err != nil {
		return nil, err
	}
	switch {
	case textFile != "":
		f, err := os.Create(textFile)
		if err != nil {
			return nil, err
		}
		sink, err := store.NewTextWriter(f, comp)
		if err != nil {
			f.Close()
			return nil, err
		}
		return fileSink{sink, f}, nil
	case binFile != "":
		f, err := os.Create(binFile)
		if err != nil {
			return nil, err
		}
		sink, err := store.NewBinaryWriter(f, comp)
		if err != nil {
			f.Close()
			return nil, err
		}
		return fileSink{sink, f}, nil
	case dbFile != "":
		return store.OpenSQLite(dbFile)
	default:
		return nil, nil
	}
}

// runStore streams every prime in [start, stop] into sink. Storing uses the
// serial sieve: sinks require ascending order.
func runStore(sink store.Sink, start, stop uint64, opts []sieve.Option) error {
	ps, err := sieve.New(opts...)
	if err != nil {
		return err
	}
	var sinkErr error
	err = ps.GeneratePrimes(start, stop, func(p uint64) {
		if sinkErr == nil {
			sinkErr = sink.Write(p)
		}
	})
	if err != nil {
		sink.Close()
		return err
	}
	if sinkErr != nil {
		sink.Close()
		return sinkErr
	}

	return sink.Close()
}
