// Package store persists sieved primes.
//
// Primes arrive in ascending order from a sieve callback and flow into one
// of three sinks:
//
//   - TextWriter: one decimal value per line, optionally compressed
//   - BinaryWriter: little-endian uint64 stream with an xxHash64 digest
//     footer for integrity verification, optionally compressed
//   - SQLiteStore: batched transactional inserts into a SQLite table
//
// Compression is pluggable (None, Zstd, S2, LZ4). Prime lists compress
// extremely well: consecutive values share most of their leading digits.
//
//	sink, err := store.NewTextWriter(f, store.CompressionZstd)
//	if err != nil {
//	    return err
//	}
//	defer sink.Close()
//	ps.GeneratePrimes(start, stop, func(p uint64) { sink.Write(p) })
//
// Only emitted primes are persisted; sieve state never is.
package store
