package renderer

type Options struct {
	// Number of parallel render workers. Values <= 0 select one worker
	// per logical CPU.
	NumWorkers int

	// Base seed for the per-block random sources. Reusing a seed
	// reproduces a frame bit-for-bit regardless of worker interleaving.
	Seed int64
}
