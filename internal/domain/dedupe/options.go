package dedupe

// Option applies a configuration option to the InMemoryDeduper.
type Option func(*inMemoryDeduper)

// WithCapacity pre-sizes the key set, typically to the number of comments
// in the dataset.
func WithCapacity(n int) Option {
	return func(d *inMemoryDeduper) {
		d.capacity = n
	}
}
