package gap

// Default configuration values.
const (
	// DefaultGrowIncrement is the number of extra slots added on top of the
	// required size whenever the buffer has to grow.
	DefaultGrowIncrement = 256

	// growAlign is the granularity, in elements, that grown capacities are
	// rounded up to.
	growAlign = 64
)

// Option configures a Buffer during creation.
type Option func(*options)

type options struct {
	growBy   int
	capacity int
}

// WithGrowIncrement sets the fixed number of slots added on growth.
func WithGrowIncrement(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.growBy = n
		}
	}
}

// WithCapacity reserves at least n slots up front.
func WithCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.capacity = n
		}
	}
}

func collectOptions(opts []Option) options {
	o := options{growBy: DefaultGrowIncrement}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
