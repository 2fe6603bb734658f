package shortlist

// Option applies a configuration option to the Builder.
type Option func(*Builder)

// WithSizeBounds sets the minimum and maximum shortlist size.
func WithSizeBounds(minSize, maxSize int) Option {
	return func(b *Builder) {
		if minSize > 0 {
			b.minSize = minSize
		}
		if maxSize > 0 {
			b.maxSize = maxSize
		}
	}
}

// WithLeaderWindow sets the share gap, in percentage points, within which a
// trailing offer still counts as In The Mix.
func WithLeaderWindow(window float64) Option {
	return func(b *Builder) {
		if window >= 0 {
			b.leaderWindow = window
		}
	}
}

// WithTemperature sets the exponent applied to weights before
// normalization. Values above 1 concentrate share on the leader; values
// below 1 flatten the distribution toward uniform.
func WithTemperature(temperature float64) Option {
	return func(b *Builder) {
		b.temperature = temperature
	}
}
