package interest

// Option applies a configuration option to the WeightedCalculator.
type Option func(*WeightedCalculator)

// WithBadgeLimit caps how many why badges a breakdown may carry.
func WithBadgeLimit(limit int) Option {
	return func(c *WeightedCalculator) {
		if limit > 0 {
			c.badgeLimit = limit
		}
	}
}

// WithBadgeFloor sets the minimum contribution a category needs before it
// earns a badge.
func WithBadgeFloor(floor float64) Option {
	return func(c *WeightedCalculator) {
		if floor >= 0 {
			c.badgeFloor = floor
		}
	}
}

// WithPitchCoefficient sets the leverage multiplier for non-default pitches.
func WithPitchCoefficient(coefficient float64) Option {
	return func(c *WeightedCalculator) {
		if coefficient >= 0 {
			c.pitchCoefficient = coefficient
		}
	}
}

// WithEliteFitPenalty sets the flat penalty for the elite-program
// academic-fit failure.
func WithEliteFitPenalty(penalty float64) Option {
	return func(c *WeightedCalculator) {
		if penalty >= 0 {
			c.eliteFitPenalty = penalty
		}
	}
}

// WithGatePenalty sets the flat penalty applied when a dealbreaker trips.
func WithGatePenalty(penalty float64) Option {
	return func(c *WeightedCalculator) {
		if penalty >= 0 {
			c.gatePenalty = penalty
		}
	}
}

// WithMaxDistance sets the mileage at which the proximity signal bottoms
// out.
func WithMaxDistance(miles float64) Option {
	return func(c *WeightedCalculator) {
		if miles > 0 {
			c.maxDistance = miles
		}
	}
}
