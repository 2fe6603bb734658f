package quest

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSource sets the randomness source. Tests use this to script draws.
func WithSource(src Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.rand = src
		}
	}
}

// WithDeckSize sets how many quests a league deck holds.
func WithDeckSize(size int) Option {
	return func(g *Generator) {
		if size > 0 {
			g.deckSize = size
		}
	}
}

// WithSyndicateRate sets the per-alum probability contribution for the
// Syndicate bracket.
func WithSyndicateRate(rate float64) Option {
	return func(g *Generator) {
		if rate >= 0 {
			g.syndicateRate = rate
		}
	}
}
