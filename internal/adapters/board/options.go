// Package board defines the recruiting board store interface and errors.
package board

import "time"

// Option applies a configuration option to the TreapBoard.
type Option func(*TreapBoard)

// WithSnapshotInterval sets the interval for periodic snapshot publishing.
func WithSnapshotInterval(interval time.Duration) Option {
	return func(b *TreapBoard) {
		if interval > 0 {
			b.snapshotInterval = interval
		}
	}
}

// WithTopCacheSize sets the number of hottest entries kept in each snapshot.
func WithTopCacheSize(size int) Option {
	return func(b *TreapBoard) {
		if size > 0 {
			b.topCacheSize = size
		}
	}
}
