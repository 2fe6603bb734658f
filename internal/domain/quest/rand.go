package quest

import (
	"math/rand"
	"time"
)

// Source provides the randomness used by the generator. Tests supply a
// scripted implementation; production uses the platform RNG.
type Source interface {
	// Float64 returns a value in [0, 1).
	Float64() float64

	// Intn returns a value in [0, n).
	Intn(n int) int
}

// mathSource wraps math/rand.
type mathSource struct {
	r *rand.Rand
}

func newMathSource() *mathSource {
	return &mathSource{r: rand.New(rand.NewSource(time.Now().UnixNano()))} //nolint:gosec // game content, not crypto
}

func (s *mathSource) Float64() float64 { return s.r.Float64() }
func (s *mathSource) Intn(n int) int   { return s.r.Intn(n) }
