// Package random provides the injectable random source used by the
// flight generator, the status lookup and booking references.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is satisfied by *rand.Rand.
type Source interface {
	IntN(n int) int
	Float64() float64
}

type locked struct {
	mu sync.Mutex
	r  *rand.Rand
}

// New returns a goroutine-safe source. A zero seed draws one from the clock.
func New(seed uint64) Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &locked{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.IntN(n)
}

func (l *locked) Float64() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Float64()
}
