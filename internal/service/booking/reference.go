package booking

import (
	"strings"

	"github.com/Domenick1991/skywings/internal/random"
)

const (
	referencePrefix   = "SW"
	referenceLength   = 9
	referenceAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// ReferenceGenerator issues booking references of the form SW + nine
// base-36 characters. Uniqueness is not checked: a session holds at most
// one open booking.
type ReferenceGenerator struct {
	rnd random.Source
}

func NewReferenceGenerator(rnd random.Source) *ReferenceGenerator {
	return &ReferenceGenerator{rnd: rnd}
}

func (g *ReferenceGenerator) Next() string {
	var b strings.Builder
	b.Grow(len(referencePrefix) + referenceLength)
	b.WriteString(referencePrefix)
	for i := 0; i < referenceLength; i++ {
		b.WriteByte(referenceAlphabet[g.rnd.IntN(len(referenceAlphabet))])
	}
	return b.String()
}
