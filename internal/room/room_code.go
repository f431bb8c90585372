package room

import (
	"math/rand"
	"time"
)

const (
	codeLength = 4
	maxRetries = 100
)

// No I or O, which read as 1 and 0 on small screens.
var letters = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ")

// codeGenerator hands out room codes from its own source so a configured
// seed reproduces both the rounds and the codes players type in. It is not
// safe for concurrent use; Manager calls it under its lock.
type codeGenerator struct {
	rng *rand.Rand
}

// newCodeGenerator seeds the generator. A zero seed uses the clock.
func newCodeGenerator(seed int64) *codeGenerator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &codeGenerator{rng: rand.New(rand.NewSource(seed))}
}

// Next returns a code for which taken reports false. After maxRetries
// collisions it gives up and returns the last candidate.
func (g *codeGenerator) Next(taken func(code string) bool) string {
	code := g.candidate()
	for i := 1; i < maxRetries && taken(code); i++ {
		code = g.candidate()
	}
	return code
}

func (g *codeGenerator) candidate() string {
	b := make([]rune, codeLength)
	for i := range b {
		b[i] = letters[g.rng.Intn(len(letters))]
	}
	return string(b)
}
