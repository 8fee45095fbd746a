package question

import "math/rand/v2"

// Selector draws quiz questions uniformly at random. It keeps no session
// state; callers accumulate the ids already asked.
type Selector struct {
	intN func(n int) int
}

// SelectorOption customises a Selector.
type SelectorOption func(*Selector)

// WithRandom replaces the randomness source. intN must return a value in [0, n).
func WithRandom(intN func(n int) int) SelectorOption {
	return func(s *Selector) {
		s.intN = intN
	}
}

// NewSelector returns a Selector that draws uniformly with math/rand/v2
// unless an option overrides it.
func NewSelector(opts ...SelectorOption) *Selector {
	s := &Selector{intN: rand.IntN}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Pick returns one candidate, or false when the pool is exhausted.
func (s *Selector) Pick(candidates []Question) (Question, bool) {
	if len(candidates) == 0 {
		return Question{}, false
	}
	return candidates[s.intN(len(candidates))], true
}
