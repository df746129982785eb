package engine

import "math/rand/v2"

//go:generate mockgen -destination=mock/mock.go -package=enginemock github.com/gamewaifu/waifu-api/internal/engine Random

// Random yields uniform draws in [0, 1). The engine draws once per turn for
// initiative and once per damage-dealing action for a critical hit.
type Random interface {
	Float64() float64
}

type systemRandom struct{}

func (systemRandom) Float64() float64 {
	return rand.Float64()
}

// SystemRandom returns the process-wide random source
func SystemRandom() Random {
	return systemRandom{}
}

// Scripted replays a fixed sequence of draws and then repeats the last one.
// It makes battles reproducible for replays and tests.
type Scripted struct {
	draws []float64
	next  int
}

// NewScripted returns a Random that yields draws in order
func NewScripted(draws ...float64) *Scripted {
	return &Scripted{draws: draws}
}

// Float64 returns the next scripted draw
func (s *Scripted) Float64() float64 {
	if len(s.draws) == 0 {
		return 0
	}
	if s.next >= len(s.draws) {
		return s.draws[len(s.draws)-1]
	}
	v := s.draws[s.next]
	s.next++
	return v
}
