package game

import "math/rand"

// Rand is the randomness seam for crit rolls and special spawns. Tests plug
// in a scripted sequence; production uses a seeded math/rand source.
type Rand interface {
	Float64() float64
}

// NewRand returns a Rand over its own source, safe to use from one session.
func NewRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}

// SeqRand replays a fixed sequence of draws and then repeats the last one.
// Useful for forcing or suppressing crits and specials in tests.
type SeqRand struct {
	Seq []float64
	i   int
}

func (r *SeqRand) Float64() float64 {
	if len(r.Seq) == 0 {
		return 0.999
	}
	v := r.Seq[r.i]
	if r.i < len(r.Seq)-1 {
		r.i++
	}
	return v
}
