// Package entropy provides the random source behind event admission
// rolls. The source is injected into the engine so tests and replays can
// pin the draw sequence.
package entropy

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand"
)

// Source yields uniform floats in [0, 1).
type Source interface {
	Float() float64
}

// Seeded returns a deterministic source. Equal seeds yield equal draw
// sequences.
func Seeded(seed int64) Source {
	return &seededSource{rng: mathrand.New(mathrand.NewSource(seed))}
}

type seededSource struct {
	rng *mathrand.Rand
}

func (s *seededSource) Float() float64 {
	return s.rng.Float64()
}

// Crypto returns a crypto/rand-backed source for live play.
func Crypto() Source {
	return cryptoSource{}
}

type cryptoSource struct{}

func (cryptoSource) Float() float64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		// Should never happen; 0.5 is a safe neutral draw.
		return 0.5
	}
	// Use only 53 bits for a uniform float64 in [0, 1).
	n := binary.LittleEndian.Uint64(buf[:]) >> 11
	return float64(n) / float64(1<<53)
}

// Fixed returns a source that always yields the same value. Test helper
// for forcing a random gate open or shut.
func Fixed(v float64) Source {
	return fixedSource(v)
}

type fixedSource float64

func (f fixedSource) Float() float64 {
	return float64(f)
}
