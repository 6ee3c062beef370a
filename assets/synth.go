package assets

import (
	"encoding/binary"
	"math"
	"math/rand"
)

// SynthShot renders a gunshot as 16-bit little-endian stereo PCM: a noise
// burst over a low thump, both with an exponential tail.
func SynthShot(sampleRate int, seconds float64, seed int64) []byte {
	n := int(float64(sampleRate) * seconds)
	if n <= 0 {
		return nil
	}
	rng := rand.New(rand.NewSource(seed))
	out := make([]byte, n*4)
	lp := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		env := math.Exp(-t * 28)
		noise := rng.Float64()*2 - 1
		lp += (noise - lp) * 0.35
		thump := math.Sin(2*math.Pi*70*t) * math.Exp(-t*40)
		v := (0.7*lp + 0.5*thump) * env
		s := int16(math.Max(-1, math.Min(1, v)) * math.MaxInt16)
		binary.LittleEndian.PutUint16(out[i*4:], uint16(s))
		binary.LittleEndian.PutUint16(out[i*4+2:], uint16(s))
	}
	return out
}
