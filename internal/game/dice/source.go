package dice

import (
	"crypto/rand"
	"math/big"
	mrand "math/rand"
)

type cryptoSource struct{}

// NewCryptoSource returns a Source backed by crypto/rand, for matches that
// must not be reproducible.
func NewCryptoSource() Source {
	return cryptoSource{}
}

// Intn panics with "dice: Intn called with n <= 0" if n <= 0.
func (cryptoSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	val, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("dice: crypto/rand failure: " + err.Error())
	}
	return int(val.Int64())
}

type seededSource struct {
	r *mrand.Rand
}

// NewSeededSource returns a deterministic Source. A zero seed is replaced by 1
// so that an unset configuration value still yields a usable generator.
func NewSeededSource(seed int64) Source {
	if seed == 0 {
		seed = 1
	}
	return &seededSource{r: mrand.New(mrand.NewSource(seed))}
}

func (s *seededSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	return s.r.Intn(n)
}

// FixedSource replays Values in order, wrapping around. Each value is reduced
// modulo n. Intended for tests.
type FixedSource struct {
	Values []int
	next   int
}

// Intn returns the next scripted value modulo n.
func (f *FixedSource) Intn(n int) int {
	if n <= 0 {
		panic("dice: Intn called with n <= 0")
	}
	if len(f.Values) == 0 {
		return 0
	}
	v := f.Values[f.next%len(f.Values)]
	f.next++
	return ((v % n) + n) % n
}
