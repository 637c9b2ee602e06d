package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrSampleTooLarge is returned when more elements are requested than exist.
	ErrSampleTooLarge = errors.New("sample larger than population")
	// ErrNegativeSample is returned for a negative sample size.
	ErrNegativeSample = errors.New("negative sample size")
	// ErrInvalidFraction is returned for a fraction outside (0, 1].
	ErrInvalidFraction = errors.New("fraction must be in (0, 1]")
)

// ValidateFraction reports whether f is a usable sampling fraction.
func ValidateFraction(f float64) error {
	if math.IsNaN(f) || f <= 0 || f > 1 {
		return fmt.Errorf("%w: got %v", ErrInvalidFraction, f)
	}
	return nil
}

// Count returns floor(n * fraction). Small classes truncate to zero.
func Count(n int, fraction float64) int {
	if n <= 0 {
		return 0
	}
	return int(math.Floor(float64(n) * fraction))
}

// Sampler draws samples from a generator it owns.
type Sampler struct {
	seed int64
	rng  *rand.Rand
}

// New returns a Sampler whose generator is seeded with seed.
func New(seed int64) *Sampler {
	return &Sampler{
		seed: seed,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the Sampler was created with.
func (s *Sampler) Seed() int64 {
	return s.seed
}

// Draw returns k distinct elements of names chosen uniformly at random, in
// draw order. names is not modified.
func (s *Sampler) Draw(names []string, k int) ([]string, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeSample, k)
	}
	if k > len(names) {
		return nil, fmt.Errorf("%w: requested %d of %d", ErrSampleTooLarge, k, len(names))
	}
	if k == 0 {
		return []string{}, nil
	}

	// Partial Fisher-Yates over a copy; the first k slots are the sample.
	pool := make([]string, len(names))
	copy(pool, names)
	for i := 0; i < k; i++ {
		j := i + s.rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k:k], nil
}
