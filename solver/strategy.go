package solver

import "math/rand"

// CalculateStrategy is regret matching: σ[a] ∝ max(regret[a], 0), falling
// back to uniform when every regret is non-positive.
func CalculateStrategy(regrets []int32) []float64 {
	sigma := make([]float64, len(regrets))
	sum := 0.0
	for i, r := range regrets {
		if r > 0 {
			sigma[i] = float64(r)
			sum += float64(r)
		}
	}
	if sum <= 0 {
		v := 1.0 / float64(len(sigma))
		for i := range sigma {
			sigma[i] = v
		}
		return sigma
	}
	for i := range sigma {
		sigma[i] /= sum
	}
	return sigma
}

// NormalizeStrategy turns a raw average-strategy visit-count vector into a
// probability distribution, falling back to uniform when every count is
// zero (an information set never visited during training).
func NormalizeStrategy(counts []int32) []float64 {
	sigma := make([]float64, len(counts))
	sum := int64(0)
	for _, c := range counts {
		sum += int64(c)
	}
	if sum <= 0 {
		v := 1.0 / float64(len(sigma))
		for i := range sigma {
			sigma[i] = v
		}
		return sigma
	}
	for i, c := range counts {
		sigma[i] = float64(c) / float64(sum)
	}
	return sigma
}

// SampleStrategy draws an action index from σ by weighted random choice.
func SampleStrategy(rng *rand.Rand, sigma []float64) int {
	x := rng.Float64()
	cum := 0.0
	for i, p := range sigma {
		cum += p
		if x < cum {
			return i
		}
	}
	return len(sigma) - 1
}
