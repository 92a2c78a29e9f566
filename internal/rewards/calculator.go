package rewards

import "math"

const baseReward = 10

var categoryMultipliers = map[string]float64{
	"lucid":     2.5,
	"prophetic": 7.5,
	"nightmare": 1.5,
	"recurring": 2.0,
	"healing":   4.0,
	"adventure": 1.5,
}

// Multiplier returns the reward multiplier for a dream category; unknown categories get 1.0.
func Multiplier(category string) float64 {
	if m, ok := categoryMultipliers[category]; ok {
		return m
	}
	return 1.0
}

// Calculate returns floor(10 * multiplier * (1 + (vividness+clarity)/20)).
// The bonus is folded into a single division so that exact results stay exact.
func Calculate(category string, vividness, clarity int) int {
	return int(math.Floor(baseReward * Multiplier(category) * float64(20+vividness+clarity) / 20))
}
