package utils

import (
	"errors"
	"math"
)

// ProteinPerKg is the daily protein target multiplier (g per kg body weight).
const ProteinPerKg = 1.6

// CalculateProteinGoal expects weight in kilograms.
func CalculateProteinGoal(weightKg float64) (float64, error) {
	if weightKg <= 0 {
		return 0, errors.New("weight must be positive")
	}
	// Sanity check to avoid garbage input
	if weightKg < 10 || weightKg > 400 {
		return 0, errors.New("weight out of plausible range")
	}
	return math.Round(weightKg*ProteinPerKg*10) / 10, nil
}
