package utils

import "testing"

func TestCalculateProteinGoal(t *testing.T) {
	goal, err := CalculateProteinGoal(70)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal != 112.0 {
		t.Fatalf("expected 112.0 for 70kg, got %v", goal)
	}

	goal, err = CalculateProteinGoal(82.5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal != 132.0 {
		t.Fatalf("expected 132.0 for 82.5kg, got %v", goal)
	}
}

func TestCalculateProteinGoalRejectsImplausibleWeight(t *testing.T) {
	for _, w := range []float64{0, -10, 5, 500} {
		if _, err := CalculateProteinGoal(w); err == nil {
			t.Fatalf("expected error for weight %v", w)
		}
	}
}
