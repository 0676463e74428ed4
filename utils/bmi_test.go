package utils

import (
	"math"
	"testing"
	"time"
)

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(175, 70)
	if err != nil {
		t.Fatalf("CalculateBMI: %v", err)
	}
	if math.Abs(bmi-22.857) > 0.01 {
		t.Errorf("bmi = %.3f, want ~22.857", bmi)
	}
	if got := BMICategory(bmi); got != "Normal weight" {
		t.Errorf("category = %q", got)
	}

	if _, err := CalculateBMI(0, 70); err == nil {
		t.Error("zero height must error")
	}
	if _, err := CalculateBMI(175, 900); err == nil {
		t.Error("implausible weight must error")
	}
}

func TestCalculateAge(t *testing.T) {
	birth := time.Now().AddDate(-30, 0, -1)
	if got := CalculateAge(birth); got != 30 {
		t.Errorf("age = %d, want 30", got)
	}
	notYet := time.Now().AddDate(-30, 0, 1)
	if got := CalculateAge(notYet); got != 29 {
		t.Errorf("age before birthday = %d, want 29", got)
	}
}
