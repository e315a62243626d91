// Package health holds the derived-metric calculations shown on the
// dashboard. Everything here is a pure function over profile and reading
// values.
package health

import "math"

// BP category labels, in escalating order.
const (
	BPNormal   = "Normal"
	BPElevated = "Elevated"
	BPStage1   = "High BP Stage 1"
	BPStage2   = "High BP Stage 2"
	BPCrisis   = "Hypertensive Crisis"
)

// BMI category labels.
const (
	BMIUnderweight = "Underweight"
	BMINormal      = "Normal"
	BMIOverweight  = "Overweight"
	BMIObese       = "Obese"
	BMIUnknown     = "N/A"
)

// BMI computes weight(kg) / height(m)^2, rounded to one decimal place.
// Returns nil when either measurement is missing or the height is zero.
func BMI(heightCm, weightKg *float64) *float64 {
	if heightCm == nil || weightKg == nil || *heightCm <= 0 {
		return nil
	}
	heightM := *heightCm / 100
	value := *weightKg / (heightM * heightM)
	rounded := math.Round(value*10) / 10
	return &rounded
}

// BMICategory buckets a BMI value. The 25.0 boundary belongs to Overweight,
// not Normal.
func BMICategory(bmi *float64) string {
	switch {
	case bmi == nil:
		return BMIUnknown
	case *bmi < 18.5:
		return BMIUnderweight
	case *bmi < 25:
		return BMINormal
	case *bmi < 30:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// BPCategory classifies a reading. First match wins. Normal and Elevated
// require both values under threshold; the stage rules fire when either
// value is under theirs. The AND/OR asymmetry matches the shipped product
// thresholds and must not change without reclassifying existing readings.
func BPCategory(systolic, diastolic int) string {
	switch {
	case systolic < 120 && diastolic < 80:
		return BPNormal
	case systolic < 130 && diastolic < 80:
		return BPElevated
	case systolic < 140 || diastolic < 90:
		return BPStage1
	case systolic < 180 || diastolic < 120:
		return BPStage2
	default:
		return BPCrisis
	}
}
