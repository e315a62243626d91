package health

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestBMI(t *testing.T) {
	tests := []struct {
		name     string
		height   *float64
		weight   *float64
		expected *float64
	}{
		{"typical", floatPtr(180), floatPtr(81.0), floatPtr(25.0)},
		{"rounds to one decimal", floatPtr(170), floatPtr(65), floatPtr(22.5)},
		{"missing height", nil, floatPtr(70), nil},
		{"missing weight", floatPtr(175), nil, nil},
		{"zero height", floatPtr(0), floatPtr(70), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BMI(tt.height, tt.weight)
			if tt.expected == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, *tt.expected, *got, 0.001)
		})
	}
}

func TestBMICategory(t *testing.T) {
	tests := []struct {
		name     string
		bmi      *float64
		expected string
	}{
		{"missing", nil, BMIUnknown},
		{"underweight", floatPtr(17.0), BMIUnderweight},
		{"lower normal boundary", floatPtr(18.5), BMINormal},
		{"normal", floatPtr(22.0), BMINormal},
		{"25.0 is overweight, not normal", floatPtr(25.0), BMIOverweight},
		{"upper overweight", floatPtr(29.9), BMIOverweight},
		{"obese boundary", floatPtr(30.0), BMIObese},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BMICategory(tt.bmi))
		})
	}
}

func TestBPCategory(t *testing.T) {
	tests := []struct {
		name      string
		systolic  int
		diastolic int
		expected  string
	}{
		{"normal", 118, 78, BPNormal},
		{"elevated", 125, 78, BPElevated},
		{"stage 1", 135, 85, BPStage1},
		{"normal boundary systolic", 120, 70, BPElevated},
		{"stage 1 via diastolic alone", 150, 85, BPStage1},
		// The OR rule classifies very high systolic with low diastolic as
		// Stage 2 rather than Crisis.
		{"stage 2 via low diastolic at 190 systolic", 190, 70, BPStage2},
		{"stage 2", 170, 110, BPStage2},
		{"crisis", 200, 130, BPCrisis},
		{"crisis boundary", 180, 120, BPCrisis},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BPCategory(tt.systolic, tt.diastolic))
		})
	}
}
