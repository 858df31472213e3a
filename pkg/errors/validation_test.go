package errors

import (
	"math"
	"testing"
)

func TestValidateDimensions(t *testing.T) {
	tests := []struct {
		name    string
		w, h    float64
		wantErr bool
	}{
		{"valid", 500, 500, false},
		{"fractional", 0.5, 1.25, false},
		{"zero width", 0, 10, true},
		{"negative height", 10, -1, true},
		{"nan", math.NaN(), 10, true},
		{"inf", 10, math.Inf(1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDimensions(tt.w, tt.h)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDimensions(%v, %v) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDimensions) {
				t.Errorf("error code = %v, want %v", GetCode(err), ErrCodeInvalidDimensions)
			}
		})
	}
}

func TestValidateFontSize(t *testing.T) {
	for _, size := range []float64{1, 12, 0.25} {
		if err := ValidateFontSize(size); err != nil {
			t.Errorf("ValidateFontSize(%v) = %v, want nil", size, err)
		}
	}
	for _, size := range []float64{0, -3, math.NaN()} {
		if err := ValidateFontSize(size); err == nil {
			t.Errorf("ValidateFontSize(%v) = nil, want error", size)
		}
	}
}

func TestValidateFontFamily(t *testing.T) {
	tests := []struct {
		family  string
		wantErr bool
	}{
		{"Go", false},
		{"Go Bold", false},
		{"", true},
		{"   ", true},
		{"Go\x00", true},
		{"Go, sans-serif", true},
	}

	for _, tt := range tests {
		t.Run(tt.family, func(t *testing.T) {
			err := ValidateFontFamily(tt.family)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFontFamily(%q) error = %v, wantErr %v", tt.family, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"#000000", false},
		{"#fff", false},
		{"#A0b1C2", false},
		{"000000", true},
		{"#12345", true},
		{"red", true},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			err := ValidateHexColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) error = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
		})
	}
}
