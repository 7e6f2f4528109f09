// SPDX-License-Identifier: EPL-2.0

package utils

import "testing"

func TestFloat32ToInt16(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float32
		want int16
	}{
		{"zero", 0.0, 0},
		{"positive full scale", 1.0, 32767},
		{"negative full scale", -1.0, -32767},
		{"half scale", 0.5, 16383},
		{"clamps above 1", 2.5, 32767},
		{"clamps below -1", -2.5, -32767},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToInt16(tt.in); got != tt.want {
				t.Errorf("Float32ToInt16(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFloat32ToInt32(t *testing.T) {
	t.Parallel()

	if got := Float32ToInt32(0); got != 0 {
		t.Errorf("Float32ToInt32(0) = %d, want 0", got)
	}
	if got := Float32ToInt32(1); got != 2147483647 {
		t.Errorf("Float32ToInt32(1) = %d, want 2147483647", got)
	}
	if got := Float32ToInt32(-3); got != -2147483647 {
		t.Errorf("Float32ToInt32(-3) = %d, want -2147483647", got)
	}
}

func TestFloat32ToUint8(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   float32
		want uint8
	}{
		{"silence maps to midpoint", 0.0, 127},
		{"positive full scale", 1.0, 255},
		{"negative full scale", -1.0, 0},
		{"clamps above 1", 9.0, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Float32ToUint8(tt.in); got != tt.want {
				t.Errorf("Float32ToUint8(%v) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}
