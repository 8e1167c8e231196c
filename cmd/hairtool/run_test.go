package main

import (
	"testing"

	"github.com/VincentWang001/hairgl/pkg/math"
)

func TestParseVec3(t *testing.T) {
	tests := []struct {
		in      string
		want    math.Vec3
		wantErr bool
	}{
		{"1,0,0", math.Vec3{X: 1}, false},
		{" 0.5, -2 ,3", math.Vec3{X: 0.5, Y: -2, Z: 3}, false},
		{"1,2", math.Vec3{}, true},
		{"a,b,c", math.Vec3{}, true},
	}

	for _, tt := range tests {
		got, err := parseVec3(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("%q: expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}
