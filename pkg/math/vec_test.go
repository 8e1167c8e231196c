package math

import (
	"testing"
)

func TestVec3Add(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{3, 4, 5}
	got := a.Add(b)
	want := Vec3{4, 6, 8}
	if got != want {
		t.Errorf("Vec3.Add() = %v, want %v", got, want)
	}
}

func TestVec3Length(t *testing.T) {
	v := Vec3{3, 4, 0}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec3.Length() = %v, want %v", got, want)
	}
}

func TestVec3Normalize(t *testing.T) {
	v := Vec3{3, 4, 12}
	n := v.Normalize()
	l := n.Length()
	if l < 0.999 || l > 1.001 {
		t.Errorf("Vec3.Normalize().Length() = %v, want ~1", l)
	}
	if (Vec3{}).Normalize() != (Vec3{}) {
		t.Error("zero vector should normalize to zero")
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 0, 0}
	b := Vec3{2, 4, 8}
	if got := a.Lerp(b, 0.5); got != (Vec3{1, 2, 4}) {
		t.Errorf("Vec3.Lerp(0.5) = %v, want (1, 2, 4)", got)
	}
	if got := a.Lerp(b, 1); got != b {
		t.Errorf("Vec3.Lerp(1) = %v, want %v", got, b)
	}
}

func TestVec4XYZ(t *testing.T) {
	v := Vec4{1, 2, 3, 4}
	if got := v.XYZ(); got != (Vec3{1, 2, 3}) {
		t.Errorf("Vec4.XYZ() = %v, want (1, 2, 3)", got)
	}
	if got := v.XYZ().Vec4(4); got != v {
		t.Errorf("round trip through Vec3 = %v, want %v", got, v)
	}
}
