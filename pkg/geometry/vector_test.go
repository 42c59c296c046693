package geometry

import (
	"math"
	"testing"
)

func TestVector2Add(t *testing.T) {
	v1 := NewVector2(1, 2)
	v2 := NewVector2(4, 5)
	result := v1.Add(v2)

	expected := NewVector2(5, 7)
	if result != expected {
		t.Errorf("Add failed: expected %v, got %v", expected, result)
	}
}

func TestVector2Sub(t *testing.T) {
	v1 := NewVector2(5, 7)
	v2 := NewVector2(1, 2)
	result := v1.Sub(v2)

	expected := NewVector2(4, 5)
	if result != expected {
		t.Errorf("Sub failed: expected %v, got %v", expected, result)
	}
}

func TestVector2Length(t *testing.T) {
	v := NewVector2(3, 4)
	length := v.Length()

	expected := 5.0
	if math.Abs(length-expected) > 1e-10 {
		t.Errorf("Length failed: expected %v, got %v", expected, length)
	}
}

func TestVector2Distance(t *testing.T) {
	v1 := NewVector2(1, 1)
	v2 := NewVector2(4, 5)
	distance := v1.Distance(v2)

	expected := 5.0
	if math.Abs(distance-expected) > 1e-10 {
		t.Errorf("Distance failed: expected %v, got %v", expected, distance)
	}
}

func TestVector2Angle(t *testing.T) {
	if a := NewVector2(0, 2).Angle(); math.Abs(a-math.Pi/2) > 1e-12 {
		t.Errorf("Angle failed: expected %v, got %v", math.Pi/2, a)
	}
}

func TestVector2IsFinite(t *testing.T) {
	if !NewVector2(1, -1).IsFinite() {
		t.Error("expected finite vector")
	}
	if NewVector2(math.NaN(), 0).IsFinite() {
		t.Error("NaN coordinate reported as finite")
	}
	if NewVector2(0, math.Inf(-1)).IsFinite() {
		t.Error("infinite coordinate reported as finite")
	}
}

func TestVector3Component(t *testing.T) {
	v := NewVector3(1, 2, 3)
	for axis, expected := range map[Axis]float64{AxisX: 1, AxisY: 2, AxisZ: 3} {
		if got := v.Component(axis); got != expected {
			t.Errorf("Component(%v) failed: expected %v, got %v", axis, expected, got)
		}
	}
}
