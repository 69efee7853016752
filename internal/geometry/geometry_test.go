package geometry

import (
	"math"
	"strings"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestValueToAngleBounds(t *testing.T) {
	if got := ValueToAngle(0, 0, 100); got != -90 {
		t.Errorf("ValueToAngle(min): got %f, want -90", got)
	}
	if got := ValueToAngle(100, 0, 100); got != 90 {
		t.Errorf("ValueToAngle(max): got %f, want 90", got)
	}
	if got := ValueToAngle(42, 0, 100); !near(got, -14.4) {
		t.Errorf("ValueToAngle(42): got %f, want -14.4", got)
	}
}

func TestValueToAngleClamps(t *testing.T) {
	tests := []struct {
		value, min, max float64
		want            float64
	}{
		{-10, 0, 100, -90},
		{150, 0, 100, 90},
		{-1e9, -50, 50, -90},
		{1e9, -50, 50, 90},
		{5, 10, 20, -90},
	}
	for _, tt := range tests {
		got := ValueToAngle(tt.value, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("ValueToAngle(%v, %v, %v) = %v, want %v", tt.value, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestValueToAngleMonotonic(t *testing.T) {
	prev := ValueToAngle(-20, -20, 35)
	for v := -20.0; v <= 35; v += 0.25 {
		a := ValueToAngle(v, -20, 35)
		if a < prev {
			t.Fatalf("angle decreased at %v: %v < %v", v, a, prev)
		}
		prev = a
	}
}

func TestValueToAngleDegenerateDomain(t *testing.T) {
	for _, v := range []float64{-5, 10, 25} {
		got := ValueToAngle(v, 10, 10)
		if got != MinAngle {
			t.Errorf("ValueToAngle(%v, 10, 10) = %v, want %v", v, got, MinAngle)
		}
		if math.IsNaN(got) {
			t.Errorf("ValueToAngle(%v, 10, 10) is NaN", v)
		}
	}
	if got := ValueToAngle(math.NaN(), 0, 100); got != MinAngle {
		t.Errorf("ValueToAngle(NaN): got %v, want %v", got, MinAngle)
	}
}

func TestAngleRoundTrip(t *testing.T) {
	tests := []struct{ min, max, value float64 }{
		{0, 100, 42},
		{-40, 60, -12.5},
		{0, 1, 0.333},
		{1000, 5000, 4999.9},
		{-10, -2, -3},
	}
	for _, tt := range tests {
		a := ValueToAngle(tt.value, tt.min, tt.max)
		got := AngleToValue(a, tt.min, tt.max)
		if math.Abs(got-tt.value) > 1e-9*math.Max(1, math.Abs(tt.value)) {
			t.Errorf("round trip %v in [%v,%v]: got %v", tt.value, tt.min, tt.max, got)
		}
	}
}

func TestPolarToCartesian(t *testing.T) {
	p := PolarToCartesian(120, 140, 90, 0)
	if !near(p.X, 120) || !near(p.Y, 50) {
		t.Errorf("angle 0: got (%f, %f), want (120, 50)", p.X, p.Y)
	}

	p = PolarToCartesian(120, 140, 90, 90)
	if !near(p.X, 210) || !near(p.Y, 140) {
		t.Errorf("angle 90: got (%f, %f), want (210, 140)", p.X, p.Y)
	}

	p = PolarToCartesian(120, 140, 90, -90)
	if !near(p.X, 30) || !near(p.Y, 140) {
		t.Errorf("angle -90: got (%f, %f), want (30, 140)", p.X, p.Y)
	}
}

func TestDescribeArc(t *testing.T) {
	d := DescribeArc(120, 140, 90, -90, 90)
	fields := strings.Fields(d)
	if len(fields) != 11 {
		t.Fatalf("expected 11 path tokens, got %d: %q", len(fields), d)
	}
	if fields[0] != "M" || fields[3] != "A" {
		t.Errorf("unexpected commands in %q", d)
	}
	// path starts at the end angle (right) and finishes at the start angle (left)
	if fields[1] != "210" || fields[2] != "140" {
		t.Errorf("start point: got (%s, %s), want (210, 140)", fields[1], fields[2])
	}
	if fields[9] != "30" || fields[10] != "140" {
		t.Errorf("end point: got (%s, %s), want (30, 140)", fields[9], fields[10])
	}
	if fields[7] != "0" {
		t.Errorf("large-arc flag for 180°: got %s, want 0", fields[7])
	}
	if fields[8] != "0" {
		t.Errorf("sweep flag: got %s, want 0", fields[8])
	}
}

func TestDescribeArcLargeFlag(t *testing.T) {
	d := DescribeArc(0, 0, 10, -100, 100)
	if f := strings.Fields(d)[7]; f != "1" {
		t.Errorf("large-arc flag for 200°: got %s, want 1", f)
	}
	d = DescribeArc(0, 0, 10, 100, -100)
	if f := strings.Fields(d)[7]; f != "1" {
		t.Errorf("large-arc flag for reversed 200°: got %s, want 1", f)
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{12.5, "12.5"},
		{-3, "-3"},
	}
	for _, tt := range tests {
		if got := FormatFloat(tt.in); got != tt.want {
			t.Errorf("FormatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
