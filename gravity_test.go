package orrery

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func TestSofteningFloor(t *testing.T) {
	// Two bodies closer than the sum of radii: the magnitude must equal the
	// value at the floor distance, not the singular value.
	bodies := []Body{
		{Name: "a", Mass: 5, Radius: 2},
		{Name: "b", Mass: 3, Radius: 1.5, Position: Vector3{2, 0, 0}},
	}
	accumulateGravity(bodies)
	floor := 3.5
	want := G * 3 / (floor * floor)
	if got := bodies[0].accel.Norm(); !scalar.EqualWithinAbs(got, want, 1e-12) {
		t.Fatalf("floored accel = %g, want %g", got, want)
	}
	// Direction still follows the raw separation vector.
	if bodies[0].accel.X <= 0 || bodies[0].accel.Y != 0 {
		t.Fatalf("accel direction wrong: %s", bodies[0].accel)
	}
}

func TestUnitSeparationFloor(t *testing.T) {
	// Small bodies below unit distance use the 1.0 floor.
	bodies := []Body{
		{Name: "a", Mass: 1, Radius: 0.01},
		{Name: "b", Mass: 1, Radius: 0.01, Position: Vector3{0.5, 0, 0}},
	}
	accumulateGravity(bodies)
	if got := bodies[0].accel.Norm(); !scalar.EqualWithinAbs(got, G*1.0, 1e-12) {
		t.Fatalf("unit floor accel = %g, want %g", got, G*1.0)
	}
}

func TestFixedBodiesAreSourcesNotTargets(t *testing.T) {
	bodies := []Body{
		{Name: "star", Mass: 1000, Radius: 1, Fixed: true},
		{Name: "planet", Mass: 1, Radius: 0.5, Position: Vector3{100, 0, 0}},
	}
	accumulateGravity(bodies)
	if !bodies[0].accel.IsZero() {
		t.Fatalf("fixed body accelerated: %s", bodies[0].accel)
	}
	want := G * 1000 / (100 * 100)
	if got := bodies[1].accel.Norm(); !scalar.EqualWithinAbs(got, want, 1e-12) {
		t.Fatalf("planet accel = %g, want %g", got, want)
	}
	if bodies[1].accel.X >= 0 {
		t.Fatal("planet must accelerate toward the star")
	}
}

func TestGravityDeterminism(t *testing.T) {
	mk := func() []Body {
		return []Body{
			{Name: "a", Mass: 10, Radius: 1},
			{Name: "b", Mass: 20, Radius: 1, Position: Vector3{17, 3, -4}},
			{Name: "c", Mass: 5, Radius: 1, Position: Vector3{-9, 12, 8}},
			{Name: "d", Mass: 1e-20, Radius: 0.01, Position: Vector3{2, 2, 2}},
		}
	}
	x, y := mk(), mk()
	accumulateGravity(x)
	accumulateGravity(y)
	for i := range x {
		if x[i].accel != y[i].accel {
			t.Fatalf("body %d accel differs between identical runs", i)
		}
	}
}

func TestAccelResetEachPass(t *testing.T) {
	bodies := []Body{
		{Name: "a", Mass: 1, Radius: 1},
		{Name: "b", Mass: 1, Radius: 1, Position: Vector3{10, 0, 0}},
	}
	accumulateGravity(bodies)
	first := bodies[0].accel
	accumulateGravity(bodies)
	if bodies[0].accel != first {
		t.Fatal("accumulator must be reset, not summed across passes")
	}
}
