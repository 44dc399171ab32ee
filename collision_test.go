package orrery

import (
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

func collisionSystem(t *testing.T) (*System, BodyHandle, BodyHandle) {
	t.Helper()
	sys := NewSystem()
	sys.SetLogger(nil)
	planet, err := sys.AddBody(BodyConfig{Name: "planet", Mass: 1, Radius: 1, Kind: Planet})
	if err != nil {
		t.Fatalf("planet: %s", err)
	}
	sc, err := sys.SetSpacecraft(BodyConfig{Name: "sc", Mass: 1e-20, Radius: 0.1,
		Position: Vector3{1.05, 0, 0}, Velocity: Vector3{-0.5, 0.2, 0}})
	if err != nil {
		t.Fatalf("spacecraft: %s", err)
	}
	return sys, planet, sc
}

func TestDetectCollision(t *testing.T) {
	sys, planet, _ := collisionSystem(t)
	ev, hit := sys.DetectCollision()
	if !hit {
		t.Fatal("overlap not detected")
	}
	if ev.Body != planet {
		t.Fatalf("collided with body %d, want %d", ev.Body, planet)
	}
	if !scalar.EqualWithinAbs(ev.Depth, 0.05, 1e-12) {
		t.Fatalf("penetration depth = %f", ev.Depth)
	}
	if !scalar.EqualWithinAbs(ev.Normal.X, 1, 1e-12) {
		t.Fatalf("outward normal = %s", ev.Normal)
	}
}

func TestDetectCollisionNoSpacecraft(t *testing.T) {
	sys := NewSystem()
	sys.SetLogger(nil)
	if _, err := sys.AddBody(BodyConfig{Name: "planet", Mass: 1, Radius: 1, Kind: Planet}); err != nil {
		t.Fatalf("planet: %s", err)
	}
	if _, hit := sys.DetectCollision(); hit {
		t.Fatal("collision without a spacecraft")
	}
}

func TestResolveCollision(t *testing.T) {
	sys, planet, sc := collisionSystem(t)
	ev, _ := sys.DetectCollision()
	sys.ResolveCollision(ev)

	// Separated to at least the sum of radii.
	d := sys.Position(sc).Sub(sys.Position(planet)).Norm()
	if d < 1.1-1e-9 {
		t.Fatalf("still penetrating after resolve: d=%f", d)
	}
	// The approaching normal component is reflected outward and damped.
	v := sys.Velocity(sc)
	if vn := v.Dot(ev.Normal); vn < 0 {
		t.Fatalf("still approaching after resolve: vn=%f", vn)
	}
	want := Vector3{0.25 * 0.6, 0.2 * 0.6, 0}
	if !scalar.EqualWithinAbs(v.X, want.X, 1e-12) || !scalar.EqualWithinAbs(v.Y, want.Y, 1e-12) {
		t.Fatalf("post-resolve velocity = %s, want %s", v, want)
	}
	// The planet is never pushed.
	if !sys.Position(planet).IsZero() {
		t.Fatal("collision response moved the other body")
	}
}

func TestResolveSeparatingLeavesVelocity(t *testing.T) {
	sys, _, sc := collisionSystem(t)
	// Already separating: push-out happens, velocity untouched.
	sys.bodies[sc].Velocity = Vector3{0.3, 0, 0}
	ev, _ := sys.DetectCollision()
	sys.ResolveCollision(ev)
	if got := sys.Velocity(sc); got != (Vector3{0.3, 0, 0}) {
		t.Fatalf("separating velocity changed: %s", got)
	}
}

func TestUpdateAutoResolveToggle(t *testing.T) {
	sys, _, sc := collisionSystem(t)
	sys.SetAutoResolveCollisions(false)
	pos := sys.Position(sc)
	sys.Update(1e-9)
	// The overlap persists when the host owns the response; only the tiny
	// integration drift moved the spacecraft.
	if d := sys.Position(sc).Sub(pos).Norm(); d > 1e-6 {
		t.Fatalf("auto-resolve disabled but spacecraft jumped %g", d)
	}
	if _, hit := sys.DetectCollision(); !hit {
		t.Fatal("collision should persist without auto-resolve")
	}
}
