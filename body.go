package orrery

import (
	"fmt"
	"math"
)

// BodyKind classifies a simulated body. The kind is informational except for
// the spacecraft-only behaviors (drag knob, speed clamp, perturbations,
// collision response), which key off the spacecraft handle rather than the
// kind itself.
type BodyKind uint8

// The supported body kinds.
const (
	Star BodyKind = iota + 1
	Planet
	Moon
	Comet
	Spacecraft
)

func (k BodyKind) String() string {
	switch k {
	case Star:
		return "star"
	case Planet:
		return "planet"
	case Moon:
		return "moon"
	case Comet:
		return "comet"
	case Spacecraft:
		return "spacecraft"
	}
	panic("cannot stringify unknown body kind")
}

// BodyHandle indexes a body in a System's registry. NoBody marks the absence
// of a body (e.g. no spacecraft registered, no perturbation reference set).
type BodyHandle int

// NoBody is the nil BodyHandle.
const NoBody BodyHandle = -1

// Body is the only persistent entity of the simulation. Position and Velocity
// are in simulation units; accel is ephemeral and recomputed every substep.
type Body struct {
	Name     string
	Position Vector3
	Velocity Vector3
	Mass     float64 // Earth masses
	Radius   float64 // simulation distance units
	Kind     BodyKind
	Fixed    bool // fixed bodies exert gravity but are never integrated

	accel Vector3
}

// BodyConfig carries the construction-time state of a body.
type BodyConfig struct {
	Name     string
	Position Vector3
	Velocity Vector3
	Mass     float64
	Radius   float64
	Kind     BodyKind
	Fixed    bool
}

// validate rejects malformed configuration up front so NaNs cannot propagate
// into a live simulation.
func (c BodyConfig) validate() error {
	if math.IsNaN(c.Mass) || c.Mass <= 0 {
		return fmt.Errorf("body %q: mass must be positive, got %v", c.Name, c.Mass)
	}
	if math.IsNaN(c.Radius) || c.Radius <= 0 {
		return fmt.Errorf("body %q: radius must be positive, got %v", c.Name, c.Radius)
	}
	if !c.Position.Valid() || !c.Velocity.Valid() {
		return fmt.Errorf("body %q: non-finite initial state", c.Name)
	}
	if c.Kind < Star || c.Kind > Spacecraft {
		return fmt.Errorf("body %q: unknown kind %d", c.Name, c.Kind)
	}
	return nil
}

func newBody(c BodyConfig) Body {
	return Body{
		Name:     c.Name,
		Position: c.Position,
		Velocity: c.Velocity,
		Mass:     c.Mass,
		Radius:   c.Radius,
		Kind:     c.Kind,
		Fixed:    c.Fixed,
	}
}

func (b Body) String() string {
	return fmt.Sprintf("%s %q m=%g r=%g", b.Kind, b.Name, b.Mass, b.Radius)
}
