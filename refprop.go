package orrery

import "github.com/ChristopherRabotin/ode"

/* RK4 reference propagation for a single body about a fixed central mass.
The substepped Euler loop trades accuracy for per-tick cost; this gives the
tests an independent high-order yardstick to measure that trade against. */

type twoBodyRef struct {
	μ        float64
	state    []float64 // rx ry rz vx vy vz
	duration float64
}

// GetState implements the ode.Integrable interface.
func (tb *twoBodyRef) GetState() []float64 {
	return tb.state
}

// SetState implements the ode.Integrable interface.
func (tb *twoBodyRef) SetState(t float64, s []float64) {
	tb.state = s
}

// Stop implements the ode.Integrable interface.
func (tb *twoBodyRef) Stop(t float64) bool {
	return t >= tb.duration
}

// Func implements the ode.Integrable interface. Same softening floor as the
// live gravity solver, with zero radii.
func (tb *twoBodyRef) Func(t float64, f []float64) []float64 {
	r := vecFromSlice(f)
	d := r.Norm()
	if d < 1.0 {
		d = 1.0
	}
	a := r.Scaled(-tb.μ / (d * d * d))
	return []float64{f[3], f[4], f[5], a.X, a.Y, a.Z}
}

// ReferenceTwoBody integrates a point mass around a fixed body of
// gravitational parameter μ at the origin, with RK4 at the given step size,
// and returns the final position and velocity.
func ReferenceTwoBody(μ float64, pos, vel Vector3, duration, step float64) (Vector3, Vector3) {
	tb := &twoBodyRef{
		μ:        μ,
		state:    []float64{pos.X, pos.Y, pos.Z, vel.X, vel.Y, vel.Z},
		duration: duration,
	}
	ode.NewRK4(0, step, tb).Solve()
	return vecFromSlice(tb.state[:3]), vecFromSlice(tb.state[3:])
}
