package orrery

import (
	"fmt"
	"math"
	"os"

	kitlog "github.com/go-kit/kit/log"
)

const (
	// MaxTickDt bounds the physical time of a single Update call so frame
	// hitches in the host cannot make the integrator take a huge step.
	MaxTickDt = 0.05
	// DefaultSubsteps is the default substep count per Update. Substepping is
	// for stability of stiff close orbits, not for smoothness.
	DefaultSubsteps = 200
)

/* Handles the live N-body state and its tick-driven propagation. */

// System owns the body registry and every tuning knob of the simulation. It
// replaces any notion of a global physics singleton: every component operates
// on an explicit *System.
type System struct {
	bodies []Body
	sc     BodyHandle // the one spacecraft, NoBody until registered

	timeScale   float64
	substeps    int
	dragFactor  float64 // coarse per-substep damping knob, active when < 1
	maxSpeed    float64 // spacecraft speed clamp, 0 disables
	autoResolve bool    // run collision response inside Update

	perts        Perturbations
	pertsEnabled bool

	logger kitlog.Logger

	collided bool // edge detector for collision logging
}

// NewSystem returns an empty system with default integrator tuning and a
// logfmt logger on stdout.
func NewSystem() *System {
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "subsys", "physics")
	return &System{
		sc:          NoBody,
		timeScale:   1.0,
		substeps:    DefaultSubsteps,
		dragFactor:  1.0,
		autoResolve: true,
		perts:       NewPerturbations(),
		logger:      klog,
	}
}

// SetLogger replaces the system logger. A nil logger silences the system.
func (sys *System) SetLogger(l kitlog.Logger) {
	if l == nil {
		l = kitlog.NewNopLogger()
	}
	sys.logger = l
}

// AddBody registers a new body and returns its handle. Bodies are never
// removed for the lifetime of the system.
func (sys *System) AddBody(c BodyConfig) (BodyHandle, error) {
	if err := c.validate(); err != nil {
		return NoBody, err
	}
	sys.bodies = append(sys.bodies, newBody(c))
	return BodyHandle(len(sys.bodies) - 1), nil
}

// SetSpacecraft registers the spacecraft body. There may be only one; a
// second call replaces which body owns the spacecraft behaviors only if the
// previous one was never registered.
func (sys *System) SetSpacecraft(c BodyConfig) (BodyHandle, error) {
	if sys.sc != NoBody {
		return NoBody, fmt.Errorf("spacecraft already registered as body %d", sys.sc)
	}
	c.Kind = Spacecraft
	h, err := sys.AddBody(c)
	if err != nil {
		return NoBody, err
	}
	sys.sc = h
	return h, nil
}

// Spacecraft returns the spacecraft handle, or NoBody.
func (sys *System) Spacecraft() BodyHandle {
	return sys.sc
}

// NumBodies returns the registry size.
func (sys *System) NumBodies() int {
	return len(sys.bodies)
}

func (sys *System) valid(h BodyHandle) bool {
	return h >= 0 && int(h) < len(sys.bodies)
}

// BodyAt returns a copy of the body at the given handle.
func (sys *System) BodyAt(h BodyHandle) (Body, error) {
	if !sys.valid(h) {
		return Body{}, fmt.Errorf("no body at handle %d", h)
	}
	return sys.bodies[h], nil
}

// Position returns the position of the body at h, or the zero vector for an
// invalid handle.
func (sys *System) Position(h BodyHandle) Vector3 {
	if !sys.valid(h) {
		return Vector3{}
	}
	return sys.bodies[h].Position
}

// Velocity returns the velocity of the body at h, or the zero vector for an
// invalid handle.
func (sys *System) Velocity(h BodyHandle) Vector3 {
	if !sys.valid(h) {
		return Vector3{}
	}
	return sys.bodies[h].Velocity
}

// SetBodyState overwrites a body's position and velocity. This is the seam
// used by host-side thrust and state restoration between ticks; it must not
// be called while an Update is in progress. Fixed bodies are immutable.
func (sys *System) SetBodyState(h BodyHandle, pos, vel Vector3) error {
	if !sys.valid(h) {
		return fmt.Errorf("no body at handle %d", h)
	}
	if sys.bodies[h].Fixed {
		return fmt.Errorf("body %q is fixed", sys.bodies[h].Name)
	}
	if !pos.Valid() || !vel.Valid() {
		return fmt.Errorf("non-finite state for body %q", sys.bodies[h].Name)
	}
	sys.bodies[h].Position = pos
	sys.bodies[h].Velocity = vel
	return nil
}

// ApplyImpulse adds an instantaneous Δv along the given direction to the
// spacecraft. A nil direction or missing spacecraft is a no-op.
func (sys *System) ApplyImpulse(direction Vector3, magnitude float64) {
	if sys.sc == NoBody {
		return
	}
	u := direction.Unit()
	if u.IsZero() {
		return
	}
	b := &sys.bodies[sys.sc]
	b.Velocity = b.Velocity.Add(u.Scaled(magnitude))
}

// SetTimeScale tunes the simulation speed multiplier. Non-positive or
// non-finite values are ignored.
func (sys *System) SetTimeScale(scale float64) {
	if math.IsNaN(scale) || scale <= 0 {
		return
	}
	sys.timeScale = scale
}

// TimeScale returns the current time scale.
func (sys *System) TimeScale() float64 {
	return sys.timeScale
}

// SetSubsteps tunes the substep count; out of range values fall back to the
// default rather than being rejected.
func (sys *System) SetSubsteps(n int) {
	if n < 1 || n > 100000 {
		n = DefaultSubsteps
	}
	sys.substeps = n
}

// SetDragFactor configures the coarse velocity damping knob. Values outside
// (0, 1] disable it. This is independent of the atmospheric drag model.
func (sys *System) SetDragFactor(f float64) {
	if math.IsNaN(f) || f <= 0 || f > 1 {
		f = 1.0
	}
	sys.dragFactor = f
}

// SetMaxSpeed clamps the spacecraft speed each substep; 0 disables the clamp.
func (sys *System) SetMaxSpeed(v float64) {
	if math.IsNaN(v) || v < 0 {
		v = 0
	}
	sys.maxSpeed = v
}

// SetAutoResolveCollisions controls whether Update applies the collision
// response itself. When disabled the host drives DetectCollision and
// ResolveCollision explicitly.
func (sys *System) SetAutoResolveCollisions(enabled bool) {
	sys.autoResolve = enabled
}

// SetPerturbations replaces the perturbation configuration.
func (sys *System) SetPerturbations(p Perturbations) {
	sys.perts = p
}

// SetPerturbationReferences wires the Earth, Sun and Moon reference handles
// used by the perturbation terms. NoBody disables the terms needing that
// reference.
func (sys *System) SetPerturbationReferences(earth, sun, moon BodyHandle) {
	sys.perts.Earth = earth
	sys.perts.Sun = sun
	sys.perts.Moon = moon
}

// SetPerturbationsEnabled toggles the whole perturbation model.
func (sys *System) SetPerturbationsEnabled(enabled bool) {
	sys.pertsEnabled = enabled
}

// Speed returns the spacecraft speed, or zero without a spacecraft.
func (sys *System) Speed() float64 {
	if sys.sc == NoBody {
		return 0
	}
	return sys.bodies[sys.sc].Velocity.Norm()
}

// NearestBody returns the handle of the body closest to the spacecraft and
// the center-to-center distance. Returns NoBody without a spacecraft or when
// the registry holds nothing else.
func (sys *System) NearestBody() (BodyHandle, float64) {
	if sys.sc == NoBody {
		return NoBody, 0
	}
	scPos := sys.bodies[sys.sc].Position
	nearest := NoBody
	best := math.Inf(1)
	for i := range sys.bodies {
		if BodyHandle(i) == sys.sc {
			continue
		}
		if d := sys.bodies[i].Position.Sub(scPos).Norm(); d < best {
			best = d
			nearest = BodyHandle(i)
		}
	}
	if nearest == NoBody {
		return NoBody, 0
	}
	return nearest, best
}

// RelativeVelocity returns the spacecraft velocity relative to the body at h.
func (sys *System) RelativeVelocity(h BodyHandle) Vector3 {
	if sys.sc == NoBody || !sys.valid(h) {
		return Vector3{}
	}
	return sys.bodies[sys.sc].Velocity.Sub(sys.bodies[h].Velocity)
}

// SurfaceDistance returns the spacecraft's distance to the surface of the
// body at h (negative when penetrating).
func (sys *System) SurfaceDistance(h BodyHandle) float64 {
	if sys.sc == NoBody || !sys.valid(h) {
		return 0
	}
	sc := sys.bodies[sys.sc]
	b := sys.bodies[h]
	return b.Position.Sub(sc.Position).Norm() - b.Radius - sc.Radius
}

// Snapshot returns an independent deep copy of the registry. Mutating the
// copy never affects the live system.
func (sys *System) Snapshot() []Body {
	out := make([]Body, len(sys.bodies))
	copy(out, sys.bodies)
	return out
}

// TotalEnergy returns the total mechanical energy (kinetic + pairwise
// potential) of the registry, a cheap drift diagnostic.
func (sys *System) TotalEnergy() float64 {
	var e float64
	for i := range sys.bodies {
		bi := &sys.bodies[i]
		e += 0.5 * bi.Mass * bi.Velocity.Dot(bi.Velocity)
		for j := i + 1; j < len(sys.bodies); j++ {
			bj := &sys.bodies[j]
			d := bj.Position.Sub(bi.Position).Norm()
			if d < 1e-12 {
				continue
			}
			e -= G * bi.Mass * bj.Mass / d
		}
	}
	return e
}
