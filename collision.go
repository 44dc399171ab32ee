package orrery

const (
	// collisionRestitution reflects the approaching component of the
	// spacecraft velocity on impact.
	collisionRestitution = 1.5
	// collisionDamping scales the whole post-reflection velocity, so every
	// bounce loses energy.
	collisionDamping = 0.6
)

// CollisionEvent reports a sphere/sphere overlap between the spacecraft and
// another body.
type CollisionEvent struct {
	Body   BodyHandle // the body hit
	Depth  float64    // penetration depth, sum of radii minus distance
	Normal Vector3    // outward unit normal, from the body toward the spacecraft
}

// DetectCollision checks the spacecraft against every other body and returns
// the deepest overlap. The second return is false without a spacecraft or
// when nothing overlaps; detection never mutates state.
func (sys *System) DetectCollision() (CollisionEvent, bool) {
	if sys.sc == NoBody {
		return CollisionEvent{}, false
	}
	sc := &sys.bodies[sys.sc]
	var ev CollisionEvent
	found := false
	for i := range sys.bodies {
		if BodyHandle(i) == sys.sc {
			continue
		}
		b := &sys.bodies[i]
		sep := sc.Position.Sub(b.Position)
		d := sep.Norm()
		depth := sc.Radius + b.Radius - d
		if depth <= 0 {
			continue
		}
		if !found || depth > ev.Depth {
			normal := sep.Unit()
			if normal.IsZero() {
				// Dead center overlap; push up by convention.
				normal = Vector3{0, 0, 1}
			}
			ev = CollisionEvent{Body: BodyHandle(i), Depth: depth, Normal: normal}
			found = true
		}
	}
	return ev, found
}

// ResolveCollision applies the elastic-with-damping response for a detected
// overlap: push the spacecraft out along the outward normal, reflect the
// approaching normal velocity component, then damp the whole velocity. The
// other body is never pushed. This is the only state mutation outside the
// substep loop.
func (sys *System) ResolveCollision(ev CollisionEvent) {
	if sys.sc == NoBody || !sys.valid(ev.Body) {
		return
	}
	sc := &sys.bodies[sys.sc]
	sc.Position = sc.Position.Add(ev.Normal.Scaled(ev.Depth))
	if vn := sc.Velocity.Dot(ev.Normal); vn < 0 {
		sc.Velocity = sc.Velocity.Sub(ev.Normal.Scaled(vn * collisionRestitution))
		sc.Velocity = sc.Velocity.Scaled(collisionDamping)
	}
}
