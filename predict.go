package orrery

/* Read-only trajectory prediction for maneuver planning. Both modes are pure
functions of the live registry plus their parameters: they operate on copies
and never write back. */

// Prediction is the output of the full planning mode.
type Prediction struct {
	Points       []Vector3  // spacecraft positions, one per recording interval
	RefPoints    []Vector3  // reference body positions at the same instants
	Collided     bool       // whether the preview ended on a predicted impact
	CollidedWith BodyHandle // body hit, NoBody otherwise
}

// PredictSimplified forward-integrates only the spacecraft against the
// current, frozen positions of every other body and returns one position per
// step. Intended for a cheap continuously refreshed overlay; stops early on a
// predicted collision.
func (sys *System) PredictSimplified(steps int, stepSize float64) []Vector3 {
	if sys.sc == NoBody || steps <= 0 || stepSize <= 0 {
		return nil
	}
	probe := sys.bodies[sys.sc] // value copy
	points := make([]Vector3, 0, steps)
	for s := 0; s < steps; s++ {
		var acc Vector3
		for i := range sys.bodies {
			if BodyHandle(i) == sys.sc {
				continue
			}
			acc = acc.Add(gravityFrom(&probe, &sys.bodies[i]))
		}
		probe.Velocity = probe.Velocity.Add(acc.Scaled(stepSize))
		probe.Position = probe.Position.Add(probe.Velocity.Scaled(stepSize))
		points = append(points, probe.Position)
		if collidesAny(sys.bodies, sys.sc, &probe) {
			break
		}
	}
	return points
}

// PredictFull deep-copies the whole registry, optionally applies the
// candidate Δv to the cloned spacecraft, and forward-integrates everything
// with the same gravity math as the live loop (no perturbations, no collision
// response). Positions of the spacecraft and the reference body ref are
// recorded every recordEvery steps. Stops early on a predicted collision.
func (sys *System) PredictFull(steps int, stepSize float64, recordEvery int, Δv Vector3, ref BodyHandle) Prediction {
	pred := Prediction{CollidedWith: NoBody}
	if sys.sc == NoBody || steps <= 0 || stepSize <= 0 {
		return pred
	}
	if recordEvery < 1 {
		recordEvery = 1
	}
	scratch := sys.Snapshot()
	sc := &scratch[sys.sc]
	sc.Velocity = sc.Velocity.Add(Δv)

	for s := 0; s < steps; s++ {
		accumulateGravity(scratch)
		for i := range scratch {
			b := &scratch[i]
			if b.Fixed {
				continue
			}
			b.Velocity = b.Velocity.Add(b.accel.Scaled(stepSize))
			b.Position = b.Position.Add(b.Velocity.Scaled(stepSize))
		}
		if (s+1)%recordEvery == 0 {
			pred.Points = append(pred.Points, sc.Position)
			if ref >= 0 && int(ref) < len(scratch) {
				pred.RefPoints = append(pred.RefPoints, scratch[ref].Position)
			}
		}
		for i := range scratch {
			if BodyHandle(i) == sys.sc {
				continue
			}
			b := &scratch[i]
			if sc.Position.Sub(b.Position).Norm() < sc.Radius+b.Radius {
				pred.Collided = true
				pred.CollidedWith = BodyHandle(i)
				return pred
			}
		}
	}
	return pred
}

// collidesAny reports whether the probe body overlaps any registry body other
// than the one at exclude.
func collidesAny(bodies []Body, exclude BodyHandle, probe *Body) bool {
	for i := range bodies {
		if BodyHandle(i) == exclude {
			continue
		}
		b := &bodies[i]
		if probe.Position.Sub(b.Position).Norm() < probe.Radius+b.Radius {
			return true
		}
	}
	return false
}
