package orrery

/* Pairwise Newtonian gravity over the registry arena. */

// accumulateGravity resets every body's acceleration accumulator and sums the
// Newtonian attraction of every other body into it. Iteration is in registry
// order so summation is deterministic for identical inputs. Fixed bodies are
// skipped as targets but still contribute as sources. O(n²), which is the
// right trade at the ~10 body scale this runs at.
func accumulateGravity(bodies []Body) {
	for i := range bodies {
		bodies[i].accel = Vector3{}
	}
	for i := range bodies {
		if bodies[i].Fixed {
			continue
		}
		for j := range bodies {
			if i == j {
				continue
			}
			bodies[i].accel = bodies[i].accel.Add(gravityFrom(&bodies[i], &bodies[j]))
		}
	}
}

// gravityFrom returns the acceleration of target due to source. The distance
// used in the magnitude is floored at max(r1+r2, 1) to keep close approaches
// finite; the direction is taken from the raw separation vector.
func gravityFrom(target, source *Body) Vector3 {
	sep := source.Position.Sub(target.Position)
	d := sep.Norm()
	floor := target.Radius + source.Radius
	if floor < 1.0 {
		floor = 1.0
	}
	eff := d
	if eff < floor {
		eff = floor
	}
	// a = G·M/d² along the unit separation vector.
	return sep.Unit().Scaled(G * source.Mass / (eff * eff))
}
