package orrery

import "math"

/* The tick-driven substepped propagation loop. */

// Update advances the simulation by dt seconds of host time. dt is clamped
// to MaxTickDt, scaled by the time scale, and divided into the configured
// number of substeps. Each substep accumulates gravity, adds the perturbation
// model for the spacecraft when enabled, and integrates with semi-implicit
// Euler: velocity from acceleration first, then position from the updated
// velocity. The collision pass runs once per tick, after all substeps.
func (sys *System) Update(dt float64) {
	if math.IsNaN(dt) || dt <= 0 {
		return
	}
	if dt > MaxTickDt {
		dt = MaxTickDt
	}
	dt *= sys.timeScale
	dtSub := dt / float64(sys.substeps)

	for s := 0; s < sys.substeps; s++ {
		accumulateGravity(sys.bodies)
		if sys.pertsEnabled && sys.sc != NoBody {
			sc := &sys.bodies[sys.sc]
			sc.accel = sc.accel.Add(sys.perts.Accel(sys, sys.sc))
		}
		for i := range sys.bodies {
			b := &sys.bodies[i]
			if b.Fixed {
				continue
			}
			b.Velocity = b.Velocity.Add(b.accel.Scaled(dtSub))
			b.Position = b.Position.Add(b.Velocity.Scaled(dtSub))
		}
		sys.postStepSpacecraft(dtSub)
	}

	if ev, hit := sys.DetectCollision(); hit {
		if !sys.collided {
			sys.collided = true
			sys.logger.Log("level", "critical", "collided", sys.bodies[ev.Body].Name,
				"depth", ev.Depth, "speed", sys.Speed())
		}
		if sys.autoResolve {
			sys.ResolveCollision(ev)
		}
	} else if sys.collided {
		sys.collided = false
		sys.logger.Log("level", "notice", "status", "separated")
	}
}

// postStepSpacecraft applies the spacecraft-only per-substep knobs: the
// coarse drag factor and the max speed clamp.
func (sys *System) postStepSpacecraft(dtSub float64) {
	if sys.sc == NoBody {
		return
	}
	sc := &sys.bodies[sys.sc]
	if sys.dragFactor < 1.0 {
		// The factor is calibrated against a 60 Hz substep.
		sc.Velocity = sc.Velocity.Scaled(math.Pow(sys.dragFactor, dtSub*60))
	}
	if sys.maxSpeed > 0 {
		if v := sc.Velocity.Norm(); v > sys.maxSpeed {
			sc.Velocity = sc.Velocity.Scaled(sys.maxSpeed / v)
		}
	}
}
