package orrery

import (
	"fmt"
	"math"
	"time"

	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/planetposition"
)

/* Scenario construction: world setup is the one place bodies are created.
Heliocentric states come from the VSOP87 ephemerides when configured, from
circular seeding otherwise. */

// planetDef describes one seedable planet. Mean distances and radii are in
// simulation units, masses in Earth masses.
type planetDef struct {
	name     string
	mass     float64
	radius   float64
	meanDist float64
	vsop     int // VSOP87 planet number, Mercury=1 .. Jupiter=5
}

var innerPlanets = []planetDef{
	{"Mercury", 0.0553, 0.244, 0.387 * AU, 1},
	{"Venus", 0.815, 0.605, 0.723 * AU, 2},
	{"Earth", 1.0, 0.6378, AU, 3},
	{"Mars", 0.107, 0.3396, 1.524 * AU, 4},
	{"Jupiter", 317.8, 7.149, 5.203 * AU, 5},
}

const (
	sunMass    = 333000.0
	sunRadius  = 69.57
	moonMass   = 0.0123
	moonRadius = 0.174
	moonDist   = 38.44
)

// NewInnerSystem builds the Sun, the five innermost planets and the Moon at
// the given epoch. With ephemeris data configured the planet states come from
// VSOP87; otherwise each planet starts on a circular orbit at its mean
// distance, phased deterministically.
func NewInnerSystem(dt time.Time) (*System, error) {
	sys := NewSystem()
	if _, err := sys.AddBody(BodyConfig{
		Name: "Sun", Mass: sunMass, Radius: sunRadius, Kind: Star, Fixed: true,
	}); err != nil {
		return nil, err
	}
	μSun := G * sunMass
	cfg := orreryConfig()
	var earth BodyHandle = NoBody
	for i, p := range innerPlanets {
		var pos, vel Vector3
		if cfg.Ephemeris {
			var err error
			pos, vel, err = helioState(p, dt, cfg.EphemerisDir)
			if err != nil {
				return nil, err
			}
		} else {
			// Deterministic phase spread so the circular fallback does not
			// line every planet up.
			θ := float64(i) * 2.399963
			sθ, cθ := math.Sincos(θ)
			pos = Vector3{p.meanDist * cθ, p.meanDist * sθ, 0}
			v := math.Sqrt(μSun / p.meanDist)
			vel = Vector3{-v * sθ, v * cθ, 0}
		}
		h, err := sys.AddBody(BodyConfig{
			Name: p.name, Position: pos, Velocity: vel,
			Mass: p.mass, Radius: p.radius, Kind: Planet,
		})
		if err != nil {
			return nil, err
		}
		if p.name == "Earth" {
			earth = h
		}
	}
	// Moon on a circular orbit about Earth, co-planar prograde.
	ePos := sys.Position(earth)
	eVel := sys.Velocity(earth)
	vMoon := math.Sqrt(G * 1.0 / moonDist)
	if _, err := sys.AddBody(BodyConfig{
		Name:     "Moon",
		Position: ePos.Add(Vector3{moonDist, 0, 0}),
		Velocity: eVel.Add(Vector3{0, vMoon, 0}),
		Mass:     moonMass, Radius: moonRadius, Kind: Moon,
	}); err != nil {
		return nil, err
	}
	return sys, nil
}

// helioState returns the heliocentric position and velocity of a planet from
// the VSOP87 ephemerides, in simulation units. The velocity direction comes
// from crossing the radius with -z, its magnitude from vis-viva at the mean
// distance.
func helioState(p planetDef, dt time.Time, dir string) (Vector3, Vector3, error) {
	planet, err := planetposition.LoadPlanetPath(p.vsop-1, dir)
	if err != nil {
		return Vector3{}, Vector3{}, fmt.Errorf("could not load planet %s: %s", p.name, err)
	}
	l, b, r := planet.Position2000(julian.TimeToJD(dt))
	rSim := r * AU
	sB, cB := math.Sincos(b.Rad())
	sL, cL := math.Sincos(l.Rad())
	pos := Vector3{rSim * cB * cL, rSim * cB * sL, rSim * sB}
	μSun := G * sunMass
	v := math.Sqrt(2*μSun/rSim - μSun/p.meanDist)
	vDir := pos.Cross(Vector3{0, 0, -1}).Unit()
	return pos, vDir.Scaled(v), nil
}

// FindBody returns the handle of the first body with the given name.
func (sys *System) FindBody(name string) (BodyHandle, error) {
	for i := range sys.bodies {
		if sys.bodies[i].Name == name {
			return BodyHandle(i), nil
		}
	}
	return NoBody, fmt.Errorf("no body named %q", name)
}

// AddSpacecraftOrbiting registers the spacecraft on a circular co-planar
// orbit of the given radius about the body at center, and wires whatever
// Earth/Sun/Moon perturbation references exist in the registry.
func (sys *System) AddSpacecraftOrbiting(center BodyHandle, orbitRadius, mass, radius float64) (BodyHandle, error) {
	c, err := sys.BodyAt(center)
	if err != nil {
		return NoBody, err
	}
	v := math.Sqrt(G * c.Mass / orbitRadius)
	h, err := sys.SetSpacecraft(BodyConfig{
		Name:     "spacecraft",
		Position: c.Position.Add(Vector3{orbitRadius, 0, 0}),
		Velocity: c.Velocity.Add(Vector3{0, v, 0}),
		Mass:     mass, Radius: radius,
	})
	if err != nil {
		return NoBody, err
	}
	earth, _ := sys.FindBody("Earth")
	sun, _ := sys.FindBody("Sun")
	moon, _ := sys.FindBody("Moon")
	sys.SetPerturbationReferences(earth, sun, moon)
	return h, nil
}

// AddComet seeds a comet at perihelion of an eccentric heliocentric orbit,
// with its speed from vis-viva.
func (sys *System) AddComet(name string, perihelion, sma, mass, radius float64) (BodyHandle, error) {
	sun, err := sys.FindBody("Sun")
	if err != nil {
		return NoBody, err
	}
	s, _ := sys.BodyAt(sun)
	μ := G * s.Mass
	v := math.Sqrt(μ * (2/perihelion - 1/sma))
	return sys.AddBody(BodyConfig{
		Name:     name,
		Position: s.Position.Add(Vector3{-perihelion, 0, 0}),
		Velocity: s.Velocity.Add(Vector3{0, -v, 0}),
		Mass:     mass, Radius: radius, Kind: Comet,
	})
}

// NewExampleSystem builds the compact three-body teaching scenario: a fixed
// Sun, one Earth-mass planet on a circular orbit, and a spacecraft in low
// orbit around it, with perturbation references wired.
func NewExampleSystem() (*System, error) {
	sys := NewSystem()
	if _, err := sys.AddBody(BodyConfig{
		Name: "Sun", Mass: sunMass, Radius: 30, Kind: Star, Fixed: true,
	}); err != nil {
		return nil, err
	}
	vEarth := math.Sqrt(G * sunMass / 15000)
	earth, err := sys.AddBody(BodyConfig{
		Name:     "Earth",
		Position: Vector3{15000, 0, 0},
		Velocity: Vector3{0, vEarth, 0},
		Mass:     1, Radius: 1, Kind: Planet,
	})
	if err != nil {
		return nil, err
	}
	if _, err := sys.AddSpacecraftOrbiting(earth, 4.22, 1e-20, 0.01); err != nil {
		return nil, err
	}
	return sys, nil
}
