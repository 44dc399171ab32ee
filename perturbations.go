package orrery

import "math"

// Perturbations defines the high-precision orbit propagation terms layered on
// top of plain N-body gravity for the spacecraft. Every option is explicit;
// a term whose reference body is unset contributes the zero vector rather
// than failing, so partial configurations are valid.
//
// The main gravity solver owns first-order gravity for every body, including
// the Sun and Moon acting on the spacecraft. The third-body term here adds
// only the Earth-relative tidal differential (direct minus indirect) on top.
type Perturbations struct {
	Harmonics bool // Earth zonal harmonics J2..J6
	ThirdBody bool // Sun/Moon tidal differential
	Drag      bool // Harris-Priester atmospheric drag
	SRP       bool // solar radiation pressure with eclipse shadowing

	CrossSection float64 // spacecraft cross-sectional area, m²
	DragCoeff    float64 // dimensionless Cd
	Reflectivity float64 // SRP reflectivity in [0, 1]

	Earth BodyHandle // harmonics, drag, third-body reference, eclipse occluder
	Sun   BodyHandle // SRP source, third-body perturber
	Moon  BodyHandle // third-body perturber
}

// NewPerturbations returns the default configuration: all terms enabled but
// inert until reference handles are wired.
func NewPerturbations() Perturbations {
	return Perturbations{
		Harmonics:    true,
		ThirdBody:    true,
		Drag:         true,
		SRP:          true,
		CrossSection: 10.0,
		DragCoeff:    2.2,
		Reflectivity: 0.3,
		Earth:        NoBody,
		Sun:          NoBody,
		Moon:         NoBody,
	}
}

// Accel returns the summed perturbing acceleration on the spacecraft body sc,
// in simulation units.
func (p Perturbations) Accel(sys *System, sc BodyHandle) Vector3 {
	if !sys.valid(sc) {
		return Vector3{}
	}
	var acc Vector3
	if p.Harmonics {
		acc = acc.Add(p.harmonicsAccel(sys, sc))
	}
	if p.ThirdBody {
		acc = acc.Add(p.thirdBodyAccel(sys, sc, p.Sun))
		acc = acc.Add(p.thirdBodyAccel(sys, sc, p.Moon))
	}
	if p.Drag {
		acc = acc.Add(p.dragAccel(sys, sc))
	}
	if p.SRP {
		acc = acc.Add(p.srpAccel(sys, sc))
	}
	return acc
}

/* Zonal gravity harmonics */

// legendreP returns P2..P6 of x, indexed 2..6.
func legendreP(x float64) [7]float64 {
	x2 := x * x
	x3 := x2 * x
	x4 := x3 * x
	x5 := x4 * x
	x6 := x5 * x
	var P [7]float64
	P[2] = 0.5 * (3*x2 - 1)
	P[3] = 0.5 * (5*x3 - 3*x)
	P[4] = 0.125 * (35*x4 - 30*x2 + 3)
	P[5] = 0.125 * (63*x5 - 70*x3 + 15*x)
	P[6] = 0.0625 * (231*x6 - 315*x4 + 105*x2 - 5)
	return P
}

// legendreDP returns dPn/dx for n=2..6.
func legendreDP(x float64) [7]float64 {
	x2 := x * x
	x3 := x2 * x
	x4 := x3 * x
	x5 := x4 * x
	var dP [7]float64
	dP[2] = 3 * x
	dP[3] = 0.5 * (15*x2 - 3)
	dP[4] = 0.5 * (35*x3 - 15*x)
	dP[5] = 0.125 * (315*x4 - 210*x2 + 15)
	dP[6] = 0.125 * (693*x5 - 630*x3 + 105*x)
	return dP
}

var earthJn = [7]float64{0, 0, earthJ2, earthJ3, earthJ4, earthJ5, earthJ6}

// harmonicsAccel computes the J2..J6 zonal acceleration in the Earth-centered
// frame and converts it back to Cartesian via the radial and north-pointing
// latitudinal unit vectors. Zero beyond ten Earth radii and without an Earth
// reference.
func (p Perturbations) harmonicsAccel(sys *System, sc BodyHandle) Vector3 {
	if !sys.valid(p.Earth) {
		return Vector3{}
	}
	earth := &sys.bodies[p.Earth]
	rel := sys.bodies[sc].Position.Sub(earth.Position)
	r := rel.Norm()
	if r < distanceε || r > harmonicsCutoffRadii*earth.Radius {
		return Vector3{}
	}
	μ := G * earth.Mass
	rHat := rel.Scaled(1 / r)
	sinφ := rel.Z / r
	cosφ := math.Sqrt(1 - sinφ*sinφ)
	// North-pointing latitudinal unit vector; the epsilon keeps the poles
	// finite.
	zHat := Vector3{0, 0, 1}
	latHat := zHat.Sub(rHat.Scaled(sinφ)).Scaled(1 / (cosφ + 1e-9))

	P := legendreP(sinφ)
	dP := legendreDP(sinφ)
	ratio := earth.Radius / r
	pow := ratio * ratio // (Re/r)^n starting at n=2
	var aRad, aLat float64
	for n := 2; n <= 6; n++ {
		aRad += earthJn[n] * float64(n+1) * pow * P[n]
		aLat -= earthJn[n] * pow * cosφ * dP[n]
		pow *= ratio
	}
	scale := μ / (r * r)
	return rHat.Scaled(scale * aRad).Add(latHat.Scaled(scale * aLat))
}

/* Third-body tides */

// thirdBodyAccel returns the tidal differential of the perturbing body: its
// direct attraction on the spacecraft minus its attraction on the Earth
// reference. Zero when either reference is unset.
func (p Perturbations) thirdBodyAccel(sys *System, sc, perturber BodyHandle) Vector3 {
	if !sys.valid(p.Earth) || !sys.valid(perturber) || perturber == p.Earth {
		return Vector3{}
	}
	body := &sys.bodies[perturber]
	μ := G * body.Mass
	toSc := body.Position.Sub(sys.bodies[sc].Position)
	toEarth := body.Position.Sub(sys.bodies[p.Earth].Position)
	dSc := toSc.Norm()
	dEarth := toEarth.Norm()
	if dSc < distanceε || dEarth < distanceε {
		return Vector3{}
	}
	direct := toSc.Scaled(μ / (dSc * dSc * dSc))
	indirect := toEarth.Scaled(μ / (dEarth * dEarth * dEarth))
	return direct.Sub(indirect)
}

/* Atmospheric drag */

// hpDensity returns the Harris-Priester mean density at the given altitude in
// km. Log-linear between table rows, exponential extrapolation outside using
// the boundary scale heights.
func hpDensity(altKm float64) float64 {
	first := hpDensityTable[0]
	last := hpDensityTable[len(hpDensityTable)-1]
	if altKm <= first.alt {
		next := hpDensityTable[1]
		H := (next.alt - first.alt) / math.Log(first.ρ/next.ρ)
		return first.ρ * math.Exp((first.alt-altKm)/H)
	}
	if altKm >= last.alt {
		prev := hpDensityTable[len(hpDensityTable)-2]
		H := (last.alt - prev.alt) / math.Log(prev.ρ/last.ρ)
		return last.ρ * math.Exp((last.alt-altKm)/H)
	}
	for i := 1; i < len(hpDensityTable); i++ {
		hi := hpDensityTable[i]
		if altKm > hi.alt {
			continue
		}
		lo := hpDensityTable[i-1]
		f := (altKm - lo.alt) / (hi.alt - lo.alt)
		return math.Exp(math.Log(lo.ρ) + f*(math.Log(hi.ρ)-math.Log(lo.ρ)))
	}
	return last.ρ
}

// dragAccel computes atmospheric drag on the spacecraft in SI units and
// converts the result back to simulation units. Velocity is taken relative
// to the Earth reference; zero when the relative speed is negligible.
func (p Perturbations) dragAccel(sys *System, sc BodyHandle) Vector3 {
	if !sys.valid(p.Earth) {
		return Vector3{}
	}
	earth := &sys.bodies[p.Earth]
	b := &sys.bodies[sc]
	altKm := (b.Position.Sub(earth.Position).Norm() - earth.Radius) * MetersPerUnit / 1000
	ρ := hpDensity(altKm)
	rel := b.Velocity.Sub(earth.Velocity)
	vSim := rel.Norm()
	if vSim < velocityε {
		return Vector3{}
	}
	v := vSim * MetersPerSecPerUnit
	massKg := b.Mass * KgPerMassUnit
	aSI := 0.5 * ρ * v * v * p.DragCoeff * p.CrossSection / massKg
	return rel.Unit().Scaled(-aSI / AccelUnitSI)
}

/* Solar radiation pressure */

// srpAccel computes the SRP acceleration away from the Sun, attenuated by the
// eclipse shadow factor when the Earth reference is set.
func (p Perturbations) srpAccel(sys *System, sc BodyHandle) Vector3 {
	if !sys.valid(p.Sun) {
		return Vector3{}
	}
	sun := &sys.bodies[p.Sun]
	b := &sys.bodies[sc]
	rel := b.Position.Sub(sun.Position)
	d := rel.Norm()
	if d < distanceε {
		return Vector3{}
	}
	factor := 1.0
	if sys.valid(p.Earth) {
		factor = shadowFactor(&sys.bodies[p.Earth], sun, b.Position)
	}
	if factor == 0 {
		return Vector3{}
	}
	flux := SolarFluxAU * (AU / d) * (AU / d)
	pressure := flux / LightSpeed * (1 + p.Reflectivity)
	massKg := b.Mass * KgPerMassUnit
	aSI := pressure * p.CrossSection / massKg
	return rel.Unit().Scaled(factor * aSI / AccelUnitSI)
}

// ShadowFactor returns the current eclipse attenuation for the spacecraft,
// or 1 when the Earth or Sun reference is missing.
func (p Perturbations) ShadowFactor(sys *System, sc BodyHandle) float64 {
	if !sys.valid(sc) || !sys.valid(p.Earth) || !sys.valid(p.Sun) {
		return 1.0
	}
	return shadowFactor(&sys.bodies[p.Earth], &sys.bodies[p.Sun], sys.bodies[sc].Position)
}

// shadowFactor returns the eclipse attenuation in [0, 1]: 1 on the Sun-facing
// side of the occluder, 0 inside the umbra, linear across the penumbra band.
// Cone radii follow from similar triangles on the occluder and Sun radii.
func shadowFactor(occluder, sun *Body, pos Vector3) float64 {
	toSun := sun.Position.Sub(occluder.Position)
	toSc := pos.Sub(occluder.Position)
	if toSc.Dot(toSun) >= 0 {
		return 1.0
	}
	d := toSun.Norm()
	if d < distanceε {
		return 1.0
	}
	shadowAxis := toSun.Scaled(-1 / d) // unit vector down the shadow cone
	x := toSc.Dot(shadowAxis)          // distance behind the occluder
	perp := toSc.Sub(shadowAxis.Scaled(x)).Norm()

	var umbraR float64
	if sun.Radius > occluder.Radius {
		// The umbra cone closes at distance L behind the occluder.
		L := d * occluder.Radius / (sun.Radius - occluder.Radius)
		umbraR = occluder.Radius * (1 - x/L)
		if umbraR < 0 {
			umbraR = 0
		}
	} else {
		umbraR = occluder.Radius
	}
	penumbraR := occluder.Radius + x*(sun.Radius+occluder.Radius)/d

	switch {
	case perp <= umbraR:
		return 0.0
	case perp >= penumbraR:
		return 1.0
	default:
		return (perp - umbraR) / (penumbraR - umbraR)
	}
}
