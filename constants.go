package orrery

/* Simulation unit system.

Masses are in Earth masses, distances in simulation units of 1e7 m, and the
gravitational constant is normalized to 1. The time unit follows from those
two choices: t = sqrt(d³/(G_SI·M_earth)) ≈ 1584.1 s, which puts Earth's
heliocentric orbit at ≈ 14960 units and keeps all state comfortably within
float64 range. The SI conversion constants below are derived, not tuned. */

const (
	// G is the gravitational constant in simulation units (Earth mass = 1,
	// distance unit = 1e7 m).
	G = 1.0

	// MetersPerUnit converts simulation distance units to meters.
	MetersPerUnit = 1e7
	// SecondsPerUnit converts simulation time units to seconds.
	SecondsPerUnit = 1584.0965
	// MetersPerSecPerUnit converts simulation velocity units to m/s.
	MetersPerSecPerUnit = MetersPerUnit / SecondsPerUnit
	// AccelUnitSI is one simulation acceleration unit in m/s².
	AccelUnitSI = MetersPerUnit / (SecondsPerUnit * SecondsPerUnit)
	// KgPerMassUnit converts simulation mass units (Earth masses) to kg.
	KgPerMassUnit = 5.9722e24

	// AU is one astronomical unit in simulation units.
	AU = 1.49597870700e11 / MetersPerUnit

	// SolarFluxAU is the solar irradiance at 1 AU in W/m².
	SolarFluxAU = 1361.0
	// LightSpeed is c in m/s.
	LightSpeed = 299792458.0
)

// Earth zonal harmonic coefficients J2 through J6 (EGM96 normalization
// removed; plain zonal values).
const (
	earthJ2 = 1.08262668e-3
	earthJ3 = -2.53265649e-6
	earthJ4 = -1.61962159e-6
	earthJ5 = -2.27296083e-7
	earthJ6 = 5.40681239e-7
)

// harmonicsCutoffRadii bounds the zonal harmonics model: beyond this many
// Earth radii the contribution is treated as zero.
const harmonicsCutoffRadii = 10.0

// hpEntry is one row of the Harris-Priester mean density table.
type hpEntry struct {
	alt float64 // altitude above the surface, km
	ρ   float64 // density, kg/m³
}

// hpDensityTable is a condensed Harris-Priester mean atmospheric density
// profile. Interpolation between rows is log-linear; outside the table the
// density is extrapolated exponentially using the boundary scale height.
var hpDensityTable = []hpEntry{
	{100, 5.297e-7},
	{120, 2.438e-8},
	{150, 2.070e-9},
	{200, 2.789e-10},
	{250, 7.248e-11},
	{300, 2.418e-11},
	{350, 9.158e-12},
	{400, 3.725e-12},
	{500, 6.967e-13},
	{600, 1.454e-13},
	{700, 3.614e-14},
	{800, 1.170e-14},
	{1000, 3.561e-15},
}
