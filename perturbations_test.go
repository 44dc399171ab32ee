package orrery

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

// shadowTestBodies places a big Sun at the origin and a small occluder on the
// +x axis, 1000 units out.
func shadowTestBodies() (occluder, sun Body) {
	sun = Body{Name: "Sun", Mass: 333000, Radius: 30}
	occluder = Body{Name: "Earth", Mass: 1, Radius: 1, Position: Vector3{1000, 0, 0}}
	return
}

func TestShadowFactorBoundaries(t *testing.T) {
	earth, sun := shadowTestBodies()
	// Sun-facing side: full illumination.
	if f := shadowFactor(&earth, &sun, Vector3{999, 0, 0}); f != 1.0 {
		t.Fatalf("sun-facing factor = %f, want 1", f)
	}
	// On the shadow axis behind the occluder: strictly inside the umbra.
	if f := shadowFactor(&earth, &sun, Vector3{1005, 0, 0}); f != 0.0 {
		t.Fatalf("umbra factor = %f, want 0", f)
	}
	// Far off-axis on the night side: fully lit.
	if f := shadowFactor(&earth, &sun, Vector3{1005, 2, 0}); f != 1.0 {
		t.Fatalf("outside penumbra factor = %f, want 1", f)
	}
}

func TestShadowFactorPenumbraMonotonic(t *testing.T) {
	earth, sun := shadowTestBodies()
	// At 5 units behind the occluder the umbra radius is ~0.855 and the
	// penumbra radius ~1.155; sweep the band.
	prev := -1.0
	for _, y := range []float64{0.90, 0.95, 1.00, 1.05, 1.10} {
		f := shadowFactor(&earth, &sun, Vector3{1005, y, 0})
		if f <= 0 || f >= 1 {
			t.Fatalf("penumbra factor at y=%f must be in (0,1), got %f", y, f)
		}
		if f <= prev {
			t.Fatalf("penumbra factor must increase with off-axis distance: %f then %f", prev, f)
		}
		prev = f
	}
}

func TestMissingReferencesGiveZero(t *testing.T) {
	sys := NewSystem()
	sys.SetLogger(nil)
	sc, err := sys.SetSpacecraft(BodyConfig{Name: "sc", Mass: 1e-20, Radius: 0.01, Velocity: Vector3{1, 0, 0}})
	if err != nil {
		t.Fatalf("spacecraft: %s", err)
	}
	p := NewPerturbations() // all terms on, no references wired
	if acc := p.Accel(sys, sc); !acc.IsZero() {
		t.Fatalf("unreferenced perturbations must be zero, got %s", acc)
	}
}

func TestHarmonicsRangeGate(t *testing.T) {
	sys := NewSystem()
	sys.SetLogger(nil)
	earth, _ := sys.AddBody(BodyConfig{Name: "Earth", Mass: 1, Radius: 0.6378, Kind: Planet})
	sc, _ := sys.SetSpacecraft(BodyConfig{Name: "sc", Mass: 1e-20, Radius: 0.001,
		Position: Vector3{2 * 0.6378, 0, 0}})
	p := Perturbations{Harmonics: true, Earth: earth, Sun: NoBody, Moon: NoBody}

	near := p.harmonicsAccel(sys, sc)
	if near.IsZero() {
		t.Fatal("harmonics must act inside ten Earth radii")
	}
	if !near.Valid() {
		t.Fatalf("harmonics produced non-finite accel: %s", near)
	}
	// J2 dominates at the equator: extra pull is inward.
	if near.X >= 0 {
		t.Fatalf("equatorial J2 must pull inward, got %s", near)
	}

	sys.bodies[sc].Position = Vector3{11 * 0.6378, 0, 0}
	if far := p.harmonicsAccel(sys, sc); !far.IsZero() {
		t.Fatalf("harmonics must vanish beyond ten Earth radii, got %s", far)
	}
}

func TestHarmonicsPoleFinite(t *testing.T) {
	sys := NewSystem()
	sys.SetLogger(nil)
	earth, _ := sys.AddBody(BodyConfig{Name: "Earth", Mass: 1, Radius: 0.6378, Kind: Planet})
	sc, _ := sys.SetSpacecraft(BodyConfig{Name: "sc", Mass: 1e-20, Radius: 0.001,
		Position: Vector3{0, 0, 2 * 0.6378}})
	p := Perturbations{Harmonics: true, Earth: earth, Sun: NoBody, Moon: NoBody}
	acc := p.harmonicsAccel(sys, sc)
	if !acc.Valid() {
		t.Fatalf("pole singularity: %s", acc)
	}
}

func TestThirdBodyTidalDifferential(t *testing.T) {
	sys := NewSystem()
	sys.SetLogger(nil)
	earth, _ := sys.AddBody(BodyConfig{Name: "Earth", Mass: 1, Radius: 0.6378, Kind: Planet})
	sun, _ := sys.AddBody(BodyConfig{Name: "Sun", Mass: 333000, Radius: 30, Kind: Star,
		Position: Vector3{15000, 0, 0}, Fixed: true})
	sc, _ := sys.SetSpacecraft(BodyConfig{Name: "sc", Mass: 1e-20, Radius: 0.001})
	p := Perturbations{ThirdBody: true, Earth: earth, Sun: sun, Moon: NoBody}

	// Collocated with the reference: direct and indirect cancel exactly.
	if acc := p.thirdBodyAccel(sys, sc, sun); !acc.IsZero() {
		t.Fatalf("tidal term at the Earth reference must vanish, got %s", acc)
	}

	// Sunward of Earth: the tide pulls further sunward, and the differential
	// is far smaller than the direct attraction.
	sys.bodies[sc].Position = Vector3{10, 0, 0}
	acc := p.thirdBodyAccel(sys, sc, sun)
	if acc.X <= 0 {
		t.Fatalf("sunward tide must point sunward, got %s", acc)
	}
	direct := G * 333000 / (14990.0 * 14990.0)
	if acc.Norm() >= direct {
		t.Fatalf("tidal differential %g not smaller than direct term %g", acc.Norm(), direct)
	}
}

func TestHPDensityTable(t *testing.T) {
	// Interpolated values stay within the bracketing rows.
	ρ := hpDensity(225)
	lo, hi := hpDensity(250), hpDensity(200)
	if ρ <= lo || ρ >= hi {
		t.Fatalf("interpolated density %g outside bracket (%g, %g)", ρ, lo, hi)
	}
	// Exponential extrapolation: denser below the table, thinner above.
	if hpDensity(80) <= hpDensityTable[0].ρ {
		t.Fatal("below-table density must exceed the lowest entry")
	}
	if hpDensity(1500) >= hpDensityTable[len(hpDensityTable)-1].ρ {
		t.Fatal("above-table density must fall below the highest entry")
	}
	// Strictly decreasing with altitude across the table.
	prev := math.Inf(1)
	for alt := 100.0; alt <= 1000; alt += 50 {
		if ρ := hpDensity(alt); ρ >= prev {
			t.Fatalf("density must decrease with altitude, %g at %f km", ρ, alt)
		} else {
			prev = ρ
		}
	}
}

func TestDragOpposesVelocity(t *testing.T) {
	sys := NewSystem()
	sys.SetLogger(nil)
	earth, _ := sys.AddBody(BodyConfig{Name: "Earth", Mass: 1, Radius: 0.6378, Kind: Planet})
	// ~300 km altitude, one velocity unit of airspeed.
	sc, _ := sys.SetSpacecraft(BodyConfig{Name: "sc", Mass: 1e-20, Radius: 0.001,
		Position: Vector3{0.6678, 0, 0}, Velocity: Vector3{0, 1, 0}})
	p := NewPerturbations()
	p.Earth, p.Sun, p.Moon = earth, NoBody, NoBody
	acc := p.dragAccel(sys, sc)
	if acc.IsZero() {
		t.Fatal("drag must be non-zero in the atmosphere")
	}
	if dot := acc.Dot(sys.bodies[sc].Velocity); dot >= 0 {
		t.Fatalf("drag must oppose velocity, dot = %g", dot)
	}
	// Zero airspeed, zero drag.
	sys.bodies[sc].Velocity = Vector3{}
	if acc := p.dragAccel(sys, sc); !acc.IsZero() {
		t.Fatalf("drag at rest must vanish, got %s", acc)
	}
}

func TestSRPInverseSquare(t *testing.T) {
	sys := NewSystem()
	sys.SetLogger(nil)
	sun, _ := sys.AddBody(BodyConfig{Name: "Sun", Mass: 333000, Radius: 30, Kind: Star, Fixed: true})
	sc, _ := sys.SetSpacecraft(BodyConfig{Name: "sc", Mass: 1e-20, Radius: 0.001,
		Position: Vector3{5000, 0, 0}})
	p := NewPerturbations()
	p.Earth, p.Sun, p.Moon = NoBody, sun, NoBody

	near := p.srpAccel(sys, sc)
	if near.X <= 0 || near.IsZero() {
		t.Fatalf("SRP must push away from the Sun, got %s", near)
	}
	sys.bodies[sc].Position = Vector3{10000, 0, 0}
	far := p.srpAccel(sys, sc)
	if ratio := near.Norm() / far.Norm(); !scalar.EqualWithinAbs(ratio, 4, 1e-9) {
		t.Fatalf("SRP must fall off as 1/d²: ratio %f", ratio)
	}
}

func TestSRPShadowed(t *testing.T) {
	sys := NewSystem()
	sys.SetLogger(nil)
	sun, _ := sys.AddBody(BodyConfig{Name: "Sun", Mass: 333000, Radius: 30, Kind: Star, Fixed: true})
	earth, _ := sys.AddBody(BodyConfig{Name: "Earth", Mass: 1, Radius: 1, Kind: Planet,
		Position: Vector3{1000, 0, 0}})
	// On the shadow axis right behind Earth.
	sc, _ := sys.SetSpacecraft(BodyConfig{Name: "sc", Mass: 1e-20, Radius: 0.001,
		Position: Vector3{1005, 0, 0}})
	p := NewPerturbations()
	p.Earth, p.Sun, p.Moon = earth, sun, NoBody
	if acc := p.srpAccel(sys, sc); !acc.IsZero() {
		t.Fatalf("umbra must kill SRP, got %s", acc)
	}
	if f := p.ShadowFactor(sys, sc); f != 0 {
		t.Fatalf("shadow factor in umbra = %f", f)
	}
}
