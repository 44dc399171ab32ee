package main

import (
	"flag"
	"log"
	"os"
	"strings"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/spf13/viper"

	orrery "github.com/orrery-sim/orrery"
)

// This tool only reads the scenario configuration and drives the tick loop;
// everything physical lives in the orrery package.

const defaultScenario = "~~unset~~"

var (
	scenario string
	epoch    string
	ticks    int
	verbose  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file")
	flag.StringVar(&epoch, "epoch", "", "epoch for ephemeris seeding (2006-01-02)")
	flag.IntVar(&ticks, "ticks", 600, "number of host ticks to simulate")
	flag.BoolVar(&verbose, "verbose", false, "log every status interval")
}

func main() {
	flag.Parse()
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "cmd", "orrery")

	// Scenario defaults, overridable by TOML.
	dt := 1.0 / 60
	timeScale := 1.0
	substeps := orrery.DefaultSubsteps
	orbitRadius := 4.22
	area := 10.0
	perts := false

	if scenario != defaultScenario {
		scenario = strings.Replace(scenario, ".toml", "", 1)
		viper.AddConfigPath(".")
		viper.SetConfigName(scenario)
		if err := viper.ReadInConfig(); err != nil {
			log.Fatalf("./%s.toml: %s", scenario, err)
		}
		if v := viper.GetFloat64("mission.dt"); v > 0 {
			dt = v
		}
		if v := viper.GetInt("mission.ticks"); v > 0 {
			ticks = v
		}
		if v := viper.GetFloat64("integrator.timescale"); v > 0 {
			timeScale = v
		}
		if v := viper.GetInt("integrator.substeps"); v > 0 {
			substeps = v
		}
		if v := viper.GetFloat64("spacecraft.orbit"); v > 0 {
			orbitRadius = v
		}
		if v := viper.GetFloat64("spacecraft.area"); v > 0 {
			area = v
		}
		perts = viper.GetBool("spacecraft.hpop")
	}

	var sys *orrery.System
	var err error
	if epoch != "" {
		var at time.Time
		at, err = time.Parse("2006-01-02", epoch)
		if err != nil {
			log.Fatalf("cannot parse epoch: %s", err)
		}
		sys, err = orrery.NewInnerSystem(at.UTC())
		if err == nil {
			earth, ferr := sys.FindBody("Earth")
			if ferr != nil {
				log.Fatalf("%s", ferr)
			}
			_, err = sys.AddSpacecraftOrbiting(earth, orbitRadius, 1e-20, 0.001)
		}
	} else {
		sys, err = orrery.NewExampleSystem()
	}
	if err != nil {
		log.Fatalf("scenario setup: %s", err)
	}

	sys.SetLogger(kitlog.With(klog, "subsys", "physics"))
	sys.SetTimeScale(timeScale)
	sys.SetSubsteps(substeps)
	p := orrery.NewPerturbations()
	p.CrossSection = area
	p.Earth, p.Sun, p.Moon = findRefs(sys)
	sys.SetPerturbations(p)
	sys.SetPerturbationsEnabled(perts)

	start := time.Now()
	logEvery := ticks / 10
	if logEvery == 0 {
		logEvery = 1
	}
	for i := 0; i < ticks; i++ {
		sys.Update(dt)
		if verbose && (i+1)%logEvery == 0 {
			near, d := sys.NearestBody()
			klog.Log("level", "info", "tick", i+1, "speed", sys.Speed(), "nearest", near, "distance", d)
		}
	}
	near, d := sys.NearestBody()
	klog.Log("level", "notice", "status", "finished",
		"ticks", ticks, "wall", time.Since(start).String(),
		"speed", sys.Speed(), "nearest", near, "distance", d,
		"energy", sys.TotalEnergy())

	// Preview the coasting arc from the final state.
	pred := sys.PredictFull(2000, dt, 100, orrery.Vector3{}, near)
	klog.Log("level", "info", "preview-points", len(pred.Points), "impact", pred.Collided)
}

func findRefs(sys *orrery.System) (earth, sun, moon orrery.BodyHandle) {
	earth, _ = sys.FindBody("Earth")
	sun, _ = sys.FindBody("Sun")
	moon, _ = sys.FindBody("Moon")
	return
}
