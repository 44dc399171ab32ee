package orrery

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _orreryconfig{}
)

// _orreryconfig is a "hidden" struct, just use `orreryConfig`.
type _orreryconfig struct {
	Ephemeris    bool   // seed scenarios from VSOP87 ephemerides
	EphemerisDir string // directory holding the VSOP87 data files
}

// orreryConfig returns the process-wide configuration. The configuration file
// is optional: without the ORRERY_CONFIG environment variable the ephemeris
// seeding stays disabled and scenarios fall back to circular seeding.
func orreryConfig() _orreryconfig {
	if cfgLoaded {
		return config
	}
	confPath := os.Getenv("ORRERY_CONFIG")
	if confPath == "" {
		cfgLoaded = true
		return config
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found: %s", confPath, err))
	}
	config = _orreryconfig{
		Ephemeris:    viper.GetBool("ephemeris.enabled"),
		EphemerisDir: viper.GetString("ephemeris.directory"),
	}
	if config.Ephemeris && config.EphemerisDir == "" {
		panic("ephemeris enabled but ephemeris.directory is empty")
	}
	cfgLoaded = true
	return config
}
