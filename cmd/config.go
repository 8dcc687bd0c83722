package cmd

import (
	"fmt"

	"github.com/spf13/viper"
)

// PairConfig names a pair of data sources in the config file, so a routine
// comparison does not need its DSNs retyped every run.
type PairConfig struct {
	Name    string `mapstructure:"name"`
	DriverA string `mapstructure:"driver_a"`
	DSNA    string `mapstructure:"dsn_a"`
	DriverB string `mapstructure:"driver_b"`
	DSNB    string `mapstructure:"dsn_b"`
	Active  bool   `mapstructure:"active"`
}

// GetActivePair returns the currently active source pair from the config.
func GetActivePair() (*PairConfig, error) {
	var pairs []PairConfig

	if err := viper.UnmarshalKey("pairs", &pairs); err != nil {
		return nil, fmt.Errorf("failed to parse pairs config: %w", err)
	}

	var active *PairConfig
	count := 0

	for i := range pairs {
		if pairs[i].Active {
			active = &pairs[i]
			count++
		}
	}

	if count == 0 {
		return nil, fmt.Errorf("no active source pair found in config (set active: true)")
	}
	if count > 1 {
		return nil, fmt.Errorf("multiple active source pairs found (only one can be active)")
	}

	return active, nil
}
