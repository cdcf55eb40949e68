// Package config holds solver parameters for curve bootstrapping.
package config

// Config holds root-find and curve construction parameters.
type Config struct {
	// ConvergenceTolerance is the fair-value tolerance for the per-pillar
	// root-find during bootstrap.
	ConvergenceTolerance float64

	// MaxBootstrapIterations is the iteration budget per pillar. Exceeding it
	// fails the whole build; bootstrapping is deterministic, so a convergence
	// failure means malformed input, not a transient condition.
	MaxBootstrapIterations int

	// MinDiscountFactor is the lower bracket bound for the pillar solve.
	// Discount factors at or below this imply impossible rates.
	MinDiscountFactor float64

	// MaxDiscountFactor is the upper bracket bound for the pillar solve.
	// Values above 1 occur with negative rates; 2.0 covers any realistic
	// deeply negative curve.
	MaxDiscountFactor float64
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	ConvergenceTolerance:   1e-14,
	MaxBootstrapIterations: 200,
	MinDiscountFactor:      1e-9,
	MaxDiscountFactor:      2.0,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
