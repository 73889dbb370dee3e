package config

// Config holds the engine limits and parallel-map tuning.
type Config struct {
	// MaxPeriods bounds the number of periods a single unadjusted walk may emit.
	// 600 supports up to 50Y with monthly frequency.
	MaxPeriods int

	// ParallelThreshold is the row count from which MapParallel fans out.
	// Smaller schedules are mapped sequentially.
	ParallelThreshold int

	// Workers is the maximum number of goroutines used by MapParallel.
	Workers int
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	MaxPeriods:        600,
	ParallelThreshold: 64,
	Workers:           8,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration. It is not synchronized with
// readers: call it before any schedule is built, typically from main.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
