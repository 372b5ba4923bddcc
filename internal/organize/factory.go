package organize

import "flatcopy/internal/config"

// EngineFactory is a function that creates a Runner for a resolved config.
// This allows for dependency injection in tests
type EngineFactory func(cfg *config.Config) Runner

// DefaultEngineFactory creates a real engine
var DefaultEngineFactory EngineFactory = func(cfg *config.Config) Runner {
	return NewWithConfig(cfg)
}

// CurrentEngineFactory is the currently active factory
// This can be swapped in tests
var CurrentEngineFactory = DefaultEngineFactory

// SetEngineFactory sets a custom engine factory for dependency injection
func SetEngineFactory(factory EngineFactory) {
	CurrentEngineFactory = factory
}

// ResetEngineFactory resets to the default engine factory
func ResetEngineFactory() {
	CurrentEngineFactory = DefaultEngineFactory
}
