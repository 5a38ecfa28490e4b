package raytrace

// DefaultMaxBounces is the recursion limit used when none is configured.
const DefaultMaxBounces = 8

// Config holds the settings shared by every backend.
type Config struct {
	// MaxBounces limits how many reflection or transmission rays are traced
	// below a primary hit. Zero disables secondary rays.
	MaxBounces int

	// Background is the color of rays that hit nothing.
	Background Color

	// ShadeMode selects the full Phong renderer or one of the debug views.
	ShadeMode ShadeMode
}

// Option configures a Config.
//
// Example:
//
//	b, err := cpu.New(scene, raytrace.WithMaxBounces(2), raytrace.WithBackground(raytrace.Gray(0.1)))
type Option func(*Config)

// DefaultConfig returns the configuration used when no options are given.
func DefaultConfig() Config {
	return Config{
		MaxBounces: DefaultMaxBounces,
		Background: Black,
	}
}

// NewConfig applies opts over DefaultConfig.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// WithMaxBounces sets the recursion limit. Negative values are treated as 0.
func WithMaxBounces(n int) Option {
	return func(c *Config) {
		if n < 0 {
			n = 0
		}
		c.MaxBounces = n
	}
}

// WithBackground sets the color returned for rays that miss every primitive.
func WithBackground(bg Color) Option {
	return func(c *Config) {
		c.Background = bg
	}
}

// WithShadeMode selects how hits are colored. Debug modes ignore MaxBounces.
func WithShadeMode(m ShadeMode) Option {
	return func(c *Config) {
		c.ShadeMode = m
	}
}
