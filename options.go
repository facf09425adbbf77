package relay

// Options contains configuration for a chat request.
type Options struct {
	Model       Model
	MaxTokens   int
	Temperature *float64
	TopP        *float64
	Seed        *int64
}

// Option is a functional option for configuring chat requests.
type Option func(*Options)

// WithModel sets the model to use for the request.
func WithModel(model Model) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithMaxTokens sets the maximum number of tokens to generate.
func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// WithTemperature sets the sampling temperature (0.0 to 2.0).
func WithTemperature(t float64) Option {
	return func(o *Options) {
		o.Temperature = &t
	}
}

// WithTopP sets the nucleus sampling probability mass.
func WithTopP(p float64) Option {
	return func(o *Options) {
		o.TopP = &p
	}
}

// WithSeed sets the sampling seed. Providers without seed support ignore it.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = &seed
	}
}

// Deterministic returns the pinned sampling policy used for every completion:
// temperature 0, top_p 0 and seed 0.
func Deterministic() []Option {
	return []Option{
		WithTemperature(0),
		WithTopP(0),
		WithSeed(0),
	}
}

// ApplyOptions applies functional options to an Options struct.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
