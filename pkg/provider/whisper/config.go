package whisper

type Config struct {
	bin   string
	model string

	threads int
}

type Option func(*Config)

// WithBinary sets the whisper.cpp CLI executable. Defaults to whisper-cli on PATH.
func WithBinary(bin string) Option {
	return func(c *Config) {
		c.bin = bin
	}
}

func WithThreads(threads int) Option {
	return func(c *Config) {
		c.threads = threads
	}
}
