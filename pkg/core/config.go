package core

type Config struct {
	Limits    LimitsConfig
	Transform TransformConfig
	Log       LogConfig
}

type LimitsConfig struct {
	// MaxSequenceLen caps the element count of a decoded key sequence.
	// Zero means the count is bounded only by the input length.
	MaxSequenceLen uint32
}

type TransformConfig struct {
	Name      string
	ZstdLevel int
}

type LogConfig struct {
	Level  string
	Format string // "text" or "json"
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Limits: LimitsConfig{
			MaxSequenceLen: 1 << 20,
		},
		Transform: TransformConfig{
			Name:      "none",
			ZstdLevel: 3,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
