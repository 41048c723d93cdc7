package coach

// Config holds study-plan generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// MaxFocusAreas caps how many focus areas are kept from the response.
	MaxFocusAreas int
}

// DefaultConfig returns sensible defaults for plan generation.
func DefaultConfig() Config {
	return Config{
		MaxTokens:     700,
		Temperature:   0.4,
		MaxFocusAreas: 3,
	}
}
