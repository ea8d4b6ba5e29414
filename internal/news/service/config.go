package service

// Config holds configuration for the news service.
type Config struct {
	// PageSize is the number of items requested per page.
	PageSize int
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		PageSize: 10,
	}
}
