package service

// Config holds configuration for the market service.
type Config struct {
	// TableURL is the absolute URL of the table payload.
	TableURL string
	// RowsPath is the JSON path of the row array inside the payload.
	RowsPath string
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		TableURL: "http://127.0.0.1:8000/sp100",
		RowsPath: "$.sp100",
	}
}
