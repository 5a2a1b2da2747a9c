package sendsuggestions

import "time"

const emailSubject = "Your restaurant recommendation"

// Config holds the bridge's runtime settings.
type Config struct {
	// Timeout bounds one full receive-resolve-send-delete pass.
	Timeout time.Duration
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
